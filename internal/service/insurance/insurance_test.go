package insurance

import (
	"context"
	"testing"
	"time"

	"flotaops-service/internal/domain/insurance"
	xerrors "flotaops-service/internal/pkg/errors"
	"flotaops-service/internal/store"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeInsuranceRepo struct {
	byID   map[int64]insurance.SeguroVehiculo
	nextID int64
}

func newFakeInsuranceRepo() *fakeInsuranceRepo {
	return &fakeInsuranceRepo{byID: map[int64]insurance.SeguroVehiculo{}, nextID: 1}
}

func (r *fakeInsuranceRepo) Create(_ context.Context, p *insurance.SeguroVehiculo) error {
	for _, other := range r.byID {
		if other.NumeroPoliza == p.NumeroPoliza {
			return xerrors.ErrDuplicateEntry
		}
	}
	p.ID = r.nextID
	r.nextID++
	p.EstadoPoliza = insurance.PolizaVigente
	r.byID[p.ID] = *p
	return nil
}

func (r *fakeInsuranceRepo) FindByID(_ context.Context, id int64) (*insurance.SeguroVehiculo, error) {
	p, ok := r.byID[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	out := p
	return &out, nil
}

func (r *fakeInsuranceRepo) Update(_ context.Context, id int64, p *insurance.SeguroVehiculo) error {
	if _, ok := r.byID[id]; !ok {
		return xerrors.ErrNotFound
	}
	for otherID, other := range r.byID {
		if otherID != id && other.NumeroPoliza == p.NumeroPoliza {
			return xerrors.ErrDuplicateEntry
		}
	}
	r.byID[id] = *p
	return nil
}

func (r *fakeInsuranceRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.byID[id]; !ok {
		return xerrors.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *fakeInsuranceRepo) List(_ context.Context, _ *insurance.ListFilters) ([]insurance.SeguroVehiculo, error) {
	out := make([]insurance.SeguroVehiculo, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, p)
	}
	return out, nil
}

func (r *fakeInsuranceRepo) Count(_ context.Context, _ *insurance.ListFilters) (int64, error) {
	return int64(len(r.byID)), nil
}

func (r *fakeInsuranceRepo) ListByPlaca(_ context.Context, placa string) ([]insurance.SeguroVehiculo, error) {
	var out []insurance.SeguroVehiculo
	for _, p := range r.byID {
		if p.Placa == placa {
			out = append(out, p)
		}
	}
	return out, nil
}

func newTestService(repo *fakeInsuranceRepo) *Service {
	return NewService(repo, store.NewInsuranceStore(time.Now), nil, zap.NewNop())
}

func createReq() *insurance.CreatePolicyRequest {
	return &insurance.CreatePolicyRequest{
		Placa:            "abc-123",
		Aseguradora:      "Rimac",
		NumeroPoliza:     "POL-1001",
		FechaInicio:      time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC),
		FechaVencimiento: time.Date(2027, 1, 1, 0, 0, 0, 0, time.UTC),
		ImportePagado:    1200,
	}
}

func TestCreateValidatesDateOrder(t *testing.T) {
	svc := newTestService(newFakeInsuranceRepo())

	req := createReq()
	req.FechaVencimiento = req.FechaInicio
	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	require.Contains(t, err.Error(), "fecha_vencimiento")
}

func TestCreateRejectsDuplicatePolicyNumber(t *testing.T) {
	svc := newTestService(newFakeInsuranceRepo())

	_, err := svc.Create(context.Background(), createReq())
	require.NoError(t, err)

	req := createReq()
	req.Placa = "XYZ-789"
	_, err = svc.Create(context.Background(), req)
	require.ErrorIs(t, err, xerrors.ErrDuplicateEntry)
}

func TestUpdatePolicyNumberSurvivesReload(t *testing.T) {
	svc := newTestService(newFakeInsuranceRepo())

	p, err := svc.Create(context.Background(), createReq())
	require.NoError(t, err)

	numero := "POL-2002"
	got, err := svc.Update(context.Background(), p.ID, &insurance.UpdatePolicyRequest{NumeroPoliza: &numero})
	require.NoError(t, err)
	require.Equal(t, "POL-2002", got.NumeroPoliza)

	// The response must match what a fresh read returns.
	fresh, err := svc.Get(context.Background(), p.ID)
	require.NoError(t, err)
	require.Equal(t, "POL-2002", fresh.NumeroPoliza)
}

func TestUpdateValidatesDateOrder(t *testing.T) {
	svc := newTestService(newFakeInsuranceRepo())

	p, err := svc.Create(context.Background(), createReq())
	require.NoError(t, err)

	venc := time.Date(2025, 12, 1, 0, 0, 0, 0, time.UTC)
	_, err = svc.Update(context.Background(), p.ID, &insurance.UpdatePolicyRequest{FechaVencimiento: &venc})
	require.Error(t, err)
}
