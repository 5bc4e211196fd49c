package tax

import (
	"context"
	"testing"
	"time"

	"flotaops-service/internal/domain/tax"
	xerrors "flotaops-service/internal/pkg/errors"
	"flotaops-service/internal/store"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeTaxRepo mimics the database's store-of-record handling of
// estado_pago: writes never carry it, reads assign it from fecha_pago.
type fakeTaxRepo struct {
	byID   map[int64]tax.ImpuestoVehiculo
	nextID int64
}

func newFakeTaxRepo() *fakeTaxRepo {
	return &fakeTaxRepo{byID: map[int64]tax.ImpuestoVehiculo{}, nextID: 1}
}

func assignEstado(i *tax.ImpuestoVehiculo) {
	if i.FechaPago != nil {
		i.EstadoPago = tax.PagoPagado
	} else {
		i.EstadoPago = tax.PagoPendiente
	}
}

func (r *fakeTaxRepo) Create(_ context.Context, i *tax.ImpuestoVehiculo) error {
	i.ID = r.nextID
	r.nextID++
	assignEstado(i)
	r.byID[i.ID] = *i
	return nil
}

func (r *fakeTaxRepo) FindByID(_ context.Context, id int64) (*tax.ImpuestoVehiculo, error) {
	i, ok := r.byID[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	out := i
	return &out, nil
}

func (r *fakeTaxRepo) Update(_ context.Context, id int64, i *tax.ImpuestoVehiculo) error {
	if _, ok := r.byID[id]; !ok {
		return xerrors.ErrNotFound
	}
	assignEstado(i)
	r.byID[id] = *i
	return nil
}

func (r *fakeTaxRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.byID[id]; !ok {
		return xerrors.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *fakeTaxRepo) List(_ context.Context, _ *tax.ListFilters) ([]tax.ImpuestoVehiculo, error) {
	out := make([]tax.ImpuestoVehiculo, 0, len(r.byID))
	for _, i := range r.byID {
		out = append(out, i)
	}
	return out, nil
}

func (r *fakeTaxRepo) Count(_ context.Context, _ *tax.ListFilters) (int64, error) {
	return int64(len(r.byID)), nil
}

func (r *fakeTaxRepo) ListByPlaca(_ context.Context, placa string) ([]tax.ImpuestoVehiculo, error) {
	var out []tax.ImpuestoVehiculo
	for _, i := range r.byID {
		if i.Placa == placa {
			out = append(out, i)
		}
	}
	return out, nil
}

func newTestService(repo *fakeTaxRepo) *Service {
	return NewService(repo, store.NewTaxStore(), zap.NewNop())
}

func createReq() *tax.CreateTaxRequest {
	return &tax.CreateTaxRequest{
		Placa:        "abc-123",
		TipoImpuesto: "rodaje",
		Anio:         2026,
		Importe:      380,
	}
}

func TestCreateReadsBackAssignedEstado(t *testing.T) {
	svc := newTestService(newFakeTaxRepo())

	i, err := svc.Create(context.Background(), createReq())
	require.NoError(t, err)
	require.Equal(t, "ABC-123", i.Placa)
	require.Equal(t, tax.PagoPendiente, i.EstadoPago)

	fecha := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	req := createReq()
	req.Placa = "XYZ-789"
	req.FechaPago = &fecha
	i, err = svc.Create(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, tax.PagoPagado, i.EstadoPago)
}

func TestUpdatePersistsWhatItReturns(t *testing.T) {
	repo := newFakeTaxRepo()
	svc := newTestService(repo)

	i, err := svc.Create(context.Background(), createReq())
	require.NoError(t, err)

	fecha := time.Date(2026, 4, 1, 0, 0, 0, 0, time.UTC)
	got, err := svc.Update(context.Background(), i.ID, &tax.UpdateTaxRequest{FechaPago: &fecha})
	require.NoError(t, err)
	require.Equal(t, tax.PagoPagado, got.EstadoPago)

	// The response must match what a fresh read returns.
	fresh, err := svc.Get(context.Background(), i.ID)
	require.NoError(t, err)
	require.Equal(t, got.EstadoPago, fresh.EstadoPago)
	require.Equal(t, fecha, *fresh.FechaPago)
}

func TestMarkPaidIsIdempotent(t *testing.T) {
	svc := newTestService(newFakeTaxRepo())

	i, err := svc.Create(context.Background(), createReq())
	require.NoError(t, err)

	paid, err := svc.MarkPaid(context.Background(), i.ID)
	require.NoError(t, err)
	require.Equal(t, tax.PagoPagado, paid.EstadoPago)
	require.NotNil(t, paid.FechaPago)

	again, err := svc.MarkPaid(context.Background(), i.ID)
	require.NoError(t, err)
	require.Equal(t, paid.FechaPago, again.FechaPago)
}

func TestMarkPaidUnknownRecord(t *testing.T) {
	svc := newTestService(newFakeTaxRepo())

	_, err := svc.MarkPaid(context.Background(), 404)
	require.ErrorIs(t, err, xerrors.ErrNotFound)
}
