package fine

import (
	"context"
	"testing"

	"flotaops-service/internal/domain/fine"
	xerrors "flotaops-service/internal/pkg/errors"
	"flotaops-service/internal/store"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeFineRepo struct {
	byID   map[int64]fine.MultaConductor
	nextID int64
}

func newFakeFineRepo() *fakeFineRepo {
	return &fakeFineRepo{byID: map[int64]fine.MultaConductor{}, nextID: 1}
}

func (r *fakeFineRepo) Create(_ context.Context, m *fine.MultaConductor) error {
	m.ID = r.nextID
	r.nextID++
	r.byID[m.ID] = *m
	return nil
}

func (r *fakeFineRepo) FindByID(_ context.Context, id int64) (*fine.MultaConductor, error) {
	m, ok := r.byID[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	out := m
	return &out, nil
}

func (r *fakeFineRepo) Update(_ context.Context, id int64, m *fine.MultaConductor) error {
	if _, ok := r.byID[id]; !ok {
		return xerrors.ErrNotFound
	}
	r.byID[id] = *m
	return nil
}

func (r *fakeFineRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.byID[id]; !ok {
		return xerrors.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *fakeFineRepo) List(_ context.Context, _ *fine.ListFilters) ([]fine.MultaConductor, error) {
	out := make([]fine.MultaConductor, 0, len(r.byID))
	for _, m := range r.byID {
		out = append(out, m)
	}
	return out, nil
}

func (r *fakeFineRepo) Count(_ context.Context, _ *fine.ListFilters) (int64, error) {
	return int64(len(r.byID)), nil
}

func (r *fakeFineRepo) ListByPlaca(_ context.Context, placa string) ([]fine.MultaConductor, error) {
	var out []fine.MultaConductor
	for _, m := range r.byID {
		if m.Placa == placa {
			out = append(out, m)
		}
	}
	return out, nil
}

func newTestService(repo *fakeFineRepo) *Service {
	return NewService(repo, store.NewFineStore(), zap.NewNop())
}

func createReq() *fine.CreateFineRequest {
	return &fine.CreateFineRequest{
		NumeroViaje:    "V-0001",
		Placa:          "abc-123",
		Conductor:      "Luis Paredes",
		TipoInfraccion: "exceso de velocidad",
		ImporteMulta:   1000,
	}
}

func TestCreateDerivesPaymentState(t *testing.T) {
	svc := newTestService(newFakeFineRepo())

	m, err := svc.Create(context.Background(), createReq())
	require.NoError(t, err)

	require.Equal(t, "ABC-123", m.Placa)
	require.Equal(t, 1000.0, m.Debe)
	require.Equal(t, fine.PagoPendiente, m.EstadoPago)
}

func TestCreateRejectsOverpaidFine(t *testing.T) {
	svc := newTestService(newFakeFineRepo())

	req := createReq()
	req.ImportePagado = 1500
	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	require.Contains(t, err.Error(), "importe_pagado")
}

func TestRegisterPaymentMovesThroughBuckets(t *testing.T) {
	svc := newTestService(newFakeFineRepo())

	m, err := svc.Create(context.Background(), createReq())
	require.NoError(t, err)

	m, err = svc.RegisterPayment(context.Background(), m.ID, 400)
	require.NoError(t, err)
	require.Equal(t, 600.0, m.Debe)
	require.Equal(t, fine.PagoParcial, m.EstadoPago)

	m, err = svc.RegisterPayment(context.Background(), m.ID, 600)
	require.NoError(t, err)
	require.Equal(t, 0.0, m.Debe)
	require.Equal(t, fine.PagoPagado, m.EstadoPago)
}

func TestRegisterPaymentRejectsOverpayment(t *testing.T) {
	svc := newTestService(newFakeFineRepo())

	m, err := svc.Create(context.Background(), createReq())
	require.NoError(t, err)

	_, err = svc.RegisterPayment(context.Background(), m.ID, 1200)
	require.Error(t, err)
	require.Contains(t, err.Error(), "exceeds")

	_, err = svc.RegisterPayment(context.Background(), m.ID, 0)
	require.Error(t, err)
}

func TestUpdateKeepsPaidWithinAmount(t *testing.T) {
	svc := newTestService(newFakeFineRepo())

	m, err := svc.Create(context.Background(), createReq())
	require.NoError(t, err)

	pagado := 800.0
	m, err = svc.Update(context.Background(), m.ID, &fine.UpdateFineRequest{ImportePagado: &pagado})
	require.NoError(t, err)
	require.Equal(t, fine.PagoParcial, m.EstadoPago)

	multa := 500.0
	_, err = svc.Update(context.Background(), m.ID, &fine.UpdateFineRequest{ImporteMulta: &multa})
	require.Error(t, err)
}

func TestUpdateIdentityFieldsSurviveReload(t *testing.T) {
	svc := newTestService(newFakeFineRepo())

	m, err := svc.Create(context.Background(), createReq())
	require.NoError(t, err)

	placa := "new-999"
	conductor := "Rosa Flores"
	numero := "V-0042"
	got, err := svc.Update(context.Background(), m.ID, &fine.UpdateFineRequest{
		Placa:       &placa,
		Conductor:   &conductor,
		NumeroViaje: &numero,
	})
	require.NoError(t, err)
	require.Equal(t, "NEW-999", got.Placa)

	// The response must match what a fresh read returns.
	fresh, err := svc.Get(context.Background(), m.ID)
	require.NoError(t, err)
	require.Equal(t, "NEW-999", fresh.Placa)
	require.Equal(t, "Rosa Flores", fresh.Conductor)
	require.Equal(t, "V-0042", fresh.NumeroViaje)
}

func TestListByPlacaNormalizesPlate(t *testing.T) {
	repo := newFakeFineRepo()
	svc := newTestService(repo)

	_, err := svc.Create(context.Background(), createReq())
	require.NoError(t, err)

	items, err := svc.ListByPlaca(context.Background(), " abc-123 ")
	require.NoError(t, err)
	require.Len(t, items, 1)
	require.Equal(t, fine.PagoPendiente, items[0].EstadoPago)
}
