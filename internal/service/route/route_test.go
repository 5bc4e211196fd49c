package route

import (
	"context"
	"strings"
	"testing"

	"flotaops-service/internal/domain/route"
	"flotaops-service/internal/domain/vehicle"
	xerrors "flotaops-service/internal/pkg/errors"
	"flotaops-service/internal/store"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeRouteRepo struct {
	byID   map[int64]route.OrdenRuta
	nextID int64
}

func newFakeRouteRepo() *fakeRouteRepo {
	return &fakeRouteRepo{byID: map[int64]route.OrdenRuta{}, nextID: 1}
}

func (r *fakeRouteRepo) Create(_ context.Context, o *route.OrdenRuta) error {
	o.ID = r.nextID
	r.nextID++
	r.byID[o.ID] = *o
	return nil
}

func (r *fakeRouteRepo) FindByID(_ context.Context, id int64) (*route.OrdenRuta, error) {
	o, ok := r.byID[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	out := o
	return &out, nil
}

func (r *fakeRouteRepo) FindByNumeroViaje(_ context.Context, numero string) (*route.OrdenRuta, error) {
	for _, o := range r.byID {
		if o.NumeroViaje == numero {
			out := o
			return &out, nil
		}
	}
	return nil, xerrors.ErrNotFound
}

func (r *fakeRouteRepo) Update(_ context.Context, id int64, o *route.OrdenRuta) error {
	if _, ok := r.byID[id]; !ok {
		return xerrors.ErrNotFound
	}
	r.byID[id] = *o
	return nil
}

func (r *fakeRouteRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.byID[id]; !ok {
		return xerrors.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *fakeRouteRepo) List(_ context.Context, _ *route.ListFilters) ([]route.OrdenRuta, error) {
	out := make([]route.OrdenRuta, 0, len(r.byID))
	for _, o := range r.byID {
		out = append(out, o)
	}
	return out, nil
}

func (r *fakeRouteRepo) Count(_ context.Context, _ *route.ListFilters) (int64, error) {
	return int64(len(r.byID)), nil
}

// fleetWithPlacas satisfies the vehicle repository with a fixed plate set;
// only FindByPlaca matters here.
type fleetWithPlacas map[string]bool

func (f fleetWithPlacas) Create(context.Context, *vehicle.Vehicle) error { return nil }
func (f fleetWithPlacas) FindByID(context.Context, int64) (*vehicle.Vehicle, error) {
	return nil, xerrors.ErrNotFound
}
func (f fleetWithPlacas) FindByPlaca(_ context.Context, placa string) (*vehicle.Vehicle, error) {
	if f[placa] {
		return &vehicle.Vehicle{Placa: placa}, nil
	}
	return nil, xerrors.ErrNotFound
}
func (f fleetWithPlacas) Update(context.Context, int64, *vehicle.Vehicle) error { return nil }
func (f fleetWithPlacas) Delete(context.Context, int64) error                   { return nil }
func (f fleetWithPlacas) List(context.Context, *vehicle.ListFilters) ([]vehicle.Vehicle, error) {
	return nil, nil
}
func (f fleetWithPlacas) Count(context.Context, *vehicle.ListFilters) (int64, error) { return 0, nil }
func (f fleetWithPlacas) ExistsByPlaca(_ context.Context, placa string) (bool, error) {
	return f[placa], nil
}

func newTestService(repo *fakeRouteRepo) *Service {
	fleet := fleetWithPlacas{"ABC-123": true}
	return NewService(repo, fleet, store.NewRouteStore(), zap.NewNop())
}

func createReq() *route.CreateRouteRequest {
	return &route.CreateRouteRequest{
		Placa:            "abc-123",
		Conductor:        "Ana Quispe",
		Origen:           "Lima",
		Destino:          "Arequipa",
		KmInicial:        1000,
		KmFinal:          2000,
		PesoCarga:        8000,
		TarifaPorKg:      0.5,
		CostoCombustible: 900,
		PrecioPorGalon:   18,
		Peajes:           120,
		Viaticos:         200,
		OtrosGastos:      80,
	}
}

func TestCreateAssignsTripNumberAndSnapshot(t *testing.T) {
	svc := newTestService(newFakeRouteRepo())

	o, err := svc.Create(context.Background(), createReq())
	require.NoError(t, err)

	require.True(t, strings.HasPrefix(o.NumeroViaje, "V-"))
	require.Equal(t, route.EstadoProgramada, o.Estado)
	require.Equal(t, "ABC-123", o.Placa)

	require.Equal(t, 1000.0, o.Distancia)
	require.Equal(t, 4000.0, o.Ingreso)
	require.Equal(t, 1300.0, o.GastoTotal)
	require.Equal(t, 50.0, o.GalonesComprados)
	require.Equal(t, 20.0, o.KmPorGalon)
	require.Equal(t, 4.0, o.IngresoPorKm)
}

func TestCreateRejectsUnknownPlaca(t *testing.T) {
	svc := newTestService(newFakeRouteRepo())

	req := createReq()
	req.Placa = "NOPE-000"
	_, err := svc.Create(context.Background(), req)
	require.ErrorIs(t, err, xerrors.ErrNotFound)
}

func TestCreateRejectsReversedOdometer(t *testing.T) {
	svc := newTestService(newFakeRouteRepo())

	req := createReq()
	req.KmFinal = 500
	_, err := svc.Create(context.Background(), req)
	require.Error(t, err)
	require.Contains(t, err.Error(), "km_final")
}

func TestUpdateFollowsTripLifecycle(t *testing.T) {
	svc := newTestService(newFakeRouteRepo())

	o, err := svc.Create(context.Background(), createReq())
	require.NoError(t, err)

	enCurso := route.EstadoEnCurso
	o, err = svc.Update(context.Background(), o.ID, &route.UpdateRouteRequest{Estado: &enCurso})
	require.NoError(t, err)
	require.Equal(t, route.EstadoEnCurso, o.Estado)

	completada := route.EstadoCompletada
	o, err = svc.Update(context.Background(), o.ID, &route.UpdateRouteRequest{Estado: &completada})
	require.NoError(t, err)
	require.Equal(t, route.EstadoCompletada, o.Estado)
}

func TestUpdateRejectsBackwardTransition(t *testing.T) {
	svc := newTestService(newFakeRouteRepo())

	o, err := svc.Create(context.Background(), createReq())
	require.NoError(t, err)

	enCurso := route.EstadoEnCurso
	_, err = svc.Update(context.Background(), o.ID, &route.UpdateRouteRequest{Estado: &enCurso})
	require.NoError(t, err)
	completada := route.EstadoCompletada
	_, err = svc.Update(context.Background(), o.ID, &route.UpdateRouteRequest{Estado: &completada})
	require.NoError(t, err)

	programada := route.EstadoProgramada
	_, err = svc.Update(context.Background(), o.ID, &route.UpdateRouteRequest{Estado: &programada})
	require.ErrorIs(t, err, xerrors.ErrConflict)

	cancelada := route.EstadoCancelada
	_, err = svc.Update(context.Background(), o.ID, &route.UpdateRouteRequest{Estado: &cancelada})
	require.ErrorIs(t, err, xerrors.ErrConflict)
}

func TestUpdateRecomputesSnapshot(t *testing.T) {
	svc := newTestService(newFakeRouteRepo())

	o, err := svc.Create(context.Background(), createReq())
	require.NoError(t, err)

	kmFinal := 3000.0
	o, err = svc.Update(context.Background(), o.ID, &route.UpdateRouteRequest{KmFinal: &kmFinal})
	require.NoError(t, err)
	require.Equal(t, 2000.0, o.Distancia)
	require.Equal(t, 40.0, o.KmPorGalon)
	require.Equal(t, 2.0, o.IngresoPorKm)
}

func TestGetByNumeroViaje(t *testing.T) {
	svc := newTestService(newFakeRouteRepo())

	o, err := svc.Create(context.Background(), createReq())
	require.NoError(t, err)

	got, err := svc.GetByNumeroViaje(context.Background(), "  "+o.NumeroViaje+" ")
	require.NoError(t, err)
	require.Equal(t, o.ID, got.ID)
}
