package vehicle

import (
	"context"
	"testing"

	"flotaops-service/internal/domain/vehicle"
	xerrors "flotaops-service/internal/pkg/errors"
	"flotaops-service/internal/store"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeVehicleRepo struct {
	byID   map[int64]vehicle.Vehicle
	nextID int64
}

func newFakeVehicleRepo() *fakeVehicleRepo {
	return &fakeVehicleRepo{byID: map[int64]vehicle.Vehicle{}, nextID: 1}
}

func (r *fakeVehicleRepo) Create(_ context.Context, v *vehicle.Vehicle) error {
	v.ID = r.nextID
	r.nextID++
	r.byID[v.ID] = *v
	return nil
}

func (r *fakeVehicleRepo) FindByID(_ context.Context, id int64) (*vehicle.Vehicle, error) {
	v, ok := r.byID[id]
	if !ok {
		return nil, xerrors.ErrNotFound
	}
	out := v
	return &out, nil
}

func (r *fakeVehicleRepo) FindByPlaca(_ context.Context, placa string) (*vehicle.Vehicle, error) {
	for _, v := range r.byID {
		if v.Placa == placa {
			out := v
			return &out, nil
		}
	}
	return nil, xerrors.ErrNotFound
}

func (r *fakeVehicleRepo) Update(_ context.Context, id int64, v *vehicle.Vehicle) error {
	if _, ok := r.byID[id]; !ok {
		return xerrors.ErrNotFound
	}
	r.byID[id] = *v
	return nil
}

func (r *fakeVehicleRepo) Delete(_ context.Context, id int64) error {
	if _, ok := r.byID[id]; !ok {
		return xerrors.ErrNotFound
	}
	delete(r.byID, id)
	return nil
}

func (r *fakeVehicleRepo) List(_ context.Context, _ *vehicle.ListFilters) ([]vehicle.Vehicle, error) {
	out := make([]vehicle.Vehicle, 0, len(r.byID))
	for _, v := range r.byID {
		out = append(out, v)
	}
	return out, nil
}

func (r *fakeVehicleRepo) Count(_ context.Context, _ *vehicle.ListFilters) (int64, error) {
	return int64(len(r.byID)), nil
}

func (r *fakeVehicleRepo) ExistsByPlaca(_ context.Context, placa string) (bool, error) {
	_, err := r.FindByPlaca(context.Background(), placa)
	return err == nil, nil
}

func newTestService(repo *fakeVehicleRepo) *Service {
	return NewService(repo, store.NewVehicleStore(), nil, zap.NewNop())
}

func createReq() *vehicle.CreateVehicleRequest {
	return &vehicle.CreateVehicleRequest{
		Placa:            "abc-123",
		NumeroSerie:      "SN-001",
		Tipo:             "camion",
		Marca:            "Volvo",
		Modelo:           "FH16",
		Anio:             2022,
		MaintenanceCycle: 5000,
		InitialKm:        10000,
		CurrentKm:        10000,
	}
}

func TestCreateNormalizesPlacaAndDefaults(t *testing.T) {
	svc := newTestService(newFakeVehicleRepo())

	v, err := svc.Create(context.Background(), createReq())
	require.NoError(t, err)

	require.Equal(t, "ABC-123", v.Placa)
	require.Equal(t, vehicle.EstadoDisponible, v.Estado)
	require.Equal(t, 10000.0, v.PrevMaintenanceKm)
	require.Equal(t, vehicle.MaintAlDia, v.MaintenanceStatus)
	require.Equal(t, 5000.0, v.RemainingMaintenanceKm)
}

func TestCreateRejectsDuplicatePlaca(t *testing.T) {
	svc := newTestService(newFakeVehicleRepo())

	_, err := svc.Create(context.Background(), createReq())
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), createReq())
	require.ErrorIs(t, err, xerrors.ErrDuplicateEntry)
}

func TestCreateFloorsCurrentKmToInitial(t *testing.T) {
	svc := newTestService(newFakeVehicleRepo())

	req := createReq()
	req.CurrentKm = 500
	v, err := svc.Create(context.Background(), req)
	require.NoError(t, err)
	require.Equal(t, 10000.0, v.CurrentKm)
}

func TestUpdateRejectsOdometerRollback(t *testing.T) {
	svc := newTestService(newFakeVehicleRepo())

	v, err := svc.Create(context.Background(), createReq())
	require.NoError(t, err)

	km := 9000.0
	_, err = svc.Update(context.Background(), v.ID, &vehicle.UpdateVehicleRequest{CurrentKm: &km})
	require.Error(t, err)
	require.Contains(t, err.Error(), "current_km")
}

func TestUpdateRecomputesMaintenanceBucket(t *testing.T) {
	svc := newTestService(newFakeVehicleRepo())

	v, err := svc.Create(context.Background(), createReq())
	require.NoError(t, err)

	km := 14700.0
	got, err := svc.Update(context.Background(), v.ID, &vehicle.UpdateVehicleRequest{CurrentKm: &km})
	require.NoError(t, err)
	require.Equal(t, vehicle.MaintUrgente, got.MaintenanceStatus)
	require.Equal(t, 300.0, got.RemainingMaintenanceKm)
}

func TestRegisterMaintenanceResetsCycleAndState(t *testing.T) {
	repo := newFakeVehicleRepo()
	svc := newTestService(repo)

	v, err := svc.Create(context.Background(), createReq())
	require.NoError(t, err)

	km := 15500.0
	estado := vehicle.EstadoEnMantenimiento
	_, err = svc.Update(context.Background(), v.ID, &vehicle.UpdateVehicleRequest{CurrentKm: &km, Estado: &estado})
	require.NoError(t, err)

	got, err := svc.RegisterMaintenance(context.Background(), v.ID)
	require.NoError(t, err)
	require.Equal(t, 15500.0, got.PrevMaintenanceKm)
	require.Equal(t, vehicle.EstadoDisponible, got.Estado)
	require.Equal(t, vehicle.MaintAlDia, got.MaintenanceStatus)
	require.Equal(t, 5000.0, got.RemainingMaintenanceKm)
}

func TestStatsReflectsCollection(t *testing.T) {
	svc := newTestService(newFakeVehicleRepo())

	_, err := svc.Create(context.Background(), createReq())
	require.NoError(t, err)

	req2 := createReq()
	req2.Placa = "XYZ-789"
	req2.NumeroSerie = "SN-002"
	req2.CurrentKm = 16000
	_, err = svc.Create(context.Background(), req2)
	require.NoError(t, err)

	st, err := svc.Stats(context.Background())
	require.NoError(t, err)
	require.Equal(t, 2, st.Total)
	require.Equal(t, 2, st.Disponibles)
	require.Equal(t, 1, st.MantVencidos)
	require.Equal(t, 1, st.MantAlDia)
}
