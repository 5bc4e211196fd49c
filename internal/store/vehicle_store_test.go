package store

import (
	"testing"

	"flotaops-service/internal/domain/vehicle"

	"github.com/stretchr/testify/require"
)

func sampleVehicles() []vehicle.Vehicle {
	return []vehicle.Vehicle{
		{ID: 1, Placa: "XYZ-900", Marca: "Volvo", Estado: vehicle.EstadoDisponible,
			MaintenanceCycle: 5000, PrevMaintenanceKm: 10000, CurrentKm: 11000},
		{ID: 2, Placa: "ABC-123", Marca: "Scania", Estado: vehicle.EstadoEnUso,
			MaintenanceCycle: 5000, PrevMaintenanceKm: 10000, CurrentKm: 14600},
		{ID: 3, Placa: "DEF-456", Marca: "Volvo", Estado: vehicle.EstadoEnMantenimiento,
			MaintenanceCycle: 5000, PrevMaintenanceKm: 10000, CurrentKm: 16000},
	}
}

func TestSetAllDerivesSortsAndCounts(t *testing.T) {
	s := NewVehicleStore()
	s.SetAll(sampleVehicles())

	got := s.Filtered()
	require.Len(t, got, 3)
	// sorted by plate
	require.Equal(t, "ABC-123", got[0].Placa)
	require.Equal(t, "DEF-456", got[1].Placa)
	require.Equal(t, "XYZ-900", got[2].Placa)

	// derived fields applied
	require.Equal(t, vehicle.MaintUrgente, got[0].MaintenanceStatus)
	require.Equal(t, 400.0, got[0].RemainingMaintenanceKm)
	require.Equal(t, vehicle.MaintVencido, got[1].MaintenanceStatus)
	require.Equal(t, 0.0, got[1].RemainingMaintenanceKm)

	st := s.Stats()
	require.Equal(t, 3, st.Total)
	require.Equal(t, 1, st.Disponibles)
	require.Equal(t, 1, st.EnUso)
	require.Equal(t, 1, st.EnMantenimiento)
	require.Equal(t, 1, st.MantVencidos)
	require.Equal(t, 1, st.MantUrgentes)
	require.Equal(t, 1, st.MantAlDia)
}

func TestSetAllIsIdempotent(t *testing.T) {
	s := NewVehicleStore()
	s.SetAll(sampleVehicles())
	first := s.Filtered()
	firstStats := s.Stats()

	s.SetAll(sampleVehicles())
	require.Equal(t, first, s.Filtered())
	require.Equal(t, firstStats, s.Stats())
}

func TestSetAllEmptyYieldsZeroStats(t *testing.T) {
	s := NewVehicleStore()
	s.SetAll(nil)
	require.Equal(t, vehicle.Stats{}, s.Stats())
	require.Empty(t, s.Filtered())
}

func TestUpdateMissingIDIsNoOp(t *testing.T) {
	s := NewVehicleStore()
	s.SetAll(sampleVehicles())
	before := s.Filtered()
	beforeStats := s.Stats()

	s.Update(vehicle.Vehicle{ID: 99, Placa: "NOP-000"})

	require.Equal(t, before, s.Filtered())
	require.Equal(t, beforeStats, s.Stats())
}

func TestUpdateRecomputesDerivedAndStats(t *testing.T) {
	s := NewVehicleStore()
	s.SetAll(sampleVehicles())

	v := sampleVehicles()[1]
	v.CurrentKm = 11000 // serviced
	v.PrevMaintenanceKm = 11000
	s.Update(v)

	st := s.Stats()
	require.Equal(t, 0, st.MantUrgentes)
	require.Equal(t, 2, st.MantAlDia)
}

func TestRemoveClearsSelection(t *testing.T) {
	s := NewVehicleStore()
	s.SetAll(sampleVehicles())
	s.Select(2)
	require.NotNil(t, s.Selected())

	s.Remove(2)
	require.Nil(t, s.Selected())
	require.Len(t, s.Filtered(), 2)
	require.Equal(t, 2, s.Stats().Total)
}

func TestEmptyFilterReturnsFullCollectionInOrder(t *testing.T) {
	s := NewVehicleStore()
	s.SetAll(sampleVehicles())

	first := s.Filtered()
	second := s.Filtered()
	require.Equal(t, first, second)
	require.Len(t, first, 3)
}

func TestFilters(t *testing.T) {
	s := NewVehicleStore()
	s.SetAll(sampleVehicles())

	s.SetFilters(vehicle.ListFilters{Busqueda: "volvo"})
	require.Len(t, s.Filtered(), 2)

	estado := vehicle.EstadoDisponible
	s.SetFilters(vehicle.ListFilters{Estado: &estado})
	got := s.Filtered()
	require.Len(t, got, 1)
	require.Equal(t, "XYZ-900", got[0].Placa)

	s.ClearFilters()
	require.Len(t, s.Filtered(), 3)
}

func TestFiltersDoNotMutateCollection(t *testing.T) {
	s := NewVehicleStore()
	s.SetAll(sampleVehicles())

	s.SetFilters(vehicle.ListFilters{Busqueda: "scania"})
	require.Len(t, s.Filtered(), 1)
	require.Equal(t, 3, s.Stats().Total)

	s.ClearFilters()
	require.Len(t, s.Filtered(), 3)
}
