package store

import (
	"testing"
	"time"

	"flotaops-service/internal/domain/driver"

	"github.com/stretchr/testify/require"
)

var driverRef = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func sampleDrivers() []driver.Driver {
	return []driver.Driver{
		{ID: 1, Documento: "10", Nombre: "Luis Paredes", NumeroLicencia: "Q-44781",
			Activo: true, Calificacion: 4.0, EstadoLicencia: driver.LicenciaVigente,
			FechaVencimientoLicencia: driverRef.AddDate(0, 6, 0)},
		{ID: 2, Documento: "2", Nombre: "Ana Quispe", NumeroLicencia: "Q-11203",
			Activo: true, Calificacion: 5.0, EstadoLicencia: driver.LicenciaPorVencer,
			FechaVencimientoLicencia: driverRef.Add(20 * 24 * time.Hour)},
		{ID: 3, Documento: "ZZ-1", Nombre: "Mario Huamán", NumeroLicencia: "Q-90332",
			Activo: false, Calificacion: 3.0, EstadoLicencia: driver.LicenciaVencida,
			FechaVencimientoLicencia: driverRef.AddDate(0, -1, 0)},
	}
}

func TestDriverStoreNumericDocumentOrdering(t *testing.T) {
	s := NewDriverStore(func() time.Time { return driverRef })
	s.SetAll(sampleDrivers())

	got := s.Filtered()
	require.Len(t, got, 3)
	// numeric documents sort by value, non-numeric after them
	require.Equal(t, "2", got[0].Documento)
	require.Equal(t, "10", got[1].Documento)
	require.Equal(t, "ZZ-1", got[2].Documento)
}

func TestDriverStoreDerivesDaysAgainstClock(t *testing.T) {
	s := NewDriverStore(func() time.Time { return driverRef })
	s.SetAll(sampleDrivers())

	got := s.Filtered()
	require.Equal(t, 20, got[0].DiasVencimientoLicencia) // Ana
	require.Negative(t, got[2].DiasVencimientoLicencia)  // Mario, expired
}

func TestDriverStoreStats(t *testing.T) {
	s := NewDriverStore(func() time.Time { return driverRef })
	s.SetAll(sampleDrivers())

	st := s.Stats()
	require.Equal(t, 3, st.Total)
	require.Equal(t, 2, st.Activos)
	require.Equal(t, 1, st.Inactivos)
	require.Equal(t, 1, st.LicenciasVigentes)
	require.Equal(t, 1, st.LicenciasPorVencer)
	require.Equal(t, 1, st.LicenciasVencidas)
	require.InDelta(t, 4.0, st.CalificacionPromedio, 1e-9)
}

func TestDriverStoreEmptyCollectionHasZeroAverage(t *testing.T) {
	s := NewDriverStore(func() time.Time { return driverRef })
	s.SetAll(nil)
	require.Zero(t, s.Stats().CalificacionPromedio)
}

func TestDriverStoreFilterByEstadoLicencia(t *testing.T) {
	s := NewDriverStore(func() time.Time { return driverRef })
	s.SetAll(sampleDrivers())

	vencida := driver.LicenciaVencida
	s.SetFilters(driver.ListFilters{EstadoLicencia: &vencida})
	got := s.Filtered()
	require.Len(t, got, 1)
	require.Equal(t, "Mario Huamán", got[0].Nombre)
}
