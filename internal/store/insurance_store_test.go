package store

import (
	"testing"
	"time"

	"flotaops-service/internal/domain/insurance"

	"github.com/stretchr/testify/require"
)

var insRef = time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)

func samplePolicies() []insurance.SeguroVehiculo {
	return []insurance.SeguroVehiculo{
		{ID: 1, Placa: "ABC-123", NumeroPoliza: "POL-200", Aseguradora: "Rímac",
			EstadoPoliza: insurance.PolizaVigente, ImportePagado: 1200,
			FechaVencimiento: insRef.AddDate(0, 3, 0)},
		{ID: 2, Placa: "XYZ-900", NumeroPoliza: "POL-100", Aseguradora: "Pacífico",
			EstadoPoliza: insurance.PolizaPorVencer, ImportePagado: 900,
			FechaVencimiento: insRef.Add(10 * 24 * time.Hour)},
		{ID: 3, Placa: "DEF-456", NumeroPoliza: "POL-300", Aseguradora: "Rímac",
			EstadoPoliza: insurance.PolizaVencida, ImportePagado: 800,
			FechaVencimiento: insRef.AddDate(0, 0, -5)},
	}
}

func TestInsuranceStoreSeverityBuckets(t *testing.T) {
	s := NewInsuranceStore(func() time.Time { return insRef })
	s.SetAll(samplePolicies())

	got := s.Filtered()
	require.Len(t, got, 3)
	// sorted by policy number
	require.Equal(t, "POL-100", got[0].NumeroPoliza)

	require.Equal(t, 10, got[0].DiasRestantes)
	require.Equal(t, insurance.SeveridadAtencion, got[0].Severidad)
	require.Equal(t, insurance.SeveridadOK, got[1].Severidad)      // POL-200, ~90 days
	require.Equal(t, insurance.SeveridadVencida, got[2].Severidad) // POL-300, expired
	require.Equal(t, -5, got[2].DiasRestantes)
}

func TestInsuranceStoreStats(t *testing.T) {
	s := NewInsuranceStore(func() time.Time { return insRef })
	s.SetAll(samplePolicies())

	st := s.Stats()
	require.Equal(t, 3, st.Total)
	require.Equal(t, 1, st.Vigentes)
	require.Equal(t, 1, st.PorVencer)
	require.Equal(t, 1, st.Vencidas)
	require.Equal(t, 2900.0, st.MontoTotal)
}

func TestInsuranceStoreRemoveUnknownIDKeepsSelection(t *testing.T) {
	s := NewInsuranceStore(func() time.Time { return insRef })
	s.SetAll(samplePolicies())

	s.Select(1)
	s.Remove(99)
	require.NotNil(t, s.Selected())
	require.Equal(t, 3, s.Stats().Total)
}
