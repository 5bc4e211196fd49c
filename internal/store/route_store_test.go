package store

import (
	"testing"

	"flotaops-service/internal/domain/route"

	"github.com/stretchr/testify/require"
)

func sampleRoutes() []route.OrdenRuta {
	return []route.OrdenRuta{
		{ID: 1, NumeroViaje: "V-0002", Placa: "ABC-123", Estado: route.EstadoCompletada,
			KmInicial: 1000, KmFinal: 1500, PesoCarga: 2000, TarifaPorKg: 0.5,
			CostoCombustible: 400, PrecioPorGalon: 16, Peajes: 50, Viaticos: 100},
		{ID: 2, NumeroViaje: "V-0001", Placa: "XYZ-900", Estado: route.EstadoEnCurso,
			KmInicial: 300, KmFinal: 300, PesoCarga: 1000, TarifaPorKg: 0.8},
		{ID: 3, NumeroViaje: "V-0003", Placa: "ABC-123", Estado: route.EstadoCancelada},
	}
}

func TestRouteStoreDerivesFinancials(t *testing.T) {
	s := NewRouteStore()
	s.SetAll(sampleRoutes())

	got := s.Filtered()
	require.Len(t, got, 3)
	// sorted by trip number
	require.Equal(t, "V-0001", got[0].NumeroViaje)
	require.Equal(t, "V-0002", got[1].NumeroViaje)

	first := got[1] // V-0002
	require.Equal(t, 500.0, first.Distancia)
	require.Equal(t, 1000.0, first.Ingreso)    // 2000kg * 0.5
	require.Equal(t, 550.0, first.GastoTotal)  // 400 + 50 + 100
	require.Equal(t, 25.0, first.GalonesComprados)
	require.Equal(t, 20.0, first.KmPorGalon)
	require.Equal(t, 2.0, first.IngresoPorKm)

	// zero distance and no fuel purchase never divide by zero
	second := got[0] // V-0001
	require.Zero(t, second.Distancia)
	require.Zero(t, second.KmPorGalon)
	require.Zero(t, second.IngresoPorKm)
}

func TestRouteStoreStats(t *testing.T) {
	s := NewRouteStore()
	s.SetAll(sampleRoutes())

	st := s.Stats()
	require.Equal(t, 3, st.Total)
	require.Equal(t, 1, st.EnCurso)
	require.Equal(t, 1, st.Completadas)
	require.Equal(t, 1, st.Canceladas)
	require.Equal(t, 500.0, st.DistanciaTotal)
	require.Equal(t, 1800.0, st.IngresoTotal)
	require.Equal(t, 550.0, st.GastoTotal)
	require.Equal(t, 1250.0, st.Utilidad)
	// only trips with a fuel yield enter the average
	require.Equal(t, 20.0, st.PromedioKmGalon)
}

func TestRouteStoreEmptyStatsHaveNoNaN(t *testing.T) {
	s := NewRouteStore()
	s.SetAll(nil)

	st := s.Stats()
	require.Zero(t, st.Utilidad)
	require.Zero(t, st.PromedioKmGalon)
}

func TestRouteStoreSelectedCopyIsDetached(t *testing.T) {
	s := NewRouteStore()
	s.SetAll(sampleRoutes())

	s.Select(1)
	sel := s.Selected()
	require.NotNil(t, sel)
	sel.Placa = "MUT-000"

	for _, o := range s.Filtered() {
		require.NotEqual(t, "MUT-000", o.Placa)
	}
}
