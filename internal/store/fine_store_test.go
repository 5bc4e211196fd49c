package store

import (
	"testing"

	"flotaops-service/internal/domain/fine"

	"github.com/stretchr/testify/require"
)

func sampleFines() []fine.MultaConductor {
	return []fine.MultaConductor{
		{ID: 1, NumeroViaje: "V-0001", Conductor: "Ana Quispe",
			TipoInfraccion: "exceso de velocidad", ImporteMulta: 1000, ImportePagado: 1000},
		{ID: 2, NumeroViaje: "V-0002", Conductor: "Luis Paredes",
			TipoInfraccion: "estacionamiento", ImporteMulta: 1000, ImportePagado: 400},
		{ID: 3, NumeroViaje: "V-0003", Conductor: "Ana Quispe",
			TipoInfraccion: "semáforo", ImporteMulta: 500},
	}
}

func TestFineStoreDerivesDebtAndPaymentState(t *testing.T) {
	s := NewFineStore()
	s.SetAll(sampleFines())

	got := s.Filtered()
	require.Len(t, got, 3)

	require.Equal(t, 0.0, got[0].Debe)
	require.Equal(t, fine.PagoPagado, got[0].EstadoPago)
	require.Equal(t, 600.0, got[1].Debe)
	require.Equal(t, fine.PagoParcial, got[1].EstadoPago)
	require.Equal(t, 500.0, got[2].Debe)
	require.Equal(t, fine.PagoPendiente, got[2].EstadoPago)
}

func TestFineStoreStats(t *testing.T) {
	s := NewFineStore()
	s.SetAll(sampleFines())

	st := s.Stats()
	require.Equal(t, 3, st.Total)
	require.Equal(t, 1, st.Pagadas)
	require.Equal(t, 1, st.Parciales)
	require.Equal(t, 1, st.Pendientes)
	require.Equal(t, 2500.0, st.ImporteTotal)
	require.Equal(t, 1400.0, st.PagadoTotal)
	require.Equal(t, 1100.0, st.DebeTotal)
}

func TestFineStorePaymentUpdateSettlesDebt(t *testing.T) {
	s := NewFineStore()
	s.SetAll(sampleFines())

	m := sampleFines()[1]
	m.ImportePagado = 1000
	s.Update(m)

	st := s.Stats()
	require.Equal(t, 2, st.Pagadas)
	require.Equal(t, 0, st.Parciales)
	require.Equal(t, 500.0, st.DebeTotal)
}

func TestFineStoreSearchMatchesConductor(t *testing.T) {
	s := NewFineStore()
	s.SetAll(sampleFines())

	s.SetFilters(fine.ListFilters{Busqueda: "quispe"})
	require.Len(t, s.Filtered(), 2)
}
