package store

import (
	"testing"

	"flotaops-service/internal/domain/tax"

	"github.com/stretchr/testify/require"
)

func sampleTaxes() []tax.ImpuestoVehiculo {
	return []tax.ImpuestoVehiculo{
		{ID: 1, Placa: "ABC-123", TipoImpuesto: "rodaje", Anio: 2025,
			Importe: 350, EstadoPago: tax.PagoPagado},
		{ID: 2, Placa: "ABC-123", TipoImpuesto: "rodaje", Anio: 2026,
			Importe: 380, EstadoPago: tax.PagoPendiente},
		{ID: 3, Placa: "XYZ-789", TipoImpuesto: "patente", Anio: 2025,
			Importe: 500, EstadoPago: tax.PagoVencido},
	}
}

func TestTaxStoreStats(t *testing.T) {
	s := NewTaxStore()
	s.SetAll(sampleTaxes())

	st := s.Stats()
	require.Equal(t, 3, st.Total)
	require.Equal(t, 1, st.Pagados)
	require.Equal(t, 1, st.Pendientes)
	require.Equal(t, 1, st.Vencidos)
	require.Equal(t, 1230.0, st.ImporteTotal)
}

func TestTaxStoreMarkPaidMovesBuckets(t *testing.T) {
	s := NewTaxStore()
	s.SetAll(sampleTaxes())

	i := sampleTaxes()[1]
	i.EstadoPago = tax.PagoPagado
	s.Update(i)

	st := s.Stats()
	require.Equal(t, 2, st.Pagados)
	require.Equal(t, 0, st.Pendientes)
	require.Equal(t, 1230.0, st.ImporteTotal)
}

func TestTaxStoreFilterByPlacaAndAnio(t *testing.T) {
	s := NewTaxStore()
	s.SetAll(sampleTaxes())

	placa := "ABC-123"
	s.SetFilters(tax.ListFilters{Placa: &placa})
	require.Len(t, s.Filtered(), 2)

	anio := 2026
	s.SetFilters(tax.ListFilters{Anio: &anio})
	got := s.Filtered()
	require.Len(t, got, 1)
	require.Equal(t, int64(2), got[0].ID)

	s.ClearFilters()
	require.Len(t, s.Filtered(), 3)
}

func TestTaxStoreSearchMatchesTipo(t *testing.T) {
	s := NewTaxStore()
	s.SetAll(sampleTaxes())

	s.SetFilters(tax.ListFilters{Busqueda: "patente"})
	got := s.Filtered()
	require.Len(t, got, 1)
	require.Equal(t, "XYZ-789", got[0].Placa)
}

func TestTaxStoreSelectedClearsOnRemove(t *testing.T) {
	s := NewTaxStore()
	s.SetAll(sampleTaxes())

	s.Select(3)
	require.NotNil(t, s.Selected())

	s.Remove(3)
	require.Nil(t, s.Selected())
	require.Equal(t, 2, s.Stats().Total)
}
