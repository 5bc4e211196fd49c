package fine

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDerive(t *testing.T) {
	cases := []struct {
		name       string
		importe    float64
		pagado     float64
		wantDebe   float64
		wantEstado EstadoPago
	}{
		{"fully paid", 1000, 1000, 0, PagoPagado},
		{"overpaid clamps debe", 1000, 1200, 0, PagoPagado},
		{"partial", 1000, 400, 600, PagoParcial},
		{"unpaid", 1000, 0, 1000, PagoPendiente},
		{"minimal partial", 1000, 0.5, 999.5, PagoParcial},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			m := MultaConductor{ImporteMulta: tc.importe, ImportePagado: tc.pagado}
			Derive(&m)
			require.Equal(t, tc.wantDebe, m.Debe)
			require.Equal(t, tc.wantEstado, m.EstadoPago)
			require.GreaterOrEqual(t, m.Debe, 0.0)
		})
	}
}

func TestDeriveOverwritesStoredVencido(t *testing.T) {
	// the local derivation never produces "vencido"; a row persisted with it
	// is re-bucketed from the amounts
	m := MultaConductor{ImporteMulta: 500, ImportePagado: 0, EstadoPago: PagoVencido}
	Derive(&m)
	require.Equal(t, PagoPendiente, m.EstadoPago)
}
