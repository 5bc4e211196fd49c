package insurance

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDerive(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name          string
		vencimiento   time.Time
		wantDias      int
		wantSeveridad Severidad
	}{
		{"far out", now.AddDate(0, 0, 90), 90, SeveridadOK},
		{"thirty one days", now.AddDate(0, 0, 31), 31, SeveridadOK},
		{"thirty days", now.AddDate(0, 0, 30), 30, SeveridadAtencion},
		{"ten days", now.AddDate(0, 0, 10), 10, SeveridadAtencion},
		{"eight days", now.AddDate(0, 0, 8), 8, SeveridadAtencion},
		{"seven days", now.AddDate(0, 0, 7), 7, SeveridadUrgente},
		{"one day", now.AddDate(0, 0, 1), 1, SeveridadUrgente},
		{"expires today", now, 0, SeveridadVencida},
		{"expired", now.AddDate(0, 0, -3), -3, SeveridadVencida},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			s := SeguroVehiculo{FechaVencimiento: tc.vencimiento, EstadoPoliza: PolizaVigente}
			Derive(&s, now)
			require.Equal(t, tc.wantDias, s.DiasRestantes)
			require.Equal(t, tc.wantSeveridad, s.Severidad)
			require.Equal(t, PolizaVigente, s.EstadoPoliza)
		})
	}
}
