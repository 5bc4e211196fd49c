package driver

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestDeriveDaysUntilExpiry(t *testing.T) {
	now := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)

	cases := []struct {
		name   string
		expiry time.Time
		want   int
	}{
		{"ten days out", now.AddDate(0, 0, 10), 10},
		{"tomorrow", now.AddDate(0, 0, 1), 1},
		{"expires now", now, 0},
		{"partial day rounds up", now.Add(6 * time.Hour), 1},
		{"expired five days ago", now.AddDate(0, 0, -5), -5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			d := Driver{FechaVencimientoLicencia: tc.expiry, EstadoLicencia: LicenciaVigente}
			Derive(&d, now)
			require.Equal(t, tc.want, d.DiasVencimientoLicencia)
			// store-of-record state is never recomputed locally
			require.Equal(t, LicenciaVigente, d.EstadoLicencia)
		})
	}
}
