package vehicle

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDerive(t *testing.T) {
	cases := []struct {
		name          string
		cycle         float64
		prev          float64
		current       float64
		wantRemaining float64
		wantStatus    MaintenanceStatus
	}{
		{"al dia", 5000, 10000, 11000, 4000, MaintAlDia},
		{"proximo boundary", 5000, 10000, 14000, 1000, MaintProximo},
		{"urgente", 5000, 10000, 14600, 400, MaintUrgente},
		{"urgente boundary", 5000, 10000, 14500, 500, MaintUrgente},
		{"vencido exact", 5000, 10000, 15000, 0, MaintVencido},
		{"vencido past due clamps", 5000, 10000, 16200, 0, MaintVencido},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			v := Vehicle{
				MaintenanceCycle:  tc.cycle,
				PrevMaintenanceKm: tc.prev,
				CurrentKm:         tc.current,
			}
			Derive(&v)
			require.Equal(t, tc.wantRemaining, v.RemainingMaintenanceKm)
			require.Equal(t, tc.wantStatus, v.MaintenanceStatus)
			require.GreaterOrEqual(t, v.RemainingMaintenanceKm, 0.0)
		})
	}
}

func TestDeriveIsIdempotent(t *testing.T) {
	v := Vehicle{MaintenanceCycle: 5000, PrevMaintenanceKm: 10000, CurrentKm: 14600}
	Derive(&v)
	first := v
	Derive(&v)
	require.Equal(t, first, v)
}
