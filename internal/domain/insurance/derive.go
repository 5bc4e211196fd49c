package insurance

import (
	"math"
	"time"
)

// Derive recomputes days remaining until policy expiry and its display
// severity bucket. EstadoPoliza stays store-of-record.
func Derive(s *SeguroVehiculo, now time.Time) {
	s.DiasRestantes = daysUntil(s.FechaVencimiento, now)
	s.Severidad = SeverityFor(s.DiasRestantes)
}

// SeverityFor buckets days remaining into the canonical threshold table:
// more than 30 days ok, 8-30 attention, 1-7 urgent, 0 or past expired.
func SeverityFor(dias int) Severidad {
	switch {
	case dias > 30:
		return SeveridadOK
	case dias > 7:
		return SeveridadAtencion
	case dias > 0:
		return SeveridadUrgente
	default:
		return SeveridadVencida
	}
}

func daysUntil(t, now time.Time) int {
	return int(math.Ceil(t.Sub(now).Hours() / 24))
}
