package vehicle

// Derive recomputes the maintenance-derived fields from the persisted
// odometer values. Remaining km is floored at zero.
func Derive(v *Vehicle) {
	remaining := v.PrevMaintenanceKm + v.MaintenanceCycle - v.CurrentKm
	v.MaintenanceStatus = bucketFor(remaining)
	if remaining < 0 {
		remaining = 0
	}
	v.RemainingMaintenanceKm = remaining
}

// bucketFor maps raw remaining km to a maintenance severity bucket.
func bucketFor(remaining float64) MaintenanceStatus {
	switch {
	case remaining <= 0:
		return MaintVencido
	case remaining <= 500:
		return MaintUrgente
	case remaining <= 1000:
		return MaintProximo
	default:
		return MaintAlDia
	}
}
