package driver

import (
	"math"
	"time"
)

// Derive computes the days remaining until license expiry with respect to an
// explicit reference time. Expiry equal to now yields 0, past expiry goes
// negative. EstadoLicencia is store-of-record and left untouched.
func Derive(d *Driver, now time.Time) {
	d.DiasVencimientoLicencia = daysUntil(d.FechaVencimientoLicencia, now)
}

// daysUntil is a calendar-day difference with ceiling division into whole
// days.
func daysUntil(t, now time.Time) int {
	return int(math.Ceil(t.Sub(now).Hours() / 24))
}
