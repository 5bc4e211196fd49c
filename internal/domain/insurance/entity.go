package insurance

// internal/domain/insurance/entity.go
import "time"

// EstadoPoliza is store-of-record; the display bucket is the only value
// recomputed locally.
type EstadoPoliza string
type Severidad string

const (
	PolizaVigente   EstadoPoliza = "vigente"
	PolizaPorVencer EstadoPoliza = "por_vencer"
	PolizaVencida   EstadoPoliza = "vencida"
	PolizaCancelada EstadoPoliza = "cancelada"

	SeveridadOK       Severidad = "✅"
	SeveridadAtencion Severidad = "⚠️"
	SeveridadUrgente  Severidad = "🚨"
	SeveridadVencida  Severidad = "❌"
)

// SeguroVehiculo is an insurance policy attached to a vehicle plate.
// DiasRestantes and Severidad are derived against a reference time.
type SeguroVehiculo struct {
	ID               int64     `json:"id" db:"id"`
	Placa            string    `json:"placa" db:"placa"`
	Aseguradora      string    `json:"aseguradora" db:"aseguradora"`
	NumeroPoliza     string    `json:"numero_poliza" db:"numero_poliza"`
	FechaInicio      time.Time `json:"fecha_inicio" db:"fecha_inicio"`
	FechaVencimiento time.Time `json:"fecha_vencimiento" db:"fecha_vencimiento"`
	ImportePagado    float64   `json:"importe_pagado" db:"importe_pagado"`
	FechaPago        time.Time `json:"fecha_pago" db:"fecha_pago"`
	EstadoPoliza     EstadoPoliza `json:"estado_poliza" db:"estado_poliza"`

	// Derived, never persisted
	DiasRestantes int       `json:"dias_restantes" db:"-"`
	Severidad     Severidad `json:"severidad" db:"-"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
