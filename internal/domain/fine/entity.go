package fine

// internal/domain/fine/entity.go
import "time"

type EstadoPago string

const (
	PagoPagado    EstadoPago = "pagado"
	PagoParcial   EstadoPago = "parcial"
	PagoPendiente EstadoPago = "pendiente"
	// PagoVencido exists in the persisted enum but is assigned only by the
	// backing store, never by local derivation.
	PagoVencido EstadoPago = "vencido"
)

// MultaConductor is a traffic fine charged against a driver on a trip.
// Debe and EstadoPago are derived from the amounts at read time.
type MultaConductor struct {
	ID             int64   `json:"id" db:"id"`
	NumeroViaje    string  `json:"numero_viaje" db:"numero_viaje"`
	Placa          string  `json:"placa" db:"placa"`
	Conductor      string  `json:"conductor" db:"conductor"`
	TipoInfraccion string  `json:"tipo_infraccion" db:"tipo_infraccion"`
	ImporteMulta   float64 `json:"importe_multa" db:"importe_multa"`
	ImportePagado  float64 `json:"importe_pagado" db:"importe_pagado"`
	Notas          string  `json:"notas" db:"notas"`

	// Derived, never persisted
	Debe       float64    `json:"debe" db:"-"`
	EstadoPago EstadoPago `json:"estado_pago" db:"-"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
