package tax

// internal/domain/tax/entity.go
import "time"

// EstadoPago for taxes is store-of-record, assigned by the backing store.
type EstadoPago string

const (
	PagoPagado    EstadoPago = "pagado"
	PagoPendiente EstadoPago = "pendiente"
	PagoVencido   EstadoPago = "vencido"
)

// ImpuestoVehiculo is a yearly tax record for a vehicle plate.
type ImpuestoVehiculo struct {
	ID           int64      `json:"id" db:"id"`
	Placa        string     `json:"placa" db:"placa"`
	TipoImpuesto string     `json:"tipo_impuesto" db:"tipo_impuesto"`
	Anio         int        `json:"anio" db:"anio"`
	Importe      float64    `json:"importe" db:"importe"`
	FechaPago    *time.Time `json:"fecha_pago,omitempty" db:"fecha_pago"`
	EstadoPago   EstadoPago `json:"estado_pago" db:"estado_pago"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
