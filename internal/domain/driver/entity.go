package driver

// internal/domain/driver/entity.go
import "time"

// EstadoLicencia is store-of-record: the backing trigger assigns it, the
// service layer only displays it.
type EstadoLicencia string

const (
	LicenciaVigente   EstadoLicencia = "vigente"
	LicenciaPorVencer EstadoLicencia = "por_vencer"
	LicenciaVencida   EstadoLicencia = "vencida"
)

// Driver represents a fleet driver. DiasVencimientoLicencia is derived from
// the license expiry date against a reference time and never persisted.
type Driver struct {
	ID              int64          `json:"id" db:"id"`
	Documento       string         `json:"documento" db:"documento"`
	Nombre          string         `json:"nombre" db:"nombre"`
	NumeroLicencia  string         `json:"numero_licencia" db:"numero_licencia"`
	Telefono        string         `json:"telefono" db:"telefono"`
	Email           string         `json:"email" db:"email"`
	Direccion       string         `json:"direccion" db:"direccion"`
	Calificacion    float64        `json:"calificacion" db:"calificacion"`
	Activo          bool           `json:"activo" db:"activo"`
	FechaVencimientoLicencia time.Time      `json:"fecha_vencimiento_licencia" db:"fecha_vencimiento_licencia"`
	EstadoLicencia  EstadoLicencia `json:"estado_licencia" db:"estado_licencia"`

	// Derived, never persisted
	DiasVencimientoLicencia int `json:"dias_vencimiento_licencia" db:"-"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
