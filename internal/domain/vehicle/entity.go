package vehicle

// internal/domain/vehicle/entity.go
import "time"

type Estado string
type MaintenanceStatus string

const (
	EstadoDisponible      Estado = "disponible"
	EstadoEnMantenimiento Estado = "en_mantenimiento"
	EstadoEnUso           Estado = "en_uso"
	EstadoInactivo        Estado = "inactivo"

	MaintVencido MaintenanceStatus = "Vencido"
	MaintUrgente MaintenanceStatus = "Urgente"
	MaintProximo MaintenanceStatus = "Próximo"
	MaintAlDia   MaintenanceStatus = "Al día"
)

// Vehicle represents a fleet vehicle with its maintenance tracking sub-record.
// RemainingMaintenanceKm and MaintenanceStatus are derived at read time and
// never persisted.
type Vehicle struct {
	ID             int64   `json:"id" db:"id"`
	Placa          string  `json:"placa" db:"placa"`
	NumeroSerie    string  `json:"numero_serie" db:"numero_serie"`
	Tipo           string  `json:"tipo" db:"tipo"`
	Marca          string  `json:"marca" db:"marca"`
	Modelo         string  `json:"modelo" db:"modelo"`
	Color          string  `json:"color" db:"color"`
	Anio           int     `json:"anio" db:"anio"`
	CapacidadCarga float64 `json:"capacidad_carga" db:"capacidad_carga"`
	Estado         Estado  `json:"estado" db:"estado"`

	// Maintenance tracking, all in km
	MaintenanceCycle  float64 `json:"maintenance_cycle" db:"maintenance_cycle"`
	InitialKm         float64 `json:"initial_km" db:"initial_km"`
	PrevMaintenanceKm float64 `json:"prev_maintenance_km" db:"prev_maintenance_km"`
	CurrentKm         float64 `json:"current_km" db:"current_km"`

	// Derived, never persisted
	RemainingMaintenanceKm float64           `json:"remaining_maintenance_km" db:"-"`
	MaintenanceStatus      MaintenanceStatus `json:"maintenance_status" db:"-"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
