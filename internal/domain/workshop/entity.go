package workshop

// internal/domain/workshop/entity.go
import (
	"time"

	"github.com/lib/pq"
)

// Taller is a maintenance workshop the fleet works with.
type Taller struct {
	ID           int64          `json:"id" db:"id"`
	Nombre       string         `json:"nombre" db:"nombre"`
	Direccion    string         `json:"direccion" db:"direccion"`
	Telefono     string         `json:"telefono" db:"telefono"`
	Email        string         `json:"email" db:"email"`
	Contacto     string         `json:"contacto" db:"contacto"`
	Especialidades pq.StringArray `json:"especialidades" db:"especialidades"`
	Activo       bool           `json:"activo" db:"activo"`
	Calificacion float64        `json:"calificacion" db:"calificacion"`
	Horario      string         `json:"horario" db:"horario"`
	SitioWeb     string         `json:"sitio_web" db:"sitio_web"`
	Notas        string         `json:"notas" db:"notas"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
