package driver

import "time"

// CreateDriverRequest for registering a new driver
type CreateDriverRequest struct {
	Documento                string    `json:"documento" binding:"required"`
	Nombre                   string    `json:"nombre" binding:"required"`
	NumeroLicencia           string    `json:"numero_licencia" binding:"required"`
	Telefono                 string    `json:"telefono"`
	Email                    string    `json:"email" binding:"omitempty,email"`
	Direccion                string    `json:"direccion"`
	Calificacion             float64   `json:"calificacion" binding:"min=0,max=5"`
	FechaVencimientoLicencia time.Time `json:"fecha_vencimiento_licencia" binding:"required"`
}

// UpdateDriverRequest for partial updates
type UpdateDriverRequest struct {
	Nombre                   *string    `json:"nombre"`
	NumeroLicencia           *string    `json:"numero_licencia"`
	Telefono                 *string    `json:"telefono"`
	Email                    *string    `json:"email" binding:"omitempty,email"`
	Direccion                *string    `json:"direccion"`
	Calificacion             *float64   `json:"calificacion" binding:"omitempty,min=0,max=5"`
	Activo                   *bool      `json:"activo"`
	FechaVencimientoLicencia *time.Time `json:"fecha_vencimiento_licencia"`
}

// ListFilters for listing/searching drivers
type ListFilters struct {
	Busqueda       string          `form:"busqueda"`
	Activo         *bool           `form:"activo"`
	EstadoLicencia *EstadoLicencia `form:"estado_licencia"`
}

// Stats aggregates the current driver collection.
type Stats struct {
	Total               int     `json:"total"`
	Activos             int     `json:"activos"`
	Inactivos           int     `json:"inactivos"`
	LicenciasVigentes   int     `json:"licencias_vigentes"`
	LicenciasPorVencer  int     `json:"licencias_por_vencer"`
	LicenciasVencidas   int     `json:"licencias_vencidas"`
	CalificacionPromedio float64 `json:"calificacion_promedio"`
}
