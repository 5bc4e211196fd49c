package workshop

// CreateWorkshopRequest for registering a new workshop
type CreateWorkshopRequest struct {
	Nombre         string   `json:"nombre" binding:"required"`
	Direccion      string   `json:"direccion"`
	Telefono       string   `json:"telefono"`
	Email          string   `json:"email" binding:"omitempty,email"`
	Contacto       string   `json:"contacto"`
	Especialidades []string `json:"especialidades"`
	Calificacion   float64  `json:"calificacion" binding:"min=0,max=5"`
	Horario        string   `json:"horario"`
	SitioWeb       string   `json:"sitio_web"`
	Notas          string   `json:"notas"`
}

// UpdateWorkshopRequest for partial updates
type UpdateWorkshopRequest struct {
	Nombre         *string   `json:"nombre"`
	Direccion      *string   `json:"direccion"`
	Telefono       *string   `json:"telefono"`
	Email          *string   `json:"email" binding:"omitempty,email"`
	Contacto       *string   `json:"contacto"`
	Especialidades *[]string `json:"especialidades"`
	Activo         *bool     `json:"activo"`
	Calificacion   *float64  `json:"calificacion" binding:"omitempty,min=0,max=5"`
	Horario        *string   `json:"horario"`
	SitioWeb       *string   `json:"sitio_web"`
	Notas          *string   `json:"notas"`
}

// ListFilters for listing/searching workshops
type ListFilters struct {
	Busqueda     string  `form:"busqueda"`
	Activo       *bool   `form:"activo"`
	Especialidad *string `form:"especialidad"`
}

// Stats aggregates the current workshop collection.
type Stats struct {
	Total                int            `json:"total"`
	Activos              int            `json:"activos"`
	Inactivos            int            `json:"inactivos"`
	CalificacionPromedio float64        `json:"calificacion_promedio"`
	PorEspecialidad      map[string]int `json:"por_especialidad"`
}
