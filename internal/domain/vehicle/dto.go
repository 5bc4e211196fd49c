package vehicle

// CreateVehicleRequest for registering a new vehicle
type CreateVehicleRequest struct {
	Placa            string  `json:"placa" binding:"required"`
	NumeroSerie      string  `json:"numero_serie" binding:"required"`
	Tipo             string  `json:"tipo" binding:"required"`
	Marca            string  `json:"marca" binding:"required"`
	Modelo           string  `json:"modelo" binding:"required"`
	Color            string  `json:"color"`
	Anio             int     `json:"anio" binding:"required,min=1950,max=2100"`
	CapacidadCarga   float64 `json:"capacidad_carga" binding:"min=0"`
	Estado           Estado  `json:"estado"`
	MaintenanceCycle float64 `json:"maintenance_cycle" binding:"required,gt=0"`
	InitialKm        float64 `json:"initial_km" binding:"min=0"`
	CurrentKm        float64 `json:"current_km" binding:"min=0"`
}

// UpdateVehicleRequest for partial updates
type UpdateVehicleRequest struct {
	Tipo              *string  `json:"tipo"`
	Marca             *string  `json:"marca"`
	Modelo            *string  `json:"modelo"`
	Color             *string  `json:"color"`
	Anio              *int     `json:"anio" binding:"omitempty,min=1950,max=2100"`
	CapacidadCarga    *float64 `json:"capacidad_carga" binding:"omitempty,min=0"`
	Estado            *Estado  `json:"estado"`
	MaintenanceCycle  *float64 `json:"maintenance_cycle" binding:"omitempty,gt=0"`
	PrevMaintenanceKm *float64 `json:"prev_maintenance_km" binding:"omitempty,min=0"`
	CurrentKm         *float64 `json:"current_km" binding:"omitempty,min=0"`
}

// ListFilters for listing/searching vehicles. Busqueda is a substring match
// across placa, marca, modelo and numero_serie; the rest are exact matches.
type ListFilters struct {
	Busqueda string  `form:"busqueda"`
	Estado   *Estado `form:"estado"`
	Tipo     *string `form:"tipo"`
	Marca    *string `form:"marca"`
}

// Stats aggregates the current vehicle collection by fleet state and
// maintenance severity.
type Stats struct {
	Total           int `json:"total"`
	Disponibles     int `json:"disponibles"`
	EnMantenimiento int `json:"en_mantenimiento"`
	EnUso           int `json:"en_uso"`
	Inactivos       int `json:"inactivos"`

	MantVencidos int `json:"mantenimiento_vencidos"`
	MantUrgentes int `json:"mantenimiento_urgentes"`
	MantProximos int `json:"mantenimiento_proximos"`
	MantAlDia    int `json:"mantenimiento_al_dia"`
}
