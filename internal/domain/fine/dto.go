package fine

// CreateFineRequest for registering a new fine
type CreateFineRequest struct {
	NumeroViaje    string  `json:"numero_viaje"`
	Placa          string  `json:"placa" binding:"required"`
	Conductor      string  `json:"conductor" binding:"required"`
	TipoInfraccion string  `json:"tipo_infraccion" binding:"required"`
	ImporteMulta   float64 `json:"importe_multa" binding:"required,gt=0"`
	ImportePagado  float64 `json:"importe_pagado" binding:"min=0"`
	Notas          string  `json:"notas"`
}

// UpdateFineRequest for partial updates
type UpdateFineRequest struct {
	NumeroViaje    *string  `json:"numero_viaje"`
	Placa          *string  `json:"placa"`
	Conductor      *string  `json:"conductor"`
	TipoInfraccion *string  `json:"tipo_infraccion"`
	ImporteMulta   *float64 `json:"importe_multa" binding:"omitempty,gt=0"`
	ImportePagado  *float64 `json:"importe_pagado" binding:"omitempty,min=0"`
	Notas          *string  `json:"notas"`
}

// ListFilters for listing/searching fines
type ListFilters struct {
	Busqueda       string      `form:"busqueda"`
	Placa          *string     `form:"placa"`
	Conductor      *string     `form:"conductor"`
	TipoInfraccion *string     `form:"tipo_infraccion"`
	EstadoPago     *EstadoPago `form:"estado_pago"`
}

// Stats aggregates the current fine collection.
type Stats struct {
	Total         int     `json:"total"`
	Pagadas       int     `json:"pagadas"`
	Parciales     int     `json:"parciales"`
	Pendientes    int     `json:"pendientes"`
	ImporteTotal  float64 `json:"importe_total"`
	PagadoTotal   float64 `json:"pagado_total"`
	DebeTotal     float64 `json:"debe_total"`
}
