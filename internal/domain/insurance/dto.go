package insurance

import "time"

// CreatePolicyRequest for registering a new policy
type CreatePolicyRequest struct {
	Placa            string    `json:"placa" binding:"required"`
	Aseguradora      string    `json:"aseguradora" binding:"required"`
	NumeroPoliza     string    `json:"numero_poliza" binding:"required"`
	FechaInicio      time.Time `json:"fecha_inicio" binding:"required"`
	FechaVencimiento time.Time `json:"fecha_vencimiento" binding:"required"`
	ImportePagado    float64   `json:"importe_pagado" binding:"min=0"`
	FechaPago        time.Time `json:"fecha_pago"`
}

// UpdatePolicyRequest for partial updates
type UpdatePolicyRequest struct {
	Aseguradora      *string    `json:"aseguradora"`
	NumeroPoliza     *string    `json:"numero_poliza"`
	FechaInicio      *time.Time `json:"fecha_inicio"`
	FechaVencimiento *time.Time `json:"fecha_vencimiento"`
	ImportePagado    *float64   `json:"importe_pagado" binding:"omitempty,min=0"`
	FechaPago        *time.Time `json:"fecha_pago"`
}

// ListFilters for listing/searching policies
type ListFilters struct {
	Busqueda     string        `form:"busqueda"`
	Placa        *string       `form:"placa"`
	Aseguradora  *string       `form:"aseguradora"`
	EstadoPoliza *EstadoPoliza `form:"estado_poliza"`
}

// Stats aggregates the current policy collection.
type Stats struct {
	Total      int     `json:"total"`
	Vigentes   int     `json:"vigentes"`
	PorVencer  int     `json:"por_vencer"`
	Vencidas   int     `json:"vencidas"`
	Canceladas int     `json:"canceladas"`
	MontoTotal float64 `json:"monto_total"`
}
