package tax

import "time"

// CreateTaxRequest for registering a new tax record. estado_pago is not
// accepted: the database assigns it from fecha_pago and the due date.
type CreateTaxRequest struct {
	Placa        string     `json:"placa" binding:"required"`
	TipoImpuesto string     `json:"tipo_impuesto" binding:"required"`
	Anio         int        `json:"anio" binding:"required,min=2000,max=2100"`
	Importe      float64    `json:"importe" binding:"required,gt=0"`
	FechaPago    *time.Time `json:"fecha_pago"`
}

// UpdateTaxRequest for partial updates. estado_pago is not accepted here
// either; settle a record through fecha_pago or the pay operation.
type UpdateTaxRequest struct {
	TipoImpuesto *string    `json:"tipo_impuesto"`
	Anio         *int       `json:"anio" binding:"omitempty,min=2000,max=2100"`
	Importe      *float64   `json:"importe" binding:"omitempty,gt=0"`
	FechaPago    *time.Time `json:"fecha_pago"`
}

// ListFilters for listing/searching tax records
type ListFilters struct {
	Busqueda     string      `form:"busqueda"`
	Placa        *string     `form:"placa"`
	TipoImpuesto *string     `form:"tipo_impuesto"`
	Anio         *int        `form:"anio"`
	EstadoPago   *EstadoPago `form:"estado_pago"`
}

// Stats aggregates the current tax collection.
type Stats struct {
	Total        int     `json:"total"`
	Pagados      int     `json:"pagados"`
	Pendientes   int     `json:"pendientes"`
	Vencidos     int     `json:"vencidos"`
	ImporteTotal float64 `json:"importe_total"`
}
