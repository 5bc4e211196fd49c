package route

import "time"

// CreateRouteRequest for registering a new trip order. The trip number is
// assigned by the service.
type CreateRouteRequest struct {
	Placa     string `json:"placa" binding:"required"`
	Conductor string `json:"conductor" binding:"required"`
	Origen    string `json:"origen" binding:"required"`
	Destino   string `json:"destino" binding:"required"`

	KmInicial float64 `json:"km_inicial" binding:"min=0"`
	KmFinal   float64 `json:"km_final" binding:"min=0"`

	PesoCarga   float64 `json:"peso_carga" binding:"min=0"`
	TarifaPorKg float64 `json:"tarifa_por_kg" binding:"min=0"`

	CostoCombustible float64 `json:"costo_combustible" binding:"min=0"`
	PrecioPorGalon   float64 `json:"precio_por_galon" binding:"min=0"`

	Peajes      float64 `json:"peajes" binding:"min=0"`
	Viaticos    float64 `json:"viaticos" binding:"min=0"`
	OtrosGastos float64 `json:"otros_gastos" binding:"min=0"`

	FechaSalida  time.Time `json:"fecha_salida"`
	FechaLlegada time.Time `json:"fecha_llegada"`
}

// UpdateRouteRequest for partial updates
type UpdateRouteRequest struct {
	Conductor *string `json:"conductor"`
	Origen    *string `json:"origen"`
	Destino   *string `json:"destino"`
	Estado    *Estado `json:"estado"`

	KmInicial *float64 `json:"km_inicial" binding:"omitempty,min=0"`
	KmFinal   *float64 `json:"km_final" binding:"omitempty,min=0"`

	PesoCarga   *float64 `json:"peso_carga" binding:"omitempty,min=0"`
	TarifaPorKg *float64 `json:"tarifa_por_kg" binding:"omitempty,min=0"`

	CostoCombustible *float64 `json:"costo_combustible" binding:"omitempty,min=0"`
	PrecioPorGalon   *float64 `json:"precio_por_galon" binding:"omitempty,min=0"`

	Peajes      *float64 `json:"peajes" binding:"omitempty,min=0"`
	Viaticos    *float64 `json:"viaticos" binding:"omitempty,min=0"`
	OtrosGastos *float64 `json:"otros_gastos" binding:"omitempty,min=0"`

	FechaSalida  *time.Time `json:"fecha_salida"`
	FechaLlegada *time.Time `json:"fecha_llegada"`
}

// ListFilters for listing/searching trip orders
type ListFilters struct {
	Busqueda  string  `form:"busqueda"`
	Placa     *string `form:"placa"`
	Conductor *string `form:"conductor"`
	Estado    *Estado `form:"estado"`
}

// Stats aggregates the current trip collection.
type Stats struct {
	Total           int     `json:"total"`
	Programadas     int     `json:"programadas"`
	EnCurso         int     `json:"en_curso"`
	Completadas     int     `json:"completadas"`
	Canceladas      int     `json:"canceladas"`
	DistanciaTotal  float64 `json:"distancia_total"`
	IngresoTotal    float64 `json:"ingreso_total"`
	GastoTotal      float64 `json:"gasto_total"`
	Utilidad        float64 `json:"utilidad"`
	PromedioKmGalon float64 `json:"promedio_km_por_galon"`
}
