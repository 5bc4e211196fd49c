package route

// internal/domain/route/entity.go
import "time"

type Estado string

const (
	EstadoProgramada Estado = "programada"
	EstadoEnCurso    Estado = "en_curso"
	EstadoCompletada Estado = "completada"
	EstadoCancelada  Estado = "cancelada"
)

// OrdenRuta is a trip/route order. The financial snapshot (distance, revenue,
// expenses, yields) is recomputed from the raw figures on every create and
// update.
type OrdenRuta struct {
	ID          int64  `json:"id" db:"id"`
	NumeroViaje string `json:"numero_viaje" db:"numero_viaje"`
	Placa       string `json:"placa" db:"placa"`
	Conductor   string `json:"conductor" db:"conductor"`
	Origen      string `json:"origen" db:"origen"`
	Destino     string `json:"destino" db:"destino"`
	Estado      Estado `json:"estado" db:"estado"`

	KmInicial float64 `json:"km_inicial" db:"km_inicial"`
	KmFinal   float64 `json:"km_final" db:"km_final"`

	PesoCarga   float64 `json:"peso_carga" db:"peso_carga"`     // kg
	TarifaPorKg float64 `json:"tarifa_por_kg" db:"tarifa_por_kg"`

	// Fuel purchase
	CostoCombustible  float64 `json:"costo_combustible" db:"costo_combustible"`
	PrecioPorGalon    float64 `json:"precio_por_galon" db:"precio_por_galon"`

	// Other expenses
	Peajes      float64 `json:"peajes" db:"peajes"`
	Viaticos    float64 `json:"viaticos" db:"viaticos"`
	OtrosGastos float64 `json:"otros_gastos" db:"otros_gastos"`

	// Financial snapshot, recomputed on create/update
	Distancia        float64 `json:"distancia" db:"distancia"`
	Ingreso          float64 `json:"ingreso" db:"ingreso"`
	GastoTotal       float64 `json:"gasto_total" db:"gasto_total"`
	GalonesComprados float64 `json:"galones_comprados" db:"galones_comprados"`
	KmPorGalon       float64 `json:"km_por_galon" db:"km_por_galon"`
	IngresoPorKm     float64 `json:"ingreso_por_km" db:"ingreso_por_km"`

	FechaSalida  time.Time `json:"fecha_salida" db:"fecha_salida"`
	FechaLlegada time.Time `json:"fecha_llegada" db:"fecha_llegada"`

	CreatedAt time.Time `json:"created_at" db:"created_at"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}
