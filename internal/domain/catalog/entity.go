package catalog

// internal/domain/catalog/entity.go

// Reference data for form selectors. Slow-changing, cached with a TTL by the
// catalog service.

type Marca struct {
	ID     int64  `json:"id" db:"id"`
	Nombre string `json:"nombre" db:"nombre"`
}

type Modelo struct {
	ID      int64  `json:"id" db:"id"`
	MarcaID int64  `json:"marca_id" db:"marca_id"`
	Nombre  string `json:"nombre" db:"nombre"`
}

type TipoVehiculo struct {
	ID     int64  `json:"id" db:"id"`
	Nombre string `json:"nombre" db:"nombre"`
}

type TipoInfraccion struct {
	ID          int64   `json:"id" db:"id"`
	Codigo      string  `json:"codigo" db:"codigo"`
	Descripcion string  `json:"descripcion" db:"descripcion"`
	ImporteBase float64 `json:"importe_base" db:"importe_base"`
}

// Catalogo bundles every reference list in one response.
type Catalogo struct {
	Marcas          []Marca          `json:"marcas"`
	Modelos         []Modelo         `json:"modelos"`
	TiposVehiculo   []TipoVehiculo   `json:"tipos_vehiculo"`
	TiposInfraccion []TipoInfraccion `json:"tipos_infraccion"`
}
