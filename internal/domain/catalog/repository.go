// internal/domain/catalog/repository.go
package catalog

import "context"

type Repository interface {
	ListMarcas(ctx context.Context) ([]Marca, error)
	ListModelos(ctx context.Context, marcaID int64) ([]Modelo, error)
	ListTiposVehiculo(ctx context.Context) ([]TipoVehiculo, error)
	ListTiposInfraccion(ctx context.Context) ([]TipoInfraccion, error)
}
