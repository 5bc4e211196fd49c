// internal/domain/route/repository.go
package route

import "context"

type Repository interface {
	Create(ctx context.Context, o *OrdenRuta) error
	FindByID(ctx context.Context, id int64) (*OrdenRuta, error)
	FindByNumeroViaje(ctx context.Context, numero string) (*OrdenRuta, error)
	Update(ctx context.Context, id int64, o *OrdenRuta) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filters *ListFilters) ([]OrdenRuta, error)
	Count(ctx context.Context, filters *ListFilters) (int64, error)
}
