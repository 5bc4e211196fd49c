// internal/domain/vehicle/repository.go
package vehicle

import "context"

type Repository interface {
	Create(ctx context.Context, v *Vehicle) error
	FindByID(ctx context.Context, id int64) (*Vehicle, error)
	FindByPlaca(ctx context.Context, placa string) (*Vehicle, error)
	Update(ctx context.Context, id int64, v *Vehicle) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filters *ListFilters) ([]Vehicle, error)
	Count(ctx context.Context, filters *ListFilters) (int64, error)
	ExistsByPlaca(ctx context.Context, placa string) (bool, error)
}
