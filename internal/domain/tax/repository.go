// internal/domain/tax/repository.go
package tax

import "context"

type Repository interface {
	Create(ctx context.Context, i *ImpuestoVehiculo) error
	FindByID(ctx context.Context, id int64) (*ImpuestoVehiculo, error)
	Update(ctx context.Context, id int64, i *ImpuestoVehiculo) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filters *ListFilters) ([]ImpuestoVehiculo, error)
	Count(ctx context.Context, filters *ListFilters) (int64, error)
	ListByPlaca(ctx context.Context, placa string) ([]ImpuestoVehiculo, error)
}
