// internal/domain/insurance/repository.go
package insurance

import "context"

type Repository interface {
	Create(ctx context.Context, s *SeguroVehiculo) error
	FindByID(ctx context.Context, id int64) (*SeguroVehiculo, error)
	Update(ctx context.Context, id int64, s *SeguroVehiculo) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filters *ListFilters) ([]SeguroVehiculo, error)
	Count(ctx context.Context, filters *ListFilters) (int64, error)
	ListByPlaca(ctx context.Context, placa string) ([]SeguroVehiculo, error)
}
