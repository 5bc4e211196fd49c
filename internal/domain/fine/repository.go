// internal/domain/fine/repository.go
package fine

import "context"

type Repository interface {
	Create(ctx context.Context, m *MultaConductor) error
	FindByID(ctx context.Context, id int64) (*MultaConductor, error)
	Update(ctx context.Context, id int64, m *MultaConductor) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filters *ListFilters) ([]MultaConductor, error)
	Count(ctx context.Context, filters *ListFilters) (int64, error)
	ListByPlaca(ctx context.Context, placa string) ([]MultaConductor, error)
}
