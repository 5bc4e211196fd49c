// internal/domain/workshop/repository.go
package workshop

import "context"

type Repository interface {
	Create(ctx context.Context, t *Taller) error
	FindByID(ctx context.Context, id int64) (*Taller, error)
	Update(ctx context.Context, id int64, t *Taller) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filters *ListFilters) ([]Taller, error)
	Count(ctx context.Context, filters *ListFilters) (int64, error)
}
