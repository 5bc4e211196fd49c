// internal/domain/driver/repository.go
package driver

import "context"

type Repository interface {
	Create(ctx context.Context, d *Driver) error
	FindByID(ctx context.Context, id int64) (*Driver, error)
	FindByDocumento(ctx context.Context, documento string) (*Driver, error)
	Update(ctx context.Context, id int64, d *Driver) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, filters *ListFilters) ([]Driver, error)
	Count(ctx context.Context, filters *ListFilters) (int64, error)
	ExistsByDocumento(ctx context.Context, documento string) (bool, error)
}
