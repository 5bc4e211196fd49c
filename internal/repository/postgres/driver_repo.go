// internal/repository/postgres/driver_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"flotaops-service/internal/domain/driver"
	xerrors "flotaops-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type DriverRepository struct {
	db *pgxpool.Pool
}

func NewDriverRepository(db *pgxpool.Pool) *DriverRepository {
	return &DriverRepository{db: db}
}

const driverColumns = `
	id, documento, nombre, numero_licencia, telefono, email, direccion,
	calificacion, activo, fecha_vencimiento_licencia, estado_licencia,
	created_at, updated_at`

func scanDriver(row pgx.Row) (*driver.Driver, error) {
	var d driver.Driver
	err := row.Scan(
		&d.ID, &d.Documento, &d.Nombre, &d.NumeroLicencia, &d.Telefono, &d.Email, &d.Direccion,
		&d.Calificacion, &d.Activo, &d.FechaVencimientoLicencia, &d.EstadoLicencia,
		&d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// Create inserts a driver. estado_licencia is assigned by the database from
// the expiry date, so it is read back rather than written.
func (r *DriverRepository) Create(ctx context.Context, d *driver.Driver) error {
	query := `
		INSERT INTO conductores (
			documento, nombre, numero_licencia, telefono, email, direccion,
			calificacion, activo, fecha_vencimiento_licencia
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, estado_licencia, created_at, updated_at
	`

	err := r.db.QueryRow(
		ctx, query,
		d.Documento, d.Nombre, d.NumeroLicencia, d.Telefono, d.Email, d.Direccion,
		d.Calificacion, d.Activo, d.FechaVencimientoLicencia,
	).Scan(&d.ID, &d.EstadoLicencia, &d.CreatedAt, &d.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return xerrors.ErrDuplicateEntry
		}
		return fmt.Errorf("failed to create driver: %w", err)
	}
	return nil
}

func (r *DriverRepository) FindByID(ctx context.Context, id int64) (*driver.Driver, error) {
	query := fmt.Sprintf(`SELECT %s FROM conductores WHERE id = $1`, driverColumns)

	d, err := scanDriver(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find driver: %w", err)
	}
	return d, nil
}

func (r *DriverRepository) FindByDocumento(ctx context.Context, documento string) (*driver.Driver, error) {
	query := fmt.Sprintf(`SELECT %s FROM conductores WHERE documento = $1`, driverColumns)

	d, err := scanDriver(r.db.QueryRow(ctx, query, documento))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find driver by documento: %w", err)
	}
	return d, nil
}

func (r *DriverRepository) Update(ctx context.Context, id int64, d *driver.Driver) error {
	query := `
		UPDATE conductores
		SET nombre = $1, numero_licencia = $2, telefono = $3, email = $4,
		    direccion = $5, calificacion = $6, activo = $7,
		    fecha_vencimiento_licencia = $8, updated_at = $9
		WHERE id = $10
	`

	result, err := r.db.Exec(
		ctx, query,
		d.Nombre, d.NumeroLicencia, d.Telefono, d.Email,
		d.Direccion, d.Calificacion, d.Activo,
		d.FechaVencimientoLicencia, time.Now(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to update driver: %w", err)
	}
	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

func (r *DriverRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM conductores WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete driver: %w", err)
	}
	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

func driverWhere(filters *driver.ListFilters) (string, []interface{}) {
	conditions := []string{}
	args := []interface{}{}
	argPos := 1

	if filters.Busqueda != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(documento ILIKE $%d OR nombre ILIKE $%d OR numero_licencia ILIKE $%d)",
			argPos, argPos, argPos))
		args = append(args, "%"+filters.Busqueda+"%")
		argPos++
	}
	if filters.Activo != nil {
		conditions = append(conditions, fmt.Sprintf("activo = $%d", argPos))
		args = append(args, *filters.Activo)
		argPos++
	}
	if filters.EstadoLicencia != nil {
		conditions = append(conditions, fmt.Sprintf("estado_licencia = $%d", argPos))
		args = append(args, *filters.EstadoLicencia)
		argPos++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}
	return whereClause, args
}

func (r *DriverRepository) List(ctx context.Context, filters *driver.ListFilters) ([]driver.Driver, error) {
	whereClause, args := driverWhere(filters)

	query := fmt.Sprintf(`SELECT %s FROM conductores %s ORDER BY documento`, driverColumns, whereClause)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list drivers: %w", err)
	}
	defer rows.Close()

	drivers := []driver.Driver{}
	for rows.Next() {
		d, err := scanDriver(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan driver: %w", err)
		}
		drivers = append(drivers, *d)
	}
	return drivers, rows.Err()
}

func (r *DriverRepository) Count(ctx context.Context, filters *driver.ListFilters) (int64, error) {
	whereClause, args := driverWhere(filters)

	var total int64
	query := fmt.Sprintf(`SELECT COUNT(*) FROM conductores %s`, whereClause)
	if err := r.db.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count drivers: %w", err)
	}
	return total, nil
}

func (r *DriverRepository) ExistsByDocumento(ctx context.Context, documento string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM conductores WHERE documento = $1)`, documento,
	).Scan(&exists)
	return exists, err
}
