// internal/repository/postgres/tax_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"flotaops-service/internal/domain/tax"
	xerrors "flotaops-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type TaxRepository struct {
	db *pgxpool.Pool
}

func NewTaxRepository(db *pgxpool.Pool) *TaxRepository {
	return &TaxRepository{db: db}
}

const taxColumns = `
	id, placa, tipo_impuesto, anio, importe, fecha_pago, estado_pago,
	created_at, updated_at`

func scanTax(row pgx.Row) (*tax.ImpuestoVehiculo, error) {
	var i tax.ImpuestoVehiculo
	err := row.Scan(
		&i.ID, &i.Placa, &i.TipoImpuesto, &i.Anio, &i.Importe, &i.FechaPago, &i.EstadoPago,
		&i.CreatedAt, &i.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &i, nil
}

// Create inserts a tax record. estado_pago is assigned by the database from
// fecha_pago and the due date, so it is read back rather than written.
func (r *TaxRepository) Create(ctx context.Context, i *tax.ImpuestoVehiculo) error {
	query := `
		INSERT INTO impuestos_vehiculo (
			placa, tipo_impuesto, anio, importe, fecha_pago
		) VALUES ($1, $2, $3, $4, $5)
		RETURNING id, estado_pago, created_at, updated_at
	`

	err := r.db.QueryRow(
		ctx, query,
		i.Placa, i.TipoImpuesto, i.Anio, i.Importe, i.FechaPago,
	).Scan(&i.ID, &i.EstadoPago, &i.CreatedAt, &i.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return xerrors.ErrDuplicateEntry
		}
		return fmt.Errorf("failed to create tax record: %w", err)
	}
	return nil
}

func (r *TaxRepository) FindByID(ctx context.Context, id int64) (*tax.ImpuestoVehiculo, error) {
	query := fmt.Sprintf(`SELECT %s FROM impuestos_vehiculo WHERE id = $1`, taxColumns)

	i, err := scanTax(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find tax record: %w", err)
	}
	return i, nil
}

// Update writes the mutable columns. estado_pago stays database-assigned:
// changing fecha_pago or anio makes the database recompute it, so the new
// value is read back into the entity.
func (r *TaxRepository) Update(ctx context.Context, id int64, i *tax.ImpuestoVehiculo) error {
	query := `
		UPDATE impuestos_vehiculo
		SET tipo_impuesto = $1, anio = $2, importe = $3, fecha_pago = $4, updated_at = $5
		WHERE id = $6
		RETURNING estado_pago
	`

	err := r.db.QueryRow(
		ctx, query,
		i.TipoImpuesto, i.Anio, i.Importe, i.FechaPago, time.Now(), id,
	).Scan(&i.EstadoPago)

	if errors.Is(err, pgx.ErrNoRows) {
		return xerrors.ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update tax record: %w", err)
	}
	return nil
}

func (r *TaxRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM impuestos_vehiculo WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete tax record: %w", err)
	}
	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

func taxWhere(filters *tax.ListFilters) (string, []interface{}) {
	conditions := []string{}
	args := []interface{}{}
	argPos := 1

	if filters.Busqueda != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(placa ILIKE $%d OR tipo_impuesto ILIKE $%d)", argPos, argPos))
		args = append(args, "%"+filters.Busqueda+"%")
		argPos++
	}
	if filters.Placa != nil {
		conditions = append(conditions, fmt.Sprintf("placa = $%d", argPos))
		args = append(args, *filters.Placa)
		argPos++
	}
	if filters.TipoImpuesto != nil {
		conditions = append(conditions, fmt.Sprintf("tipo_impuesto = $%d", argPos))
		args = append(args, *filters.TipoImpuesto)
		argPos++
	}
	if filters.Anio != nil {
		conditions = append(conditions, fmt.Sprintf("anio = $%d", argPos))
		args = append(args, *filters.Anio)
		argPos++
	}
	if filters.EstadoPago != nil {
		conditions = append(conditions, fmt.Sprintf("estado_pago = $%d", argPos))
		args = append(args, *filters.EstadoPago)
		argPos++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}
	return whereClause, args
}

func (r *TaxRepository) List(ctx context.Context, filters *tax.ListFilters) ([]tax.ImpuestoVehiculo, error) {
	whereClause, args := taxWhere(filters)

	query := fmt.Sprintf(`SELECT %s FROM impuestos_vehiculo %s ORDER BY anio DESC, placa`, taxColumns, whereClause)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list tax records: %w", err)
	}
	defer rows.Close()

	taxes := []tax.ImpuestoVehiculo{}
	for rows.Next() {
		i, err := scanTax(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tax record: %w", err)
		}
		taxes = append(taxes, *i)
	}
	return taxes, rows.Err()
}

func (r *TaxRepository) Count(ctx context.Context, filters *tax.ListFilters) (int64, error) {
	whereClause, args := taxWhere(filters)

	var total int64
	query := fmt.Sprintf(`SELECT COUNT(*) FROM impuestos_vehiculo %s`, whereClause)
	if err := r.db.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count tax records: %w", err)
	}
	return total, nil
}

func (r *TaxRepository) ListByPlaca(ctx context.Context, placa string) ([]tax.ImpuestoVehiculo, error) {
	query := fmt.Sprintf(`SELECT %s FROM impuestos_vehiculo WHERE placa = $1 ORDER BY anio DESC`, taxColumns)

	rows, err := r.db.Query(ctx, query, placa)
	if err != nil {
		return nil, fmt.Errorf("failed to list tax records by placa: %w", err)
	}
	defer rows.Close()

	taxes := []tax.ImpuestoVehiculo{}
	for rows.Next() {
		i, err := scanTax(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan tax record: %w", err)
		}
		taxes = append(taxes, *i)
	}
	return taxes, rows.Err()
}
