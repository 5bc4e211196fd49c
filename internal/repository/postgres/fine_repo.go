// internal/repository/postgres/fine_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"flotaops-service/internal/domain/fine"
	xerrors "flotaops-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type FineRepository struct {
	db *pgxpool.Pool
}

func NewFineRepository(db *pgxpool.Pool) *FineRepository {
	return &FineRepository{db: db}
}

const fineColumns = `
	id, numero_viaje, placa, conductor, tipo_infraccion,
	importe_multa, importe_pagado, notas, created_at, updated_at`

func scanFine(row pgx.Row) (*fine.MultaConductor, error) {
	var m fine.MultaConductor
	err := row.Scan(
		&m.ID, &m.NumeroViaje, &m.Placa, &m.Conductor, &m.TipoInfraccion,
		&m.ImporteMulta, &m.ImportePagado, &m.Notas, &m.CreatedAt, &m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func (r *FineRepository) Create(ctx context.Context, m *fine.MultaConductor) error {
	query := `
		INSERT INTO multas_conductor (
			numero_viaje, placa, conductor, tipo_infraccion,
			importe_multa, importe_pagado, notas
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(
		ctx, query,
		m.NumeroViaje, m.Placa, m.Conductor, m.TipoInfraccion,
		m.ImporteMulta, m.ImportePagado, m.Notas,
	).Scan(&m.ID, &m.CreatedAt, &m.UpdatedAt)

	if err != nil {
		return fmt.Errorf("failed to create fine: %w", err)
	}
	return nil
}

func (r *FineRepository) FindByID(ctx context.Context, id int64) (*fine.MultaConductor, error) {
	query := fmt.Sprintf(`SELECT %s FROM multas_conductor WHERE id = $1`, fineColumns)

	m, err := scanFine(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find fine: %w", err)
	}
	return m, nil
}

func (r *FineRepository) Update(ctx context.Context, id int64, m *fine.MultaConductor) error {
	query := `
		UPDATE multas_conductor
		SET numero_viaje = $1, placa = $2, conductor = $3, tipo_infraccion = $4,
		    importe_multa = $5, importe_pagado = $6, notas = $7, updated_at = $8
		WHERE id = $9
	`

	result, err := r.db.Exec(
		ctx, query,
		m.NumeroViaje, m.Placa, m.Conductor, m.TipoInfraccion,
		m.ImporteMulta, m.ImportePagado, m.Notas, time.Now(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to update fine: %w", err)
	}
	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

func (r *FineRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM multas_conductor WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete fine: %w", err)
	}
	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

func fineWhere(filters *fine.ListFilters) (string, []interface{}) {
	conditions := []string{}
	args := []interface{}{}
	argPos := 1

	if filters.Busqueda != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(numero_viaje ILIKE $%d OR placa ILIKE $%d OR conductor ILIKE $%d OR tipo_infraccion ILIKE $%d)",
			argPos, argPos, argPos, argPos))
		args = append(args, "%"+filters.Busqueda+"%")
		argPos++
	}
	if filters.Placa != nil {
		conditions = append(conditions, fmt.Sprintf("placa = $%d", argPos))
		args = append(args, *filters.Placa)
		argPos++
	}
	if filters.Conductor != nil {
		conditions = append(conditions, fmt.Sprintf("conductor = $%d", argPos))
		args = append(args, *filters.Conductor)
		argPos++
	}
	if filters.TipoInfraccion != nil {
		conditions = append(conditions, fmt.Sprintf("tipo_infraccion = $%d", argPos))
		args = append(args, *filters.TipoInfraccion)
		argPos++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}
	return whereClause, args
}

// List returns fines matching the filters. EstadoPago is derived from the
// amounts after load, so it is not part of the SQL filter.
func (r *FineRepository) List(ctx context.Context, filters *fine.ListFilters) ([]fine.MultaConductor, error) {
	whereClause, args := fineWhere(filters)

	query := fmt.Sprintf(`SELECT %s FROM multas_conductor %s ORDER BY id`, fineColumns, whereClause)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list fines: %w", err)
	}
	defer rows.Close()

	fines := []fine.MultaConductor{}
	for rows.Next() {
		m, err := scanFine(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fine: %w", err)
		}
		fines = append(fines, *m)
	}
	return fines, rows.Err()
}

func (r *FineRepository) Count(ctx context.Context, filters *fine.ListFilters) (int64, error) {
	whereClause, args := fineWhere(filters)

	var total int64
	query := fmt.Sprintf(`SELECT COUNT(*) FROM multas_conductor %s`, whereClause)
	if err := r.db.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count fines: %w", err)
	}
	return total, nil
}

func (r *FineRepository) ListByPlaca(ctx context.Context, placa string) ([]fine.MultaConductor, error) {
	query := fmt.Sprintf(`SELECT %s FROM multas_conductor WHERE placa = $1 ORDER BY id`, fineColumns)

	rows, err := r.db.Query(ctx, query, placa)
	if err != nil {
		return nil, fmt.Errorf("failed to list fines by placa: %w", err)
	}
	defer rows.Close()

	fines := []fine.MultaConductor{}
	for rows.Next() {
		m, err := scanFine(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan fine: %w", err)
		}
		fines = append(fines, *m)
	}
	return fines, rows.Err()
}
