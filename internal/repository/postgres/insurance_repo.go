// internal/repository/postgres/insurance_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"flotaops-service/internal/domain/insurance"
	xerrors "flotaops-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type InsuranceRepository struct {
	db *pgxpool.Pool
}

func NewInsuranceRepository(db *pgxpool.Pool) *InsuranceRepository {
	return &InsuranceRepository{db: db}
}

const insuranceColumns = `
	id, placa, aseguradora, numero_poliza, fecha_inicio, fecha_vencimiento,
	importe_pagado, fecha_pago, estado_poliza, created_at, updated_at`

func scanPolicy(row pgx.Row) (*insurance.SeguroVehiculo, error) {
	var p insurance.SeguroVehiculo
	err := row.Scan(
		&p.ID, &p.Placa, &p.Aseguradora, &p.NumeroPoliza, &p.FechaInicio, &p.FechaVencimiento,
		&p.ImportePagado, &p.FechaPago, &p.EstadoPoliza, &p.CreatedAt, &p.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// Create inserts a policy. estado_poliza is assigned by the database from
// the validity dates, so it is read back rather than written.
func (r *InsuranceRepository) Create(ctx context.Context, p *insurance.SeguroVehiculo) error {
	query := `
		INSERT INTO seguros_vehiculo (
			placa, aseguradora, numero_poliza, fecha_inicio, fecha_vencimiento,
			importe_pagado, fecha_pago
		) VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, estado_poliza, created_at, updated_at
	`

	err := r.db.QueryRow(
		ctx, query,
		p.Placa, p.Aseguradora, p.NumeroPoliza, p.FechaInicio, p.FechaVencimiento,
		p.ImportePagado, p.FechaPago,
	).Scan(&p.ID, &p.EstadoPoliza, &p.CreatedAt, &p.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return xerrors.ErrDuplicateEntry
		}
		return fmt.Errorf("failed to create policy: %w", err)
	}
	return nil
}

func (r *InsuranceRepository) FindByID(ctx context.Context, id int64) (*insurance.SeguroVehiculo, error) {
	query := fmt.Sprintf(`SELECT %s FROM seguros_vehiculo WHERE id = $1`, insuranceColumns)

	p, err := scanPolicy(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find policy: %w", err)
	}
	return p, nil
}

func (r *InsuranceRepository) Update(ctx context.Context, id int64, p *insurance.SeguroVehiculo) error {
	query := `
		UPDATE seguros_vehiculo
		SET aseguradora = $1, numero_poliza = $2, fecha_inicio = $3,
		    fecha_vencimiento = $4, importe_pagado = $5, fecha_pago = $6,
		    updated_at = $7
		WHERE id = $8
		RETURNING estado_poliza
	`

	err := r.db.QueryRow(
		ctx, query,
		p.Aseguradora, p.NumeroPoliza, p.FechaInicio, p.FechaVencimiento,
		p.ImportePagado, p.FechaPago, time.Now(), id,
	).Scan(&p.EstadoPoliza)

	if errors.Is(err, pgx.ErrNoRows) {
		return xerrors.ErrNotFound
	}
	if err != nil {
		if isUniqueViolation(err) {
			return xerrors.ErrDuplicateEntry
		}
		return fmt.Errorf("failed to update policy: %w", err)
	}
	return nil
}

func (r *InsuranceRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM seguros_vehiculo WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete policy: %w", err)
	}
	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

func insuranceWhere(filters *insurance.ListFilters) (string, []interface{}) {
	conditions := []string{}
	args := []interface{}{}
	argPos := 1

	if filters.Busqueda != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(placa ILIKE $%d OR aseguradora ILIKE $%d OR numero_poliza ILIKE $%d)",
			argPos, argPos, argPos))
		args = append(args, "%"+filters.Busqueda+"%")
		argPos++
	}
	if filters.Placa != nil {
		conditions = append(conditions, fmt.Sprintf("placa = $%d", argPos))
		args = append(args, *filters.Placa)
		argPos++
	}
	if filters.Aseguradora != nil {
		conditions = append(conditions, fmt.Sprintf("aseguradora = $%d", argPos))
		args = append(args, *filters.Aseguradora)
		argPos++
	}
	if filters.EstadoPoliza != nil {
		conditions = append(conditions, fmt.Sprintf("estado_poliza = $%d", argPos))
		args = append(args, *filters.EstadoPoliza)
		argPos++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}
	return whereClause, args
}

func (r *InsuranceRepository) List(ctx context.Context, filters *insurance.ListFilters) ([]insurance.SeguroVehiculo, error) {
	whereClause, args := insuranceWhere(filters)

	query := fmt.Sprintf(`SELECT %s FROM seguros_vehiculo %s ORDER BY numero_poliza`, insuranceColumns, whereClause)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list policies: %w", err)
	}
	defer rows.Close()

	policies := []insurance.SeguroVehiculo{}
	for rows.Next() {
		p, err := scanPolicy(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan policy: %w", err)
		}
		policies = append(policies, *p)
	}
	return policies, rows.Err()
}

func (r *InsuranceRepository) Count(ctx context.Context, filters *insurance.ListFilters) (int64, error) {
	whereClause, args := insuranceWhere(filters)

	var total int64
	query := fmt.Sprintf(`SELECT COUNT(*) FROM seguros_vehiculo %s`, whereClause)
	if err := r.db.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count policies: %w", err)
	}
	return total, nil
}

func (r *InsuranceRepository) ListByPlaca(ctx context.Context, placa string) ([]insurance.SeguroVehiculo, error) {
	query := fmt.Sprintf(`SELECT %s FROM seguros_vehiculo WHERE placa = $1 ORDER BY fecha_vencimiento DESC`, insuranceColumns)

	rows, err := r.db.Query(ctx, query, placa)
	if err != nil {
		return nil, fmt.Errorf("failed to list policies by placa: %w", err)
	}
	defer rows.Close()

	policies := []insurance.SeguroVehiculo{}
	for rows.Next() {
		p, err := scanPolicy(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan policy: %w", err)
		}
		policies = append(policies, *p)
	}
	return policies, rows.Err()
}
