// internal/repository/postgres/vehicle_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"flotaops-service/internal/domain/vehicle"
	xerrors "flotaops-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type VehicleRepository struct {
	db *pgxpool.Pool
}

func NewVehicleRepository(db *pgxpool.Pool) *VehicleRepository {
	return &VehicleRepository{db: db}
}

const vehicleColumns = `
	id, placa, numero_serie, tipo, marca, modelo, color, anio,
	capacidad_carga, estado, maintenance_cycle, initial_km,
	prev_maintenance_km, current_km, created_at, updated_at`

func scanVehicle(row pgx.Row) (*vehicle.Vehicle, error) {
	var v vehicle.Vehicle
	err := row.Scan(
		&v.ID, &v.Placa, &v.NumeroSerie, &v.Tipo, &v.Marca, &v.Modelo, &v.Color, &v.Anio,
		&v.CapacidadCarga, &v.Estado, &v.MaintenanceCycle, &v.InitialKm,
		&v.PrevMaintenanceKm, &v.CurrentKm, &v.CreatedAt, &v.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &v, nil
}

// Create inserts a vehicle and fills the generated id and timestamps.
func (r *VehicleRepository) Create(ctx context.Context, v *vehicle.Vehicle) error {
	query := `
		INSERT INTO vehiculos (
			placa, numero_serie, tipo, marca, modelo, color, anio,
			capacidad_carga, estado, maintenance_cycle, initial_km,
			prev_maintenance_km, current_km
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(
		ctx, query,
		v.Placa, v.NumeroSerie, v.Tipo, v.Marca, v.Modelo, v.Color, v.Anio,
		v.CapacidadCarga, v.Estado, v.MaintenanceCycle, v.InitialKm,
		v.PrevMaintenanceKm, v.CurrentKm,
	).Scan(&v.ID, &v.CreatedAt, &v.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return xerrors.ErrDuplicateEntry
		}
		return fmt.Errorf("failed to create vehicle: %w", err)
	}
	return nil
}

func (r *VehicleRepository) FindByID(ctx context.Context, id int64) (*vehicle.Vehicle, error) {
	query := fmt.Sprintf(`SELECT %s FROM vehiculos WHERE id = $1`, vehicleColumns)

	v, err := scanVehicle(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find vehicle: %w", err)
	}
	return v, nil
}

func (r *VehicleRepository) FindByPlaca(ctx context.Context, placa string) (*vehicle.Vehicle, error) {
	query := fmt.Sprintf(`SELECT %s FROM vehiculos WHERE placa = $1`, vehicleColumns)

	v, err := scanVehicle(r.db.QueryRow(ctx, query, placa))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find vehicle by placa: %w", err)
	}
	return v, nil
}

// Update rewrites the mutable columns of a vehicle. The plate and serial
// number are immutable after registration.
func (r *VehicleRepository) Update(ctx context.Context, id int64, v *vehicle.Vehicle) error {
	query := `
		UPDATE vehiculos
		SET tipo = $1, marca = $2, modelo = $3, color = $4, anio = $5,
		    capacidad_carga = $6, estado = $7, maintenance_cycle = $8,
		    prev_maintenance_km = $9, current_km = $10, updated_at = $11
		WHERE id = $12
	`

	result, err := r.db.Exec(
		ctx, query,
		v.Tipo, v.Marca, v.Modelo, v.Color, v.Anio,
		v.CapacidadCarga, v.Estado, v.MaintenanceCycle,
		v.PrevMaintenanceKm, v.CurrentKm, time.Now(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to update vehicle: %w", err)
	}
	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

func (r *VehicleRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM vehiculos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete vehicle: %w", err)
	}
	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

func vehicleWhere(filters *vehicle.ListFilters) (string, []interface{}) {
	conditions := []string{}
	args := []interface{}{}
	argPos := 1

	if filters.Busqueda != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(placa ILIKE $%d OR marca ILIKE $%d OR modelo ILIKE $%d OR numero_serie ILIKE $%d)",
			argPos, argPos, argPos, argPos))
		args = append(args, "%"+filters.Busqueda+"%")
		argPos++
	}
	if filters.Estado != nil {
		conditions = append(conditions, fmt.Sprintf("estado = $%d", argPos))
		args = append(args, *filters.Estado)
		argPos++
	}
	if filters.Tipo != nil {
		conditions = append(conditions, fmt.Sprintf("tipo = $%d", argPos))
		args = append(args, *filters.Tipo)
		argPos++
	}
	if filters.Marca != nil {
		conditions = append(conditions, fmt.Sprintf("marca = $%d", argPos))
		args = append(args, *filters.Marca)
		argPos++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}
	return whereClause, args
}

// List returns the vehicles matching the filters, ordered by plate.
func (r *VehicleRepository) List(ctx context.Context, filters *vehicle.ListFilters) ([]vehicle.Vehicle, error) {
	whereClause, args := vehicleWhere(filters)

	query := fmt.Sprintf(`SELECT %s FROM vehiculos %s ORDER BY placa`, vehicleColumns, whereClause)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list vehicles: %w", err)
	}
	defer rows.Close()

	vehicles := []vehicle.Vehicle{}
	for rows.Next() {
		v, err := scanVehicle(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan vehicle: %w", err)
		}
		vehicles = append(vehicles, *v)
	}
	return vehicles, rows.Err()
}

func (r *VehicleRepository) Count(ctx context.Context, filters *vehicle.ListFilters) (int64, error) {
	whereClause, args := vehicleWhere(filters)

	var total int64
	query := fmt.Sprintf(`SELECT COUNT(*) FROM vehiculos %s`, whereClause)
	if err := r.db.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count vehicles: %w", err)
	}
	return total, nil
}

func (r *VehicleRepository) ExistsByPlaca(ctx context.Context, placa string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM vehiculos WHERE placa = $1)`, placa,
	).Scan(&exists)
	return exists, err
}
