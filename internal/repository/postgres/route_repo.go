// internal/repository/postgres/route_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"flotaops-service/internal/domain/route"
	xerrors "flotaops-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type RouteRepository struct {
	db *pgxpool.Pool
}

func NewRouteRepository(db *pgxpool.Pool) *RouteRepository {
	return &RouteRepository{db: db}
}

const routeColumns = `
	id, numero_viaje, placa, conductor, origen, destino, estado,
	km_inicial, km_final, peso_carga, tarifa_por_kg,
	costo_combustible, precio_por_galon, peajes, viaticos, otros_gastos,
	distancia, ingreso, gasto_total, galones_comprados, km_por_galon, ingreso_por_km,
	fecha_salida, fecha_llegada, created_at, updated_at`

func scanRoute(row pgx.Row) (*route.OrdenRuta, error) {
	var o route.OrdenRuta
	err := row.Scan(
		&o.ID, &o.NumeroViaje, &o.Placa, &o.Conductor, &o.Origen, &o.Destino, &o.Estado,
		&o.KmInicial, &o.KmFinal, &o.PesoCarga, &o.TarifaPorKg,
		&o.CostoCombustible, &o.PrecioPorGalon, &o.Peajes, &o.Viaticos, &o.OtrosGastos,
		&o.Distancia, &o.Ingreso, &o.GastoTotal, &o.GalonesComprados, &o.KmPorGalon, &o.IngresoPorKm,
		&o.FechaSalida, &o.FechaLlegada, &o.CreatedAt, &o.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &o, nil
}

// Create inserts a trip order with its financial snapshot already computed.
func (r *RouteRepository) Create(ctx context.Context, o *route.OrdenRuta) error {
	query := `
		INSERT INTO ordenes_ruta (
			numero_viaje, placa, conductor, origen, destino, estado,
			km_inicial, km_final, peso_carga, tarifa_por_kg,
			costo_combustible, precio_por_galon, peajes, viaticos, otros_gastos,
			distancia, ingreso, gasto_total, galones_comprados, km_por_galon, ingreso_por_km,
			fecha_salida, fecha_llegada
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13,
		          $14, $15, $16, $17, $18, $19, $20, $21, $22, $23)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(
		ctx, query,
		o.NumeroViaje, o.Placa, o.Conductor, o.Origen, o.Destino, o.Estado,
		o.KmInicial, o.KmFinal, o.PesoCarga, o.TarifaPorKg,
		o.CostoCombustible, o.PrecioPorGalon, o.Peajes, o.Viaticos, o.OtrosGastos,
		o.Distancia, o.Ingreso, o.GastoTotal, o.GalonesComprados, o.KmPorGalon, o.IngresoPorKm,
		o.FechaSalida, o.FechaLlegada,
	).Scan(&o.ID, &o.CreatedAt, &o.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return xerrors.ErrDuplicateEntry
		}
		return fmt.Errorf("failed to create route order: %w", err)
	}
	return nil
}

func (r *RouteRepository) FindByID(ctx context.Context, id int64) (*route.OrdenRuta, error) {
	query := fmt.Sprintf(`SELECT %s FROM ordenes_ruta WHERE id = $1`, routeColumns)

	o, err := scanRoute(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find route order: %w", err)
	}
	return o, nil
}

func (r *RouteRepository) FindByNumeroViaje(ctx context.Context, numero string) (*route.OrdenRuta, error) {
	query := fmt.Sprintf(`SELECT %s FROM ordenes_ruta WHERE numero_viaje = $1`, routeColumns)

	o, err := scanRoute(r.db.QueryRow(ctx, query, numero))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find route order by numero_viaje: %w", err)
	}
	return o, nil
}

func (r *RouteRepository) Update(ctx context.Context, id int64, o *route.OrdenRuta) error {
	query := `
		UPDATE ordenes_ruta
		SET conductor = $1, origen = $2, destino = $3, estado = $4,
		    km_inicial = $5, km_final = $6, peso_carga = $7, tarifa_por_kg = $8,
		    costo_combustible = $9, precio_por_galon = $10,
		    peajes = $11, viaticos = $12, otros_gastos = $13,
		    distancia = $14, ingreso = $15, gasto_total = $16,
		    galones_comprados = $17, km_por_galon = $18, ingreso_por_km = $19,
		    fecha_salida = $20, fecha_llegada = $21, updated_at = $22
		WHERE id = $23
	`

	result, err := r.db.Exec(
		ctx, query,
		o.Conductor, o.Origen, o.Destino, o.Estado,
		o.KmInicial, o.KmFinal, o.PesoCarga, o.TarifaPorKg,
		o.CostoCombustible, o.PrecioPorGalon,
		o.Peajes, o.Viaticos, o.OtrosGastos,
		o.Distancia, o.Ingreso, o.GastoTotal,
		o.GalonesComprados, o.KmPorGalon, o.IngresoPorKm,
		o.FechaSalida, o.FechaLlegada, time.Now(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to update route order: %w", err)
	}
	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

func (r *RouteRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM ordenes_ruta WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete route order: %w", err)
	}
	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

func routeWhere(filters *route.ListFilters) (string, []interface{}) {
	conditions := []string{}
	args := []interface{}{}
	argPos := 1

	if filters.Busqueda != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(numero_viaje ILIKE $%d OR placa ILIKE $%d OR conductor ILIKE $%d OR origen ILIKE $%d OR destino ILIKE $%d)",
			argPos, argPos, argPos, argPos, argPos))
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
	if filters.Estado != nil {
		conditions = append(conditions, fmt.Sprintf("estado = $%d", argPos))
		args = append(args, *filters.Estado)
		argPos++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}
	return whereClause, args
}

func (r *RouteRepository) List(ctx context.Context, filters *route.ListFilters) ([]route.OrdenRuta, error) {
	whereClause, args := routeWhere(filters)

	query := fmt.Sprintf(`SELECT %s FROM ordenes_ruta %s ORDER BY numero_viaje`, routeColumns, whereClause)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list route orders: %w", err)
	}
	defer rows.Close()

	orders := []route.OrdenRuta{}
	for rows.Next() {
		o, err := scanRoute(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan route order: %w", err)
		}
		orders = append(orders, *o)
	}
	return orders, rows.Err()
}

func (r *RouteRepository) Count(ctx context.Context, filters *route.ListFilters) (int64, error) {
	whereClause, args := routeWhere(filters)

	var total int64
	query := fmt.Sprintf(`SELECT COUNT(*) FROM ordenes_ruta %s`, whereClause)
	if err := r.db.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count route orders: %w", err)
	}
	return total, nil
}
