// internal/repository/postgres/catalog_repo.go
package postgres

import (
	"context"
	"fmt"

	"flotaops-service/internal/domain/catalog"

	"github.com/jackc/pgx/v5/pgxpool"
)

type CatalogRepository struct {
	db *pgxpool.Pool
}

func NewCatalogRepository(db *pgxpool.Pool) *CatalogRepository {
	return &CatalogRepository{db: db}
}

func (r *CatalogRepository) ListMarcas(ctx context.Context) ([]catalog.Marca, error) {
	rows, err := r.db.Query(ctx, `SELECT id, nombre FROM marcas ORDER BY nombre`)
	if err != nil {
		return nil, fmt.Errorf("failed to list marcas: %w", err)
	}
	defer rows.Close()

	marcas := []catalog.Marca{}
	for rows.Next() {
		var m catalog.Marca
		if err := rows.Scan(&m.ID, &m.Nombre); err != nil {
			return nil, fmt.Errorf("failed to scan marca: %w", err)
		}
		marcas = append(marcas, m)
	}
	return marcas, rows.Err()
}

// ListModelos returns the models of one brand, or all models when marcaID
// is zero.
func (r *CatalogRepository) ListModelos(ctx context.Context, marcaID int64) ([]catalog.Modelo, error) {
	query := `SELECT id, marca_id, nombre FROM modelos ORDER BY nombre`
	args := []interface{}{}
	if marcaID > 0 {
		query = `SELECT id, marca_id, nombre FROM modelos WHERE marca_id = $1 ORDER BY nombre`
		args = append(args, marcaID)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list modelos: %w", err)
	}
	defer rows.Close()

	modelos := []catalog.Modelo{}
	for rows.Next() {
		var m catalog.Modelo
		if err := rows.Scan(&m.ID, &m.MarcaID, &m.Nombre); err != nil {
			return nil, fmt.Errorf("failed to scan modelo: %w", err)
		}
		modelos = append(modelos, m)
	}
	return modelos, rows.Err()
}

func (r *CatalogRepository) ListTiposVehiculo(ctx context.Context) ([]catalog.TipoVehiculo, error) {
	rows, err := r.db.Query(ctx, `SELECT id, nombre FROM tipos_vehiculo ORDER BY nombre`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tipos de vehiculo: %w", err)
	}
	defer rows.Close()

	tipos := []catalog.TipoVehiculo{}
	for rows.Next() {
		var t catalog.TipoVehiculo
		if err := rows.Scan(&t.ID, &t.Nombre); err != nil {
			return nil, fmt.Errorf("failed to scan tipo de vehiculo: %w", err)
		}
		tipos = append(tipos, t)
	}
	return tipos, rows.Err()
}

func (r *CatalogRepository) ListTiposInfraccion(ctx context.Context) ([]catalog.TipoInfraccion, error) {
	rows, err := r.db.Query(ctx,
		`SELECT id, codigo, descripcion, importe_base FROM tipos_infraccion ORDER BY codigo`)
	if err != nil {
		return nil, fmt.Errorf("failed to list tipos de infraccion: %w", err)
	}
	defer rows.Close()

	tipos := []catalog.TipoInfraccion{}
	for rows.Next() {
		var t catalog.TipoInfraccion
		if err := rows.Scan(&t.ID, &t.Codigo, &t.Descripcion, &t.ImporteBase); err != nil {
			return nil, fmt.Errorf("failed to scan tipo de infraccion: %w", err)
		}
		tipos = append(tipos, t)
	}
	return tipos, rows.Err()
}
