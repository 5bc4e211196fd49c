// internal/repository/postgres/workshop_repo.go
package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"flotaops-service/internal/domain/workshop"
	xerrors "flotaops-service/internal/pkg/errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type WorkshopRepository struct {
	db *pgxpool.Pool
}

func NewWorkshopRepository(db *pgxpool.Pool) *WorkshopRepository {
	return &WorkshopRepository{db: db}
}

const workshopColumns = `
	id, nombre, direccion, telefono, email, contacto, especialidades,
	activo, calificacion, horario, sitio_web, notas, created_at, updated_at`

func scanWorkshop(row pgx.Row) (*workshop.Taller, error) {
	var t workshop.Taller
	err := row.Scan(
		&t.ID, &t.Nombre, &t.Direccion, &t.Telefono, &t.Email, &t.Contacto, &t.Especialidades,
		&t.Activo, &t.Calificacion, &t.Horario, &t.SitioWeb, &t.Notas, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *WorkshopRepository) Create(ctx context.Context, t *workshop.Taller) error {
	query := `
		INSERT INTO talleres (
			nombre, direccion, telefono, email, contacto, especialidades,
			activo, calificacion, horario, sitio_web, notas
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, created_at, updated_at
	`

	err := r.db.QueryRow(
		ctx, query,
		t.Nombre, t.Direccion, t.Telefono, t.Email, t.Contacto, t.Especialidades,
		t.Activo, t.Calificacion, t.Horario, t.SitioWeb, t.Notas,
	).Scan(&t.ID, &t.CreatedAt, &t.UpdatedAt)

	if err != nil {
		if isUniqueViolation(err) {
			return xerrors.ErrDuplicateEntry
		}
		return fmt.Errorf("failed to create workshop: %w", err)
	}
	return nil
}

func (r *WorkshopRepository) FindByID(ctx context.Context, id int64) (*workshop.Taller, error) {
	query := fmt.Sprintf(`SELECT %s FROM talleres WHERE id = $1`, workshopColumns)

	t, err := scanWorkshop(r.db.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, xerrors.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find workshop: %w", err)
	}
	return t, nil
}

func (r *WorkshopRepository) Update(ctx context.Context, id int64, t *workshop.Taller) error {
	query := `
		UPDATE talleres
		SET nombre = $1, direccion = $2, telefono = $3, email = $4, contacto = $5,
		    especialidades = $6, activo = $7, calificacion = $8, horario = $9,
		    sitio_web = $10, notas = $11, updated_at = $12
		WHERE id = $13
	`

	result, err := r.db.Exec(
		ctx, query,
		t.Nombre, t.Direccion, t.Telefono, t.Email, t.Contacto,
		t.Especialidades, t.Activo, t.Calificacion, t.Horario,
		t.SitioWeb, t.Notas, time.Now(), id,
	)
	if err != nil {
		return fmt.Errorf("failed to update workshop: %w", err)
	}
	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

func (r *WorkshopRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.Exec(ctx, `DELETE FROM talleres WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete workshop: %w", err)
	}
	if result.RowsAffected() == 0 {
		return xerrors.ErrNotFound
	}
	return nil
}

func workshopWhere(filters *workshop.ListFilters) (string, []interface{}) {
	conditions := []string{}
	args := []interface{}{}
	argPos := 1

	if filters.Busqueda != "" {
		conditions = append(conditions, fmt.Sprintf(
			"(nombre ILIKE $%d OR direccion ILIKE $%d OR contacto ILIKE $%d)",
			argPos, argPos, argPos))
		args = append(args, "%"+filters.Busqueda+"%")
		argPos++
	}
	if filters.Activo != nil {
		conditions = append(conditions, fmt.Sprintf("activo = $%d", argPos))
		args = append(args, *filters.Activo)
		argPos++
	}
	if filters.Especialidad != nil {
		conditions = append(conditions, fmt.Sprintf("$%d = ANY(especialidades)", argPos))
		args = append(args, *filters.Especialidad)
		argPos++
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}
	return whereClause, args
}

func (r *WorkshopRepository) List(ctx context.Context, filters *workshop.ListFilters) ([]workshop.Taller, error) {
	whereClause, args := workshopWhere(filters)

	query := fmt.Sprintf(`SELECT %s FROM talleres %s ORDER BY nombre`, workshopColumns, whereClause)

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list workshops: %w", err)
	}
	defer rows.Close()

	workshops := []workshop.Taller{}
	for rows.Next() {
		t, err := scanWorkshop(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan workshop: %w", err)
		}
		workshops = append(workshops, *t)
	}
	return workshops, rows.Err()
}

func (r *WorkshopRepository) Count(ctx context.Context, filters *workshop.ListFilters) (int64, error) {
	whereClause, args := workshopWhere(filters)

	var total int64
	query := fmt.Sprintf(`SELECT COUNT(*) FROM talleres %s`, whereClause)
	if err := r.db.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("failed to count workshops: %w", err)
	}
	return total, nil
}
