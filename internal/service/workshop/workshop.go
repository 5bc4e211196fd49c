// internal/service/workshop/workshop.go
package workshop

import (
	"context"
	"fmt"
	"strings"

	"flotaops-service/internal/domain/workshop"
	"flotaops-service/internal/store"

	"github.com/lib/pq"
	"go.uber.org/zap"
)

type Service struct {
	repo   workshop.Repository
	store  *store.WorkshopStore
	logger *zap.Logger
}

func NewService(repo workshop.Repository, st *store.WorkshopStore, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		store:  st,
		logger: logger,
	}
}

// Create registers a maintenance workshop. Specialities are normalised to
// lower case so the per-speciality aggregates stay consistent.
func (s *Service) Create(ctx context.Context, req *workshop.CreateWorkshopRequest) (*workshop.Taller, error) {
	nombre := strings.TrimSpace(req.Nombre)
	if nombre == "" {
		return nil, fmt.Errorf("nombre is required")
	}

	t := &workshop.Taller{
		Nombre:         nombre,
		Direccion:      req.Direccion,
		Telefono:       req.Telefono,
		Email:          strings.ToLower(strings.TrimSpace(req.Email)),
		Contacto:       req.Contacto,
		Especialidades: normalizeEspecialidades(req.Especialidades),
		Activo:         true,
		Calificacion:   req.Calificacion,
		Horario:        req.Horario,
		SitioWeb:       req.SitioWeb,
		Notas:          req.Notas,
	}

	if err := s.repo.Create(ctx, t); err != nil {
		s.logger.Error("failed to create workshop", zap.String("nombre", nombre), zap.Error(err))
		return nil, fmt.Errorf("failed to create workshop: %w", err)
	}

	if s.store != nil {
		s.store.Add(*t)
	}

	s.logger.Info("workshop created", zap.Int64("id", t.ID), zap.String("nombre", t.Nombre))
	return t, nil
}

// Get returns one workshop.
func (s *Service) Get(ctx context.Context, id int64) (*workshop.Taller, error) {
	return s.repo.FindByID(ctx, id)
}

// Update applies a partial update.
func (s *Service) Update(ctx context.Context, id int64, req *workshop.UpdateWorkshopRequest) (*workshop.Taller, error) {
	t, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Nombre != nil {
		t.Nombre = *req.Nombre
	}
	if req.Direccion != nil {
		t.Direccion = *req.Direccion
	}
	if req.Telefono != nil {
		t.Telefono = *req.Telefono
	}
	if req.Email != nil {
		t.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Contacto != nil {
		t.Contacto = *req.Contacto
	}
	if req.Especialidades != nil {
		t.Especialidades = normalizeEspecialidades(*req.Especialidades)
	}
	if req.Activo != nil {
		t.Activo = *req.Activo
	}
	if req.Calificacion != nil {
		if *req.Calificacion < 0 || *req.Calificacion > 5 {
			return nil, fmt.Errorf("calificacion must be between 0 and 5")
		}
		t.Calificacion = *req.Calificacion
	}
	if req.Horario != nil {
		t.Horario = *req.Horario
	}
	if req.SitioWeb != nil {
		t.SitioWeb = *req.SitioWeb
	}
	if req.Notas != nil {
		t.Notas = *req.Notas
	}

	if err := s.repo.Update(ctx, id, t); err != nil {
		s.logger.Error("failed to update workshop", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to update workshop: %w", err)
	}

	if s.store != nil {
		s.store.Update(*t)
	}

	s.logger.Info("workshop updated", zap.Int64("id", id))
	return t, nil
}

// Delete removes a workshop.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if s.store != nil {
		s.store.Remove(id)
	}
	s.logger.Info("workshop deleted", zap.Int64("id", id))
	return nil
}

// List returns workshops matching the filters plus the total count.
func (s *Service) List(ctx context.Context, filters *workshop.ListFilters) ([]workshop.Taller, int64, error) {
	items, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list workshops: %w", err)
	}
	total, err := s.repo.Count(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count workshops: %w", err)
	}

	if s.store != nil && isZeroFilters(filters) {
		s.store.SetAll(items)
	}
	return items, total, nil
}

// Stats reloads the full collection and returns the workshop aggregates.
func (s *Service) Stats(ctx context.Context) (workshop.Stats, error) {
	if s.store == nil {
		return workshop.Stats{}, fmt.Errorf("workshop store not configured")
	}
	items, err := s.repo.List(ctx, &workshop.ListFilters{})
	if err != nil {
		return workshop.Stats{}, fmt.Errorf("failed to load workshops: %w", err)
	}
	s.store.SetAll(items)
	return s.store.Stats(), nil
}

func normalizeEspecialidades(in []string) pq.StringArray {
	out := make(pq.StringArray, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, e := range in {
		e = strings.ToLower(strings.TrimSpace(e))
		if e == "" || seen[e] {
			continue
		}
		seen[e] = true
		out = append(out, e)
	}
	return out
}

func isZeroFilters(f *workshop.ListFilters) bool {
	if f == nil {
		return true
	}
	return f.Busqueda == "" && f.Activo == nil && f.Especialidad == nil
}
