// internal/service/fine/fine.go
package fine

import (
	"context"
	"fmt"
	"strings"

	"flotaops-service/internal/domain/fine"
	"flotaops-service/internal/store"

	"go.uber.org/zap"
)

type Service struct {
	repo   fine.Repository
	store  *store.FineStore
	logger *zap.Logger
}

func NewService(repo fine.Repository, st *store.FineStore, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		store:  st,
		logger: logger,
	}
}

// Create registers a traffic fine. The paid amount may not exceed the fine
// amount; debe and estado_pago are derived, never taken from the request.
func (s *Service) Create(ctx context.Context, req *fine.CreateFineRequest) (*fine.MultaConductor, error) {
	if req.ImportePagado > req.ImporteMulta {
		return nil, fmt.Errorf("importe_pagado cannot exceed importe_multa")
	}

	m := &fine.MultaConductor{
		NumeroViaje:    strings.TrimSpace(req.NumeroViaje),
		Placa:          strings.ToUpper(strings.TrimSpace(req.Placa)),
		Conductor:      strings.TrimSpace(req.Conductor),
		TipoInfraccion: req.TipoInfraccion,
		ImporteMulta:   req.ImporteMulta,
		ImportePagado:  req.ImportePagado,
		Notas:          req.Notas,
	}

	if err := s.repo.Create(ctx, m); err != nil {
		s.logger.Error("failed to create fine", zap.String("placa", m.Placa), zap.Error(err))
		return nil, fmt.Errorf("failed to create fine: %w", err)
	}

	fine.Derive(m)
	if s.store != nil {
		s.store.Add(*m)
	}

	s.logger.Info("fine created",
		zap.Int64("id", m.ID),
		zap.String("conductor", m.Conductor),
		zap.Float64("importe", m.ImporteMulta))
	return m, nil
}

// Get returns one fine with its derived payment fields.
func (s *Service) Get(ctx context.Context, id int64) (*fine.MultaConductor, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	fine.Derive(m)
	return m, nil
}

// Update applies a partial update, keeping importe_pagado within the fine
// amount, and re-derives the payment bucket.
func (s *Service) Update(ctx context.Context, id int64, req *fine.UpdateFineRequest) (*fine.MultaConductor, error) {
	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.NumeroViaje != nil {
		m.NumeroViaje = *req.NumeroViaje
	}
	if req.Placa != nil {
		m.Placa = strings.ToUpper(strings.TrimSpace(*req.Placa))
	}
	if req.Conductor != nil {
		m.Conductor = *req.Conductor
	}
	if req.TipoInfraccion != nil {
		m.TipoInfraccion = *req.TipoInfraccion
	}
	if req.ImporteMulta != nil {
		m.ImporteMulta = *req.ImporteMulta
	}
	if req.ImportePagado != nil {
		m.ImportePagado = *req.ImportePagado
	}
	if req.Notas != nil {
		m.Notas = *req.Notas
	}
	if m.ImportePagado > m.ImporteMulta {
		return nil, fmt.Errorf("importe_pagado cannot exceed importe_multa")
	}

	if err := s.repo.Update(ctx, id, m); err != nil {
		s.logger.Error("failed to update fine", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to update fine: %w", err)
	}

	fine.Derive(m)
	if s.store != nil {
		s.store.Update(*m)
	}

	s.logger.Info("fine updated", zap.Int64("id", id))
	return m, nil
}

// RegisterPayment adds a payment on top of what has already been paid.
func (s *Service) RegisterPayment(ctx context.Context, id int64, importe float64) (*fine.MultaConductor, error) {
	if importe <= 0 {
		return nil, fmt.Errorf("payment amount must be positive")
	}

	m, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	nuevo := m.ImportePagado + importe
	if nuevo > m.ImporteMulta {
		return nil, fmt.Errorf("payment exceeds outstanding amount")
	}
	m.ImportePagado = nuevo

	if err := s.repo.Update(ctx, id, m); err != nil {
		s.logger.Error("failed to register fine payment", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to register fine payment: %w", err)
	}

	fine.Derive(m)
	if s.store != nil {
		s.store.Update(*m)
	}

	s.logger.Info("fine payment registered",
		zap.Int64("id", id),
		zap.Float64("importe", importe),
		zap.String("estado_pago", string(m.EstadoPago)))
	return m, nil
}

// Delete removes a fine.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if s.store != nil {
		s.store.Remove(id)
	}
	s.logger.Info("fine deleted", zap.Int64("id", id))
	return nil
}

// List returns fines matching the filters, derived, plus the total count.
func (s *Service) List(ctx context.Context, filters *fine.ListFilters) ([]fine.MultaConductor, int64, error) {
	items, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list fines: %w", err)
	}
	total, err := s.repo.Count(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count fines: %w", err)
	}

	for i := range items {
		fine.Derive(&items[i])
	}
	if s.store != nil && isZeroFilters(filters) {
		s.store.SetAll(items)
	}
	return items, total, nil
}

// ListByPlaca returns every fine on a plate, derived.
func (s *Service) ListByPlaca(ctx context.Context, placa string) ([]fine.MultaConductor, error) {
	items, err := s.repo.ListByPlaca(ctx, strings.ToUpper(strings.TrimSpace(placa)))
	if err != nil {
		return nil, fmt.Errorf("failed to list fines by placa: %w", err)
	}
	for i := range items {
		fine.Derive(&items[i])
	}
	return items, nil
}

// Stats reloads the full collection and returns the fine aggregates.
func (s *Service) Stats(ctx context.Context) (fine.Stats, error) {
	if s.store == nil {
		return fine.Stats{}, fmt.Errorf("fine store not configured")
	}
	items, err := s.repo.List(ctx, &fine.ListFilters{})
	if err != nil {
		return fine.Stats{}, fmt.Errorf("failed to load fines: %w", err)
	}
	s.store.SetAll(items)
	return s.store.Stats(), nil
}

func isZeroFilters(f *fine.ListFilters) bool {
	if f == nil {
		return true
	}
	return f.Busqueda == "" && f.Placa == nil && f.Conductor == nil &&
		f.TipoInfraccion == nil && f.EstadoPago == nil
}
