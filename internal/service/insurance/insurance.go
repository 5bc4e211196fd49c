// internal/service/insurance/insurance.go
package insurance

import (
	"context"
	"fmt"
	"strings"
	"time"

	"flotaops-service/internal/domain/insurance"
	"flotaops-service/internal/store"
	"flotaops-service/internal/ws"

	"go.uber.org/zap"
)

type Service struct {
	repo   insurance.Repository
	store  *store.InsuranceStore
	hub    *ws.Hub
	logger *zap.Logger
	now    func() time.Time
}

func NewService(repo insurance.Repository, st *store.InsuranceStore, hub *ws.Hub, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		store:  st,
		hub:    hub,
		logger: logger,
		now:    time.Now,
	}
}

// Create registers an insurance policy. estado_poliza is assigned by the
// database and read back on insert.
func (s *Service) Create(ctx context.Context, req *insurance.CreatePolicyRequest) (*insurance.SeguroVehiculo, error) {
	if !req.FechaVencimiento.After(req.FechaInicio) {
		return nil, fmt.Errorf("fecha_vencimiento must be after fecha_inicio")
	}

	p := &insurance.SeguroVehiculo{
		Placa:            strings.ToUpper(strings.TrimSpace(req.Placa)),
		Aseguradora:      strings.TrimSpace(req.Aseguradora),
		NumeroPoliza:     strings.TrimSpace(req.NumeroPoliza),
		FechaInicio:      req.FechaInicio,
		FechaVencimiento: req.FechaVencimiento,
		ImportePagado:    req.ImportePagado,
		FechaPago:        req.FechaPago,
	}

	if err := s.repo.Create(ctx, p); err != nil {
		s.logger.Error("failed to create policy", zap.String("placa", p.Placa), zap.Error(err))
		return nil, fmt.Errorf("failed to create policy: %w", err)
	}

	insurance.Derive(p, s.now())
	if s.store != nil {
		s.store.Add(*p)
	}
	s.notifyExpiry(p)

	s.logger.Info("insurance policy created",
		zap.Int64("id", p.ID),
		zap.String("placa", p.Placa),
		zap.String("numero_poliza", p.NumeroPoliza))
	return p, nil
}

// Get returns one policy with derived expiry fields.
func (s *Service) Get(ctx context.Context, id int64) (*insurance.SeguroVehiculo, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	insurance.Derive(p, s.now())
	return p, nil
}

// Update applies a partial update. estado_poliza is never written; the
// database reassigns it when the expiry date changes.
func (s *Service) Update(ctx context.Context, id int64, req *insurance.UpdatePolicyRequest) (*insurance.SeguroVehiculo, error) {
	p, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Aseguradora != nil {
		p.Aseguradora = *req.Aseguradora
	}
	if req.NumeroPoliza != nil {
		p.NumeroPoliza = *req.NumeroPoliza
	}
	if req.FechaInicio != nil {
		p.FechaInicio = *req.FechaInicio
	}
	if req.FechaVencimiento != nil {
		p.FechaVencimiento = *req.FechaVencimiento
	}
	if req.ImportePagado != nil {
		p.ImportePagado = *req.ImportePagado
	}
	if req.FechaPago != nil {
		p.FechaPago = *req.FechaPago
	}
	if !p.FechaVencimiento.After(p.FechaInicio) {
		return nil, fmt.Errorf("fecha_vencimiento must be after fecha_inicio")
	}

	if err := s.repo.Update(ctx, id, p); err != nil {
		s.logger.Error("failed to update policy", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to update policy: %w", err)
	}

	insurance.Derive(p, s.now())
	if s.store != nil {
		s.store.Update(*p)
	}
	s.notifyExpiry(p)

	s.logger.Info("insurance policy updated", zap.Int64("id", id))
	return p, nil
}

// Delete removes a policy.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if s.store != nil {
		s.store.Remove(id)
	}
	s.logger.Info("insurance policy deleted", zap.Int64("id", id))
	return nil
}

// List returns policies matching the filters, derived, plus the total count.
func (s *Service) List(ctx context.Context, filters *insurance.ListFilters) ([]insurance.SeguroVehiculo, int64, error) {
	items, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list policies: %w", err)
	}
	total, err := s.repo.Count(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count policies: %w", err)
	}

	now := s.now()
	for i := range items {
		insurance.Derive(&items[i], now)
	}
	if s.store != nil && isZeroFilters(filters) {
		s.store.SetAll(items)
	}
	return items, total, nil
}

// ListByPlaca returns every policy on a plate, derived.
func (s *Service) ListByPlaca(ctx context.Context, placa string) ([]insurance.SeguroVehiculo, error) {
	items, err := s.repo.ListByPlaca(ctx, strings.ToUpper(strings.TrimSpace(placa)))
	if err != nil {
		return nil, fmt.Errorf("failed to list policies by placa: %w", err)
	}
	now := s.now()
	for i := range items {
		insurance.Derive(&items[i], now)
	}
	return items, nil
}

// Stats reloads the full collection and returns the policy aggregates.
func (s *Service) Stats(ctx context.Context) (insurance.Stats, error) {
	if s.store == nil {
		return insurance.Stats{}, fmt.Errorf("insurance store not configured")
	}
	items, err := s.repo.List(ctx, &insurance.ListFilters{})
	if err != nil {
		return insurance.Stats{}, fmt.Errorf("failed to load policies: %w", err)
	}
	s.store.SetAll(items)
	return s.store.Stats(), nil
}

// notifyExpiry publishes an alert when a policy is in the urgent or expired
// severity bucket.
func (s *Service) notifyExpiry(p *insurance.SeguroVehiculo) {
	if s.hub == nil {
		return
	}
	if p.Severidad != insurance.SeveridadUrgente && p.Severidad != insurance.SeveridadVencida {
		return
	}
	mensaje := fmt.Sprintf("Póliza %s de %s vence en %d días", p.NumeroPoliza, p.Placa, p.DiasRestantes)
	if p.Severidad == insurance.SeveridadVencida {
		mensaje = fmt.Sprintf("Póliza %s de %s vencida", p.NumeroPoliza, p.Placa)
	}
	s.hub.Publish(ws.NewAlert(ws.AlertPolicyExpiring, mensaje, map[string]interface{}{
		"seguro_id": p.ID,
		"placa":     p.Placa,
		"dias":      p.DiasRestantes,
		"severidad": p.Severidad,
	}))
}

func isZeroFilters(f *insurance.ListFilters) bool {
	if f == nil {
		return true
	}
	return f.Busqueda == "" && f.Placa == nil && f.Aseguradora == nil && f.EstadoPoliza == nil
}
