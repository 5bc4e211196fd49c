// internal/service/tax/tax.go
package tax

import (
	"context"
	"fmt"
	"strings"
	"time"

	"flotaops-service/internal/domain/tax"
	"flotaops-service/internal/store"

	"go.uber.org/zap"
)

type Service struct {
	repo   tax.Repository
	store  *store.TaxStore
	logger *zap.Logger
	now    func() time.Time
}

func NewService(repo tax.Repository, st *store.TaxStore, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		store:  st,
		logger: logger,
		now:    time.Now,
	}
}

// Create registers a yearly tax record. estado_pago is never written: the
// database assigns it from fecha_pago and the due date, and the repository
// reads it back.
func (s *Service) Create(ctx context.Context, req *tax.CreateTaxRequest) (*tax.ImpuestoVehiculo, error) {
	i := &tax.ImpuestoVehiculo{
		Placa:        strings.ToUpper(strings.TrimSpace(req.Placa)),
		TipoImpuesto: req.TipoImpuesto,
		Anio:         req.Anio,
		Importe:      req.Importe,
		FechaPago:    req.FechaPago,
	}

	if err := s.repo.Create(ctx, i); err != nil {
		s.logger.Error("failed to create tax record", zap.String("placa", i.Placa), zap.Error(err))
		return nil, fmt.Errorf("failed to create tax record: %w", err)
	}

	if s.store != nil {
		s.store.Add(*i)
	}

	s.logger.Info("tax record created",
		zap.Int64("id", i.ID),
		zap.String("placa", i.Placa),
		zap.Int("anio", i.Anio))
	return i, nil
}

// Get returns one tax record.
func (s *Service) Get(ctx context.Context, id int64) (*tax.ImpuestoVehiculo, error) {
	return s.repo.FindByID(ctx, id)
}

// Update applies a partial update. estado_pago is never taken from the
// request; the repository reads back whatever the database reassigned.
func (s *Service) Update(ctx context.Context, id int64, req *tax.UpdateTaxRequest) (*tax.ImpuestoVehiculo, error) {
	i, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.TipoImpuesto != nil {
		i.TipoImpuesto = *req.TipoImpuesto
	}
	if req.Anio != nil {
		i.Anio = *req.Anio
	}
	if req.Importe != nil {
		i.Importe = *req.Importe
	}
	if req.FechaPago != nil {
		i.FechaPago = req.FechaPago
	}

	if err := s.repo.Update(ctx, id, i); err != nil {
		s.logger.Error("failed to update tax record", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to update tax record: %w", err)
	}

	if s.store != nil {
		s.store.Update(*i)
	}

	s.logger.Info("tax record updated", zap.Int64("id", id))
	return i, nil
}

// MarkPaid settles a tax record with the current time as payment date.
func (s *Service) MarkPaid(ctx context.Context, id int64) (*tax.ImpuestoVehiculo, error) {
	i, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if i.EstadoPago == tax.PagoPagado {
		return i, nil
	}

	now := s.now()
	i.FechaPago = &now

	if err := s.repo.Update(ctx, id, i); err != nil {
		s.logger.Error("failed to mark tax paid", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to mark tax paid: %w", err)
	}

	if s.store != nil {
		s.store.Update(*i)
	}

	s.logger.Info("tax record paid", zap.Int64("id", id))
	return i, nil
}

// Delete removes a tax record.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if s.store != nil {
		s.store.Remove(id)
	}
	s.logger.Info("tax record deleted", zap.Int64("id", id))
	return nil
}

// List returns tax records matching the filters plus the total count.
func (s *Service) List(ctx context.Context, filters *tax.ListFilters) ([]tax.ImpuestoVehiculo, int64, error) {
	items, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list tax records: %w", err)
	}
	total, err := s.repo.Count(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count tax records: %w", err)
	}

	if s.store != nil && isZeroFilters(filters) {
		s.store.SetAll(items)
	}
	return items, total, nil
}

// ListByPlaca returns every tax record on a plate.
func (s *Service) ListByPlaca(ctx context.Context, placa string) ([]tax.ImpuestoVehiculo, error) {
	items, err := s.repo.ListByPlaca(ctx, strings.ToUpper(strings.TrimSpace(placa)))
	if err != nil {
		return nil, fmt.Errorf("failed to list tax records by placa: %w", err)
	}
	return items, nil
}

// Stats reloads the full collection and returns the tax aggregates.
func (s *Service) Stats(ctx context.Context) (tax.Stats, error) {
	if s.store == nil {
		return tax.Stats{}, fmt.Errorf("tax store not configured")
	}
	items, err := s.repo.List(ctx, &tax.ListFilters{})
	if err != nil {
		return tax.Stats{}, fmt.Errorf("failed to load tax records: %w", err)
	}
	s.store.SetAll(items)
	return s.store.Stats(), nil
}

func isZeroFilters(f *tax.ListFilters) bool {
	if f == nil {
		return true
	}
	return f.Busqueda == "" && f.Placa == nil && f.TipoImpuesto == nil &&
		f.Anio == nil && f.EstadoPago == nil
}
