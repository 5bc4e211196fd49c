// internal/service/driver/driver.go
package driver

import (
	"context"
	"fmt"
	"strings"
	"time"

	"flotaops-service/internal/domain/driver"
	xerrors "flotaops-service/internal/pkg/errors"
	"flotaops-service/internal/store"
	"flotaops-service/internal/ws"

	"go.uber.org/zap"
)

// licenseWarnDays mirrors the por_vencer threshold the backing trigger uses.
const licenseWarnDays = 30

type Service struct {
	repo   driver.Repository
	store  *store.DriverStore
	hub    *ws.Hub
	logger *zap.Logger
	now    func() time.Time
}

func NewService(repo driver.Repository, st *store.DriverStore, hub *ws.Hub, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		store:  st,
		hub:    hub,
		logger: logger,
		now:    time.Now,
	}
}

// Create registers a new driver. The document number must be unique.
// estado_licencia is assigned by the database and read back on insert.
func (s *Service) Create(ctx context.Context, req *driver.CreateDriverRequest) (*driver.Driver, error) {
	documento := strings.TrimSpace(req.Documento)
	if documento == "" {
		return nil, fmt.Errorf("documento is required")
	}

	exists, err := s.repo.ExistsByDocumento(ctx, documento)
	if err != nil {
		return nil, fmt.Errorf("failed to check documento: %w", err)
	}
	if exists {
		return nil, xerrors.ErrDuplicateEntry
	}

	d := &driver.Driver{
		Documento:                documento,
		Nombre:                   strings.TrimSpace(req.Nombre),
		NumeroLicencia:           strings.TrimSpace(req.NumeroLicencia),
		Telefono:                 req.Telefono,
		Email:                    strings.ToLower(strings.TrimSpace(req.Email)),
		Direccion:                req.Direccion,
		Calificacion:             req.Calificacion,
		Activo:                   true,
		FechaVencimientoLicencia: req.FechaVencimientoLicencia,
	}

	if err := s.repo.Create(ctx, d); err != nil {
		s.logger.Error("failed to create driver", zap.String("documento", documento), zap.Error(err))
		return nil, fmt.Errorf("failed to create driver: %w", err)
	}

	driver.Derive(d, s.now())
	if s.store != nil {
		s.store.Add(*d)
	}
	s.notifyLicense(d)

	s.logger.Info("driver created",
		zap.Int64("id", d.ID),
		zap.String("documento", d.Documento))
	return d, nil
}

// Get returns one driver with the derived days-to-expiry field.
func (s *Service) Get(ctx context.Context, id int64) (*driver.Driver, error) {
	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	driver.Derive(d, s.now())
	return d, nil
}

// GetByDocumento looks up one driver by document number.
func (s *Service) GetByDocumento(ctx context.Context, documento string) (*driver.Driver, error) {
	d, err := s.repo.FindByDocumento(ctx, strings.TrimSpace(documento))
	if err != nil {
		return nil, err
	}
	driver.Derive(d, s.now())
	return d, nil
}

// Update applies a partial update. estado_licencia is never written; the
// database reassigns it when the expiry date changes.
func (s *Service) Update(ctx context.Context, id int64, req *driver.UpdateDriverRequest) (*driver.Driver, error) {
	d, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Nombre != nil {
		d.Nombre = *req.Nombre
	}
	if req.NumeroLicencia != nil {
		d.NumeroLicencia = *req.NumeroLicencia
	}
	if req.Telefono != nil {
		d.Telefono = *req.Telefono
	}
	if req.Email != nil {
		d.Email = strings.ToLower(strings.TrimSpace(*req.Email))
	}
	if req.Direccion != nil {
		d.Direccion = *req.Direccion
	}
	if req.Calificacion != nil {
		if *req.Calificacion < 0 || *req.Calificacion > 5 {
			return nil, fmt.Errorf("calificacion must be between 0 and 5")
		}
		d.Calificacion = *req.Calificacion
	}
	if req.Activo != nil {
		d.Activo = *req.Activo
	}
	if req.FechaVencimientoLicencia != nil {
		d.FechaVencimientoLicencia = *req.FechaVencimientoLicencia
	}

	if err := s.repo.Update(ctx, id, d); err != nil {
		s.logger.Error("failed to update driver", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to update driver: %w", err)
	}

	driver.Derive(d, s.now())
	if s.store != nil {
		s.store.Update(*d)
	}
	s.notifyLicense(d)

	s.logger.Info("driver updated", zap.Int64("id", id))
	return d, nil
}

// Delete removes a driver.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if s.store != nil {
		s.store.Remove(id)
	}
	s.logger.Info("driver deleted", zap.Int64("id", id))
	return nil
}

// List returns drivers matching the filters with derived fields, plus the
// total count.
func (s *Service) List(ctx context.Context, filters *driver.ListFilters) ([]driver.Driver, int64, error) {
	items, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list drivers: %w", err)
	}
	total, err := s.repo.Count(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count drivers: %w", err)
	}

	now := s.now()
	for i := range items {
		driver.Derive(&items[i], now)
	}
	if s.store != nil && isZeroFilters(filters) {
		s.store.SetAll(items)
	}
	return items, total, nil
}

// Stats reloads the full collection and returns the driver aggregates.
func (s *Service) Stats(ctx context.Context) (driver.Stats, error) {
	if s.store == nil {
		return driver.Stats{}, fmt.Errorf("driver store not configured")
	}
	items, err := s.repo.List(ctx, &driver.ListFilters{})
	if err != nil {
		return driver.Stats{}, fmt.Errorf("failed to load drivers: %w", err)
	}
	s.store.SetAll(items)
	return s.store.Stats(), nil
}

func (s *Service) notifyLicense(d *driver.Driver) {
	if s.hub == nil {
		return
	}
	if d.DiasVencimientoLicencia > licenseWarnDays {
		return
	}
	mensaje := fmt.Sprintf("Licencia de %s vence en %d días", d.Nombre, d.DiasVencimientoLicencia)
	if d.DiasVencimientoLicencia <= 0 {
		mensaje = fmt.Sprintf("Licencia de %s vencida", d.Nombre)
	}
	s.hub.Publish(ws.NewAlert(ws.AlertLicenseExpiring, mensaje, map[string]interface{}{
		"conductor_id": d.ID,
		"documento":    d.Documento,
		"dias":         d.DiasVencimientoLicencia,
	}))
}

func isZeroFilters(f *driver.ListFilters) bool {
	if f == nil {
		return true
	}
	return f.Busqueda == "" && f.Activo == nil && f.EstadoLicencia == nil
}
