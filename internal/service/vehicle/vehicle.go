// internal/service/vehicle/vehicle.go
package vehicle

import (
	"context"
	"fmt"
	"strings"

	"flotaops-service/internal/domain/vehicle"
	xerrors "flotaops-service/internal/pkg/errors"
	"flotaops-service/internal/store"
	"flotaops-service/internal/ws"

	"go.uber.org/zap"
)

type Service struct {
	repo   vehicle.Repository
	store  *store.VehicleStore
	hub    *ws.Hub
	logger *zap.Logger
}

func NewService(repo vehicle.Repository, st *store.VehicleStore, hub *ws.Hub, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		store:  st,
		hub:    hub,
		logger: logger,
	}
}

// Create registers a new vehicle. The plate is normalised to upper case and
// must be unique across the fleet.
func (s *Service) Create(ctx context.Context, req *vehicle.CreateVehicleRequest) (*vehicle.Vehicle, error) {
	placa := strings.ToUpper(strings.TrimSpace(req.Placa))
	if placa == "" {
		return nil, fmt.Errorf("placa is required")
	}

	exists, err := s.repo.ExistsByPlaca(ctx, placa)
	if err != nil {
		return nil, fmt.Errorf("failed to check placa: %w", err)
	}
	if exists {
		return nil, xerrors.ErrDuplicateEntry
	}

	estado := req.Estado
	if estado == "" {
		estado = vehicle.EstadoDisponible
	}
	if !isValidEstado(estado) {
		return nil, fmt.Errorf("invalid estado: %s", estado)
	}

	currentKm := req.CurrentKm
	if currentKm < req.InitialKm {
		currentKm = req.InitialKm
	}

	v := &vehicle.Vehicle{
		Placa:             placa,
		NumeroSerie:       strings.TrimSpace(req.NumeroSerie),
		Tipo:              req.Tipo,
		Marca:             req.Marca,
		Modelo:            req.Modelo,
		Color:             req.Color,
		Anio:              req.Anio,
		CapacidadCarga:    req.CapacidadCarga,
		Estado:            estado,
		MaintenanceCycle:  req.MaintenanceCycle,
		InitialKm:         req.InitialKm,
		PrevMaintenanceKm: req.InitialKm,
		CurrentKm:         currentKm,
	}

	if err := s.repo.Create(ctx, v); err != nil {
		s.logger.Error("failed to create vehicle", zap.String("placa", placa), zap.Error(err))
		return nil, fmt.Errorf("failed to create vehicle: %w", err)
	}

	vehicle.Derive(v)
	if s.store != nil {
		s.store.Add(*v)
	}
	s.notifyMaintenance(v, "")

	s.logger.Info("vehicle created",
		zap.Int64("id", v.ID),
		zap.String("placa", v.Placa))
	return v, nil
}

// Get returns one vehicle with its derived maintenance fields.
func (s *Service) Get(ctx context.Context, id int64) (*vehicle.Vehicle, error) {
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	vehicle.Derive(v)
	return v, nil
}

// GetByPlaca returns one vehicle looked up by plate.
func (s *Service) GetByPlaca(ctx context.Context, placa string) (*vehicle.Vehicle, error) {
	v, err := s.repo.FindByPlaca(ctx, strings.ToUpper(strings.TrimSpace(placa)))
	if err != nil {
		return nil, err
	}
	vehicle.Derive(v)
	return v, nil
}

// Update applies a partial update. Derived fields are recomputed from the
// persisted odometer values, never taken from the request.
func (s *Service) Update(ctx context.Context, id int64, req *vehicle.UpdateVehicleRequest) (*vehicle.Vehicle, error) {
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	vehicle.Derive(v)
	prevStatus := v.MaintenanceStatus

	if req.Tipo != nil {
		v.Tipo = *req.Tipo
	}
	if req.Marca != nil {
		v.Marca = *req.Marca
	}
	if req.Modelo != nil {
		v.Modelo = *req.Modelo
	}
	if req.Color != nil {
		v.Color = *req.Color
	}
	if req.Anio != nil {
		v.Anio = *req.Anio
	}
	if req.CapacidadCarga != nil {
		v.CapacidadCarga = *req.CapacidadCarga
	}
	if req.Estado != nil {
		if !isValidEstado(*req.Estado) {
			return nil, fmt.Errorf("invalid estado: %s", *req.Estado)
		}
		v.Estado = *req.Estado
	}
	if req.MaintenanceCycle != nil {
		v.MaintenanceCycle = *req.MaintenanceCycle
	}
	if req.PrevMaintenanceKm != nil {
		v.PrevMaintenanceKm = *req.PrevMaintenanceKm
	}
	if req.CurrentKm != nil {
		if *req.CurrentKm < v.CurrentKm {
			return nil, fmt.Errorf("current_km cannot decrease")
		}
		v.CurrentKm = *req.CurrentKm
	}

	if err := s.repo.Update(ctx, id, v); err != nil {
		s.logger.Error("failed to update vehicle", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to update vehicle: %w", err)
	}

	vehicle.Derive(v)
	if s.store != nil {
		s.store.Update(*v)
	}
	s.notifyMaintenance(v, prevStatus)

	s.logger.Info("vehicle updated", zap.Int64("id", id))
	return v, nil
}

// RegisterMaintenance closes the current maintenance cycle: the previous
// maintenance odometer moves up to the current reading and the vehicle goes
// back to the available state.
func (s *Service) RegisterMaintenance(ctx context.Context, id int64) (*vehicle.Vehicle, error) {
	v, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	v.PrevMaintenanceKm = v.CurrentKm
	if v.Estado == vehicle.EstadoEnMantenimiento {
		v.Estado = vehicle.EstadoDisponible
	}

	if err := s.repo.Update(ctx, id, v); err != nil {
		s.logger.Error("failed to register maintenance", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to register maintenance: %w", err)
	}

	vehicle.Derive(v)
	if s.store != nil {
		s.store.Update(*v)
	}

	s.logger.Info("vehicle maintenance registered",
		zap.Int64("id", id),
		zap.Float64("km", v.CurrentKm))
	return v, nil
}

// Delete removes a vehicle from the fleet.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if s.store != nil {
		s.store.Remove(id)
	}
	s.logger.Info("vehicle deleted", zap.Int64("id", id))
	return nil
}

// List returns vehicles matching the filters, derived, together with the
// total count. It also refreshes the in-memory collection when the query
// was unfiltered.
func (s *Service) List(ctx context.Context, filters *vehicle.ListFilters) ([]vehicle.Vehicle, int64, error) {
	items, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list vehicles: %w", err)
	}
	total, err := s.repo.Count(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count vehicles: %w", err)
	}

	for i := range items {
		vehicle.Derive(&items[i])
	}
	if s.store != nil && isZeroFilters(filters) {
		s.store.SetAll(items)
	}
	return items, total, nil
}

// Stats reloads the full collection and returns the fleet aggregates.
func (s *Service) Stats(ctx context.Context) (vehicle.Stats, error) {
	if s.store == nil {
		return vehicle.Stats{}, fmt.Errorf("vehicle store not configured")
	}
	items, err := s.repo.List(ctx, &vehicle.ListFilters{})
	if err != nil {
		return vehicle.Stats{}, fmt.Errorf("failed to load vehicles: %w", err)
	}
	s.store.SetAll(items)
	return s.store.Stats(), nil
}

// notifyMaintenance publishes an alert when a vehicle enters an urgent or
// overdue maintenance bucket.
func (s *Service) notifyMaintenance(v *vehicle.Vehicle, prev vehicle.MaintenanceStatus) {
	if s.hub == nil {
		return
	}
	if v.MaintenanceStatus != vehicle.MaintUrgente && v.MaintenanceStatus != vehicle.MaintVencido {
		return
	}
	if v.MaintenanceStatus == prev {
		return
	}
	s.hub.Publish(ws.NewAlert(ws.AlertMaintenanceDue,
		fmt.Sprintf("Vehículo %s: mantenimiento %s (%.0f km restantes)",
			v.Placa, strings.ToLower(string(v.MaintenanceStatus)), v.RemainingMaintenanceKm),
		map[string]interface{}{
			"vehiculo_id": v.ID,
			"placa":       v.Placa,
			"estado":      v.MaintenanceStatus,
		}))
}

func isValidEstado(e vehicle.Estado) bool {
	switch e {
	case vehicle.EstadoDisponible, vehicle.EstadoEnMantenimiento, vehicle.EstadoEnUso, vehicle.EstadoInactivo:
		return true
	}
	return false
}

func isZeroFilters(f *vehicle.ListFilters) bool {
	if f == nil {
		return true
	}
	return f.Busqueda == "" && f.Estado == nil && f.Tipo == nil && f.Marca == nil
}
