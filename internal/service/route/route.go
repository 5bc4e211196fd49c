// internal/service/route/route.go
package route

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"flotaops-service/internal/domain/route"
	"flotaops-service/internal/domain/vehicle"
	xerrors "flotaops-service/internal/pkg/errors"
	"flotaops-service/internal/store"

	"github.com/oklog/ulid/v2"
	"go.uber.org/zap"
)

type Service struct {
	repo        route.Repository
	vehicleRepo vehicle.Repository
	store       *store.RouteStore
	logger      *zap.Logger
}

func NewService(repo route.Repository, vehicleRepo vehicle.Repository, st *store.RouteStore, logger *zap.Logger) *Service {
	return &Service{
		repo:        repo,
		vehicleRepo: vehicleRepo,
		store:       st,
		logger:      logger,
	}
}

// Create registers a new trip order. The trip number is assigned here and
// the financial snapshot is computed from the raw figures before persisting.
func (s *Service) Create(ctx context.Context, req *route.CreateRouteRequest) (*route.OrdenRuta, error) {
	placa := strings.ToUpper(strings.TrimSpace(req.Placa))

	if s.vehicleRepo != nil {
		if _, err := s.vehicleRepo.FindByPlaca(ctx, placa); err != nil {
			if errors.Is(err, xerrors.ErrNotFound) {
				return nil, fmt.Errorf("vehicle %s not registered: %w", placa, err)
			}
			return nil, fmt.Errorf("failed to verify vehicle: %w", err)
		}
	}

	if req.KmFinal > 0 && req.KmFinal < req.KmInicial {
		return nil, fmt.Errorf("km_final cannot be below km_inicial")
	}

	o := &route.OrdenRuta{
		NumeroViaje:      fmt.Sprintf("V-%s", ulid.Make().String()),
		Placa:            placa,
		Conductor:        strings.TrimSpace(req.Conductor),
		Origen:           req.Origen,
		Destino:          req.Destino,
		Estado:           route.EstadoProgramada,
		KmInicial:        req.KmInicial,
		KmFinal:          req.KmFinal,
		PesoCarga:        req.PesoCarga,
		TarifaPorKg:      req.TarifaPorKg,
		CostoCombustible: req.CostoCombustible,
		PrecioPorGalon:   req.PrecioPorGalon,
		Peajes:           req.Peajes,
		Viaticos:         req.Viaticos,
		OtrosGastos:      req.OtrosGastos,
		FechaSalida:      req.FechaSalida,
		FechaLlegada:     req.FechaLlegada,
	}
	route.Derive(o)

	if err := s.repo.Create(ctx, o); err != nil {
		s.logger.Error("failed to create route order", zap.String("placa", placa), zap.Error(err))
		return nil, fmt.Errorf("failed to create route order: %w", err)
	}

	if s.store != nil {
		s.store.Add(*o)
	}

	s.logger.Info("route order created",
		zap.Int64("id", o.ID),
		zap.String("numero_viaje", o.NumeroViaje),
		zap.String("placa", o.Placa))
	return o, nil
}

// Get returns one trip order.
func (s *Service) Get(ctx context.Context, id int64) (*route.OrdenRuta, error) {
	return s.repo.FindByID(ctx, id)
}

// GetByNumeroViaje looks up one trip order by its trip number.
func (s *Service) GetByNumeroViaje(ctx context.Context, numero string) (*route.OrdenRuta, error) {
	return s.repo.FindByNumeroViaje(ctx, strings.TrimSpace(numero))
}

// Update applies a partial update and recomputes the financial snapshot.
// Snapshot fields coming in from the client are ignored.
func (s *Service) Update(ctx context.Context, id int64, req *route.UpdateRouteRequest) (*route.OrdenRuta, error) {
	o, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Conductor != nil {
		o.Conductor = *req.Conductor
	}
	if req.Origen != nil {
		o.Origen = *req.Origen
	}
	if req.Destino != nil {
		o.Destino = *req.Destino
	}
	if req.Estado != nil {
		if !isValidEstado(*req.Estado) {
			return nil, fmt.Errorf("invalid estado: %s", *req.Estado)
		}
		if !canTransition(o.Estado, *req.Estado) {
			return nil, fmt.Errorf("cannot move trip from %s to %s: %w", o.Estado, *req.Estado, xerrors.ErrConflict)
		}
		o.Estado = *req.Estado
	}
	if req.KmInicial != nil {
		o.KmInicial = *req.KmInicial
	}
	if req.KmFinal != nil {
		o.KmFinal = *req.KmFinal
	}
	if req.PesoCarga != nil {
		o.PesoCarga = *req.PesoCarga
	}
	if req.TarifaPorKg != nil {
		o.TarifaPorKg = *req.TarifaPorKg
	}
	if req.CostoCombustible != nil {
		o.CostoCombustible = *req.CostoCombustible
	}
	if req.PrecioPorGalon != nil {
		o.PrecioPorGalon = *req.PrecioPorGalon
	}
	if req.Peajes != nil {
		o.Peajes = *req.Peajes
	}
	if req.Viaticos != nil {
		o.Viaticos = *req.Viaticos
	}
	if req.OtrosGastos != nil {
		o.OtrosGastos = *req.OtrosGastos
	}
	if req.FechaSalida != nil {
		o.FechaSalida = *req.FechaSalida
	}
	if req.FechaLlegada != nil {
		o.FechaLlegada = *req.FechaLlegada
	}

	if o.KmFinal > 0 && o.KmFinal < o.KmInicial {
		return nil, fmt.Errorf("km_final cannot be below km_inicial")
	}
	route.Derive(o)

	if err := s.repo.Update(ctx, id, o); err != nil {
		s.logger.Error("failed to update route order", zap.Int64("id", id), zap.Error(err))
		return nil, fmt.Errorf("failed to update route order: %w", err)
	}

	if s.store != nil {
		s.store.Update(*o)
	}

	s.logger.Info("route order updated", zap.Int64("id", id))
	return o, nil
}

// Delete removes a trip order.
func (s *Service) Delete(ctx context.Context, id int64) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	if s.store != nil {
		s.store.Remove(id)
	}
	s.logger.Info("route order deleted", zap.Int64("id", id))
	return nil
}

// List returns trip orders matching the filters plus the total count.
func (s *Service) List(ctx context.Context, filters *route.ListFilters) ([]route.OrdenRuta, int64, error) {
	items, err := s.repo.List(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list route orders: %w", err)
	}
	total, err := s.repo.Count(ctx, filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count route orders: %w", err)
	}

	if s.store != nil && isZeroFilters(filters) {
		s.store.SetAll(items)
	}
	return items, total, nil
}

// Stats reloads the full collection and returns the trip aggregates.
func (s *Service) Stats(ctx context.Context) (route.Stats, error) {
	if s.store == nil {
		return route.Stats{}, fmt.Errorf("route store not configured")
	}
	items, err := s.repo.List(ctx, &route.ListFilters{})
	if err != nil {
		return route.Stats{}, fmt.Errorf("failed to load route orders: %w", err)
	}
	s.store.SetAll(items)
	return s.store.Stats(), nil
}

func isValidEstado(e route.Estado) bool {
	switch e {
	case route.EstadoProgramada, route.EstadoEnCurso, route.EstadoCompletada, route.EstadoCancelada:
		return true
	}
	return false
}

// canTransition enforces the trip lifecycle: completed and cancelled trips
// are terminal.
func canTransition(from, to route.Estado) bool {
	if from == to {
		return true
	}
	switch from {
	case route.EstadoProgramada:
		return to == route.EstadoEnCurso || to == route.EstadoCancelada
	case route.EstadoEnCurso:
		return to == route.EstadoCompletada || to == route.EstadoCancelada
	}
	return false
}

func isZeroFilters(f *route.ListFilters) bool {
	if f == nil {
		return true
	}
	return f.Busqueda == "" && f.Placa == nil && f.Conductor == nil && f.Estado == nil
}
