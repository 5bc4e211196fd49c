// internal/service/catalog/catalog.go
package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"flotaops-service/internal/domain/catalog"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

const cacheTTL = 15 * time.Minute

// Service serves the slow-changing reference lists, caching each one in
// redis with a TTL. A cache miss or a broken cache falls through to
// Postgres; cache writes are best effort.
type Service struct {
	repo   catalog.Repository
	cache  *redis.Client
	logger *zap.Logger
}

func NewService(repo catalog.Repository, cache *redis.Client, logger *zap.Logger) *Service {
	return &Service{
		repo:   repo,
		cache:  cache,
		logger: logger,
	}
}

// Marcas lists vehicle makes.
func (s *Service) Marcas(ctx context.Context) ([]catalog.Marca, error) {
	var out []catalog.Marca
	if s.cacheGet(ctx, "catalog:marcas", &out) {
		return out, nil
	}
	out, err := s.repo.ListMarcas(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list marcas: %w", err)
	}
	s.cacheSet(ctx, "catalog:marcas", out)
	return out, nil
}

// Modelos lists models, optionally scoped to one make (0 lists all).
func (s *Service) Modelos(ctx context.Context, marcaID int64) ([]catalog.Modelo, error) {
	key := fmt.Sprintf("catalog:modelos:%d", marcaID)
	var out []catalog.Modelo
	if s.cacheGet(ctx, key, &out) {
		return out, nil
	}
	out, err := s.repo.ListModelos(ctx, marcaID)
	if err != nil {
		return nil, fmt.Errorf("failed to list modelos: %w", err)
	}
	s.cacheSet(ctx, key, out)
	return out, nil
}

// TiposVehiculo lists vehicle types.
func (s *Service) TiposVehiculo(ctx context.Context) ([]catalog.TipoVehiculo, error) {
	var out []catalog.TipoVehiculo
	if s.cacheGet(ctx, "catalog:tipos_vehiculo", &out) {
		return out, nil
	}
	out, err := s.repo.ListTiposVehiculo(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tipos de vehiculo: %w", err)
	}
	s.cacheSet(ctx, "catalog:tipos_vehiculo", out)
	return out, nil
}

// TiposInfraccion lists traffic infraction types with their base amounts.
func (s *Service) TiposInfraccion(ctx context.Context) ([]catalog.TipoInfraccion, error) {
	var out []catalog.TipoInfraccion
	if s.cacheGet(ctx, "catalog:tipos_infraccion", &out) {
		return out, nil
	}
	out, err := s.repo.ListTiposInfraccion(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tipos de infraccion: %w", err)
	}
	s.cacheSet(ctx, "catalog:tipos_infraccion", out)
	return out, nil
}

// Catalogo bundles every reference list in one response for form loading.
func (s *Service) Catalogo(ctx context.Context) (*catalog.Catalogo, error) {
	marcas, err := s.Marcas(ctx)
	if err != nil {
		return nil, err
	}
	modelos, err := s.Modelos(ctx, 0)
	if err != nil {
		return nil, err
	}
	tiposVehiculo, err := s.TiposVehiculo(ctx)
	if err != nil {
		return nil, err
	}
	tiposInfraccion, err := s.TiposInfraccion(ctx)
	if err != nil {
		return nil, err
	}
	return &catalog.Catalogo{
		Marcas:          marcas,
		Modelos:         modelos,
		TiposVehiculo:   tiposVehiculo,
		TiposInfraccion: tiposInfraccion,
	}, nil
}

// Invalidate drops every cached catalog list.
func (s *Service) Invalidate(ctx context.Context) error {
	if s.cache == nil {
		return nil
	}
	iter := s.cache.Scan(ctx, 0, "catalog:*", 100).Iterator()
	for iter.Next(ctx) {
		if err := s.cache.Del(ctx, iter.Val()).Err(); err != nil {
			s.logger.Warn("failed to drop catalog cache key",
				zap.String("key", iter.Val()), zap.Error(err))
		}
	}
	return iter.Err()
}

func (s *Service) cacheGet(ctx context.Context, key string, dest interface{}) bool {
	if s.cache == nil {
		return false
	}
	data, err := s.cache.Get(ctx, key).Bytes()
	if err != nil {
		if err != redis.Nil {
			s.logger.Warn("catalog cache read failed", zap.String("key", key), zap.Error(err))
		}
		return false
	}
	if err := json.Unmarshal(data, dest); err != nil {
		s.logger.Warn("catalog cache entry corrupt", zap.String("key", key), zap.Error(err))
		return false
	}
	return true
}

func (s *Service) cacheSet(ctx context.Context, key string, value interface{}) {
	if s.cache == nil {
		return
	}
	data, err := json.Marshal(value)
	if err != nil {
		return
	}
	if err := s.cache.Set(ctx, key, data, cacheTTL).Err(); err != nil {
		s.logger.Warn("catalog cache write failed", zap.String("key", key), zap.Error(err))
	}
}
