// internal/store/driver_store.go
package store

import (
	"sort"
	"strings"
	"sync"
	"time"

	"flotaops-service/internal/domain/driver"
)

// DriverStore mirrors VehicleStore for the driver collection. License
// days-remaining is derived against the injected clock so tests can pin the
// reference time.
type DriverStore struct {
	mu         sync.RWMutex
	now        func() time.Time
	items      []driver.Driver
	selectedID int64
	filters    driver.ListFilters
	stats      driver.Stats
}

func NewDriverStore(now func() time.Time) *DriverStore {
	if now == nil {
		now = time.Now
	}
	return &DriverStore{now: now}
}

func (s *DriverStore) SetAll(items []driver.Driver) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ref := s.now()
	s.items = make([]driver.Driver, len(items))
	copy(s.items, items)
	for i := range s.items {
		driver.Derive(&s.items[i], ref)
	}
	s.sortLocked()
	s.recomputeLocked()
}

func (s *DriverStore) Add(d driver.Driver) {
	s.mu.Lock()
	defer s.mu.Unlock()

	driver.Derive(&d, s.now())
	s.items = append(s.items, d)
	s.sortLocked()
	s.recomputeLocked()
}

func (s *DriverStore) Update(d driver.Driver) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == d.ID {
			driver.Derive(&d, s.now())
			s.items[i] = d
			s.sortLocked()
			s.recomputeLocked()
			return
		}
	}
}

func (s *DriverStore) Remove(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := s.items[:0]
	for _, it := range s.items {
		if it.ID != id {
			out = append(out, it)
		}
	}
	s.items = out
	if s.selectedID == id {
		s.selectedID = 0
	}
	s.recomputeLocked()
}

func (s *DriverStore) Filtered() []driver.Driver {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]driver.Driver, 0, len(s.items))
	for _, it := range s.items {
		if s.matchesLocked(it) {
			out = append(out, it)
		}
	}
	return out
}

func (s *DriverStore) SetFilters(f driver.ListFilters) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if f.Busqueda != "" {
		s.filters.Busqueda = f.Busqueda
	}
	if f.Activo != nil {
		s.filters.Activo = f.Activo
	}
	if f.EstadoLicencia != nil {
		s.filters.EstadoLicencia = f.EstadoLicencia
	}
}

func (s *DriverStore) ClearFilters() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = driver.ListFilters{}
}

func (s *DriverStore) Select(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedID = id
}

func (s *DriverStore) Selected() *driver.Driver {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.selectedID == 0 {
		return nil
	}
	for _, it := range s.items {
		if it.ID == s.selectedID {
			d := it
			return &d
		}
	}
	return nil
}

func (s *DriverStore) Stats() driver.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats
}

func (s *DriverStore) sortLocked() {
	sort.SliceStable(s.items, func(i, j int) bool {
		return keyLess(s.items[i].Documento, s.items[j].Documento)
	})
}

func (s *DriverStore) matchesLocked(d driver.Driver) bool {
	f := s.filters
	if f.Busqueda != "" {
		joined := strings.Join([]string{d.Documento, d.Nombre, d.NumeroLicencia}, " ")
		if !containsFold(joined, f.Busqueda) {
			return false
		}
	}
	if f.Activo != nil && d.Activo != *f.Activo {
		return false
	}
	if f.EstadoLicencia != nil && d.EstadoLicencia != *f.EstadoLicencia {
		return false
	}
	return true
}

func (s *DriverStore) recomputeLocked() {
	var st driver.Stats
	st.Total = len(s.items)
	var ratingSum float64
	for _, d := range s.items {
		if d.Activo {
			st.Activos++
		} else {
			st.Inactivos++
		}
		switch d.EstadoLicencia {
		case driver.LicenciaVigente:
			st.LicenciasVigentes++
		case driver.LicenciaPorVencer:
			st.LicenciasPorVencer++
		case driver.LicenciaVencida:
			st.LicenciasVencidas++
		}
		ratingSum += d.Calificacion
	}
	if st.Total > 0 {
		st.CalificacionPromedio = ratingSum / float64(st.Total)
	}
	s.stats = st
}
