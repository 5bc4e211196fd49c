// internal/store/vehicle_store.go
package store

import (
	"sort"
	"strings"
	"sync"

	"flotaops-service/internal/domain/vehicle"
)

// VehicleStore holds the in-memory vehicle collection together with the
// active filter, the selected-item pointer and aggregate statistics. All
// mutations are applied atomically under the store lock and recompute the
// statistics; reads never mutate state.
type VehicleStore struct {
	mu         sync.RWMutex
	items      []vehicle.Vehicle
	selectedID int64
	filters    vehicle.ListFilters
	stats      vehicle.Stats
}

func NewVehicleStore() *VehicleStore {
	return &VehicleStore{}
}

// SetAll replaces the collection, derives every item, sorts by plate and
// recomputes statistics. Calling it twice with the same input yields the
// same state.
func (s *VehicleStore) SetAll(items []vehicle.Vehicle) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = make([]vehicle.Vehicle, len(items))
	copy(s.items, items)
	for i := range s.items {
		vehicle.Derive(&s.items[i])
	}
	s.sortLocked()
	s.recomputeLocked()
}

// Add appends a vehicle, re-sorts and recomputes statistics.
func (s *VehicleStore) Add(v vehicle.Vehicle) {
	s.mu.Lock()
	defer s.mu.Unlock()

	vehicle.Derive(&v)
	s.items = append(s.items, v)
	s.sortLocked()
	s.recomputeLocked()
}

// Update replaces the item with a matching id; if none matches the
// collection is left unchanged.
func (s *VehicleStore) Update(v vehicle.Vehicle) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == v.ID {
			vehicle.Derive(&v)
			s.items[i] = v
			s.sortLocked()
			s.recomputeLocked()
			return
		}
	}
}

// Remove drops the item with the given id and clears the selected pointer
// when it referenced the removed item.
func (s *VehicleStore) Remove(id int64) {
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

// Filtered applies the active filter to the collection. A zero filter
// returns the full collection in stored order.
func (s *VehicleStore) Filtered() []vehicle.Vehicle {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]vehicle.Vehicle, 0, len(s.items))
	for _, it := range s.items {
		if s.matchesLocked(it) {
			out = append(out, it)
		}
	}
	return out
}

// SetFilters merges non-zero filter fields into the current filter state.
func (s *VehicleStore) SetFilters(f vehicle.ListFilters) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if f.Busqueda != "" {
		s.filters.Busqueda = f.Busqueda
	}
	if f.Estado != nil {
		s.filters.Estado = f.Estado
	}
	if f.Tipo != nil {
		s.filters.Tipo = f.Tipo
	}
	if f.Marca != nil {
		s.filters.Marca = f.Marca
	}
}

// ClearFilters resets the filter state.
func (s *VehicleStore) ClearFilters() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = vehicle.ListFilters{}
}

// Select points the store at one item by id.
func (s *VehicleStore) Select(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedID = id
}

// Selected returns a copy of the selected item, or nil when nothing is
// selected or the selection no longer exists.
func (s *VehicleStore) Selected() *vehicle.Vehicle {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.selectedID == 0 {
		return nil
	}
	for _, it := range s.items {
		if it.ID == s.selectedID {
			v := it
			return &v
		}
	}
	return nil
}

// Stats returns the aggregate statistics for the current collection.
func (s *VehicleStore) Stats() vehicle.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats
}

func (s *VehicleStore) sortLocked() {
	sort.SliceStable(s.items, func(i, j int) bool {
		return keyLess(s.items[i].Placa, s.items[j].Placa)
	})
}

func (s *VehicleStore) matchesLocked(v vehicle.Vehicle) bool {
	f := s.filters
	if f.Busqueda != "" {
		joined := strings.Join([]string{v.Placa, v.Marca, v.Modelo, v.NumeroSerie}, " ")
		if !containsFold(joined, f.Busqueda) {
			return false
		}
	}
	if f.Estado != nil && v.Estado != *f.Estado {
		return false
	}
	if f.Tipo != nil && v.Tipo != *f.Tipo {
		return false
	}
	if f.Marca != nil && v.Marca != *f.Marca {
		return false
	}
	return true
}

func (s *VehicleStore) recomputeLocked() {
	var st vehicle.Stats
	st.Total = len(s.items)
	for _, v := range s.items {
		switch v.Estado {
		case vehicle.EstadoDisponible:
			st.Disponibles++
		case vehicle.EstadoEnMantenimiento:
			st.EnMantenimiento++
		case vehicle.EstadoEnUso:
			st.EnUso++
		case vehicle.EstadoInactivo:
			st.Inactivos++
		}
		switch v.MaintenanceStatus {
		case vehicle.MaintVencido:
			st.MantVencidos++
		case vehicle.MaintUrgente:
			st.MantUrgentes++
		case vehicle.MaintProximo:
			st.MantProximos++
		case vehicle.MaintAlDia:
			st.MantAlDia++
		}
	}
	s.stats = st
}
