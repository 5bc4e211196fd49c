// internal/store/route_store.go
package store

import (
	"sort"
	"strings"
	"sync"

	"flotaops-service/internal/domain/route"
)

// RouteStore holds the trip-order collection; the financial snapshot is
// re-derived on every mutation.
type RouteStore struct {
	mu         sync.RWMutex
	items      []route.OrdenRuta
	selectedID int64
	filters    route.ListFilters
	stats      route.Stats
}

func NewRouteStore() *RouteStore {
	return &RouteStore{}
}

func (s *RouteStore) SetAll(items []route.OrdenRuta) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = make([]route.OrdenRuta, len(items))
	copy(s.items, items)
	for i := range s.items {
		route.Derive(&s.items[i])
	}
	s.sortLocked()
	s.recomputeLocked()
}

func (s *RouteStore) Add(o route.OrdenRuta) {
	s.mu.Lock()
	defer s.mu.Unlock()

	route.Derive(&o)
	s.items = append(s.items, o)
	s.sortLocked()
	s.recomputeLocked()
}

func (s *RouteStore) Update(o route.OrdenRuta) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == o.ID {
			route.Derive(&o)
			s.items[i] = o
			s.sortLocked()
			s.recomputeLocked()
			return
		}
	}
}

func (s *RouteStore) Remove(id int64) {
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

func (s *RouteStore) Filtered() []route.OrdenRuta {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]route.OrdenRuta, 0, len(s.items))
	for _, it := range s.items {
		if s.matchesLocked(it) {
			out = append(out, it)
		}
	}
	return out
}

func (s *RouteStore) SetFilters(f route.ListFilters) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if f.Busqueda != "" {
		s.filters.Busqueda = f.Busqueda
	}
	if f.Placa != nil {
		s.filters.Placa = f.Placa
	}
	if f.Conductor != nil {
		s.filters.Conductor = f.Conductor
	}
	if f.Estado != nil {
		s.filters.Estado = f.Estado
	}
}

func (s *RouteStore) ClearFilters() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = route.ListFilters{}
}

func (s *RouteStore) Select(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedID = id
}

func (s *RouteStore) Selected() *route.OrdenRuta {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.selectedID == 0 {
		return nil
	}
	for _, it := range s.items {
		if it.ID == s.selectedID {
			o := it
			return &o
		}
	}
	return nil
}

func (s *RouteStore) Stats() route.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats
}

func (s *RouteStore) sortLocked() {
	sort.SliceStable(s.items, func(i, j int) bool {
		return keyLess(s.items[i].NumeroViaje, s.items[j].NumeroViaje)
	})
}

func (s *RouteStore) matchesLocked(o route.OrdenRuta) bool {
	f := s.filters
	if f.Busqueda != "" {
		joined := strings.Join([]string{o.NumeroViaje, o.Placa, o.Conductor, o.Origen, o.Destino}, " ")
		if !containsFold(joined, f.Busqueda) {
			return false
		}
	}
	if f.Placa != nil && o.Placa != *f.Placa {
		return false
	}
	if f.Conductor != nil && o.Conductor != *f.Conductor {
		return false
	}
	if f.Estado != nil && o.Estado != *f.Estado {
		return false
	}
	return true
}

func (s *RouteStore) recomputeLocked() {
	var st route.Stats
	st.Total = len(s.items)
	var kmGalonSum float64
	var kmGalonN int
	for _, o := range s.items {
		switch o.Estado {
		case route.EstadoProgramada:
			st.Programadas++
		case route.EstadoEnCurso:
			st.EnCurso++
		case route.EstadoCompletada:
			st.Completadas++
		case route.EstadoCancelada:
			st.Canceladas++
		}
		st.DistanciaTotal += o.Distancia
		st.IngresoTotal += o.Ingreso
		st.GastoTotal += o.GastoTotal
		if o.KmPorGalon > 0 {
			kmGalonSum += o.KmPorGalon
			kmGalonN++
		}
	}
	st.Utilidad = st.IngresoTotal - st.GastoTotal
	if kmGalonN > 0 {
		st.PromedioKmGalon = kmGalonSum / float64(kmGalonN)
	}
	s.stats = st
}
