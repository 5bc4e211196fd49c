// internal/store/fine_store.go
package store

import (
	"sort"
	"strconv"
	"strings"
	"sync"

	"flotaops-service/internal/domain/fine"
)

// FineStore holds the fine collection; debe and estado_pago are re-derived on
// every mutation.
type FineStore struct {
	mu         sync.RWMutex
	items      []fine.MultaConductor
	selectedID int64
	filters    fine.ListFilters
	stats      fine.Stats
}

func NewFineStore() *FineStore {
	return &FineStore{}
}

func (s *FineStore) SetAll(items []fine.MultaConductor) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = make([]fine.MultaConductor, len(items))
	copy(s.items, items)
	for i := range s.items {
		fine.Derive(&s.items[i])
	}
	s.sortLocked()
	s.recomputeLocked()
}

func (s *FineStore) Add(m fine.MultaConductor) {
	s.mu.Lock()
	defer s.mu.Unlock()

	fine.Derive(&m)
	s.items = append(s.items, m)
	s.sortLocked()
	s.recomputeLocked()
}

func (s *FineStore) Update(m fine.MultaConductor) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == m.ID {
			fine.Derive(&m)
			s.items[i] = m
			s.sortLocked()
			s.recomputeLocked()
			return
		}
	}
}

func (s *FineStore) Remove(id int64) {
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

func (s *FineStore) Filtered() []fine.MultaConductor {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]fine.MultaConductor, 0, len(s.items))
	for _, it := range s.items {
		if s.matchesLocked(it) {
			out = append(out, it)
		}
	}
	return out
}

func (s *FineStore) SetFilters(f fine.ListFilters) {
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
	if f.TipoInfraccion != nil {
		s.filters.TipoInfraccion = f.TipoInfraccion
	}
	if f.EstadoPago != nil {
		s.filters.EstadoPago = f.EstadoPago
	}
}

func (s *FineStore) ClearFilters() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = fine.ListFilters{}
}

func (s *FineStore) Select(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedID = id
}

func (s *FineStore) Selected() *fine.MultaConductor {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.selectedID == 0 {
		return nil
	}
	for _, it := range s.items {
		if it.ID == s.selectedID {
			m := it
			return &m
		}
	}
	return nil
}

func (s *FineStore) Stats() fine.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats
}

func (s *FineStore) sortLocked() {
	sort.SliceStable(s.items, func(i, j int) bool {
		return keyLess(strconv.FormatInt(s.items[i].ID, 10), strconv.FormatInt(s.items[j].ID, 10))
	})
}

func (s *FineStore) matchesLocked(m fine.MultaConductor) bool {
	f := s.filters
	if f.Busqueda != "" {
		joined := strings.Join([]string{m.NumeroViaje, m.Placa, m.Conductor, m.TipoInfraccion}, " ")
		if !containsFold(joined, f.Busqueda) {
			return false
		}
	}
	if f.Placa != nil && m.Placa != *f.Placa {
		return false
	}
	if f.Conductor != nil && m.Conductor != *f.Conductor {
		return false
	}
	if f.TipoInfraccion != nil && m.TipoInfraccion != *f.TipoInfraccion {
		return false
	}
	if f.EstadoPago != nil && m.EstadoPago != *f.EstadoPago {
		return false
	}
	return true
}

func (s *FineStore) recomputeLocked() {
	var st fine.Stats
	st.Total = len(s.items)
	for _, m := range s.items {
		switch m.EstadoPago {
		case fine.PagoPagado:
			st.Pagadas++
		case fine.PagoParcial:
			st.Parciales++
		case fine.PagoPendiente:
			st.Pendientes++
		}
		st.ImporteTotal += m.ImporteMulta
		st.PagadoTotal += m.ImportePagado
		st.DebeTotal += m.Debe
	}
	s.stats = st
}
