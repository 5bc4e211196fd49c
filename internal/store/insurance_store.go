// internal/store/insurance_store.go
package store

import (
	"sort"
	"strings"
	"sync"
	"time"

	"flotaops-service/internal/domain/insurance"
)

// InsuranceStore holds the policy collection; days remaining and severity
// are derived against the injected clock.
type InsuranceStore struct {
	mu         sync.RWMutex
	now        func() time.Time
	items      []insurance.SeguroVehiculo
	selectedID int64
	filters    insurance.ListFilters
	stats      insurance.Stats
}

func NewInsuranceStore(now func() time.Time) *InsuranceStore {
	if now == nil {
		now = time.Now
	}
	return &InsuranceStore{now: now}
}

func (s *InsuranceStore) SetAll(items []insurance.SeguroVehiculo) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ref := s.now()
	s.items = make([]insurance.SeguroVehiculo, len(items))
	copy(s.items, items)
	for i := range s.items {
		insurance.Derive(&s.items[i], ref)
	}
	s.sortLocked()
	s.recomputeLocked()
}

func (s *InsuranceStore) Add(p insurance.SeguroVehiculo) {
	s.mu.Lock()
	defer s.mu.Unlock()

	insurance.Derive(&p, s.now())
	s.items = append(s.items, p)
	s.sortLocked()
	s.recomputeLocked()
}

func (s *InsuranceStore) Update(p insurance.SeguroVehiculo) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == p.ID {
			insurance.Derive(&p, s.now())
			s.items[i] = p
			s.sortLocked()
			s.recomputeLocked()
			return
		}
	}
}

func (s *InsuranceStore) Remove(id int64) {
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

func (s *InsuranceStore) Filtered() []insurance.SeguroVehiculo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]insurance.SeguroVehiculo, 0, len(s.items))
	for _, it := range s.items {
		if s.matchesLocked(it) {
			out = append(out, it)
		}
	}
	return out
}

func (s *InsuranceStore) SetFilters(f insurance.ListFilters) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if f.Busqueda != "" {
		s.filters.Busqueda = f.Busqueda
	}
	if f.Placa != nil {
		s.filters.Placa = f.Placa
	}
	if f.Aseguradora != nil {
		s.filters.Aseguradora = f.Aseguradora
	}
	if f.EstadoPoliza != nil {
		s.filters.EstadoPoliza = f.EstadoPoliza
	}
}

func (s *InsuranceStore) ClearFilters() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = insurance.ListFilters{}
}

func (s *InsuranceStore) Select(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedID = id
}

func (s *InsuranceStore) Selected() *insurance.SeguroVehiculo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.selectedID == 0 {
		return nil
	}
	for _, it := range s.items {
		if it.ID == s.selectedID {
			p := it
			return &p
		}
	}
	return nil
}

func (s *InsuranceStore) Stats() insurance.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats
}

func (s *InsuranceStore) sortLocked() {
	sort.SliceStable(s.items, func(i, j int) bool {
		return keyLess(s.items[i].NumeroPoliza, s.items[j].NumeroPoliza)
	})
}

func (s *InsuranceStore) matchesLocked(p insurance.SeguroVehiculo) bool {
	f := s.filters
	if f.Busqueda != "" {
		joined := strings.Join([]string{p.Placa, p.Aseguradora, p.NumeroPoliza}, " ")
		if !containsFold(joined, f.Busqueda) {
			return false
		}
	}
	if f.Placa != nil && p.Placa != *f.Placa {
		return false
	}
	if f.Aseguradora != nil && p.Aseguradora != *f.Aseguradora {
		return false
	}
	if f.EstadoPoliza != nil && p.EstadoPoliza != *f.EstadoPoliza {
		return false
	}
	return true
}

func (s *InsuranceStore) recomputeLocked() {
	var st insurance.Stats
	st.Total = len(s.items)
	for _, p := range s.items {
		switch p.EstadoPoliza {
		case insurance.PolizaVigente:
			st.Vigentes++
		case insurance.PolizaPorVencer:
			st.PorVencer++
		case insurance.PolizaVencida:
			st.Vencidas++
		case insurance.PolizaCancelada:
			st.Canceladas++
		}
		st.MontoTotal += p.ImportePagado
	}
	s.stats = st
}
