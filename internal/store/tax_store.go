// internal/store/tax_store.go
package store

import (
	"sort"
	"strconv"
	"strings"
	"sync"

	"flotaops-service/internal/domain/tax"
)

// TaxStore holds the vehicle-tax collection. Payment state is
// store-of-record, so no derivation runs here.
type TaxStore struct {
	mu         sync.RWMutex
	items      []tax.ImpuestoVehiculo
	selectedID int64
	filters    tax.ListFilters
	stats      tax.Stats
}

func NewTaxStore() *TaxStore {
	return &TaxStore{}
}

func (s *TaxStore) SetAll(items []tax.ImpuestoVehiculo) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = make([]tax.ImpuestoVehiculo, len(items))
	copy(s.items, items)
	s.sortLocked()
	s.recomputeLocked()
}

func (s *TaxStore) Add(i tax.ImpuestoVehiculo) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = append(s.items, i)
	s.sortLocked()
	s.recomputeLocked()
}

func (s *TaxStore) Update(i tax.ImpuestoVehiculo) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for idx := range s.items {
		if s.items[idx].ID == i.ID {
			s.items[idx] = i
			s.sortLocked()
			s.recomputeLocked()
			return
		}
	}
}

func (s *TaxStore) Remove(id int64) {
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

func (s *TaxStore) Filtered() []tax.ImpuestoVehiculo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]tax.ImpuestoVehiculo, 0, len(s.items))
	for _, it := range s.items {
		if s.matchesLocked(it) {
			out = append(out, it)
		}
	}
	return out
}

func (s *TaxStore) SetFilters(f tax.ListFilters) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if f.Busqueda != "" {
		s.filters.Busqueda = f.Busqueda
	}
	if f.Placa != nil {
		s.filters.Placa = f.Placa
	}
	if f.TipoImpuesto != nil {
		s.filters.TipoImpuesto = f.TipoImpuesto
	}
	if f.Anio != nil {
		s.filters.Anio = f.Anio
	}
	if f.EstadoPago != nil {
		s.filters.EstadoPago = f.EstadoPago
	}
}

func (s *TaxStore) ClearFilters() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = tax.ListFilters{}
}

func (s *TaxStore) Select(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedID = id
}

func (s *TaxStore) Selected() *tax.ImpuestoVehiculo {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.selectedID == 0 {
		return nil
	}
	for _, it := range s.items {
		if it.ID == s.selectedID {
			i := it
			return &i
		}
	}
	return nil
}

func (s *TaxStore) Stats() tax.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats
}

func (s *TaxStore) sortLocked() {
	sort.SliceStable(s.items, func(i, j int) bool {
		return keyLess(strconv.FormatInt(s.items[i].ID, 10), strconv.FormatInt(s.items[j].ID, 10))
	})
}

func (s *TaxStore) matchesLocked(i tax.ImpuestoVehiculo) bool {
	f := s.filters
	if f.Busqueda != "" {
		joined := strings.Join([]string{i.Placa, i.TipoImpuesto}, " ")
		if !containsFold(joined, f.Busqueda) {
			return false
		}
	}
	if f.Placa != nil && i.Placa != *f.Placa {
		return false
	}
	if f.TipoImpuesto != nil && i.TipoImpuesto != *f.TipoImpuesto {
		return false
	}
	if f.Anio != nil && i.Anio != *f.Anio {
		return false
	}
	if f.EstadoPago != nil && i.EstadoPago != *f.EstadoPago {
		return false
	}
	return true
}

func (s *TaxStore) recomputeLocked() {
	var st tax.Stats
	st.Total = len(s.items)
	for _, i := range s.items {
		switch i.EstadoPago {
		case tax.PagoPagado:
			st.Pagados++
		case tax.PagoPendiente:
			st.Pendientes++
		case tax.PagoVencido:
			st.Vencidos++
		}
		st.ImporteTotal += i.Importe
	}
	s.stats = st
}
