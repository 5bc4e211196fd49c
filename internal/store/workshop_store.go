// internal/store/workshop_store.go
package store

import (
	"sort"
	"strings"
	"sync"

	"flotaops-service/internal/domain/workshop"
)

// WorkshopStore holds the workshop collection.
type WorkshopStore struct {
	mu         sync.RWMutex
	items      []workshop.Taller
	selectedID int64
	filters    workshop.ListFilters
	stats      workshop.Stats
}

func NewWorkshopStore() *WorkshopStore {
	return &WorkshopStore{}
}

func (s *WorkshopStore) SetAll(items []workshop.Taller) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = make([]workshop.Taller, len(items))
	copy(s.items, items)
	s.sortLocked()
	s.recomputeLocked()
}

func (s *WorkshopStore) Add(t workshop.Taller) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = append(s.items, t)
	s.sortLocked()
	s.recomputeLocked()
}

func (s *WorkshopStore) Update(t workshop.Taller) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == t.ID {
			s.items[i] = t
			s.sortLocked()
			s.recomputeLocked()
			return
		}
	}
}

func (s *WorkshopStore) Remove(id int64) {
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

func (s *WorkshopStore) Filtered() []workshop.Taller {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]workshop.Taller, 0, len(s.items))
	for _, it := range s.items {
		if s.matchesLocked(it) {
			out = append(out, it)
		}
	}
	return out
}

func (s *WorkshopStore) SetFilters(f workshop.ListFilters) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if f.Busqueda != "" {
		s.filters.Busqueda = f.Busqueda
	}
	if f.Activo != nil {
		s.filters.Activo = f.Activo
	}
	if f.Especialidad != nil {
		s.filters.Especialidad = f.Especialidad
	}
}

func (s *WorkshopStore) ClearFilters() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.filters = workshop.ListFilters{}
}

func (s *WorkshopStore) Select(id int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selectedID = id
}

func (s *WorkshopStore) Selected() *workshop.Taller {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.selectedID == 0 {
		return nil
	}
	for _, it := range s.items {
		if it.ID == s.selectedID {
			t := it
			return &t
		}
	}
	return nil
}

func (s *WorkshopStore) Stats() workshop.Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	// copy the map so callers cannot mutate store state
	st := s.stats
	porEsp := make(map[string]int, len(st.PorEspecialidad))
	for k, v := range st.PorEspecialidad {
		porEsp[k] = v
	}
	st.PorEspecialidad = porEsp
	return st
}

func (s *WorkshopStore) sortLocked() {
	sort.SliceStable(s.items, func(i, j int) bool {
		return keyLess(s.items[i].Nombre, s.items[j].Nombre)
	})
}

func (s *WorkshopStore) matchesLocked(t workshop.Taller) bool {
	f := s.filters
	if f.Busqueda != "" {
		joined := strings.Join([]string{t.Nombre, t.Direccion, t.Contacto, t.Email}, " ")
		if !containsFold(joined, f.Busqueda) {
			return false
		}
	}
	if f.Activo != nil && t.Activo != *f.Activo {
		return false
	}
	if f.Especialidad != nil {
		found := false
		for _, e := range t.Especialidades {
			if strings.EqualFold(e, *f.Especialidad) {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}

func (s *WorkshopStore) recomputeLocked() {
	st := workshop.Stats{PorEspecialidad: map[string]int{}}
	st.Total = len(s.items)
	var ratingSum float64
	for _, t := range s.items {
		if t.Activo {
			st.Activos++
		} else {
			st.Inactivos++
		}
		ratingSum += t.Calificacion
		for _, e := range t.Especialidades {
			st.PorEspecialidad[e]++
		}
	}
	if st.Total > 0 {
		st.CalificacionPromedio = ratingSum / float64(st.Total)
	}
	s.stats = st
}
