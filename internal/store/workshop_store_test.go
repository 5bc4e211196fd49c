package store

import (
	"testing"

	"flotaops-service/internal/domain/workshop"

	"github.com/stretchr/testify/require"
)

func sampleWorkshops() []workshop.Taller {
	return []workshop.Taller{
		{ID: 1, Nombre: "Taller Central", Activo: true, Calificacion: 4.5,
			Especialidades: []string{"motor", "frenos"}},
		{ID: 2, Nombre: "Frenos Express", Activo: true, Calificacion: 3.5,
			Especialidades: []string{"frenos"}},
		{ID: 3, Nombre: "Pintura Sur", Activo: false, Calificacion: 4.0,
			Especialidades: []string{"carrocería"}},
	}
}

func TestWorkshopStoreStats(t *testing.T) {
	s := NewWorkshopStore()
	s.SetAll(sampleWorkshops())

	st := s.Stats()
	require.Equal(t, 3, st.Total)
	require.Equal(t, 2, st.Activos)
	require.Equal(t, 1, st.Inactivos)
	require.InDelta(t, 4.0, st.CalificacionPromedio, 1e-9)
	require.Equal(t, 2, st.PorEspecialidad["frenos"])
	require.Equal(t, 1, st.PorEspecialidad["motor"])
}

func TestWorkshopStoreStatsMapIsDetached(t *testing.T) {
	s := NewWorkshopStore()
	s.SetAll(sampleWorkshops())

	st := s.Stats()
	st.PorEspecialidad["frenos"] = 99

	require.Equal(t, 2, s.Stats().PorEspecialidad["frenos"])
}

func TestWorkshopStoreSortsByName(t *testing.T) {
	s := NewWorkshopStore()
	s.SetAll(sampleWorkshops())

	got := s.Filtered()
	require.Equal(t, "Frenos Express", got[0].Nombre)
	require.Equal(t, "Pintura Sur", got[1].Nombre)
	require.Equal(t, "Taller Central", got[2].Nombre)
}
