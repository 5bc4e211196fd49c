package route

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDerive(t *testing.T) {
	o := OrdenRuta{
		KmInicial:        10000,
		KmFinal:          10450,
		PesoCarga:        12000,
		TarifaPorKg:      0.35,
		CostoCombustible: 900,
		PrecioPorGalon:   15,
		Peajes:           120,
		Viaticos:         80,
		OtrosGastos:      50,
	}
	Derive(&o)

	require.Equal(t, 450.0, o.Distancia)
	require.Equal(t, 4200.0, o.Ingreso)
	require.Equal(t, 1150.0, o.GastoTotal)
	require.Equal(t, 60.0, o.GalonesComprados)
	require.InDelta(t, 7.5, o.KmPorGalon, 1e-9)
	require.InDelta(t, 4200.0/450.0, o.IngresoPorKm, 1e-9)
}

func TestDeriveGuardsZeroDenominators(t *testing.T) {
	o := OrdenRuta{KmInicial: 500, KmFinal: 500}
	Derive(&o)

	require.Equal(t, 0.0, o.Distancia)
	require.Equal(t, 0.0, o.GalonesComprados)
	require.Equal(t, 0.0, o.KmPorGalon)
	require.Equal(t, 0.0, o.IngresoPorKm)
}

func TestDeriveClampsNegativeDistance(t *testing.T) {
	o := OrdenRuta{KmInicial: 800, KmFinal: 700}
	Derive(&o)
	require.Equal(t, 0.0, o.Distancia)
}
