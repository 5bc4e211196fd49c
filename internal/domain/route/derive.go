package route

// Derive recomputes the trip financial snapshot from the raw odometer,
// cargo and expense figures. Divisions guard against zero denominators.
func Derive(o *OrdenRuta) {
	distancia := o.KmFinal - o.KmInicial
	if distancia < 0 {
		distancia = 0
	}
	o.Distancia = distancia

	o.Ingreso = o.PesoCarga * o.TarifaPorKg
	o.GastoTotal = o.CostoCombustible + o.Peajes + o.Viaticos + o.OtrosGastos

	if o.PrecioPorGalon > 0 {
		o.GalonesComprados = o.CostoCombustible / o.PrecioPorGalon
	} else {
		o.GalonesComprados = 0
	}

	if o.GalonesComprados > 0 {
		o.KmPorGalon = o.Distancia / o.GalonesComprados
	} else {
		o.KmPorGalon = 0
	}

	if o.Distancia > 0 {
		o.IngresoPorKm = o.Ingreso / o.Distancia
	} else {
		o.IngresoPorKm = 0
	}
}
