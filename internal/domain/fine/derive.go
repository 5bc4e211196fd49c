package fine

// Derive recomputes the amount owed and the payment-state bucket. The local
// derivation only distinguishes pagado/parcial/pendiente; "vencido" is
// store-of-record and overwritten here on purpose.
func Derive(m *MultaConductor) {
	debe := m.ImporteMulta - m.ImportePagado
	if debe < 0 {
		debe = 0
	}
	m.Debe = debe

	switch {
	case m.ImportePagado >= m.ImporteMulta:
		m.EstadoPago = PagoPagado
	case m.ImportePagado > 0:
		m.EstadoPago = PagoParcial
	default:
		m.EstadoPago = PagoPendiente
	}
}
