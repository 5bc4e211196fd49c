// internal/ws/alert.go
package ws

import (
	"encoding/json"
	"time"
)

type AlertType string

const (
	AlertMaintenanceDue  AlertType = "mantenimiento_vencido"
	AlertPolicyExpiring  AlertType = "poliza_por_vencer"
	AlertLicenseExpiring AlertType = "licencia_por_vencer"
)

// Alert is the envelope pushed to connected dashboards.
type Alert struct {
	Tipo      AlertType   `json:"tipo"`
	Mensaje   string      `json:"mensaje"`
	Datos     interface{} `json:"datos,omitempty"`
	Timestamp time.Time   `json:"timestamp"`
}

func NewAlert(tipo AlertType, mensaje string, datos interface{}) *Alert {
	return &Alert{
		Tipo:      tipo,
		Mensaje:   mensaje,
		Datos:     datos,
		Timestamp: time.Now(),
	}
}

func (a *Alert) ToJSON() ([]byte, error) {
	return json.Marshal(a)
}
