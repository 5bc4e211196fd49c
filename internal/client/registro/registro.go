// internal/client/registro/registro.go
package registro

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	xerrors "flotaops-service/internal/pkg/errors"
	"flotaops-service/internal/pkg/httpclient"

	"go.uber.org/zap"
)

// VehicleRecord is the registry's view of a plate.
type VehicleRecord struct {
	Placa        string `json:"placa"`
	NumeroSerie  string `json:"numero_serie"`
	Marca        string `json:"marca"`
	Modelo       string `json:"modelo"`
	Anio         int    `json:"anio"`
	Color        string `json:"color"`
	Propietario  string `json:"propietario"`
	EstadoLegal  string `json:"estado_legal"`
	FechaEmision string `json:"fecha_emision"`
}

// Client talks to the external vehicle registry.
type Client struct {
	http   *httpclient.Client
	logger *zap.Logger
}

func New(baseURL, apiKey string, logger *zap.Logger) *Client {
	c := httpclient.New(baseURL, &httpclient.Options{
		Timeout: 10 * time.Second,
		Retries: 3,
	})
	if apiKey != "" {
		c.SetHeader("X-Api-Key", apiKey)
	}
	return &Client{http: c, logger: logger}
}

// Lookup fetches the registry record for a plate.
func (c *Client) Lookup(ctx context.Context, placa string) (*VehicleRecord, error) {
	placa = strings.ToUpper(strings.TrimSpace(placa))
	if placa == "" {
		return nil, fmt.Errorf("placa is required")
	}

	var record VehicleRecord
	path := fmt.Sprintf("/vehiculos/%s", url.PathEscape(placa))
	if err := c.http.Get(ctx, path, &record); err != nil {
		var httpErr *httpclient.HTTPError
		if errors.As(err, &httpErr) && httpErr.Status == 404 {
			return nil, xerrors.ErrPlacaNoEncontrada
		}
		c.logger.Warn("registry lookup failed", zap.String("placa", placa), zap.Error(err))
		return nil, fmt.Errorf("registry lookup failed: %w", err)
	}
	return &record, nil
}
