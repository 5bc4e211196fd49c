// internal/pkg/httpclient/client.go
package httpclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	defaultTimeout    = 30 * time.Second
	defaultRetries    = 3
	defaultRetryDelay = 500 * time.Millisecond
)

// statusMessages maps HTTP error codes to the fixed human-readable messages
// returned to callers.
var statusMessages = map[int]string{
	http.StatusBadRequest:          "solicitud inválida",
	http.StatusUnauthorized:        "no autorizado",
	http.StatusForbidden:           "acceso denegado",
	http.StatusNotFound:            "recurso no encontrado",
	http.StatusConflict:            "conflicto con el estado actual del recurso",
	http.StatusUnprocessableEntity: "datos no procesables",
	http.StatusInternalServerError: "error interno del servidor",
	http.StatusServiceUnavailable:  "servicio no disponible",
}

// HTTPError is the structured error shape produced for non-2xx responses.
type HTTPError struct {
	Status  int             `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("http %d: %s", e.Status, e.Message)
}

// ErrConnection is returned when every attempt failed at the transport level.
var ErrConnection = errors.New("error de conexión")

// Options override the per-request retry policy.
type Options struct {
	Timeout    time.Duration
	Retries    int
	RetryDelay time.Duration
}

// Client is a base-URL-relative JSON REST client with automatic retry and
// exponential backoff. Client-error responses are not retried, except
// request-timeout and rate-limit.
type Client struct {
	baseURL    string
	http       *http.Client
	retries    int
	retryDelay time.Duration
	headers    map[string]string
}

func New(baseURL string, opts *Options) *Client {
	timeout := defaultTimeout
	retries := defaultRetries
	delay := defaultRetryDelay
	if opts != nil {
		if opts.Timeout > 0 {
			timeout = opts.Timeout
		}
		if opts.Retries > 0 {
			retries = opts.Retries
		}
		if opts.RetryDelay > 0 {
			delay = opts.RetryDelay
		}
	}
	return &Client{
		baseURL:    baseURL,
		http:       &http.Client{Timeout: timeout},
		retries:    retries,
		retryDelay: delay,
		headers:    map[string]string{},
	}
}

// SetHeader adds a header sent on every request (e.g. an API key).
func (c *Client) SetHeader(key, value string) {
	c.headers[key] = value
}

func (c *Client) Get(ctx context.Context, path string, out interface{}) error {
	return c.do(ctx, http.MethodGet, path, nil, out)
}

func (c *Client) Post(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPost, path, body, out)
}

func (c *Client) Put(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPut, path, body, out)
}

func (c *Client) Patch(ctx context.Context, path string, body, out interface{}) error {
	return c.do(ctx, http.MethodPatch, path, body, out)
}

func (c *Client) Delete(ctx context.Context, path string) error {
	return c.do(ctx, http.MethodDelete, path, nil, nil)
}

// retryable reports whether a response status may be retried: server errors
// always, client errors only for 408 and 429.
func retryable(status int) bool {
	if status >= 500 {
		return true
	}
	return status == http.StatusRequestTimeout || status == http.StatusTooManyRequests
}

func (c *Client) do(ctx context.Context, method, path string, body, out interface{}) error {
	var payload []byte
	if body != nil {
		var err error
		payload, err = json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
	}

	var lastErr error
	delay := c.retryDelay

	for attempt := 1; attempt <= c.retries; attempt++ {
		if attempt > 1 {
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
			delay *= 2
		}

		httpErr, err := c.attempt(ctx, method, path, payload, out)
		if err == nil && httpErr == nil {
			return nil
		}
		if httpErr != nil {
			if !retryable(httpErr.Status) {
				return httpErr
			}
			lastErr = httpErr
			continue
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		// Transport failure (timeout, refused connection): retryable.
		lastErr = err
	}

	return fmt.Errorf("%w: %v", ErrConnection, lastErr)
}

// attempt runs a single request. A non-nil *HTTPError means the server
// answered with an error status; a non-nil error means transport failure.
func (c *Client) attempt(ctx context.Context, method, path string, payload []byte, out interface{}) (*HTTPError, error) {
	var reader io.Reader
	if payload != nil {
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range c.headers {
		req.Header.Set(k, v)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode >= 400 {
		msg, ok := statusMessages[resp.StatusCode]
		if !ok {
			msg = http.StatusText(resp.StatusCode)
		}
		httpErr := &HTTPError{Status: resp.StatusCode, Message: msg}
		if len(raw) > 0 && json.Valid(raw) {
			httpErr.Data = json.RawMessage(raw)
		}
		return httpErr, nil
	}

	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return nil, fmt.Errorf("failed to decode response body: %w", err)
		}
	}
	return nil, nil
}
