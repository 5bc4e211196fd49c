package httpclient

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func newTestClient(url string) *Client {
	return New(url, &Options{Timeout: 2 * time.Second, Retries: 3, RetryDelay: time.Millisecond})
}

func TestGetDecodesBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/vehiculos/ABC-123", r.URL.Path)
		w.Write([]byte(`{"placa":"ABC-123","marca":"Volvo"}`))
	}))
	defer srv.Close()

	var out struct {
		Placa string `json:"placa"`
		Marca string `json:"marca"`
	}
	err := newTestClient(srv.URL).Get(context.Background(), "/vehiculos/ABC-123", &out)
	require.NoError(t, err)
	require.Equal(t, "Volvo", out.Marca)
}

func TestServerErrorsAreRetried(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	err := newTestClient(srv.URL).Get(context.Background(), "/", nil)
	require.NoError(t, err)
	require.EqualValues(t, 3, atomic.LoadInt32(&calls))
}

func TestRateLimitIsRetried(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	require.NoError(t, newTestClient(srv.URL).Get(context.Background(), "/", nil))
	require.EqualValues(t, 2, atomic.LoadInt32(&calls))
}

func TestClientErrorsAreNotRetried(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	err := newTestClient(srv.URL).Get(context.Background(), "/", nil)
	require.EqualValues(t, 1, atomic.LoadInt32(&calls))

	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	require.Equal(t, http.StatusNotFound, httpErr.Status)
	require.Equal(t, "recurso no encontrado", httpErr.Message)
}

func TestStatusMessageMapping(t *testing.T) {
	cases := map[int]string{
		http.StatusBadRequest:          "solicitud inválida",
		http.StatusUnauthorized:        "no autorizado",
		http.StatusForbidden:           "acceso denegado",
		http.StatusConflict:            "conflicto con el estado actual del recurso",
		http.StatusUnprocessableEntity: "datos no procesables",
	}
	for status, want := range cases {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(status)
		}))
		err := newTestClient(srv.URL).Get(context.Background(), "/", nil)
		srv.Close()

		var httpErr *HTTPError
		require.True(t, errors.As(err, &httpErr), "status %d", status)
		require.Equal(t, want, httpErr.Message)
	}
}

func TestExhaustedRetriesReportConnectionError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	err := newTestClient(srv.URL).Get(context.Background(), "/", nil)
	require.Error(t, err)
	require.True(t, errors.Is(err, ErrConnection))
}

func TestTransportFailureIsRetryable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // every attempt gets connection refused

	err := newTestClient(srv.URL).Get(context.Background(), "/", nil)
	require.True(t, errors.Is(err, ErrConnection))
}
