package middleware_test

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/imgstore/core/handler"
	"github.com/dmitrymomot/imgstore/core/router"
	"github.com/dmitrymomot/imgstore/middleware"
)

func TestClientIPStoresInContext(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()
	r.Use(middleware.ClientIP[*router.Context]())

	r.Get("/test", func(ctx *router.Context) handler.Response {
		ip, ok := middleware.GetClientIP(ctx)
		require.True(t, ok)
		return func(w http.ResponseWriter, r *http.Request) error {
			w.WriteHeader(http.StatusOK)
			_, err := w.Write([]byte(ip))
			return err
		}
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.RemoteAddr = "192.168.1.100:54321"
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "192.168.1.100", w.Body.String())
}

func TestClientIPProxyHeaders(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		headers  map[string]string
		expected string
	}{
		{
			name:     "cloudflare header wins",
			headers:  map[string]string{"CF-Connecting-IP": "203.0.113.5", "X-Forwarded-For": "10.0.0.1"},
			expected: "203.0.113.5",
		},
		{
			name:     "forwarded for uses leftmost entry",
			headers:  map[string]string{"X-Forwarded-For": "203.0.113.7, 10.0.0.1, 172.16.0.1"},
			expected: "203.0.113.7",
		},
		{
			name:     "real ip fallback",
			headers:  map[string]string{"X-Real-IP": "203.0.113.9"},
			expected: "203.0.113.9",
		},
		{
			name:     "malformed header falls through to remote addr",
			headers:  map[string]string{"X-Forwarded-For": "not-an-ip"},
			expected: "192.168.1.100",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := router.New[*router.Context]()
			r.Use(middleware.ClientIP[*router.Context]())

			r.Get("/test", func(ctx *router.Context) handler.Response {
				ip, _ := middleware.GetClientIP(ctx)
				return func(w http.ResponseWriter, r *http.Request) error {
					w.WriteHeader(http.StatusOK)
					_, err := w.Write([]byte(ip))
					return err
				}
			})

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			req.RemoteAddr = "192.168.1.100:54321"
			for key, value := range tt.headers {
				req.Header.Set(key, value)
			}
			w := httptest.NewRecorder()

			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expected, w.Body.String())
		})
	}
}

func TestClientIPStoreInHeader(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()
	r.Use(middleware.ClientIPWithConfig[*router.Context](middleware.ClientIPConfig{
		StoreInContext: true,
		StoreInHeader:  true,
	}))

	r.Get("/test", func(ctx *router.Context) handler.Response {
		return func(w http.ResponseWriter, r *http.Request) error {
			w.WriteHeader(http.StatusOK)
			return nil
		}
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.RemoteAddr = "203.0.113.10:443"
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	assert.Equal(t, "203.0.113.10", w.Header().Get("X-Client-IP"))
}

func TestClientIPCustomHeaderName(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()
	r.Use(middleware.ClientIPWithConfig[*router.Context](middleware.ClientIPConfig{
		StoreInHeader: true,
		HeaderName:    "X-Resolved-IP",
	}))

	r.Get("/test", func(ctx *router.Context) handler.Response {
		return func(w http.ResponseWriter, r *http.Request) error {
			w.WriteHeader(http.StatusOK)
			return nil
		}
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.RemoteAddr = "203.0.113.11:80"
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	assert.Equal(t, "203.0.113.11", w.Header().Get("X-Resolved-IP"))
	assert.Empty(t, w.Header().Get("X-Client-IP"))
}

func TestClientIPValidateFunc(t *testing.T) {
	t.Parallel()

	blocked := errors.New("address blocked")

	r := router.New[*router.Context]()
	r.Use(middleware.ClientIPWithConfig[*router.Context](middleware.ClientIPConfig{
		StoreInContext: true,
		ValidateFunc: func(ctx handler.Context, ip string) error {
			if ip == "203.0.113.66" {
				return blocked
			}
			return nil
		},
	}))

	handlerCalled := false
	r.Get("/test", func(ctx *router.Context) handler.Response {
		handlerCalled = true
		return func(w http.ResponseWriter, r *http.Request) error {
			w.WriteHeader(http.StatusOK)
			return nil
		}
	})

	// Blocked IP is rejected before the handler runs.
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.RemoteAddr = "203.0.113.66:12345"
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.False(t, handlerCalled)

	// Other IPs pass through.
	req = httptest.NewRequest(http.MethodGet, "/test", nil)
	req.RemoteAddr = "203.0.113.67:12345"
	w = httptest.NewRecorder()

	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.True(t, handlerCalled)
}

func TestClientIPSkipFunction(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()
	r.Use(middleware.ClientIPWithConfig[*router.Context](middleware.ClientIPConfig{
		StoreInContext: true,
		Skip: func(ctx handler.Context) bool {
			return ctx.Request().URL.Path == "/internal"
		},
	}))

	r.Get("/internal", func(ctx *router.Context) handler.Response {
		_, ok := middleware.GetClientIP(ctx)
		assert.False(t, ok)
		return func(w http.ResponseWriter, r *http.Request) error {
			w.WriteHeader(http.StatusOK)
			return nil
		}
	})

	req := httptest.NewRequest(http.MethodGet, "/internal", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestGetClientIPWithoutMiddleware(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()

	r.Get("/test", func(ctx *router.Context) handler.Response {
		ip, ok := middleware.GetClientIP(ctx)
		assert.False(t, ok)
		assert.Empty(t, ip)
		return func(w http.ResponseWriter, r *http.Request) error {
			w.WriteHeader(http.StatusOK)
			return nil
		}
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
}
