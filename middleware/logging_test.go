package middleware_test

import (
	"bytes"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/imgstore/core/handler"
	"github.com/dmitrymomot/imgstore/core/router"
	"github.com/dmitrymomot/imgstore/middleware"
)

func TestLoggingBasicOutput(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))

	r := router.New[*router.Context]()
	r.Use(middleware.LoggingWithLogger[*router.Context](log))

	r.Get("/test", func(ctx *router.Context) handler.Response {
		return func(w http.ResponseWriter, r *http.Request) error {
			w.WriteHeader(http.StatusOK)
			_, err := w.Write([]byte("hello"))
			return err
		}
	})

	req := httptest.NewRequest(http.MethodGet, "/test?debug=1", nil)
	req.RemoteAddr = "192.0.2.1:1234"
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	output := buf.String()
	assert.Contains(t, output, `"msg":"HTTP request started"`)
	assert.Contains(t, output, `"msg":"HTTP request completed"`)
	assert.Contains(t, output, `"method":"GET"`)
	assert.Contains(t, output, `"path":"/test"`)
	assert.Contains(t, output, `"query":"debug=1"`)
	assert.Contains(t, output, `"remote_addr":"192.0.2.1:1234"`)
	assert.Contains(t, output, `"status_code":200`)
	assert.Contains(t, output, `"bytes_out":5`)
	assert.Contains(t, output, `"component":"http"`)
	assert.Contains(t, output, `"duration"`)
}

func TestLoggingStatusLevels(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		status        int
		expectedLevel string
	}{
		{"success logs at info", http.StatusOK, `"level":"INFO"`},
		{"client error logs at warn", http.StatusBadRequest, `"level":"WARN"`},
		{"server error logs at error", http.StatusInternalServerError, `"level":"ERROR"`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var buf bytes.Buffer
			log := slog.New(slog.NewJSONHandler(&buf, nil))

			r := router.New[*router.Context]()
			r.Use(middleware.LoggingWithConfig[*router.Context](middleware.LoggingConfig{
				Logger:      log,
				LogResponse: true, // only the completed line carries the status
			}))

			r.Get("/test", func(ctx *router.Context) handler.Response {
				return func(w http.ResponseWriter, r *http.Request) error {
					w.WriteHeader(tt.status)
					return nil
				}
			})

			req := httptest.NewRequest(http.MethodGet, "/test", nil)
			w := httptest.NewRecorder()

			r.ServeHTTP(w, req)

			assert.Contains(t, buf.String(), tt.expectedLevel)
		})
	}
}

func TestLoggingRequestLineOnly(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))

	r := router.New[*router.Context]()
	r.Use(middleware.LoggingWithConfig[*router.Context](middleware.LoggingConfig{
		Logger:      log,
		LogRequest:  true,
		LogResponse: false,
	}))

	r.Get("/test", func(ctx *router.Context) handler.Response {
		return func(w http.ResponseWriter, r *http.Request) error {
			w.WriteHeader(http.StatusOK)
			return nil
		}
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	output := buf.String()
	assert.Contains(t, output, `"msg":"HTTP request started"`)
	assert.NotContains(t, output, `"msg":"HTTP request completed"`)
}

func TestLoggingHeaderRedaction(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))

	r := router.New[*router.Context]()
	r.Use(middleware.LoggingWithConfig[*router.Context](middleware.LoggingConfig{
		Logger:     log,
		LogHeaders: true,
	}))

	r.Get("/test", func(ctx *router.Context) handler.Response {
		return func(w http.ResponseWriter, r *http.Request) error {
			w.WriteHeader(http.StatusOK)
			return nil
		}
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("Authorization", "Bearer secret-token")
	req.Header.Set("X-Custom", "visible-value")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	output := buf.String()
	assert.Contains(t, output, "request_headers")
	assert.Contains(t, output, "[REDACTED]")
	assert.Contains(t, output, "visible-value")
	assert.NotContains(t, output, "secret-token")
}

func TestLoggingRequestContextAttrs(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))

	r := router.New[*router.Context]()
	r.Use(middleware.RequestIDWithConfig[*router.Context](middleware.RequestIDConfig{
		Generator: func() string { return "req-42" },
	}))
	r.Use(middleware.ClientIP[*router.Context]())
	r.Use(middleware.LoggingWithLogger[*router.Context](log))

	r.Get("/test", func(ctx *router.Context) handler.Response {
		return func(w http.ResponseWriter, r *http.Request) error {
			w.WriteHeader(http.StatusOK)
			return nil
		}
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req.Header.Set("X-Forwarded-For", "203.0.113.20")
	req.RemoteAddr = "10.0.0.1:9999"
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	output := buf.String()
	assert.Contains(t, output, `"request_id":"req-42"`)
	assert.Contains(t, output, `"client_ip":"203.0.113.20"`)
}

func TestLoggingSlowRequestWarning(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))

	r := router.New[*router.Context]()
	r.Use(middleware.LoggingWithConfig[*router.Context](middleware.LoggingConfig{
		Logger:               log,
		LogResponse:          true,
		SlowRequestThreshold: time.Millisecond,
	}))

	r.Get("/slow", func(ctx *router.Context) handler.Response {
		return func(w http.ResponseWriter, r *http.Request) error {
			time.Sleep(20 * time.Millisecond)
			w.WriteHeader(http.StatusOK)
			return nil
		}
	})

	req := httptest.NewRequest(http.MethodGet, "/slow", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	output := buf.String()
	assert.Contains(t, output, `"level":"WARN"`)
	assert.Contains(t, output, `"slow_request":true`)
}

func TestLoggingSkipFunction(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))

	r := router.New[*router.Context]()
	r.Use(middleware.LoggingWithConfig[*router.Context](middleware.LoggingConfig{
		Logger: log,
		Skip: func(ctx handler.Context) bool {
			return ctx.Request().URL.Path == "/healthz"
		},
	}))

	r.Get("/healthz", func(ctx *router.Context) handler.Response {
		return func(w http.ResponseWriter, r *http.Request) error {
			w.WriteHeader(http.StatusOK)
			return nil
		}
	})

	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Empty(t, buf.String())
}

func TestLoggingCustomComponent(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))

	r := router.New[*router.Context]()
	r.Use(middleware.LoggingWithConfig[*router.Context](middleware.LoggingConfig{
		Logger:    log,
		Component: "upload-api",
	}))

	r.Get("/test", func(ctx *router.Context) handler.Response {
		return func(w http.ResponseWriter, r *http.Request) error {
			w.WriteHeader(http.StatusOK)
			return nil
		}
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	assert.Contains(t, buf.String(), `"component":"upload-api"`)
}
