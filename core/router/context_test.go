package router_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/imgstore/core/handler"
	"github.com/dmitrymomot/imgstore/core/router"
)

func TestContextImplementsHandlerContext(t *testing.T) {
	t.Parallel()

	var _ handler.Context = &router.Context{}
	var _ context.Context = &router.Context{}
}

func TestContextRequest(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()
	var capturedRequest *http.Request

	r.Get("/test", func(ctx *router.Context) handler.Response {
		capturedRequest = ctx.Request()
		return func(w http.ResponseWriter, r *http.Request) error {
			w.WriteHeader(http.StatusOK)
			return nil
		}
	})

	originalReq := httptest.NewRequest(http.MethodGet, "/test", nil)
	originalReq.Header.Set("X-Test-Header", "test-value")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, originalReq)

	require.NotNil(t, capturedRequest)
	assert.Equal(t, originalReq, capturedRequest)
	assert.Equal(t, "test-value", capturedRequest.Header.Get("X-Test-Header"))
}

func TestContextParam(t *testing.T) {
	t.Parallel()

	t.Run("returns matched parameter", func(t *testing.T) {
		t.Parallel()

		r := router.New[*router.Context]()
		var got string

		r.Get("/files/{name}", func(ctx *router.Context) handler.Response {
			got = ctx.Param("name")
			return okHandler(ctx)
		})

		req := httptest.NewRequest(http.MethodGet, "/files/report.pdf", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, "report.pdf", got)
	})

	t.Run("returns empty string for unknown key", func(t *testing.T) {
		t.Parallel()

		r := router.New[*router.Context]()
		var got string

		r.Get("/files/{name}", func(ctx *router.Context) handler.Response {
			got = ctx.Param("missing")
			return okHandler(ctx)
		})

		req := httptest.NewRequest(http.MethodGet, "/files/a", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Empty(t, got)
	})
}

func TestContextSetValue(t *testing.T) {
	t.Parallel()

	t.Run("stores and retrieves values", func(t *testing.T) {
		t.Parallel()

		r := router.New[*router.Context]()
		var got any

		r.Get("/test", func(ctx *router.Context) handler.Response {
			ctx.SetValue("request_id", "abc-123")
			got = ctx.Value("request_id")
			return okHandler(ctx)
		})

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, "abc-123", got)
	})

	t.Run("set values shadow request context values", func(t *testing.T) {
		t.Parallel()

		type ctxKey struct{}

		r := router.New[*router.Context]()
		var got any

		r.Get("/test", func(ctx *router.Context) handler.Response {
			ctx.SetValue(ctxKey{}, "shadowed")
			got = ctx.Value(ctxKey{})
			return okHandler(ctx)
		})

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req = req.WithContext(context.WithValue(req.Context(), ctxKey{}, "original"))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, "shadowed", got)
	})

	t.Run("falls back to request context", func(t *testing.T) {
		t.Parallel()

		type ctxKey struct{}

		r := router.New[*router.Context]()
		var got any

		r.Get("/test", func(ctx *router.Context) handler.Response {
			got = ctx.Value(ctxKey{})
			return okHandler(ctx)
		})

		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req = req.WithContext(context.WithValue(req.Context(), ctxKey{}, "from-request"))
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, "from-request", got)
	})
}

func TestContextDelegatesToRequestContext(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()
	var done <-chan struct{}
	var errBefore error

	r.Get("/test", func(ctx *router.Context) handler.Response {
		done = ctx.Done()
		errBefore = ctx.Err()
		return okHandler(ctx)
	})

	reqCtx, cancel := context.WithCancel(context.Background())
	req := httptest.NewRequest(http.MethodGet, "/test", nil).WithContext(reqCtx)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	require.NotNil(t, done)
	assert.NoError(t, errBefore)

	cancel()
	select {
	case <-done:
	default:
		t.Fatal("expected done channel to be closed after cancel")
	}
}
