package middleware_test

import (
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/imgstore/core/handler"
	"github.com/dmitrymomot/imgstore/core/router"
	"github.com/dmitrymomot/imgstore/middleware"
)

func TestBodyLimitDefaultConfiguration(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()
	r.Use(middleware.BodyLimit[*router.Context]())

	r.Post("/test", func(ctx *router.Context) handler.Response {
		body, err := io.ReadAll(ctx.Request().Body)
		assert.NoError(t, err)
		return func(w http.ResponseWriter, r *http.Request) error {
			w.WriteHeader(http.StatusOK)
			_, err := w.Write(body)
			return err
		}
	})

	smallBody := strings.Repeat("a", 1024)
	req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(smallBody))
	req.Header.Set("Content-Length", "1024")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, smallBody, w.Body.String())
}

func TestBodyLimitExceedsDefault(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()
	r.Use(middleware.BodyLimit[*router.Context]())

	handlerCalled := false
	r.Post("/test", func(ctx *router.Context) handler.Response {
		handlerCalled = true
		return func(w http.ResponseWriter, r *http.Request) error {
			w.WriteHeader(http.StatusOK)
			return nil
		}
	})

	// Declared size over the 4MB default is rejected before the body is read.
	largeBodySize := 5 * 1024 * 1024
	req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader("tiny"))
	req.Header.Set("Content-Length", strconv.Itoa(largeBodySize))
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
	assert.Contains(t, w.Body.String(), "Request body too large")
	assert.False(t, handlerCalled)
}

func TestBodyLimitWithSize(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()
	r.Use(middleware.BodyLimitWithSize[*router.Context](100))

	r.Post("/test", func(ctx *router.Context) handler.Response {
		body, err := io.ReadAll(ctx.Request().Body)
		if err != nil {
			return func(w http.ResponseWriter, r *http.Request) error {
				w.WriteHeader(http.StatusBadRequest)
				return nil
			}
		}
		return func(w http.ResponseWriter, r *http.Request) error {
			w.WriteHeader(http.StatusOK)
			_, err := w.Write(body)
			return err
		}
	})

	// Within limit
	smallBody := strings.Repeat("a", 50)
	req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(smallBody))
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, smallBody, w.Body.String())

	// Exceeding limit
	largeBody := strings.Repeat("b", 150)
	req = httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(largeBody))
	req.Header.Set("Content-Length", "150")
	w = httptest.NewRecorder()

	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestBodyLimitMaxBytesError(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()
	r.Use(middleware.BodyLimitWithConfig[*router.Context](middleware.BodyLimitConfig{
		MaxSize:                   100,
		DisableContentLengthCheck: true,
	}))

	var readErr error
	r.Post("/test", func(ctx *router.Context) handler.Response {
		_, readErr = io.ReadAll(ctx.Request().Body)
		return func(w http.ResponseWriter, r *http.Request) error {
			if readErr != nil {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(readErr.Error()))
				return nil
			}
			w.WriteHeader(http.StatusOK)
			return nil
		}
	})

	req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(strings.Repeat("x", 150)))
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	// Handlers see the typed error so upload classification can map it
	// to the right client-facing message.
	assert.Equal(t, http.StatusBadRequest, w.Code)
	var maxBytesErr *http.MaxBytesError
	assert.True(t, errors.As(readErr, &maxBytesErr))
	assert.Equal(t, int64(100), maxBytesErr.Limit)
}

func TestBodyLimitContentTypeSpecific(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()

	r.Use(middleware.BodyLimitWithConfig[*router.Context](middleware.BodyLimitConfig{
		MaxSize: 100,
		ContentTypeLimit: map[string]int64{
			"application/json":         50,
			"multipart/form-data":      200,
			"application/octet-stream": 1024,
		},
	}))

	r.Post("/test", func(ctx *router.Context) handler.Response {
		body, err := io.ReadAll(ctx.Request().Body)
		if err != nil {
			return func(w http.ResponseWriter, r *http.Request) error {
				w.WriteHeader(http.StatusBadRequest)
				return nil
			}
		}
		return func(w http.ResponseWriter, r *http.Request) error {
			w.WriteHeader(http.StatusOK)
			_, err := w.Write(body)
			return err
		}
	})

	tests := []struct {
		name        string
		contentType string
		bodySize    int
		expectCode  int
	}{
		{"JSON within limit", "application/json", 40, http.StatusOK},
		{"JSON exceeds limit", "application/json", 60, http.StatusRequestEntityTooLarge},
		{"Form within limit", "multipart/form-data", 150, http.StatusOK},
		{"Form exceeds limit", "multipart/form-data", 250, http.StatusRequestEntityTooLarge},
		{"Binary within limit", "application/octet-stream", 512, http.StatusOK},
		{"Binary exceeds limit", "application/octet-stream", 2048, http.StatusRequestEntityTooLarge},
		{"Unknown type uses default", "text/plain", 80, http.StatusOK},
		{"Unknown type exceeds default", "text/plain", 120, http.StatusRequestEntityTooLarge},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			body := strings.Repeat("x", tt.bodySize)
			req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(body))
			req.Header.Set("Content-Type", tt.contentType)
			req.Header.Set("Content-Length", strconv.Itoa(tt.bodySize))
			w := httptest.NewRecorder()

			r.ServeHTTP(w, req)

			assert.Equal(t, tt.expectCode, w.Code)
		})
	}
}

func TestBodyLimitContentTypeWithCharset(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()

	r.Use(middleware.BodyLimitWithConfig[*router.Context](middleware.BodyLimitConfig{
		MaxSize: 100,
		ContentTypeLimit: map[string]int64{
			"application/json": 50,
		},
	}))

	r.Post("/test", func(ctx *router.Context) handler.Response {
		body, _ := io.ReadAll(ctx.Request().Body)
		return func(w http.ResponseWriter, r *http.Request) error {
			w.WriteHeader(http.StatusOK)
			_, err := w.Write(body)
			return err
		}
	})

	// Charset parameter does not stop media type matching.
	body := strings.Repeat("a", 40)
	req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)

	largeBody := strings.Repeat("b", 60)
	req = httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(largeBody))
	req.Header.Set("Content-Type", "application/json; charset=utf-8")
	req.Header.Set("Content-Length", "60")
	w = httptest.NewRecorder()

	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}

func TestBodyLimitSkipFunction(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()

	r.Use(middleware.BodyLimitWithConfig[*router.Context](middleware.BodyLimitConfig{
		MaxSize: 10,
		Skip: func(ctx handler.Context) bool {
			return ctx.Request().URL.Path == "/upload"
		},
	}))

	echo := func(ctx *router.Context) handler.Response {
		body, _ := io.ReadAll(ctx.Request().Body)
		return func(w http.ResponseWriter, r *http.Request) error {
			w.WriteHeader(http.StatusOK)
			_, err := w.Write(body)
			return err
		}
	}

	r.Post("/test", echo)
	r.Post("/upload", echo)

	// Limited endpoint
	body := strings.Repeat("a", 20)
	req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(body))
	req.Header.Set("Content-Length", "20")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)

	// Skipped endpoint
	req = httptest.NewRequest(http.MethodPost, "/upload", strings.NewReader(body))
	w = httptest.NewRecorder()

	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, body, w.Body.String())
}

func TestBodyLimitCustomErrorHandler(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()

	customMessage := "Custom error: body too big"
	r.Use(middleware.BodyLimitWithConfig[*router.Context](middleware.BodyLimitConfig{
		MaxSize: 10,
		ErrorHandler: func(ctx handler.Context, contentLength int64, maxSize int64) handler.Response {
			assert.Equal(t, int64(20), contentLength)
			assert.Equal(t, int64(10), maxSize)
			return func(w http.ResponseWriter, r *http.Request) error {
				w.WriteHeader(http.StatusTeapot)
				_, err := w.Write([]byte(customMessage))
				return err
			}
		},
	}))

	r.Post("/test", func(ctx *router.Context) handler.Response {
		return func(w http.ResponseWriter, r *http.Request) error {
			w.WriteHeader(http.StatusOK)
			return nil
		}
	})

	req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(strings.Repeat("a", 20)))
	req.Header.Set("Content-Length", "20")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.Equal(t, customMessage, w.Body.String())
}

func TestBodyLimitDisableContentLengthCheck(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()

	r.Use(middleware.BodyLimitWithConfig[*router.Context](middleware.BodyLimitConfig{
		MaxSize:                   100,
		DisableContentLengthCheck: true,
	}))

	r.Post("/test", func(ctx *router.Context) handler.Response {
		body, err := io.ReadAll(ctx.Request().Body)
		if err != nil {
			return func(w http.ResponseWriter, r *http.Request) error {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(err.Error()))
				return nil
			}
		}
		return func(w http.ResponseWriter, r *http.Request) error {
			w.WriteHeader(http.StatusOK)
			_, err := w.Write(body)
			return err
		}
	})

	// An inflated Content-Length header alone does not reject the request.
	smallBody := strings.Repeat("a", 50)
	req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(smallBody))
	req.Header.Set("Content-Length", "200")
	w := httptest.NewRecorder()

	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, smallBody, w.Body.String())

	// The limit is still enforced while reading.
	largeBody := strings.Repeat("b", 150)
	req = httptest.NewRequest(http.MethodPost, "/test", strings.NewReader(largeBody))
	w = httptest.NewRecorder()

	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "request body too large")
}

func TestBodyLimitNoBody(t *testing.T) {
	t.Parallel()

	r := router.New[*router.Context]()
	r.Use(middleware.BodyLimitWithSize[*router.Context](100))

	r.Get("/test", func(ctx *router.Context) handler.Response {
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

func TestBodyLimitErrorMessageFormatting(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		maxSize  int64
		expected string
	}{
		{"bytes", 100, "Maximum allowed: 100 bytes"},
		{"kilobytes", 1536, "Maximum allowed: 1.50 KB"},
		{"megabytes", 5 * middleware.MB, "Maximum allowed: 5.00 MB"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			r := router.New[*router.Context]()
			r.Use(middleware.BodyLimitWithSize[*router.Context](tt.maxSize))

			r.Post("/test", func(ctx *router.Context) handler.Response {
				return func(w http.ResponseWriter, r *http.Request) error {
					w.WriteHeader(http.StatusOK)
					return nil
				}
			})

			req := httptest.NewRequest(http.MethodPost, "/test", strings.NewReader("x"))
			req.Header.Set("Content-Length", strconv.FormatInt(tt.maxSize+1, 10))
			w := httptest.NewRecorder()

			r.ServeHTTP(w, req)

			assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
			assert.Contains(t, w.Body.String(), tt.expected)
		})
	}
}

func TestBodyLimitConstants(t *testing.T) {
	t.Parallel()

	assert.Equal(t, int64(1024), middleware.KB)
	assert.Equal(t, int64(1024*1024), middleware.MB)
	assert.Equal(t, int64(1024*1024*1024), middleware.GB)
}
