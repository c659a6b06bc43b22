package router

import (
	"net/http"
	"sync"
	"time"
)

// Context is the default request context used when the router is created
// without a context factory. It carries the matched path parameters and a
// small mutable value store for middleware.
type Context struct {
	w      http.ResponseWriter
	r      *http.Request
	params map[string]string

	mu     sync.RWMutex
	values map[any]any
}

func newContext(w http.ResponseWriter, r *http.Request, params map[string]string) *Context {
	return &Context{
		w:      w,
		r:      r,
		params: params,
	}
}

// Request returns the underlying HTTP request.
func (c *Context) Request() *http.Request {
	return c.r
}

// ResponseWriter returns the response writer for this request.
func (c *Context) ResponseWriter() http.ResponseWriter {
	return c.w
}

// Param returns the path parameter for the given key. The catch-all
// remainder is available under the "*" key.
func (c *Context) Param(key string) string {
	return c.params[key]
}

// SetValue stores a request-scoped value. Values set here shadow the
// request's context values for the same key.
func (c *Context) SetValue(key, val any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.values == nil {
		c.values = make(map[any]any)
	}
	c.values[key] = val
}

// Deadline implements context.Context by delegating to the request context.
func (c *Context) Deadline() (time.Time, bool) {
	return c.r.Context().Deadline()
}

// Done implements context.Context by delegating to the request context.
func (c *Context) Done() <-chan struct{} {
	return c.r.Context().Done()
}

// Err implements context.Context by delegating to the request context.
func (c *Context) Err() error {
	return c.r.Context().Err()
}

// Value returns values stored with SetValue first, then falls back to the
// request context.
func (c *Context) Value(key any) any {
	c.mu.RLock()
	if val, ok := c.values[key]; ok {
		c.mu.RUnlock()
		return val
	}
	c.mu.RUnlock()
	return c.r.Context().Value(key)
}
