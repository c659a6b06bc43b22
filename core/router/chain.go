package router

import "github.com/dmitrymomot/imgstore/core/handler"

// chain wraps an endpoint with a middleware stack. Middlewares are applied in
// reverse registration order so the first registered runs outermost.
func chain[C handler.Context](middlewares []handler.Middleware[C], endpoint handler.HandlerFunc[C]) handler.HandlerFunc[C] {
	h := endpoint
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}
