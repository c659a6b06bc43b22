// Package handler provides types and interfaces for HTTP request processing
// with type-safe context handling and middleware support. It defines the core
// abstractions the router, middleware, and application handlers share.
//
// # Core Types
//
//	import "github.com/dmitrymomot/imgstore/core/handler"
//
//	// Response function renders HTTP responses
//	type Response func(w http.ResponseWriter, r *http.Request) error
//
//	// Type-safe handler with custom context
//	type HandlerFunc[C Context] func(ctx C) Response
//
//	// Error handling function
//	type ErrorHandler[C Context] func(ctx C, err error)
//
//	// Middleware function for handler composition
//	type Middleware[C Context] func(next HandlerFunc[C]) HandlerFunc[C]
//
// # Context Interface
//
// The Context interface extends Go's standard context.Context with
// HTTP-specific methods:
//
//	type Context interface {
//		context.Context                      // Standard context methods
//		Request() *http.Request              // Access to HTTP request
//		ResponseWriter() http.ResponseWriter // Access to response writer
//		Param(key string) string             // Get path parameters
//		SetValue(key, val any)               // Store request-scoped values
//	}
//
// # Basic Handler Implementation
//
// A handler returns a Response closure; the split keeps business logic
// separate from rendering:
//
//	func uploadHandler(ctx handler.Context) handler.Response {
//		result, err := svc.Process(ctx, req)
//		if err != nil {
//			return response.Error(err)
//		}
//		return response.JSON(result)
//	}
//
// # Middleware Implementation
//
// Middleware wraps handlers to add cross-cutting behavior:
//
//	func RequestTimer[C handler.Context]() handler.Middleware[C] {
//		return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
//			return func(ctx C) handler.Response {
//				start := time.Now()
//				resp := next(ctx)
//				return func(w http.ResponseWriter, r *http.Request) error {
//					err := resp(w, r)
//					slog.Debug("handled", "elapsed", time.Since(start))
//					return err
//				}
//			}
//		}
//	}
//
// # Custom Context Types
//
// Applications define their own context type satisfying Context and pass it
// as the type parameter, giving handlers compile-time access to
// application-specific fields without casts. See the router package for how
// contexts are created per request via a context factory.
package handler
