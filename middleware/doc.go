// Package middleware provides HTTP middleware for the upload service:
// request IDs, client IP extraction, request/response logging, body
// size limits, CORS, and rate limiting.
//
// All middleware follow the same pattern: a generic function over the
// handler.Context type, a config struct with a Skip hook, a default
// constructor plus a WithConfig variant, and context helpers for values
// stored by the middleware (GetRequestID, GetClientIP).
//
// # Ordering
//
// Order matters. Request IDs come first so everything downstream can
// log them, client IP next so rate limiting keys on the real client,
// then logging, CORS, and the body limit:
//
//	r.Use(
//		middleware.RequestID[*router.Context](),
//		middleware.ClientIP[*router.Context](),
//		middleware.LoggingWithLogger[*router.Context](log),
//		middleware.CORS[*router.Context](),
//		middleware.BodyLimitWithSize[*router.Context](middleware.KB),
//	)
//
// # Body limits
//
// BodyLimit rejects oversized requests twice: declared sizes fail fast
// on the Content-Length header, and lying clients hit the
// http.MaxBytesReader wrapped around the body. The upload route
// typically gets its own, larger limit with a custom error:
//
//	r.With(middleware.BodyLimitWithConfig[*router.Context](middleware.BodyLimitConfig{
//		MaxSize: 10 * middleware.MB,
//		ErrorHandler: func(ctx handler.Context, size, limit int64) handler.Response {
//			return response.Error(response.ErrBadRequest.WithMessage("upload too large"))
//		},
//	})).Post("/upload", uploadHandler)
//
// # Rate limiting
//
// RateLimit keys requests by client IP (via GetClientIP, falling back
// to RemoteAddr) against a token bucket from pkg/ratelimiter, answers
// denials with 429 plus retry_after, and optionally sets the
// X-RateLimit-* headers.
//
// # Skipping
//
// Every config carries a Skip hook for routes that should bypass the
// middleware, typically health checks:
//
//	Skip: func(ctx handler.Context) bool {
//		return ctx.Request().URL.Path == "/healthz"
//	},
package middleware
