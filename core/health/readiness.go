package health

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/imgstore/core/handler"
	"github.com/dmitrymomot/imgstore/core/logger"
	"github.com/dmitrymomot/imgstore/core/response"
)

// Readiness verifies all service dependencies are functioning.
// Returns "READY" if all checks pass, 503 Service Unavailable if any fail.
//
// Example:
//
//	r.Get("/readyz", health.Readiness[*router.Context](
//		log,
//		storage.Healthcheck(store),
//	))
func Readiness[C handler.Context](log *slog.Logger, fn ...func(context.Context) error) handler.HandlerFunc[C] {
	return func(ctx C) handler.Response {
		for _, f := range fn {
			if err := f(ctx); err != nil {
				log.ErrorContext(ctx, "Readiness check failed", logger.Error(err))
				return response.Error(response.ErrServiceUnavailable)
			}
		}

		return response.String("READY")
	}
}
