// Package health provides HTTP handlers for service health monitoring.
//
// Handlers:
//   - Liveness: Process is running (no dependency checks)
//   - Readiness: All dependencies are available
//   - NoContent: Returns 204 for minimal overhead
//
// Usage:
//
//	r.Get("/healthz", health.Liveness[*router.Context])
//	r.Get("/readyz", health.Readiness[*router.Context](
//		log,
//		storage.Healthcheck(store),
//	))
//	r.Get("/ping", health.NoContent[*router.Context])
//
// Dependency checks follow the func(context.Context) error signature.
package health
