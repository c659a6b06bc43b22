// Package router provides a generic HTTP router built around typed request
// contexts. Routes are matched on a segment tree supporting static paths,
// {name} parameters, and a trailing catch-all, with middleware chaining and
// pluggable error handling.
//
// # Basic Usage
//
// Create a router with the default context and register routes:
//
//	r := router.New[*router.Context]()
//
//	r.Get("/health", func(ctx *router.Context) handler.Response {
//		return response.JSON(map[string]string{"status": "ok"})
//	})
//
//	r.Post("/upload", uploadHandler)
//
//	http.ListenAndServe(":8080", r)
//
// # Path Parameters
//
// Parameters and the catch-all remainder are available through the context:
//
//	r.Get("/files/{bucket}/*", func(ctx *router.Context) handler.Response {
//		bucket := ctx.Param("bucket")
//		rest := ctx.Param("*")
//		return response.String(bucket + "/" + rest)
//	})
//
// # Custom Contexts
//
// Applications with their own context type supply a factory:
//
//	r := router.New[*app.Context](
//		router.WithContextFactory(app.NewContext),
//		router.WithErrorHandler(app.ErrorHandler),
//	)
//
// # Middleware
//
// Use applies middleware to every route; With and Group scope middleware to
// a subset:
//
//	r.Use(middleware.RequestID[*app.Context]())
//
//	r.Group(func(r router.Router[*app.Context]) {
//		r.Use(middleware.RateLimit[*app.Context](cfg))
//		r.Post("/upload", uploadHandler)
//	})
//
// # Error Handling
//
// Handlers return a Response; returning response.Error(err) or a nil response
// routes the error to the configured error handler. Recovered panics arrive
// wrapped in an error implementing PanicError so handlers can log the stack.
package router
