// Package server wraps the standard http.Server with graceful shutdown,
// environment-driven configuration, and production-ready default timeouts.
//
// # Basic Usage
//
// Create and run a server with default configuration:
//
//	handler := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
//		w.Write([]byte("ok"))
//	})
//
//	ctx := context.Background()
//	if err := server.Run(ctx, ":8080", handler); err != nil {
//		log.Fatal(err)
//	}
//
// # Configuration
//
// Configure through the environment via Config, with options overriding:
//
//	var cfg server.Config
//	config.MustLoad(&cfg)
//
//	srv, err := server.NewFromConfig(cfg,
//		server.WithLogger(logger),
//		server.WithShutdownTimeout(60*time.Second),
//	)
//
// # Graceful Shutdown
//
// Start blocks until the context is canceled; Stop drains in-flight requests
// within the shutdown timeout. The Run method packages both for errgroup use:
//
//	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
//	defer stop()
//
//	g, ctx := errgroup.WithContext(ctx)
//	g.Go(srv.Run(ctx, r))
//	if err := g.Wait(); err != nil {
//		logger.Error("server failed", "error", err)
//	}
//
// # Defaults
//
//   - ReadTimeout: 15 seconds
//   - WriteTimeout: 15 seconds
//   - IdleTimeout: 60 seconds
//   - MaxHeaderBytes: 1MB
//   - Graceful shutdown timeout: 30 seconds
//
// The Server type is safe for concurrent use.
package server
