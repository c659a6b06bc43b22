// Package logger provides structured logging utilities built on Go's standard slog package.
// It offers a small factory with environment-specific configurations and a set of
// pre-built, nil-safe attribute helpers for common logging scenarios.
//
// # Basic Usage
//
// Create loggers using the factory function with configuration options:
//
//	import "github.com/dmitrymomot/imgstore/core/logger"
//
//	// Development: text format, debug level, stdout
//	log := logger.New(logger.WithDevelopment("imgstore"))
//
//	// Production: JSON format, info level, stdout
//	log := logger.New(logger.WithProduction("imgstore"))
//
//	// Custom configuration
//	log := logger.New(
//		logger.WithLevel(slog.LevelWarn),
//		logger.WithJSONFormatter(),
//		logger.WithAttr(slog.String("service", "uploads")),
//		logger.WithOutput(os.Stderr),
//	)
//
// # Attribute Helpers
//
// Helpers return an empty slog.Attr for nil/empty input, so call sites never
// need explicit nil checks:
//
//	log.Error("upload failed",
//		logger.Error(err),
//		logger.Component("upload"),
//		logger.Filename(name),
//		logger.FileSize(size),
//	)
//
//	log.Info("request processed",
//		logger.Method(r.Method),
//		logger.Path(r.URL.Path),
//		logger.StatusCode(status),
//		logger.Latency(time.Since(start)),
//	)
//
// # Testing with Custom Output
//
// Capture logs during testing:
//
//	var buf bytes.Buffer
//	log := logger.New(
//		logger.WithJSONFormatter(),
//		logger.WithOutput(&buf),
//	)
//
//	log.Info("test message", logger.Component("test"))
//	assert.Contains(t, buf.String(), `"component":"test"`)
//
// # Global Logger Setup
//
// Install a logger as the process-wide default when packages log through slog
// directly:
//
//	logger.SetAsDefault(logger.New(logger.WithProduction("imgstore")))
package logger
