package main

import (
	"context"
	"embed"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"golang.org/x/sync/errgroup"

	"github.com/dmitrymomot/imgstore/core/config"
	"github.com/dmitrymomot/imgstore/core/handler"
	"github.com/dmitrymomot/imgstore/core/health"
	"github.com/dmitrymomot/imgstore/core/logger"
	"github.com/dmitrymomot/imgstore/core/response"
	"github.com/dmitrymomot/imgstore/core/router"
	"github.com/dmitrymomot/imgstore/core/server"
	"github.com/dmitrymomot/imgstore/core/static"
	"github.com/dmitrymomot/imgstore/core/storage"
	"github.com/dmitrymomot/imgstore/core/upload"
	s3storage "github.com/dmitrymomot/imgstore/integration/storage/s3"
	"github.com/dmitrymomot/imgstore/middleware"
	"github.com/dmitrymomot/imgstore/pkg/ratelimiter"
)

//go:embed web
var webFS embed.FS

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var cfg Config
	config.MustLoad(&cfg) // panic on error

	log := newLogger(cfg)
	logger.SetAsDefault(log)

	be, err := newBackend(ctx, cfg)
	if err != nil {
		log.Error("Failed to initialize storage", logger.Component("storage"), logger.Error(err))
		os.Exit(1)
	}

	svc, err := upload.NewService(be.store, upload.WithLogger(log.With(logger.Component("upload"))))
	if err != nil {
		log.Error("Failed to create upload service", logger.Component("upload"), logger.Error(err))
		os.Exit(1)
	}

	var (
		limiter  *ratelimiter.Bucket
		memStore *ratelimiter.MemoryStore
	)
	if cfg.RateLimitCapacity > 0 {
		memStore = ratelimiter.NewMemoryStore(
			ratelimiter.WithMemoryStoreLogger(log.With(logger.Component("ratelimit"))),
		)
		refill := cfg.RateLimitRefillRate
		if refill <= 0 {
			refill = cfg.RateLimitCapacity
		}
		limiter, err = ratelimiter.NewBucket(memStore, ratelimiter.Config{
			Capacity:       cfg.RateLimitCapacity,
			RefillRate:     refill,
			RefillInterval: cfg.RateLimitRefillInterval,
		})
		if err != nil {
			log.Error("Failed to configure rate limiter", logger.Component("ratelimit"), logger.Error(err))
			os.Exit(1)
		}
	}

	r := newRouter(cfg, log, svc, be, limiter)

	srv, err := server.NewFromConfig(cfg.Server, server.WithLogger(log.With(logger.Component("server"))))
	if err != nil {
		log.Error("Failed to create server", logger.Component("server"), logger.Error(err))
		os.Exit(1)
	}

	eg, ctx := errgroup.WithContext(ctx)
	if memStore != nil {
		eg.Go(memStore.Run(ctx))
	}
	eg.Go(srv.Run(ctx, r))

	log.Info("Image upload service started",
		logger.Component("app"),
		slog.String("addr", cfg.Server.Addr),
		slog.String("storage_driver", cfg.StorageDriver),
	)

	if err := eg.Wait(); err != nil {
		log.Error("Service terminated", logger.Component("app"), logger.Error(err))
		os.Exit(1)
	}

	log.Info("Application stopped")
}

// newRouter assembles the middleware stack and routes. Split from main
// so HTTP-level tests can stand up the exact production routing.
func newRouter(cfg Config, log *slog.Logger, svc *upload.Service, be *backend, limiter *ratelimiter.Bucket) router.Router[*router.Context] {
	middlewares := []handler.Middleware[*router.Context]{
		middleware.RequestID[*router.Context](),
		middleware.ClientIP[*router.Context](),
		middleware.LoggingWithConfig[*router.Context](middleware.LoggingConfig{
			Logger: log,
			Skip:   isHealthEndpoint,
		}),
	}
	if len(cfg.CORSAllowedOrigins) > 0 {
		middlewares = append(middlewares, middleware.CORSWithConfig[*router.Context](middleware.CORSConfig{
			AllowOrigins: cfg.CORSAllowedOrigins,
		}))
	}
	secCfg := middleware.DefaultSecurity
	secCfg.IsDevelopment = cfg.IsDevelopment()
	middlewares = append(middlewares,
		middleware.SecurityHeadersWithConfig[*router.Context](secCfg),
		middleware.BodyLimitWithConfig[*router.Context](middleware.BodyLimitConfig{
			MaxSize: cfg.MaxRequestSize,
			Skip:    isUploadEndpoint,
		}),
	)

	r := router.New[*router.Context](
		router.WithErrorHandler[*router.Context](errorHandler(log)),
		router.WithLogger[*router.Context](log),
		router.WithMiddleware(middlewares...),
	)

	r.Get("/", static.FS[*router.Context](webFS, static.WithSubFS("web")))
	r.Get("/healthz", health.Liveness)
	r.Get("/healthz/ready", health.Readiness[*router.Context](log, be.ready))

	// Served user content gets the restrictive preset: no scripts run
	// from an uploaded file, no matter what it claims to be.
	r.With(middleware.SecurityHeadersWithConfig[*router.Context](middleware.UserContentSecurity)).
		Get(be.publicPattern, be.serveUploads)

	// The upload route replaces the blunt 413 of the global body limit
	// with the contract message for oversize uploads.
	uploadMws := make([]handler.Middleware[*router.Context], 0, 2)
	if limiter != nil {
		uploadMws = append(uploadMws, middleware.RateLimit[*router.Context](middleware.RateLimitConfig{
			Limiter:      limiter,
			SetHeaders:   true,
			ErrorHandler: rateLimited,
		}))
	}
	uploadMws = append(uploadMws, middleware.BodyLimitWithConfig[*router.Context](middleware.BodyLimitConfig{
		MaxSize:      cfg.MaxRequestSize,
		ErrorHandler: requestTooLarge,
	}))
	r.With(uploadMws...).Post("/upload", uploadHandler(svc))

	if len(cfg.CORSAllowedOrigins) > 0 {
		// Preflight requests need a matching route for the CORS
		// middleware to intercept them.
		r.Options("/upload", func(ctx *router.Context) handler.Response {
			return response.NoContent()
		})
	}

	return r
}

// backend bundles the selected storage with its public route handler
// and readiness probe.
type backend struct {
	store         storage.Storage
	serveUploads  handler.HandlerFunc[*router.Context]
	ready         func(context.Context) error
	publicPattern string
}

func newBackend(ctx context.Context, cfg Config) (*backend, error) {
	pattern := "/" + strings.Trim(cfg.Storage.PublicPrefix, "/") + "/*"

	switch cfg.StorageDriver {
	case "s3":
		s3Store, err := s3storage.New(ctx, cfg.S3)
		if err != nil {
			return nil, err
		}
		return &backend{
			store:         s3Store,
			serveUploads:  bucketRedirectHandler(s3Store.URL),
			ready:         s3storage.Healthcheck(s3Store),
			publicPattern: pattern,
		}, nil

	case "local", "":
		local, err := storage.New(cfg.Storage)
		if err != nil {
			return nil, err
		}
		return &backend{
			store: local,
			serveUploads: static.Dir[*router.Context](local.Root(),
				static.WithStripPrefix("/"+strings.Trim(cfg.Storage.PublicPrefix, "/"))),
			ready:         storage.Healthcheck(local),
			publicPattern: pattern,
		}, nil

	default:
		return nil, fmt.Errorf("unknown storage driver %q", cfg.StorageDriver)
	}
}

func newLogger(cfg Config) *slog.Logger {
	if cfg.IsDevelopment() {
		return logger.New(logger.WithDevelopment(cfg.AppName))
	}
	return logger.New(logger.WithProduction(cfg.AppName))
}

func isHealthEndpoint(ctx handler.Context) bool {
	return strings.HasPrefix(ctx.Request().URL.Path, "/healthz")
}

func isUploadEndpoint(ctx handler.Context) bool {
	return ctx.Request().URL.Path == "/upload"
}

// requestTooLarge reports a request body over the server cap with the
// same message the per-file limit check uses, keeping the error mapping
// in one place.
func requestTooLarge(ctx handler.Context, contentLength, maxSize int64) handler.Response {
	return response.Error(upload.ErrSizeExceedsServerLimit)
}

func rateLimited(ctx handler.Context, result *ratelimiter.Result) handler.Response {
	return response.JSONWithStatus(errorResponse{
		Error: "Too many requests. Please try again later.",
	}, http.StatusTooManyRequests)
}
