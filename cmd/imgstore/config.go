package main

import (
	"time"

	"github.com/dmitrymomot/imgstore/core/server"
	"github.com/dmitrymomot/imgstore/core/storage"
	"github.com/dmitrymomot/imgstore/integration/storage/s3"
)

type Config struct {
	AppName     string `env:"APP_NAME" envDefault:"imgstore"`
	Environment string `env:"ENVIRONMENT" envDefault:"development"`

	// StorageDriver selects the backend: "local" or "s3".
	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"local"`

	// MaxRequestSize caps the whole multipart request body. It sits above
	// the 5MB per-file limit so an oversize file is reported with the
	// file-size message instead of a blunt 413.
	MaxRequestSize int64 `env:"UPLOAD_MAX_REQUEST_SIZE" envDefault:"10485760"`

	// CORSAllowedOrigins enables CORS when non-empty.
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envSeparator:","`

	// RateLimitCapacity enables per-client rate limiting on the upload
	// endpoint when positive. RefillRate defaults to the capacity, giving
	// a full bucket every interval.
	RateLimitCapacity       int           `env:"RATE_LIMIT_CAPACITY" envDefault:"0"`
	RateLimitRefillRate     int           `env:"RATE_LIMIT_REFILL_RATE" envDefault:"0"`
	RateLimitRefillInterval time.Duration `env:"RATE_LIMIT_REFILL_INTERVAL" envDefault:"1m"`

	Server  server.Config
	Storage storage.Config
	S3      s3.Config
}

func (c Config) IsDevelopment() bool {
	return c.Environment != "production"
}
