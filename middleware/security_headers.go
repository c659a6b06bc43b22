package middleware

import (
	"maps"
	"net/http"

	"github.com/dmitrymomot/imgstore/core/handler"
)

// SecurityHeadersConfig configures the security headers middleware.
type SecurityHeadersConfig struct {
	// Skip defines a function to skip middleware execution for specific requests
	Skip func(ctx handler.Context) bool

	// ContentTypeOptions controls the X-Content-Type-Options header
	ContentTypeOptions string

	// FrameOptions controls the X-Frame-Options header
	FrameOptions string

	// StrictTransportSecurity controls the Strict-Transport-Security header
	StrictTransportSecurity string

	// ContentSecurityPolicy controls the Content-Security-Policy header
	ContentSecurityPolicy string

	// ReferrerPolicy controls the Referrer-Policy header
	ReferrerPolicy string

	// CrossOriginResourcePolicy controls the Cross-Origin-Resource-Policy header
	CrossOriginResourcePolicy string

	// CustomHeaders adds additional fixed headers
	CustomHeaders map[string]string

	// IsDevelopment disables HSTS so local HTTP setups keep working
	IsDevelopment bool
}

var (
	// DefaultSecurity fits the API and demo page: no sniffing, no
	// framing, HSTS, a same-origin CSP, and cross-origin resource
	// access so stored images stay embeddable from other sites.
	DefaultSecurity = SecurityHeadersConfig{
		ContentTypeOptions:        "nosniff",
		FrameOptions:              "DENY",
		StrictTransportSecurity:   "max-age=31536000; includeSubDomains",
		ContentSecurityPolicy:     "default-src 'self'; img-src 'self' data:",
		ReferrerPolicy:            "strict-origin-when-cross-origin",
		CrossOriginResourcePolicy: "cross-origin",
	}

	// UserContentSecurity is for routes that serve user-uploaded bytes.
	// nosniff keeps browsers from promoting a crafted "image" to HTML
	// or script, and the sandbox CSP neuters anything that still
	// renders. Framing stays open so the files remain embeddable.
	UserContentSecurity = SecurityHeadersConfig{
		ContentTypeOptions:        "nosniff",
		ContentSecurityPolicy:     "default-src 'none'; sandbox",
		ReferrerPolicy:            "strict-origin-when-cross-origin",
		CrossOriginResourcePolicy: "cross-origin",
	}
)

// SecurityHeaders creates a security headers middleware with the
// default configuration.
func SecurityHeaders[C handler.Context]() handler.Middleware[C] {
	return SecurityHeadersWithConfig[C](DefaultSecurity)
}

// SecurityHeadersWithConfig creates a security headers middleware with
// custom configuration. Headers with empty values are omitted. Routes
// serving uploaded files should use UserContentSecurity:
//
//	uploads := r.Group(func(r router.Router[*router.Context]) {
//		r.Use(middleware.SecurityHeadersWithConfig[*router.Context](middleware.UserContentSecurity))
//		r.Get("/uploads/*", static.Dir[*router.Context](cfg.Directory))
//	})
func SecurityHeadersWithConfig[C handler.Context](cfg SecurityHeadersConfig) handler.Middleware[C] {
	if cfg.IsDevelopment {
		cfg.StrictTransportSecurity = ""
	}

	headers := make(map[string]string)
	if cfg.ContentTypeOptions != "" {
		headers["X-Content-Type-Options"] = cfg.ContentTypeOptions
	}
	if cfg.FrameOptions != "" {
		headers["X-Frame-Options"] = cfg.FrameOptions
	}
	if cfg.StrictTransportSecurity != "" {
		headers["Strict-Transport-Security"] = cfg.StrictTransportSecurity
	}
	if cfg.ContentSecurityPolicy != "" {
		headers["Content-Security-Policy"] = cfg.ContentSecurityPolicy
	}
	if cfg.ReferrerPolicy != "" {
		headers["Referrer-Policy"] = cfg.ReferrerPolicy
	}
	if cfg.CrossOriginResourcePolicy != "" {
		headers["Cross-Origin-Resource-Policy"] = cfg.CrossOriginResourcePolicy
	}

	maps.Copy(headers, cfg.CustomHeaders)

	return func(next handler.HandlerFunc[C]) handler.HandlerFunc[C] {
		return func(ctx C) handler.Response {
			if cfg.Skip != nil && cfg.Skip(ctx) {
				return next(ctx)
			}

			resp := next(ctx)

			return func(w http.ResponseWriter, r *http.Request) error {
				for key, value := range headers {
					w.Header().Set(key, value)
				}
				return resp(w, r)
			}
		}
	}
}
