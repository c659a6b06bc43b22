package clientip

import (
	"net"
	"net/http"
	"strings"
)

// Proxy headers checked in priority order. CDN-set headers come first
// because an edge proxy overwrites them before the request reaches us.
var proxyHeaders = []string{
	"CF-Connecting-IP",
	"DO-Connecting-IP",
	"X-Forwarded-For",
	"X-Real-IP",
}

// GetIP extracts the real client IP address from the request.
// It checks known proxy headers in priority order and falls back to
// RemoteAddr. Returned addresses are validated and normalized via
// net.IP.String; when no valid IP can be determined, the raw
// RemoteAddr is returned unchanged.
func GetIP(r *http.Request) string {
	for _, header := range proxyHeaders {
		value := r.Header.Get(header)
		if value == "" {
			continue
		}

		// X-Forwarded-For may hold a chain "client, proxy1, proxy2";
		// the leftmost entry is the originating client.
		if header == "X-Forwarded-For" {
			value, _, _ = strings.Cut(value, ",")
		}

		if ip := normalize(value); ip != "" {
			return ip
		}
	}

	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		host = r.RemoteAddr
	}
	if ip := normalize(host); ip != "" {
		return ip
	}

	return r.RemoteAddr
}

// normalize validates a candidate address and returns its canonical
// form, or "" when the candidate is not a usable client address.
// Unspecified addresses (0.0.0.0, ::) indicate a missing client IP.
func normalize(candidate string) string {
	ip := net.ParseIP(strings.TrimSpace(candidate))
	if ip == nil || ip.IsUnspecified() {
		return ""
	}
	return ip.String()
}
