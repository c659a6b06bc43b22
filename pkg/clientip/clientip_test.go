package clientip_test

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/dmitrymomot/imgstore/pkg/clientip"
)

func TestGetIP(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		headers    map[string]string
		remoteAddr string
		expected   string
	}{
		{
			name:       "remote addr only",
			remoteAddr: "192.168.1.100:54321",
			expected:   "192.168.1.100",
		},
		{
			name: "cloudflare header wins over everything",
			headers: map[string]string{
				"CF-Connecting-IP": "203.0.113.195",
				"X-Forwarded-For":  "192.168.1.1",
				"X-Real-IP":        "10.0.0.1",
			},
			remoteAddr: "172.16.0.1:54321",
			expected:   "203.0.113.195",
		},
		{
			name: "digitalocean header before generic proxy headers",
			headers: map[string]string{
				"DO-Connecting-IP": "198.51.100.178",
				"X-Forwarded-For":  "192.168.1.1",
			},
			remoteAddr: "172.16.0.1:54321",
			expected:   "198.51.100.178",
		},
		{
			name: "x-forwarded-for takes leftmost entry",
			headers: map[string]string{
				"X-Forwarded-For": "198.51.100.178, 203.0.113.195, 192.168.1.1",
				"X-Real-IP":       "10.0.0.1",
			},
			remoteAddr: "172.16.0.1:54321",
			expected:   "198.51.100.178",
		},
		{
			name: "x-real-ip fallback",
			headers: map[string]string{
				"X-Real-IP": "203.0.113.195",
			},
			remoteAddr: "172.16.0.1:54321",
			expected:   "203.0.113.195",
		},
		{
			name: "malformed header value falls through to next source",
			headers: map[string]string{
				"CF-Connecting-IP": "not-an-ip",
				"X-Real-IP":        "203.0.113.195",
			},
			remoteAddr: "172.16.0.1:54321",
			expected:   "203.0.113.195",
		},
		{
			name: "unspecified address is rejected",
			headers: map[string]string{
				"X-Forwarded-For": "0.0.0.0",
			},
			remoteAddr: "192.168.1.100:54321",
			expected:   "192.168.1.100",
		},
		{
			name: "header value with surrounding whitespace",
			headers: map[string]string{
				"X-Forwarded-For": "  198.51.100.178  , 10.0.0.1",
			},
			remoteAddr: "172.16.0.1:54321",
			expected:   "198.51.100.178",
		},
		{
			name:       "ipv6 remote addr",
			remoteAddr: "[2001:db8::1]:54321",
			expected:   "2001:db8::1",
		},
		{
			name: "ipv4-mapped ipv6 is normalized",
			headers: map[string]string{
				"X-Real-IP": "::ffff:192.0.2.1",
			},
			remoteAddr: "172.16.0.1:54321",
			expected:   "192.0.2.1",
		},
		{
			name:       "remote addr without port",
			remoteAddr: "192.168.1.100",
			expected:   "192.168.1.100",
		},
		{
			name:       "unparseable remote addr is returned verbatim",
			remoteAddr: "garbage",
			expected:   "garbage",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.RemoteAddr = tt.remoteAddr
			for key, value := range tt.headers {
				req.Header.Set(key, value)
			}

			assert.Equal(t, tt.expected, clientip.GetIP(req))
		})
	}
}
