// Package clientip extracts real client IP addresses from HTTP requests.
//
// Upload services usually sit behind a CDN, load balancer, or reverse
// proxy, so RemoteAddr alone points at the proxy rather than the client.
// This package resolves the originating address for rate limiting and
// request logging by checking proxy headers in priority order:
//
//  1. CF-Connecting-IP (Cloudflare)
//  2. DO-Connecting-IP (DigitalOcean)
//  3. X-Forwarded-For (leftmost entry of the chain)
//  4. X-Real-IP (nginx and similar proxies)
//  5. RemoteAddr (direct connection)
//
// Usage:
//
//	func handle(w http.ResponseWriter, r *http.Request) {
//		ip := clientip.GetIP(r)
//		if limited(ip) {
//			http.Error(w, "Rate limited", http.StatusTooManyRequests)
//			return
//		}
//		// ...
//	}
//
// Every candidate is validated with net.ParseIP and normalized through
// net.IP.String, so IPv6 and IPv4-mapped addresses come out in canonical
// form. Unspecified addresses (0.0.0.0, ::) and malformed header values
// are skipped. GetIP never panics; when nothing validates it returns the
// raw RemoteAddr so callers always have a key to work with.
package clientip
