package mw

import (
	"net/http"
	"strings"

	"github.com/MrSnakeDoc/nitron/internal/logger"
)

// EnforceHost allows requests only if r.Host matches one of the allowed hosts.
// Supports wildcard patterns like "*.example.com".
// If allowedHosts is empty, it acts as a passthrough.
func EnforceHost(allowedHosts []string, log logger.Logger) func(http.Handler) http.Handler {
	if len(allowedHosts) == 0 {
		log.Debug("EnforceHost: empty allowedHosts, passthrough mode")
		return func(next http.Handler) http.Handler { return next }
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			host := r.Host

			// Check exact matches and wildcard patterns
			for _, pattern := range allowedHosts {
				if matchHost(host, pattern) {
					next.ServeHTTP(w, r)
					return
				}
			}

			log.Info("request rejected by host allow-list",
				logger.String("host", host),
				logger.String("path", r.URL.Path))
			http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		})
	}
}

// matchHost checks if host matches pattern (supports wildcard *.example.com)
func matchHost(host, pattern string) bool {
	// Exact match, ignoring case
	if strings.EqualFold(host, pattern) {
		return true
	}

	// Wildcard match: *.example.com matches sub.example.com
	if strings.HasPrefix(pattern, "*.") {
		suffix := strings.ToLower(pattern[1:]) // Remove * to get .example.com
		return strings.HasSuffix(strings.ToLower(host), suffix)
	}

	return false
}
