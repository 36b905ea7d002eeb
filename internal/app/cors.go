package app

import (
	"net/url"
	"strings"
)

// originAllowed reports whether the request origin matches any configured
// pattern. Patterns compare against the origin's host[:port]: an exact value,
// a "*.domain" subdomain wildcard (the storefront and back-office run on
// sibling subdomains), or a "host:*" any-port form for preview deployments.
func originAllowed(patterns []string, origin string) bool {
	host := origin
	if u, err := url.Parse(origin); err == nil && u.Host != "" {
		host = u.Host
	}
	for _, pattern := range patterns {
		switch {
		case pattern == host:
			return true
		case strings.HasPrefix(pattern, "*."):
			if strings.HasSuffix(host, pattern[1:]) {
				return true
			}
		case strings.HasSuffix(pattern, ":*"):
			if strings.HasPrefix(host, pattern[:len(pattern)-1]) {
				return true
			}
		}
	}
	return false
}
