package utils

import (
	"net/url"
	"strings"
)

// MaxURLLength is the widest original_url the store accepts.
const MaxURLLength = 500

// NormalizeURL trims s and prepends http:// unless it already names the
// http or https scheme.
func NormalizeURL(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "http://") || strings.HasPrefix(s, "https://") {
		return s
	}
	return "http://" + s
}

// IsValidURL reports whether s parses with both a scheme and a host.
func IsValidURL(s string) bool {
	u, err := url.Parse(s)
	if err != nil {
		return false
	}
	return u.Scheme != "" && u.Host != ""
}
