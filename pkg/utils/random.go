package utils

import (
	"math/rand"
)

const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// GenerateShortCode returns length symbols drawn uniformly and independently
// from [A-Za-z0-9].
func GenerateShortCode(length int) string {
	b := make([]byte, length)
	for i := range b {
		b[i] = charset[rand.Intn(len(charset))]
	}
	return string(b)
}

// reservedCodes are root-level paths the router serves itself.
var reservedCodes = map[string]struct{}{
	"api":    {},
	"health": {},
	"static": {},
}

// IsReservedCode reports whether code would be shadowed by a fixed route.
func IsReservedCode(code string) bool {
	_, ok := reservedCodes[code]
	return ok
}

// IsShortCode reports whether s could have come from GenerateShortCode.
func IsShortCode(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		c := s[i]
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9') {
			return false
		}
	}
	return true
}
