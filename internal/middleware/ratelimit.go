package middleware

import (
	"net"
	"net/http"
	"strings"

	"snipr/internal/services"

	"github.com/gin-gonic/gin"
)

// ClientIP prefers the Cloudflare and proxy headers over the socket address.
func ClientIP(c *gin.Context) string {
	ip := c.GetHeader("CF-Connecting-IP")
	if ip == "" {
		if fwd := c.GetHeader("X-Forwarded-For"); fwd != "" {
			ip = strings.TrimSpace(strings.Split(fwd, ",")[0])
		}
	}
	if ip == "" {
		return c.ClientIP()
	}

	// Strip a port from "1.2.3.4:5678" or "[::1]:5678".
	if host, _, err := net.SplitHostPort(ip); err == nil {
		ip = host
	}
	return ip
}

// RateLimit rejects requests once the caller's bucket is empty.
func RateLimit(limiter *services.IPRateLimiter) gin.HandlerFunc {
	return func(c *gin.Context) {
		if limiter == nil {
			c.Next()
			return
		}
		l := limiter.GetLimiter(ClientIP(c))
		if !l.Allow() {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"error": "Rate limit exceeded. Please try again later.",
			})
			return
		}
		c.Next()
	}
}
