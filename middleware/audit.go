package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

// Proxy headers consulted in order before falling back to RemoteAddr.
var ipHeaders = []string{"X-Forwarded-For", "X-Real-Ip", "CF-Connecting-IP", "X-Forwarded"}

// AuditMiddleware resolves the client IP once per request and stores it in
// the context for the audit trail writers.
func AuditMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("client_ip", resolveClientIP(c))
		c.Next()
	}
}

func resolveClientIP(c *gin.Context) string {
	for _, header := range ipHeaders {
		value := c.GetHeader(header)
		if value == "" {
			continue
		}
		// X-Forwarded-For may carry a chain; the first hop is the client.
		candidate := strings.TrimSpace(strings.Split(value, ",")[0])
		if net.ParseIP(candidate) != nil {
			return candidate
		}
	}

	ip, _, err := net.SplitHostPort(c.Request.RemoteAddr)
	if err != nil {
		return c.Request.RemoteAddr
	}
	return ip
}

// GetIPFromContext returns the IP stored by AuditMiddleware, resolving it on
// the spot for routes registered outside the middleware chain.
func GetIPFromContext(c *gin.Context) string {
	if ip, exists := c.Get("client_ip"); exists {
		if ipStr, ok := ip.(string); ok {
			return ipStr
		}
	}
	return resolveClientIP(c)
}
