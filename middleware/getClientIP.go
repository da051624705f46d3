package middleware

import (
	"net"
	"strings"

	"github.com/gin-gonic/gin"
)

var forwardedHeaders = []string{"X-Forwarded-For", "X-Real-IP"}

// getClientIP keys the rate limiter and the request log. Proxy headers win
// over RemoteAddr; entries that do not parse as an IP are ignored.
func getClientIP(c *gin.Context) string {
	for _, h := range forwardedHeaders {
		first, _, _ := strings.Cut(c.GetHeader(h), ",")
		if ip := net.ParseIP(strings.TrimSpace(first)); ip != nil {
			return ip.String()
		}
	}

	addr := c.Request.RemoteAddr
	if host, _, err := net.SplitHostPort(addr); err == nil {
		return host
	}
	return addr
}
