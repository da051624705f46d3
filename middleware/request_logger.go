package middleware

import (
	"time"

	"smarthub/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	loggerKey       = "logger"
	requestIDHeader = "X-Request-ID"
)

// RequestLogger attaches a request-scoped zap logger under "logger" and logs each request once.
func RequestLogger(base *zap.Logger) gin.HandlerFunc {
	if base == nil {
		base = utils.GetLogger()
	}
	return func(c *gin.Context) {
		start := time.Now()
		requestID := c.GetHeader(requestIDHeader)
		if requestID == "" {
			requestID = uuid.NewString()
		}
		c.Header(requestIDHeader, requestID)
		c.Set(loggerKey, base.With(zap.String("requestId", requestID)))

		c.Next()

		logger := base
		if l, ok := c.Get(loggerKey); ok {
			if scoped, ok := l.(*zap.Logger); ok {
				logger = scoped
			}
		}
		fields := []zap.Field{
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("latency", time.Since(start)),
			zap.String("ip", getClientIP(c)),
		}
		if c.Writer.Status() >= 500 {
			logger.Error("Request failed", fields...)
			return
		}
		logger.Info("Request handled", fields...)
	}
}
