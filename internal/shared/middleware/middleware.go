package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"staychain/pkg/logger"
)

// RequestLogger logs every request through the structured logger.
func RequestLogger(l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		l.LogHTTPRequest(c, time.Since(start))
	}
}
