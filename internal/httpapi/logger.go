/* Copyright (c) 2021 David Bulkow */

package httpapi

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// logger reports mutating requests; reads are too frequent to be useful.
func logger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		if c.Request.Method == http.MethodGet {
			return
		}

		log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.Request.URL.Path),
			zap.Int("status", c.Writer.Status()),
			zap.String("user_agent", c.Request.UserAgent()),
			zap.String("remote_addr", c.Request.RemoteAddr),
			zap.Duration("elapsed", time.Since(start)))
	}
}
