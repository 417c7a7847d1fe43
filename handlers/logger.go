package handlers

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// getLogger returns base tagged with the request's method and route.
func getLogger(c *gin.Context, base *zap.Logger) *zap.Logger {
	if base == nil {
		base = zap.L()
	}
	return base.With(
		zap.String("method", c.Request.Method),
		zap.String("route", c.FullPath()),
	)
}
