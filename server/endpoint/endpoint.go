// Package endpoint holds the operational handlers every server mounts:
// /health, /ready, /alive and /version.
package endpoint

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/kbukum/fetchkit/component"
	apperrors "github.com/kbukum/fetchkit/errors"
	"github.com/kbukum/fetchkit/version"
)

// HealthChecker returns the current health of the running components.
type HealthChecker func(ctx context.Context) []component.Health

// overall folds component statuses into one: any unhealthy wins, then
// degraded.
func overall(components []component.Health) component.HealthStatus {
	status := component.StatusHealthy
	for _, h := range components {
		switch h.Status {
		case component.StatusUnhealthy:
			return component.StatusUnhealthy
		case component.StatusDegraded:
			status = component.StatusDegraded
		}
	}
	return status
}

func check(c *gin.Context, checker HealthChecker) []component.Health {
	if checker == nil {
		return nil
	}
	return checker(c.Request.Context())
}

func now() string { return time.Now().UTC().Format(time.RFC3339) }

// Health reports the service status with every component listed. It
// answers 503 while any component is unhealthy.
func Health(serviceName string, checker HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		components := check(c, checker)
		status := overall(components)
		code := http.StatusOK
		if status == component.StatusUnhealthy {
			code = http.StatusServiceUnavailable
		}
		c.JSON(code, gin.H{
			"status":     status,
			"service":    serviceName,
			"timestamp":  now(),
			"components": components,
		})
	}
}

// Readiness answers 200 when no component is unhealthy and a
// SERVICE_UNAVAILABLE error otherwise.
func Readiness(serviceName string, checker HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		if overall(check(c, checker)) == component.StatusUnhealthy {
			err := apperrors.Unavailable(serviceName + " is not ready")
			c.JSON(err.HTTPStatus, err.ToResponse())
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready", "service": serviceName, "timestamp": now()})
	}
}

// Liveness only confirms the process can serve HTTP.
func Liveness(serviceName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "alive", "service": serviceName, "timestamp": now()})
	}
}

// Version reports the build information stamped into the binary.
func Version(serviceName string) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"service": serviceName,
			"version": version.GetVersionInfo(),
		})
	}
}
