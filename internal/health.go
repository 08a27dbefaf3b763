package internal

import (
	"net/http"

	"github.com/dmitrymomot/aria/pkg/health"
)

// Default health check paths.
const (
	defaultLivenessPath  = "/health/live"
	defaultReadinessPath = "/health/ready"
)

// healthConfig holds health check endpoint configuration.
type healthConfig struct {
	checks        health.Checks
	livenessPath  string
	readinessPath string
}

// HealthOption configures health check endpoints.
type HealthOption func(*healthConfig)

// WithLivenessPath sets a custom liveness endpoint path.
// Defaults to "/health/live".
func WithLivenessPath(path string) HealthOption {
	return func(c *healthConfig) {
		if path != "" {
			c.livenessPath = path
		}
	}
}

// WithReadinessPath sets a custom readiness endpoint path.
// Defaults to "/health/ready".
func WithReadinessPath(path string) HealthOption {
	return func(c *healthConfig) {
		if path != "" {
			c.readinessPath = path
		}
	}
}

// WithReadinessCheck adds a named readiness check.
// Checks run in parallel during the readiness probe.
//
// Example:
//
//	aria.WithReadinessCheck("db", db.Healthcheck(pool))
func WithReadinessCheck(name string, fn health.CheckFunc) HealthOption {
	return func(c *healthConfig) {
		if name == "" || fn == nil {
			return
		}
		if c.checks == nil {
			c.checks = make(health.Checks)
		}
		c.checks[name] = fn
	}
}

// livenessHandler always reports healthy. It answers JSON when the
// client asks for it, plain "OK" otherwise.
func livenessHandler() HandlerFunc {
	return func(c Context) (any, error) {
		if health.WantsJSON(c.Request()) {
			return c.JSON(http.StatusOK, &health.Response{Status: health.StatusHealthy})
		}
		return "OK", nil
	}
}

// readinessHandler runs the configured checks and reports 503 when any
// of them fails.
func readinessHandler(a *App, checks health.Checks) HandlerFunc {
	return func(c Context) (any, error) {
		resp := health.Run(c, checks, health.WithLogger(a.logger))

		status := http.StatusOK
		if resp.Status == health.StatusUnhealthy {
			status = http.StatusServiceUnavailable
		}

		if health.WantsJSON(c.Request()) {
			return c.JSON(status, resp)
		}
		if status == http.StatusOK {
			return "OK", nil
		}
		return []any{status, "Service Unavailable"}, nil
	}
}
