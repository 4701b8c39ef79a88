package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/skillsenselab/meetingminds/version"
)

// Component health statuses.
const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
)

// ComponentHealth reports the status of one backend dependency.
type ComponentHealth struct {
	Name   string `json:"name"`
	Status string `json:"status"`
}

// HealthChecker returns health status for registered components.
type HealthChecker func(ctx context.Context) []ComponentHealth

// Availability is the subset of the provider interface the health
// endpoint needs.
type Availability interface {
	Name() string
	IsAvailable(ctx context.Context) bool
}

// ProviderChecker builds a HealthChecker that probes each backend's
// availability endpoint.
func ProviderChecker(providers ...Availability) HealthChecker {
	return func(ctx context.Context) []ComponentHealth {
		out := make([]ComponentHealth, 0, len(providers))
		for _, p := range providers {
			status := StatusHealthy
			if !p.IsAvailable(ctx) {
				status = StatusUnhealthy
			}
			out = append(out, ComponentHealth{Name: p.Name(), Status: status})
		}
		return out
	}
}

// Health returns a handler that reports service health including
// component statuses. The service is unhealthy when any component is.
func Health(serviceName string, checker HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		status := StatusHealthy
		var components []ComponentHealth

		if checker != nil {
			components = checker(c.Request.Context())
			for _, ch := range components {
				if ch.Status == StatusUnhealthy {
					status = StatusUnhealthy
					break
				}
			}
		}

		httpStatus := http.StatusOK
		if status == StatusUnhealthy {
			httpStatus = http.StatusServiceUnavailable
		}

		c.JSON(httpStatus, gin.H{
			"status":     status,
			"service":    serviceName,
			"timestamp":  time.Now().UTC().Format(time.RFC3339),
			"components": components,
		})
	}
}

// RegisterHealth registers the /health and /version endpoints.
func (s *Server) RegisterHealth(serviceName string, checker HealthChecker) {
	s.engine.GET("/health", Health(serviceName, checker))
	s.engine.GET("/version", func(c *gin.Context) {
		c.JSON(http.StatusOK, version.Get())
	})
}
