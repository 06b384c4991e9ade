package middleware

import (
	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// RedisErrors counts Redis command errors by operation type.
var RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "quill_redis_errors_total",
	Help: "Total number of Redis errors by operation type",
}, []string{"operation"})

// CacheLookups counts cache-aside lookups by key prefix and outcome (hit/miss).
var CacheLookups = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "quill_cache_lookups_total",
	Help: "Total number of cache-aside lookups by key and outcome",
}, []string{"key", "outcome"})

// InitMetrics creates the Prometheus HTTP metrics collector for the service.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	return fiberprometheus.New(serviceName)
}

// MetricsMiddleware returns the request-metrics middleware for the given collector.
func MetricsMiddleware(p *fiberprometheus.FiberPrometheus) fiber.Handler {
	return p.Middleware
}
