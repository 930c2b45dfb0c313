package middleware

import (
	"sync"

	"github.com/ansrivas/fiberprometheus/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// AuthFailures counts rejected sessions by reason.
	AuthFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "forum_auth_failures_total",
		Help: "Requests rejected by the session gate, by reason",
	}, []string{"reason"})

	// GuardDenials counts ownership guard denials by relation.
	GuardDenials = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "forum_guard_denials_total",
		Help: "Mutations denied by the ownership guard, by required relation",
	}, []string{"relation"})

	// RedisErrors counts failed Redis commands by command name.
	RedisErrors = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "forum_redis_errors_total",
		Help: "Failed Redis commands by command",
	}, []string{"command"})

	promOnce sync.Once
	prom     *fiberprometheus.FiberPrometheus
)

// InitMetrics returns the process-wide HTTP metrics collector. It registers
// on the default registry exactly once so several servers can share it.
func InitMetrics(serviceName string) *fiberprometheus.FiberPrometheus {
	promOnce.Do(func() {
		prom = fiberprometheus.NewWithRegistry(prometheus.DefaultRegisterer, serviceName, "http", "", nil)
	})
	return prom
}

// MetricsMiddleware records request counts and latency.
func MetricsMiddleware(p *fiberprometheus.FiberPrometheus) fiber.Handler {
	return p.Middleware
}
