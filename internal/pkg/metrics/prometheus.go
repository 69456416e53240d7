package metrics

import (
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	// RequestsTotal tracks total HTTP requests
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"service", "method", "endpoint", "status"},
	)

	// RequestDuration tracks HTTP request duration
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"service", "method", "endpoint"},
	)

	// SagaTransitions counts saga status changes
	SagaTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "saga_transitions_total",
			Help: "Total number of saga status transitions",
		},
		[]string{"status"},
	)

	// SagaStepDuration tracks how long each forward step takes
	SagaStepDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "saga_step_duration_seconds",
			Help:    "Saga step duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"step", "outcome"},
	)

	// Compensations counts compensating actions by result
	Compensations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "compensations_total",
			Help: "Total number of compensating actions",
		},
		[]string{"action", "outcome"},
	)

	// RPCRequests counts broker request/reply calls
	RPCRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "rpc_requests_total",
			Help: "Total number of RPC calls by outcome",
		},
		[]string{"target", "outcome"},
	)

	// RPCDuration tracks RPC round trip time
	RPCDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "rpc_request_duration_seconds",
			Help:    "RPC round trip duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"target"},
	)

	// LockAcquisitions counts lock attempts by outcome
	LockAcquisitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "lock_acquisitions_total",
			Help: "Total number of distributed lock acquisitions by outcome",
		},
		[]string{"outcome"},
	)

	// OTPOperations counts OTP operations by outcome
	OTPOperations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "otp_operations_total",
			Help: "Total number of OTP operations",
		},
		[]string{"operation", "outcome"},
	)

	// CleanupCancelled counts payments cancelled by the stale sweep
	CleanupCancelled = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cleanup_cancelled_total",
			Help: "Total number of stale payments cancelled by cleanup",
		},
	)

	// CircuitBreakerState tracks circuit breaker state (0=closed, 1=open, 2=half-open)
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=open, 2=half-open)",
		},
		[]string{"target"},
	)
)

// Outcome labels
const (
	OutcomeSuccess  = "success"
	OutcomeFailure  = "failure"
	OutcomeTimeout  = "timeout"
	OutcomeDegraded = "degraded"
	OutcomeBusy     = "busy"
)

// EchoMiddleware records request count and latency per route
func EchoMiddleware(serviceName string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			start := time.Now()

			err := next(c)

			status := c.Response().Status
			if he, ok := err.(*echo.HTTPError); ok {
				status = he.Code
			}

			RequestsTotal.WithLabelValues(serviceName, c.Request().Method, c.Path(), strconv.Itoa(status)).Inc()
			RequestDuration.WithLabelValues(serviceName, c.Request().Method, c.Path()).Observe(time.Since(start).Seconds())
			return err
		}
	}
}

// Handler exposes the default registry on an echo route
func Handler() echo.HandlerFunc {
	return echo.WrapHandler(promhttp.Handler())
}
