package health

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/piresc/tuitionpay/internal/pkg/circuitbreaker"
	"github.com/piresc/tuitionpay/internal/pkg/logger"
)

// Status values reported by the health endpoints
const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
)

// HealthChecker defines the interface for health checking dependencies
type HealthChecker interface {
	CheckHealth(ctx context.Context) error
}

// CheckerFunc adapts a function to HealthChecker
type CheckerFunc func(ctx context.Context) error

// CheckHealth calls f
func (f CheckerFunc) CheckHealth(ctx context.Context) error {
	return f(ctx)
}

// Pinger is satisfied by database.PostgresClient and database.RedisClient
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingChecker checks a store that answers Ping
type PingChecker struct {
	client Pinger
}

// NewPostgresHealthChecker creates a PostgreSQL health checker
func NewPostgresHealthChecker(client Pinger) *PingChecker {
	return &PingChecker{client: client}
}

// NewRedisHealthChecker creates a Redis health checker
func NewRedisHealthChecker(client Pinger) *PingChecker {
	return &PingChecker{client: client}
}

// CheckHealth pings the store
func (p *PingChecker) CheckHealth(ctx context.Context) error {
	if p.client == nil {
		return nil
	}
	return p.client.Ping(ctx)
}

// StreamLister is the part of nats.Client the NATS checker needs
type StreamLister interface {
	IsConnected() bool
	ListStreams(ctx context.Context) ([]string, error)
}

// NATSHealthChecker checks NATS connection and JetStream health
type NATSHealthChecker struct {
	client StreamLister
}

// NewNATSHealthChecker creates a new NATS health checker
func NewNATSHealthChecker(client StreamLister) *NATSHealthChecker {
	return &NATSHealthChecker{client: client}
}

// CheckHealth checks if NATS and JetStream are healthy
func (n *NATSHealthChecker) CheckHealth(ctx context.Context) error {
	if n.client == nil {
		return nil
	}
	if !n.client.IsConnected() {
		return errors.New("NATS not connected")
	}
	if _, err := n.client.ListStreams(ctx); err != nil {
		return fmt.Errorf("JetStream streams not accessible: %w", err)
	}
	return nil
}

// BreakerReporter is satisfied by circuitbreaker.Manager
type BreakerReporter interface {
	GetStats() map[string]circuitbreaker.Stats
}

// HealthService manages health checks for multiple dependencies
type HealthService struct {
	mu       sync.RWMutex
	checkers map[string]HealthChecker
	breakers BreakerReporter
	logger   *logger.ZapLogger
}

// NewHealthService creates a new health service
func NewHealthService(zapLogger *logger.ZapLogger) *HealthService {
	if zapLogger == nil {
		zapLogger = logger.GetGlobalLogger()
	}
	return &HealthService{
		checkers: make(map[string]HealthChecker),
		logger:   zapLogger,
	}
}

// AddChecker registers a health checker for a dependency
func (h *HealthService) AddChecker(name string, checker HealthChecker) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.checkers[name] = checker
}

// SetBreakers reports collaborator circuit breakers alongside the dependencies.
// An open breaker is informational and does not make the service unhealthy.
func (h *HealthService) SetBreakers(r BreakerReporter) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.breakers = r
}

// HealthResponse represents the health check response
type HealthResponse struct {
	Status       string                    `json:"status"`
	Timestamp    time.Time                 `json:"timestamp"`
	Service      string                    `json:"service"`
	Version      string                    `json:"version,omitempty"`
	Dependencies map[string]DependencyInfo `json:"dependencies"`
	// CircuitBreakers is keyed by RPC target
	CircuitBreakers map[string]circuitbreaker.Stats `json:"circuit_breakers,omitempty"`
}

// DependencyInfo represents health info for a dependency
type DependencyInfo struct {
	Status  string `json:"status"`
	Latency string `json:"latency"`
	Error   string `json:"error,omitempty"`
}

// CheckAllHealth runs every checker concurrently
func (h *HealthService) CheckAllHealth(ctx context.Context) HealthResponse {
	h.mu.RLock()
	names := make([]string, 0, len(h.checkers))
	for name := range h.checkers {
		names = append(names, name)
	}
	h.mu.RUnlock()
	sort.Strings(names)

	response := HealthResponse{
		Status:       StatusHealthy,
		Timestamp:    time.Now(),
		Dependencies: make(map[string]DependencyInfo, len(names)),
	}

	var (
		wg sync.WaitGroup
		mu sync.Mutex
	)
	for _, name := range names {
		h.mu.RLock()
		checker := h.checkers[name]
		h.mu.RUnlock()

		wg.Add(1)
		go func(name string, checker HealthChecker) {
			defer wg.Done()
			start := time.Now()
			err := checker.CheckHealth(ctx)
			info := DependencyInfo{Status: StatusHealthy, Latency: time.Since(start).String()}
			if err != nil {
				h.logger.Error("Health check failed",
					logger.String("dependency", name),
					logger.Err(err))
				info.Status = StatusUnhealthy
				info.Error = err.Error()
			}

			mu.Lock()
			response.Dependencies[name] = info
			if err != nil {
				response.Status = StatusUnhealthy
			}
			mu.Unlock()
		}(name, checker)
	}
	wg.Wait()

	h.mu.RLock()
	breakers := h.breakers
	h.mu.RUnlock()
	if breakers != nil {
		response.CircuitBreakers = breakers.GetStats()
	}

	return response
}
