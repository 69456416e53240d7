package circuitbreaker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/piresc/tuitionpay/internal/pkg/logger"
	"github.com/piresc/tuitionpay/internal/pkg/metrics"
	"github.com/sony/gobreaker"
)

// ErrOpen is returned when a call is rejected without being attempted
var ErrOpen = errors.New("circuit breaker is open")

// Config holds circuit breaker configuration shared by every breaker of a Manager
type Config struct {
	MaxRequests      uint32        // Max requests allowed in half-open state
	Interval         time.Duration // Interval to clear counters in closed state
	Timeout          time.Duration // Time spent open before probing
	FailureThreshold uint32        // Consecutive failures that open the breaker
	// IsFailure decides which errors count against the breaker; nil counts every error
	IsFailure func(err error) bool
}

// DefaultConfig returns a default circuit breaker configuration
func DefaultConfig() Config {
	return Config{
		MaxRequests:      1,
		Interval:         60 * time.Second,
		Timeout:          30 * time.Second,
		FailureThreshold: 5,
	}
}

// Stats is a snapshot of one breaker
type Stats struct {
	Name                 string `json:"name"`
	State                string `json:"state"`
	Requests             uint32 `json:"requests"`
	TotalFailures        uint32 `json:"total_failures"`
	ConsecutiveFailures  uint32 `json:"consecutive_failures"`
	ConsecutiveSuccesses uint32 `json:"consecutive_successes"`
}

// Manager keeps one breaker per name, created on first use
type Manager struct {
	config   Config
	logger   *logger.ZapLogger
	mu       sync.RWMutex
	breakers map[string]*gobreaker.CircuitBreaker
}

// NewManager creates a breaker registry
func NewManager(config Config, l *logger.ZapLogger) *Manager {
	if l == nil {
		l = logger.GetGlobalLogger()
	}
	return &Manager{
		config:   config,
		logger:   l,
		breakers: make(map[string]*gobreaker.CircuitBreaker),
	}
}

// GetOrCreate returns the breaker for name
func (m *Manager) GetOrCreate(name string) *gobreaker.CircuitBreaker {
	m.mu.RLock()
	cb, ok := m.breakers[name]
	m.mu.RUnlock()
	if ok {
		return cb
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if cb, ok := m.breakers[name]; ok {
		return cb
	}

	threshold := m.config.FailureThreshold
	settings := gobreaker.Settings{
		Name:        name,
		MaxRequests: m.config.MaxRequests,
		Interval:    m.config.Interval,
		Timeout:     m.config.Timeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= threshold
		},
		OnStateChange: func(cbName string, from gobreaker.State, to gobreaker.State) {
			metrics.CircuitBreakerState.WithLabelValues(cbName).Set(stateValue(to))
			m.logger.Warn("Circuit breaker state changed",
				logger.String("circuit", cbName),
				logger.String("from", from.String()),
				logger.String("to", to.String()))
		},
	}
	if isFailure := m.config.IsFailure; isFailure != nil {
		settings.IsSuccessful = func(err error) bool {
			return err == nil || !isFailure(err)
		}
	}

	cb = gobreaker.NewCircuitBreaker(settings)
	metrics.CircuitBreakerState.WithLabelValues(name).Set(0)
	m.breakers[name] = cb
	return cb
}

// Execute runs fn through the named breaker. A rejected call returns an error wrapping ErrOpen.
func (m *Manager) Execute(ctx context.Context, name string, fn func(context.Context) error) error {
	_, err := m.GetOrCreate(name).Execute(func() (interface{}, error) {
		return nil, fn(ctx)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return errors.Join(ErrOpen, err)
	}
	return err
}

// State returns the current state name of a breaker, or closed if it was never used
func (m *Manager) State(name string) gobreaker.State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if cb, ok := m.breakers[name]; ok {
		return cb.State()
	}
	return gobreaker.StateClosed
}

// GetStats returns a snapshot of every breaker
func (m *Manager) GetStats() map[string]Stats {
	m.mu.RLock()
	defer m.mu.RUnlock()

	stats := make(map[string]Stats, len(m.breakers))
	for name, cb := range m.breakers {
		counts := cb.Counts()
		stats[name] = Stats{
			Name:                 name,
			State:                cb.State().String(),
			Requests:             counts.Requests,
			TotalFailures:        counts.TotalFailures,
			ConsecutiveFailures:  counts.ConsecutiveFailures,
			ConsecutiveSuccesses: counts.ConsecutiveSuccesses,
		}
	}
	return stats
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateOpen:
		return 1
	case gobreaker.StateHalfOpen:
		return 2
	default:
		return 0
	}
}
