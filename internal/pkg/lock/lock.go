package lock

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"github.com/piresc/tuitionpay/internal/pkg/constants"
	"github.com/piresc/tuitionpay/internal/pkg/logger"
	"github.com/piresc/tuitionpay/internal/pkg/metrics"
	"github.com/piresc/tuitionpay/internal/pkg/models"
)

var (
	// ErrNotAcquired is returned by Acquire when another owner holds the resource
	ErrNotAcquired = errors.New("lock is held by another owner")
	// ErrWaitTimeout is returned by WaitAcquire when the resource stayed busy for the whole wait
	ErrWaitTimeout = errors.New("timed out waiting for lock")
	// ErrNotOwner is returned by Release when the key expired or was taken by someone else
	ErrNotOwner = errors.New("lock is no longer owned by this token")
)

// releaseScript deletes the key only while it still holds the caller's token
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// Lock is a held lease on a resource
type Lock struct {
	Resource   string
	Key        string
	Token      string
	AcquiredAt time.Time
	// Degraded is set when the store was unreachable and the caller proceeded unlocked
	Degraded bool
}

// Manager hands out TTL-bounded exclusive leases stored under lock:<resource>
type Manager struct {
	client       *redis.Client
	ttl          time.Duration
	maxWait      time.Duration
	pollInterval time.Duration
}

// NewManager creates a lock manager
func NewManager(client *redis.Client, cfg models.LockConfig) *Manager {
	m := &Manager{
		client:       client,
		ttl:          cfg.TTL,
		maxWait:      cfg.MaxWait,
		pollInterval: cfg.PollInterval,
	}
	if m.ttl <= 0 {
		m.ttl = 30 * time.Second
	}
	if m.maxWait <= 0 {
		m.maxWait = 15 * time.Second
	}
	if m.pollInterval <= 0 {
		m.pollInterval = 100 * time.Millisecond
	}
	return m
}

// Key returns the store key of a resource
func Key(resource string) string {
	return fmt.Sprintf(constants.KeyLock, resource)
}

func newToken() string {
	return uuid.NewString() + "-" + strconv.FormatInt(time.Now().UnixNano(), 10)
}

// Acquire makes a single attempt. When the store itself fails the lock is granted
// in degraded mode so availability wins over exclusion.
func (m *Manager) Acquire(ctx context.Context, resource string) (*Lock, error) {
	key := Key(resource)
	token := newToken()

	ok, err := m.client.SetNX(ctx, key, token, m.ttl).Result()
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		metrics.LockAcquisitions.WithLabelValues(metrics.OutcomeDegraded).Inc()
		logger.WarnCtx(ctx, "Lock store unavailable, proceeding without lock",
			logger.String("resource", resource),
			logger.Err(err))
		return &Lock{Resource: resource, Key: key, AcquiredAt: time.Now(), Degraded: true}, nil
	}
	if !ok {
		metrics.LockAcquisitions.WithLabelValues(metrics.OutcomeBusy).Inc()
		return nil, ErrNotAcquired
	}

	metrics.LockAcquisitions.WithLabelValues(metrics.OutcomeSuccess).Inc()
	return &Lock{Resource: resource, Key: key, Token: token, AcquiredAt: time.Now()}, nil
}

// WaitAcquire polls until the lock is granted or the configured wait elapses
func (m *Manager) WaitAcquire(ctx context.Context, resource string) (*Lock, error) {
	deadline := time.Now().Add(m.maxWait)
	ticker := time.NewTicker(m.pollInterval)
	defer ticker.Stop()

	for {
		l, err := m.Acquire(ctx, resource)
		if err == nil {
			return l, nil
		}
		if !errors.Is(err, ErrNotAcquired) {
			return nil, err
		}
		if !time.Now().Before(deadline) {
			metrics.LockAcquisitions.WithLabelValues(metrics.OutcomeTimeout).Inc()
			return nil, fmt.Errorf("%w: %s after %s", ErrWaitTimeout, resource, m.maxWait)
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-ticker.C:
		}
	}
}

// Release deletes the key only if it still carries this lock's token
func (m *Manager) Release(ctx context.Context, l *Lock) error {
	if l == nil || l.Degraded {
		return nil
	}

	n, err := releaseScript.Run(ctx, m.client, []string{l.Key}, l.Token).Int64()
	if err != nil {
		return fmt.Errorf("failed to release lock %s: %w", l.Resource, err)
	}
	if n == 0 {
		logger.WarnCtx(ctx, "Lock was not released because ownership changed",
			logger.String("resource", l.Resource))
		return ErrNotOwner
	}
	return nil
}

// ForceRelease deletes the key regardless of owner. It is only used on terminal
// paths that no longer hold the token, such as cleanup of abandoned payments.
func (m *Manager) ForceRelease(ctx context.Context, resource string) error {
	if err := m.client.Del(ctx, Key(resource)).Err(); err != nil {
		return fmt.Errorf("failed to force release lock %s: %w", resource, err)
	}
	return nil
}

// IsLocked reports whether any owner currently holds the resource
func (m *Manager) IsLocked(ctx context.Context, resource string) (bool, error) {
	n, err := m.client.Exists(ctx, Key(resource)).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check lock %s: %w", resource, err)
	}
	return n == 1, nil
}
