package scheduler

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/newrelic/go-agent/v3/newrelic"
	"github.com/piresc/tuitionpay/internal/pkg/logger"
	"github.com/piresc/tuitionpay/internal/pkg/models"
	nrpkg "github.com/piresc/tuitionpay/internal/pkg/newrelic"
	"github.com/piresc/tuitionpay/services/payment"
)

const defaultInterval = time.Minute

// ErrAlreadyRunning is returned by Start on a running scheduler
var ErrAlreadyRunning = errors.New("cleanup scheduler already running")

// CleanupScheduler periodically cancels payments abandoned before OTP verification
type CleanupScheduler struct {
	paymentUC payment.PaymentUC
	interval  time.Duration
	nrApp     *newrelic.Application

	mu     sync.Mutex
	cancel context.CancelFunc
	done   chan struct{}
}

// NewCleanupScheduler creates a scheduler sweeping every cfg.Cleanup.Interval
func NewCleanupScheduler(paymentUC payment.PaymentUC, cfg *models.Config, nrApp *newrelic.Application) *CleanupScheduler {
	interval := cfg.Cleanup.Interval
	if interval <= 0 {
		interval = defaultInterval
	}
	return &CleanupScheduler{
		paymentUC: paymentUC,
		interval:  interval,
		nrApp:     nrApp,
	}
}

// Start runs a first sweep immediately and then one per interval until Stop is
// called or ctx is done
func (s *CleanupScheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.cancel != nil {
		return ErrAlreadyRunning
	}

	ctx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	s.done = make(chan struct{})
	go s.run(ctx, s.done)

	logger.Info("Cleanup scheduler started", logger.Duration("interval", s.interval))
	return nil
}

// Stop cancels the loop and waits for an in-flight sweep to return
func (s *CleanupScheduler) Stop() {
	s.mu.Lock()
	cancel, done := s.cancel, s.done
	s.cancel, s.done = nil, nil
	s.mu.Unlock()

	if cancel == nil {
		return
	}
	cancel()
	<-done
	logger.Info("Cleanup scheduler stopped")
}

func (s *CleanupScheduler) run(ctx context.Context, done chan struct{}) {
	defer close(done)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.RunOnce(ctx)
	for {
		select {
		case <-ticker.C:
			s.RunOnce(ctx)
		case <-ctx.Done():
			return
		}
	}
}

// RunOnce performs a single sweep and returns the number of cancelled payments
func (s *CleanupScheduler) RunOnce(ctx context.Context) int {
	txn, ctx := nrpkg.StartBackgroundTransaction(ctx, s.nrApp, "Scheduler.CleanupStalePayments")
	defer txn.End()

	start := time.Now()
	count, err := s.paymentUC.CleanupStalePayments(ctx)
	if err != nil {
		if ctx.Err() != nil {
			return count
		}
		nrpkg.NoticeTransactionError(txn, err)
		logger.ErrorCtx(ctx, "Stale payment sweep failed",
			logger.Int("cancelled", count),
			logger.Err(err))
		return count
	}

	nrpkg.AddTransactionAttribute(txn, "cleanup.cancelled", count)
	logger.DebugCtx(ctx, "Stale payment sweep finished",
		logger.Int("cancelled", count),
		logger.Duration("took", time.Since(start)))
	return count
}
