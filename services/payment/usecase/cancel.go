package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"github.com/piresc/tuitionpay/internal/pkg/logger"
	"github.com/piresc/tuitionpay/internal/pkg/metrics"
	"github.com/piresc/tuitionpay/internal/pkg/models"
	"github.com/piresc/tuitionpay/services/payment"
)

// CancelPayment cancels a pending payment on behalf of its payer. An empty payerID
// skips the ownership check.
func (u *PaymentUC) CancelPayment(ctx context.Context, paymentID uuid.UUID, payerID, reason string) error {
	p, err := u.loadPayment(ctx, paymentID, payerID)
	if err != nil {
		return err
	}
	if p.Status != models.PaymentStatusPending {
		return payment.ErrPaymentNotPending
	}

	saga, err := u.findSaga(ctx, paymentID)
	if err != nil {
		return err
	}

	reason = strings.TrimSpace(reason)
	if reason == "" {
		reason = models.CancelReasonUserCancelled
	}
	return u.cancel(ctx, p, saga, reason, true)
}

// HandlePaymentCancelled applies a cancellation published by another service.
// Unknown or already finished payments are ignored.
func (u *PaymentUC) HandlePaymentCancelled(ctx context.Context, event *models.PaymentCancelledEvent) error {
	paymentID, err := uuid.Parse(event.PaymentID)
	if err != nil {
		logger.WarnCtx(ctx, "Ignoring cancellation of malformed payment id",
			logger.String("payment_id", event.PaymentID))
		return nil
	}

	p, err := u.paymentRepo.GetPaymentByID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, payment.ErrPaymentNotFound) {
			logger.WarnCtx(ctx, "Ignoring cancellation of unknown payment",
				logger.PaymentID(event.PaymentID))
			return nil
		}
		return err
	}
	if p.Status != models.PaymentStatusPending {
		logger.DebugCtx(ctx, "Payment already finished, cancellation ignored",
			logger.PaymentID(event.PaymentID),
			logger.String("status", string(p.Status)))
		return nil
	}

	saga, err := u.findSaga(ctx, paymentID)
	if err != nil {
		return err
	}

	reason := event.Reason
	if reason == "" {
		reason = models.CancelReasonSagaCompensated
	}
	// the event is already on the bus, do not publish it again
	err = u.cancel(ctx, p, saga, reason, false)
	if errors.Is(err, payment.ErrPaymentNotPending) {
		return nil
	}
	return err
}

// CleanupStalePayments cancels pending payments older than the staleness threshold
// and returns how many it cancelled
func (u *PaymentUC) CleanupStalePayments(ctx context.Context) (int, error) {
	cutoff := u.now().UTC().Add(-u.staleAfter())
	stale, err := u.paymentRepo.ListStalePendingPayments(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	cancelled := 0
	for _, p := range stale {
		if err := ctx.Err(); err != nil {
			return cancelled, err
		}

		saga, err := u.findSaga(ctx, p.ID)
		if err != nil {
			logger.WarnCtx(ctx, "Failed to load saga of stale payment",
				logger.PaymentID(p.ID.String()),
				logger.Err(err))
		}

		if err := u.cancel(ctx, p, saga, models.CancelReasonTimeout, true); err != nil {
			if errors.Is(err, payment.ErrPaymentNotPending) {
				logger.DebugCtx(ctx, "Stale payment finished before cleanup",
					logger.PaymentID(p.ID.String()))
				continue
			}
			logger.ErrorCtx(ctx, "Failed to cancel stale payment",
				logger.PaymentID(p.ID.String()),
				logger.Err(err))
			continue
		}
		cancelled++
		metrics.CleanupCancelled.Inc()
	}

	if cancelled > 0 {
		logger.InfoCtx(ctx, "Stale payments cancelled",
			logger.Int("count", cancelled),
			logger.Int("found", len(stale)))
	}
	return cancelled, nil
}

// cancel moves a pending payment to cancelled and unwinds its saga. It returns
// ErrPaymentNotPending when another path finished the payment first.
func (u *PaymentUC) cancel(ctx context.Context, p *models.Payment, saga *models.Saga, reason string, publish bool) error {
	ctx, cancelCtx := detach(ctx)
	defer cancelCtx()

	ok, err := u.paymentRepo.TransitionPaymentStatus(ctx, p.ID, models.PaymentStatusPending, models.PaymentStatusCancelled)
	if err != nil {
		return err
	}
	if !ok {
		return payment.ErrPaymentNotPending
	}
	p.Status = models.PaymentStatusCancelled

	otpCleared := false
	if saga != nil {
		saga.ErrorMessage = reason
		// the payment is already cancelled
		u.compensate(ctx, saga, models.CompensationCancelPayment)
		otpCleared = saga.HasCompleted(models.StepGenerateAndSendOtp)
		u.setSagaStatus(saga, models.SagaStatusFailed)
		u.saveSaga(ctx, saga)
	}

	if !otpCleared {
		if err := u.paymentGW.ClearOtp(ctx, p.ID.String()); err != nil {
			logger.WarnCtx(ctx, "Failed to clear OTP of cancelled payment",
				logger.PaymentID(p.ID.String()),
				logger.Err(err))
		}
	}

	if err := u.locker.ForceRelease(ctx, p.StudentID); err != nil {
		logger.WarnCtx(ctx, "Failed to release student lock",
			logger.String("student_id", p.StudentID),
			logger.Err(err))
	}

	if publish {
		event := &models.PaymentCancelledEvent{
			PaymentID:   p.ID.String(),
			PayerID:     p.PayerID,
			StudentID:   p.StudentID,
			Reason:      reason,
			CancelledAt: u.now().UTC(),
		}
		if saga != nil {
			event.SagaID = saga.ID
		}
		if err := u.paymentGW.PublishPaymentCancelled(ctx, event); err != nil {
			logger.WarnCtx(ctx, "Failed to publish payment cancelled event",
				logger.PaymentID(p.ID.String()),
				logger.Err(err))
		}
	}

	logger.InfoCtx(ctx, "Payment cancelled",
		logger.PaymentID(p.ID.String()),
		logger.String("student_id", p.StudentID),
		logger.String("reason", reason))
	return nil
}
