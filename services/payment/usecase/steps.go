package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/piresc/tuitionpay/internal/pkg/logger"
	"github.com/piresc/tuitionpay/internal/pkg/metrics"
	"github.com/piresc/tuitionpay/internal/pkg/models"
	nrpkg "github.com/piresc/tuitionpay/internal/pkg/newrelic"
	"github.com/piresc/tuitionpay/internal/pkg/retry"
	"github.com/piresc/tuitionpay/internal/pkg/rpc"
	"github.com/piresc/tuitionpay/services/payment"
)

const maxStepRetryDelay = 5 * time.Second

// newPlan returns the fixed step plan of a payment saga
func newPlan() models.SagaSteps {
	return models.SagaSteps{
		{
			ID:           models.StepCreatePayment,
			Action:       models.ActionCreatePayment,
			Compensation: models.CompensationCancelPayment,
			Status:       models.StepStatusPending,
			MaxRetries:   3,
		},
		{
			ID:           models.StepGenerateAndSendOtp,
			Action:       models.ActionGenerateAndSendOtp,
			Compensation: models.CompensationClearOtp,
			Status:       models.StepStatusPending,
			MaxRetries:   3,
		},
		{
			ID:     models.StepWaitOtpVerification,
			Action: models.ActionWaitOtpVerification,
			Status: models.StepStatusPending,
		},
		{
			ID:           models.StepExecuteTransaction,
			Action:       models.ActionExecuteTransaction,
			Compensation: models.CompensationRollbackTransaction,
			Status:       models.StepStatusPending,
			MaxRetries:   3,
		},
	}
}

// undelivered matches failures where the request provably never reached a handler
func undelivered(err error) bool {
	return errors.Is(err, rpc.ErrNoResponders)
}

// stepAction is one attempt of a step; attempt starts at 1
type stepAction func(ctx context.Context, attempt int) error

func (u *PaymentUC) retrier(ctx context.Context, saga *models.Saga, step *models.SagaStep, retryable func(error) bool) *retry.Retrier {
	return retry.New(retry.Config{
		MaxRetries:    step.MaxRetries,
		BaseDelay:     u.stepRetryBaseDelay(),
		MaxDelay:      maxStepRetryDelay,
		Multiplier:    2.0,
		Jitter:        true,
		RetryableFunc: retryable,
		OnRetry: func(n int, err error) {
			step.RetryCount = n
			logger.WarnCtx(ctx, "Retrying saga step",
				logger.SagaID(saga.ID),
				logger.Step(step.ID),
				logger.Int("retry", n),
				logger.Err(err))
		},
	}, nil)
}

// runStep executes a forward step with bounded retries and records its outcome on the saga
func (u *PaymentUC) runStep(ctx context.Context, saga *models.Saga, stepID string, retryable func(error) bool, action stepAction) error {
	idx := saga.StepIndex(stepID)
	if idx < 0 {
		return fmt.Errorf("saga %s has no step %s", saga.ID, stepID)
	}
	step := &saga.Steps[idx]
	r := u.retrier(ctx, saga, step, retryable)

	start := time.Now()
	attempt := 0
	err := nrpkg.WithSegment(ctx, "Saga."+stepID, func() error {
		return r.Execute(ctx, func(ctx context.Context) error {
			attempt++
			return action(ctx, attempt)
		})
	})

	outcome := metrics.OutcomeSuccess
	if err != nil {
		outcome = metrics.OutcomeFailure
	}
	metrics.SagaStepDuration.WithLabelValues(stepID, outcome).Observe(time.Since(start).Seconds())

	if err != nil {
		saga.FailStep(idx, err)
		logger.ErrorCtx(ctx, "Saga step failed",
			logger.SagaID(saga.ID),
			logger.PaymentID(saga.PaymentID.String()),
			logger.Step(stepID),
			logger.Int("attempts", attempt),
			logger.Err(err))
		return err
	}

	saga.CompleteStep(idx, u.now().UTC())
	logger.InfoCtx(ctx, "Saga step completed",
		logger.SagaID(saga.ID),
		logger.PaymentID(saga.PaymentID.String()),
		logger.Step(stepID),
		logger.Int("attempts", attempt))
	return nil
}

// completeStep marks a step without an action completed
func (u *PaymentUC) completeStep(saga *models.Saga, stepID string) {
	if idx := saga.StepIndex(stepID); idx >= 0 {
		saga.CompleteStep(idx, u.now().UTC())
	}
}

func (u *PaymentUC) setSagaStatus(saga *models.Saga, status models.SagaStatus) {
	saga.Status = status
	metrics.SagaTransitions.WithLabelValues(string(status)).Inc()
}

// saveSaga persists a checkpoint, logging instead of failing
func (u *PaymentUC) saveSaga(ctx context.Context, saga *models.Saga) {
	if err := u.paymentRepo.UpdateSaga(ctx, saga); err != nil {
		logger.ErrorCtx(ctx, "Failed to persist saga",
			logger.SagaID(saga.ID),
			logger.String("status", string(saga.Status)),
			logger.Err(err))
	}
}

// failSaga compensates the completed steps, marks the saga failed and returns
// the caller facing error for cause
func (u *PaymentUC) failSaga(ctx context.Context, saga *models.Saga, cause error) error {
	ctx, cancel := detach(ctx)
	defer cancel()

	saga.ErrorMessage = cause.Error()
	u.compensate(ctx, saga)
	u.setSagaStatus(saga, models.SagaStatusFailed)
	u.saveSaga(ctx, saga)

	if saga.HasCompleted(models.StepCreatePayment) {
		event := &models.PaymentFailedEvent{
			PaymentID: saga.PaymentID,
			SagaID:    saga.ID,
			PayerID:   saga.PayerID,
			Error:     saga.ErrorMessage,
			FailedAt:  u.now().UTC(),
		}
		if err := u.paymentGW.PublishPaymentFailed(ctx, event); err != nil {
			logger.WarnCtx(ctx, "Failed to publish payment failed event",
				logger.SagaID(saga.ID),
				logger.Err(err))
		}
	}

	return stepError(cause)
}

// stepError translates collaborator failures for the caller
func stepError(err error) error {
	var otpErr *models.OTPError
	if errors.As(err, &otpErr) {
		if otpErr.Kind == models.OTPErrRateLimited {
			return fmt.Errorf("%w: %w", payment.ErrOtpRateLimited, err)
		}
		return fmt.Errorf("%w: %w", payment.ErrCollaborator, err)
	}
	return err
}

// compensate runs the compensating actions of the completed steps in reverse order.
// A failing compensation is logged and the remaining ones still run.
func (u *PaymentUC) compensate(ctx context.Context, saga *models.Saga, skip ...string) {
	u.setSagaStatus(saga, models.SagaStatusCompensating)
	u.saveSaga(ctx, saga)

	for i := len(saga.CompletedSteps) - 1; i >= 0; i-- {
		step := saga.CompletedSteps[i]
		if step.Compensation == "" || contains(skip, step.Compensation) {
			continue
		}

		err := u.runCompensation(ctx, saga, &step)
		outcome := metrics.OutcomeSuccess
		if err != nil {
			outcome = metrics.OutcomeFailure
			logger.ErrorCtx(ctx, "Compensation failed",
				logger.SagaID(saga.ID),
				logger.Step(step.ID),
				logger.String("compensation", step.Compensation),
				logger.Err(err))
		} else {
			logger.InfoCtx(ctx, "Compensation applied",
				logger.SagaID(saga.ID),
				logger.Step(step.ID),
				logger.String("compensation", step.Compensation))
		}
		metrics.Compensations.WithLabelValues(step.Compensation, outcome).Inc()
	}
}

func (u *PaymentUC) runCompensation(ctx context.Context, saga *models.Saga, step *models.SagaStep) error {
	switch step.Compensation {
	case models.CompensationCancelPayment:
		_, err := u.paymentRepo.TransitionPaymentStatus(ctx, saga.PaymentID, models.PaymentStatusPending, models.PaymentStatusCancelled)
		return err

	case models.CompensationClearOtp:
		return u.retrier(ctx, saga, step, rpc.Retryable).Execute(ctx, func(ctx context.Context) error {
			return u.paymentGW.ClearOtp(ctx, saga.PaymentID.String())
		})

	case models.CompensationRollbackTransaction:
		p, err := u.paymentRepo.GetPaymentByID(ctx, saga.PaymentID)
		if err != nil {
			return fmt.Errorf("failed to load debited payment: %w", err)
		}
		err = u.retrier(ctx, saga, step, undelivered).Execute(ctx, func(ctx context.Context) error {
			_, err := u.paymentGW.AddBalance(ctx, &models.BalanceChangeRequest{
				UserID:        p.PayerID,
				Amount:        p.TuitionAmount,
				TransactionID: p.ID.String(),
			})
			return err
		})
		if err != nil {
			return fmt.Errorf("failed to refund payer: %w", err)
		}
		return u.paymentRepo.SetPaymentStatus(ctx, saga.PaymentID, models.PaymentStatusFailed)
	}
	return fmt.Errorf("unknown compensation %q", step.Compensation)
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
