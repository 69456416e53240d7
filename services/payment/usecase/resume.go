package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/piresc/tuitionpay/internal/pkg/logger"
	"github.com/piresc/tuitionpay/internal/pkg/models"
	nrpkg "github.com/piresc/tuitionpay/internal/pkg/newrelic"
	"github.com/piresc/tuitionpay/services/payment"
	"github.com/shopspring/decimal"
)

// VerifyOtpAndCompletePayment resumes a paused saga with the payer's code and
// executes the funds transfer
func (u *PaymentUC) VerifyOtpAndCompletePayment(ctx context.Context, paymentID uuid.UUID, payerID, otpCode string) (*models.CompletePaymentResult, error) {
	otpCode = strings.TrimSpace(otpCode)
	if otpCode == "" {
		return nil, fmt.Errorf("%w: otp code is required", payment.ErrInvalidRequest)
	}

	p, err := u.loadPayment(ctx, paymentID, payerID)
	if err != nil {
		return nil, err
	}
	if p.Status != models.PaymentStatusPending {
		return nil, payment.ErrPaymentNotPending
	}
	saga, err := u.paymentRepo.GetSagaByPaymentID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	nrpkg.AnnotateSaga(ctx, saga.ID, saga.StudentID)

	verified, err := u.paymentGW.VerifyOtp(ctx, paymentID.String(), otpCode)
	if err != nil {
		return nil, u.handleVerifyFailure(ctx, p, saga, err)
	}
	if verified.AlreadyVerified {
		// another resume owns the transfer
		return nil, payment.ErrResumeInProgress
	}

	return u.executeTransaction(ctx, p, saga)
}

// handleVerifyFailure cancels the payment on terminal OTP outcomes
func (u *PaymentUC) handleVerifyFailure(ctx context.Context, p *models.Payment, saga *models.Saga, err error) error {
	var otpErr *models.OTPError
	if !errors.As(err, &otpErr) {
		return err
	}

	var reason string
	switch otpErr.Kind {
	case models.OTPErrInvalidCode:
		logger.InfoCtx(ctx, "Invalid OTP submitted",
			logger.PaymentID(p.ID.String()),
			logger.Int("attempts_left", otpErr.AttemptsLeft))
		return fmt.Errorf("%w: %w", payment.ErrOtpInvalid, otpErr)
	case models.OTPErrExpired, models.OTPErrNotFound:
		reason = models.CancelReasonOtpExpired
	case models.OTPErrMaxAttemptsExceeded:
		reason = models.CancelReasonMaxOtpAttempts
	default:
		return fmt.Errorf("%w: %w", payment.ErrCollaborator, otpErr)
	}

	if cancelErr := u.cancel(ctx, p, saga, reason, true); cancelErr != nil && !errors.Is(cancelErr, payment.ErrPaymentNotPending) {
		logger.ErrorCtx(ctx, "Failed to cancel payment after terminal OTP failure",
			logger.PaymentID(p.ID.String()),
			logger.String("reason", reason),
			logger.Err(cancelErr))
	}
	return fmt.Errorf("%w: %w", payment.ErrOtpTerminal, otpErr)
}

// executeTransaction debits the payer and completes the payment and saga
func (u *PaymentUC) executeTransaction(ctx context.Context, p *models.Payment, saga *models.Saga) (*models.CompletePaymentResult, error) {
	var newBalance decimal.Decimal
	err := u.runStep(ctx, saga, models.StepExecuteTransaction, undelivered, func(ctx context.Context, _ int) error {
		resp, err := u.paymentGW.DeductBalance(ctx, &models.BalanceChangeRequest{
			UserID:        p.PayerID,
			Amount:        p.TuitionAmount,
			TransactionID: p.ID.String(),
		})
		if err != nil {
			return err
		}
		newBalance = resp.NewBalance
		return nil
	})

	// from here the debit may have landed
	ctx, cancel := detach(ctx)
	defer cancel()

	if err != nil {
		return nil, u.failSaga(ctx, saga, err)
	}

	if err := u.paymentGW.UpdateTuitionAmount(ctx, p.StudentID, decimal.Zero); err != nil {
		logger.WarnCtx(ctx, "Failed to update outstanding tuition, payment still succeeds",
			logger.PaymentID(p.ID.String()),
			logger.String("student_id", p.StudentID),
			logger.Err(err))
	}

	ok, err := u.paymentRepo.TransitionPaymentStatus(ctx, p.ID, models.PaymentStatusPending, models.PaymentStatusCompleted)
	if err == nil && !ok {
		err = payment.ErrPaymentNotPending
	}
	if err != nil {
		// the debit already landed, compensation refunds it
		return nil, u.failSaga(ctx, saga, fmt.Errorf("failed to complete payment: %w", err))
	}
	p.Status = models.PaymentStatusCompleted

	u.setSagaStatus(saga, models.SagaStatusCompleted)
	u.saveSaga(ctx, saga)

	if err := u.paymentGW.ClearOtp(ctx, p.ID.String()); err != nil {
		logger.WarnCtx(ctx, "Failed to clear OTP of completed payment",
			logger.PaymentID(p.ID.String()),
			logger.Err(err))
	}

	event := &models.PaymentCompletedEvent{
		PaymentID:   p.ID,
		SagaID:      saga.ID,
		PayerID:     p.PayerID,
		StudentID:   p.StudentID,
		Amount:      p.TuitionAmount,
		NewBalance:  newBalance,
		Email:       saga.UserEmail,
		CompletedAt: u.now().UTC(),
	}
	if err := u.paymentGW.PublishPaymentCompleted(ctx, event); err != nil {
		logger.WarnCtx(ctx, "Failed to publish payment completed event",
			logger.PaymentID(p.ID.String()),
			logger.Err(err))
	}

	logger.InfoCtx(ctx, "Payment completed",
		logger.SagaID(saga.ID),
		logger.PaymentID(p.ID.String()),
		logger.String("amount", p.TuitionAmount.StringFixed(2)))

	return &models.CompletePaymentResult{
		PaymentID:  p.ID,
		Status:     models.PaymentStatusCompleted,
		NewBalance: newBalance,
	}, nil
}
