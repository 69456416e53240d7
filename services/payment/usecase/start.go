package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/piresc/tuitionpay/internal/pkg/lock"
	"github.com/piresc/tuitionpay/internal/pkg/logger"
	"github.com/piresc/tuitionpay/internal/pkg/models"
	nrpkg "github.com/piresc/tuitionpay/internal/pkg/newrelic"
	"github.com/piresc/tuitionpay/internal/pkg/rpc"
	"github.com/piresc/tuitionpay/internal/utils"
	"github.com/piresc/tuitionpay/services/payment"
	"github.com/shopspring/decimal"
)

func parseStartRequest(req *models.CreatePaymentRequest) (decimal.Decimal, error) {
	if req == nil || strings.TrimSpace(req.PayerID) == "" || strings.TrimSpace(req.StudentID) == "" {
		return decimal.Zero, fmt.Errorf("%w: payer and student are required", payment.ErrInvalidRequest)
	}
	amount, err := decimal.NewFromString(strings.TrimSpace(req.Amount))
	if err != nil || !amount.IsPositive() {
		return decimal.Zero, payment.ErrInvalidAmount
	}
	if req.Email != "" && !utils.IsValidEmail(req.Email) {
		return decimal.Zero, fmt.Errorf("%w: invalid email", payment.ErrInvalidRequest)
	}
	return amount, nil
}

// StartPayment runs the saga up to the OTP verification pause
func (u *PaymentUC) StartPayment(ctx context.Context, req *models.CreatePaymentRequest) (*models.StartPaymentResult, error) {
	amount, err := parseStartRequest(req)
	if err != nil {
		return nil, err
	}

	now := u.now().UTC()
	paymentID := uuid.New()
	saga := &models.Saga{
		ID:             models.NewSagaID(paymentID, now),
		PaymentID:      paymentID,
		PayerID:        req.PayerID,
		StudentID:      req.StudentID,
		Amount:         amount,
		UserEmail:      req.Email,
		Status:         models.SagaStatusPending,
		Steps:          newPlan(),
		CompletedSteps: models.SagaSteps{},
		CreatedAt:      now,
	}

	nrpkg.AnnotateSaga(ctx, saga.ID, saga.StudentID)

	if err := u.paymentRepo.CreateSaga(ctx, saga); err != nil {
		return nil, fmt.Errorf("failed to persist saga: %w", err)
	}
	u.setSagaStatus(saga, models.SagaStatusPending)

	logger.InfoCtx(ctx, "Payment saga started",
		logger.SagaID(saga.ID),
		logger.PaymentID(paymentID.String()),
		logger.String("payer_id", saga.PayerID),
		logger.String("student_id", saga.StudentID),
		logger.String("amount", amount.StringFixed(2)))

	var p *models.Payment
	err = u.runStep(ctx, saga, models.StepCreatePayment, rpc.Retryable, func(ctx context.Context, _ int) error {
		var stepErr error
		p, stepErr = u.createPayment(ctx, saga)
		return stepErr
	})
	if err != nil {
		return nil, u.failSaga(ctx, saga, err)
	}
	if err := u.paymentRepo.UpdateSaga(ctx, saga); err != nil {
		return nil, u.failSaga(ctx, saga, fmt.Errorf("failed to checkpoint saga: %w", err))
	}
	u.publishCreated(ctx, saga, p)

	expiresIn := u.otpExpiresIn()
	err = u.runStep(ctx, saga, models.StepGenerateAndSendOtp, rpc.Retryable, func(ctx context.Context, attempt int) error {
		// a retry may follow a call that landed but timed out
		resp, stepErr := u.paymentGW.GenerateOtp(ctx, &models.GenerateOTPRequest{
			TransactionID:     paymentID.String(),
			Email:             saga.UserEmail,
			StudentID:         saga.StudentID,
			SkipExistingCheck: attempt > 1,
		})
		if stepErr != nil {
			return stepErr
		}
		if resp.ExpiresIn > 0 {
			expiresIn = resp.ExpiresIn
		}
		return nil
	})
	if err != nil {
		return nil, u.failSaga(ctx, saga, err)
	}

	// suspension point: the saga resumes on OTP verification
	u.completeStep(saga, models.StepWaitOtpVerification)
	if err := u.paymentRepo.UpdateSaga(ctx, saga); err != nil {
		return nil, u.failSaga(ctx, saga, fmt.Errorf("failed to checkpoint saga: %w", err))
	}

	logger.InfoCtx(ctx, "Payment awaiting OTP verification",
		logger.SagaID(saga.ID),
		logger.PaymentID(paymentID.String()),
		logger.String("email", utils.MaskEmail(saga.UserEmail)))

	return &models.StartPaymentResult{
		SagaID:    saga.ID,
		PaymentID: paymentID,
		Status:    models.PaymentStatusPending,
		ExpiresIn: expiresIn,
	}, nil
}

// createPayment validates the request against the collaborators and persists the
// pending payment while holding the student lock
func (u *PaymentUC) createPayment(ctx context.Context, saga *models.Saga) (*models.Payment, error) {
	l, err := u.locker.WaitAcquire(ctx, saga.StudentID)
	if err != nil {
		if errors.Is(err, lock.ErrWaitTimeout) {
			return nil, fmt.Errorf("%w: %w", payment.ErrLockContention, err)
		}
		return nil, err
	}
	defer func() {
		if err := u.locker.Release(context.WithoutCancel(ctx), l); err != nil {
			logger.WarnCtx(ctx, "Failed to release student lock",
				logger.String("student_id", saga.StudentID),
				logger.Err(err))
		}
	}()

	if _, err := u.paymentRepo.GetPendingPaymentByStudent(ctx, saga.StudentID); err == nil {
		return nil, payment.ErrDuplicatePending
	} else if !errors.Is(err, payment.ErrPaymentNotFound) {
		return nil, err
	}

	user, err := u.paymentGW.GetUser(ctx, saga.PayerID)
	if err != nil {
		return nil, err
	}
	student, err := u.paymentGW.LookupStudent(ctx, saga.StudentID)
	if err != nil {
		return nil, err
	}

	tuition := student.TuitionAmount
	if !tuition.IsPositive() {
		return nil, payment.ErrNothingOwed
	}
	if saga.Amount.Sub(tuition).Abs().GreaterThan(u.amountTolerance()) {
		return nil, fmt.Errorf("%w: requested %s, due %s", payment.ErrAmountMismatch,
			saga.Amount.StringFixed(2), tuition.StringFixed(2))
	}
	if user.Balance.LessThan(tuition) {
		return nil, payment.ErrInsufficientBalance
	}

	if saga.UserEmail == "" {
		saga.UserEmail = user.Email
	}
	if !utils.IsValidEmail(saga.UserEmail) {
		return nil, fmt.Errorf("%w: payer has no valid email", payment.ErrInvalidRequest)
	}

	p := &models.Payment{
		ID:            saga.PaymentID,
		PayerID:       saga.PayerID,
		StudentID:     saga.StudentID,
		TuitionAmount: tuition,
		PayerBalance:  user.Balance,
		Status:        models.PaymentStatusPending,
		CreatedAt:     u.now().UTC(),
	}
	if err := u.paymentRepo.CreatePayment(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

func (u *PaymentUC) publishCreated(ctx context.Context, saga *models.Saga, p *models.Payment) {
	event := &models.PaymentCreatedEvent{
		PaymentID: p.ID,
		SagaID:    saga.ID,
		PayerID:   p.PayerID,
		StudentID: p.StudentID,
		Amount:    p.TuitionAmount,
		CreatedAt: p.CreatedAt,
	}
	if err := u.paymentGW.PublishPaymentCreated(ctx, event); err != nil {
		logger.WarnCtx(ctx, "Failed to publish payment created event",
			logger.PaymentID(p.ID.String()),
			logger.Err(err))
	}
}
