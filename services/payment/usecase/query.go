package usecase

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/piresc/tuitionpay/internal/pkg/logger"
	"github.com/piresc/tuitionpay/internal/pkg/models"
	"github.com/piresc/tuitionpay/services/payment"
)

// loadPayment fetches a payment, checking ownership when payerID is set
func (u *PaymentUC) loadPayment(ctx context.Context, paymentID uuid.UUID, payerID string) (*models.Payment, error) {
	p, err := u.paymentRepo.GetPaymentByID(ctx, paymentID)
	if err != nil {
		return nil, err
	}
	if payerID != "" && p.PayerID != payerID {
		return nil, payment.ErrNotPaymentOwner
	}
	return p, nil
}

// findSaga returns nil without error when the payment has no saga
func (u *PaymentUC) findSaga(ctx context.Context, paymentID uuid.UUID) (*models.Saga, error) {
	saga, err := u.paymentRepo.GetSagaByPaymentID(ctx, paymentID)
	if err != nil {
		if errors.Is(err, payment.ErrSagaNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return saga, nil
}

// ResendOtp asks the OTP service to replace the code of a pending payment
func (u *PaymentUC) ResendOtp(ctx context.Context, paymentID uuid.UUID, payerID, email string) (*models.ResendOtpResult, error) {
	p, err := u.loadPayment(ctx, paymentID, payerID)
	if err != nil {
		return nil, err
	}
	if p.Status != models.PaymentStatusPending {
		return nil, payment.ErrPaymentNotPending
	}

	if email == "" {
		if saga, err := u.findSaga(ctx, paymentID); err == nil && saga != nil {
			email = saga.UserEmail
		}
	}

	event := &models.OtpResendRequestedEvent{
		TransactionID: p.ID.String(),
		Email:         email,
		StudentID:     p.StudentID,
		RequestedAt:   u.now().UTC(),
	}
	if err := u.paymentGW.PublishOtpResendRequested(ctx, event); err != nil {
		return nil, fmt.Errorf("failed to request otp resend: %w", err)
	}

	logger.InfoCtx(ctx, "OTP resend requested", logger.PaymentID(p.ID.String()))
	return &models.ResendOtpResult{
		PaymentID: p.ID,
		ExpiresIn: u.otpExpiresIn(),
	}, nil
}

// GetOtpInfo describes the outstanding code of a payment
func (u *PaymentUC) GetOtpInfo(ctx context.Context, paymentID uuid.UUID) (*models.OTPInfo, error) {
	if _, err := u.paymentRepo.GetPaymentByID(ctx, paymentID); err != nil {
		return nil, err
	}
	return u.paymentGW.GetOtpInfo(ctx, paymentID.String())
}

// GetPayment retrieves a payment by ID
func (u *PaymentUC) GetPayment(ctx context.Context, paymentID uuid.UUID) (*models.Payment, error) {
	return u.paymentRepo.GetPaymentByID(ctx, paymentID)
}

// GetPaymentsByPayer lists the payments made by a payer
func (u *PaymentUC) GetPaymentsByPayer(ctx context.Context, payerID string) ([]*models.Payment, error) {
	return u.paymentRepo.ListPaymentsByPayer(ctx, payerID)
}

// GetPaymentsByStudent lists the payments made for a student
func (u *PaymentUC) GetPaymentsByStudent(ctx context.Context, studentID string) ([]*models.Payment, error) {
	return u.paymentRepo.ListPaymentsByStudent(ctx, studentID)
}

// GetSaga retrieves a saga by ID
func (u *PaymentUC) GetSaga(ctx context.Context, sagaID string) (*models.Saga, error) {
	return u.paymentRepo.GetSagaByID(ctx, sagaID)
}

// GetAllSagas lists the most recent sagas
func (u *PaymentUC) GetAllSagas(ctx context.Context, limit int) ([]*models.Saga, error) {
	if limit <= 0 {
		limit = defaultSagaListLimit
	}
	if limit > maxSagaListLimit {
		limit = maxSagaListLimit
	}
	return u.paymentRepo.ListSagas(ctx, limit)
}
