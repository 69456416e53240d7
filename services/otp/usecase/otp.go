package usecase

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"errors"
	"fmt"
	"math/big"
	"strconv"
	"time"

	"github.com/piresc/tuitionpay/internal/pkg/logger"
	"github.com/piresc/tuitionpay/internal/pkg/metrics"
	"github.com/piresc/tuitionpay/internal/pkg/models"
	"github.com/piresc/tuitionpay/internal/utils"
	"github.com/piresc/tuitionpay/services/otp"
)

const (
	codeMin   = 100000
	codeRange = 900000

	rateLimitWindow = time.Hour
)

// generateCode draws a 6-digit code uniformly from [100000, 999999]
func generateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeRange))
	if err != nil {
		return "", fmt.Errorf("failed to generate OTP code: %w", err)
	}
	return strconv.FormatInt(n.Int64()+codeMin, 10), nil
}

// Generate issues a new code for a transaction and asks the notification side to deliver it.
// Unless SkipExistingCheck is set an existing record fails with duplicate_request and the
// address rate limit is applied.
func (u *OTPUC) Generate(ctx context.Context, req *models.GenerateOTPRequest) (resp *models.GenerateOTPResponse, err error) {
	if req == nil || req.TransactionID == "" || !utils.IsValidEmail(req.Email) {
		return nil, fmt.Errorf("%w: transaction id and a valid email are required", otp.ErrInvalidRequest)
	}

	if !req.SkipExistingCheck {
		charged, err := u.checkRateLimit(ctx, req.Email)
		if err != nil {
			metrics.OTPOperations.WithLabelValues("generate", string(models.OTPErrRateLimited)).Inc()
			return nil, err
		}
		if charged {
			// only issued codes count against the address
			defer func() {
				if resp == nil {
					u.refundRateLimit(ctx, req.Email)
				}
			}()
		}
	}

	code, err := generateCode()
	if err != nil {
		return nil, err
	}

	ttl := u.ttl()
	rec := &models.OTPRecord{
		Code:      code,
		Email:     req.Email,
		StudentID: req.StudentID,
		CreatedAt: u.now().UTC(),
	}

	if req.SkipExistingCheck {
		if err := u.otpRepo.Save(ctx, req.TransactionID, rec, ttl); err != nil {
			return nil, err
		}
	} else {
		created, err := u.otpRepo.Create(ctx, req.TransactionID, rec, ttl)
		if err != nil {
			return nil, err
		}
		if !created {
			metrics.OTPOperations.WithLabelValues("generate", string(models.OTPErrDuplicateRequest)).Inc()
			logger.WarnCtx(ctx, "OTP already exists for transaction",
				logger.TransactionID(req.TransactionID))
			return nil, models.NewOTPError(models.OTPErrDuplicateRequest)
		}
	}

	event := &models.OtpGeneratedEvent{
		TransactionID: req.TransactionID,
		Email:         req.Email,
		StudentID:     req.StudentID,
		Code:          code,
		ExpiresIn:     int(ttl.Seconds()),
		GeneratedAt:   rec.CreatedAt,
	}
	if err := u.otpGW.PublishOtpGenerated(ctx, event); err != nil {
		// an undeliverable code must not block a later attempt
		if _, delErr := u.otpRepo.Delete(ctx, req.TransactionID); delErr != nil {
			logger.WarnCtx(ctx, "Failed to remove undelivered OTP",
				logger.TransactionID(req.TransactionID),
				logger.Err(delErr))
		}
		metrics.OTPOperations.WithLabelValues("generate", metrics.OutcomeFailure).Inc()
		return nil, fmt.Errorf("failed to publish OTP generated event: %w", err)
	}

	metrics.OTPOperations.WithLabelValues("generate", metrics.OutcomeSuccess).Inc()
	logger.InfoCtx(ctx, "OTP generated",
		logger.TransactionID(req.TransactionID),
		logger.String("student_id", req.StudentID),
		logger.String("email", utils.MaskEmail(req.Email)),
		logger.Bool("regenerated", req.SkipExistingCheck))

	return &models.GenerateOTPResponse{
		TransactionID: req.TransactionID,
		ExpiresIn:     int(ttl.Seconds()),
	}, nil
}

// checkRateLimit charges one generation to email. It fails open when the counter
// store is unavailable; charged reports whether the counter was incremented.
func (u *OTPUC) checkRateLimit(ctx context.Context, email string) (charged bool, err error) {
	limit := u.cfg.OTP.RateLimitPerHour
	if limit <= 0 {
		return false, nil
	}

	count, err := u.otpRepo.IncrementRateLimit(ctx, email, rateLimitWindow)
	if err != nil {
		logger.WarnCtx(ctx, "OTP rate limit unavailable, allowing generation",
			logger.String("email", utils.MaskEmail(email)),
			logger.Err(err))
		return false, nil
	}
	if count > int64(limit) {
		logger.WarnCtx(ctx, "OTP rate limit exceeded",
			logger.String("email", utils.MaskEmail(email)),
			logger.Int64("count", count))
		return false, models.NewOTPError(models.OTPErrRateLimited)
	}
	return true, nil
}

func (u *OTPUC) refundRateLimit(ctx context.Context, email string) {
	if err := u.otpRepo.RefundRateLimit(context.WithoutCancel(ctx), email); err != nil {
		logger.WarnCtx(ctx, "Failed to refund OTP rate limit",
			logger.String("email", utils.MaskEmail(email)),
			logger.Err(err))
	}
}

// Verify checks a code against the active record. A correct code marks the record
// verified and keeps it; the last allowed wrong code deletes it and cancels the payment.
func (u *OTPUC) Verify(ctx context.Context, transactionID, code string) (*models.VerifyOTPResponse, error) {
	if transactionID == "" || code == "" {
		return nil, fmt.Errorf("%w: transaction id and code are required", otp.ErrInvalidRequest)
	}

	var (
		resp      *models.VerifyOTPResponse
		otpErr    *models.OTPError
		exhausted bool
	)
	maxAttempts := u.maxAttempts()

	err := u.otpRepo.Update(ctx, transactionID, func(rec *models.OTPRecord) (models.OTPAction, error) {
		resp, otpErr, exhausted = nil, nil, false

		if u.now().Sub(rec.CreatedAt) > u.ttl() {
			otpErr = models.NewOTPError(models.OTPErrExpired)
			return models.OTPActionDelete, nil
		}

		if subtle.ConstantTimeCompare([]byte(rec.Code), []byte(code)) == 1 {
			if rec.Verified {
				resp = &models.VerifyOTPResponse{Verified: true, AlreadyVerified: true}
				return models.OTPActionNone, nil
			}
			rec.Verified = true
			resp = &models.VerifyOTPResponse{Verified: true}
			return models.OTPActionSave, nil
		}

		if rec.Verified {
			otpErr = models.NewOTPError(models.OTPErrInvalidCode)
			return models.OTPActionNone, nil
		}

		rec.Attempts++
		if rec.Attempts >= maxAttempts {
			otpErr = models.NewOTPError(models.OTPErrMaxAttemptsExceeded)
			exhausted = true
			return models.OTPActionDelete, nil
		}

		otpErr = models.NewOTPError(models.OTPErrInvalidCode)
		otpErr.AttemptsLeft = maxAttempts - rec.Attempts
		return models.OTPActionSave, nil
	})
	if err != nil {
		if errors.Is(err, otp.ErrRecordNotFound) {
			metrics.OTPOperations.WithLabelValues("verify", string(models.OTPErrExpired)).Inc()
			return nil, models.NewOTPError(models.OTPErrExpired)
		}
		metrics.OTPOperations.WithLabelValues("verify", metrics.OutcomeFailure).Inc()
		return nil, err
	}

	if exhausted {
		u.publishCancellation(ctx, transactionID)
	}

	if otpErr != nil {
		metrics.OTPOperations.WithLabelValues("verify", string(otpErr.Kind)).Inc()
		logger.WarnCtx(ctx, "OTP verification failed",
			logger.TransactionID(transactionID),
			logger.String("reason", string(otpErr.Kind)),
			logger.Int("attempts_left", otpErr.AttemptsLeft))
		return nil, otpErr
	}

	metrics.OTPOperations.WithLabelValues("verify", metrics.OutcomeSuccess).Inc()
	logger.InfoCtx(ctx, "OTP verified",
		logger.TransactionID(transactionID),
		logger.Bool("already_verified", resp.AlreadyVerified))
	return resp, nil
}

func (u *OTPUC) publishCancellation(ctx context.Context, transactionID string) {
	event := &models.PaymentCancelledEvent{
		PaymentID:   transactionID,
		Reason:      models.CancelReasonMaxOtpAttempts,
		CancelledAt: u.now().UTC(),
	}
	if err := u.otpGW.PublishPaymentCancelled(ctx, event); err != nil {
		logger.ErrorCtx(ctx, "Failed to publish payment cancellation after max OTP attempts",
			logger.TransactionID(transactionID),
			logger.Err(err))
	}
}

// Resend replaces the code of a transaction. Contact fields missing from req are
// read from the current record; with neither the call fails with not_found.
func (u *OTPUC) Resend(ctx context.Context, req *models.ResendOTPRequest) (*models.GenerateOTPResponse, error) {
	if req == nil || req.TransactionID == "" {
		return nil, fmt.Errorf("%w: transaction id is required", otp.ErrInvalidRequest)
	}

	email, studentID := req.Email, req.StudentID
	if email == "" || studentID == "" {
		rec, err := u.otpRepo.Get(ctx, req.TransactionID)
		switch {
		case err == nil:
			if email == "" {
				email = rec.Email
			}
			if studentID == "" {
				studentID = rec.StudentID
			}
		case errors.Is(err, otp.ErrRecordNotFound):
			if email == "" {
				metrics.OTPOperations.WithLabelValues("resend", string(models.OTPErrNotFound)).Inc()
				return nil, models.NewOTPError(models.OTPErrNotFound)
			}
		default:
			return nil, err
		}
	}

	if _, err := u.otpRepo.Delete(ctx, req.TransactionID); err != nil {
		return nil, err
	}

	if delay := u.cfg.OTP.ResendDelay; delay > 0 {
		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
	}

	resp, err := u.Generate(ctx, &models.GenerateOTPRequest{
		TransactionID:     req.TransactionID,
		Email:             email,
		StudentID:         studentID,
		SkipExistingCheck: true,
	})
	if err != nil {
		metrics.OTPOperations.WithLabelValues("resend", metrics.OutcomeFailure).Inc()
		return nil, err
	}

	metrics.OTPOperations.WithLabelValues("resend", metrics.OutcomeSuccess).Inc()
	return resp, nil
}

// Clear removes the record of a transaction. Clearing an absent record is not an error.
func (u *OTPUC) Clear(ctx context.Context, transactionID string) (bool, error) {
	if transactionID == "" {
		return false, fmt.Errorf("%w: transaction id is required", otp.ErrInvalidRequest)
	}

	cleared, err := u.otpRepo.Delete(ctx, transactionID)
	if err != nil {
		metrics.OTPOperations.WithLabelValues("clear", metrics.OutcomeFailure).Inc()
		return false, err
	}

	metrics.OTPOperations.WithLabelValues("clear", metrics.OutcomeSuccess).Inc()
	if cleared {
		logger.InfoCtx(ctx, "OTP cleared", logger.TransactionID(transactionID))
	} else {
		logger.DebugCtx(ctx, "No OTP to clear", logger.TransactionID(transactionID))
	}
	return cleared, nil
}

// Info describes the record of a transaction without revealing the code
func (u *OTPUC) Info(ctx context.Context, transactionID string) (*models.OTPInfo, error) {
	if transactionID == "" {
		return nil, fmt.Errorf("%w: transaction id is required", otp.ErrInvalidRequest)
	}

	rec, err := u.otpRepo.Get(ctx, transactionID)
	if err != nil {
		if errors.Is(err, otp.ErrRecordNotFound) {
			return &models.OTPInfo{Exists: false}, nil
		}
		return nil, err
	}

	remaining := rec.CreatedAt.Add(u.ttl()).Sub(u.now())
	if remaining < 0 {
		remaining = 0
	}
	left := u.maxAttempts() - rec.Attempts
	if left < 0 {
		left = 0
	}

	return &models.OTPInfo{
		Exists:            true,
		Attempts:          rec.Attempts,
		RemainingAttempts: left,
		ExpiresIn:         int(remaining.Seconds()),
		Verified:          rec.Verified,
	}, nil
}
