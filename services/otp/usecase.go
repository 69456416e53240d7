package otp

import (
	"context"

	"github.com/piresc/tuitionpay/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_usecase.go -package=mocks github.com/piresc/tuitionpay/services/otp OTPUC

// OTPUC manages the one-time passcode lifecycle of a payment transaction
type OTPUC interface {
	Generate(ctx context.Context, req *models.GenerateOTPRequest) (*models.GenerateOTPResponse, error)
	Verify(ctx context.Context, transactionID, code string) (*models.VerifyOTPResponse, error)
	Resend(ctx context.Context, req *models.ResendOTPRequest) (*models.GenerateOTPResponse, error)
	Clear(ctx context.Context, transactionID string) (bool, error)
	Info(ctx context.Context, transactionID string) (*models.OTPInfo, error)
}
