package otp

import (
	"context"

	"github.com/piresc/tuitionpay/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_gateway.go -package=mocks github.com/piresc/tuitionpay/services/otp OTPGW

// OTPGW publishes OTP side effects to the event bus
type OTPGW interface {
	PublishOtpGenerated(ctx context.Context, event *models.OtpGeneratedEvent) error
	PublishPaymentCancelled(ctx context.Context, event *models.PaymentCancelledEvent) error
}
