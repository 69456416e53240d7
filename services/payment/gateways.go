package payment

import (
	"context"

	"github.com/piresc/tuitionpay/internal/pkg/models"
	"github.com/shopspring/decimal"
)

//go:generate mockgen -destination=mocks/mock_gateway.go -package=mocks github.com/piresc/tuitionpay/services/payment PaymentGW

// PaymentGW reaches the collaborators over RPC and publishes payment events
type PaymentGW interface {
	// RPC gateway
	GetUser(ctx context.Context, userID string) (*models.UserAccount, error)
	LookupStudent(ctx context.Context, studentID string) (*models.StudentTuition, error)
	DeductBalance(ctx context.Context, req *models.BalanceChangeRequest) (*models.BalanceChangeResponse, error)
	AddBalance(ctx context.Context, req *models.BalanceChangeRequest) (*models.BalanceChangeResponse, error)
	UpdateTuitionAmount(ctx context.Context, studentID string, amount decimal.Decimal) error
	GenerateOtp(ctx context.Context, req *models.GenerateOTPRequest) (*models.GenerateOTPResponse, error)
	VerifyOtp(ctx context.Context, transactionID, code string) (*models.VerifyOTPResponse, error)
	ClearOtp(ctx context.Context, transactionID string) error
	GetOtpInfo(ctx context.Context, transactionID string) (*models.OTPInfo, error)

	// NATS gateway
	PublishPaymentCreated(ctx context.Context, event *models.PaymentCreatedEvent) error
	PublishPaymentCompleted(ctx context.Context, event *models.PaymentCompletedEvent) error
	PublishPaymentFailed(ctx context.Context, event *models.PaymentFailedEvent) error
	PublishPaymentCancelled(ctx context.Context, event *models.PaymentCancelledEvent) error
	PublishOtpResendRequested(ctx context.Context, event *models.OtpResendRequestedEvent) error
}
