package payment

import (
	"context"

	"github.com/google/uuid"
	"github.com/piresc/tuitionpay/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_usecase.go -package=mocks github.com/piresc/tuitionpay/services/payment PaymentUC

// PaymentUC is the saga orchestrator of tuition payments
type PaymentUC interface {
	// saga operations
	StartPayment(ctx context.Context, req *models.CreatePaymentRequest) (*models.StartPaymentResult, error)
	VerifyOtpAndCompletePayment(ctx context.Context, paymentID uuid.UUID, payerID, otpCode string) (*models.CompletePaymentResult, error)
	CancelPayment(ctx context.Context, paymentID uuid.UUID, payerID, reason string) error
	HandlePaymentCancelled(ctx context.Context, event *models.PaymentCancelledEvent) error
	CleanupStalePayments(ctx context.Context) (int, error)

	// otp helpers
	ResendOtp(ctx context.Context, paymentID uuid.UUID, payerID, email string) (*models.ResendOtpResult, error)
	GetOtpInfo(ctx context.Context, paymentID uuid.UUID) (*models.OTPInfo, error)

	// queries
	GetPayment(ctx context.Context, paymentID uuid.UUID) (*models.Payment, error)
	GetPaymentsByPayer(ctx context.Context, payerID string) ([]*models.Payment, error)
	GetPaymentsByStudent(ctx context.Context, studentID string) ([]*models.Payment, error)
	GetSaga(ctx context.Context, sagaID string) (*models.Saga, error)
	GetAllSagas(ctx context.Context, limit int) ([]*models.Saga, error)
}
