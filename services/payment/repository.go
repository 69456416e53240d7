package payment

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/piresc/tuitionpay/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks github.com/piresc/tuitionpay/services/payment PaymentRepo

// PaymentRepo persists payments and their sagas
type PaymentRepo interface {
	// payments
	CreatePayment(ctx context.Context, p *models.Payment) error
	GetPaymentByID(ctx context.Context, id uuid.UUID) (*models.Payment, error)
	GetPendingPaymentByStudent(ctx context.Context, studentID string) (*models.Payment, error)
	ListPaymentsByPayer(ctx context.Context, payerID string) ([]*models.Payment, error)
	ListPaymentsByStudent(ctx context.Context, studentID string) ([]*models.Payment, error)
	ListStalePendingPayments(ctx context.Context, createdBefore time.Time) ([]*models.Payment, error)
	// TransitionPaymentStatus updates only while the row is still in from and reports whether it did
	TransitionPaymentStatus(ctx context.Context, id uuid.UUID, from, to models.PaymentStatus) (bool, error)
	SetPaymentStatus(ctx context.Context, id uuid.UUID, status models.PaymentStatus) error

	// sagas
	CreateSaga(ctx context.Context, s *models.Saga) error
	UpdateSaga(ctx context.Context, s *models.Saga) error
	GetSagaByID(ctx context.Context, id string) (*models.Saga, error)
	GetSagaByPaymentID(ctx context.Context, paymentID uuid.UUID) (*models.Saga, error)
	ListSagas(ctx context.Context, limit int) ([]*models.Saga, error)
}
