package otp

import (
	"context"
	"errors"
	"time"

	"github.com/piresc/tuitionpay/internal/pkg/models"
)

//go:generate mockgen -destination=mocks/mock_repository.go -package=mocks github.com/piresc/tuitionpay/services/otp OTPRepo

// ErrRecordNotFound is returned when no record exists for a transaction
var ErrRecordNotFound = errors.New("otp record not found")

// UpdateFunc inspects a record and decides what to persist. Returning an error
// aborts the update without writing.
type UpdateFunc func(rec *models.OTPRecord) (models.OTPAction, error)

// OTPRepo stores passcode records and generation counters
type OTPRepo interface {
	// Create stores rec only if no record exists and reports whether it did
	Create(ctx context.Context, transactionID string, rec *models.OTPRecord, ttl time.Duration) (bool, error)
	Save(ctx context.Context, transactionID string, rec *models.OTPRecord, ttl time.Duration) error
	Get(ctx context.Context, transactionID string) (*models.OTPRecord, error)
	// Update runs fn against the current record atomically, keeping its remaining TTL
	Update(ctx context.Context, transactionID string, fn UpdateFunc) error
	Delete(ctx context.Context, transactionID string) (bool, error)

	IncrementRateLimit(ctx context.Context, email string, window time.Duration) (int64, error)
	// RefundRateLimit undoes one IncrementRateLimit that did not lead to a code
	RefundRateLimit(ctx context.Context, email string) error
}
