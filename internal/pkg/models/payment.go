package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentStatus represents the lifecycle state of a tuition payment
type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "pending"
	PaymentStatusCompleted PaymentStatus = "completed"
	PaymentStatusFailed    PaymentStatus = "failed"
	PaymentStatusCancelled PaymentStatus = "cancelled"
)

// Payment is the audit record of a single tuition payment attempt
type Payment struct {
	ID            uuid.UUID       `json:"id" db:"id"`
	PayerID       string          `json:"payer_id" db:"payer_id"`
	StudentID     string          `json:"student_id" db:"student_id"`
	TuitionAmount decimal.Decimal `json:"tuition_amount" db:"tuition_amount"`
	PayerBalance  decimal.Decimal `json:"payer_balance" db:"payer_balance"`
	Status        PaymentStatus   `json:"status" db:"status"`
	CreatedAt     time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at" db:"updated_at"`
}

// CreatePaymentRequest is the inbound command that starts a payment saga
type CreatePaymentRequest struct {
	PayerID   string `json:"payer_id"`
	StudentID string `json:"student_id"`
	Amount    string `json:"amount"`
	Email     string `json:"email,omitempty"`
}

// StartPaymentResult is returned once the saga reaches the verification pause
type StartPaymentResult struct {
	SagaID    string        `json:"saga_id"`
	PaymentID uuid.UUID     `json:"payment_id"`
	Status    PaymentStatus `json:"status"`
	ExpiresIn int           `json:"otp_expires_in"`
}

// VerifyOtpRequest carries the passcode that resumes a paused saga
type VerifyOtpRequest struct {
	OtpCode string `json:"otp_code"`
}

// CompletePaymentResult is returned when the funds transfer succeeded
type CompletePaymentResult struct {
	PaymentID  uuid.UUID       `json:"payment_id"`
	Status     PaymentStatus   `json:"status"`
	NewBalance decimal.Decimal `json:"new_balance"`
}

// CancelPaymentRequest carries an optional human readable reason
type CancelPaymentRequest struct {
	Reason string `json:"reason"`
}

// ResendOtpResult tells the caller how long the new code will live
type ResendOtpResult struct {
	PaymentID uuid.UUID `json:"payment_id"`
	ExpiresIn int       `json:"expires_in"`
}
