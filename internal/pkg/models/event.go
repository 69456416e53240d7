package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Event types carried on the event bus
const (
	EventPaymentCreated     = "PaymentCreated"
	EventPaymentCompleted   = "PaymentCompleted"
	EventPaymentFailed      = "PaymentFailed"
	EventPaymentCancelled   = "PaymentCancelled"
	EventOtpGenerated       = "OtpGenerated"
	EventOtpResendRequested = "OtpResendRequested"
)

// Cancellation reasons
const (
	CancelReasonTimeout         = "timeout"
	CancelReasonMaxOtpAttempts  = "max_otp_attempts"
	CancelReasonOtpExpired      = "otp_expired"
	CancelReasonUserCancelled   = "user_cancelled"
	CancelReasonSagaCompensated = "saga_compensated"
)

// Event is the envelope of every published domain event
type Event struct {
	Type string          `json:"type"`
	Data json.RawMessage `json:"data"`
}

// NewEvent wraps a payload into an Event envelope
func NewEvent(eventType string, data interface{}) (Event, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return Event{}, err
	}
	return Event{Type: eventType, Data: raw}, nil
}

// PaymentCreatedEvent is published once the payment row is persisted
type PaymentCreatedEvent struct {
	PaymentID uuid.UUID       `json:"paymentId"`
	SagaID    string          `json:"sagaId"`
	PayerID   string          `json:"payerId"`
	StudentID string          `json:"studentId"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"createdAt"`
}

// PaymentCompletedEvent is published after a successful funds transfer
type PaymentCompletedEvent struct {
	PaymentID   uuid.UUID       `json:"paymentId"`
	SagaID      string          `json:"sagaId"`
	PayerID     string          `json:"payerId"`
	StudentID   string          `json:"studentId"`
	Amount      decimal.Decimal `json:"amount"`
	NewBalance  decimal.Decimal `json:"newBalance"`
	Email       string          `json:"email,omitempty"`
	CompletedAt time.Time       `json:"completedAt"`
}

// PaymentFailedEvent is published when a saga fails and compensates
type PaymentFailedEvent struct {
	PaymentID uuid.UUID `json:"paymentId"`
	SagaID    string    `json:"sagaId"`
	PayerID   string    `json:"payerId"`
	Error     string    `json:"error"`
	FailedAt  time.Time `json:"failedAt"`
}

// PaymentCancelledEvent is published for every terminal cancellation path
type PaymentCancelledEvent struct {
	PaymentID   string    `json:"paymentId"`
	SagaID      string    `json:"sagaId,omitempty"`
	PayerID     string    `json:"payerId,omitempty"`
	StudentID   string    `json:"studentId,omitempty"`
	Reason      string    `json:"reason"`
	CancelledAt time.Time `json:"cancelledAt"`
}

// OtpGeneratedEvent asks the notification side to deliver a passcode
type OtpGeneratedEvent struct {
	TransactionID string    `json:"transactionId"`
	Email         string    `json:"email"`
	StudentID     string    `json:"studentId"`
	Code          string    `json:"otpCode"`
	ExpiresIn     int       `json:"expiresIn"`
	GeneratedAt   time.Time `json:"generatedAt"`
}

// OtpResendRequestedEvent asks the OTP service to replace the code of a transaction.
// Email and StudentID let the code be reissued even when the old record is gone.
type OtpResendRequestedEvent struct {
	TransactionID string    `json:"transactionId"`
	Email         string    `json:"email,omitempty"`
	StudentID     string    `json:"studentId,omitempty"`
	RequestedAt   time.Time `json:"requestedAt"`
}
