package payment

import "errors"

// Validation errors are returned before any state is mutated
var (
	ErrInvalidRequest      = errors.New("invalid payment request")
	ErrInvalidAmount       = errors.New("amount must be a positive number")
	ErrNothingOwed         = errors.New("student has no outstanding tuition")
	ErrAmountMismatch      = errors.New("amount must equal the outstanding tuition")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrDuplicatePending    = errors.New("a pending payment already exists for this student")
	ErrLockContention      = errors.New("another payment for this student is in progress, try again")
	ErrPayerNotFound       = errors.New("payer not found")
	ErrStudentNotFound     = errors.New("student not found")
)

// Lifecycle errors
var (
	ErrPaymentNotFound   = errors.New("payment not found")
	ErrSagaNotFound      = errors.New("saga not found")
	ErrPaymentNotPending = errors.New("payment is not pending")
	ErrNotPaymentOwner   = errors.New("payment belongs to another payer")
	ErrResumeInProgress  = errors.New("payment verification is already in progress")
)

// OTP outcomes seen by the orchestrator
var (
	// ErrOtpInvalid is retryable: the payment stays pending
	ErrOtpInvalid = errors.New("invalid otp code")
	// ErrOtpTerminal means the payment was cancelled because its code expired or was exhausted
	ErrOtpTerminal = errors.New("otp can no longer be used, payment cancelled")
	// ErrOtpRateLimited is returned when too many codes were requested for an address
	ErrOtpRateLimited = errors.New("too many otp requests, try again later")
)

// ErrCollaborator wraps failures of the identity, ledger, balance and OTP services
var ErrCollaborator = errors.New("collaborator service failure")
