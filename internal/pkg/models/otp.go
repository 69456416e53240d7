package models

import (
	"fmt"
	"time"
)

// OTPRecord is the state of an outstanding one-time passcode, keyed by transaction id
type OTPRecord struct {
	Code      string    `json:"code"`
	Email     string    `json:"email"`
	StudentID string    `json:"studentId"`
	Attempts  int       `json:"attempts"`
	CreatedAt time.Time `json:"createdAt"`
	Verified  bool      `json:"verified"`
}

// OTPAction tells the repository what to do with a record after an update callback
type OTPAction int

const (
	OTPActionNone OTPAction = iota
	OTPActionSave
	OTPActionDelete
)

// OTPErrorKind classifies OTP failures
type OTPErrorKind string

const (
	OTPErrExpired             OTPErrorKind = "expired"
	OTPErrMaxAttemptsExceeded OTPErrorKind = "max_attempts_exceeded"
	OTPErrInvalidCode         OTPErrorKind = "invalid_code"
	OTPErrNotFound            OTPErrorKind = "not_found"
	OTPErrDuplicateRequest    OTPErrorKind = "duplicate_request"
	OTPErrRateLimited         OTPErrorKind = "rate_limited"
)

// OTPError is a typed OTP failure that survives the RPC boundary via its kind
type OTPError struct {
	Kind         OTPErrorKind
	Message      string
	AttemptsLeft int
}

func (e *OTPError) Error() string {
	if e.Kind == OTPErrInvalidCode {
		return fmt.Sprintf("%s: %d attempts left", e.Message, e.AttemptsLeft)
	}
	return e.Message
}

// NewOTPError builds an OTPError with the default message of its kind
func NewOTPError(kind OTPErrorKind) *OTPError {
	msg := "otp error"
	switch kind {
	case OTPErrExpired:
		msg = "otp expired or not found"
	case OTPErrMaxAttemptsExceeded:
		msg = "maximum otp attempts exceeded"
	case OTPErrInvalidCode:
		msg = "invalid otp code"
	case OTPErrNotFound:
		msg = "otp not found"
	case OTPErrDuplicateRequest:
		msg = "an active otp already exists for this transaction"
	case OTPErrRateLimited:
		msg = "too many otp requests"
	}
	return &OTPError{Kind: kind, Message: msg}
}

// GenerateOTPRequest is the payload of otp.generate
type GenerateOTPRequest struct {
	TransactionID     string `json:"transactionId"`
	Email             string `json:"email"`
	StudentID         string `json:"studentId"`
	SkipExistingCheck bool   `json:"skipExistingCheck,omitempty"`
}

// GenerateOTPResponse is the reply of otp.generate and otp.resend
type GenerateOTPResponse struct {
	TransactionID string `json:"transactionId"`
	ExpiresIn     int    `json:"expiresIn"`
}

// VerifyOTPRequest is the payload of otp.verify
type VerifyOTPRequest struct {
	TransactionID string `json:"transactionId"`
	Code          string `json:"code"`
}

// VerifyOTPResponse is the reply of otp.verify
type VerifyOTPResponse struct {
	Verified        bool `json:"verified"`
	AlreadyVerified bool `json:"alreadyVerified"`
}

// ResendOTPRequest is the payload of otp.resend. Missing contact fields are
// taken from the current record.
type ResendOTPRequest struct {
	TransactionID string `json:"transactionId"`
	Email         string `json:"email,omitempty"`
	StudentID     string `json:"studentId,omitempty"`
}

// TransactionRequest is the payload of otp.clear and otp.info
type TransactionRequest struct {
	TransactionID string `json:"transactionId"`
}

// OTPInfo describes an outstanding passcode without revealing it
type OTPInfo struct {
	Exists            bool `json:"exists"`
	Attempts          int  `json:"attempts"`
	RemainingAttempts int  `json:"remainingAttempts"`
	ExpiresIn         int  `json:"expiresIn"`
	Verified          bool `json:"verified"`
}

// ClearOTPResponse is the reply of otp.clear
type ClearOTPResponse struct {
	Cleared bool `json:"cleared"`
}
