package constants

// RPC failure codes carried in reply envelopes
const (
	CodeInternal       = "internal"
	CodeBadRequest     = "bad_request"
	CodeNotFound       = "not_found"
	CodeInsufficient   = "insufficient_balance"
	CodeOTPExpired     = "expired"
	CodeOTPMaxAttempts = "max_attempts_exceeded"
	CodeOTPInvalid     = "invalid_code"
	CodeOTPNotFound    = "not_found"
	CodeOTPDuplicate   = "duplicate_request"
	CodeOTPRateLimited = "rate_limited"
)
