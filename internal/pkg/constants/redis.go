package constants

// Redis key formats
const (
	KeyOTP          = "otp:%s"            // Format: otp:{transaction_id}
	KeyOTPRateLimit = "otp_rate_limit:%s" // Format: otp_rate_limit:{email}
	KeyLock         = "lock:%s"           // Format: lock:{student_id}
)
