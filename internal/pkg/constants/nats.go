package constants

// RPC subjects, addressed as <target>.<method>
const (
	// Users collaborator
	TargetUsers          = "users"
	MethodGetUser        = "get"
	MethodDeductBalance  = "deduct_balance"
	MethodAddBalance     = "add_balance"
	SubjectUsersGet      = "users.get"
	SubjectUsersDeduct   = "users.deduct_balance"
	SubjectUsersAddFunds = "users.add_balance"

	// Students collaborator
	TargetStudents        = "students"
	MethodLookup          = "lookup"
	SubjectStudentsLookup = "students.lookup"

	// Tuition collaborator
	TargetTuition        = "tuition"
	MethodUpdateAmount   = "update_amount"
	SubjectTuitionUpdate = "tuition.update_amount"

	// OTP service
	TargetOTP      = "otp"
	MethodGenerate = "generate"
	MethodVerify   = "verify"
	MethodResend   = "resend"
	MethodClear    = "clear"
	MethodInfo     = "info"

	SubjectOTPGenerate = "otp.generate"
	SubjectOTPVerify   = "otp.verify"
	SubjectOTPResend   = "otp.resend"
	SubjectOTPClear    = "otp.clear"
	SubjectOTPInfo     = "otp.info"
)

// Event subjects persisted in JetStream
const (
	SubjectPaymentCreated   = "payment.created"
	SubjectPaymentCompleted = "payment.completed"
	SubjectPaymentFailed    = "payment.failed"
	SubjectPaymentCancelled = "payment.cancelled"

	SubjectOTPGenerated       = "otp.generated"
	SubjectOTPResendRequested = "otp.resend_requested"
)

// JetStream streams and durable consumers
const (
	StreamPaymentEvents = "PAYMENT_EVENTS"
	StreamOTPEvents     = "OTP_EVENTS"

	ConsumerPaymentCancelled    = "payment_cancelled_consumer"
	ConsumerOTPPaymentCompleted = "otp_payment_completed_consumer"
	ConsumerOTPPaymentCancelled = "otp_payment_cancelled_consumer"
	ConsumerOTPResendRequested  = "otp_resend_requested_consumer"
)

// Message headers
const (
	HeaderCorrelationID = "Correlation-Id"
	HeaderStatus        = "Status"
	StatusNoResponders  = "503"
)
