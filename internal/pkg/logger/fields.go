package logger

import (
	"time"

	"go.uber.org/zap"
)

// Field type alias for better abstraction
type Field = zap.Field

// Field construction functions so callers do not import zap directly

// String constructs a field that carries a string value
func String(key, val string) Field {
	return zap.String(key, val)
}

// Err constructs a field that carries an error
func Err(err error) Field {
	return zap.Error(err)
}

// Int constructs a field that carries an int value
func Int(key string, val int) Field {
	return zap.Int(key, val)
}

// Int64 constructs a field that carries an int64 value
func Int64(key string, val int64) Field {
	return zap.Int64(key, val)
}

// Bool constructs a field that carries a boolean value
func Bool(key string, val bool) Field {
	return zap.Bool(key, val)
}

// Any constructs a field that carries an arbitrary value
func Any(key string, val interface{}) Field {
	return zap.Any(key, val)
}

// Duration constructs a field that carries a time.Duration value
func Duration(key string, val time.Duration) Field {
	return zap.Duration(key, val)
}

// Strings constructs a field that carries a slice of strings
func Strings(key string, val []string) Field {
	return zap.Strings(key, val)
}

// PaymentID tags a log line with the payment under work
func PaymentID(id string) Field {
	return zap.String("payment_id", id)
}

// SagaID tags a log line with the saga under work
func SagaID(id string) Field {
	return zap.String("saga_id", id)
}

// Step tags a log line with a saga step id
func Step(id string) Field {
	return zap.String("step", id)
}

// TransactionID tags a log line with an OTP transaction id
func TransactionID(id string) Field {
	return zap.String("transaction_id", id)
}
