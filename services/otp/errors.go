package otp

import "errors"

// ErrInvalidRequest is returned for requests missing a transaction id, address or code
var ErrInvalidRequest = errors.New("invalid otp request")
