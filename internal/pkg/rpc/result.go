package rpc

import "encoding/json"

// Envelope is the wire shape of every reply
type Envelope struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   string          `json:"error,omitempty"`
	Code    string          `json:"code,omitempty"`
}

// Result is the typed outcome of a call that reached a handler
type Result[T any] struct {
	Ok     bool
	Value  T
	Reason string
	Code   string
}

// Err returns the business failure as an *Error, or nil when Ok
func (r Result[T]) Err() error {
	if r.Ok {
		return nil
	}
	return &Error{Code: r.Code, Message: r.Reason}
}

// Decode unmarshals a request payload for a handler
func Decode[T any](payload []byte) (T, error) {
	var v T
	if err := json.Unmarshal(payload, &v); err != nil {
		return v, BadRequest("invalid payload: " + err.Error())
	}
	return v, nil
}
