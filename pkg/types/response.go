// Package types holds the JSON envelopes every API response uses.
package types

// SuccessEnvelope wraps successful payloads under a single "data" key so
// clients can unmarshal uniformly.
type SuccessEnvelope struct {
	Data any `json:"data"`
}

// APIError is the client-facing error body. Code matches the error codes
// in pkg/errors; Details carries field-level validation messages when
// present.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorEnvelope wraps an APIError under a single "error" key.
type ErrorEnvelope struct {
	Error APIError `json:"error"`
}
