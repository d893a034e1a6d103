package api

import "fmt"

// DefaultGenerateError is used when a failed response carries no usable message
const DefaultGenerateError = "Failed to generate video"

// GenerationError means the server answered the generate call with a non-OK status
type GenerationError struct {
	StatusCode int
	Message    string
}

func (e *GenerationError) Error() string {
	return e.Message
}

// TransportError wraps network failures and malformed responses
type TransportError struct {
	Op  string // "generate" or "progress"
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}
