package study

import (
	"errors"
	"fmt"
)

// ErrEmptyMessage is returned when a chat message has no content.
var ErrEmptyMessage = errors.New("empty chat message")

// ValidationError reports missing input before any call was made.
type ValidationError struct {
	Action  Action
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// TransportError reports a failed provider call. Message carries the
// localized prefix followed by the underlying error text.
type TransportError struct {
	Action  Action
	Message string
	Err     error
}

func (e *TransportError) Error() string { return e.Message }

func (e *TransportError) Unwrap() error { return e.Err }

// InvalidResponseError reports a payload that does not match the expected
// shape. Message is fixed per action; Fields lists the offending JSON
// pointers when known.
type InvalidResponseError struct {
	Action  Action
	Message string
	Fields  []string
	Err     error
}

func (e *InvalidResponseError) Error() string { return e.Message }

func (e *InvalidResponseError) Unwrap() error { return e.Err }

// errDomain reports a decoded payload that breaks a domain rule.
type errDomain struct {
	field  string
	reason string
}

func (e *errDomain) Error() string {
	return fmt.Sprintf("%s: %s", e.field, e.reason)
}
