package domain

import (
	"fmt"
	"strings"
)

// BackendError is a non-success response from the salon backend. Detail holds
// the plain-text response body, which the backend uses for error messages.
// Err carries the transport cause when the request never produced a response,
// so context cancellation stays visible through errors.Is.
type BackendError struct {
	Resource string
	Status   int
	Detail   string
	Err      error
}

func (e *BackendError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("%s: backend returned %d", e.Resource, e.Status)
	}
	return fmt.Sprintf("%s: backend returned %d: %s", e.Resource, e.Status, e.Detail)
}

func (e *BackendError) Unwrap() error { return e.Err }

// PrepareError aggregates the reads that failed while assembling the booking
// form. The form is never rendered partially: one failed read voids all three.
type PrepareError struct {
	Failures []*BackendError
}

func (e *PrepareError) Error() string {
	msgs := make([]string, 0, len(e.Failures))
	for _, f := range e.Failures {
		msgs = append(msgs, f.Error())
	}
	return "loading booking data failed: " + strings.Join(msgs, "; ")
}

// ParseError marks a form field that could not be read as a base-10 integer.
// This is a caller error, never retried.
type ParseError struct {
	Field string
	Value string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("field %q: %q is not a valid id", e.Field, e.Value)
}

// SubmitError carries the backend's own message for a rejected create. Its
// Error() is exactly the server-provided detail so the UI can surface it
// verbatim, with a generic fallback when the body was empty.
type SubmitError struct {
	Status int
	Detail string
}

const genericSubmitFailure = "failed to create appointment"

func (e *SubmitError) Error() string {
	if e.Detail == "" {
		return genericSubmitFailure
	}
	return e.Detail
}
