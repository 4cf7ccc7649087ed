// Package submission defines the boundary between the application wizard and
// whatever backend accepts completed applications. The wizard is written
// against Submitter; Simulated stands in for the backend until a real one is
// wired through HTTPClient.
package submission

import (
	"context"
	"errors"

	"github.com/goliatone/go-formwizard/pkg/application"
)

// DefaultErrorMessage is shown to applicants when a submission fails.
const DefaultErrorMessage = "Error submitting application. Please try again."

// Result is the backend acknowledgement of an accepted application.
type Result struct {
	ApplicationID string `json:"applicationId"`
}

// Submitter sends a completed application to the backend.
type Submitter interface {
	Submit(ctx context.Context, form application.ApplicationForm) (Result, error)
}

// SubmitterFunc adapts a function into a Submitter.
type SubmitterFunc func(ctx context.Context, form application.ApplicationForm) (Result, error)

// Submit calls fn.
func (fn SubmitterFunc) Submit(ctx context.Context, form application.ApplicationForm) (Result, error) {
	return fn(ctx, form)
}

// Error is the single failure kind reported by submitters. No state is
// committed on failure, so a retry is always safe.
type Error struct {
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Message
	if msg == "" {
		msg = DefaultErrorMessage
	}
	if e.Err != nil {
		return "submission: " + msg + ": " + e.Err.Error()
	}
	return "submission: " + msg
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Retryable reports whether the applicant should try again. Transient and
// permanent failures are not distinguished, so it is always true.
func (e *Error) Retryable() bool { return true }

// UserMessage returns the notice shown to the applicant.
func (e *Error) UserMessage() string {
	if e == nil || e.Message == "" {
		return DefaultErrorMessage
	}
	return e.Message
}

// NewError wraps cause with the default applicant message.
func NewError(cause error) *Error {
	return &Error{Message: DefaultErrorMessage, Err: cause}
}

// AsError returns err as a *Error, wrapping foreign errors so callers see a
// single failure kind. Context cancellation is wrapped too; errors.Is still
// reaches the cause.
func AsError(err error) *Error {
	if err == nil {
		return nil
	}
	var subErr *Error
	if errors.As(err, &subErr) {
		return subErr
	}
	return NewError(err)
}
