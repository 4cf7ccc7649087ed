package tui

import "errors"

var (
	// ErrAborted signals the user aborted input (e.g., Ctrl+C).
	ErrAborted = errors.New("tui: aborted")
	// ErrDeclined is returned when the applicant chooses not to submit on the
	// review step.
	ErrDeclined = errors.New("tui: submission declined")
)
