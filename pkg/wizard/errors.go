package wizard

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// ErrSubmissionInFlight rejects mutations and repeat submits while a
	// submission is running.
	ErrSubmissionInFlight = errors.New("wizard: submission already in progress")
	// ErrNotFinalStep is returned when Submit is called before the last step.
	ErrNotFinalStep = errors.New("wizard: submit is only allowed on the final step")
	// ErrCompleted is returned by mutations after a successful submission.
	ErrCompleted = errors.New("wizard: application already submitted")
)

// ValidationErrors maps a field name to its message. A field is present only
// while it fails its rule.
type ValidationErrors map[string]string

// Fields returns the failing field names, sorted.
func (v ValidationErrors) Fields() []string {
	names := make([]string, 0, len(v))
	for name := range v {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

func (v ValidationErrors) clone() ValidationErrors {
	out := make(ValidationErrors, len(v))
	for k, msg := range v {
		out[k] = msg
	}
	return out
}

// ValidationError reports the fields that blocked a step transition.
type ValidationError struct {
	Step   int
	Fields ValidationErrors
}

func (e *ValidationError) Error() string {
	if e == nil {
		return ""
	}
	return fmt.Sprintf("wizard: step %d has %d invalid field(s): %s",
		e.Step, len(e.Fields), strings.Join(e.Fields.Fields(), ", "))
}
