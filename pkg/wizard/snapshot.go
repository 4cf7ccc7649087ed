package wizard

import (
	"github.com/goliatone/go-formwizard/pkg/application"
	"github.com/goliatone/go-formwizard/pkg/fees"
)

// Snapshot is a read-only copy of everything a front end needs to draw the
// current step.
type Snapshot struct {
	Step       int                         `json:"step"`
	TotalSteps int                         `json:"totalSteps"`
	Progress   int                         `json:"progress"`
	StepTitle  string                      `json:"stepTitle"`
	Form       application.ApplicationForm `json:"form"`
	Errors     ValidationErrors            `json:"errors"`
	Fee        fees.Amount                 `json:"-"`
	FeeTotal   float64                     `json:"feeTotal"`
	FeeItems   []fees.LineItem             `json:"feeItems"`
	Submitting bool                        `json:"submitting"`
	Submitted  bool                        `json:"submitted"`
}

// Snapshot captures the controller state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	fee := fees.Total(c.form.ExpeditedService, c.form.DeliveryMethod)
	return Snapshot{
		Step:       c.step,
		TotalSteps: TotalSteps,
		Progress:   Progress(c.step),
		StepTitle:  StepTitle(c.step),
		Form:       c.form,
		Errors:     c.errors.clone(),
		Fee:        fee,
		FeeTotal:   fee.Dollars(),
		FeeItems:   fees.Breakdown(c.form.ExpeditedService, c.form.DeliveryMethod),
		Submitting: c.submitting,
		Submitted:  c.receipt != nil,
	}
}

// Progress is the completion percentage shown for step.
func Progress(step int) int {
	step = min(max(step, 0), TotalSteps)
	return step * 100 / TotalSteps
}
