// Package tui drives the application wizard from a terminal. Each step's
// fields are prompted in catalog order; when a step fails validation only the
// failing fields are asked again. The review step prints the fee breakdown and
// submits after confirmation.
package tui

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"go.uber.org/zap"

	"github.com/goliatone/go-formwizard/pkg/application"
	"github.com/goliatone/go-formwizard/pkg/fees"
	"github.com/goliatone/go-formwizard/pkg/submission"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

const skipOption = "(skip)"

// Review step choices, in prompt order.
const (
	reviewSubmit = iota
	reviewBack
	reviewCancel
)

// Runner walks a wizard.Controller through its steps.
type Runner struct {
	driver PromptDriver
	out    io.Writer
	theme  Theme
	retry  bool
	logger *zap.Logger
}

// New constructs a Runner backed by survey unless a driver is supplied.
func New(options ...Option) *Runner {
	r := &Runner{
		out:    os.Stdout,
		theme:  DefaultTheme,
		retry:  true,
		logger: zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.driver == nil {
		r.driver = NewSurveyDriver(r.out)
	}
	return r
}

// Run prompts until the application is submitted and returns its receipt.
// The review step can go back to the previous step. Run returns ErrAborted on
// Ctrl+C and ErrDeclined when the applicant cancels on the review step.
func (r *Runner) Run(ctx context.Context, c *wizard.Controller) (wizard.Receipt, error) {
	if ctx == nil {
		return wizard.Receipt{}, errors.New("tui: context is required")
	}
	if c == nil {
		return wizard.Receipt{}, errors.New("tui: wizard controller is required")
	}

	for {
		step := c.State().CurrentStep
		if err := r.info(ctx, fmt.Sprintf("Step %d of %d: %s (%d%%)",
			step, wizard.TotalSteps, wizard.StepTitle(step), wizard.Progress(step))); err != nil {
			return wizard.Receipt{}, err
		}

		if step == wizard.TotalSteps {
			receipt, back, err := r.review(ctx, c)
			if err != nil || !back {
				return receipt, err
			}
			if err := c.Retreat(); err != nil {
				return wizard.Receipt{}, err
			}
			continue
		}
		if err := r.completeStep(ctx, c, application.FieldsForStep(step)); err != nil {
			return wizard.Receipt{}, err
		}
	}
}

// completeStep prompts fields and advances, re-prompting only the fields the
// controller rejects.
func (r *Runner) completeStep(ctx context.Context, c *wizard.Controller, fields []application.Field) error {
	pending := fields
	for {
		if err := r.promptFields(ctx, c, pending); err != nil {
			return err
		}
		err := c.Advance()
		if err == nil {
			return nil
		}
		var verr *wizard.ValidationError
		if !errors.As(err, &verr) {
			return err
		}
		if pending, err = r.reportInvalid(ctx, fields, verr); err != nil {
			return err
		}
	}
}

// review prompts the final step and submits. The bool result reports that the
// applicant chose to return to the previous step.
func (r *Runner) review(ctx context.Context, c *wizard.Controller) (wizard.Receipt, bool, error) {
	fields := application.FieldsForStep(wizard.TotalSteps)
	pending := fields
	for {
		if err := r.promptFields(ctx, c, pending); err != nil {
			return wizard.Receipt{}, false, err
		}
		pending = nil

		form := c.Form()
		if err := r.printFees(ctx, form); err != nil {
			return wizard.Receipt{}, false, err
		}
		choice, err := r.driver.Select(ctx, SelectConfig{
			Message: "Review complete",
			Options: []string{
				fmt.Sprintf("Submit application for %s", c.Fee()),
				"Back to " + wizard.StepTitle(wizard.TotalSteps-1),
				"Cancel",
			},
		})
		if err != nil {
			return wizard.Receipt{}, false, err
		}
		switch choice {
		case reviewSubmit:
		case reviewBack:
			return wizard.Receipt{}, true, nil
		default:
			return wizard.Receipt{}, false, ErrDeclined
		}

		receipt, err := c.Submit(ctx)
		if err == nil {
			r.logger.Info("application submitted from terminal", zap.String("application_id", receipt.ApplicationID))
			msg := fmt.Sprintf("Application submitted! Your application ID is %s.", receipt.ApplicationID)
			return receipt, false, r.info(ctx, msg)
		}

		var verr *wizard.ValidationError
		if errors.As(err, &verr) {
			if pending, err = r.reportInvalid(ctx, fields, verr); err != nil {
				return wizard.Receipt{}, false, err
			}
			continue
		}

		subErr := submission.AsError(err)
		if perr := r.fail(ctx, subErr.UserMessage()); perr != nil {
			return wizard.Receipt{}, false, perr
		}
		if !r.retry {
			return wizard.Receipt{}, false, subErr
		}
		again, perr := r.driver.Confirm(ctx, ConfirmConfig{Message: "Try again?", Default: true})
		if perr != nil {
			return wizard.Receipt{}, false, perr
		}
		if !again {
			return wizard.Receipt{}, false, subErr
		}
	}
}

// reportInvalid prints each failing message and returns the failing fields in
// catalog order.
func (r *Runner) reportInvalid(ctx context.Context, fields []application.Field, verr *wizard.ValidationError) ([]application.Field, error) {
	var failing []application.Field
	for _, field := range fields {
		msg, ok := verr.Fields[field.Name]
		if !ok {
			continue
		}
		if err := r.fail(ctx, msg); err != nil {
			return nil, err
		}
		failing = append(failing, field)
	}
	return failing, nil
}

func (r *Runner) printFees(ctx context.Context, form application.ApplicationForm) error {
	items := fees.Breakdown(form.ExpeditedService, form.DeliveryMethod)
	var total fees.Amount
	for _, item := range items {
		total += item.Amount
		if err := r.info(ctx, fmt.Sprintf("  %-24s %10s", item.Label, item.Amount)); err != nil {
			return err
		}
	}
	return r.info(ctx, fmt.Sprintf("  %-24s %10s", "Total", total))
}

func (r *Runner) promptFields(ctx context.Context, c *wizard.Controller, fields []application.Field) error {
	for _, field := range fields {
		value, err := r.promptField(ctx, c.Form(), field)
		if err != nil {
			return err
		}
		if err := c.SetField(field.Name, value); err != nil {
			return fmt.Errorf("tui: set %s: %w", field.Name, err)
		}
	}
	return nil
}

func (r *Runner) promptField(ctx context.Context, form application.ApplicationForm, field application.Field) (any, error) {
	help := field.Help
	if help == "" {
		help = field.Placeholder
	}

	switch field.Kind {
	case application.KindCheckbox:
		return r.driver.Confirm(ctx, ConfirmConfig{
			Message: field.Label,
			Default: form.Flag(field.Name),
			Help:    help,
		})
	case application.KindSelect:
		return r.promptSelect(ctx, form, field, help)
	}

	cfg := InputConfig{
		Message:   label(field),
		Default:   form.Text(field.Name),
		Help:      help,
		Validator: maxLength(field.MaxLength),
	}
	if field.Name == application.FieldSocialSecurityNumber {
		return r.driver.Password(ctx, cfg)
	}
	return r.driver.Input(ctx, cfg)
}

func (r *Runner) promptSelect(ctx context.Context, form application.ApplicationForm, field application.Field, help string) (string, error) {
	var (
		labels []string
		values []string
	)
	if !field.Required {
		labels = append(labels, skipOption)
		values = append(values, "")
	}
	current := form.Text(field.Name)
	defaultIndex := 0
	for _, opt := range field.Options {
		if opt.Value == current {
			defaultIndex = len(labels)
		}
		labels = append(labels, opt.Label)
		values = append(values, opt.Value)
	}

	idx, err := r.driver.Select(ctx, SelectConfig{
		Message:      label(field),
		Options:      labels,
		DefaultIndex: defaultIndex,
		Help:         help,
		PageSize:     10,
	})
	if err != nil {
		return "", err
	}
	if idx < 0 || idx >= len(values) {
		return "", nil
	}
	return values[idx], nil
}

func (r *Runner) info(ctx context.Context, msg string) error {
	return r.driver.Info(ctx, r.theme.InfoPrefix+msg)
}

func (r *Runner) fail(ctx context.Context, msg string) error {
	return r.driver.Info(ctx, r.theme.ErrorPrefix+msg)
}

func label(field application.Field) string {
	if field.Required {
		return field.Label + " *"
	}
	return field.Label
}

func maxLength(limit int) func(string) error {
	if limit <= 0 {
		return nil
	}
	return func(s string) error {
		if utf8.RuneCountInString(s) > limit {
			return fmt.Errorf("must be at most %d characters", limit)
		}
		return nil
	}
}
