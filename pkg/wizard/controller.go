package wizard

import (
	"context"
	"errors"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-formwizard/pkg/application"
	"github.com/goliatone/go-formwizard/pkg/fees"
	"github.com/goliatone/go-formwizard/pkg/submission"
)

// State is the cursor and in-flight flag of a wizard.
type State struct {
	CurrentStep int  `json:"currentStep"`
	TotalSteps  int  `json:"totalSteps"`
	Submitting  bool `json:"submitting"`
}

// Receipt is returned by a successful Submit.
type Receipt struct {
	ApplicationID string      `json:"applicationId"`
	Fee           fees.Amount `json:"fee"`
	SubmittedAt   time.Time   `json:"submittedAt"`
}

// Controller owns the form record, the step cursor, the errors of the last
// validated step and the submission flag. It is safe for concurrent use; the
// submitter runs without the lock held.
type Controller struct {
	mu sync.Mutex

	form       application.ApplicationForm
	errors     ValidationErrors
	step       int
	submitting bool
	receipt    *Receipt

	submitter submission.Submitter
	now       func() time.Time
	logger    *zap.Logger
}

// Option configures a Controller.
type Option func(*Controller)

// WithSubmitter swaps the backend port. Defaults to submission.NewSimulated().
func WithSubmitter(s submission.Submitter) Option {
	return func(c *Controller) {
		if s != nil {
			c.submitter = s
		}
	}
}

// WithClock overrides time.Now for receipts.
func WithClock(now func() time.Time) Option {
	return func(c *Controller) {
		if now != nil {
			c.now = now
		}
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *zap.Logger) Option {
	return func(c *Controller) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// WithForm prefills the form record.
func WithForm(form application.ApplicationForm) Option {
	return func(c *Controller) {
		c.form = form
	}
}

// New starts a wizard on step 1.
func New(options ...Option) *Controller {
	c := &Controller{
		form:   application.New(),
		errors: make(ValidationErrors),
		step:   1,
		now:    time.Now,
		logger: zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}
	if c.submitter == nil {
		c.submitter = submission.NewSimulated(submission.WithLogger(c.logger))
	}
	return c
}

// SetField writes value and clears the error recorded for name, if any. No
// other validation runs.
func (c *Controller) SetField(name string, value any) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.mutableLocked(); err != nil {
		return err
	}
	if err := c.form.Set(name, value); err != nil {
		return err
	}
	delete(c.errors, name)
	return nil
}

// Validate replaces the recorded errors with the result of step's rule set
// and reports whether the step passed.
func (c *Controller) Validate(step int) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.validateLocked(step)
}

// Advance validates the current step and moves forward when it passes. The
// cursor saturates at TotalSteps. On failure the cursor stays and a
// *ValidationError lists the missing fields.
func (c *Controller) Advance() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.mutableLocked(); err != nil {
		return err
	}
	if !c.validateLocked(c.step) {
		c.logger.Debug("step blocked", zap.Int("step", c.step), zap.Strings("fields", c.errors.Fields()))
		return &ValidationError{Step: c.step, Fields: c.errors.clone()}
	}
	c.step = min(c.step+1, TotalSteps)
	return nil
}

// Retreat moves back one step without validating. It is a no-op on step 1
// and leaves recorded errors untouched.
func (c *Controller) Retreat() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if err := c.mutableLocked(); err != nil {
		return err
	}
	c.step = max(c.step-1, 1)
	return nil
}

// Submit validates the final step and hands a copy of the form to the
// submitter. Only one submission runs at a time; a concurrent call gets
// ErrSubmissionInFlight. The submitting flag is always cleared afterwards and
// failures come back as *submission.Error.
func (c *Controller) Submit(ctx context.Context) (Receipt, error) {
	if ctx == nil {
		return Receipt{}, errors.New("wizard: context is required")
	}

	c.mu.Lock()
	if err := c.mutableLocked(); err != nil {
		c.mu.Unlock()
		return Receipt{}, err
	}
	if c.step != TotalSteps {
		c.mu.Unlock()
		return Receipt{}, ErrNotFinalStep
	}
	if !c.validateLocked(c.step) {
		verr := &ValidationError{Step: c.step, Fields: c.errors.clone()}
		c.mu.Unlock()
		return Receipt{}, verr
	}
	c.submitting = true
	form := c.form
	fee := fees.Total(form.ExpeditedService, form.DeliveryMethod)
	submitter := c.submitter
	c.mu.Unlock()

	result, err := submitter.Submit(ctx, form)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.submitting = false

	if err != nil {
		c.logger.Warn("application submission failed", zap.Error(err))
		return Receipt{}, submission.AsError(err)
	}

	receipt := Receipt{
		ApplicationID: result.ApplicationID,
		Fee:           fee,
		SubmittedAt:   c.now(),
	}
	c.receipt = &receipt
	c.logger.Info("application submitted",
		zap.String("application_id", receipt.ApplicationID),
		zap.String("fee", fee.String()))
	return receipt, nil
}

// Fee derives the total from the current selections.
func (c *Controller) Fee() fees.Amount {
	c.mu.Lock()
	defer c.mu.Unlock()
	return fees.Total(c.form.ExpeditedService, c.form.DeliveryMethod)
}

// State returns the cursor and in-flight flag.
func (c *Controller) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return State{CurrentStep: c.step, TotalSteps: TotalSteps, Submitting: c.submitting}
}

// Errors returns a copy of the recorded validation errors.
func (c *Controller) Errors() ValidationErrors {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errors.clone()
}

// Form returns a copy of the form record.
func (c *Controller) Form() application.ApplicationForm {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.form
}

// Receipt returns the receipt of a completed submission.
func (c *Controller) Receipt() (Receipt, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.receipt == nil {
		return Receipt{}, false
	}
	return *c.receipt, true
}

func (c *Controller) validateLocked(step int) bool {
	c.errors = Check(c.form, step)
	return len(c.errors) == 0
}

func (c *Controller) mutableLocked() error {
	if c.submitting {
		return ErrSubmissionInFlight
	}
	if c.receipt != nil {
		return ErrCompleted
	}
	return nil
}
