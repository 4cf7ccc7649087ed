package tui

import (
	"context"
	"errors"
	"regexp"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formwizard/pkg/application"
	"github.com/goliatone/go-formwizard/pkg/submission"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

type stubDriver struct {
	inputs       []string
	passwords    []string
	selectIdx    []int
	confirm      []bool
	prompts      []string
	infoMessages []string
	inputPos     int
	passPos      int
	selectPos    int
	confirmPos   int
}

func (s *stubDriver) Input(_ context.Context, cfg InputConfig) (string, error) {
	s.prompts = append(s.prompts, cfg.Message)
	if s.inputPos >= len(s.inputs) {
		return "", errors.New("no input scripted")
	}
	val := s.inputs[s.inputPos]
	s.inputPos++
	return val, nil
}

func (s *stubDriver) Password(_ context.Context, cfg InputConfig) (string, error) {
	s.prompts = append(s.prompts, cfg.Message)
	if s.passPos >= len(s.passwords) {
		return "", errors.New("no password scripted")
	}
	val := s.passwords[s.passPos]
	s.passPos++
	return val, nil
}

func (s *stubDriver) Confirm(_ context.Context, cfg ConfirmConfig) (bool, error) {
	s.prompts = append(s.prompts, cfg.Message)
	if s.confirmPos >= len(s.confirm) {
		return false, errors.New("no confirm scripted")
	}
	val := s.confirm[s.confirmPos]
	s.confirmPos++
	return val, nil
}

func (s *stubDriver) Select(_ context.Context, cfg SelectConfig) (int, error) {
	s.prompts = append(s.prompts, cfg.Message)
	if s.selectPos >= len(s.selectIdx) {
		return -1, errors.New("no select scripted")
	}
	val := s.selectIdx[s.selectPos]
	s.selectPos++
	return val, nil
}

func (s *stubDriver) Info(_ context.Context, msg string) error {
	s.infoMessages = append(s.infoMessages, msg)
	return nil
}

func (s *stubDriver) sawInfo(substr string) bool {
	for _, msg := range s.infoMessages {
		if strings.Contains(msg, substr) {
			return true
		}
	}
	return false
}

// happyPath scripts a complete application with overnight delivery and
// expedited processing.
func happyPath() *stubDriver {
	return &stubDriver{
		inputs: []string{
			// step 1: first, middle, last, dob, place of birth
			"John", "", "Doe", "1990-01-01", "",
			// step 2: email, phone, address, city, zip
			"john.doe@email.com", "(123) 456-7890", "123 Main Street", "Springfield", "62701",
			// step 3: name, relationship, phone
			"Jane Doe", "Spouse", "(123) 456-7891",
			// step 4: height, weight
			"173 cm", "68 kg",
		},
		passwords: []string{"123-45-6789"},
		// gender male, marital skip, state Alabama, eye brown, hair black,
		// delivery overnight, review submit
		selectIdx: []int{0, 0, 0, 0, 0, 2, reviewSubmit},
		// expedited, agree, certify
		confirm: []bool{true, true, true},
	}
}

func fixedSubmitter(id string) wizard.Option {
	return wizard.WithSubmitter(submission.SubmitterFunc(func(context.Context, application.ApplicationForm) (submission.Result, error) {
		return submission.Result{ApplicationID: id}, nil
	}))
}

func TestRun_CompletesApplication(t *testing.T) {
	driver := happyPath()
	c := wizard.New(fixedSubmitter("APP123"))

	receipt, err := New(WithPromptDriver(driver)).Run(context.Background(), c)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if receipt.ApplicationID != "APP123" {
		t.Fatalf("unexpected id %q", receipt.ApplicationID)
	}
	if receipt.Fee.String() != "$110.00" {
		t.Fatalf("expected $110.00, got %s", receipt.Fee)
	}

	form := c.Form()
	if form.State != "alabama" || form.MaritalStatus != "" || form.DeliveryMethod != "overnight" || !form.ExpeditedService {
		t.Fatalf("unexpected form %+v", form)
	}
	for _, want := range []string{
		"Step 1 of 5: Personal Info (20%)",
		"Step 5 of 5: Review & Submit (100%)",
		"Overnight Delivery",
		"$110.00",
		"Your application ID is APP123",
	} {
		if !driver.sawInfo(want) {
			t.Fatalf("expected info message containing %q, got %v", want, driver.infoMessages)
		}
	}
	if driver.inputPos != len(driver.inputs) || driver.selectPos != len(driver.selectIdx) || driver.confirmPos != len(driver.confirm) {
		t.Fatalf("prompts not consumed as expected")
	}
}

func TestRun_WithSimulatedBackendReturnsAPPID(t *testing.T) {
	driver := happyPath()
	c := wizard.New(wizard.WithSubmitter(submission.NewSimulated(submission.WithDelay(0), submission.WithSeed(7))))

	receipt, err := New(WithPromptDriver(driver)).Run(context.Background(), c)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if !regexp.MustCompile(`^APP\d{3}$`).MatchString(receipt.ApplicationID) {
		t.Fatalf("unexpected id %q", receipt.ApplicationID)
	}
}

func TestRun_RepromptsOnlyFailingFields(t *testing.T) {
	driver := happyPath()
	// Leave last name and date of birth empty, then fill them on the retry.
	driver.inputs[2] = ""
	driver.inputs[3] = ""
	retry := []string{"Doe", "1990-01-01"}
	driver.inputs = append(driver.inputs[:5], append(retry, driver.inputs[5:]...)...)

	c := wizard.New(fixedSubmitter("APP001"))
	if _, err := New(WithPromptDriver(driver)).Run(context.Background(), c); err != nil {
		t.Fatalf("run: %v", err)
	}

	wantStepOne := []string{
		"First Name *", "Middle Name", "Last Name *", "Date of Birth *", "Place of Birth",
		"Gender *", "Marital Status", "Social Security Number *",
		"Last Name *", "Date of Birth *",
		"Email Address *",
	}
	if diff := cmp.Diff(wantStepOne, driver.prompts[:len(wantStepOne)]); diff != "" {
		t.Fatalf("prompt order mismatch (-want +got):\n%s", diff)
	}
	if !driver.sawInfo("! Last name is required") || !driver.sawInfo("! Date of birth is required") {
		t.Fatalf("expected validation messages, got %v", driver.infoMessages)
	}
	if driver.sawInfo("First name is required") {
		t.Fatalf("did not expect a message for a valid field")
	}
}

func TestRun_ReviewStepRepromptsUncheckedBoxes(t *testing.T) {
	driver := happyPath()
	// certify=false and submit, then certify=true on retry and submit again.
	driver.confirm = []bool{false, true, false, true}
	driver.selectIdx = append(driver.selectIdx, reviewSubmit)

	c := wizard.New(fixedSubmitter("APP002"))
	receipt, err := New(WithPromptDriver(driver)).Run(context.Background(), c)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if receipt.ApplicationID != "APP002" || receipt.Fee.String() != "$60.00" {
		t.Fatalf("unexpected receipt %+v", receipt)
	}
	if !driver.sawInfo("You must certify the information is true") {
		t.Fatalf("expected certify message, got %v", driver.infoMessages)
	}
}

func TestRun_DeclineSubmission(t *testing.T) {
	driver := happyPath()
	driver.selectIdx[len(driver.selectIdx)-1] = reviewCancel

	c := wizard.New(fixedSubmitter("APP003"))
	_, err := New(WithPromptDriver(driver)).Run(context.Background(), c)
	if !errors.Is(err, ErrDeclined) {
		t.Fatalf("expected ErrDeclined, got %v", err)
	}
	if _, ok := c.Receipt(); ok {
		t.Fatalf("expected no receipt after declining")
	}
}

func TestRun_ReviewBackReturnsToPreviousStep(t *testing.T) {
	driver := happyPath()
	// back from review, re-answer step 4, then review again and submit.
	driver.inputs = append(driver.inputs, "180 cm", "70 kg")
	driver.selectIdx = []int{0, 0, 0, 0, 0, 2, reviewBack, 1, 1, 0, reviewSubmit}
	driver.confirm = append(driver.confirm, false, true, true)

	c := wizard.New(fixedSubmitter("APP321"))
	receipt, err := New(WithPromptDriver(driver)).Run(context.Background(), c)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if receipt.ApplicationID != "APP321" || receipt.Fee.String() != "$25.00" {
		t.Fatalf("unexpected receipt %+v", receipt)
	}

	form := c.Form()
	if form.Height != "180 cm" || form.EyeColor != "blue" || form.DeliveryMethod != "standard" || form.ExpeditedService {
		t.Fatalf("expected revised answers, got %+v", form)
	}
	steps := 0
	for _, msg := range driver.infoMessages {
		if strings.HasPrefix(msg, "Step 4 of 5") {
			steps++
		}
	}
	if steps != 2 {
		t.Fatalf("expected step 4 to be shown twice, got %d in %v", steps, driver.infoMessages)
	}
	if driver.inputPos != len(driver.inputs) || driver.selectPos != len(driver.selectIdx) || driver.confirmPos != len(driver.confirm) {
		t.Fatalf("prompts not consumed as expected")
	}
}

func TestRun_SubmissionFailureRetries(t *testing.T) {
	driver := happyPath()
	// submit, (fails) try again yes, submit.
	driver.confirm = append(driver.confirm, true)
	driver.selectIdx = append(driver.selectIdx, reviewSubmit)

	calls := 0
	c := wizard.New(wizard.WithSubmitter(submission.SubmitterFunc(func(context.Context, application.ApplicationForm) (submission.Result, error) {
		calls++
		if calls == 1 {
			return submission.Result{}, errors.New("backend unavailable")
		}
		return submission.Result{ApplicationID: "APP777"}, nil
	})))

	receipt, err := New(WithPromptDriver(driver)).Run(context.Background(), c)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	if receipt.ApplicationID != "APP777" || calls != 2 {
		t.Fatalf("unexpected result %+v after %d calls", receipt, calls)
	}
	if !driver.sawInfo(submission.DefaultErrorMessage) {
		t.Fatalf("expected generic failure message, got %v", driver.infoMessages)
	}
}

func TestRun_SubmissionFailureWithoutRetry(t *testing.T) {
	driver := happyPath()
	c := wizard.New(wizard.WithSubmitter(submission.SubmitterFunc(func(context.Context, application.ApplicationForm) (submission.Result, error) {
		return submission.Result{}, errors.New("backend unavailable")
	})))

	_, err := New(WithPromptDriver(driver), WithRetryPrompt(false)).Run(context.Background(), c)
	var subErr *submission.Error
	if !errors.As(err, &subErr) {
		t.Fatalf("expected *submission.Error, got %v", err)
	}
	if c.State().Submitting {
		t.Fatalf("expected submitting to be cleared")
	}
}

func TestRun_PropagatesAbort(t *testing.T) {
	driver := &stubDriver{}
	c := wizard.New(fixedSubmitter("APP001"))
	abort := &abortDriver{stubDriver: driver}

	_, err := New(WithPromptDriver(abort)).Run(context.Background(), c)
	if !errors.Is(err, ErrAborted) {
		t.Fatalf("expected ErrAborted, got %v", err)
	}
}

type abortDriver struct {
	*stubDriver
}

func (a *abortDriver) Input(context.Context, InputConfig) (string, error) {
	return "", ErrAborted
}

func TestMaxLengthValidator(t *testing.T) {
	if maxLength(0) != nil {
		t.Fatalf("expected no validator without a limit")
	}
	v := maxLength(5)
	if err := v("62701"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := v("627011"); err == nil {
		t.Fatalf("expected error for long input")
	}
}
