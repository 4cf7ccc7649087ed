// Package status answers "where is my application?" queries. Lookup is the
// port used by front ends; Directory is the in-memory adapter seeded with demo
// records and HTTPClient forwards to a remote service.
package status

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

const (
	// MissingCredentialsMessage is shown when either the id or the email is blank.
	MissingCredentialsMessage = "Please enter both Application ID and email address"
	// NotFoundMessage is shown when no record matches the id.
	NotFoundMessage = "Application not found. Please check your Application ID and try again."
)

var (
	// ErrMissingCredentials is returned when id or email is empty.
	ErrMissingCredentials = errors.New(MissingCredentialsMessage)
	// ErrNotFound matches every *NotFoundError through errors.Is.
	ErrNotFound = errors.New("status: application not found")
)

// Lookup resolves an application record by id. The email is required but
// not matched against the record.
type Lookup interface {
	Lookup(ctx context.Context, id, email string) (ApplicationRecord, error)
}

// LookupFunc adapts a function to Lookup.
type LookupFunc func(ctx context.Context, id, email string) (ApplicationRecord, error)

// Lookup implements Lookup.
func (f LookupFunc) Lookup(ctx context.Context, id, email string) (ApplicationRecord, error) {
	return f(ctx, id, email)
}

// HistoryEntry is one line of the status timeline.
type HistoryEntry struct {
	Date        string `json:"date" yaml:"date"`
	Status      string `json:"status" yaml:"status"`
	Description string `json:"description" yaml:"description"`
}

// SupportDocument is a document attached to an application.
type SupportDocument struct {
	Name       string `json:"name" yaml:"name"`
	Status     string `json:"status" yaml:"status"`
	UploadDate string `json:"uploadDate" yaml:"uploadDate"`
}

// ApplicationRecord is the full status of a submitted application.
type ApplicationRecord struct {
	ID                  string            `json:"id" yaml:"id"`
	Service             string            `json:"service" yaml:"service"`
	Status              string            `json:"status" yaml:"status"`
	Progress            int               `json:"progress" yaml:"progress"`
	SubmittedDate       string            `json:"submittedDate" yaml:"submittedDate"`
	LastUpdated         string            `json:"lastUpdated,omitempty" yaml:"lastUpdated"`
	EstimatedCompletion string            `json:"estimatedCompletion,omitempty" yaml:"estimatedCompletion"`
	CompletedDate       string            `json:"completedDate,omitempty" yaml:"completedDate"`
	ApplicantName       string            `json:"applicantName" yaml:"applicantName"`
	Fee                 string            `json:"fee" yaml:"fee"`
	PaymentStatus       string            `json:"paymentStatus" yaml:"paymentStatus"`
	StatusHistory       []HistoryEntry    `json:"statusHistory" yaml:"statusHistory"`
	NextSteps           []string          `json:"nextSteps" yaml:"nextSteps"`
	SupportDocuments    []SupportDocument `json:"supportDocuments" yaml:"supportDocuments"`
}

// Summary is the dashboard view of an application.
type Summary struct {
	ID                  string `json:"id" yaml:"id"`
	Service             string `json:"service" yaml:"service"`
	Status              string `json:"status" yaml:"status"`
	Progress            int    `json:"progress" yaml:"progress"`
	SubmittedDate       string `json:"submittedDate" yaml:"submittedDate"`
	EstimatedCompletion string `json:"estimatedCompletion,omitempty" yaml:"estimatedCompletion"`
	CompletedDate       string `json:"completedDate,omitempty" yaml:"completedDate"`
	Fee                 string `json:"fee" yaml:"fee"`
	Tone                string `json:"tone" yaml:"-"`
}

// DueDate is the completion date when known, else the estimate.
func (s Summary) DueDate() string {
	if s.CompletedDate != "" {
		return s.CompletedDate
	}
	return s.EstimatedCompletion
}

// NotFoundError reports an unknown application id.
type NotFoundError struct {
	ID string
}

func (e *NotFoundError) Error() string {
	if e == nil || e.ID == "" {
		return NotFoundMessage
	}
	return fmt.Sprintf("%s (id %s)", NotFoundMessage, e.ID)
}

// Is lets errors.Is(err, ErrNotFound) match.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// UserMessage is the text shown to the applicant.
func (e *NotFoundError) UserMessage() string {
	return NotFoundMessage
}

// NormalizeID trims and upper-cases an application id.
func NormalizeID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}

func checkCredentials(id, email string) error {
	if strings.TrimSpace(id) == "" || strings.TrimSpace(email) == "" {
		return ErrMissingCredentials
	}
	return nil
}
