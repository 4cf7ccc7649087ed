package status_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/goliatone/go-formwizard/pkg/status"
)

func seeded(t *testing.T) *status.Directory {
	t.Helper()
	dir, err := status.NewSeededDirectory()
	if err != nil {
		t.Fatalf("seed directory: %v", err)
	}
	return dir
}

func TestDirectoryLookupKnownRecord(t *testing.T) {
	dir := seeded(t)

	rec, err := dir.Lookup(context.Background(), "APP001", "john.doe@email.com")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if rec.Progress != 75 || rec.Status != "In Review" || rec.Service != "National ID Card" {
		t.Fatalf("unexpected record %+v", rec)
	}
	if len(rec.StatusHistory) != 4 || len(rec.NextSteps) != 3 || len(rec.SupportDocuments) != 3 {
		t.Fatalf("unexpected record detail sizes: %d %d %d",
			len(rec.StatusHistory), len(rec.NextSteps), len(rec.SupportDocuments))
	}

	done, err := dir.Lookup(context.Background(), "APP002", "john.doe@email.com")
	if err != nil {
		t.Fatalf("lookup APP002: %v", err)
	}
	want := status.ApplicationRecord{
		ID:            "APP002",
		Service:       "Birth Certificate",
		Status:        "Completed",
		Progress:      100,
		SubmittedDate: "2024-01-10",
		LastUpdated:   "2024-01-12",
		CompletedDate: "2024-01-12",
		ApplicantName: "John Doe",
		Fee:           "$15.00",
		PaymentStatus: "Paid",
	}
	got := done
	got.StatusHistory, got.NextSteps, got.SupportDocuments = nil, nil, nil
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("APP002 mismatch (-want +got):\n%s", diff)
	}
}

func TestDirectoryLookupIsCaseInsensitive(t *testing.T) {
	dir := seeded(t)
	rec, err := dir.Lookup(context.Background(), " app001 ", "a@b.c")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if rec.ID != "APP001" {
		t.Fatalf("expected APP001, got %q", rec.ID)
	}
}

func TestDirectoryLookupNotFound(t *testing.T) {
	dir := seeded(t)
	_, err := dir.Lookup(context.Background(), "UNKNOWN", "a@b.c")
	if !errors.Is(err, status.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	var nf *status.NotFoundError
	if !errors.As(err, &nf) || nf.ID != "UNKNOWN" {
		t.Fatalf("expected *NotFoundError for UNKNOWN, got %v", err)
	}
	if nf.UserMessage() != status.NotFoundMessage {
		t.Fatalf("unexpected message %q", nf.UserMessage())
	}
}

func TestDirectoryLookupRequiresBothCredentials(t *testing.T) {
	dir := seeded(t)
	cases := []struct{ id, email string }{
		{"", "a@b.c"},
		{"APP001", ""},
		{"  ", "  "},
	}
	for _, tc := range cases {
		if _, err := dir.Lookup(context.Background(), tc.id, tc.email); !errors.Is(err, status.ErrMissingCredentials) {
			t.Fatalf("lookup(%q, %q): expected ErrMissingCredentials, got %v", tc.id, tc.email, err)
		}
	}
}

func TestDirectoryLookupReturnsIndependentCopies(t *testing.T) {
	dir := seeded(t)
	first, _ := dir.Lookup(context.Background(), "APP001", "a@b.c")
	first.NextSteps[0] = "mutated"

	second, _ := dir.Lookup(context.Background(), "APP001", "a@b.c")
	if second.NextSteps[0] == "mutated" {
		t.Fatalf("lookup leaked internal slice")
	}
}

func TestDirectoryDelayHonorsContext(t *testing.T) {
	dir, err := status.NewSeededDirectory(status.WithDelay(time.Hour))
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := dir.Lookup(ctx, "APP001", "a@b.c"); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestDirectoryDashboard(t *testing.T) {
	dir := seeded(t)
	got := dir.Dashboard()

	type row struct {
		ID, Status, Tone, Due string
		Progress              int
	}
	var rows []row
	for _, s := range got {
		rows = append(rows, row{ID: s.ID, Status: s.Status, Tone: s.Tone, Due: s.DueDate(), Progress: s.Progress})
	}
	want := []row{
		{ID: "APP001", Status: "In Review", Tone: status.ToneWarning, Due: "2024-01-22", Progress: 75},
		{ID: "APP002", Status: "Completed", Tone: status.ToneSuccess, Due: "2024-01-12", Progress: 100},
		{ID: "APP003", Status: "Payment Pending", Tone: status.ToneDanger, Due: "2024-02-03", Progress: 25},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Fatalf("dashboard mismatch (-want +got):\n%s", diff)
	}
}

func TestDirectoryPutAndLoadYAML(t *testing.T) {
	dir := status.NewDirectory()
	dir.Put(status.ApplicationRecord{ID: "app900", Status: "Processing"})

	rec, err := dir.Lookup(context.Background(), "APP900", "a@b.c")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if rec.Status != "Processing" {
		t.Fatalf("unexpected record %+v", rec)
	}

	if err := dir.LoadYAML([]byte("records:\n  - service: nameless\n")); err == nil {
		t.Fatalf("expected error for record without id")
	}
	if err := dir.LoadYAML([]byte("records: [")); err == nil {
		t.Fatalf("expected decode error")
	}
}

func TestTone(t *testing.T) {
	cases := map[string]string{
		"Completed":       status.ToneSuccess,
		"In Review":       status.ToneWarning,
		"Processing":      status.ToneInfo,
		"Payment Pending": status.ToneDanger,
		"Quality Check":   status.ToneNeutral,
		"":                status.ToneNeutral,
	}
	for in, want := range cases {
		if got := status.Tone(in); got != want {
			t.Fatalf("Tone(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestHTTPClientLookup(t *testing.T) {
	var gotPath, gotEmail string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotEmail = r.URL.Query().Get("email")
		if r.URL.Path != "/v1/applications/APP001" {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"APP001","status":"In Review","progress":75}`))
	}))
	defer srv.Close()

	client, err := status.NewHTTPClient(srv.URL+"/v1", status.WithHTTPClient(srv.Client()))
	if err != nil {
		t.Fatalf("new client: %v", err)
	}

	rec, err := client.Lookup(context.Background(), "app001", "john@example.com")
	if err != nil {
		t.Fatalf("lookup: %v", err)
	}
	if rec.Progress != 75 || gotPath != "/v1/applications/APP001" || gotEmail != "john@example.com" {
		t.Fatalf("unexpected result rec=%+v path=%q email=%q", rec, gotPath, gotEmail)
	}

	if _, err := client.Lookup(context.Background(), "APP404", "john@example.com"); !errors.Is(err, status.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
	if _, err := client.Lookup(context.Background(), "APP001", ""); !errors.Is(err, status.ErrMissingCredentials) {
		t.Fatalf("expected ErrMissingCredentials, got %v", err)
	}
}

func TestHTTPClientServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client, err := status.NewHTTPClient(srv.URL)
	if err != nil {
		t.Fatalf("new client: %v", err)
	}
	_, err = client.Lookup(context.Background(), "APP001", "a@b.c")
	if err == nil || errors.Is(err, status.ErrNotFound) {
		t.Fatalf("expected generic error, got %v", err)
	}
}

func TestNewHTTPClientRequiresBaseURL(t *testing.T) {
	if _, err := status.NewHTTPClient("  "); err == nil {
		t.Fatalf("expected error for empty base url")
	}
}
