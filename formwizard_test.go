package formwizard

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"testing/fstest"

	"github.com/google/go-cmp/cmp"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/goliatone/go-formwizard/pkg/application"
	"github.com/goliatone/go-formwizard/pkg/status"
	"github.com/goliatone/go-formwizard/pkg/submission"
)

func newApp(t *testing.T, options ...Option) *App {
	t.Helper()
	app, err := New(context.Background(), options...)
	if err != nil {
		t.Fatalf("new app: %v", err)
	}
	t.Cleanup(app.Close)
	return app
}

func TestNew_RegistersRoutes(t *testing.T) {
	app := newApp(t, WithBasePath("/portal"))
	want := []string{
		"/portal/api/wizard/sessions",
		"/portal/api/applications/status",
		"/portal/api/applications/dashboard",
		"/portal/openapi.json",
	}
	if diff := cmp.Diff(want, app.Routes()); diff != "" {
		t.Fatalf("routes mismatch (-want +got):\n%s", diff)
	}
}

func TestApp_ServesEveryComponent(t *testing.T) {
	dir, err := status.NewSeededDirectory()
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	app := newApp(t,
		WithSubmitter(submission.SubmitterFunc(func(context.Context, application.ApplicationForm) (submission.Result, error) {
			return submission.Result{ApplicationID: "APP100"}, nil
		})),
		WithLookup(dir),
		WithDashboard(dir),
	)
	h := app.Handler()

	cases := []struct {
		method string
		target string
		want   int
	}{
		{http.MethodPost, "/api/wizard/sessions", http.StatusCreated},
		{http.MethodGet, "/api/applications/status?id=app001&email=a@b.c", http.StatusOK},
		{http.MethodGet, "/api/applications/dashboard", http.StatusOK},
		{http.MethodGet, "/openapi.json", http.StatusOK},
		{http.MethodGet, "/unknown", http.StatusNotFound},
	}
	for _, tc := range cases {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(tc.method, tc.target, nil))
		if rec.Code != tc.want {
			t.Fatalf("%s %s: expected %d, got %d", tc.method, tc.target, tc.want, rec.Code)
		}
	}
}

func TestApp_SummaryUsesCustomTemplates(t *testing.T) {
	files := fstest.MapFS{
		"summary.tpl": &fstest.MapFile{Data: []byte("custom:{{ step }}")},
	}
	app := newApp(t, WithTemplatesFS(files))
	h := app.Handler()

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/wizard/sessions", nil))
	var created struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/wizard/sessions/"+created.ID+"/summary", nil))
	if got := strings.TrimSpace(rec.Body.String()); got != "custom:1" {
		t.Fatalf("unexpected summary %q", got)
	}
}

func TestHandler_LogsRequests(t *testing.T) {
	core, logs := observer.New(zap.DebugLevel)
	app := newApp(t, WithLogger(zap.New(core)))

	rec := httptest.NewRecorder()
	app.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/wizard/sessions/missing", nil))

	entries := logs.FilterMessage("request rejected").All()
	if len(entries) != 1 {
		t.Fatalf("expected one rejected request entry, got %d", len(entries))
	}
	fields := entries[0].ContextMap()
	if fields["status"] != int64(http.StatusNotFound) || fields["path"] != "/api/wizard/sessions/missing" {
		t.Fatalf("unexpected fields %v", fields)
	}
}

func TestEmbeddedTemplatesIncludeSummary(t *testing.T) {
	if _, err := EmbeddedTemplates().Open("summary.tpl"); err != nil {
		t.Fatalf("expected summary template: %v", err)
	}
}
