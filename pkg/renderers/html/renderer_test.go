package html_test

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"testing/fstest"
	"time"

	"github.com/goliatone/go-formwizard/pkg/application"
	"github.com/goliatone/go-formwizard/pkg/render"
	"github.com/goliatone/go-formwizard/pkg/renderers/html"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

func newRenderer(t *testing.T, opts ...html.Option) *html.Renderer {
	t.Helper()
	r, err := html.New(opts...)
	if err != nil {
		t.Fatalf("new renderer: %v", err)
	}
	return r
}

func snapshotWith(t *testing.T, values map[string]any) wizard.Snapshot {
	t.Helper()
	form := application.New()
	for name, value := range values {
		if err := form.Set(name, value); err != nil {
			t.Fatalf("set %s: %v", name, err)
		}
	}
	return wizard.New(wizard.WithForm(form)).Snapshot()
}

func TestRenderer_Metadata(t *testing.T) {
	r := newRenderer(t)
	if r.Name() != "html" {
		t.Fatalf("unexpected name %q", r.Name())
	}
	if !strings.HasPrefix(r.ContentType(), "text/html") {
		t.Fatalf("unexpected content type %q", r.ContentType())
	}
}

func TestRenderer_SummaryContent(t *testing.T) {
	snap := snapshotWith(t, map[string]any{
		application.FieldFirstName:        "John",
		application.FieldLastName:         "O'Brien",
		application.FieldGender:           "prefer-not-to-say",
		application.FieldState:            "new-york",
		application.FieldExpeditedService: true,
		application.FieldDeliveryMethod:   "overnight",
	})

	out, err := newRenderer(t).Render(context.Background(), snap, render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	page := string(out)

	for _, want := range []string{
		"Application Summary",
		"Step 1 of 5: Personal Info",
		"Personal Info",
		"Review &amp; Submit",
		"John",
		"O&#39;Brien",
		"Prefer not to say",
		"New York",
		"Expedited Processing",
		"Overnight Delivery",
		"$110.00",
		"Not provided",
	} {
		if !strings.Contains(page, want) {
			t.Fatalf("expected output to contain %q\n%s", want, page)
		}
	}
	if strings.Contains(page, "&amp;#39;") {
		t.Fatalf("expected single escaping, got double-escaped entity")
	}
}

func TestRenderer_StripsMarkupFromValues(t *testing.T) {
	snap := snapshotWith(t, map[string]any{
		application.FieldCity: `<script>alert(1)</script>Springfield<b>!</b>`,
	})

	out, err := newRenderer(t).Render(context.Background(), snap, render.RenderOptions{
		Title: "<i>Review</i>",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	page := string(out)
	if strings.Contains(page, "<script>") || strings.Contains(page, "alert(1)") || strings.Contains(page, "<b>") {
		t.Fatalf("expected markup to be stripped:\n%s", page)
	}
	if !strings.Contains(page, "Springfield!") || !strings.Contains(page, "<h1>Review</h1>") {
		t.Fatalf("expected cleaned text in output:\n%s", page)
	}
}

func TestRenderer_InlineAndFormErrors(t *testing.T) {
	c := wizard.New()
	if err := c.Advance(); err == nil {
		t.Fatalf("expected empty step to fail")
	}

	out, err := newRenderer(t).Render(context.Background(), c.Snapshot(), render.RenderOptions{
		FormErrors: []string{"Error submitting application. Please try again."},
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	page := string(out)
	for _, want := range []string{
		"First name is required",
		"SSN is required",
		`data-field="firstName"`,
		"formwizard-summary__row--invalid",
		`role="alert"`,
		"Error submitting application. Please try again.",
	} {
		if !strings.Contains(page, want) {
			t.Fatalf("expected output to contain %q", want)
		}
	}
}

func TestRenderer_Receipt(t *testing.T) {
	snap := snapshotWith(t, nil)
	receipt := &wizard.Receipt{ApplicationID: "APP042", Fee: snap.Fee, SubmittedAt: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)}

	out, err := newRenderer(t).Render(context.Background(), snap, render.RenderOptions{Receipt: receipt})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if !strings.Contains(string(out), `data-application-id="APP042"`) {
		t.Fatalf("expected application id in output:\n%s", out)
	}
}

func TestRenderer_CustomTemplates(t *testing.T) {
	files := fstest.MapFS{
		"summary.tpl": {Data: []byte("{{ stepTitle }}|{{ fee.total|dollars }}|{{ sections|length }}")},
	}
	out, err := newRenderer(t, html.WithTemplatesFS(files)).Render(context.Background(), snapshotWith(t, nil), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got := string(out); got != "Personal Info|$25.00|5" {
		t.Fatalf("unexpected output %q", got)
	}
}

func TestRenderer_TemplatesDir(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "summary.tpl"), []byte("title {{ stepTitle }}"), 0o600); err != nil {
		t.Fatalf("write template: %v", err)
	}
	out, err := newRenderer(t, html.WithTemplatesDir(dir)).Render(context.Background(), snapshotWith(t, nil), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if got := string(out); got != "title Personal Info" {
		t.Fatalf("unexpected output %q", got)
	}
}

type recordingTemplates struct {
	name string
}

func (r *recordingTemplates) RenderTemplate(name string, _ any, _ ...io.Writer) (string, error) {
	r.name = name
	return "stub", nil
}

func TestRenderer_TemplateRendererOverride(t *testing.T) {
	stub := &recordingTemplates{}
	out, err := newRenderer(t, html.WithTemplateRenderer(stub)).Render(context.Background(), snapshotWith(t, nil), render.RenderOptions{})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if string(out) != "stub" || stub.name != "summary" {
		t.Fatalf("unexpected output %q for template %q", out, stub.name)
	}
}

func TestRenderer_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := newRenderer(t).Render(ctx, snapshotWith(t, nil), render.RenderOptions{}); err == nil {
		t.Fatalf("expected context error")
	}
}
