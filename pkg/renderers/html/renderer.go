// Package html renders the application summary page: every answered field
// grouped by step, inline validation messages, the fee breakdown and, once
// submitted, the application id.
package html

import (
	"context"
	"embed"
	"fmt"
	stdhtml "html"
	"io/fs"
	"os"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"

	"github.com/goliatone/go-formwizard/pkg/application"
	"github.com/goliatone/go-formwizard/pkg/fees"
	"github.com/goliatone/go-formwizard/pkg/render"
	rendertemplate "github.com/goliatone/go-formwizard/pkg/render/template"
	"github.com/goliatone/go-formwizard/pkg/render/template/pongo"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

const (
	// Name is the registry key of this renderer.
	Name = "html"

	summaryTemplate = "summary"
	defaultTitle    = "Application Summary"
	emptyValue      = "Not provided"
)

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

// TemplatesFS exposes the embedded template bundle.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		return embeddedTemplates
	}
	return sub
}

// Option configures the renderer.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
}

// WithTemplatesFS supplies an alternate template bundle.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		cfg.templateFS = files
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if path == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template engine.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// Renderer implements render.Renderer.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the renderer.
func New(options ...Option) (*Renderer, error) {
	cfg := config{templateFS: TemplatesFS()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}
	if cfg.templateFS == nil {
		cfg.templateFS = TemplatesFS()
	}

	templates := cfg.templateRenderer
	if templates == nil {
		engine, err := pongo.New(pongo.WithFS(cfg.templateFS))
		if err != nil {
			return nil, fmt.Errorf("html renderer: configure template renderer: %w", err)
		}
		templates = engine
	}
	return &Renderer{templates: templates}, nil
}

func (r *Renderer) Name() string {
	return Name
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render produces the summary markup for snapshot.
func (r *Renderer) Render(ctx context.Context, snapshot wizard.Snapshot, options render.RenderOptions) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	view := buildView(snapshot, options)
	out, err := r.templates.RenderTemplate(summaryTemplate, view)
	if err != nil {
		return nil, fmt.Errorf("html renderer: %w", err)
	}
	return []byte(out), nil
}

type summaryView struct {
	Title      string          `json:"title"`
	Step       int             `json:"step"`
	TotalSteps int             `json:"totalSteps"`
	StepTitle  string          `json:"stepTitle"`
	Progress   int             `json:"progress"`
	Submitting bool            `json:"submitting"`
	FormErrors []string        `json:"formErrors"`
	Sections   []sectionView   `json:"sections"`
	Fee        feeView         `json:"fee"`
	Receipt    *wizard.Receipt `json:"receipt"`
}

type sectionView struct {
	Step  int       `json:"step"`
	Title string    `json:"title"`
	Rows  []rowView `json:"rows"`
}

type rowView struct {
	Name  string `json:"name"`
	Label string `json:"label"`
	Value string `json:"value"`
	Error string `json:"error,omitempty"`
}

type feeView struct {
	Items []fees.LineItem `json:"items"`
	Total fees.Amount     `json:"total"`
}

func buildView(snapshot wizard.Snapshot, options render.RenderOptions) summaryView {
	mapping := render.MapErrors(snapshot.Errors, options)

	title := strings.TrimSpace(options.Title)
	if title == "" {
		title = defaultTitle
	}

	view := summaryView{
		Title:      sanitize(title),
		Step:       snapshot.Step,
		TotalSteps: snapshot.TotalSteps,
		StepTitle:  snapshot.StepTitle,
		Progress:   snapshot.Progress,
		Submitting: snapshot.Submitting,
		FormErrors: mapping.Form,
		Fee: feeView{
			Items: snapshot.FeeItems,
			Total: snapshot.Fee,
		},
		Receipt: options.Receipt,
	}

	for step := 1; step <= wizard.TotalSteps; step++ {
		fields := application.FieldsForStep(step)
		if len(fields) == 0 {
			continue
		}
		section := sectionView{Step: step, Title: wizard.StepTitle(step)}
		for _, field := range fields {
			section.Rows = append(section.Rows, rowView{
				Name:  field.Name,
				Label: field.Label,
				Value: displayValue(snapshot.Form, field),
				Error: mapping.FieldError(field.Name),
			})
		}
		view.Sections = append(view.Sections, section)
	}
	return view
}

func displayValue(form application.ApplicationForm, field application.Field) string {
	if field.Kind == application.KindCheckbox {
		if form.Flag(field.Name) {
			return "Yes"
		}
		return "No"
	}
	value := sanitize(form.Text(field.Name))
	if value == "" {
		return emptyValue
	}
	if field.Kind == application.KindSelect {
		return field.OptionLabel(value)
	}
	return value
}

var (
	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// sanitize strips every tag from applicant-supplied text. Entities are
// decoded again because the template engine escapes on output.
func sanitize(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return strings.TrimSpace(stdhtml.UnescapeString(textPolicy.Sanitize(trimmed)))
}
