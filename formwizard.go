// Package formwizard assembles the national ID application wizard into a
// single HTTP surface: wizard sessions, status lookups, the dashboard list and
// the OpenAPI document describing them.
package formwizard

import (
	"context"
	"fmt"
	"io/fs"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-formwizard/components/statuslookup"
	"github.com/goliatone/go-formwizard/components/wizardapi"
	"github.com/goliatone/go-formwizard/pkg/application"
	"github.com/goliatone/go-formwizard/pkg/openapi"
	"github.com/goliatone/go-formwizard/pkg/render"
	htmlrenderer "github.com/goliatone/go-formwizard/pkg/renderers/html"
	"github.com/goliatone/go-formwizard/pkg/status"
	"github.com/goliatone/go-formwizard/pkg/submission"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// ApplicationForm aliases the collected record.
type ApplicationForm = application.ApplicationForm

// Snapshot aliases the read-only wizard view.
type Snapshot = wizard.Snapshot

// Receipt aliases the result of a successful submission.
type Receipt = wizard.Receipt

// RenderOptions describes per-request overrides passed to renderers.
type RenderOptions = render.RenderOptions

// NewWizard exposes the controller constructor from the top-level module.
func NewWizard(options ...wizard.Option) *wizard.Controller {
	return wizard.New(options...)
}

type config struct {
	basePath   string
	submitter  submission.Submitter
	lookup     status.Lookup
	dashboard  statuslookup.DashboardSource
	sessionTTL time.Duration
	templates  fs.FS
	logger     *zap.Logger
}

// Option configures an App.
type Option func(*config)

// WithBasePath mounts every route under path.
func WithBasePath(path string) Option {
	return func(c *config) {
		c.basePath = path
	}
}

// WithSubmitter sets the backend wizard sessions submit to.
func WithSubmitter(s submission.Submitter) Option {
	return func(c *config) {
		if s != nil {
			c.submitter = s
		}
	}
}

// WithLookup sets the status lookup backend.
func WithLookup(lookup status.Lookup) Option {
	return func(c *config) {
		if lookup != nil {
			c.lookup = lookup
		}
	}
}

// WithDashboard sets the source of dashboard rows.
func WithDashboard(source statuslookup.DashboardSource) Option {
	return func(c *config) {
		if source != nil {
			c.dashboard = source
		}
	}
}

// WithSessionTTL sets the idle lifetime of wizard sessions.
func WithSessionTTL(ttl time.Duration) Option {
	return func(c *config) {
		c.sessionTTL = ttl
	}
}

// WithTemplatesFS replaces the summary templates.
func WithTemplatesFS(files fs.FS) Option {
	return func(c *config) {
		if files != nil {
			c.templates = files
		}
	}
}

// WithLogger attaches a logger to every component.
func WithLogger(logger *zap.Logger) Option {
	return func(c *config) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// App is the assembled HTTP surface.
type App struct {
	mux      *http.ServeMux
	wizard   *wizardapi.Component
	document *openapi.Document
	logger   *zap.Logger
	routes   []string
}

// New validates the OpenAPI document, builds both components and registers
// their routes.
func New(ctx context.Context, options ...Option) (*App, error) {
	cfg := config{
		sessionTTL: 30 * time.Minute,
		logger:     zap.NewNop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	doc, err := openapi.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("formwizard: %w", err)
	}

	var rendererOpts []htmlrenderer.Option
	if cfg.templates != nil {
		rendererOpts = append(rendererOpts, htmlrenderer.WithTemplatesFS(cfg.templates))
	}
	renderer, err := htmlrenderer.New(rendererOpts...)
	if err != nil {
		return nil, fmt.Errorf("formwizard: %w", err)
	}

	wiz, err := wizardapi.New(
		wizardapi.WithSubmitter(cfg.submitter),
		wizardapi.WithRenderer(renderer),
		wizardapi.WithDocument(doc),
		wizardapi.WithSessionTTL(cfg.sessionTTL),
		wizardapi.WithLogger(cfg.logger.Named("wizardapi")),
	)
	if err != nil {
		return nil, fmt.Errorf("formwizard: %w", err)
	}

	app := &App{
		mux:      http.NewServeMux(),
		wizard:   wiz,
		document: doc,
		logger:   cfg.logger,
	}

	prefix, err := wiz.RegisterRoutes(app.mux, cfg.basePath)
	if err != nil {
		wiz.Close()
		return nil, fmt.Errorf("formwizard: %w", err)
	}
	app.routes = append(app.routes, prefix+"/sessions")

	lookup := statuslookup.New(
		statuslookup.WithLookup(cfg.lookup),
		statuslookup.WithDashboard(cfg.dashboard),
		statuslookup.WithLogger(cfg.logger.Named("statuslookup")),
	)
	patterns, err := lookup.RegisterRoutes(app.mux, cfg.basePath)
	if err != nil {
		wiz.Close()
		return nil, fmt.Errorf("formwizard: %w", err)
	}
	app.routes = append(app.routes, patterns...)

	docPath := joinPath(cfg.basePath, openapi.Path)
	app.mux.Handle(docPath, doc.Handler())
	app.routes = append(app.routes, docPath)

	return app, nil
}

// Handler returns the root handler with request logging applied.
func (a *App) Handler() http.Handler {
	return logRequests(a.logger, a.mux)
}

// Document returns the validated OpenAPI document.
func (a *App) Document() *openapi.Document {
	return a.document
}

// Routes lists the registered route prefixes.
func (a *App) Routes() []string {
	return append([]string(nil), a.routes...)
}

// Close releases background resources.
func (a *App) Close() {
	a.wizard.Close()
}

func joinPath(basePath, path string) string {
	basePath = strings.TrimRight(strings.TrimSpace(basePath), "/")
	if basePath != "" && !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	return basePath + path
}
