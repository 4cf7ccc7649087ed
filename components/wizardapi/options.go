package wizardapi

import (
	"net/http"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-formwizard/pkg/openapi"
	"github.com/goliatone/go-formwizard/pkg/render"
	"github.com/goliatone/go-formwizard/pkg/submission"
)

const (
	defaultRoutePath     = "/api/wizard"
	defaultSessionTTL    = 30 * time.Minute
	defaultSweepInterval = time.Minute
	defaultMaxBodyBytes  = 64 << 10
)

// GuardFunc can reject a request before it reaches a session. Returning an
// HTTPError selects the status code; any other error yields 403.
type GuardFunc func(r *http.Request) error

type Options struct {
	RoutePath string

	// SessionTTL is the idle time after which a session is swept. Zero or
	// negative disables sweeping.
	SessionTTL    time.Duration
	SweepInterval time.Duration
	MaxBodyBytes  int64

	Guard     GuardFunc
	Submitter submission.Submitter
	Renderer  render.Renderer
	// Renderers adds summary formats selectable with ?format=name.
	Renderers []render.Renderer
	// Document checks PATCH payloads against its FieldUpdate schema. The
	// embedded document is used when nil.
	Document *openapi.Document
	Logger   *zap.Logger
	Now      func() time.Time
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		RoutePath:     defaultRoutePath,
		SessionTTL:    defaultSessionTTL,
		SweepInterval: defaultSweepInterval,
		MaxBodyBytes:  defaultMaxBodyBytes,
	}
}

func NewOptions(fns ...OptionFn) Options {
	opts := DefaultOptions()
	for _, fn := range fns {
		if fn == nil {
			continue
		}
		fn(&opts)
	}
	if opts.RoutePath == "" {
		opts.RoutePath = defaultRoutePath
	}
	if opts.SweepInterval <= 0 {
		opts.SweepInterval = defaultSweepInterval
	}
	if opts.SessionTTL > 0 && opts.SweepInterval > opts.SessionTTL {
		opts.SweepInterval = opts.SessionTTL
	}
	if opts.MaxBodyBytes <= 0 {
		opts.MaxBodyBytes = defaultMaxBodyBytes
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return opts
}

func WithRoutePath(path string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.RoutePath = path
	}
}

func WithSessionTTL(ttl time.Duration) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.SessionTTL = ttl
	}
}

func WithSweepInterval(interval time.Duration) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.SweepInterval = interval
	}
}

func WithMaxBodyBytes(limit int64) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.MaxBodyBytes = limit
	}
}

func WithGuard(guard GuardFunc) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Guard = guard
	}
}

// WithSubmitter sets the backend every new session submits to. Sessions use
// the simulated backend when unset.
func WithSubmitter(submitter submission.Submitter) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Submitter = submitter
	}
}

// WithRenderer replaces the html renderer used for summaries.
func WithRenderer(renderer render.Renderer) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Renderer = renderer
	}
}

// WithRenderers registers additional summary formats.
func WithRenderers(renderers ...render.Renderer) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Renderers = append(o.Renderers, renderers...)
	}
}

func WithDocument(doc *openapi.Document) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Document = doc
	}
}

func WithLogger(logger *zap.Logger) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Logger = logger
	}
}

// WithClock overrides time.Now for idle tracking.
func WithClock(now func() time.Time) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Now = now
	}
}
