package statuslookup

import (
	"net/http"

	"go.uber.org/zap"

	"github.com/goliatone/go-formwizard/pkg/status"
)

// DashboardSource lists the applications shown on the dashboard.
type DashboardSource interface {
	Dashboard() []status.Summary
}

type GuardFunc func(r *http.Request) error

type Options struct {
	RoutePath     string
	StatusPath    string
	DashboardPath string
	IDParam       string
	EmailParam    string
	Guard         GuardFunc

	// Lookup and Dashboard default to the seeded status.Directory.
	Lookup    status.Lookup
	Dashboard DashboardSource
	Logger    *zap.Logger
}

type OptionFn func(*Options)

func DefaultOptions() Options {
	return Options{
		RoutePath:     "/api/applications",
		StatusPath:    "/status",
		DashboardPath: "/dashboard",
		IDParam:       "id",
		EmailParam:    "email",
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
		opts.RoutePath = "/api/applications"
	}
	if opts.StatusPath == "" {
		opts.StatusPath = "/status"
	}
	if opts.DashboardPath == "" {
		opts.DashboardPath = "/dashboard"
	}
	if opts.IDParam == "" {
		opts.IDParam = "id"
	}
	if opts.EmailParam == "" {
		opts.EmailParam = "email"
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
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

func WithIDParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.IDParam = name
	}
}

func WithEmailParam(name string) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.EmailParam = name
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

func WithLookup(lookup status.Lookup) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Lookup = lookup
	}
}

func WithDashboard(source DashboardSource) OptionFn {
	return func(o *Options) {
		if o == nil {
			return
		}
		o.Dashboard = source
	}
}

// WithDirectory serves both lookups and the dashboard from dir.
func WithDirectory(dir *status.Directory) OptionFn {
	return func(o *Options) {
		if o == nil || dir == nil {
			return
		}
		o.Lookup = dir
		o.Dashboard = dir
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
