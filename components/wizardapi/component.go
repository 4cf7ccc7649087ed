package wizardapi

import "net/http"

// Component bundles the session handler, its configuration and routing
// helpers.
type Component struct {
	opts    Options
	handler *Handler
}

// New constructs a component with default options plus any overrides.
func New(fns ...OptionFn) (*Component, error) {
	opts := NewOptions(fns...)
	h, err := HandlerWithOptions(opts)
	if err != nil {
		return nil, err
	}
	return &Component{opts: opts, handler: h}, nil
}

// Options returns a copy of the component configuration.
func (c *Component) Options() Options {
	if c == nil {
		return DefaultOptions()
	}
	return NewOptions(func(o *Options) { *o = c.opts })
}

// Handler returns the session handler. Paths are relative to the route path.
func (c *Component) Handler() http.Handler {
	return c.handler
}

// Store exposes the component's session store.
func (c *Component) Store() *Store {
	return c.handler.Store()
}

// RegisterRoutes mounts the session routes under basePath on mux and returns
// the route prefix.
func (c *Component) RegisterRoutes(mux Mux, basePath string) (string, error) {
	prefix := mountPath(basePath, c.opts.RoutePath)
	if err := Mount(mux, prefix, c.handler); err != nil {
		return "", err
	}
	return prefix, nil
}

// Close stops background session sweeping.
func (c *Component) Close() {
	if c == nil || c.handler == nil {
		return
	}
	c.handler.Close()
}
