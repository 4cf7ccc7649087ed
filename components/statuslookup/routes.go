package statuslookup

import (
	"fmt"
	"net/http"
	"strings"
)

// Mux is the minimal interface required to register a net/http handler.
// It is satisfied by *http.ServeMux.
type Mux interface {
	Handle(pattern string, handler http.Handler)
}

// MountPaths returns the status and dashboard paths under basePath.
func MountPaths(basePath string, fns ...OptionFn) (statusPath, dashboardPath string) {
	opts := NewOptions(fns...)
	root := mountPath(basePath, opts.RoutePath)
	return mountPath(root, opts.StatusPath), mountPath(root, opts.DashboardPath)
}

// RegisterRoutes registers the status handler under basePath on mux.
func RegisterRoutes(mux Mux, basePath string, fns ...OptionFn) ([]string, error) {
	opts := NewOptions(fns...)
	return RegisterRoutesWithOptions(mux, basePath, opts)
}

// RegisterRoutesWithOptions registers the handler under basePath using a
// pre-built Options value and returns the registered patterns.
func RegisterRoutesWithOptions(mux Mux, basePath string, opts Options) ([]string, error) {
	if mux == nil {
		return nil, fmt.Errorf("statuslookup: missing mux")
	}
	opts = NewOptions(func(o *Options) { *o = opts })
	opts.RoutePath = mountPath(basePath, opts.RoutePath)

	h := HandlerWithOptions(opts)
	patterns := []string{
		mountPath(opts.RoutePath, opts.StatusPath),
		mountPath(opts.RoutePath, opts.DashboardPath),
	}
	for _, pattern := range patterns {
		mux.Handle(pattern, h)
	}
	return patterns, nil
}

func mountPath(basePath, routePath string) string {
	basePath = strings.TrimSpace(basePath)
	routePath = strings.TrimSpace(routePath)

	if routePath == "" {
		routePath = "/"
	}
	if !strings.HasPrefix(routePath, "/") {
		routePath = "/" + routePath
	}

	if basePath == "" || basePath == "/" {
		return routePath
	}
	if !strings.HasPrefix(basePath, "/") {
		basePath = "/" + basePath
	}
	basePath = strings.TrimRight(basePath, "/")
	return basePath + routePath
}
