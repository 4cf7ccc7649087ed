package wizardapi

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

// MountPath returns the full mount path for the component routes under basePath.
func MountPath(basePath string, fns ...OptionFn) string {
	opts := NewOptions(fns...)
	return mountPath(basePath, opts.RoutePath)
}

// Mount registers h under prefix on mux. Both /sessions and /sessions/ are
// registered so creating a session does not hit a redirect.
func Mount(mux Mux, prefix string, h http.Handler) error {
	if mux == nil {
		return fmt.Errorf("wizardapi: missing mux")
	}
	if h == nil {
		return fmt.Errorf("wizardapi: missing handler")
	}
	stripped := http.StripPrefix(prefix, h)
	mux.Handle(prefix+"/sessions", stripped)
	mux.Handle(prefix+"/sessions/", stripped)
	return nil
}

func mountPath(basePath, routePath string) string {
	basePath = strings.TrimSpace(basePath)
	routePath = strings.TrimRight(strings.TrimSpace(routePath), "/")

	if routePath != "" && !strings.HasPrefix(routePath, "/") {
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
