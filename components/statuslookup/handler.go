package statuslookup

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/goliatone/go-formwizard/pkg/status"
)

type HTTPError interface {
	error
	StatusCode() int
}

type StatusError struct {
	Code int
	Err  error
}

func (e StatusError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return http.StatusText(e.Code)
}

func (e StatusError) Unwrap() error { return e.Err }

func (e StatusError) StatusCode() int {
	if e.Code <= 0 {
		return http.StatusInternalServerError
	}
	return e.Code
}

type dashboardResponse struct {
	Applications []status.Summary `json:"applications"`
}

type errorBody struct {
	Message string `json:"message"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

var (
	defaultOnce sync.Once
	defaultDir  *status.Directory
	defaultErr  error
)

// DefaultDirectory returns the shared directory seeded with the demo records.
func DefaultDirectory() (*status.Directory, error) {
	defaultOnce.Do(func() {
		defaultDir, defaultErr = status.NewSeededDirectory()
	})
	return defaultDir, defaultErr
}

// Handler builds a net/http handler with default options plus any overrides.
func Handler(fns ...OptionFn) http.Handler {
	return HandlerWithOptions(NewOptions(fns...))
}

// HandlerWithOptions builds a handler from a pre-constructed Options value.
// It serves the status and dashboard paths relative to RoutePath.
func HandlerWithOptions(opts Options) http.Handler {
	opts = NewOptions(func(o *Options) { *o = opts })
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r == nil {
			http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
			return
		}
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", http.MethodGet+", "+http.MethodHead)
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		if opts.Guard != nil {
			if err := opts.Guard(r); err != nil {
				writeGuardError(w, err)
				return
			}
		}

		switch strings.TrimSuffix(r.URL.Path, "/") {
		case mountPath(opts.RoutePath, opts.StatusPath):
			serveStatus(w, r, opts)
		case mountPath(opts.RoutePath, opts.DashboardPath):
			serveDashboard(w, r, opts)
		default:
			http.NotFound(w, r)
		}
	})
}

func serveStatus(w http.ResponseWriter, r *http.Request, opts Options) {
	lookup := opts.Lookup
	if lookup == nil {
		dir, err := DefaultDirectory()
		if err != nil {
			opts.Logger.Error("load status directory failed", zap.Error(err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		lookup = dir
	}

	query := r.URL.Query()
	id := query.Get(opts.IDParam)
	record, err := lookup.Lookup(r.Context(), id, query.Get(opts.EmailParam))
	if err != nil {
		var notFound *status.NotFoundError
		switch {
		case errors.Is(err, status.ErrMissingCredentials):
			writeJSON(w, r, http.StatusBadRequest, errorResponse{Error: errorBody{Message: status.MissingCredentialsMessage}})
		case errors.As(err, &notFound), errors.Is(err, status.ErrNotFound):
			writeJSON(w, r, http.StatusNotFound, errorResponse{Error: errorBody{Message: status.NotFoundMessage}})
		default:
			opts.Logger.Warn("application lookup failed",
				zap.String("application_id", status.NormalizeID(id)),
				zap.Error(err))
			writeJSON(w, r, http.StatusBadGateway, errorResponse{Error: errorBody{Message: http.StatusText(http.StatusBadGateway)}})
		}
		return
	}
	writeJSON(w, r, http.StatusOK, record)
}

func serveDashboard(w http.ResponseWriter, r *http.Request, opts Options) {
	source := opts.Dashboard
	if source == nil {
		dir, err := DefaultDirectory()
		if err != nil {
			opts.Logger.Error("load status directory failed", zap.Error(err))
			http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
			return
		}
		source = dir
	}
	rows := source.Dashboard()
	if rows == nil {
		rows = []status.Summary{}
	}
	writeJSON(w, r, http.StatusOK, dashboardResponse{Applications: rows})
}

func writeJSON(w http.ResponseWriter, r *http.Request, code int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(code)
	if r.Method == http.MethodHead {
		return
	}
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(true)
	_ = enc.Encode(payload)
}

func writeGuardError(w http.ResponseWriter, err error) {
	if w == nil {
		return
	}
	if err == nil {
		http.Error(w, http.StatusText(http.StatusForbidden), http.StatusForbidden)
		return
	}
	code := http.StatusForbidden
	var httpErr HTTPError
	if errors.As(err, &httpErr) && httpErr != nil {
		code = httpErr.StatusCode()
		if code <= 0 {
			code = http.StatusForbidden
		}
	}
	http.Error(w, http.StatusText(code), code)
}
