package wizardapi

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	stdhtml "html"
	"io"
	"net/http"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"go.uber.org/zap"

	"github.com/goliatone/go-formwizard/pkg/application"
	"github.com/goliatone/go-formwizard/pkg/openapi"
	"github.com/goliatone/go-formwizard/pkg/render"
	htmlrenderer "github.com/goliatone/go-formwizard/pkg/renderers/html"
	"github.com/goliatone/go-formwizard/pkg/submission"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

const (
	requiredFieldsMessage = "Please complete the required fields."
	sessionNotFound       = "Wizard session not found."
	fieldUpdateSchema     = "FieldUpdate"
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

type sessionResponse struct {
	ID     string          `json:"id"`
	Wizard wizard.Snapshot `json:"wizard"`
}

type submitResponse struct {
	Receipt wizard.Receipt `json:"receipt"`
}

type errorBody struct {
	Message string                  `json:"message"`
	Fields  wizard.ValidationErrors `json:"fields,omitempty"`
}

type errorResponse struct {
	Error errorBody `json:"error"`
}

type fieldUpdate struct {
	name  string
	value any
}

// Handler serves wizard sessions. Paths are relative to the route path, so
// the handler expects /sessions and /sessions/{id}/... once the mount prefix
// has been stripped.
type Handler struct {
	opts      Options
	store     *Store
	renderers *render.Registry
	format    string
	document  *openapi.Document
	logger    *zap.Logger
}

var _ http.Handler = (*Handler)(nil)

// NewHandler builds a handler with default options plus any overrides.
func NewHandler(fns ...OptionFn) (*Handler, error) {
	return HandlerWithOptions(NewOptions(fns...))
}

// HandlerWithOptions builds a handler from a pre-constructed Options value.
// The returned handler owns a session store; call Close to stop its sweeper.
func HandlerWithOptions(opts Options) (*Handler, error) {
	opts = NewOptions(func(o *Options) { *o = opts })

	renderer := opts.Renderer
	if renderer == nil {
		r, err := htmlrenderer.New()
		if err != nil {
			return nil, fmt.Errorf("wizardapi: html renderer: %w", err)
		}
		renderer = r
	}
	registry, err := render.NewRegistry(append([]render.Renderer{renderer}, opts.Renderers...)...)
	if err != nil {
		return nil, fmt.Errorf("wizardapi: %w", err)
	}
	document := opts.Document
	if document == nil {
		doc, err := openapi.Load(context.Background())
		if err != nil {
			return nil, fmt.Errorf("wizardapi: %w", err)
		}
		document = doc
	}

	return &Handler{
		opts:      opts,
		store:     NewStore(opts.SessionTTL, opts.SweepInterval, opts.Now, opts.Logger),
		renderers: registry,
		format:    renderer.Name(),
		document:  document,
		logger:    opts.Logger,
	}, nil
}

// Store exposes the session store.
func (h *Handler) Store() *Store {
	return h.store
}

// Close stops the session sweeper.
func (h *Handler) Close() {
	h.store.Close()
}

func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r == nil {
		http.Error(w, http.StatusText(http.StatusBadRequest), http.StatusBadRequest)
		return
	}
	if h.opts.Guard != nil {
		if err := h.opts.Guard(r); err != nil {
			writeGuardError(w, err)
			return
		}
	}

	segments := splitPath(r.URL.Path)
	if len(segments) == 0 || segments[0] != "sessions" || len(segments) > 3 {
		http.NotFound(w, r)
		return
	}

	if len(segments) == 1 {
		if !allowMethod(w, r, http.MethodPost) {
			return
		}
		h.create(w, r)
		return
	}

	id := segments[1]
	action := ""
	if len(segments) == 3 {
		action = segments[2]
	}

	switch action {
	case "":
		if !allowMethod(w, r, http.MethodGet, http.MethodDelete) {
			return
		}
		if r.Method == http.MethodDelete {
			h.discard(w, r, id)
			return
		}
		h.withSession(w, r, id, h.show)
	case "fields":
		if allowMethod(w, r, http.MethodPatch) {
			h.withSession(w, r, id, h.updateFields)
		}
	case "next":
		if allowMethod(w, r, http.MethodPost) {
			h.withSession(w, r, id, h.next)
		}
	case "previous":
		if allowMethod(w, r, http.MethodPost) {
			h.withSession(w, r, id, h.previous)
		}
	case "submit":
		if allowMethod(w, r, http.MethodPost) {
			h.withSession(w, r, id, h.submit)
		}
	case "summary":
		if allowMethod(w, r, http.MethodGet) {
			h.withSession(w, r, id, h.summary)
		}
	default:
		http.NotFound(w, r)
	}
}

type sessionHandler func(w http.ResponseWriter, r *http.Request, id string, c *wizard.Controller)

func (h *Handler) withSession(w http.ResponseWriter, r *http.Request, id string, next sessionHandler) {
	c, ok := h.store.Get(id)
	if !ok {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: errorBody{Message: sessionNotFound}})
		return
	}
	next(w, r, id, c)
}

func (h *Handler) create(w http.ResponseWriter, _ *http.Request) {
	c := wizard.New(
		wizard.WithSubmitter(h.opts.Submitter),
		wizard.WithLogger(h.logger),
	)
	id := h.store.Create(c)
	h.logger.Info("wizard session created", zap.String("session", id))
	writeJSON(w, http.StatusCreated, sessionResponse{ID: id, Wizard: c.Snapshot()})
}

func (h *Handler) show(w http.ResponseWriter, _ *http.Request, id string, c *wizard.Controller) {
	writeJSON(w, http.StatusOK, sessionResponse{ID: id, Wizard: c.Snapshot()})
}

func (h *Handler) discard(w http.ResponseWriter, _ *http.Request, id string) {
	if !h.store.Delete(id) {
		writeJSON(w, http.StatusNotFound, errorResponse{Error: errorBody{Message: sessionNotFound}})
		return
	}
	h.logger.Info("wizard session discarded", zap.String("session", id))
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) updateFields(w http.ResponseWriter, r *http.Request, id string, c *wizard.Controller) {
	updates, values, err := decodeFields(http.MaxBytesReader(w, r.Body, h.opts.MaxBodyBytes))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: errorBody{Message: err.Error()}})
		return
	}
	if err := h.document.ValidateValue(fieldUpdateSchema, values); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: errorBody{Message: err.Error()}})
		return
	}

	// Check every update against a scratch form first so a bad entry leaves
	// the session untouched.
	scratch := application.New()
	invalid := make(wizard.ValidationErrors)
	for i, update := range updates {
		if s, ok := update.value.(string); ok {
			updates[i].value = sanitizeText(s)
		}
		if err := scratch.Set(update.name, updates[i].value); err != nil {
			invalid[update.name] = err.Error()
		}
	}
	if len(invalid) > 0 {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: errorBody{Message: "Invalid field values.", Fields: invalid}})
		return
	}

	for _, update := range updates {
		if err := c.SetField(update.name, update.value); err != nil {
			h.writeError(w, id, c, err)
			return
		}
	}
	writeJSON(w, http.StatusOK, sessionResponse{ID: id, Wizard: c.Snapshot()})
}

func (h *Handler) next(w http.ResponseWriter, _ *http.Request, id string, c *wizard.Controller) {
	if err := c.Advance(); err != nil {
		h.writeError(w, id, c, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{ID: id, Wizard: c.Snapshot()})
}

func (h *Handler) previous(w http.ResponseWriter, _ *http.Request, id string, c *wizard.Controller) {
	if err := c.Retreat(); err != nil {
		h.writeError(w, id, c, err)
		return
	}
	writeJSON(w, http.StatusOK, sessionResponse{ID: id, Wizard: c.Snapshot()})
}

func (h *Handler) submit(w http.ResponseWriter, r *http.Request, id string, c *wizard.Controller) {
	receipt, err := c.Submit(r.Context())
	if err != nil {
		var subErr *submission.Error
		if errors.As(err, &subErr) {
			h.store.SetNotice(id, subErr.UserMessage())
		}
		h.writeError(w, id, c, err)
		return
	}
	h.store.Delete(id)
	h.logger.Info("wizard session submitted",
		zap.String("session", id),
		zap.String("application_id", receipt.ApplicationID))
	writeJSON(w, http.StatusOK, submitResponse{Receipt: receipt})
}

func (h *Handler) summary(w http.ResponseWriter, r *http.Request, id string, c *wizard.Controller) {
	format := strings.TrimSpace(r.URL.Query().Get("format"))
	if format == "" {
		format = h.format
	}
	if !h.renderers.Has(format) {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: errorBody{
			Message: fmt.Sprintf("Unknown summary format %q.", format),
		}})
		return
	}
	var options render.RenderOptions
	if notice := h.store.Notice(id); notice != "" {
		options.FormErrors = []string{notice}
	}
	out, contentType, err := h.renderers.Render(r.Context(), format, c.Snapshot(), options)
	if err != nil {
		h.logger.Error("render summary failed", zap.String("session", id), zap.String("format", format), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(out)
}

func (h *Handler) writeError(w http.ResponseWriter, id string, c *wizard.Controller, err error) {
	var (
		verr   *wizard.ValidationError
		subErr *submission.Error
	)
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: errorBody{
			Message: requiredFieldsMessage,
			Fields:  verr.Fields,
		}})
	case errors.Is(err, wizard.ErrSubmissionInFlight),
		errors.Is(err, wizard.ErrCompleted),
		errors.Is(err, wizard.ErrNotFinalStep):
		writeJSON(w, http.StatusConflict, errorResponse{Error: errorBody{Message: err.Error()}})
	case errors.Is(err, application.ErrUnknownField), errors.Is(err, application.ErrFieldType):
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: errorBody{Message: err.Error()}})
	case errors.As(err, &subErr):
		h.logger.Warn("wizard submission failed",
			zap.String("session", id),
			zap.Int("step", c.State().CurrentStep),
			zap.Error(err))
		writeJSON(w, http.StatusBadGateway, errorResponse{Error: errorBody{Message: subErr.UserMessage()}})
	default:
		h.logger.Error("wizard request failed", zap.String("session", id), zap.Error(err))
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: errorBody{Message: http.StatusText(http.StatusInternalServerError)}})
	}
}

// decodeFields reads a JSON object and keeps its members in document order.
func decodeFields(body io.Reader) ([]fieldUpdate, map[string]any, error) {
	dec := json.NewDecoder(body)
	tok, err := dec.Token()
	if err != nil {
		return nil, nil, fmt.Errorf("invalid JSON body: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, nil, errors.New("request body must be a JSON object")
	}

	var updates []fieldUpdate
	values := make(map[string]any)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, nil, fmt.Errorf("invalid JSON body: %w", err)
		}
		name, _ := tok.(string)
		var value any
		if err := dec.Decode(&value); err != nil {
			return nil, nil, fmt.Errorf("invalid value for %q: %w", name, err)
		}
		updates = append(updates, fieldUpdate{name: name, value: value})
		values[name] = value
	}
	if _, err := dec.Token(); err != nil {
		return nil, nil, fmt.Errorf("invalid JSON body: %w", err)
	}
	return updates, values, nil
}

var (
	inputPolicyOnce sync.Once
	inputPolicy     *bluemonday.Policy
)

// sanitizeText strips markup from submitted text. Entities are decoded so the
// stored value is plain text.
func sanitizeText(raw string) string {
	inputPolicyOnce.Do(func() {
		inputPolicy = bluemonday.StrictPolicy()
	})
	return stdhtml.UnescapeString(inputPolicy.Sanitize(raw))
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
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

func allowMethod(w http.ResponseWriter, r *http.Request, methods ...string) bool {
	for _, method := range methods {
		if r.Method == method {
			return true
		}
	}
	w.Header().Set("Allow", strings.Join(methods, ", "))
	http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
	return false
}

func splitPath(path string) []string {
	var segments []string
	for _, part := range strings.Split(path, "/") {
		if part != "" {
			segments = append(segments, part)
		}
	}
	return segments
}
