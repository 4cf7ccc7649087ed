package openapi

import (
	"context"
	_ "embed"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// Path is where the document is served.
const Path = "/openapi.json"

//go:embed data/openapi.json
var embedded []byte

// ErrUnknownSchema is returned when a component schema name is not defined.
var ErrUnknownSchema = errors.New("openapi: unknown schema")

// Raw returns a copy of the embedded document.
func Raw() []byte {
	return append([]byte(nil), embedded...)
}

// Operation describes one documented route.
type Operation struct {
	ID      string
	Method  string
	Path    string
	Summary string
	Tags    []string
}

// Document is a parsed and validated OpenAPI document.
type Document struct {
	raw  []byte
	spec *openapi3.T
}

// Load parses and validates the embedded document.
func Load(ctx context.Context) (*Document, error) {
	return Parse(ctx, embedded)
}

// Parse loads raw as an OpenAPI 3 document and validates it. External
// references are not followed.
func Parse(ctx context.Context, raw []byte) (*Document, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(raw) == 0 {
		return nil, errors.New("openapi: document payload is empty")
	}

	loader := &openapi3.Loader{
		Context:               ctx,
		IsExternalRefsAllowed: false,
	}
	spec, err := loader.LoadFromData(raw)
	if err != nil {
		return nil, fmt.Errorf("openapi: load document: %w", err)
	}
	if err := spec.Validate(ctx, openapi3.DisableExamplesValidation()); err != nil {
		return nil, fmt.Errorf("openapi: validate: %w", err)
	}
	if spec.Paths == nil || spec.Paths.Len() == 0 {
		return nil, errors.New("openapi: document does not contain any paths")
	}

	return &Document{raw: append([]byte(nil), raw...), spec: spec}, nil
}

// Spec exposes the underlying kin-openapi model.
func (d *Document) Spec() *openapi3.T {
	return d.spec
}

// Raw returns the bytes the document was parsed from.
func (d *Document) Raw() []byte {
	return append([]byte(nil), d.raw...)
}

// Operations lists every documented operation keyed by operation id. An
// operation without an id is keyed "<method>:<path>".
func (d *Document) Operations() map[string]Operation {
	operations := make(map[string]Operation)
	for path, item := range d.spec.Paths.Map() {
		if item == nil {
			continue
		}
		collectOperation(operations, http.MethodGet, path, item.Get)
		collectOperation(operations, http.MethodPut, path, item.Put)
		collectOperation(operations, http.MethodPost, path, item.Post)
		collectOperation(operations, http.MethodDelete, path, item.Delete)
		collectOperation(operations, http.MethodPatch, path, item.Patch)
		collectOperation(operations, http.MethodHead, path, item.Head)
		collectOperation(operations, http.MethodOptions, path, item.Options)
		collectOperation(operations, http.MethodTrace, path, item.Trace)
	}
	return operations
}

func collectOperation(target map[string]Operation, method, path string, operation *openapi3.Operation) {
	if operation == nil {
		return
	}
	opID := operation.OperationID
	if opID == "" {
		opID = strings.ToLower(method) + ":" + path
	}
	target[opID] = Operation{
		ID:      opID,
		Method:  method,
		Path:    path,
		Summary: operation.Summary,
		Tags:    append([]string(nil), operation.Tags...),
	}
}

// SchemaProperties returns the sorted property names of a component schema.
func (d *Document) SchemaProperties(name string) ([]string, error) {
	schema, err := d.schema(name)
	if err != nil {
		return nil, err
	}
	names := make([]string, 0, len(schema.Properties))
	for prop := range schema.Properties {
		names = append(names, prop)
	}
	sort.Strings(names)
	return names, nil
}

// ValidateValue checks a decoded JSON value against a component schema.
func (d *Document) ValidateValue(name string, value any) error {
	schema, err := d.schema(name)
	if err != nil {
		return err
	}
	if err := schema.VisitJSON(value); err != nil {
		return fmt.Errorf("openapi: %s: %w", name, err)
	}
	return nil
}

func (d *Document) schema(name string) (*openapi3.Schema, error) {
	if d.spec.Components == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSchema, name)
	}
	ref, ok := d.spec.Components.Schemas[name]
	if !ok || ref == nil || ref.Value == nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownSchema, name)
	}
	return ref.Value, nil
}

// Handler serves the document as JSON.
func (d *Document) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodGet && r.Method != http.MethodHead {
			w.Header().Set("Allow", "GET, HEAD")
			http.Error(w, http.StatusText(http.StatusMethodNotAllowed), http.StatusMethodNotAllowed)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Cache-Control", "public, max-age=300")
		if r.Method == http.MethodHead {
			w.WriteHeader(http.StatusOK)
			return
		}
		_, _ = w.Write(d.raw)
	})
}
