package pongo_test

import (
	"strings"
	"testing"
	"testing/fstest"

	"github.com/goliatone/go-formwizard/pkg/render/template/pongo"
)

func testFS() fstest.MapFS {
	return fstest.MapFS{
		"hello.tpl":  {Data: []byte("Hello {{ name }}!")},
		"person.tpl": {Data: []byte("{{ name }} is {{ age }}")},
		"fee.tpl":    {Data: []byte("{{ total|dollars }} {{ expedited|yesno_label }} [{{ pad|trim }}]")},
		"escape.tpl": {Data: []byte("{{ value }}")},
	}
}

func newEngine(t *testing.T) *pongo.Engine {
	t.Helper()
	engine, err := pongo.New(pongo.WithFS(testFS()))
	if err != nil {
		t.Fatalf("new engine: %v", err)
	}
	return engine
}

func TestEngine_RenderTemplate(t *testing.T) {
	engine := newEngine(t)

	var sb strings.Builder
	result, err := engine.RenderTemplate("hello", map[string]any{"name": "Ada"}, &sb)
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "Hello Ada!" {
		t.Fatalf("unexpected result %q", result)
	}
	if sb.String() != result {
		t.Fatalf("writer mismatch: %q", sb.String())
	}
}

func TestEngine_RenderStructUsesJSONNames(t *testing.T) {
	engine := newEngine(t)
	type person struct {
		Name string `json:"name"`
		Age  int    `json:"age"`
	}
	result, err := engine.RenderTemplate("person.tpl", person{Name: "Grace", Age: 85})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "Grace is 85" {
		t.Fatalf("unexpected result %q", result)
	}
}

func TestEngine_RejectsNonObjectData(t *testing.T) {
	engine := newEngine(t)
	if _, err := engine.RenderTemplate("hello", []string{"Ada"}); err == nil {
		t.Fatalf("expected error for slice data")
	}
}

func TestEngine_DefaultFilters(t *testing.T) {
	engine := newEngine(t)
	result, err := engine.RenderTemplate("fee", map[string]any{
		"total":     110.0,
		"expedited": true,
		"pad":       "  x  ",
	})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if result != "$110.00 Yes [x]" {
		t.Fatalf("unexpected result %q", result)
	}
}

func TestEngine_AutoEscapes(t *testing.T) {
	engine := newEngine(t)
	result, err := engine.RenderTemplate("escape", map[string]any{"value": "<b>x</b>"})
	if err != nil {
		t.Fatalf("render: %v", err)
	}
	if strings.Contains(result, "<b>") {
		t.Fatalf("expected escaped output, got %q", result)
	}
}

func TestEngine_MissingTemplate(t *testing.T) {
	engine := newEngine(t)
	if _, err := engine.RenderTemplate("missing", nil); err == nil {
		t.Fatalf("expected error for missing template")
	}
}

func TestNew_RequiresFS(t *testing.T) {
	if _, err := pongo.New(); err == nil {
		t.Fatalf("expected error without a template fs")
	}
}
