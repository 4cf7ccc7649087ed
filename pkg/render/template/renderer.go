package template

import (
	"io"
)

// TemplateRenderer is the contract renderers depend on. RenderTemplate
// returns the output and also copies it to any writers passed in out.
type TemplateRenderer interface {
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
}
