package formwizard

import (
	"io/fs"

	htmlrenderer "github.com/goliatone/go-formwizard/pkg/renderers/html"
)

// EmbeddedTemplates exposes the built-in summary templates so callers can
// copy or extend them and pass the result back with WithTemplatesFS.
func EmbeddedTemplates() fs.FS {
	return htmlrenderer.TemplatesFS()
}
