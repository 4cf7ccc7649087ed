package render

import (
	"context"

	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// Renderer turns a wizard snapshot into a byte representation (HTML, text).
type Renderer interface {
	Name() string
	ContentType() string
	Render(ctx context.Context, snapshot wizard.Snapshot, options RenderOptions) ([]byte, error)
}
