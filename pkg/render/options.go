package render

import "github.com/goliatone/go-formwizard/pkg/wizard"

// RenderOptions carry per-request data that sits outside the wizard snapshot.
type RenderOptions struct {
	// Title overrides the page heading. Renderers fall back to the step title.
	Title string
	// Errors adds field messages keyed by field name on top of the snapshot's
	// recorded validation errors. Keys that are not field names are shown as
	// form-level messages.
	Errors map[string][]string
	// FormErrors are banner messages not tied to a field, for example a
	// failed submission.
	FormErrors []string
	// Receipt is shown once the application has been submitted.
	Receipt *wizard.Receipt
}
