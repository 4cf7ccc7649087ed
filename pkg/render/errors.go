package render

import (
	"strings"

	"github.com/goliatone/go-formwizard/pkg/application"
	"github.com/goliatone/go-formwizard/pkg/wizard"
)

// ErrorMapping splits validation feedback into field-level messages keyed by
// application field name and form-level messages.
type ErrorMapping struct {
	Fields map[string][]string
	Form   []string
}

// FieldError returns the first message recorded for name.
func (m ErrorMapping) FieldError(name string) string {
	if msgs := m.Fields[name]; len(msgs) > 0 {
		return msgs[0]
	}
	return ""
}

// MergeFormErrors concatenates and normalises multiple form-level error
// slices, trimming whitespace and removing duplicates while preserving order.
func MergeFormErrors(existing []string, extras ...string) []string {
	combined := make([]string, 0, len(existing)+len(extras))
	combined = append(combined, existing...)
	combined = append(combined, extras...)
	return normalizeMessages(combined)
}

// MapErrors combines the wizard's recorded errors with the request-level
// extras in options.
func MapErrors(recorded wizard.ValidationErrors, options RenderOptions) ErrorMapping {
	payload := make(map[string][]string, len(recorded)+len(options.Errors))
	for name, msg := range recorded {
		payload[name] = append(payload[name], msg)
	}
	for key, msgs := range options.Errors {
		payload[key] = append(payload[key], msgs...)
	}

	mapping := MapErrorPayload(payload)
	mapping.Form = MergeFormErrors(mapping.Form, options.FormErrors...)
	return mapping
}

// MapErrorPayload keys messages by application field name. Keys that do not
// name a field become form-level errors so messages are not lost.
func MapErrorPayload(payload map[string][]string) ErrorMapping {
	mapping := ErrorMapping{
		Fields: make(map[string][]string),
	}
	for key, messages := range payload {
		normalized := normalizeMessages(messages)
		if len(normalized) == 0 {
			continue
		}
		name := strings.TrimSpace(key)
		if !application.Has(name) {
			mapping.Form = append(mapping.Form, normalized...)
			continue
		}
		mapping.Fields[name] = normalizeMessages(append(mapping.Fields[name], normalized...))
	}

	if len(mapping.Fields) == 0 {
		mapping.Fields = nil
	}
	mapping.Form = normalizeMessages(mapping.Form)
	return mapping
}

func normalizeMessages(messages []string) []string {
	if len(messages) == 0 {
		return nil
	}

	out := make([]string, 0, len(messages))
	seen := make(map[string]struct{}, len(messages))

	for _, message := range messages {
		trimmed := strings.TrimSpace(message)
		if trimmed == "" {
			continue
		}
		if _, exists := seen[trimmed]; exists {
			continue
		}
		seen[trimmed] = struct{}{}
		out = append(out, trimmed)
	}

	if len(out) == 0 {
		return nil
	}
	return out
}
