// Package security guards user-entered text and catalog HTML: entity
// escaping, field validators and an allowlist HTML filter.
package security

import "strings"

var inputEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	`"`, "&quot;",
	"'", "&#039;",
)

// EscapeInput replaces the five HTML-significant characters with entities.
//
// It is not idempotent: escaping "&amp;" again yields "&amp;amp;". Apply it
// once, where text is embedded into markup or a prompt, and never store the
// escaped form.
func EscapeInput(s string) string {
	return inputEscaper.Replace(s)
}
