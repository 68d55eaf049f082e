// internal/app/system/htmlsanitize/htmlsanitize.go
package htmlsanitize

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

// strict drops every tag; script and style bodies are dropped with them.
var strict = bluemonday.StrictPolicy()

// PlainText strips markup from user-supplied text and returns it unescaped
// and trimmed, ready to store as plain text.
func PlainText(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(html.UnescapeString(strict.Sanitize(s)))
}

// PlainTextPtr applies PlainText to an optional field. Empty results become nil.
func PlainTextPtr(s *string) *string {
	if s == nil {
		return nil
	}
	out := PlainText(*s)
	if out == "" {
		return nil
	}
	return &out
}
