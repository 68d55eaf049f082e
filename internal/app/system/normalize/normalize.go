// internal/app/system/normalize/normalize.go
package normalize

import "strings"

// Email trims surrounding space and lowercases. Emails are stored and
// compared in this form.
func Email(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Username trims surrounding space. Usernames are case-sensitive.
func Username(s string) string {
	return strings.TrimSpace(s)
}

// Name trims and collapses runs of whitespace to a single space.
func Name(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// Status trims and lowercases a status value.
func Status(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
