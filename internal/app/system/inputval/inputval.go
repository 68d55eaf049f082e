// internal/app/system/inputval/inputval.go
package inputval

import (
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// emailRE: local part of letters, digits and _.+- ; domain with at least one dot.
var emailRE = regexp.MustCompile(`^[A-Za-z0-9_.+-]+@[A-Za-z0-9-]+\.[A-Za-z0-9.-]+$`)

var usernameRE = regexp.MustCompile(`^[A-Za-z0-9_.-]{3,30}$`)

// IsValidEmail reports whether s is an acceptable registration email.
func IsValidEmail(s string) bool {
	s = strings.TrimSpace(s)
	if s == "" {
		return false
	}
	return emailRE.MatchString(s)
}

// LooksLikeEmail reports whether a login identifier should be treated as
// an email address rather than a username.
func LooksLikeEmail(s string) bool {
	return strings.Contains(s, "@")
}

// IsValidUsername reports whether s is 3-30 characters of letters, digits, '.', '_' or '-'.
func IsValidUsername(s string) bool {
	return usernameRE.MatchString(s)
}

// IsValidID reports whether s parses as a UUID, the format of every document id.
func IsValidID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
