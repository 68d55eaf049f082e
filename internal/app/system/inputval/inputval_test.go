package inputval

import "testing"

func TestIsValidEmail(t *testing.T) {
	tests := []struct {
		email string
		want  bool
	}{
		// Valid emails
		{"user@example.com", true},
		{"user.name@example.com", true},
		{"user+tag@example.com", true},
		{"user_name@subdomain.example.com", true},
		{"user123@example.co.uk", true},
		{"a@b.co", true},

		// Invalid emails - empty/whitespace
		{"", false},
		{"   ", false},

		// Invalid emails - missing parts
		{"user", false},
		{"user@", false},
		{"@example.com", false},
		{"user@localhost", false}, // domain needs a dot

		// Invalid emails - other malformed
		{"User Name <user@example.com>", false},
		{"user @example.com", false},
		{"user@exam ple.com", false},
		{"user@@example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.email, func(t *testing.T) {
			got := IsValidEmail(tt.email)
			if got != tt.want {
				t.Errorf("IsValidEmail(%q) = %v, want %v", tt.email, got, tt.want)
			}
		})
	}
}

func TestIsValidUsername(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"alice", true},
		{"bob_42", true},
		{"a.b-c", true},
		{"ab", false},
		{"", false},
		{"has space", false},
		{"way_too_long_username_for_this_service", false},
		{"alice@example.com", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			if got := IsValidUsername(tt.in); got != tt.want {
				t.Errorf("IsValidUsername(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestLooksLikeEmail(t *testing.T) {
	if !LooksLikeEmail("alice@example.com") {
		t.Error("expected email-shaped identifier to be detected")
	}
	if LooksLikeEmail("alice") {
		t.Error("expected plain username not to look like an email")
	}
}

func TestIsValidID(t *testing.T) {
	if !IsValidID("00010203-0405-0607-0809-0a0b0c0d0e0f") {
		t.Error("expected uuid to be valid")
	}
	if IsValidID("not-an-id") {
		t.Error("expected garbage to be invalid")
	}
}
