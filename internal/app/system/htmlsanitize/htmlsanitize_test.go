package htmlsanitize_test

import (
	"testing"

	"github.com/dalemusser/kasula/internal/app/system/htmlsanitize"
)

func TestPlainText_Empty(t *testing.T) {
	if got := htmlsanitize.PlainText(""); got != "" {
		t.Errorf("expected empty string, got %q", got)
	}
}

func TestPlainText_Unchanged(t *testing.T) {
	input := "Great soup, would cook again!"
	if got := htmlsanitize.PlainText(input); got != input {
		t.Errorf("expected plain text unchanged, got %q", got)
	}
}

func TestPlainText_KeepsAmpersand(t *testing.T) {
	input := "Salt & pepper"
	if got := htmlsanitize.PlainText(input); got != input {
		t.Errorf("expected %q, got %q", input, got)
	}
}

func TestPlainText_StripsTags(t *testing.T) {
	got := htmlsanitize.PlainText("<p><strong>Bold</strong> claim</p>")
	if got != "Bold claim" {
		t.Errorf("expected tags stripped, got %q", got)
	}
}

func TestPlainText_RemovesScript(t *testing.T) {
	got := htmlsanitize.PlainText("<p>Hello</p><script>alert('xss')</script>")
	if got != "Hello" {
		t.Errorf("expected script removed, got %q", got)
	}
}

func TestPlainText_RemovesHandlers(t *testing.T) {
	got := htmlsanitize.PlainText(`<button onclick="alert('xss')">Click</button>`)
	if got != "Click" {
		t.Errorf("expected only text to remain, got %q", got)
	}
}

func TestPlainTextPtr(t *testing.T) {
	if htmlsanitize.PlainTextPtr(nil) != nil {
		t.Error("expected nil for nil input")
	}
	blank := "<b></b>"
	if htmlsanitize.PlainTextPtr(&blank) != nil {
		t.Error("expected nil when nothing but markup remains")
	}
	bio := " I <i>love</i> bread "
	got := htmlsanitize.PlainTextPtr(&bio)
	if got == nil || *got != "I love bread" {
		t.Errorf("unexpected result %v", got)
	}
}
