package color_test

import (
	"strings"
	"testing"

	"turtle/pkg/color"
)

func TestDisabledColorIsPlain(t *testing.T) {
	color.EnableColor(false)
	defer color.EnableColor(true)

	if color.IsColorEnabled() {
		t.Fatal("expected color to be disabled")
	}
	if got := color.RedText("boom"); got != "boom" {
		t.Errorf("expected plain text, got %q", got)
	}
	if got := color.Error("boom"); got != "Error: boom" {
		t.Errorf("unexpected error text %q", got)
	}
	if got := color.ErrorWithPosition(3, 7, "unexpected symbol", ""); got != "Error at 3:7: unexpected symbol" {
		t.Errorf("unexpected positioned error %q", got)
	}
	if got := color.ErrorWithPosition(1, 2, "bad", "MOVE ("); got != "Error at 1:2: bad\nMOVE (" {
		t.Errorf("unexpected positioned error with context %q", got)
	}
}

func TestEnabledColorEmitsEscapes(t *testing.T) {
	color.EnableColor(true)

	got := color.GreenText("ok")
	if !strings.Contains(got, "ok") || !strings.Contains(got, "\x1b[") {
		t.Errorf("expected an ANSI sequence around the text, got %q", got)
	}
}
