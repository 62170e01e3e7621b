package assets

import (
	"strings"
	"testing"
)

func TestHelpText(t *testing.T) {
	h := HelpText()
	if !strings.HasPrefix(h, "1. Left click adds a vertex") || strings.HasSuffix(h, "\n") {
		t.Fatalf("unexpected help text %q", h)
	}
	if n := strings.Count(h, "\n"); n != 4 {
		t.Fatalf("expected 5 lines, got %d", n+1)
	}
}
