package styles

import (
	"strings"
	"testing"
)

func TestKeys(t *testing.T) {
	got := Keys("a", "add", "d", "delete", "dangling")
	if !strings.Contains(got, "add") || !strings.Contains(got, "delete") {
		t.Errorf("Keys() = %q", got)
	}
	if strings.Contains(got, "dangling") {
		t.Errorf("odd trailing argument rendered: %q", got)
	}
	if Keys() != "" {
		t.Error("Keys() with no pairs should be empty")
	}
}
