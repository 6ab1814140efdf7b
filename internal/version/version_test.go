package version

import (
	"strings"
	"testing"
)

func TestString(t *testing.T) {
	got := String("string-art")
	if !strings.HasPrefix(got, "string-art "+Version) {
		t.Errorf("String() = %q, want prefix %q", got, "string-art "+Version)
	}
	if !strings.Contains(got, GitCommit) {
		t.Errorf("String() = %q, missing commit %q", got, GitCommit)
	}
}
