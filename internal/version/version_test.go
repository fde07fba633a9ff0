package version

import (
	"testing"

	"github.com/fatih/color"
)

func TestVersion_DefaultValues(t *testing.T) {
	if Version == "" {
		t.Error("Version should have a default value")
	}
}

func TestColoredWithoutColor(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	origVersion := Version
	defer func() { Version = origVersion }()

	for _, v := range []string{"1.2.3", "0.1.0-dev", "2"} {
		Version = v
		if got := Colored(); got != v {
			t.Errorf("Colored() = %q, want %q", got, v)
		}
	}
}

func TestFingerprint(t *testing.T) {
	origVersion, origCommit := Version, GitCommit
	defer func() {
		Version = origVersion
		GitCommit = origCommit
	}()

	Version = "1.2.3"
	GitCommit = ""
	if got := Fingerprint(); got != "salc 1.2.3" {
		t.Fatalf("Fingerprint() = %q", got)
	}
	GitCommit = "abc123"
	if got := Fingerprint(); got != "salc 1.2.3+abc123" {
		t.Fatalf("Fingerprint() = %q", got)
	}
}
