package version

import (
	"strings"
	"testing"
)

func TestColored(t *testing.T) {
	orig := Version
	defer func() { Version = orig }()

	tests := []struct {
		version string
		enabled bool
		want    string
	}{
		{"1.2.3", false, "1.2.3"},
		{" ", false, "dev"},
		{"1.2", true, "1.2"},
		{"1.2.3-rc.1+build.7", true, "\x1b[33;1m1\x1b[0;22m.\x1b[32;1m2\x1b[0;22m.\x1b[34;1m3\x1b[0;22m-rc.1+build.7"},
	}
	for _, tt := range tests {
		Version = tt.version
		if got := Colored(tt.enabled); got != tt.want {
			t.Errorf("Colored(%v) for %q = %q, want %q", tt.enabled, tt.version, got, tt.want)
		}
	}
}

func TestDefaultVersion(t *testing.T) {
	if !strings.HasSuffix(Version, "-dev") {
		t.Errorf("Version = %q", Version)
	}
	if GitCommit != "" || BuildDate != "" {
		t.Errorf("build metadata must be empty outside release builds")
	}
}
