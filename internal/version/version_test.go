package version

import "testing"

func TestFullVersion(t *testing.T) {
	orig := Version
	defer func() { Version = orig }()

	tests := []struct {
		version string
		want    string
	}{
		{"dev", "netquality development build"},
		{"1.2.0", "netquality 1.2.0 (commit: unknown, built: unknown)"},
	}

	for _, tt := range tests {
		Version = tt.version
		if got := FullVersion(); got != tt.want {
			t.Errorf("FullVersion() = %q, want %q", got, tt.want)
		}
	}
}
