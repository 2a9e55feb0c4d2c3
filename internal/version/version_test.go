package version

import (
	"strings"
	"testing"

	"github.com/fatih/color"
)

func TestCurrentTrimsMetadata(t *testing.T) {
	origVersion, origCommit := Version, GitCommit
	defer func() { Version, GitCommit = origVersion, origCommit }()

	Version = "  1.2.3 "
	GitCommit = "\tabc123\n"
	info := Current()
	if info.Version != "1.2.3" || info.GitCommit != "abc123" {
		t.Fatalf("unexpected info: %+v", info)
	}

	Version = ""
	if got := Current().Version; got != "dev" {
		t.Fatalf("empty version = %q, want dev", got)
	}
}

func TestColoredKeepsSuffix(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	tests := []struct{ in, want string }{
		{"0.3.0-dev", "0.3.0-dev"},
		{"1.2.3+build.7", "1.2.3+build.7"},
		{"nightly", "nightly"},
	}
	for _, tt := range tests {
		if got := (Info{Version: tt.in}).Colored(); got != tt.want {
			t.Errorf("Colored(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestBannerMentionsTagline(t *testing.T) {
	prev := color.NoColor
	color.NoColor = true
	defer func() { color.NoColor = prev }()

	banner := Info{Version: "1.0.0"}.Banner()
	if !strings.HasPrefix(banner, "zephyr 1.0.0") || !strings.Contains(banner, Tagline) {
		t.Fatalf("unexpected banner %q", banner)
	}
}
