package version

import (
	"strings"
	"testing"
)

func TestInfoString(t *testing.T) {
	dev := Info{Version: "dev", CommitHash: "abc", BuildTime: "now"}
	if got := dev.String(); got != "wbapi dev (commit abc, built now)" {
		t.Errorf("String() = %q", got)
	}

	tagged := Info{Version: "v1.2.0", CommitHash: "abcdef123", BuildTime: "now"}
	if got := tagged.String(); got != "wbapi v1.2.0 (commit abcdef123, built now)" {
		t.Errorf("String() = %q", got)
	}
}

func TestShort(t *testing.T) {
	if got := (Info{CommitHash: "0123456789"}).Short(); got != "0123456" {
		t.Errorf("Short() = %q", got)
	}
	if got := (Info{CommitHash: "dev"}).Short(); got != "dev" {
		t.Errorf("Short() = %q", got)
	}
}

func TestUserAgent(t *testing.T) {
	ua := Info{Version: "v1.0.0", GoVersion: "go1.24.6"}.UserAgent()
	if ua != "wbapi/v1.0.0 ("+ProjectURL+") go1.24.6" {
		t.Errorf("UserAgent() = %q", ua)
	}

	dev := Get().UserAgent()
	if !strings.HasPrefix(dev, "wbapi/dev-") || !strings.Contains(dev, ProjectURL) {
		t.Errorf("UserAgent() = %q", dev)
	}
}
