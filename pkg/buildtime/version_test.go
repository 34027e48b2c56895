package buildtime_test

import (
	"strings"
	"testing"

	"github.com/opst/scorch-console/pkg/buildtime"
)

func TestUserAgent(t *testing.T) {
	ua := buildtime.UserAgent()
	if !strings.HasPrefix(ua, buildtime.Product+"/") {
		t.Errorf("unexpected prefix: %s", ua)
	}
	if strings.ContainsAny(ua, " \n") {
		t.Errorf("user agent has spaces: %q", ua)
	}
	if !strings.HasPrefix(buildtime.VersionString(), buildtime.Version()+" (commit: ") {
		t.Errorf("unexpected version string: %s", buildtime.VersionString())
	}
}
