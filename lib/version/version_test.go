// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package version

import (
	"strings"
	"testing"
)

func TestInfoPrefersLdflags(t *testing.T) {
	savedCommit, savedTime := GitCommit, BuildTime
	t.Cleanup(func() { GitCommit, BuildTime = savedCommit, savedTime })

	GitCommit = "abc1234"
	BuildTime = "2026-03-20T00:00:00Z"

	info := Info()
	if !strings.HasPrefix(info, Version+" (abc1234") {
		t.Errorf("Info() = %q, want prefix %q", info, Version+" (abc1234")
	}
	if !strings.Contains(info, "2026-03-20T00:00:00Z") {
		t.Errorf("Info() = %q, missing build time", info)
	}
}

func TestFullIncludesPlatform(t *testing.T) {
	full := Full()
	if !strings.Contains(full, "Go: ") || !strings.Contains(full, "Platform: ") {
		t.Errorf("Full() = %q, want Go and Platform lines", full)
	}
}

func TestUserAgent(t *testing.T) {
	if got := UserAgent(); got != "tripswap/"+Version {
		t.Errorf("UserAgent() = %q", got)
	}
}
