package version

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetInfo_ReflectsLinkerVariables(t *testing.T) {
	saved := []string{Version, GitCommit, BuildTime}
	t.Cleanup(func() { Version, GitCommit, BuildTime = saved[0], saved[1], saved[2] })

	Version, GitCommit, BuildTime = "2.3.1", "9f8e7d6c5b4a", "2026-03-01T09:00:00Z"

	info := GetInfo()

	assert.Equal(t, Info{Version: "2.3.1", GitCommit: "9f8e7d6c5b4a", BuildTime: "2026-03-01T09:00:00Z", GoVersion: GoVersion}, info)
}

func TestInfo_Banner(t *testing.T) {
	info := Info{Version: "2.3.1", GitCommit: "9f8e7d6", BuildTime: "2026-03-01", GoVersion: "go1.25.0"}

	assert.Equal(t, "Nalsi v2.3.1\nCommit: 9f8e7d6\nBuilt: 2026-03-01\nGo: go1.25.0", info.String())
}

func TestInfo_CommitAbbreviation(t *testing.T) {
	tests := []struct {
		commit    string
		short     string
		userAgent string
	}{
		{"9f8e7d6c5b4a", "v2.3.1 (9f8e7d6)", "Nalsi/2.3.1 (+9f8e7d6)"},
		{"9f8e7d6", "v2.3.1 (9f8e7d6)", "Nalsi/2.3.1 (+9f8e7d6)"},
		{"dev", "v2.3.1 (dev)", "Nalsi/2.3.1 (+dev)"},
		{"", "v2.3.1 ()", "Nalsi/2.3.1 (+)"},
	}

	for _, tt := range tests {
		t.Run(tt.commit, func(t *testing.T) {
			info := Info{Version: "2.3.1", GitCommit: tt.commit}
			assert.Equal(t, tt.short, info.Short())
			assert.Equal(t, tt.userAgent, info.UserAgent())
		})
	}
}

func TestDefaults_AreUsableUnlinked(t *testing.T) {
	info := Info{Version: "0.1.0", GitCommit: "unknown"}

	assert.Equal(t, "v0.1.0 (unknown)", info.Short())
	assert.NotEmpty(t, GoVersion)
}
