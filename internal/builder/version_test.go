package builder

import (
	"os"
	"path/filepath"
	"runtime/debug"
	"testing"
)

// writeFakeGit puts an executable "git" script in dir.
func writeFakeGit(t *testing.T, dir, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, "git"), []byte(content), 0o755); err != nil {
		t.Fatalf("writeFakeGit: %v", err)
	}
}

func noBuildInfo(t *testing.T) {
	t.Helper()
	orig := readBuildInfo
	readBuildInfo = func() (*debug.BuildInfo, bool) { return nil, false }
	t.Cleanup(func() { readBuildInfo = orig })
}

func setVersion(t *testing.T, version, commit string) {
	t.Helper()
	origVersion, origCommit := Version, Commit
	Version, Commit = version, commit
	t.Cleanup(func() { Version, Commit = origVersion, origCommit })
}

func TestGetVersion(t *testing.T) {
	tests := []struct {
		name    string
		version string
		commit  string
		git     string // fake git script; empty means no git on PATH
		want    string
	}{
		{name: "ldflags priority", version: "1.2.3-ldflags", want: "1.2.3-ldflags"},
		{name: "dev uses git describe", version: "dev", git: "#!/bin/sh\nif [ \"$1\" = \"describe\" ]; then echo vX.Y.Z; exit 0; fi\nexit 1\n", want: "vX.Y.Z"},
		{name: "rev-parse fallback", git: "#!/bin/sh\nif [ \"$1\" = \"rev-parse\" ]; then echo abc123; exit 0; fi\nexit 1\n", want: "abc123"},
		{name: "commit fallback", commit: "deadbeef", want: "commit-deadbeef"},
		{name: "devel fallback", want: "devel"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			noBuildInfo(t)
			setVersion(t, tt.version, tt.commit)

			dir := t.TempDir()
			if tt.git != "" {
				writeFakeGit(t, dir, tt.git)
			}
			t.Setenv("PATH", dir)

			if got := GetVersion(); got != tt.want {
				t.Errorf("GetVersion() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestGetVersion_ReadBuildInfo(t *testing.T) {
	orig := readBuildInfo
	t.Cleanup(func() { readBuildInfo = orig })
	readBuildInfo = func() (*debug.BuildInfo, bool) {
		return &debug.BuildInfo{Main: debug.Module{Version: "v9.9.0"}}, true
	}
	setVersion(t, "dev", "")

	if got := GetVersion(); got != "v9.9.0" {
		t.Errorf("GetVersion() = %q, want %q", got, "v9.9.0")
	}
}
