package cli

import (
	"runtime/debug"
	"testing"

	"github.com/chessmine/chessmine/internal/buildinfo"
)

func stubBuildInfo(t *testing.T, bi *debug.BuildInfo, ok bool) {
	t.Helper()
	orig := readBuildInfo
	readBuildInfo = func() (*debug.BuildInfo, bool) { return bi, ok }
	t.Cleanup(func() { readBuildInfo = orig })
}

func stampRelease(t *testing.T, version, commit, date string) {
	t.Helper()
	origVersion, origCommit, origDate := buildinfo.Version, buildinfo.Commit, buildinfo.Date
	buildinfo.Version, buildinfo.Commit, buildinfo.Date = version, commit, date
	t.Cleanup(func() {
		buildinfo.Version, buildinfo.Commit, buildinfo.Date = origVersion, origCommit, origDate
	})
}

func TestCurrentVersionInfoFromBuildMetadata(t *testing.T) {
	stampRelease(t, "", "", "")
	stubBuildInfo(t, &debug.BuildInfo{
		Main: debug.Module{Version: "v0.3.1"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "abc123"},
			{Key: "vcs.time", Value: "2025-01-02T03:04:05Z"},
		},
	}, true)

	info := currentVersionInfo()
	if info.Version != "v0.3.1" {
		t.Errorf("Version = %q, want v0.3.1", info.Version)
	}
	if info.Commit != "abc123" {
		t.Errorf("Commit = %q, want abc123", info.Commit)
	}
	if info.BuiltAt != "2025-01-02T03:04:05Z" {
		t.Errorf("BuiltAt = %q, want the vcs.time value", info.BuiltAt)
	}
	if info.GoVersion == "" || info.Platform == "" {
		t.Errorf("missing runtime fields: %+v", info)
	}
}

func TestCurrentVersionInfoStampedReleaseWins(t *testing.T) {
	stampRelease(t, "v1.0.0", "deadbeef", "2025-06-01")
	stubBuildInfo(t, &debug.BuildInfo{
		Main:     debug.Module{Version: "v0.0.9"},
		Settings: []debug.BuildSetting{{Key: "vcs.revision", Value: "abc123"}},
	}, true)

	info := currentVersionInfo()
	if info.Version != "v1.0.0" || info.Commit != "deadbeef" || info.BuiltAt != "2025-06-01" {
		t.Errorf("stamped values lost: %+v", info)
	}
}

func TestCurrentVersionInfoDevelFallback(t *testing.T) {
	stampRelease(t, "", "", "")

	stubBuildInfo(t, &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}}, true)
	if info := currentVersionInfo(); info.Version != "devel" {
		t.Errorf("Version = %q, want devel for source builds", info.Version)
	}

	stubBuildInfo(t, nil, false)
	if info := currentVersionInfo(); info.Version != "devel" {
		t.Errorf("Version = %q, want devel without build metadata", info.Version)
	}
}
