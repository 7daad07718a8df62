package version

import (
	"testing"
	"time"
)

func setVars(t *testing.T, v, commit, built string) {
	t.Helper()
	pv, pc, pb := Version, GitCommit, BuildTime
	t.Cleanup(func() { Version, GitCommit, BuildTime = pv, pc, pb })
	Version, GitCommit, BuildTime = v, commit, built
}

func TestGetVersionInfoFromLdflags(t *testing.T) {
	setVars(t, "1.2.0", "0123456789abcdef", "2026-03-01T10:00:00Z")

	info := GetVersionInfo()
	if info.Version != "1.2.0" || !info.Release {
		t.Errorf("version = %q release = %v", info.Version, info.Release)
	}
	if info.GitCommit != "0123456" {
		t.Errorf("commit = %q, want shortened", info.GitCommit)
	}
	want := time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)
	if !info.BuildDate().Equal(want) {
		t.Errorf("BuildDate = %v", info.BuildDate())
	}
}

func TestReleaseFlag(t *testing.T) {
	tests := []struct {
		version string
		release bool
	}{
		{"dev", false},
		{"0.3.0", true},
		{"0.3.0-dirty", false},
	}
	for _, tt := range tests {
		setVars(t, tt.version, "abc", "")
		if got := GetVersionInfo().Release; got != tt.release {
			t.Errorf("Release(%q) = %v, want %v", tt.version, got, tt.release)
		}
	}
}

func TestShort(t *testing.T) {
	tests := []struct {
		info Info
		want string
	}{
		{Info{Version: "dev"}, "dev"},
		{Info{Version: "1.0.0", GitCommit: "abc1234"}, "1.0.0-abc1234"},
		{Info{Version: "1.0.0", GitCommit: "abc1234", Dirty: true}, "1.0.0-abc1234-dirty"},
		{Info{Version: "1.0.0", Dirty: true}, "1.0.0"},
	}
	for _, tt := range tests {
		if got := tt.info.Short(); got != tt.want {
			t.Errorf("Short(%+v) = %q, want %q", tt.info, got, tt.want)
		}
	}
}

func TestBuildDateInvalid(t *testing.T) {
	if d := (Info{BuildTime: "yesterday"}).BuildDate(); !d.IsZero() {
		t.Errorf("BuildDate = %v, want zero", d)
	}
}
