package version

import "testing"

func TestInfo(t *testing.T) {
	defer func(v, c, d string) { Version, GitCommit, BuildDate = v, c, d }(Version, GitCommit, BuildDate)

	Version, GitCommit, BuildDate = "v0.3.0", "abc1234", "2026-01-01"
	if got, want := Info(), "v0.3.0 (abc1234) built 2026-01-01"; got != want {
		t.Errorf("Info() = %q, want %q", got, want)
	}
}
