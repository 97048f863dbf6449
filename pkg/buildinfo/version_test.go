package buildinfo

import "testing"

func TestTemplate(t *testing.T) {
	defer func(v, c, d string) { Version, Commit, Date = v, c, d }(Version, Commit, Date)
	Version, Commit, Date = "v0.3.0", "abc1234", "2026-01-02"

	if got, want := Template(), "{{.Name}} v0.3.0 (abc1234, built 2026-01-02)\n"; got != want {
		t.Errorf("Template() = %q, want %q", got, want)
	}
	if got := Get(); got.Version != "v0.3.0" || got.Commit != "abc1234" || got.Date != "2026-01-02" {
		t.Errorf("Get() = %+v", got)
	}
}
