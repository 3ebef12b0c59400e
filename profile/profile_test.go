package profile

import (
	"slices"
	"testing"
)

func TestNew(t *testing.T) {
	p := New(WithMode("cpu"), WithPath("/tmp/profiles"), WithQuiet(true))

	want := Profiler{Mode: "cpu", Path: "/tmp/profiles", Quiet: true}
	if p != want {
		t.Errorf("New() = %+v, want %+v", p, want)
	}

	if got := New(WithMode("cpu"), WithMode("heap")).Mode; got != "heap" {
		t.Errorf("later option did not win: got %q", got)
	}
}

func TestProfiler_Disabled(t *testing.T) {
	for _, mode := range []string{"", "bogus"} {
		p := New(WithMode(mode))

		if p.Enabled() {
			t.Errorf("mode %q reported enabled", mode)
		}

		stop := p.Start()
		if _, ok := stop.(ignore); !ok {
			t.Errorf("mode %q started a profiler: %T", mode, stop)
		}

		stop.Stop()
	}
}

func TestModes(t *testing.T) {
	modes := Modes()

	if !slices.IsSorted(modes) {
		t.Errorf("Modes() not sorted: %v", modes)
	}

	for _, m := range modes {
		if !New(WithMode(m)).Enabled() {
			t.Errorf("listed mode %q is not enabled", m)
		}
	}
}
