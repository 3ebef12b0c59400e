package repl

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestHistory_AddAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cache", baseHistory)

	h := NewHistory(path, 0)

	for _, e := range []HistoryEntry{
		{"a {b|c}", modeExpand},
		{"list", modeCommand},
		{"a {b|c}", modeExpand}, // moves to the end
		{"  ", modeExpand},      // ignored
		{"list", modeExpand},    // distinct mode
		{"list", modeExpand},    // repeat of latest
	} {
		if err := h.Add(e.Line, e.Mode); err != nil {
			t.Fatalf("Add(%q) error = %v", e.Line, err)
		}
	}

	want := []HistoryEntry{
		{"list", modeCommand},
		{"a {b|c}", modeExpand},
		{"list", modeExpand},
	}
	if diff := cmp.Diff(want, h.Entries()); diff != "" {
		t.Errorf("Entries() mismatch (-want +got):\n%s", diff)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if got, want := string(data), "C:list\nE:a {b|c}\nE:list\n"; got != want {
		t.Errorf("history file = %q, want %q", got, want)
	}

	loaded := NewHistory(path, 0)
	if err := loaded.Load(); err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if diff := cmp.Diff(want, loaded.Entries()); diff != "" {
		t.Errorf("loaded entries mismatch (-want +got):\n%s", diff)
	}
}

func TestHistory_Size(t *testing.T) {
	path := filepath.Join(t.TempDir(), baseHistory)
	h := NewHistory(path, 2)

	for _, line := range []string{"one", "two", "three"} {
		if err := h.Add(line, modeExpand); err != nil {
			t.Fatal(err)
		}
	}

	if got, _ := h.Entry(0); got.Line != "two" {
		t.Errorf("Entry(0) = %q, want %q", got.Line, "two")
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}

	if got, want := string(data), "E:two\nE:three\n"; got != want {
		t.Errorf("history file = %q, want %q", got, want)
	}
}

func TestHistory_Load(t *testing.T) {
	path := filepath.Join(t.TempDir(), baseHistory)

	if err := NewHistory(path, 0).Load(); err != nil {
		t.Errorf("Load() of missing file error = %v", err)
	}

	if err := os.WriteFile(path, []byte("plain\n\nC:help\nE:x\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	h := NewHistory(path, 0)
	if err := h.Load(); err != nil {
		t.Fatal(err)
	}

	want := []HistoryEntry{
		{"plain", modeExpand},
		{"help", modeCommand},
		{"x", modeExpand},
	}
	if diff := cmp.Diff(want, h.Entries()); diff != "" {
		t.Errorf("Entries() mismatch (-want +got):\n%s", diff)
	}

	if _, err := h.Entry(3); err != ErrOutOfBounds {
		t.Errorf("Entry(3) error = %v, want %v", err, ErrOutOfBounds)
	}
}

func TestHistory_SurroundingSpace(t *testing.T) {
	path := filepath.Join(t.TempDir(), baseHistory)

	h := NewHistory(path, 0)
	if err := h.Add(" {a|b} ", modeExpand); err != nil {
		t.Fatal(err)
	}

	loaded := NewHistory(path, 0)
	if err := loaded.Load(); err != nil {
		t.Fatal(err)
	}

	if e, _ := loaded.Entry(0); e.Line != " {a|b} " {
		t.Errorf("loaded entry = %q, want %q", e.Line, " {a|b} ")
	}
}

func TestHistory_InMemory(t *testing.T) {
	h := NewHistory("", 0)

	if err := h.Add("x", modeExpand); err != nil {
		t.Fatal(err)
	}

	if h.Len() != 1 {
		t.Errorf("Len() = %d, want 1", h.Len())
	}
}
