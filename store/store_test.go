package store

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/ardnew/permute/lang"
)

func TestOpen_Examples(t *testing.T) {
	dir := t.TempDir()

	s, err := Open(context.Background(), WithSearchPath(dir))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	if got, want := s.Path(), filepath.Join(dir, FileName); got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}

	want := []string{"Disjunction Example", "Range Example", "Variables Example"}
	if diff := cmp.Diff(want, s.Names()); diff != "" {
		t.Errorf("Names() mismatch (-want +got):\n%s", diff)
	}

	for name, template := range Examples() {
		if _, err := lang.ParseString(context.Background(), template); err != nil {
			t.Errorf("example %q does not parse: %v", name, err)
		}
	}

	if _, err := os.Stat(s.Path()); !errors.Is(err, os.ErrNotExist) {
		t.Errorf("Open() created the store file: %v", err)
	}
}

func TestOpen_WithoutExamples(t *testing.T) {
	s, err := Open(context.Background(),
		WithSearchPath(t.TempDir()),
		WithExamples(false),
	)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
}

func TestStore_SaveAndReopen(t *testing.T) {
	ctx := context.Background()
	dir := filepath.Join(t.TempDir(), "nested")

	s, err := Open(ctx, WithSearchPath(dir), WithExamples(false))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	if err := s.Put(ctx, "pets", "a {cat|dog}"); err != nil {
		t.Fatalf("Put() error = %v", err)
	}

	if err := s.Save(ctx); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	info, err := os.Stat(s.Path())
	if err != nil {
		t.Fatalf("Stat() error = %v", err)
	}

	if perm := info.Mode().Perm(); perm != fileMode {
		t.Errorf("file mode = %v, want %v", perm, fileMode)
	}

	reopened, err := Open(ctx, WithSearchPath(dir))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	got, err := reopened.Get("pets")
	if err != nil || got != "a {cat|dog}" {
		t.Errorf("Get(pets) = %q, %v", got, err)
	}

	if reopened.Len() != 1 {
		t.Errorf("reopened store holds examples: %v", reopened.Names())
	}
}

func TestStore_SearchOrder(t *testing.T) {
	ctx := context.Background()
	first, second := t.TempDir(), t.TempDir()

	if err := os.WriteFile(filepath.Join(second, FileName), []byte("found: '{a|b}'\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	s, err := Open(ctx, WithSearchPath(first, second))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	if got, want := s.Path(), filepath.Join(second, FileName); got != want {
		t.Errorf("Path() = %q, want %q", got, want)
	}

	if got, _ := s.Get("found"); got != "{a|b}" {
		t.Errorf("Get(found) = %q", got)
	}
}

func TestStore_Errors(t *testing.T) {
	ctx := context.Background()

	s, err := Open(ctx, WithSearchPath(t.TempDir()), WithExamples(false))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	tests := []struct {
		name string
		err  error
		want error
	}{
		{"get missing", func() error { _, err := s.Get("missing"); return err }(), ErrNotFound},
		{"delete missing", s.Delete("missing"), ErrNotFound},
		{"empty name", s.Put(ctx, "  ", "x"), ErrInvalidName},
		{"multiline name", s.Put(ctx, "a\nb", "x"), ErrInvalidName},
		{"unparsable", s.Put(ctx, "bad", "{1;5;0}"), ErrInvalidTemplate},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if !errors.Is(tt.err, tt.want) {
				t.Errorf("error = %v, want %v", tt.err, tt.want)
			}
		})
	}

	var perr *lang.ParseError
	if err := s.Put(ctx, "bad", "{1;5;0}"); !errors.As(err, &perr) {
		t.Errorf("Put() error %v does not carry the parse error", err)
	}
}

func TestOpen_DecodeError(t *testing.T) {
	dir := t.TempDir()

	if err := os.WriteFile(filepath.Join(dir, FileName), []byte("- not\n- a mapping\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	if _, err := Open(context.Background(), WithSearchPath(dir)); !errors.Is(err, ErrDecode) {
		t.Errorf("Open() error = %v, want %v", err, ErrDecode)
	}
}

func TestStore_Delete(t *testing.T) {
	s, err := Open(context.Background(), WithSearchPath(t.TempDir()))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}

	if err := s.Delete("Range Example"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}

	if slices.Contains(s.Names(), "Range Example") {
		t.Errorf("Names() still contains deleted template: %v", s.Names())
	}
}

func TestSearchPath(t *testing.T) {
	sep := string(os.PathListSeparator)

	got := searchPath("/config", "/a"+sep+sep+"/b")
	if len(got) == 0 || got[0] != "/config" {
		t.Fatalf("searchPath() = %v, want /config first", got)
	}

	for _, dir := range []string{"/a", "/b"} {
		if !slices.Contains(got, dir) {
			t.Errorf("searchPath() = %v, missing %q", got, dir)
		}
	}

	if slices.Contains(got, "") {
		t.Errorf("searchPath() = %q, contains an empty entry", got)
	}
}
