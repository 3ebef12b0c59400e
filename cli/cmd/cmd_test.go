package cmd

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ardnew/permute/store"
)

// testContext returns a context whose commands read stdin from stdin,
// write to the returned buffer, and use an empty store in a temporary
// directory.
func testContext(t *testing.T, stdin string) (context.Context, *bytes.Buffer) {
	t.Helper()

	var out bytes.Buffer

	ctx := WithOutput(t.Context(), &out)
	ctx = WithInput(ctx, strings.NewReader(stdin))
	ctx = WithStoreOptions(ctx,
		store.WithSearchPath(t.TempDir()),
		store.WithExamples(false),
	)

	return ctx, &out
}

func TestInput_Text(t *testing.T) {
	ctx, _ := testContext(t, "{x|y}\r\n")

	st, err := openStore(ctx)
	if err != nil {
		t.Fatal(err)
	}

	if err := st.Put(ctx, "pets", "a {cat|dog}"); err != nil {
		t.Fatal(err)
	}

	if err := st.Save(ctx); err != nil {
		t.Fatal(err)
	}

	file := filepath.Join(t.TempDir(), "template.txt")
	if err := os.WriteFile(file, []byte("{1;2;1}\n\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		input Input
		want  string
	}{
		{"argument", Input{Template: "abc"}, "abc"},
		{"stdin", Input{}, "{x|y}"},
		{"file", Input{Source: file}, "{1;2;1}\n"},
		{"store", Input{Name: "pets"}, "a {cat|dog}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.input.text(ctx)
			if err != nil {
				t.Fatalf("text() error = %v", err)
			}

			if got != tt.want {
				t.Errorf("text() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestInput_TextErrors(t *testing.T) {
	ctx, _ := testContext(t, "")

	tests := []struct {
		name  string
		input Input
		want  error
	}{
		{"conflict", Input{Template: "a", Name: "b"}, ErrInputConflict},
		{"missing file", Input{Source: filepath.Join(t.TempDir(), "nope")}, ErrReadInput},
		{"unknown name", Input{Name: "nope"}, store.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := tt.input.text(ctx); !errors.Is(err, tt.want) {
				t.Errorf("text() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestOutputFrom_Default(t *testing.T) {
	if w := outputFrom(t.Context()); w != os.Stdout {
		t.Errorf("outputFrom() = %v, want os.Stdout", w)
	}

	if r := inputFrom(t.Context()); r != os.Stdin {
		t.Errorf("inputFrom() = %v, want os.Stdin", r)
	}
}
