package cmd

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ardnew/permute/store"
)

func TestTemplate_Lifecycle(t *testing.T) {
	ctx, out := testContext(t, "{x|y}\n")

	if err := (&TemplateSave{Name: "pets", Template: "a {cat|dog}"}).Run(ctx); err != nil {
		t.Fatalf("save error = %v", err)
	}

	if err := (&TemplateSave{Name: "stdin"}).Run(ctx); err != nil {
		t.Fatalf("save from stdin error = %v", err)
	}

	if err := (&TemplateShow{Name: "pets"}).Run(ctx); err != nil {
		t.Fatalf("show error = %v", err)
	}

	if got, want := out.String(), "a {cat|dog}\n"; got != want {
		t.Errorf("show output = %q, want %q", got, want)
	}

	out.Reset()

	if err := (&TemplateList{Names: true}).Run(ctx); err != nil {
		t.Fatalf("list error = %v", err)
	}

	if got, want := out.String(), "pets\nstdin\n"; got != want {
		t.Errorf("list --names output = %q, want %q", got, want)
	}

	out.Reset()

	if err := (&TemplateList{}).Run(ctx); err != nil {
		t.Fatalf("list error = %v", err)
	}

	if got, want := out.String(), "pets   a {cat|dog}\nstdin  {x|y}\n"; got != want {
		t.Errorf("list output = %q, want %q", got, want)
	}

	if err := (&TemplateDelete{Name: "pets"}).Run(ctx); err != nil {
		t.Fatalf("delete error = %v", err)
	}

	if err := (&TemplateShow{Name: "pets"}).Run(ctx); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("show after delete error = %v, want %v", err, store.ErrNotFound)
	}

	if err := (&TemplateDelete{Name: "pets"}).Run(ctx); !errors.Is(err, store.ErrNotFound) {
		t.Errorf("second delete error = %v, want %v", err, store.ErrNotFound)
	}
}

func TestTemplateSave_Invalid(t *testing.T) {
	ctx, _ := testContext(t, "")

	tests := []struct {
		name string
		save TemplateSave
		want error
	}{
		{"name", TemplateSave{Name: " ", Template: "x"}, store.ErrInvalidName},
		{"template", TemplateSave{Name: "bad", Template: "{1;5;0}"}, store.ErrInvalidTemplate},
		{"conflict", TemplateSave{Name: "x", Template: "x", Source: "-"}, ErrInputConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.save.Run(ctx); !errors.Is(err, tt.want) {
				t.Errorf("Run() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestTemplatePath_Run(t *testing.T) {
	ctx, out := testContext(t, "")

	if err := (TemplatePath{}).Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if got := strings.TrimSpace(out.String()); filepath.Base(got) != store.FileName {
		t.Errorf("Run() output = %q, want a path to %s", got, store.FileName)
	}
}
