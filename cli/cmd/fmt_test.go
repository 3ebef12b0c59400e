package cmd

import (
	"errors"
	"testing"

	"github.com/ardnew/permute/lang"
)

func TestNative_Run(t *testing.T) {
	ctx, out := testContext(t, "")

	n := Native{Input: Input{Template: "{+1;2;1} x"}}
	if err := n.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if got, want := out.String(), "{1;2;1} x\n"; got != want {
		t.Errorf("Run() output = %q, want %q", got, want)
	}
}

func TestJSON_Run(t *testing.T) {
	ctx, out := testContext(t, "")

	j := JSON{Input: Input{Template: "a {x|y}"}, Indent: 0}
	if err := j.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := `[{"literal":"a "},{"permutation":{"disjunction":["x","y"]}}]` + "\n"
	if got := out.String(); got != want {
		t.Errorf("Run() output = %q, want %q", got, want)
	}
}

func TestYAML_Run(t *testing.T) {
	ctx, out := testContext(t, "")

	y := YAML{Input: Input{Template: "abc"}, Indent: 2}
	if err := y.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	if got, want := out.String(), "- literal: abc\n"; got != want {
		t.Errorf("Run() output = %q, want %q", got, want)
	}
}

func TestAST_Run(t *testing.T) {
	ctx, out := testContext(t, "")

	a := AST{Input: Input{Template: "a {<i>}"}, Indent: 4}
	if err := a.Run(ctx); err != nil {
		t.Fatalf("Run() error = %v", err)
	}

	want := "statement\n    literal \"a \"\n    reference \"i\"\n"
	if got := out.String(); got != want {
		t.Errorf("Run() output = %q, want %q", got, want)
	}
}

func TestFmt_RunParseError(t *testing.T) {
	ctx, out := testContext(t, "")

	err := (&JSON{Input: Input{Template: "{a|b"}}).Run(ctx)

	var perr *lang.ParseError
	if !errors.As(err, &perr) {
		t.Fatalf("Run() error = %v, want *lang.ParseError", err)
	}

	if out.Len() > 0 {
		t.Errorf("Run() wrote %q on failure", out.String())
	}
}
