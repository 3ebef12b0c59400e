package lang

import (
	"context"
	"errors"
	"strings"
	"testing"
	"testing/iotest"
)

func mustRange(t *testing.T, start, end, step string) Range {
	t.Helper()

	r, err := ParseRange(start, end, step)
	if err != nil {
		t.Fatalf("ParseRange(%q, %q, %q): %v", start, end, step, err)
	}

	return r
}

func TestParseString_Structure(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  func(t *testing.T) Statement
	}{
		{
			name:  "empty",
			input: "",
			want:  func(*testing.T) Statement { return Statement{} },
		},
		{
			name:  "literal",
			input: "abc",
			want:  func(*testing.T) Statement { return Statement{NewLiteral("abc")} },
		},
		{
			name:  "disjunction",
			input: "{cat|dog}",
			want: func(*testing.T) Statement {
				return Statement{NewPermutation(NewDisjunction("cat", "dog"))}
			},
		},
		{
			name:  "empty alternatives",
			input: "{|}",
			want: func(*testing.T) Statement {
				return Statement{NewPermutation(NewDisjunction("", ""))}
			},
		},
		{
			name:  "range",
			input: "{1;3;1}",
			want: func(t *testing.T) Statement {
				return Statement{NewPermutation(mustRange(t, "1", "3", "1"))}
			},
		},
		{
			name:  "negative fractional range",
			input: "{-1.5;1.5;0.5}",
			want: func(t *testing.T) Statement {
				return Statement{NewPermutation(mustRange(t, "-1.5", "1.5", "0.5"))}
			},
		},
		{
			name:  "zero span range with negative step",
			input: "{2;2;-1}",
			want: func(t *testing.T) Statement {
				return Statement{NewPermutation(mustRange(t, "2", "2", "-1"))}
			},
		},
		{
			name:  "ordering and bracketed variable",
			input: "{1:<i>:cat|dog}",
			want: func(*testing.T) Statement {
				return Statement{
					NewPermutation(NewDisjunction("cat", "dog")).
						WithOrdering(1).WithVariable("i"),
				}
			},
		},
		{
			name:  "reference before binding",
			input: "{<i>}{1:<i>:cat|dog}",
			want: func(*testing.T) Statement {
				return Statement{
					NewVariableReference("i"),
					NewPermutation(NewDisjunction("cat", "dog")).
						WithOrdering(1).WithVariable("i"),
				}
			},
		},
		{
			name:  "bare variables and hidden marker",
			input: "a {i}{1:i:cat|dog}!",
			want: func(*testing.T) Statement {
				p := NewPermutation(NewDisjunction("cat", "dog")).
					WithOrdering(1).WithVariable("i").WithHidden(true)
				p.BareVariable = true

				return Statement{
					NewLiteral("a "),
					VariableReference{Name: "i", Bare: true},
					p,
				}
			},
		},
		{
			name:  "name with spaces",
			input: "{<a b>:x|y}",
			want: func(*testing.T) Statement {
				return Statement{NewPermutation(NewDisjunction("x", "y")).WithVariable("a b")}
			},
		},
		{
			name:  "bang after reference is literal",
			input: "{<i>}!",
			want: func(*testing.T) Statement {
				return Statement{NewVariableReference("i"), NewLiteral("!")}
			},
		},
		{
			name:  "escaped braces in literal",
			input: `a\{b\}`,
			want:  func(*testing.T) Statement { return Statement{NewLiteral("a{b}")} },
		},
		{
			name:  "unreserved backslash is literal",
			input: `x\y`,
			want:  func(*testing.T) Statement { return Statement{NewLiteral(`x\y`)} },
		},
		{
			name:  "escaped bar in alternative",
			input: `{a\|b|c}`,
			want: func(*testing.T) Statement {
				return Statement{NewPermutation(NewDisjunction("a|b", "c"))}
			},
		},
		{
			name:  "escaped bang after permutation",
			input: `{cat|dog}\!`,
			want: func(*testing.T) Statement {
				return Statement{NewPermutation(NewDisjunction("cat", "dog")), NewLiteral("!")}
			},
		},
		{
			name:  "escaped colon is not an ordering",
			input: `{1\:x|y}`,
			want: func(*testing.T) Statement {
				return Statement{NewPermutation(NewDisjunction("1:x", "y"))}
			},
		},
		{
			name:  "digits after ordering are an alternative",
			input: "{2:12:x|y}",
			want: func(*testing.T) Statement {
				return Statement{NewPermutation(NewDisjunction("12:x", "y")).WithOrdering(2)}
			},
		},
		{
			name:  "multiple lines",
			input: "first {a|b}\nsecond",
			want: func(*testing.T) Statement {
				return Statement{
					NewLiteral("first "),
					NewPermutation(NewDisjunction("a", "b")),
					NewLiteral("\nsecond"),
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseString(context.Background(), tt.input)
			if err != nil {
				t.Fatalf("parse error: %v", err)
			}

			want := tt.want(t)
			if !got.Equal(want) {
				t.Errorf("ParseString(%q) = %#v, want %#v", tt.input, got, want)
			}
		})
	}
}

func TestParseString_Errors(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		cause  string
		column int
	}{
		{
			name:   "zero step",
			input:  "{1;5;0}",
			cause:  "step cannot be zero",
			column: 6,
		},
		{
			name:   "wrong step sign",
			input:  "{5;1;1}",
			cause:  "step has the wrong sign",
			column: 6,
		},
		{
			name:   "invalid decimal",
			input:  "{1;x;1}",
			cause:  `invalid decimal "x"`,
			column: 4,
		},
		{
			name:   "missing fraction digits",
			input:  "{1.;2;1}",
			cause:  `invalid decimal "1."`,
			column: 2,
		},
		{
			name:   "two range elements",
			input:  "{1;2}",
			cause:  "expected three elements in a range, found 2",
			column: 2,
		},
		{
			name:   "single alternative",
			input:  "{cat dog}",
			cause:  "expected a disjunction (a|b) or a range (start;end;step)",
			column: 2,
		},
		{
			name:   "ordered reference",
			input:  "{1:i}",
			cause:  "expected a disjunction",
			column: 4,
		},
		{
			name:   "empty placeholder",
			input:  "{}",
			cause:  "empty placeholder",
			column: 2,
		},
		{
			name:   "unterminated",
			input:  "abc {a|b",
			cause:  "unterminated placeholder",
			column: 5,
		},
		{
			name:   "nested brace",
			input:  "{a{b}",
			cause:  "unexpected '{' inside placeholder",
			column: 3,
		},
		{
			name:   "ordering overflow",
			input:  "{99999999999999999999:a|b}",
			cause:  "does not fit an unsigned integer",
			column: 2,
		},
		{
			name:   "name across placeholders",
			input:  "{<a}{b>:x|y}",
			cause:  "expected a disjunction",
			column: 2,
		},
		{
			name:   "invalid encoding",
			input:  "ü{a|\xffb}",
			cause:  "invalid UTF-8 encoding",
			column: 5,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseString(context.Background(), tt.input)
			if err == nil {
				t.Fatalf("ParseString(%q) succeeded, want error", tt.input)
			}

			if !errors.Is(err, ErrParse) {
				t.Errorf("error %v does not match ErrParse", err)
			}

			var pe *ParseError
			if !errors.As(err, &pe) {
				t.Fatalf("error %T is not a *ParseError", err)
			}

			if !strings.Contains(pe.Cause, tt.cause) {
				t.Errorf("cause = %q, want it to contain %q", pe.Cause, tt.cause)
			}

			if pe.Span.Start.Column != tt.column {
				t.Errorf("column = %d, want %d", pe.Span.Start.Column, tt.column)
			}
		})
	}
}

func TestParseString_ReplacementCharacter(t *testing.T) {
	stmt, err := ParseString(context.Background(), "a\uFFFD{b|\uFFFD}")
	if err != nil {
		t.Fatalf("ParseString() error = %v", err)
	}

	if got, want := stmt.String(), "a\uFFFD{b|\uFFFD}"; got != want {
		t.Errorf("String() = %q, want %q", got, want)
	}
}

func TestParseString_Position(t *testing.T) {
	_, err := ParseString(context.Background(), "line one\nline {5;1;1}")

	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("expected *ParseError, got %v", err)
	}

	want := Position{Offset: 19, Line: 2, Column: 11}
	if pe.Span.Start != want {
		t.Errorf("start = %+v, want %+v", pe.Span.Start, want)
	}

	if got := pe.Error(); !strings.HasPrefix(got, "parse error at line 2, column 11: ") {
		t.Errorf("Error() = %q", got)
	}
}

func TestParseReader(t *testing.T) {
	stmt, err := ParseReader(context.Background(), strings.NewReader("{a|b}"))
	if err != nil {
		t.Fatalf("parse error: %v", err)
	}

	if got := stmt.String(); got != "{a|b}" {
		t.Errorf("String() = %q, want %q", got, "{a|b}")
	}

	_, err = ParseReader(context.Background(), iotest.ErrReader(errors.New("boom")))
	if !errors.Is(err, ErrReadInput) {
		t.Errorf("error %v does not match ErrReadInput", err)
	}
}

func TestMustParse(t *testing.T) {
	defer func() {
		if r := recover(); r == nil {
			t.Error("MustParse did not panic on invalid input")
		}
	}()

	MustParse("{1;5;0}")
}
