package lang

import (
	"context"
	"testing"
	"unicode/utf8"
)

// FuzzRoundTrip checks that rendering any parsed statement yields source text
// that parses back to the same statement.
func FuzzRoundTrip(f *testing.F) {
	f.Add("abc")
	f.Add("{cat|dog}")
	f.Add("{0.0;1.0;0.1}")
	f.Add("{1:<i>:cat|dog}")
	f.Add("a {i}{1:i:cat|dog}!")
	f.Add(`{1\:x|y}`)
	f.Add(`{<a|b>\:c|d}`)
	f.Add(`a\\{b|c}\!`)
	f.Add("{<>:x|y}!!")
	f.Add("{|}{<i>}!")
	f.Add("a\xffb")

	f.Fuzz(func(t *testing.T, input string) {
		defer func() {
			if r := recover(); r != nil {
				t.Errorf("parser panicked on input %q: %v", input, r)
			}
		}()

		stmt, err := ParseString(context.Background(), input)
		if !utf8.ValidString(input) {
			if err == nil {
				t.Fatalf("invalid UTF-8 %q parsed without error", input)
			}

			return
		}

		if err != nil {
			return
		}

		text := stmt.String()

		again, err := ParseString(context.Background(), text)
		if err != nil {
			t.Fatalf("rendered %q from %q does not parse: %v", text, input, err)
		}

		if !again.Equal(stmt) {
			t.Errorf("round trip of %q through %q changed the statement", input, text)
		}

		if again.String() != text {
			t.Errorf("rendering is not stable: %q then %q", text, again.String())
		}
	})
}
