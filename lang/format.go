package lang

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/goccy/go-yaml"
)

// Format writes the statement in native template syntax to the writer.
func (s Statement) Format(_ context.Context, w io.Writer) error {
	_, err := fmt.Fprintln(w, s.String())

	return err
}

// FormatJSON writes the statement as JSON to the writer.
func (s Statement) FormatJSON(_ context.Context, w io.Writer, indent int) error {
	var (
		jsonData []byte
		err      error
	)

	if indent > 0 {
		jsonData, err = json.MarshalIndent(s, "", strings.Repeat(" ", indent))
	} else {
		jsonData, err = json.Marshal(s)
	}

	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(jsonData))

	return err
}

// FormatYAML writes the statement as YAML to the writer.
func (s Statement) FormatYAML(ctx context.Context, w io.Writer, indent int) error {
	var opts []yaml.EncodeOption
	if indent > 0 {
		opts = append(opts, yaml.Indent(indent))
	} else {
		opts = append(opts, yaml.Flow(true))
	}

	yamlData, err := yaml.MarshalContext(ctx, s.ToNative(), opts...)
	if err != nil {
		return err
	}

	_, err = fmt.Fprint(w, string(yamlData))

	return err
}

// FormatTree writes an indented outline of the statement's expressions, one
// node per line.
func (s Statement) FormatTree(_ context.Context, w io.Writer, indent int) error {
	pad := func(depth int) string { return strings.Repeat(" ", depth*max(indent, 1)) }

	if _, err := fmt.Fprintln(w, "statement"); err != nil {
		return err
	}

	for _, expr := range s {
		var err error

		switch x := expr.(type) {
		case Literal:
			_, err = fmt.Fprintf(w, "%sliteral %s\n", pad(1), quote(x.Text))

		case VariableReference:
			_, err = fmt.Fprintf(w, "%sreference %s\n", pad(1), quote(string(x.Name)))

		case Permutation:
			err = formatPermutationTree(x, w, pad)
		}

		if err != nil {
			return err
		}
	}

	return nil
}

func formatPermutationTree(p Permutation, w io.Writer, pad func(int) string) error {
	head := []string{"permutation"}

	if p.HasOrdering {
		head = append(head, "ordering="+strconv.FormatUint(uint64(p.Ordering), 10))
	}

	if p.Variable != "" {
		head = append(head, "variable="+quote(string(p.Variable)))
	}

	if p.Hidden {
		head = append(head, "hidden")
	}

	if _, err := fmt.Fprintln(w, pad(1)+strings.Join(head, " ")); err != nil {
		return err
	}

	switch it := p.Iterable.(type) {
	case Disjunction:
		if _, err := fmt.Fprintln(w, pad(2)+"disjunction"); err != nil {
			return err
		}

		for _, alt := range it {
			if _, err := fmt.Fprintln(w, pad(3)+quote(alt)); err != nil {
				return err
			}
		}

	case Range:
		_, err := fmt.Fprintf(w, "%srange start=%s end=%s step=%s\n", pad(2),
			formatDecimal(it.Start), formatDecimal(it.End), formatDecimal(it.Step))
		if err != nil {
			return err
		}
	}

	return nil
}

// String returns the canonical source text of the statement.
// Parsing the result yields a statement equal to s.
func (s Statement) String() string {
	var sb strings.Builder

	afterVisible := false

	for i, expr := range s {
		if l, ok := expr.(Literal); ok {
			sb.WriteString(l.render(afterVisible, i+1 < len(s)))
		} else {
			sb.WriteString(expr.String())
		}

		p, ok := expr.(Permutation)
		afterVisible = ok && !p.Hidden
	}

	return sb.String()
}

// String implements [Expression].
func (l Literal) String() string { return l.render(false, false) }

// render escapes the literal's text. afterVisible is set when the literal
// follows a permutation without a hidden marker, and followed is set when
// another expression comes after it.
func (l Literal) render(afterVisible, followed bool) string {
	var sb strings.Builder

	for i, r := range l.Text {
		switch r {
		case '{':
			sb.WriteByte('\\')

		case '!':
			if i == 0 && afterVisible {
				sb.WriteByte('\\')
			}

		case '\\':
			next, _ := utf8.DecodeRuneInString(l.Text[i+1:])
			if strings.ContainsRune(literalEscapes, next) ||
				(followed && i+1 == len(l.Text)) {
				sb.WriteByte('\\')
			}
		}

		sb.WriteRune(r)
	}

	return sb.String()
}

// String implements [Expression].
func (v VariableReference) String() string {
	return "{" + renderName(v.Name, v.Bare) + "}"
}

// String implements [Expression].
func (p Permutation) String() string {
	var sb strings.Builder

	sb.WriteByte('{')

	if p.HasOrdering {
		sb.WriteString(strconv.FormatUint(uint64(p.Ordering), 10))
		sb.WriteByte(':')
	}

	if p.Variable != "" {
		sb.WriteString(renderName(p.Variable, p.BareVariable))
		sb.WriteByte(':')
	}

	if p.Iterable != nil {
		body := p.Iterable.String()

		if p.Variable == "" {
			if i := leadingColon(body, p.HasOrdering); i >= 0 {
				body = body[:i] + `\` + body[i:]
			}
		}

		sb.WriteString(body)
	}

	sb.WriteByte('}')

	if p.Hidden {
		sb.WriteByte('!')
	}

	return sb.String()
}

// String implements [Iterable].
func (d Disjunction) String() string {
	alts := make([]string, len(d))
	for i, alt := range d {
		alts[i] = renderAlternative(alt)
	}

	return strings.Join(alts, "|")
}

// String implements [Iterable].
func (r Range) String() string {
	return formatDecimal(r.Start) + ";" + formatDecimal(r.End) + ";" +
		formatDecimal(r.Step)
}

func renderAlternative(alt string) string {
	var sb strings.Builder

	for i, r := range alt {
		switch r {
		case '{', '}', '|':
			sb.WriteByte('\\')

		case '\\':
			next, _ := utf8.DecodeRuneInString(alt[i+1:])
			if i+1 == len(alt) || strings.ContainsRune(alternativeEscapes, next) {
				sb.WriteByte('\\')
			}
		}

		sb.WriteRune(r)
	}

	return sb.String()
}

func renderName(name VariableName, bare bool) string {
	if bare && isIdentifier(string(name)) {
		return string(name)
	}

	return "<" + string(name) + ">"
}

// leadingColon returns the index of the ':' that the parser would consume as
// the end of an ordering or variable binding at the start of a placeholder
// body, or -1 if the body would be read as an iterable. ordered is set when
// the placeholder already has an ordering.
func leadingColon(body string, ordered bool) int {
	if !ordered {
		i := 0
		for i < len(body) && isDigit(rune(body[i])) {
			i++
		}

		if i > 0 && i < len(body) && body[i] == ':' {
			return i
		}
	}

	p := &parser{input: []byte(body), line: 1, col: 1}
	if v := p.parseVariable(false); v.kind == variableAssign {
		return p.pos - 1
	}

	return -1
}

func quote(s string) string { return strconv.Quote(s) }
