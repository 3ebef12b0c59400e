package lang

import (
	"context"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ParseReader parses a statement from an io.Reader.
func ParseReader(
	ctx context.Context,
	r io.Reader,
	opts ...Option,
) (Statement, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, ErrReadInput.Wrap(err)
	}

	return ParseString(ctx, string(data), opts...)
}

// ParseString parses a statement from a string.
//
// Whitespace is significant everywhere. A failure is reported as a
// *[ParseError] anchored at the offending span.
func ParseString(ctx context.Context, s string, opts ...Option) (Statement, error) {
	cfg := makeConfig(opts...)

	cfg.logger.TraceContext(ctx, "parse start",
		slog.Int("source_length", len(s)))

	if err := checkEncoding(s); err != nil {
		cfg.logger.TraceContext(ctx, "parse failed", slog.Any("error", err))

		return nil, err
	}

	p := &parser{
		input: []byte(s),
		pos:   0,
		line:  1,
		col:   1,
	}

	stmt, err := p.parseStatement()
	if err != nil {
		cfg.logger.TraceContext(ctx, "parse failed", slog.Any("error", err))

		return nil, err
	}

	cfg.logger.TraceContext(ctx, "parse complete",
		slog.Int("expression_count", len(stmt)))

	return stmt, nil
}

// checkEncoding reports the first byte of s that is not valid UTF-8.
func checkEncoding(s string) error {
	if utf8.ValidString(s) {
		return nil
	}

	for i, r := range s {
		if r == utf8.RuneError {
			if _, size := utf8.DecodeRuneInString(s[i:]); size == 1 {
				start := advancePosition(Position{Line: 1, Column: 1}, s[:i])
				end := Position{Offset: i + 1, Line: start.Line, Column: start.Column + 1}

				return newParseError(s, Span{start, end}, "invalid UTF-8 encoding")
			}
		}
	}

	return nil
}

// MustParse is like [ParseString] but panics if s cannot be parsed.
// It simplifies initialization of package-level templates.
func MustParse(s string) Statement {
	stmt, err := ParseString(context.Background(), s)
	if err != nil {
		panic(err)
	}

	return stmt
}

// Characters a backslash escapes in each context.
const (
	literalEscapes     = `{}\!`
	alternativeEscapes = `{}|\:<;`
)

// parser holds the parser state.
type parser struct {
	input []byte
	pos   int
	line  int
	col   int
}

// parseStatement parses: expression* EOF.
func (p *parser) parseStatement() (Statement, error) {
	stmt := make(Statement, 0)

	for !p.eof() {
		if p.peek() == '{' {
			expr, err := p.parsePlaceholder()
			if err != nil {
				return nil, err
			}

			stmt = append(stmt, expr)

			continue
		}

		stmt = append(stmt, p.parseLiteral())
	}

	return stmt, nil
}

// parseLiteral consumes text up to the next unescaped '{' or EOF.
func (p *parser) parseLiteral() Literal {
	var sb strings.Builder

	for !p.eof() && p.peek() != '{' {
		if p.peek() == '\\' && strings.ContainsRune(literalEscapes, p.peekNext()) {
			p.advance() // skip backslash
		}

		sb.WriteRune(p.peek())
		p.advance()
	}

	return Literal{Text: sb.String()}
}

// parsePlaceholder parses either a variable reference or a permutation:
//
//	var_use     → '{' ( '<' name '>' | ident ) '}'
//	permutation → '{' [ordering] [var_assign] iterable '}' ['!']
func (p *parser) parsePlaceholder() (Expression, error) {
	open := p.position()
	p.advance() // skip '{'

	var perm Permutation

	ordering, ok, err := p.parseOrdering()
	if err != nil {
		return nil, err
	}

	if ok {
		perm.Ordering, perm.HasOrdering = ordering, true
	}

	v := p.parseVariable(!perm.HasOrdering)

	switch v.kind {
	case variableUse:
		return VariableReference{Name: v.name, Bare: v.bare}, nil

	case variableAssign:
		perm.Variable, perm.BareVariable = v.name, v.bare
	}

	perm.Iterable, err = p.parseIterable(open)
	if err != nil {
		return nil, err
	}

	if p.peek() == '!' {
		p.advance()

		perm.Hidden = true
	}

	return perm, nil
}

// parseOrdering parses: digits ':'. If the input does not match, the
// position is restored and ok is false.
func (p *parser) parseOrdering() (ordering uint, ok bool, err error) {
	start := p.position()

	for !p.eof() && isDigit(p.peek()) {
		p.advance()
	}

	end := p.position()

	if end.Offset == start.Offset || p.peek() != ':' {
		p.reset(start)

		return 0, false, nil
	}

	digits := string(p.input[start.Offset:end.Offset])

	n, err := strconv.ParseUint(digits, 10, strconv.IntSize)
	if err != nil {
		return 0, false, newParseError(
			string(p.input), Span{start, end},
			"ordering %s does not fit an unsigned integer", digits,
		)
	}

	p.advance() // skip ':'

	return uint(n), true, nil
}

type variableKind int

const (
	variableNone variableKind = iota
	variableAssign
	variableUse
)

type variable struct {
	name VariableName
	bare bool
	kind variableKind
}

// parseVariable parses either a binding (var_assign) or, if allowUse is set,
// a complete variable reference. If neither matches, the position is
// restored and the kind is variableNone.
func (p *parser) parseVariable(allowUse bool) variable {
	start := p.position()

	var v variable

	switch r := p.peek(); {
	case r == '<':
		p.advance() // skip '<'

		nameStart := p.pos
		for !p.eof() && !isNameExcluded(p.peek()) {
			p.advance()
		}

		if p.pos == nameStart || p.peek() != '>' {
			p.reset(start)

			return variable{}
		}

		v.name = VariableName(p.input[nameStart:p.pos])

		p.advance() // skip '>'

	case isIdentifierStart(r):
		nameStart := p.pos
		for !p.eof() && isIdentifierContinue(p.peek()) {
			p.advance()
		}

		v.name = VariableName(p.input[nameStart:p.pos])
		v.bare = true

	default:
		return variable{}
	}

	switch {
	case p.peek() == ':':
		p.advance()

		v.kind = variableAssign

	case p.peek() == '}' && allowUse:
		p.advance()

		v.kind = variableUse

	default:
		p.reset(start)

		return variable{}
	}

	return v
}

// parseIterable parses the placeholder body through its closing '}':
//
//	disjunction → alt ('|' alt)+
//	range       → decimal ';' decimal ';' decimal
func (p *parser) parseIterable(open Position) (Iterable, error) {
	start := p.position()

	var (
		alts []string
		sb   strings.Builder
	)

	for {
		if p.eof() {
			return nil, newParseError(
				string(p.input), Span{open, p.position()},
				"unterminated placeholder, expected '}'",
			)
		}

		r := p.peek()

		switch {
		case r == '}':
			end := p.position()
			p.advance() // skip '}'

			alts = append(alts, sb.String())

			if len(alts) > 1 {
				return Disjunction(alts), nil
			}

			return p.parseRange(start, end)

		case r == '{':
			at := p.position()
			p.advance()

			return nil, newParseError(
				string(p.input), Span{at, p.position()},
				"unexpected '{' inside placeholder",
			)

		case r == '|':
			alts = append(alts, sb.String())
			sb.Reset()
			p.advance()

		default:
			if r == '\\' && strings.ContainsRune(alternativeEscapes, p.peekNext()) {
				p.advance() // skip backslash
			}

			sb.WriteRune(p.peek())
			p.advance()
		}
	}
}

// parseRange interprets the raw source in [start, end) as a range.
func (p *parser) parseRange(start, end Position) (Iterable, error) {
	source := string(p.input)
	body := source[start.Offset:end.Offset]

	if body == "" {
		return nil, newParseError(source, Span{start, end}, "empty placeholder")
	}

	if !strings.Contains(body, ";") {
		return nil, newParseError(
			source, Span{start, end},
			"expected a disjunction (a|b) or a range (start;end;step), found %s",
			quote(body),
		)
	}

	fields := strings.Split(body, ";")
	if len(fields) != 3 {
		return nil, newParseError(
			source, Span{start, end},
			"expected three elements in a range, found %d", len(fields),
		)
	}

	var (
		r     Range
		spans [3]Span
	)

	at := start

	for i, field := range fields {
		spans[i] = Span{at, advancePosition(at, field)}
		at = advancePosition(spans[i].End, ";")

		d, err := parseDecimal(field)
		if err != nil {
			return nil, newParseError(source, spans[i], "%s", err.Error())
		}

		switch i {
		case 0:
			r.Start = d

		case 1:
			r.End = d

		case 2:
			r.Step = d
		}
	}

	if err := checkRange(r.Start, r.End, r.Step); err != nil {
		return nil, newParseError(
			source, spans[2], "%s for range from %s to %s",
			err.Error(), fields[0], fields[1],
		)
	}

	return r, nil
}

// Helper methods

func (p *parser) peek() rune {
	if p.eof() {
		return 0
	}

	r, _ := utf8.DecodeRune(p.input[p.pos:])

	return r
}

// peekNext returns the rune following the current one.
func (p *parser) peekNext() rune {
	if p.eof() {
		return 0
	}

	_, size := utf8.DecodeRune(p.input[p.pos:])
	if p.pos+size >= len(p.input) {
		return 0
	}

	r, _ := utf8.DecodeRune(p.input[p.pos+size:])

	return r
}

func (p *parser) advance() {
	if p.eof() {
		return
	}

	r, size := utf8.DecodeRune(p.input[p.pos:])

	p.pos += size
	if r == '\n' {
		p.line++
		p.col = 1
	} else {
		p.col++
	}
}

func (p *parser) eof() bool {
	return p.pos >= len(p.input)
}

func (p *parser) position() Position {
	return Position{
		Offset: p.pos,
		Line:   p.line,
		Column: p.col,
	}
}

// reset rewinds the parser to a previously recorded position.
func (p *parser) reset(pos Position) {
	p.pos, p.line, p.col = pos.Offset, pos.Line, pos.Column
}

// advancePosition returns the position reached after reading s from pos.
func advancePosition(pos Position, s string) Position {
	for _, r := range s {
		if r == '\n' {
			pos.Line++
			pos.Column = 1
		} else {
			pos.Column++
		}
	}

	pos.Offset += len(s)

	return pos
}

// Character classification

func isIdentifierStart(r rune) bool {
	return unicode.In(r,
		unicode.L,  // Letter
		unicode.Nl, // Letter, Number
		unicode.Other_ID_Start,
	) || r == '_'
}

func isIdentifierContinue(r rune) bool {
	return unicode.In(r,
		unicode.L,  // Letter
		unicode.Nl, // Letter, Number
		unicode.Other_ID_Start,
		unicode.Mn, // Mark, Nonspacing
		unicode.Mc, // Mark, Spacing Combining
		unicode.Nd, // Number, Decimal Digit
		unicode.Pc, // Punctuation, Connector
		unicode.Other_ID_Continue,
	)
}

// isIdentifier reports whether s would be read as a bare variable name.
func isIdentifier(s string) bool {
	for i, r := range s {
		if i == 0 && !isIdentifierStart(r) || i > 0 && !isIdentifierContinue(r) {
			return false
		}
	}

	return s != ""
}

// isNameExcluded reports whether r cannot appear in a bracketed name.
func isNameExcluded(r rune) bool {
	return r == '>' || r == '{' || r == '}'
}
