package lang

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"
)

// Predefined errors (sentinel values).
var (
	ErrParse             = NewError("parse error")
	ErrExpand            = NewError("expansion failed")
	ErrLimitExceeded     = NewError("expansion limit exceeded")
	ErrReadInput         = NewError("failed to read input")
	ErrHiddenUnused      = NewError("hidden permutation has no visible use")
	ErrUndefinedVariable = NewError("variable is never defined")
)

// Error represents an error with optional structured logging attributes.
// It implements both error and slog.LogValuer interfaces.
//
// Errors derived from a sentinel with [Error.Wrap] or [Error.With] still
// match that sentinel with errors.Is.
type Error struct {
	msg   string
	err   error       // Wrapped error (for errors.Unwrap)
	attrs []slog.Attr // Attributes for structured logging
	root  *Error      // Sentinel this error was derived from
}

// NewError creates a new Error with a message.
func NewError(msg string) *Error {
	e := &Error{msg: msg}
	e.root = e

	return e
}

// WrapError wraps a standard error into an Error.
func WrapError(err error) *Error {
	if e, ok := err.(*Error); ok {
		return e
	}

	return &Error{err: err}
}

// Error implements the error interface.
func (e *Error) Error() string {
	// Build error message using the first available format,
	// depending on which fields are set:
	//
	//   1. "<msg>: <err>" // base and wrapped error both set
	//   2. "<msg>"        // wrapped error is nil
	//   3. "<err>"        // base error message is empty
	//   4. ""             // no fields are set
	part := make([]string, 0, 2)

	if e.msg != "" {
		part = append(part, e.msg)
	}

	if e.err != nil {
		part = append(part, e.err.Error())
	}

	return strings.Join(part, ": ")
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *Error) Unwrap() error { return e.err }

// Is reports whether e and target were derived from the same sentinel.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)

	return ok && e.root != nil && e.root == t.root
}

// LogValue implements slog.LogValuer for rich structured logging.
func (e *Error) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.attrs)+2)

	if e.msg != "" {
		attrs = append(attrs, slog.String("error", e.msg))
	}

	if e.err != nil {
		attrs = append(attrs, slog.String("cause", e.err.Error()))
	}

	return slog.GroupValue(append(attrs, e.attrs...)...)
}

// Wrap creates a new Error wrapping another error.
func (e *Error) Wrap(err error) *Error {
	return &Error{
		msg:   e.msg,
		err:   err,
		attrs: e.attrs, // Share attrs
		root:  e.root,
	}
}

// With adds attributes to the error for structured logging.
// This creates a new Error instance to maintain immutability.
func (e *Error) With(attrs ...slog.Attr) *Error {
	newAttrs := make([]slog.Attr, len(e.attrs)+len(attrs))
	copy(newAttrs, e.attrs)
	copy(newAttrs[len(e.attrs):], attrs)

	return &Error{
		msg:   e.msg,
		err:   e.err,
		attrs: newAttrs,
		root:  e.root,
	}
}

// Position identifies a location in template source text.
// Line and Column are 1-based; Column counts runes.
type Position struct {
	Offset int `json:"offset" yaml:"offset"`
	Line   int `json:"line"   yaml:"line"`
	Column int `json:"column" yaml:"column"`
}

// String returns the position formatted as "line:column".
func (p Position) String() string {
	return strconv.Itoa(p.Line) + ":" + strconv.Itoa(p.Column)
}

// Span is the half-open source range [Start, End).
type Span struct {
	Start Position `json:"start" yaml:"start"`
	End   Position `json:"end"   yaml:"end"`
}

// ParseError reports malformed template syntax or a rejected ordering or
// range, anchored at the offending span of Source.
type ParseError struct {
	Cause  string
	Span   Span
	Source string
}

func newParseError(source string, span Span, format string, args ...any) *ParseError {
	return &ParseError{
		Cause:  fmt.Sprintf(format, args...),
		Span:   span,
		Source: source,
	}
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	return "parse error at line " + strconv.Itoa(e.Span.Start.Line) +
		", column " + strconv.Itoa(e.Span.Start.Column) + ": " + e.Cause
}

// Unwrap returns [ErrParse].
func (e *ParseError) Unwrap() error { return ErrParse }

// LogValue implements slog.LogValuer.
func (e *ParseError) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("error", ErrParse.msg),
		slog.String("cause", e.Cause),
		slog.String("start", e.Span.Start.String()),
		slog.String("end", e.Span.End.String()),
	)
}

// Snippet renders the source line containing the error with a marker
// underlining the offending span:
//
//	  1 | {1;5;0}
//	           ^
func (e *ParseError) Snippet() string {
	lines := strings.Split(e.Source, "\n")

	line := e.Span.Start.Line
	if line <= 0 || line > len(lines) {
		return ""
	}

	var buf strings.Builder

	buf.WriteString("  ")
	buf.WriteString(strconv.Itoa(line))
	buf.WriteString(" | ")
	buf.WriteString(lines[line-1])
	buf.WriteRune('\n')

	// +5 accounts for: 2 leading spaces + " | " (3 chars)
	padding := strings.Repeat(" ", len(strconv.Itoa(line))+5)
	if e.Span.Start.Column > 0 {
		padding += strings.Repeat(" ", e.Span.Start.Column-1)
	}

	width := 1
	if e.Span.End.Line == line && e.Span.End.Column > e.Span.Start.Column {
		width = e.Span.End.Column - e.Span.Start.Column
	}

	buf.WriteString(padding)
	buf.WriteString(strings.Repeat("^", width))
	buf.WriteRune('\n')

	return buf.String()
}

// ExpansionError aggregates the errors of one failed expansion.
// Its message joins each cause with "; ".
type ExpansionError struct {
	Errs []error
}

// Error implements the error interface.
func (e *ExpansionError) Error() string {
	msg := make([]string, len(e.Errs))
	for i, err := range e.Errs {
		msg[i] = err.Error()
	}

	return strings.Join(msg, "; ")
}

// Unwrap returns every aggregated cause.
func (e *ExpansionError) Unwrap() []error { return e.Errs }

// Is reports whether target is [ErrExpand].
func (e *ExpansionError) Is(target error) bool { return target == ErrExpand }

// LogValue implements slog.LogValuer.
func (e *ExpansionError) LogValue() slog.Value {
	attrs := make([]slog.Attr, 0, len(e.Errs)+1)
	attrs = append(attrs, slog.String("error", ErrExpand.msg))

	for i, err := range e.Errs {
		attrs = append(attrs, slog.String("cause"+strconv.Itoa(i), err.Error()))
	}

	return slog.GroupValue(attrs...)
}

// UndefinedVariableError reports a variable reference that no permutation
// binds.
type UndefinedVariableError struct {
	Name VariableName
}

func (e *UndefinedVariableError) Error() string {
	return "variable `" + string(e.Name) + "` is never defined"
}

// Is reports whether target is [ErrUndefinedVariable].
func (e *UndefinedVariableError) Is(target error) bool {
	return target == ErrUndefinedVariable
}

// HiddenUnusedError reports a hidden permutation whose value is never
// substituted anywhere, so it would contribute nothing.
type HiddenUnusedError struct {
	Permutation Permutation
}

func (e *HiddenUnusedError) Error() string {
	return ErrHiddenUnused.msg + ": " + e.Permutation.String()
}

// Is reports whether target is [ErrHiddenUnused].
func (e *HiddenUnusedError) Is(target error) bool {
	return target == ErrHiddenUnused
}
