package lang

import (
	"math"
	"slices"

	"github.com/shopspring/decimal"
)

// Iterable is the ordered value source of a [Permutation].
//
// The set of iterables is closed: [Disjunction] and [Range].
type Iterable interface {
	// Values materializes every value in enumeration order.
	Values() []string

	// Len returns the number of values without materializing them.
	// The second result is false if the count does not fit a uint64.
	Len() (uint64, bool)

	// String returns the canonical source text of the iterable.
	String() string

	// Equal reports whether the iterable is structurally identical to x.
	Equal(x Iterable) bool

	iterable()
}

// Disjunction is an explicit ordered list of alternatives.
type Disjunction []string

// Range is the arithmetic progression Start, Start+Step, Start+2·Step, …
// bounded inclusively by End. Arithmetic is exact decimal.
type Range struct {
	Start decimal.Decimal
	End   decimal.Decimal
	Step  decimal.Decimal
}

func (Disjunction) iterable() {}
func (Range) iterable()       {}

// NewDisjunction creates a disjunction of the given alternatives.
func NewDisjunction(alternatives ...string) Disjunction {
	return Disjunction(slices.Clone(alternatives))
}

// NewRange creates a range after checking that step is nonzero and points
// from start toward end.
func NewRange(start, end, step decimal.Decimal) (Range, error) {
	if err := checkRange(start, end, step); err != nil {
		return Range{}, ErrParse.Wrap(err)
	}

	return Range{Start: start, End: end, Step: step}, nil
}

// ParseRange parses the three decimal components of a range.
func ParseRange(start, end, step string) (Range, error) {
	var parts [3]decimal.Decimal

	for i, s := range []string{start, end, step} {
		d, err := parseDecimal(s)
		if err != nil {
			return Range{}, ErrParse.Wrap(err)
		}

		parts[i] = d
	}

	return NewRange(parts[0], parts[1], parts[2])
}

// Values implements [Iterable].
func (d Disjunction) Values() []string {
	return slices.Clone(d)
}

// Len implements [Iterable].
func (d Disjunction) Len() (uint64, bool) {
	return uint64(len(d)), true
}

// Equal implements [Iterable].
func (d Disjunction) Equal(x Iterable) bool {
	o, ok := x.(Disjunction)

	return ok && slices.Equal(d, o)
}

// Values implements [Iterable].
func (r Range) Values() []string {
	n, ok := r.Len()
	if !ok || n > math.MaxInt32 {
		n = 0
	}

	values := make([]string, 0, n)

	for c := r.Start; r.contains(c); c = c.Add(r.Step) {
		values = append(values, formatDecimal(c))

		if r.Step.IsZero() {
			break
		}
	}

	return values
}

// Len implements [Iterable].
func (r Range) Len() (uint64, bool) {
	if r.Step.IsZero() {
		return 1, true
	}

	q, _ := r.End.Sub(r.Start).QuoRem(r.Step, 0)
	if q.IsNegative() {
		return 0, true
	}

	n := q.BigInt()
	if !n.IsUint64() || n.Uint64() == math.MaxUint64 {
		return 0, false
	}

	return n.Uint64() + 1, true
}

// Equal implements [Iterable].
func (r Range) Equal(x Iterable) bool {
	o, ok := x.(Range)

	return ok &&
		formatDecimal(r.Start) == formatDecimal(o.Start) &&
		formatDecimal(r.End) == formatDecimal(o.End) &&
		formatDecimal(r.Step) == formatDecimal(o.Step)
}

// contains reports whether c lies within the closed interval between Start
// and End.
func (r Range) contains(c decimal.Decimal) bool {
	if r.Step.IsNegative() {
		return c.LessThanOrEqual(r.Start) && c.GreaterThanOrEqual(r.End)
	}

	return c.GreaterThanOrEqual(r.Start) && c.LessThanOrEqual(r.End)
}

// checkRange rejects a zero step and a step whose sign disagrees with
// end − start. A zero-length range accepts either sign.
func checkRange(start, end, step decimal.Decimal) error {
	if step.IsZero() {
		return errZeroStep
	}

	if span := end.Sub(start); !span.IsZero() && span.Sign() != step.Sign() {
		return errStepSign
	}

	return nil
}

// parseDecimal accepts an optional sign, one or more digits, and an optional
// fraction of one or more digits.
func parseDecimal(s string) (decimal.Decimal, error) {
	digits := s
	if len(digits) > 0 && (digits[0] == '+' || digits[0] == '-') {
		digits = digits[1:]
	}

	whole, frac, dotted := cutByte(digits, '.')
	if !isDigits(whole) || (dotted && !isDigits(frac)) {
		return decimal.Decimal{}, &decimalError{text: s}
	}

	return decimal.NewFromString(s)
}

// formatDecimal renders d with exactly as many fractional digits as its
// exponent carries, so "0.0" stays "0.0" and 0.3+0.3 renders as "0.6".
func formatDecimal(d decimal.Decimal) string {
	if exp := d.Exponent(); exp < 0 {
		return d.StringFixed(-exp)
	}

	return d.String()
}

func cutByte(s string, sep byte) (before, after string, found bool) {
	for i := range len(s) {
		if s[i] == sep {
			return s[:i], s[i+1:], true
		}
	}

	return s, "", false
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}

	for i := range len(s) {
		if !isDigit(rune(s[i])) {
			return false
		}
	}

	return true
}

func isDigit(r rune) bool { return r >= '0' && r <= '9' }

type rangeError string

func (e rangeError) Error() string { return string(e) }

const (
	errZeroStep rangeError = "step cannot be zero"
	errStepSign rangeError = "step has the wrong sign"
)

type decimalError struct{ text string }

func (e *decimalError) Error() string {
	return "invalid decimal " + quote(e.text)
}
