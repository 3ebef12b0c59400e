package lang

import (
	"cmp"
	"context"
	"fmt"
	"log/slog"
	"math/bits"
	"slices"
	"strings"
)

// Expansion is the result of one [Statement.Expand] step.
//
// The set of expansions is closed: [Branch] and [Resolved].
type Expansion interface {
	expansion()
}

// Branch holds one derived statement per value of the permutation resolved
// in that step, in value order.
type Branch []Statement

// Resolved is the text of a statement that contains only literals.
type Resolved string

func (Branch) expansion()   {}
func (Resolved) expansion() {}

// Expand resolves one permutation of s.
//
// The permutation without an ordering that appears first is chosen, or the
// first permutation with the smallest ordering if every permutation has one.
// Each value of its iterable yields a derived statement in which references
// to its variable, and the permutation itself unless hidden, are replaced by
// that value.
//
// If s has no permutations, Expand concatenates its literals. Every variable
// reference that remains at that point is reported in one [ExpansionError].
func (s Statement) Expand() (Expansion, error) {
	index, perm, ok := s.next()
	if !ok {
		return s.resolve()
	}

	if perm.Hidden && !s.references(perm.Variable) {
		return nil, &ExpansionError{Errs: []error{&HiddenUnusedError{Permutation: perm}}}
	}

	values := perm.Iterable.Values()
	branch := make(Branch, 0, len(values))

	for _, value := range values {
		branch = append(branch, s.substitute(index, perm, value))
	}

	return branch, nil
}

// FullyExpand drives s to completion and returns every resolved string.
//
// The output order equals a nested loop over the permutations in resolution
// order, the first resolved being the outermost. Any error aborts the whole
// expansion and no partial result is returned. With [WithLimit], a
// statement whose [Statement.Count] exceeds the limit fails before any
// expansion.
func (s Statement) FullyExpand(ctx context.Context, opts ...Option) ([]string, error) {
	cfg := makeConfig(opts...)

	cfg.logger.TraceContext(ctx, "expansion start",
		slog.String("statement", s.String()),
		slog.Int("limit", cfg.limit))

	if cfg.limit > 0 {
		if n, ok := s.Count(); !ok || n > uint64(cfg.limit) {
			return nil, errLimit(cfg.limit)
		}
	}

	var (
		result []string
		stack  = []Statement{s}
	)

	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return nil, ErrExpand.Wrap(err)
		}

		top := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		exp, err := top.Expand()
		if err != nil {
			cfg.logger.TraceContext(ctx, "expansion failed", slog.Any("error", err))

			return nil, err
		}

		switch x := exp.(type) {
		case Resolved:
			if cfg.limit > 0 && len(result) >= cfg.limit {
				return nil, errLimit(cfg.limit)
			}

			result = append(result, string(x))

		case Branch:
			cfg.logger.TraceContext(ctx, "expansion step",
				slog.Int("branches", len(x)),
				slog.Int("pending", len(stack)))

			for _, child := range slices.Backward(x) {
				stack = append(stack, child)
			}
		}
	}

	cfg.logger.TraceContext(ctx, "expansion complete",
		slog.Int("result_count", len(result)))

	return result, nil
}

func errLimit(limit int) error {
	return ErrLimitExceeded.
		Wrap(fmt.Errorf("more than %d results", limit)).
		With(slog.Int("limit", limit))
}

// Count returns the number of strings [Statement.FullyExpand] would produce
// if it succeeds, without expanding. The second result is false if the count
// does not fit a uint64.
func (s Statement) Count() (uint64, bool) {
	total := uint64(1)

	for _, p := range s.Permutations() {
		n, ok := p.Iterable.Len()
		if !ok {
			return 0, false
		}

		hi, lo := bits.Mul64(total, n)
		if hi != 0 {
			return 0, false
		}

		total = lo
	}

	return total, true
}

// Expand parses text and fully expands the resulting statement.
func Expand(ctx context.Context, text string, opts ...Option) ([]string, error) {
	stmt, err := ParseString(ctx, text, opts...)
	if err != nil {
		return nil, err
	}

	return stmt.FullyExpand(ctx, opts...)
}

// next returns the permutation to resolve first along with its index.
func (s Statement) next() (int, Permutation, bool) {
	var (
		index = -1
		best  Permutation
	)

	for i, p := range s.Permutations() {
		if index < 0 || comparePriority(p, best) < 0 {
			index, best = i, p
		}
	}

	return index, best, index >= 0
}

// comparePriority orders permutations by (HasOrdering, Ordering).
func comparePriority(a, b Permutation) int {
	if a.HasOrdering != b.HasOrdering {
		if a.HasOrdering {
			return 1
		}

		return -1
	}

	return cmp.Compare(a.Ordering, b.Ordering)
}

// references reports whether any variable reference in s uses name.
func (s Statement) references(name VariableName) bool {
	if name == "" {
		return false
	}

	return slices.ContainsFunc(s, func(expr Expression) bool {
		ref, ok := expr.(VariableReference)

		return ok && ref.Name == name
	})
}

// substitute returns a copy of s with the permutation at index resolved to
// value.
func (s Statement) substitute(index int, perm Permutation, value string) Statement {
	derived := make(Statement, 0, len(s))

	for i, expr := range s {
		if i == index {
			if !perm.Hidden {
				derived = append(derived, Literal{Text: value})
			}

			continue
		}

		if ref, ok := expr.(VariableReference); ok &&
			perm.Variable != "" && ref.Name == perm.Variable {
			derived = append(derived, Literal{Text: value})

			continue
		}

		derived = append(derived, expr)
	}

	return derived
}

// resolve concatenates the literals of a statement without permutations.
func (s Statement) resolve() (Expansion, error) {
	var (
		sb   strings.Builder
		errs []error
	)

	for _, expr := range s {
		switch x := expr.(type) {
		case Literal:
			sb.WriteString(x.Text)

		case VariableReference:
			errs = append(errs, &UndefinedVariableError{Name: x.Name})
		}
	}

	if len(errs) > 0 {
		return nil, &ExpansionError{Errs: errs}
	}

	return Resolved(sb.String()), nil
}
