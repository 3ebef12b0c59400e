package lang

import (
	"iter"
	"slices"
)

// Expression is one node of a [Statement].
//
// The set of expressions is closed: [Literal], [VariableReference], and
// [Permutation]. Expressions are immutable values.
type Expression interface {
	// String returns the canonical source text of the expression.
	String() string

	// Equal reports whether the expression is structurally identical to x.
	Equal(x Expression) bool

	expression()
}

// VariableName labels the value chosen by a permutation so that it can be
// substituted at other sites of the same statement. Names compare by exact
// text.
type VariableName string

// Literal is plain text copied verbatim to the output.
type Literal struct {
	Text string
}

// VariableReference is a site that receives the value of the permutation
// bound to Name.
type VariableReference struct {
	Name VariableName
	Bare bool // written {name} instead of {<name>}
}

// Permutation is a placeholder that enumerates every value of its Iterable.
type Permutation struct {
	Iterable Iterable

	// Ordering is the resolution priority, valid when HasOrdering is set.
	// Permutations without an ordering resolve before any with one.
	Ordering    uint
	HasOrdering bool

	// Variable binds the chosen value to a name; empty means unbound.
	Variable     VariableName
	BareVariable bool // written name: instead of <name>:

	// Hidden permutations emit no text of their own.
	Hidden bool
}

func (Literal) expression()           {}
func (VariableReference) expression() {}
func (Permutation) expression()       {}

// NewLiteral creates a literal expression.
func NewLiteral(text string) Literal {
	return Literal{Text: text}
}

// NewVariableReference creates a reference to the named variable.
func NewVariableReference(name VariableName) VariableReference {
	return VariableReference{Name: name}
}

// NewPermutation creates an unordered, unbound, visible permutation over it.
func NewPermutation(it Iterable) Permutation {
	return Permutation{Iterable: it}
}

// WithOrdering returns a copy of p with the given resolution priority.
func (p Permutation) WithOrdering(ordering uint) Permutation {
	p.Ordering, p.HasOrdering = ordering, true

	return p
}

// WithVariable returns a copy of p bound to the given variable name.
func (p Permutation) WithVariable(name VariableName) Permutation {
	p.Variable = name

	return p
}

// WithHidden returns a copy of p with its hidden flag set to hidden.
func (p Permutation) WithHidden(hidden bool) Permutation {
	p.Hidden = hidden

	return p
}

// Equal implements [Expression].
func (l Literal) Equal(x Expression) bool {
	o, ok := x.(Literal)

	return ok && o.Text == l.Text
}

// Equal implements [Expression].
func (v VariableReference) Equal(x Expression) bool {
	o, ok := x.(VariableReference)

	return ok && o == v
}

// Equal implements [Expression].
func (p Permutation) Equal(x Expression) bool {
	o, ok := x.(Permutation)
	if !ok {
		return false
	}

	if p.Iterable == nil || o.Iterable == nil {
		return p.Iterable == nil && o.Iterable == nil
	}

	return p.HasOrdering == o.HasOrdering &&
		(!p.HasOrdering || p.Ordering == o.Ordering) &&
		p.Variable == o.Variable &&
		p.BareVariable == o.BareVariable &&
		p.Hidden == o.Hidden &&
		p.Iterable.Equal(o.Iterable)
}

// Statement is an ordered sequence of expressions representing a template.
// Order is significant and is preserved by every expansion step.
type Statement []Expression

// Equal reports whether both statements hold equal expressions in the same
// order.
func (s Statement) Equal(o Statement) bool {
	return slices.EqualFunc(s, o, func(a, b Expression) bool {
		return a.Equal(b)
	})
}

// All returns an iterator over the expressions of s with their indices.
func (s Statement) All() iter.Seq2[int, Expression] {
	return slices.All(s)
}

// Permutations returns an iterator over the permutations of s with their
// indices, in source order.
func (s Statement) Permutations() iter.Seq2[int, Permutation] {
	return func(yield func(int, Permutation) bool) {
		for i, expr := range s {
			if p, ok := expr.(Permutation); ok {
				if !yield(i, p) {
					return
				}
			}
		}
	}
}

// Variables returns the distinct variable names bound or referenced in s, in
// order of first appearance.
func (s Statement) Variables() []VariableName {
	var names []VariableName

	add := func(name VariableName) {
		if name != "" && !slices.Contains(names, name) {
			names = append(names, name)
		}
	}

	for _, expr := range s {
		switch x := expr.(type) {
		case VariableReference:
			add(x.Name)

		case Permutation:
			add(x.Variable)
		}
	}

	return names
}

// IsResolved reports whether s contains only literals.
func (s Statement) IsResolved() bool {
	for _, expr := range s {
		if _, ok := expr.(Literal); !ok {
			return false
		}
	}

	return true
}
