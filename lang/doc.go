// Package lang implements the permute template language: a string of literal
// text mixed with placeholders that each enumerate several values. Expanding a
// template produces every combination of those values, in a deterministic
// order.
//
// # Grammar
//
// Informal EBNF. Whitespace is significant everywhere.
//
//	Statement   → Expression* EOF
//	Expression  → Permutation | Reference | Literal
//	Reference   → '{' '<' Name '>' '}' | '{' Ident '}'
//	Permutation → '{' [Ordering ':'] [Binding ':'] Iterable '}' ['!']
//	Binding     → '<' Name '>' | Ident
//	Iterable    → Disjunction | Range
//	Disjunction → Alt ('|' Alt)+
//	Range       → Decimal ';' Decimal ';' Decimal
//	Decimal     → ['+' | '-'] Digits ['.' Digits]
//	Literal     → <text up to the next '{'>
//
// A Name is any text without '>', '{', or '}'. Excluding the braces keeps a
// name inside its own placeholder: "{<a}{b>:x|y}" is rejected at the first
// '}' instead of binding the name "a}{b". An Ident is
// a letter or '_' followed by letters, digits, marks, or connector
// punctuation.
//
// Source text must be valid UTF-8. Otherwise its characters are opaque.
//
// # Example
//
//	a {black|brown} {cat|dog}      → a black cat, a black dog, a brown cat, …
//	{0.0;1.0;0.5}                  → 0.0, 0.5, 1.0
//	{1:cat|dog} and {0:red|blue}   → cat and red, dog and red, cat and blue, …
//	{<a>:cat|dog}! {<a>} or {<a>}  → cat or cat, dog or dog
//
// # Resolution order
//
// Permutations without an ordering resolve first, in source order, followed
// by those with an ordering from lowest to highest. The first permutation
// resolved varies slowest in the output.
//
// # Variables
//
// A permutation binding a variable substitutes its chosen value at every
// reference to that variable. A hidden permutation, marked with a trailing
// '!', emits no text of its own and must bind a variable that is referenced
// somewhere in the template.
//
// # Escaping
//
// A backslash escapes the next character only where that character is
// reserved; elsewhere it is literal text.
//
//   - In literal text: '{', '}', '\', and '!'. An unescaped '!' directly after
//     a permutation is read as its hidden marker.
//   - In alternatives: '{', '}', '|', '\', ':', '<', and ';'. A ':' or '<'
//     needs escaping only in the first alternative, where it would otherwise
//     be read as an ordering or binding.
//   - Names cannot be escaped.
//
// [Statement.String] renders the minimal escaping, so that parsing it again
// yields an equal statement.
package lang
