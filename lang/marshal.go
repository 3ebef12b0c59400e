package lang

import "encoding/json"

// MarshalJSON implements json.Marshaler for Statement.
func (s Statement) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.ToNative())
}

// ToNative converts the statement to a list of native Go maps, one per
// expression, keyed by the expression kind.
func (s Statement) ToNative() []any {
	result := make([]any, 0, len(s))

	for _, expr := range s {
		result = append(result, ToNative(expr))
	}

	return result
}

// ToNative converts an expression to its native Go representation:
//
//	{"literal": text}
//	{"reference": name}
//	{"permutation": {"ordering": n, "variable": name, "hidden": true,
//	                 "disjunction": [alt, ...] | "range": {...}}}
//
// Optional permutation fields are omitted when unset.
func ToNative(expr Expression) any {
	switch x := expr.(type) {
	case Literal:
		return map[string]any{"literal": x.Text}

	case VariableReference:
		return map[string]any{"reference": string(x.Name)}

	case Permutation:
		perm := make(map[string]any)

		if x.HasOrdering {
			perm["ordering"] = uint64(x.Ordering)
		}

		if x.Variable != "" {
			perm["variable"] = string(x.Variable)
		}

		if x.Hidden {
			perm["hidden"] = true
		}

		switch it := x.Iterable.(type) {
		case Disjunction:
			alts := make([]any, len(it))
			for i, alt := range it {
				alts[i] = alt
			}

			perm["disjunction"] = alts

		case Range:
			perm["range"] = map[string]any{
				"start": formatDecimal(it.Start),
				"end":   formatDecimal(it.End),
				"step":  formatDecimal(it.Step),
			}
		}

		return map[string]any{"permutation": perm}

	default:
		return nil
	}
}
