package repl

import "errors"

// Sentinel errors.
var (
	ErrNoStore     = errors.New("no template store")
	ErrOutOfBounds = errors.New("history index out of range")
	ErrNothingSave = errors.New("nothing to save, expand a template first")
	ErrMissingName = errors.New("missing template name")
)
