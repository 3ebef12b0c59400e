package store

import "github.com/ardnew/permute/lang"

// Predefined errors (sentinel values).
var (
	ErrNotFound        = lang.NewError("template not found")
	ErrInvalidName     = lang.NewError("invalid template name")
	ErrInvalidTemplate = lang.NewError("invalid template")
	ErrDecode          = lang.NewError("decode template store")
	ErrEncode          = lang.NewError("encode template store")
)
