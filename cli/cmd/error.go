package cmd

import "github.com/ardnew/permute/lang"

// Error is a command error carrying structured logging attributes.
type Error = lang.Error

// NewError returns a new sentinel [Error] with the given message.
func NewError(msg string) *Error { return lang.NewError(msg) }

// Predefined errors (sentinel values).
var (
	ErrReadInput     = NewError("read template")
	ErrInputConflict = NewError("conflicting template inputs")
	ErrFilter        = NewError("invalid filter expression")
	ErrCountOverflow = NewError("output count overflows uint64")
	ErrJSONMarshal   = NewError("marshal JSON")
	ErrYAMLMarshal   = NewError("marshal YAML")
	ErrWriteConfig   = NewError("write configuration file")
	ErrFileExists    = NewError("file exists (use --force to overwrite)")
)
