package cmd

import (
	"context"
	"log/slog"

	"github.com/ardnew/permute/lang"
)

// Fmt parses a template and writes it in the chosen format.
type Fmt struct {
	Native Native `cmd:"" default:"withargs" help:"Format as canonical template syntax (default)."`
	JSON   JSON   `cmd:""                    help:"Format the syntax tree as JSON."`
	YAML   YAML   `cmd:""                    help:"Format the syntax tree as YAML."`
	AST    AST    `cmd:""                    help:"Format the syntax tree as an indented outline."`
}

// Native writes a template in canonical template syntax.
type Native struct {
	Input `embed:""`
}

// Run executes the fmt native command.
func (f *Native) Run(ctx context.Context) error {
	stmt, err := f.parse(ctx)
	if err != nil {
		return lang.WrapError(err).With(slog.String("format", "native"))
	}

	return stmt.Format(ctx, outputFrom(ctx))
}

// JSON writes the syntax tree of a template as JSON.
type JSON struct {
	Input `embed:""`

	Indent int `default:"2" help:"Indent width for JSON output (0 is compact)." short:"i"`
}

// Run executes the fmt json command.
func (j *JSON) Run(ctx context.Context) error {
	stmt, err := j.parse(ctx)
	if err != nil {
		return lang.WrapError(err).With(slog.String("format", "json"))
	}

	if err := stmt.FormatJSON(ctx, outputFrom(ctx), j.Indent); err != nil {
		return ErrJSONMarshal.Wrap(err)
	}

	return nil
}

// YAML writes the syntax tree of a template as YAML.
type YAML struct {
	Input `embed:""`

	Indent int `default:"2" help:"Indent width for YAML output (0 is flow style)." short:"i"`
}

// Run executes the fmt yaml command.
func (y *YAML) Run(ctx context.Context) error {
	stmt, err := y.parse(ctx)
	if err != nil {
		return lang.WrapError(err).With(slog.String("format", "yaml"))
	}

	if err := stmt.FormatYAML(ctx, outputFrom(ctx), y.Indent); err != nil {
		return ErrYAMLMarshal.Wrap(err)
	}

	return nil
}

// AST writes the syntax tree of a template as an indented outline.
type AST struct {
	Input `embed:""`

	Indent int `default:"2" help:"Indent width of each tree level." short:"i"`
}

// Run executes the fmt ast command.
func (a *AST) Run(ctx context.Context) error {
	stmt, err := a.parse(ctx)
	if err != nil {
		return lang.WrapError(err).With(slog.String("format", "ast"))
	}

	return stmt.FormatTree(ctx, outputFrom(ctx), a.Indent)
}
