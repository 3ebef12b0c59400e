package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"strconv"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/permute/lang"
	"github.com/ardnew/permute/log"
)

// Expand writes every variant of a template.
type Expand struct {
	Input `embed:""`

	Format string `default:"text" enum:"text,json,yaml" help:"Output format (${enum})." short:"o"`
	Limit  int    `default:"0"                          help:"Fail if expansion produces more than N outputs (0 is unlimited)." placeholder:"N"`
	Filter string `help:"Keep outputs for which the expr-lang EXPR is true. Variables text and index are defined." placeholder:"EXPR" short:"w"`
	Count  bool   `help:"Print the number of outputs instead of the outputs." short:"c"`
}

// filterEnv is the environment of a --filter expression.
type filterEnv struct {
	Text  string `expr:"text"`
	Index int    `expr:"index"`
}

// Run executes the expand command.
func (e *Expand) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	stmt, err := e.parse(ctx)
	if err != nil {
		return err
	}

	w := outputFrom(ctx)

	if e.Count && e.Filter == "" {
		n, ok := stmt.Count()
		if !ok {
			return ErrCountOverflow
		}

		_, err = fmt.Fprintln(w, strconv.FormatUint(n, 10))

		return err
	}

	filter, err := compileFilter(e.Filter)
	if err != nil {
		return err
	}

	result, err := stmt.FullyExpand(ctx,
		lang.WithLogger(log.Default()),
		lang.WithLimit(e.Limit),
	)
	if err != nil {
		return err
	}

	result, err = applyFilter(filter, result)
	if err != nil {
		return err
	}

	log.DebugContext(ctx, "expanded template",
		slog.String("template", stmt.String()),
		slog.Int("result_count", len(result)),
	)

	if e.Count {
		_, err = fmt.Fprintln(w, len(result))

		return err
	}

	return writeResults(ctx, w, e.Format, result)
}

// compileFilter compiles a --filter expression. A nil program keeps every
// output.
func compileFilter(source string) (*vm.Program, error) {
	if source == "" {
		return nil, nil
	}

	program, err := expr.Compile(source, expr.Env(filterEnv{}), expr.AsBool())
	if err != nil {
		return nil, ErrFilter.Wrap(err).With(slog.String("filter", source))
	}

	return program, nil
}

func applyFilter(program *vm.Program, result []string) ([]string, error) {
	if program == nil {
		return result, nil
	}

	kept := make([]string, 0, len(result))

	for i, text := range result {
		out, err := expr.Run(program, filterEnv{Text: text, Index: i})
		if err != nil {
			return nil, ErrFilter.Wrap(err).With(slog.Int("index", i))
		}

		if keep, _ := out.(bool); keep {
			kept = append(kept, text)
		}
	}

	return kept, nil
}

func writeResults(ctx context.Context, w io.Writer, format string, result []string) error {
	switch format {
	case "json":
		data, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return ErrJSONMarshal.Wrap(err)
		}

		_, err = fmt.Fprintln(w, string(data))

		return err

	case "yaml":
		data, err := yaml.MarshalContext(ctx, result)
		if err != nil {
			return ErrYAMLMarshal.Wrap(err)
		}

		_, err = w.Write(data)

		return err

	default:
		for _, line := range result {
			if _, err := fmt.Fprintln(w, line); err != nil {
				return err
			}
		}

		return nil
	}
}
