package cmd

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/ardnew/permute/lang"
	"github.com/ardnew/permute/log"
)

// stdinSource is the special source indicator for reading from stdin.
const stdinSource = "-"

// Input selects the template a command operates on.
type Input struct {
	Template string `arg:""    help:"Template text. Read from stdin if no other input is given." optional:""`
	Source   string `help:"Read the template from FILE or '-' for stdin." placeholder:"FILE" short:"f"`
	Name     string `help:"Use the saved template NAME."                  placeholder:"NAME" short:"n"`
}

// text returns the selected template source.
func (in Input) text(ctx context.Context) (string, error) {
	var set []string

	for _, field := range [...]struct{ flag, value string }{
		{"template", in.Template},
		{"source", in.Source},
		{"name", in.Name},
	} {
		if field.value != "" {
			set = append(set, field.flag)
		}
	}

	if len(set) > 1 {
		return "", ErrInputConflict.With(slog.Any("inputs", set))
	}

	switch {
	case in.Template != "":
		return in.Template, nil

	case in.Name != "":
		st, err := openStore(ctx)
		if err != nil {
			return "", err
		}

		return st.Get(in.Name)

	default:
		return readSource(ctx, in.Source)
	}
}

// parse returns the selected template parsed into a statement.
func (in Input) parse(ctx context.Context) (lang.Statement, error) {
	text, err := in.text(ctx)
	if err != nil {
		return nil, err
	}

	return lang.ParseString(ctx, text, lang.WithLogger(log.Default()))
}

// readSource reads the file at path, or stdin if path is empty or "-".
// A single trailing line break is removed so that templates saved by
// editors expand without a spurious newline.
func readSource(ctx context.Context, path string) (string, error) {
	var r io.Reader

	if path == "" || path == stdinSource {
		r = inputFrom(ctx)
	} else {
		file, err := os.Open(path)
		if err != nil {
			return "", ErrReadInput.Wrap(err).With(slog.String("source", path))
		}
		defer file.Close()

		r = file
	}

	data, err := io.ReadAll(r)
	if err != nil {
		return "", ErrReadInput.Wrap(err).With(slog.String("source", path))
	}

	text := string(data)
	if s, ok := strings.CutSuffix(text, "\n"); ok {
		text = strings.TrimSuffix(s, "\r")
	}

	return text, nil
}
