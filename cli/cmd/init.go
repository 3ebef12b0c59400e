package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/permute/log"
	"github.com/ardnew/permute/pkg"
	"github.com/ardnew/permute/profile"
)

// defaultConfigIndent is the number of spaces to use for indentation
// when generating the default configuration file.
const defaultConfigIndent = 2

// Init generates a configuration file with current flag values.
type Init struct {
	Force bool `help:"Overwrite existing configuration file." short:"F"`
}

// Run executes the init command.
func (i *Init) Run(ctx context.Context) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	ktx := kongContextFrom(ctx)
	if ktx == nil {
		return ErrWriteConfig.Wrap(fmt.Errorf("no command line context"))
	}

	confPath := kongVar(ctx, ConfigIdentifier, filepath.Join(pkg.ConfigDir(), "config.yaml"))

	if _, err := os.Stat(confPath); err == nil && !i.Force {
		return ErrWriteConfig.
			With(slog.String("file", confPath)).
			With(slog.Bool("exists", true)).
			Wrap(ErrFileExists)
	}

	data, err := yaml.MarshalContext(ctx, flagValues(ktx), yaml.Indent(defaultConfigIndent))
	if err != nil {
		return ErrYAMLMarshal.Wrap(err)
	}

	if err := os.MkdirAll(filepath.Dir(confPath), 0o700); err != nil {
		return ErrWriteConfig.With(slog.String("file", confPath)).Wrap(err)
	}

	if err := os.WriteFile(confPath, data, 0o600); err != nil {
		return ErrWriteConfig.With(slog.String("file", confPath)).Wrap(err)
	}

	log.InfoContext(ctx, "initialized configuration file",
		slog.String("path", confPath),
	)

	return nil
}

// flagValues returns the application flags and their current values in
// declaration order. Hidden, help, and profiling flags are omitted, as are
// flags whose value is empty.
func flagValues(ktx *kong.Context) yaml.MapSlice {
	ignore := []string{"help", profile.Tag}

	var items yaml.MapSlice

	for _, flag := range ktx.Model.Flags {
		if flag.Hidden || slices.ContainsFunc(ignore, func(s string) bool {
			return strings.HasPrefix(flag.Name, s)
		}) {
			continue
		}

		switch v := ktx.FlagValue(flag).(type) {
		case nil:
		case string:
			if v != "" {
				items = append(items, yaml.MapItem{Key: flag.Name, Value: v})
			}

		case []string:
			if len(v) > 0 {
				items = append(items, yaml.MapItem{Key: flag.Name, Value: v})
			}

		case fmt.Stringer:
			items = append(items, yaml.MapItem{Key: flag.Name, Value: v.String()})

		default:
			items = append(items, yaml.MapItem{Key: flag.Name, Value: v})
		}
	}

	return items
}
