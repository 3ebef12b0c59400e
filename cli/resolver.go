package cli

import (
	"io"
	"log/slog"
	"strconv"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/goccy/go-yaml"

	"github.com/ardnew/permute/log"
)

// resolve is a [kong.ConfigurationLoader] for YAML configuration files.
//
// Top-level keys name application flags. A key naming a command holds a
// mapping of that command's flags. Hyphens in flag names may be written as
// underscores:
//
//	log-level: debug
//	log_pretty: false
//	expand:
//	  format: json
//	  limit: 1000
//
// Command-line flags override config file values. A file that does not
// decode is ignored with a warning.
func resolve(r io.Reader) (kong.Resolver, error) {
	var values map[string]any

	data, err := io.ReadAll(r)
	if err == nil {
		err = yaml.Unmarshal(data, &values)
	}

	if err != nil {
		log.Warn("ignoring configuration file", slog.Any("error", err))

		return config{}, nil
	}

	return config(values), nil
}

// config implements [kong.Resolver] for decoded YAML configuration.
type config map[string]any

// Validate implements [kong.Resolver].
func (config) Validate(*kong.Application) error { return nil }

// Resolve implements [kong.Resolver].
func (c config) Resolve(
	_ *kong.Context,
	parent *kong.Path,
	flag *kong.Flag,
) (any, error) {
	if parent != nil && parent.Command != nil {
		if section, ok := c.lookup(parent.Command.Name); ok {
			if m, ok := section.(map[string]any); ok {
				if value, ok := config(m).lookup(flag.Name); ok {
					return flagValue(value), nil
				}
			}
		}
	}

	if value, ok := c.lookup(flag.Name); ok {
		if _, nested := value.(map[string]any); !nested {
			return flagValue(value), nil
		}
	}

	// Not found - return nil to let Kong use defaults
	return nil, nil
}

// lookup returns the value of name, also trying name with hyphens replaced
// by underscores.
func (c config) lookup(name string) (any, bool) {
	if value, ok := c[name]; ok {
		return value, true
	}

	value, ok := c[strings.ReplaceAll(name, "-", "_")]

	return value, ok
}

// flagValue converts a decoded YAML value to a form kong's mappers accept.
// Kong requires numbers as strings for parsing.
func flagValue(value any) any {
	switch v := value.(type) {
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	case uint64:
		return strconv.FormatUint(v, 10)
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case []any:
		items := make([]string, len(v))
		for i, item := range v {
			items[i] = strings.TrimSpace(toString(flagValue(item)))
		}

		return strings.Join(items, ",")
	default:
		return v
	}
}

func toString(value any) string {
	switch v := value.(type) {
	case string:
		return v
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}
