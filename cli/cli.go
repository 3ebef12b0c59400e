package cli

import (
	"context"
	"iter"
	"slices"
	"strings"

	"github.com/alecthomas/kong"

	"github.com/ardnew/permute/cli/cmd"
	"github.com/ardnew/permute/pkg"
)

// CLI is the top-level command-line interface for permute.
type CLI struct {
	Log   logConfig   `embed:"" group:"log"   prefix:"log-"`
	Pprof pprofConfig `embed:"" group:"pprof" prefix:"pprof-"`

	Expand   cmd.Expand   `cmd:"" default:"withargs" help:"Expand a template into every variant (default)."`
	Check    cmd.Check    `cmd:""                    help:"Validate a template and count its variants."`
	Fmt      cmd.Fmt      `cmd:""                    help:"Format a template."`
	Template cmd.Template `cmd:""                    help:"Manage saved templates."`
	Repl     cmd.Repl     `cmd:""                    help:"Start an interactive template session."`
	Init     cmd.Init     `cmd:""                    help:"Initialize configuration file."`
	Version  cmd.Version  `cmd:""                    help:"Print version information."`
}

// Run executes the permute CLI with the given context and arguments.
// The exit function is called with the appropriate exit code upon completion.
func Run(
	ctx context.Context,
	exit func(code int),
	args ...string,
) error {
	var cli CLI

	if err := mkdirAllRequired(); err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	// Pre-scan for logger flags to ensure early configuration regardless of
	// flag position.
	cli.Log.scan(args)

	parser, err := newParser(&cli, configPath(baseConfig),
		kong.Exit(exit),
		kong.BindSingletonProvider(func() context.Context {
			return ctx
		}),
	)
	if err != nil {
		return err
	}

	ktx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	ctx = cmd.WithContext(ctx, ktx)

	// Finalize logger configuration with all parsed values.
	cli.Log.start(ctx)

	// [pprofConfig.start] is no-op unless built with tag pprof and enabled.
	defer cli.Pprof.start(ctx)()

	return ktx.Run()
}

// newParser returns the kong parser for cli reading configuration from
// configFile. The caller must bind a context.Context provider.
func newParser(
	cli *CLI,
	configFile string,
	opts ...kong.Option,
) (*kong.Kong, error) {
	vars := kong.Vars{
		cmd.ConfigIdentifier: configFile,
		cmd.CacheIdentifier:  pkg.CacheDir(),
	}.
		CloneWith(cli.Log.vars()).
		CloneWith(cli.Pprof.vars())

	return kong.New(cli, append([]kong.Option{
		kong.Name(pkg.Name),
		kong.Description(pkg.Description),
		kong.UsageOnError(),
		kong.ExplicitGroups(
			[]kong.Group{cli.Log.group(), cli.Pprof.group()},
		),
		kong.ConfigureHelp(
			kong.HelpOptions{
				Compact:             true,
				Summary:             true,
				Tree:                true,
				NoExpandSubcommands: true,
			}),
		kong.Configuration(resolve, configFile),
		vars,
	}, opts...)...)
}

func joinSeq(seq iter.Seq[string]) string {
	return strings.Join(slices.Collect(seq), ",")
}
