package cmd

import (
	"context"

	"github.com/ardnew/permute/cli/cmd/repl"
	"github.com/ardnew/permute/log"
)

// Repl starts an interactive template session.
type Repl struct {
	Display int `default:"100"    help:"Maximum outputs printed per expansion."         placeholder:"N"`
	Limit   int `default:"100000" help:"Maximum outputs computed per expansion (0 is unlimited)." placeholder:"N"`
}

// Run executes the repl command.
func (r *Repl) Run(ctx context.Context) error {
	st, err := openStore(ctx)
	if err != nil {
		return err
	}

	return repl.Run(ctx, st, cacheDir(ctx),
		repl.WithLogger(log.Default()),
		repl.WithDisplay(r.Display),
		repl.WithLimit(r.Limit),
	)
}
