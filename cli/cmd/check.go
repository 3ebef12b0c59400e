package cmd

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ardnew/permute/lang"
)

// Check parses a template and reports its permutations without expanding.
type Check struct {
	Input `embed:""`

	Quiet bool `help:"Report only failures." short:"q"`
}

// Run executes the check command.
func (c *Check) Run(ctx context.Context) error {
	text, err := c.text(ctx)
	if err != nil {
		return err
	}

	w := outputFrom(ctx)

	stmt, err := lang.ParseString(ctx, text)
	if err != nil {
		var perr *lang.ParseError
		if errors.As(err, &perr) {
			fmt.Fprintln(w, perr.Snippet())
		}

		return err
	}

	if c.Quiet {
		return nil
	}

	return report(w, stmt)
}

// report writes one line per permutation with its value count, followed by
// the variables and the total number of outputs.
func report(w io.Writer, stmt lang.Statement) error {
	var b strings.Builder

	for i, p := range stmt.Permutations() {
		n, ok := p.Iterable.Len()

		count := "overflow"
		if ok {
			count = fmt.Sprint(n)
		}

		fmt.Fprintf(&b, "%4d  %-32s %s values\n", i, p.String(), count)
	}

	if vars := stmt.Variables(); len(vars) > 0 {
		names := make([]string, len(vars))
		for i, v := range vars {
			names[i] = string(v)
		}

		fmt.Fprintf(&b, "variables: %s\n", strings.Join(names, ", "))
	}

	if n, ok := stmt.Count(); ok {
		fmt.Fprintf(&b, "outputs: %d\n", n)
	} else {
		b.WriteString("outputs: overflow\n")
	}

	_, err := io.WriteString(w, b.String())

	return err
}
