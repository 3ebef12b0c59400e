package cmd

import (
	"context"
	"fmt"
	"log/slog"
	"text/tabwriter"

	"github.com/ardnew/permute/log"
)

// Template manages saved templates.
type Template struct {
	List   TemplateList   `cmd:"" default:"1" help:"List saved templates (default)."`
	Show   TemplateShow   `cmd:""             help:"Print a saved template."`
	Save   TemplateSave   `cmd:""             help:"Save a template under a name."`
	Delete TemplateDelete `cmd:""             help:"Delete a saved template."`
	Path   TemplatePath   `cmd:""             help:"Print the template store file path."`
}

// TemplateList prints every saved template.
type TemplateList struct {
	Names bool `help:"Print names only."`
}

// Run executes the template list command.
func (l *TemplateList) Run(ctx context.Context) error {
	st, err := openStore(ctx)
	if err != nil {
		return err
	}

	w := outputFrom(ctx)

	if l.Names {
		for _, name := range st.Names() {
			fmt.Fprintln(w, name)
		}

		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)

	for _, name := range st.Names() {
		text, err := st.Get(name)
		if err != nil {
			return err
		}

		fmt.Fprintf(tw, "%s\t%s\n", name, text)
	}

	return tw.Flush()
}

// TemplateShow prints a saved template.
type TemplateShow struct {
	Name string `arg:"" help:"Template name."`
}

// Run executes the template show command.
func (s *TemplateShow) Run(ctx context.Context) error {
	st, err := openStore(ctx)
	if err != nil {
		return err
	}

	text, err := st.Get(s.Name)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(outputFrom(ctx), text)

	return err
}

// TemplateSave stores a template under a name.
type TemplateSave struct {
	Name     string `arg:""                                                   help:"Template name."`
	Template string `arg:""                                                   help:"Template text. Read from stdin if omitted." optional:""`
	Source   string `help:"Read the template from FILE or '-' for stdin." placeholder:"FILE" short:"f"`
}

// Run executes the template save command.
func (s *TemplateSave) Run(ctx context.Context) error {
	text, err := Input{Template: s.Template, Source: s.Source}.text(ctx)
	if err != nil {
		return err
	}

	st, err := openStore(ctx)
	if err != nil {
		return err
	}

	if err := st.Put(ctx, s.Name, text); err != nil {
		return err
	}

	if err := st.Save(ctx); err != nil {
		return err
	}

	log.InfoContext(ctx, "saved template",
		slog.String("name", s.Name),
		slog.String("path", st.Path()),
	)

	return nil
}

// TemplateDelete removes a saved template.
type TemplateDelete struct {
	Name string `arg:"" help:"Template name."`
}

// Run executes the template delete command.
func (d *TemplateDelete) Run(ctx context.Context) error {
	st, err := openStore(ctx)
	if err != nil {
		return err
	}

	if err := st.Delete(d.Name); err != nil {
		return err
	}

	return st.Save(ctx)
}

// TemplatePath prints the store file path.
type TemplatePath struct{}

// Run executes the template path command.
func (TemplatePath) Run(ctx context.Context) error {
	st, err := openStore(ctx)
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(outputFrom(ctx), st.Path())

	return err
}
