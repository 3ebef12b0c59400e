package cmd

import (
	"context"
	"io"
	"os"

	"github.com/alecthomas/kong"

	"github.com/ardnew/permute/pkg"
	"github.com/ardnew/permute/store"
)

type (
	kongKey   struct{}
	outputKey struct{}
	inputKey  struct{}
	storeKey  struct{}
)

// WithContext returns a new context.Context containing the given kong.Context.
func WithContext(ctx context.Context, ktx *kong.Context) context.Context {
	return context.WithValue(ctx, kongKey{}, ktx)
}

func kongContextFrom(ctx context.Context) *kong.Context {
	ktx, _ := ctx.Value(kongKey{}).(*kong.Context)

	return ktx
}

// WithOutput returns a new context.Context whose commands write to w.
func WithOutput(ctx context.Context, w io.Writer) context.Context {
	return context.WithValue(ctx, outputKey{}, w)
}

// outputFrom returns the writer stored with [WithOutput], the kong
// application's stdout, or os.Stdout, whichever is found first.
func outputFrom(ctx context.Context) io.Writer {
	if w, ok := ctx.Value(outputKey{}).(io.Writer); ok && w != nil {
		return w
	}

	if ktx := kongContextFrom(ctx); ktx != nil && ktx.Stdout != nil {
		return ktx.Stdout
	}

	return os.Stdout
}

// WithInput returns a new context.Context whose commands read stdin from r.
func WithInput(ctx context.Context, r io.Reader) context.Context {
	return context.WithValue(ctx, inputKey{}, r)
}

func inputFrom(ctx context.Context) io.Reader {
	if r, ok := ctx.Value(inputKey{}).(io.Reader); ok && r != nil {
		return r
	}

	return os.Stdin
}

// WithStoreOptions returns a new context.Context whose commands open the
// template store with opts.
func WithStoreOptions(ctx context.Context, opts ...store.Option) context.Context {
	return context.WithValue(ctx, storeKey{}, opts)
}

func openStore(ctx context.Context) (*store.Store, error) {
	opts, _ := ctx.Value(storeKey{}).([]store.Option)

	return store.Open(ctx, opts...)
}

// kongVar returns the kong variable named id, or fallback if it is undefined.
func kongVar(ctx context.Context, id, fallback string) string {
	if ktx := kongContextFrom(ctx); ktx != nil {
		if v, ok := ktx.Model.Vars()[id]; ok && v != "" {
			return v
		}
	}

	return fallback
}

func cacheDir(ctx context.Context) string {
	return kongVar(ctx, CacheIdentifier, pkg.CacheDir())
}
