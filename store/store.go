package store

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/goccy/go-yaml"

	"github.com/ardnew/permute/lang"
	"github.com/ardnew/permute/log"
)

const (
	dirMode  os.FileMode = 0o700
	fileMode os.FileMode = 0o600
)

// Examples returns the templates a new store starts with.
func Examples() map[string]string {
	return map[string]string{
		"Disjunction Example": "a {black|brown} {cat|dog}",
		"Range Example":       "a (red:{0.0;1.0;0.1}) cat",
		"Variables Example":   "{<animal>:cat|dog}! a {<animal>} with another {<animal>}",
	}
}

// Store is a set of named templates backed by a YAML file.
// It is safe for concurrent use.
type Store struct {
	mu        sync.RWMutex
	path      string
	templates map[string]string
	logger    log.Logger
}

type options struct {
	logger   log.Logger
	dirs     []string
	examples bool
}

// Option configures [Open].
type Option func(*options)

// WithLogger sets the logger used for trace records.
func WithLogger(logger log.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// WithSearchPath replaces the directories searched for [FileName].
func WithSearchPath(dirs ...string) Option {
	return func(o *options) { o.dirs = dirs }
}

// WithExamples sets whether a new store starts with the built-in [Examples].
// It is enabled by default.
func WithExamples(enabled bool) Option {
	return func(o *options) { o.examples = enabled }
}

// Open loads the first [FileName] found in the search path. If none exists,
// the returned store is empty, or holds the built-in [Examples], and is
// bound to the first search directory.
func Open(ctx context.Context, opts ...Option) (*Store, error) {
	o := options{examples: true}

	for _, opt := range opts {
		opt(&o)
	}

	if o.dirs == nil {
		o.dirs = SearchPath()
	}

	if len(o.dirs) == 0 {
		o.dirs = []string{"."}
	}

	s := &Store{
		path:      filepath.Join(o.dirs[0], FileName),
		templates: make(map[string]string),
		logger:    o.logger,
	}

	for _, dir := range o.dirs {
		path := filepath.Join(dir, FileName)

		data, err := os.ReadFile(path)
		if errors.Is(err, fs.ErrNotExist) {
			continue
		}

		if err != nil {
			return nil, ErrDecode.Wrap(err).With(slog.String("path", path))
		}

		if err := s.decode(data); err != nil {
			return nil, ErrDecode.Wrap(err).With(slog.String("path", path))
		}

		s.path = path
		s.logger.TraceContext(ctx, "template store opened",
			slog.String("path", path),
			slog.Int("templates", len(s.templates)),
		)

		return s, nil
	}

	if o.examples {
		maps.Copy(s.templates, Examples())
	}

	s.logger.TraceContext(ctx, "template store created",
		slog.String("path", s.path),
		slog.Bool("examples", o.examples),
	)

	return s, nil
}

// Path returns the file the store is read from and saved to.
func (s *Store) Path() string { return s.path }

// Len returns the number of stored templates.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return len(s.templates)
}

// Names returns the stored template names in sorted order.
func (s *Store) Names() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return slices.Sorted(maps.Keys(s.templates))
}

// Get returns the template stored under name.
func (s *Store) Get(name string) (string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	template, ok := s.templates[name]
	if !ok {
		return "", ErrNotFound.With(slog.String("name", name))
	}

	return template, nil
}

// Put stores template under name, replacing any existing entry.
// The template must parse.
func (s *Store) Put(ctx context.Context, name, template string) error {
	if err := ValidateName(name); err != nil {
		return err
	}

	if _, err := lang.ParseString(ctx, template); err != nil {
		return ErrInvalidTemplate.Wrap(err).With(slog.String("name", name))
	}

	s.mu.Lock()
	s.templates[name] = template
	s.mu.Unlock()

	s.logger.TraceContext(ctx, "template stored", slog.String("name", name))

	return nil
}

// Delete removes the template stored under name.
func (s *Store) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.templates[name]; !ok {
		return ErrNotFound.With(slog.String("name", name))
	}

	delete(s.templates, name)

	return nil
}

// Save writes the store to [Store.Path], creating its directory if needed.
// The file is replaced atomically.
func (s *Store) Save(ctx context.Context) error {
	s.mu.RLock()
	data, err := s.encode()
	s.mu.RUnlock()

	if err != nil {
		return ErrEncode.Wrap(err).With(slog.String("path", s.path))
	}

	if err := writeFile(s.path, data); err != nil {
		return ErrEncode.Wrap(err).With(slog.String("path", s.path))
	}

	s.logger.TraceContext(ctx, "template store saved",
		slog.String("path", s.path),
		slog.Int("bytes", len(data)),
	)

	return nil
}

// ValidateName reports whether name may be used as a template name.
// Names must contain a non-space character and fit on a single line.
func ValidateName(name string) error {
	switch {
	case strings.TrimSpace(name) == "":
		return ErrInvalidName.Wrap(errors.New("name is empty"))
	case strings.ContainsAny(name, "\r\n"):
		return ErrInvalidName.Wrap(errors.New("name spans multiple lines")).
			With(slog.String("name", name))
	}

	return nil
}

func (s *Store) decode(data []byte) error {
	var templates map[string]string
	if err := yaml.Unmarshal(data, &templates); err != nil {
		return err
	}

	maps.Copy(s.templates, templates)

	return nil
}

func (s *Store) encode() ([]byte, error) {
	items := make(yaml.MapSlice, 0, len(s.templates))

	for _, name := range slices.Sorted(maps.Keys(s.templates)) {
		items = append(items, yaml.MapItem{Key: name, Value: s.templates[name]})
	}

	return yaml.Marshal(items)
}

func writeFile(path string, data []byte) error {
	dir := filepath.Dir(path)

	if err := os.MkdirAll(dir, dirMode); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, "."+FileName+".*")
	if err != nil {
		return err
	}

	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()

		return err
	}

	if err := tmp.Chmod(fileMode); err != nil {
		tmp.Close()

		return err
	}

	if err := tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}
