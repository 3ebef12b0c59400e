package repl

import (
	"bufio"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"
)

const baseHistory = "history.utf8"

const (
	expandPrefix  = "E:"
	commandPrefix = "C:"
)

// HistoryEntry is one line of input and the mode it was entered in.
type HistoryEntry struct {
	Line string
	Mode inputMode
}

func (e HistoryEntry) String() string {
	if e.Mode == modeCommand {
		return commandPrefix + e.Line
	}

	return expandPrefix + e.Line
}

func parseHistoryEntry(line string) HistoryEntry {
	if s, ok := strings.CutPrefix(line, commandPrefix); ok {
		return HistoryEntry{Line: s, Mode: modeCommand}
	}

	s, _ := strings.CutPrefix(line, expandPrefix)

	return HistoryEntry{Line: s, Mode: modeExpand}
}

// History is the input history of a session, persisted one entry per line.
// An empty path keeps the history in memory only.
type History struct {
	mu      sync.RWMutex
	path    string
	size    int
	entries []HistoryEntry
}

// NewHistory returns a History persisted at path that retains at most size
// entries. A size of zero or less retains every entry.
func NewHistory(path string, size int) *History {
	return &History{path: path, size: size}
}

// Load replaces the entries with those read from the history file.
// A missing file is not an error.
func (h *History) Load() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.path == "" {
		return nil
	}

	file, err := os.Open(h.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}

	if err != nil {
		return err
	}
	defer file.Close()

	h.entries = nil

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		if line := strings.TrimSuffix(scanner.Text(), "\r"); strings.TrimSpace(line) != "" {
			h.entries = append(h.entries, parseHistoryEntry(line))
		}
	}

	h.trim()

	return scanner.Err()
}

// Add records line entered in mode. Repeating the latest entry is a no-op,
// and an earlier identical entry moves to the end.
func (h *History) Add(line string, mode inputMode) error {
	entry := HistoryEntry{Line: line, Mode: mode}
	if strings.TrimSpace(line) == "" || strings.ContainsAny(line, "\r\n") {
		return nil
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	if n := len(h.entries); n > 0 && h.entries[n-1] == entry {
		return nil
	}

	before := len(h.entries)
	h.entries = slices.DeleteFunc(h.entries, func(e HistoryEntry) bool { return e == entry })
	rewrite := len(h.entries) != before

	h.entries = append(h.entries, entry)
	rewrite = h.trim() || rewrite

	if rewrite {
		return h.rewrite()
	}

	return h.append(entry)
}

// Entry returns the entry at index i, where 0 is the oldest.
func (h *History) Entry(i int) (HistoryEntry, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	if i < 0 || i >= len(h.entries) {
		return HistoryEntry{}, ErrOutOfBounds
	}

	return h.entries[i], nil
}

// Len returns the number of entries.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return len(h.entries)
}

// Entries returns a copy of every entry, oldest first.
func (h *History) Entries() []HistoryEntry {
	h.mu.RLock()
	defer h.mu.RUnlock()

	return slices.Clone(h.entries)
}

// trim drops the oldest entries beyond the size limit and reports whether
// any were dropped. Must be called with h.mu held.
func (h *History) trim() bool {
	if h.size <= 0 || len(h.entries) <= h.size {
		return false
	}

	h.entries = slices.Delete(h.entries, 0, len(h.entries)-h.size)

	return true
}

// append writes entry to the end of the history file.
// Must be called with h.mu held.
func (h *History) append(entry HistoryEntry) error {
	if h.path == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(h.path), 0o700); err != nil {
		return err
	}

	file, err := os.OpenFile(h.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o600)
	if err != nil {
		return err
	}

	if _, err := file.WriteString(entry.String() + "\n"); err != nil {
		file.Close()

		return err
	}

	return file.Close()
}

// rewrite replaces the history file with the current entries.
// Must be called with h.mu held.
func (h *History) rewrite() error {
	if h.path == "" {
		return nil
	}

	if err := os.MkdirAll(filepath.Dir(h.path), 0o700); err != nil {
		return err
	}

	var b strings.Builder

	for _, entry := range h.entries {
		b.WriteString(entry.String())
		b.WriteByte('\n')
	}

	return os.WriteFile(h.path, []byte(b.String()), 0o600)
}
