package repl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/ardnew/permute/lang"
	"github.com/ardnew/permute/store"
)

const (
	expandPrompt  = "➜ "
	commandPrompt = " :"
)

func helpMessage() string {
	return `
: Commands (press Esc to toggle mode):

  help         Print this cruft
  list         List saved templates
  load NAME    Edit the saved template NAME
  save NAME    Save the last expanded template as NAME
  delete NAME  Delete the saved template NAME
  clear        Clear screen
  quit         Exit REPL

Usage:
  Type a template and press Enter to print every variant
  The line below the input shows the output count as you type
  Press Tab / Shift-Tab to cycle through command and name completions
  Press Esc to toggle between template and command modes
  Use Up/Down arrows for history navigation (mode switches automatically)
  Use Shift+Up/Shift+Down for history navigation within current mode only
  Press Ctrl+C on empty line or Ctrl+D to exit
`
}

// inputMode represents the current input mode.
type inputMode int

const (
	modeExpand inputMode = iota
	modeCommand
)

// Styles.
var (
	promptStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true)
	commandPromptStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("5")).
				Bold(true)
	inputStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("15"))
	resultStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	errorStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	hintStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("8"))
	suggestionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("4"))
	matchStyle      = lipgloss.NewStyle().
			Foreground(lipgloss.Color("4")).
			Bold(true)
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("0")).
			Background(lipgloss.Color("4"))
	selectedMatchStyle = selectedStyle.Bold(true)
)

func formatExpandEcho(input string) string {
	return promptStyle.Render(expandPrompt) + inputStyle.Render(input)
}

func formatCommandEcho(input string) string {
	return commandPromptStyle.Render(commandPrompt) + inputStyle.Render(input)
}

// model is the Bubble Tea model for the REPL.
type model struct {
	ctxFunc      func() context.Context
	cfg          config
	input        textinput.Model
	store        *store.Store
	history      *History
	historyIdx   int
	matches      fuzzy.Matches // current fuzzy match results
	wordStart    int           // byte offset of the completed text
	wordEnd      int           // byte offset past the completed text
	suggIdx      int           // selected candidate index
	tabActive    bool          // whether user is tab-cycling
	preTabText   string        // input text before tab-cycling began
	preTabCursor int           // cursor position before tab-cycling began
	width        int           // terminal width for ellipsization
	quitting     bool
	mode         inputMode
	last         string // last template expanded without error
	expandText   string
	expandCursor int
	cmdText      string
	cmdCursor    int
}

// Run starts an interactive session backed by the template store st.
// History is kept in cacheDir.
func Run(
	ctx context.Context,
	st *store.Store,
	cacheDir string,
	opts ...Option,
) (err error) {
	ctx, cancel := context.WithCancelCause(ctx)

	defer func(err *error) { cancel(*err) }(&err)

	cfg := makeConfig(opts...)

	cfg.logger.TraceContext(ctx, "repl start",
		slog.String("cache_dir", cacheDir),
		slog.Int("display", cfg.display),
		slog.Int("limit", cfg.limit),
	)

	if st == nil {
		return ErrNoStore
	}

	history := NewHistory(filepath.Join(cacheDir, baseHistory), cfg.historySize)
	if err := history.Load(); err != nil {
		cfg.logger.WarnContext(ctx, "could not load history", slog.Any("error", err))
	}

	cfg.logger.TraceContext(ctx, "repl history loaded",
		slog.Int("entry_count", history.Len()),
	)

	p := tea.NewProgram(newModel(ctx, st, history, cfg), tea.WithContext(ctx))
	_, err = p.Run()

	return err
}

const defaultWidth = 80

func newModel(
	ctx context.Context,
	st *store.Store,
	history *History,
	cfg config,
) model {
	ti := textinput.New()
	ti.Prompt = promptStyle.Render(expandPrompt)
	ti.Focus()
	ti.CharLimit = 4096
	ti.Width = defaultWidth

	return model{
		ctxFunc:    func() context.Context { return ctx },
		cfg:        cfg,
		input:      ti,
		store:      st,
		history:    history,
		historyIdx: history.Len(),
		suggIdx:    -1,
		width:      defaultWidth,
		mode:       modeExpand,
	}
}

func (m model) Init() tea.Cmd {
	return textinput.Blink
}

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.input.Width = msg.Width - len(expandPrompt) - 2

		return m, nil
	}

	var cmd tea.Cmd

	m.input, cmd = m.input.Update(msg)

	return m, cmd
}

func (m model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString(m.input.View())
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")

	return b.String()
}

// statusLine returns the line shown below the input.
func (m model) statusLine() string {
	input := m.input.Value()

	switch {
	case m.historyIdx < m.history.Len():
		return hintStyle.Render(fmt.Sprintf("%s/%d",
			lipgloss.NewStyle().Bold(true).Render(strconv.Itoa(m.historyIdx+1)),
			m.history.Len()))

	case strings.TrimSpace(input) == "":
		if m.mode == modeExpand {
			return hintStyle.Render("Type a template or press Esc for commands")
		}

		return hintStyle.Render("Type: " + strings.Join(commands, ", ") + " (press Esc to return)")

	case len(m.matches) > 0:
		return renderCandidateBar(m.matches, m.suggIdx, m.tabActive, m.width)

	case m.mode == modeExpand:
		return countHint(m.ctxFunc(), input)

	default:
		return ""
	}
}

// countHint describes the outputs template would produce, or why it does
// not parse.
func countHint(ctx context.Context, template string) string {
	stmt, err := lang.ParseString(ctx, template)
	if err != nil {
		var perr *lang.ParseError
		if errors.As(err, &perr) {
			return errorStyle.Render(fmt.Sprintf("%s: %s", perr.Span.Start, perr.Cause))
		}

		return errorStyle.Render(err.Error())
	}

	n, ok := stmt.Count()
	if !ok {
		return hintStyle.Render("too many outputs to count")
	}

	if n == 1 {
		return hintStyle.Render("1 output")
	}

	return hintStyle.Render(strconv.FormatUint(n, 10) + " outputs")
}

func (m model) handleKey(msg tea.KeyMsg) (model, tea.Cmd) {
	m.cfg.logger.TraceContext(m.ctxFunc(), "repl keypress",
		slog.String("key", msg.String()),
		slog.Int("type", int(msg.Type)),
	)

	switch msg.Type {
	case tea.KeyCtrlC:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		m.input.SetValue("")
		m.tabActive = false
		m.historyIdx = m.history.Len()
		m.refreshMatches()

		return m, nil

	case tea.KeyCtrlD:
		if m.input.Value() == "" {
			m.quitting = true

			return m, tea.Quit
		}

		return m, nil

	case tea.KeyEnter:
		if !m.tabActive || len(m.matches) == 0 {
			return m.executeInput()
		}
		// Lock in the current tab candidate without executing.
		m.tabActive = false
		m.refreshMatches()

		return m, nil

	case tea.KeyTab:
		return m.cycleCandidate(1), nil

	case tea.KeyShiftTab:
		return m.cycleCandidate(-1), nil

	case tea.KeyUp:
		return m.historyMove(-1, false), nil

	case tea.KeyDown:
		return m.historyMove(1, false), nil

	case tea.KeyShiftUp:
		return m.historyMove(-1, true), nil

	case tea.KeyShiftDown:
		return m.historyMove(1, true), nil

	case tea.KeyEsc:
		if m.tabActive {
			m.tabActive = false
			m.input.SetValue(m.preTabText)
			m.input.SetCursor(m.preTabCursor)
			m.refreshMatches()

			return m, nil
		}

		return m.toggleMode(), nil
	}

	var cmd tea.Cmd

	if m.tabActive && msg.Type == tea.KeyRunes && msg.String() == " " {
		m.tabActive = false
	}

	if msg.Type != tea.KeyRunes {
		m.tabActive = false
	}

	m.historyIdx = m.history.Len()
	m.input, cmd = m.input.Update(msg)
	m.refreshMatches()

	return m, cmd
}

// cycleCandidate moves the tab selection by step and writes the selected
// candidate into the input. A single candidate completes immediately.
func (m model) cycleCandidate(step int) model {
	if len(m.matches) == 0 {
		return m
	}

	if len(m.matches) == 1 {
		m.replaceWord(m.matches[0].Str)
		m.tabActive = false
		m.suggIdx = -1
		m.matches = nil

		return m
	}

	if m.tabActive {
		m.suggIdx = (m.suggIdx + step + len(m.matches)) % len(m.matches)
	} else {
		m.tabActive = true
		m.preTabText = m.input.Value()
		m.preTabCursor = m.input.Position()

		m.suggIdx = 0
		if step < 0 {
			m.suggIdx = len(m.matches) - 1
		}
	}

	m.replaceWord(m.matches[m.suggIdx].Str)

	return m
}

// replaceWord replaces the completed range of the input with replacement
// and moves the cursor after it.
func (m *model) replaceWord(replacement string) {
	input := m.input.Value()
	end := min(m.wordEnd, len(input))
	start := min(m.wordStart, end)

	m.input.SetValue(input[:start] + replacement + input[end:])
	m.input.SetCursor(start + len(replacement))
	m.wordEnd = start + len(replacement)
}

// refreshMatches recomputes the completion candidates for the current input.
func (m *model) refreshMatches() {
	if m.tabActive {
		return
	}

	m.matches, m.wordStart, m.wordEnd = m.computeMatches()
	m.suggIdx = -1
}

func (m model) executeInput() (model, tea.Cmd) {
	input := m.input.Value()
	if strings.TrimSpace(input) == "" {
		return m, nil
	}

	if m.mode == modeCommand {
		input = strings.TrimSpace(input)
	}

	m.input.SetValue("")
	m.matches = nil

	if err := m.history.Add(input, m.mode); err != nil {
		m.cfg.logger.WarnContext(m.ctxFunc(), "could not write history",
			slog.Any("error", err))
	}

	m.historyIdx = m.history.Len()

	if m.mode == modeCommand {
		m.cmdText, m.cmdCursor = "", 0

		return m.executeCommand(input)
	}

	m.expandText, m.expandCursor = "", 0

	m.cfg.logger.TraceContext(m.ctxFunc(), "repl expand",
		slog.String("input", input),
	)

	result, err := lang.Expand(m.ctxFunc(), input,
		lang.WithLogger(m.cfg.logger),
		lang.WithLimit(m.cfg.limit),
	)
	if err == nil {
		m.last = input
	}

	return m, tea.Sequence(
		tea.Println(formatExpandEcho(input)),
		tea.Println(formatResults(result, err, m.cfg.display)),
	)
}

// formatResults renders an expansion for printing, showing at most display
// outputs.
func formatResults(result []string, err error, display int) string {
	if err != nil {
		var (
			b    strings.Builder
			perr *lang.ParseError
		)

		if errors.As(err, &perr) {
			b.WriteString(hintStyle.Render(perr.Snippet()))
			b.WriteString("\n")
		}

		b.WriteString(errorStyle.Render("error: " + err.Error()))

		return b.String()
	}

	shown := result
	if display > 0 && len(shown) > display {
		shown = shown[:display]
	}

	lines := make([]string, 0, len(shown)+1)

	for _, s := range shown {
		lines = append(lines, resultStyle.Render(s))
	}

	if hidden := len(result) - len(shown); hidden > 0 {
		lines = append(lines, hintStyle.Render(fmt.Sprintf(
			"... %d more (%d total)", hidden, len(result))))
	}

	return strings.Join(lines, "\n")
}

func (m model) executeCommand(input string) (model, tea.Cmd) {
	command, argStart := splitCommand(input)
	arg := strings.TrimSpace(input[argStart:])

	echo := tea.Println(formatCommandEcho(input))

	m.cfg.logger.TraceContext(m.ctxFunc(), "repl command",
		slog.String("command", command),
		slog.String("arg", arg),
	)

	switch command {
	case "q", "quit", "exit":
		m.quitting = true

		return m, tea.Sequence(echo, tea.Quit)

	case "h", "help":
		return m, tea.Sequence(echo, tea.Println(helpMessage()))

	case "l", "list":
		return m, tea.Sequence(echo, tea.Println(m.listTemplates()))

	case "c", "clear":
		return m, tea.ClearScreen

	case "load":
		text, err := m.loadTemplate(arg)
		if err != nil {
			return m, tea.Sequence(echo, printError(err))
		}

		m.expandText, m.expandCursor = text, len(text)
		m = m.switchToMode(modeExpand)

		return m, echo

	case "save":
		if err := m.saveTemplate(arg); err != nil {
			return m, tea.Sequence(echo, printError(err))
		}

		return m, tea.Sequence(echo, tea.Println(resultStyle.Render("saved "+strconv.Quote(arg))))

	case "delete":
		if err := m.deleteTemplate(arg); err != nil {
			return m, tea.Sequence(echo, printError(err))
		}

		return m, tea.Sequence(echo, tea.Println(resultStyle.Render("deleted "+strconv.Quote(arg))))

	default:
		return m, tea.Sequence(echo, tea.Println(
			errorStyle.Render("unknown command: "+command+" (try 'help')")))
	}
}

func printError(err error) tea.Cmd {
	return tea.Println(errorStyle.Render("error: " + err.Error()))
}

func (m model) loadTemplate(name string) (string, error) {
	if name == "" {
		return "", ErrMissingName
	}

	return m.store.Get(name)
}

func (m model) saveTemplate(name string) error {
	if name == "" {
		return ErrMissingName
	}

	if m.last == "" {
		return ErrNothingSave
	}

	ctx := m.ctxFunc()

	if err := m.store.Put(ctx, name, m.last); err != nil {
		return err
	}

	return m.store.Save(ctx)
}

func (m model) deleteTemplate(name string) error {
	if name == "" {
		return ErrMissingName
	}

	if err := m.store.Delete(name); err != nil {
		return err
	}

	return m.store.Save(m.ctxFunc())
}

func (m model) listTemplates() string {
	names := m.store.Names()
	if len(names) == 0 {
		return hintStyle.Render("  no saved templates")
	}

	width := 0
	for _, name := range names {
		width = max(width, lipgloss.Width(name))
	}

	var b strings.Builder

	for _, name := range names {
		text, _ := m.store.Get(name)
		fmt.Fprintf(&b, "  %-*s  %s\n", width, name,
			hintStyle.Render(preview(text, max(m.width-width-6, 20))))
	}

	return strings.TrimSuffix(b.String(), "\n")
}

// historyMove steps through history by delta. Unless sameMode is set, the
// input mode follows the mode of the recalled entry. Moving past the newest
// entry clears the input.
func (m model) historyMove(delta int, sameMode bool) model {
	for i := m.historyIdx + delta; i >= 0 && i < m.history.Len(); i += delta {
		entry, err := m.history.Entry(i)
		if err != nil {
			break
		}

		if sameMode && entry.Mode != m.mode {
			continue
		}

		if entry.Mode != m.mode {
			m = m.switchToMode(entry.Mode)
		}

		m.historyIdx = i
		m.input.SetValue(entry.Line)
		m.input.SetCursor(len(entry.Line))
		m.refreshMatches()

		return m
	}

	if delta > 0 && m.historyIdx < m.history.Len() {
		m.historyIdx = m.history.Len()
		m.input.SetValue("")
		m.refreshMatches()
	}

	return m
}

// toggleMode switches between template and command modes.
func (m model) toggleMode() model {
	if m.mode == modeExpand {
		return m.switchToMode(modeCommand)
	}

	return m.switchToMode(modeExpand)
}

// switchToMode switches to mode, saving the current input so that it is
// restored when switching back.
func (m model) switchToMode(mode inputMode) model {
	if m.mode == modeExpand {
		m.expandText, m.expandCursor = m.input.Value(), m.input.Position()
	} else {
		m.cmdText, m.cmdCursor = m.input.Value(), m.input.Position()
	}

	m.mode = mode
	m.tabActive = false

	if mode == modeExpand {
		m.input.Prompt = promptStyle.Render(expandPrompt)
		m.input.SetValue(m.expandText)
		m.input.SetCursor(m.expandCursor)
	} else {
		m.input.Prompt = commandPromptStyle.Render(commandPrompt)
		m.input.SetValue(m.cmdText)
		m.input.SetCursor(m.cmdCursor)
	}

	m.refreshMatches()

	return m
}
