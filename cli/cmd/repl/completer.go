package repl

import (
	"slices"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"
)

// commands are the command-mode commands, in help order.
var commands = []string{"help", "list", "load", "save", "delete", "clear", "quit"}

// nameCommands are the commands whose argument is a template name.
var nameCommands = []string{"load", "save", "delete"}

// splitCommand returns the command word of input and the byte offset where
// its argument begins. The offset is len(input) if there is no argument.
func splitCommand(input string) (command string, argStart int) {
	trimmed := strings.TrimLeft(input, " ")
	lead := len(input) - len(trimmed)

	end := strings.IndexByte(trimmed, ' ')
	if end < 0 {
		return trimmed, len(input)
	}

	rest := trimmed[end:]
	argStart = lead + end + (len(rest) - len(strings.TrimLeft(rest, " ")))

	return trimmed[:end], argStart
}

// computeMatches returns the fuzzy matches for the input at the cursor and
// the byte range of input the selected match replaces.
//
// Completion is offered in command mode only: the first word completes to a
// command, and the argument of a name command completes to a saved template
// name. Names may contain spaces, so the argument runs to the end of input.
func (m model) computeMatches() (matches fuzzy.Matches, wordStart, wordEnd int) {
	if m.mode != modeCommand {
		return nil, 0, 0
	}

	input := m.input.Value()
	command, argStart := splitCommand(input)

	if argStart == len(input) && !strings.HasSuffix(input, " ") {
		if command == "" {
			return nil, 0, 0
		}

		return fuzzy.Find(command, commands), len(input) - len(command), len(input)
	}

	if !slices.Contains(nameCommands, command) || m.store == nil {
		return nil, 0, 0
	}

	names := m.store.Names()
	word := input[argStart:]

	if word == "" {
		matches = make(fuzzy.Matches, len(names))
		for i, name := range names {
			matches[i] = fuzzy.Match{Str: name, Index: i}
		}

		return matches, argStart, len(input)
	}

	return fuzzy.Find(word, names), argStart, len(input)
}

// renderCandidateBar builds the single-line completion bar, ellipsized to fit
// within width. The selected candidate (when tabbing) uses the selected style.
func renderCandidateBar(
	matches fuzzy.Matches,
	suggIdx int,
	tabActive bool,
	width int,
) string {
	if len(matches) == 0 || width <= 0 {
		return ""
	}

	const sep = "  "

	ellipsis := hintStyle.Render("...")
	reserve := lipgloss.Width(sep) + lipgloss.Width(ellipsis)

	var (
		b    strings.Builder
		used int
	)

	for i, match := range matches {
		rendered := renderCandidate(match, tabActive && i == suggIdx)
		w := lipgloss.Width(rendered)

		if i > 0 {
			w += lipgloss.Width(sep)
		}

		if i > 0 && used+w+reserve > width {
			b.WriteString(sep)
			b.WriteString(ellipsis)

			break
		}

		if i > 0 {
			b.WriteString(sep)
		}

		b.WriteString(rendered)

		used += w
	}

	return b.String()
}

// renderCandidate renders a candidate with its matched characters
// highlighted.
func renderCandidate(match fuzzy.Match, selected bool) string {
	base, highlight := suggestionStyle, matchStyle
	if selected {
		base, highlight = selectedStyle, selectedMatchStyle
	}

	var b strings.Builder

	for i, r := range match.Str {
		if slices.Contains(match.MatchedIndexes, i) {
			b.WriteString(highlight.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}

	return b.String()
}

// preview shortens a template for single-line display.
func preview(text string, width int) string {
	text = strings.ReplaceAll(text, "\n", `\n`)

	runes := []rune(text)
	if width <= 3 || len(runes) <= width {
		return text
	}

	return string(runes[:width-3]) + "..."
}
