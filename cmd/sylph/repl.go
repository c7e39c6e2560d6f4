package main

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"
	"github.com/urfave/cli/v2"

	"github.com/sylph-lang/sylph/sylph"
)

var (
	accentColor    = lipgloss.Color("#3B82F6")
	successColor   = lipgloss.Color("#10B981")
	errorColor     = lipgloss.Color("#EF4444")
	mutedColor     = lipgloss.Color("#6B7280")
	highlightColor = lipgloss.Color("#F59E0B")

	promptStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true)

	resultStyle = lipgloss.NewStyle().
			Foreground(successColor)

	errorStyle = lipgloss.NewStyle().
			Foreground(errorColor)

	mutedStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	headerStyle = lipgloss.NewStyle().
			Foreground(accentColor).
			Bold(true).
			Padding(0, 1)

	helpKeyStyle = lipgloss.NewStyle().
			Foreground(highlightColor)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(mutedColor)

	borderStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(accentColor).
			Padding(0, 1)
)

func replCommand() *cli.Command {
	return &cli.Command{
		Name:   "repl",
		Usage:  "interactive session",
		Action: replAction,
	}
}

func replAction(c *cli.Context) error {
	fileCfg, err := loadProjectConfig(c.String("config"))
	if err != nil {
		return err
	}
	p := tea.NewProgram(newREPLModel(engineConfig(fileCfg, c)), tea.WithAltScreen())
	_, err = p.Run()
	return err
}

type historyEntry struct {
	input  string
	output string
	isErr  bool
}

// replModel keeps the whole session's source and re-runs it after every
// committed entry. Runs are deterministic, so earlier entries always print
// the same lines again and only the lines past outputShown are new.
type replModel struct {
	textInput   textinput.Model
	engine      *sylph.Engine
	runBuf      *bytes.Buffer
	session     []string
	pending     []string
	blockDepth  int
	outputShown int
	history     []historyEntry
	cmdHistory  []string
	historyIdx  int
	width       int
	height      int
	showHelp    bool
	showFns     bool
	quitting    bool
	initialized bool
}

type keyMap struct {
	Up    key.Binding
	Down  key.Binding
	Enter key.Binding
	CtrlC key.Binding
	CtrlD key.Binding
	CtrlL key.Binding
	Tab   key.Binding
	CtrlF key.Binding
	CtrlK key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "previous entry"),
	),
	Down: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "next entry"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "execute"),
	),
	CtrlC: key.NewBinding(
		key.WithKeys("ctrl+c"),
		key.WithHelp("ctrl+c", "quit"),
	),
	CtrlD: key.NewBinding(
		key.WithKeys("ctrl+d"),
		key.WithHelp("ctrl+d", "quit"),
	),
	CtrlL: key.NewBinding(
		key.WithKeys("ctrl+l"),
		key.WithHelp("ctrl+l", "clear"),
	),
	Tab: key.NewBinding(
		key.WithKeys("tab"),
		key.WithHelp("tab", "autocomplete"),
	),
	CtrlF: key.NewBinding(
		key.WithKeys("ctrl+f"),
		key.WithHelp("ctrl+f", "toggle functions"),
	),
	CtrlK: key.NewBinding(
		key.WithKeys("ctrl+k"),
		key.WithHelp("ctrl+k", "toggle help"),
	),
}

func newREPLModel(cfg sylph.Config) replModel {
	ti := textinput.New()
	ti.Placeholder = "type a statement..."
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60
	ti.PromptStyle = promptStyle
	ti.Prompt = "sylph> "

	runBuf := &bytes.Buffer{}
	cfg.Output = runBuf

	return replModel{
		textInput:  ti,
		engine:     sylph.NewEngine(cfg),
		runBuf:     runBuf,
		session:    make([]string, 0),
		history:    make([]historyEntry, 0),
		cmdHistory: make([]string, 0),
		historyIdx: -1,
	}
}

func (m replModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, tea.EnterAltScreen)
}

func (m replModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.textInput.Width = msg.Width - 10
		m.initialized = true
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.CtrlC), key.Matches(msg, keys.CtrlD):
			m.quitting = true
			return m, tea.Quit

		case key.Matches(msg, keys.CtrlL):
			m.history = make([]historyEntry, 0)
			return m, nil

		case key.Matches(msg, keys.CtrlF):
			m.showFns = !m.showFns
			return m, nil

		case key.Matches(msg, keys.CtrlK):
			m.showHelp = !m.showHelp
			return m, nil

		case key.Matches(msg, keys.Up):
			if len(m.cmdHistory) > 0 {
				if m.historyIdx == -1 {
					m.historyIdx = len(m.cmdHistory) - 1
				} else if m.historyIdx > 0 {
					m.historyIdx--
				}
				m.textInput.SetValue(m.cmdHistory[m.historyIdx])
				m.textInput.CursorEnd()
			}
			return m, nil

		case key.Matches(msg, keys.Down):
			if m.historyIdx != -1 {
				if m.historyIdx < len(m.cmdHistory)-1 {
					m.historyIdx++
					m.textInput.SetValue(m.cmdHistory[m.historyIdx])
				} else {
					m.historyIdx = -1
					m.textInput.SetValue("")
				}
				m.textInput.CursorEnd()
			}
			return m, nil

		case key.Matches(msg, keys.Tab):
			m = m.handleAutocomplete()
			return m, nil

		case key.Matches(msg, keys.Enter):
			input := m.textInput.Value()
			trimmed := strings.TrimSpace(input)
			if trimmed == "" && m.blockDepth == 0 {
				return m, nil
			}

			if m.blockDepth == 0 && strings.HasPrefix(trimmed, ":") {
				var cmd tea.Cmd
				m, cmd = m.handleCommand(trimmed)
				m.textInput.SetValue("")
				m.historyIdx = -1
				return m, cmd
			}

			m.cmdHistory = append(m.cmdHistory, input)
			m.historyIdx = -1
			m.textInput.SetValue("")

			m.pending = append(m.pending, input)
			m.blockDepth += blockDelta(trimmed)
			if m.blockDepth > 0 {
				m.textInput.Prompt = "  ...> "
				return m, nil
			}
			m.blockDepth = 0
			m.textInput.Prompt = "sylph> "

			entry := strings.Join(m.pending, "\n")
			m.pending = nil
			output, isErr := m.evaluate(entry)
			m.history = append(m.history, historyEntry{
				input:  entry,
				output: output,
				isErr:  isErr,
			})
			return m, nil
		}
	}

	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

// blockDelta tracks block nesting from the leading keyword alone, just enough
// to know when a multi-line entry is complete.
func blockDelta(line string) int {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return 0
	}
	switch fields[0] {
	case "def", "if", "while":
		return 1
	case "end":
		return -1
	}
	return 0
}

func (m replModel) handleCommand(input string) (replModel, tea.Cmd) {
	parts := strings.Fields(input)
	cmd := parts[0]

	switch cmd {
	case ":help", ":h":
		m.showHelp = !m.showHelp
	case ":clear", ":c":
		m.history = make([]historyEntry, 0)
	case ":fns", ":f":
		m.showFns = !m.showFns
	case ":list", ":l":
		listing := strings.Join(m.session, "\n")
		if listing == "" {
			listing = "(empty session)"
		}
		m.history = append(m.history, historyEntry{
			input:  input,
			output: listing,
			isErr:  false,
		})
	case ":reset", ":r":
		m.session = make([]string, 0)
		m.pending = nil
		m.blockDepth = 0
		m.outputShown = 0
		m.textInput.Prompt = "sylph> "
		m.history = append(m.history, historyEntry{
			input:  input,
			output: "Session reset",
			isErr:  false,
		})
	case ":quit", ":q":
		m.quitting = true
		return m, tea.Quit
	default:
		m.history = append(m.history, historyEntry{
			input:  input,
			output: fmt.Sprintf("Unknown command: %s", cmd),
			isErr:  true,
		})
	}
	return m, nil
}

func (m replModel) handleAutocomplete() replModel {
	input := m.textInput.Value()
	if input == "" {
		return m
	}

	words := strings.Fields(input)
	if len(words) == 0 {
		return m
	}
	lastWord := words[len(words)-1]

	candidates := []string{"out", "def", "end", "if", "else", "while", "return"}
	candidates = append(candidates, m.sessionFunctions()...)

	matches := fuzzy.Find(lastWord, candidates)
	if len(matches) == 1 {
		prefix := strings.TrimSuffix(input, lastWord)
		m.textInput.SetValue(prefix + matches[0].Str)
		m.textInput.CursorEnd()
	} else if len(matches) > 1 {
		names := make([]string, 0, len(matches))
		for _, match := range matches {
			names = append(names, match.Str)
		}
		m.history = append(m.history, historyEntry{
			input:  "",
			output: "Completions: " + strings.Join(names, ", "),
			isErr:  false,
		})
	}

	return m
}

func (m replModel) sessionFunctions() []string {
	if len(m.session) == 0 {
		return nil
	}
	script, err := m.engine.Compile(strings.Join(m.session, "\n"))
	if err != nil {
		return nil
	}
	names := make([]string, 0)
	for _, fn := range script.Functions() {
		names = append(names, fn.Name)
	}
	return names
}

// evaluate re-runs the whole session plus the new entry on a fresh global
// frame and shows only the output past what earlier runs already printed. A
// failing entry is not committed, so the session stays runnable.
func (m *replModel) evaluate(entry string) (string, bool) {
	candidate := append(append([]string{}, m.session...), strings.Split(entry, "\n")...)
	source := strings.Join(candidate, "\n")

	script, err := m.engine.Compile(source)
	if err != nil {
		return err.Error(), true
	}

	m.runBuf.Reset()
	runErr := script.Run(context.Background())
	lines := outputLines(m.runBuf.String())

	fresh := lines
	if len(lines) >= m.outputShown {
		fresh = lines[m.outputShown:]
	}

	if runErr != nil {
		out := strings.Join(fresh, "\n")
		if out != "" {
			out += "\n"
		}
		return out + runErr.Error(), true
	}

	m.session = candidate
	m.outputShown = len(lines)
	if len(fresh) == 0 {
		return "ok", false
	}
	return strings.Join(fresh, "\n"), false
}

func outputLines(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(strings.TrimSuffix(s, "\n"), "\n")
}

func (m replModel) View() string {
	if !m.initialized {
		return "Loading..."
	}

	if m.quitting {
		return mutedStyle.Render("Goodbye!\n")
	}

	var b strings.Builder

	header := headerStyle.Render("Sylph REPL")
	version := mutedStyle.Render("v0.1.0")
	b.WriteString(header + " " + version + "\n")
	b.WriteString(mutedStyle.Render(strings.Repeat("─", min(m.width-2, 60))) + "\n\n")

	reservedLines := 8
	if m.showHelp {
		reservedLines += 10
	}
	if m.showFns {
		reservedLines += len(m.sessionFunctions()) + 3
	}
	availableHeight := m.height - reservedLines

	historyStart := 0
	if len(m.history) > availableHeight {
		historyStart = len(m.history) - availableHeight
	}

	for i := historyStart; i < len(m.history); i++ {
		entry := m.history[i]
		if entry.input != "" {
			for _, line := range strings.Split(entry.input, "\n") {
				b.WriteString(mutedStyle.Render("  › ") + line + "\n")
			}
		}
		marker, style := "→ ", resultStyle
		if entry.isErr {
			marker, style = "✗ ", errorStyle
		}
		for j, line := range strings.Split(entry.output, "\n") {
			if j == 0 {
				b.WriteString("  " + style.Render(marker+line) + "\n")
			} else {
				b.WriteString("    " + style.Render(line) + "\n")
			}
		}
		b.WriteString("\n")
	}

	if m.showFns {
		b.WriteString(m.renderFunctionsPanel())
		b.WriteString("\n")
	}

	if m.showHelp {
		b.WriteString(renderHelpPanel())
		b.WriteString("\n")
	}

	b.WriteString(m.textInput.View() + "\n\n")

	footer := helpKeyStyle.Render("ctrl+k") + helpDescStyle.Render(" help  ") +
		helpKeyStyle.Render("ctrl+f") + helpDescStyle.Render(" functions  ") +
		helpKeyStyle.Render("ctrl+l") + helpDescStyle.Render(" clear  ") +
		helpKeyStyle.Render("ctrl+c") + helpDescStyle.Render(" quit")
	b.WriteString(footer)

	return b.String()
}

func (m replModel) renderFunctionsPanel() string {
	var signatures []string
	if len(m.session) > 0 {
		if script, err := m.engine.Compile(strings.Join(m.session, "\n")); err == nil {
			nameStyle := lipgloss.NewStyle().Foreground(highlightColor)
			for _, fn := range script.Functions() {
				signatures = append(signatures, fmt.Sprintf("  %s(%s)", nameStyle.Render(fn.Name), strings.Join(fn.Params, ", ")))
			}
		}
	}
	if len(signatures) == 0 {
		return borderStyle.Render(mutedStyle.Render("No functions defined"))
	}

	lines := []string{lipgloss.NewStyle().Bold(true).Foreground(accentColor).Render("Functions")}
	lines = append(lines, signatures...)
	return borderStyle.Render(strings.Join(lines, "\n"))
}

func renderHelpPanel() string {
	help := []struct {
		key  string
		desc string
	}{
		{"↑/↓", "Navigate entry history"},
		{"Tab", "Autocomplete"},
		{"Enter", "Execute (blocks run at their end)"},
		{":list", "Show the session source"},
		{":fns", "Toggle functions panel"},
		{":clear", "Clear history"},
		{":reset", "Drop the session source"},
		{":quit", "Exit REPL"},
	}

	var lines []string
	lines = append(lines, lipgloss.NewStyle().Bold(true).Foreground(accentColor).Render("Help"))
	for _, h := range help {
		line := fmt.Sprintf("  %s  %s",
			helpKeyStyle.Render(fmt.Sprintf("%-8s", h.key)),
			helpDescStyle.Render(h.desc))
		lines = append(lines, line)
	}

	return borderStyle.Render(strings.Join(lines, "\n"))
}
