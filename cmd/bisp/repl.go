package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mgomes/bisp/bisp"
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

type historyEntry struct {
	input  string
	output string
	isErr  bool
}

type replModel struct {
	textInput   textinput.Model
	engine      *bisp.Engine
	history     []historyEntry
	cmdHistory  []string
	historyIdx  int
	pending     []string
	prompt      string
	width       int
	height      int
	showHelp    bool
	showStats   bool
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
	CtrlS key.Binding
	CtrlK key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "previous input"),
	),
	Down: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "next input"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "evaluate"),
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
	CtrlS: key.NewBinding(
		key.WithKeys("ctrl+s"),
		key.WithHelp("ctrl+s", "toggle stats"),
	),
	CtrlK: key.NewBinding(
		key.WithKeys("ctrl+k"),
		key.WithHelp("ctrl+k", "toggle help"),
	),
}

func newREPLModel(engine *bisp.Engine, prompt string) replModel {
	ti := textinput.New()
	ti.Placeholder = "type an expression..."
	ti.Focus()
	ti.CharLimit = 500
	ti.Width = 60
	ti.PromptStyle = promptStyle
	ti.Prompt = prompt

	return replModel{
		textInput:  ti,
		engine:     engine,
		history:    make([]historyEntry, 0),
		cmdHistory: make([]string, 0),
		historyIdx: -1,
		prompt:     prompt,
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

		case key.Matches(msg, keys.CtrlS):
			m.showStats = !m.showStats
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
			line := m.textInput.Value()
			if len(m.pending) == 0 {
				trimmed := strings.TrimSpace(line)
				if trimmed == "" {
					return m, nil
				}
				if strings.HasPrefix(trimmed, ":") {
					var cmd tea.Cmd
					m, cmd = m.handleCommand(trimmed)
					m.textInput.SetValue("")
					m.historyIdx = -1
					return m, cmd
				}
			}

			m.pending = append(m.pending, line)
			input := strings.Join(m.pending, "\n")
			m.textInput.SetValue("")
			m.historyIdx = -1
			if inputIncomplete(input) {
				m.textInput.Prompt = continuePrompt
				return m, nil
			}
			m.pending = nil
			m.textInput.Prompt = m.prompt

			output, isErr := m.evaluate(input)
			display := strings.ReplaceAll(input, "\n", " ")
			m.history = append(m.history, historyEntry{
				input:  display,
				output: output,
				isErr:  isErr,
			})
			m.cmdHistory = append(m.cmdHistory, display)
			return m, nil
		}
	}

	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

func (m replModel) handleCommand(input string) (replModel, tea.Cmd) {
	parts := strings.Fields(input)
	cmd := parts[0]

	switch cmd {
	case ":help", ":h":
		m.showHelp = !m.showHelp
	case ":clear", ":c":
		m.history = make([]historyEntry, 0)
	case ":stats", ":s":
		m.showStats = !m.showStats
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

	prefix, word := splitLastWord(input)
	if word == "" {
		return m
	}
	matches := completions(word)

	if len(matches) == 1 {
		m.textInput.SetValue(prefix + matches[0])
		m.textInput.CursorEnd()
	} else if len(matches) > 1 {
		m.history = append(m.history, historyEntry{
			input:  "",
			output: "Completions: " + strings.Join(matches, ", "),
			isErr:  false,
		})
	}

	return m
}

// evaluate runs one complete input. Error values are flagged so the view can
// colour them, but they are still ordinary results.
func (m replModel) evaluate(input string) (string, bool) {
	result, err := m.engine.Run(input)
	if err != nil {
		return err.Error(), true
	}
	defer m.engine.Release(result)
	return result.String(), result.IsError()
}

func (m replModel) View() string {
	if !m.initialized {
		return "Loading..."
	}

	if m.quitting {
		return mutedStyle.Render("Goodbye!\n")
	}

	var b strings.Builder

	header := headerStyle.Render(replBanner)
	b.WriteString(header + " " + mutedStyle.Render(replBannerSuffix) + "\n")
	b.WriteString(mutedStyle.Render(strings.Repeat("─", max(min(m.width-2, 60), 0))) + "\n\n")

	reservedLines := 8
	if m.showHelp {
		reservedLines += 10
	}
	if m.showStats {
		reservedLines += 6
	}
	availableHeight := max(m.height-reservedLines, 0)

	historyStart := 0
	if len(m.history) > availableHeight {
		historyStart = len(m.history) - availableHeight
	}

	for i := historyStart; i < len(m.history); i++ {
		entry := m.history[i]
		if entry.input != "" {
			b.WriteString(mutedStyle.Render("  › ") + entry.input + "\n")
		}
		if entry.isErr {
			b.WriteString("  " + errorStyle.Render("✗ "+entry.output) + "\n")
		} else {
			b.WriteString("  " + resultStyle.Render("→ "+entry.output) + "\n")
		}
		b.WriteString("\n")
	}

	if len(m.pending) > 0 {
		for _, line := range m.pending {
			b.WriteString(mutedStyle.Render("  … ") + line + "\n")
		}
	}

	if m.showStats {
		b.WriteString(renderStatsPanel(m.engine))
		b.WriteString("\n")
	}

	if m.showHelp {
		b.WriteString(renderHelpPanel())
		b.WriteString("\n")
	}

	b.WriteString(m.textInput.View() + "\n\n")

	footer := helpKeyStyle.Render("ctrl+k") + helpDescStyle.Render(" help  ") +
		helpKeyStyle.Render("ctrl+s") + helpDescStyle.Render(" stats  ") +
		helpKeyStyle.Render("ctrl+l") + helpDescStyle.Render(" clear  ") +
		helpKeyStyle.Render("ctrl+c") + helpDescStyle.Render(" quit")
	b.WriteString(footer)

	return b.String()
}

func renderStatsPanel(engine *bisp.Engine) string {
	stats := engine.Stats()
	nameStyle := lipgloss.NewStyle().Foreground(highlightColor)
	lines := []string{
		lipgloss.NewStyle().Bold(true).Foreground(accentColor).Render("Heap"),
		fmt.Sprintf("  %s %d", nameStyle.Render("allocated"), stats.Allocated),
		fmt.Sprintf("  %s %d", nameStyle.Render("released "), stats.Released),
		fmt.Sprintf("  %s %d", nameStyle.Render("live     "), stats.Live),
		mutedStyle.Render("  " + engine.ConfigSummary()),
	}
	return borderStyle.Render(strings.Join(lines, "\n"))
}

func renderHelpPanel() string {
	help := []struct {
		key  string
		desc string
	}{
		{"↑/↓", "Navigate input history"},
		{"Tab", "Autocomplete builtins"},
		{"Enter", "Evaluate expression"},
		{":help", "Toggle this help"},
		{":stats", "Toggle heap statistics"},
		{":clear", "Clear history"},
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

// splitLastWord separates the word being typed from everything before it.
// Words end at whitespace and list delimiters.
func splitLastWord(input string) (string, string) {
	idx := strings.LastIndexAny(input, " \t\n(){}")
	return input[:idx+1], input[idx+1:]
}

func completions(word string) []string {
	var out []string
	for _, name := range bisp.BuiltinNames() {
		if strings.HasPrefix(name, word) {
			out = append(out, name)
		}
	}
	return out
}

func runREPL(s settings) error {
	engine, err := bisp.NewEngine(s.engineConfig())
	if err != nil {
		return fmt.Errorf("configure engine: %w", err)
	}
	p := tea.NewProgram(newREPLModel(engine, s.REPL.Prompt), tea.WithAltScreen())
	_, err = p.Run()
	return err
}
