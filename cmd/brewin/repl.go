package main

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/mgomes/brewin/brewin"
)

const (
	replPrompt             = "brewin> "
	replContinuationPrompt = "  ...> "
)

type historyEntry struct {
	input  string
	output string
	isErr  bool
}

// replClass is one accepted class or template declaration. A later
// declaration with the same name replaces it.
type replClass struct {
	name string
	tree *brewin.SExpr
}

type replModel struct {
	textInput   textinput.Model
	engine      *brewin.Engine
	classes     []replClass
	pending     []string
	queuedInput []string
	history     []historyEntry
	cmdHistory  []string
	historyIdx  int
	width       int
	height      int
	showHelp    bool
	showClasses bool
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
	CtrlV key.Binding
	CtrlH key.Binding
}

var keys = keyMap{
	Up: key.NewBinding(
		key.WithKeys("up"),
		key.WithHelp("↑", "previous line"),
	),
	Down: key.NewBinding(
		key.WithKeys("down"),
		key.WithHelp("↓", "next line"),
	),
	Enter: key.NewBinding(
		key.WithKeys("enter"),
		key.WithHelp("enter", "submit"),
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
	CtrlV: key.NewBinding(
		key.WithKeys("ctrl+v"),
		key.WithHelp("ctrl+v", "toggle classes"),
	),
	CtrlH: key.NewBinding(
		key.WithKeys("ctrl+k"),
		key.WithHelp("ctrl+k", "toggle help"),
	),
}

var replKeywords = []string{
	"class", "tclass", "inherits", "field", "method", "begin", "let", "print",
	"set", "inputi", "inputs", "call", "while", "if", "return", "new", "me",
	"super", "true", "false", "null", "int", "string", "bool", "void",
}

func newREPLModel() replModel {
	ti := textinput.New()
	ti.Placeholder = "declare a class, or :help"
	ti.Focus()
	ti.CharLimit = 2000
	ti.Width = 60
	ti.PromptStyle = promptStyle
	ti.Prompt = replPrompt

	return replModel{
		textInput:  ti,
		engine:     brewin.MustNewEngine(brewin.Config{}),
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

		case key.Matches(msg, keys.CtrlV):
			m.showClasses = !m.showClasses
			return m, nil

		case key.Matches(msg, keys.CtrlH):
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
			input := strings.TrimSpace(m.textInput.Value())
			if input == "" {
				return m, nil
			}
			m.textInput.SetValue("")
			m.historyIdx = -1

			if len(m.pending) == 0 && strings.HasPrefix(input, ":") {
				return m.handleCommand(input)
			}

			m.cmdHistory = append(m.cmdHistory, input)
			m = m.submitLine(input)
			return m, nil
		}
	}

	m.textInput, cmd = m.textInput.Update(msg)
	return m, cmd
}

// submitLine adds a line to the declaration being typed and loads it once
// its parentheses balance.
func (m replModel) submitLine(line string) replModel {
	m.pending = append(m.pending, line)
	source := strings.Join(m.pending, "\n")
	if sourceDepth(source) > 0 {
		m.textInput.Prompt = replContinuationPrompt
		return m
	}

	m.pending = nil
	m.textInput.Prompt = replPrompt
	output, isErr := m.define(source)
	m.history = append(m.history, historyEntry{
		input:  source,
		output: output,
		isErr:  isErr,
	})
	return m
}

// define loads source together with the classes already accepted and keeps
// the new declarations only when the whole set still loads.
func (m *replModel) define(source string) (string, bool) {
	trees, err := brewin.ParseSource(source)
	if err != nil {
		return firstLine(err.Error()), true
	}
	if len(trees) == 0 {
		return "nothing to declare", true
	}

	candidate := make([]replClass, len(m.classes))
	copy(candidate, m.classes)
	var names []string
	for _, tree := range trees {
		name := declaredName(tree)
		names = append(names, name)
		candidate = upsertClass(candidate, replClass{name: name, tree: tree})
	}

	if _, err := m.compile(candidate); err != nil {
		return firstLine(err.Error()), true
	}
	m.classes = candidate
	return "declared " + strings.Join(names, ", "), false
}

func (m replModel) compile(classes []replClass) (*brewin.Program, error) {
	trees := make([]*brewin.SExpr, len(classes))
	for i, c := range classes {
		trees[i] = c.tree
	}
	return m.engine.CompileTrees(trees)
}

// run executes main.main with the queued input lines, which are consumed.
func (m *replModel) run() (string, bool) {
	program, err := m.compile(m.classes)
	if err != nil {
		return firstLine(err.Error()), true
	}
	out := &brewin.BufferSink{}
	input := m.queuedInput
	m.queuedInput = nil
	err = program.Run(context.Background(), brewin.RunOptions{
		Output: out,
		Input:  brewin.NewLineSource(input),
	})
	lines := out.Lines()
	if err != nil {
		lines = append(lines, firstLine(err.Error()))
		return strings.Join(lines, "\n"), true
	}
	if len(lines) == 0 {
		return "(no output)", false
	}
	return strings.Join(lines, "\n"), false
}

func (m replModel) handleCommand(input string) (replModel, tea.Cmd) {
	command, rest, _ := strings.Cut(input, " ")
	entry := historyEntry{input: input}

	switch command {
	case ":help", ":h":
		m.showHelp = !m.showHelp
		return m, nil
	case ":clear", ":c":
		m.history = make([]historyEntry, 0)
		return m, nil
	case ":classes":
		m.showClasses = !m.showClasses
		return m, nil
	case ":run":
		entry.output, entry.isErr = m.run()
	case ":input", ":i":
		m.queuedInput = append(m.queuedInput, rest)
		entry.output = fmt.Sprintf("%d input line(s) queued", len(m.queuedInput))
	case ":reset", ":r":
		m.classes = nil
		m.pending = nil
		m.queuedInput = nil
		entry.output = "Classes reset"
	case ":quit", ":q":
		m.quitting = true
		return m, tea.Quit
	default:
		entry.output = fmt.Sprintf("Unknown command: %s", command)
		entry.isErr = true
	}
	m.history = append(m.history, entry)
	return m, nil
}

func (m replModel) handleAutocomplete() replModel {
	input := m.textInput.Value()
	start := strings.LastIndexAny(input, " ()") + 1
	prefix := input[start:]
	if prefix == "" {
		return m
	}

	candidates := append([]string{}, replKeywords...)
	for _, c := range m.classes {
		candidates = append(candidates, c.name)
	}
	var completions []string
	for _, candidate := range candidates {
		if strings.HasPrefix(candidate, prefix) {
			completions = append(completions, candidate)
		}
	}
	sort.Strings(completions)

	if len(completions) == 1 {
		m.textInput.SetValue(input[:start] + completions[0])
		m.textInput.CursorEnd()
	} else if len(completions) > 1 {
		m.history = append(m.history, historyEntry{
			output: "Completions: " + strings.Join(completions, ", "),
		})
	}
	return m
}

func declaredName(tree *brewin.SExpr) string {
	if tree.IsList() && len(tree.List) > 1 && tree.List[1].IsSymbol() {
		return tree.List[1].Atom
	}
	return tree.String()
}

func upsertClass(classes []replClass, c replClass) []replClass {
	for i, existing := range classes {
		if existing.name == c.name {
			classes[i] = c
			return classes
		}
	}
	return append(classes, c)
}

func sourceDepth(source string) int {
	depth := 0
	for _, line := range strings.Split(source, "\n") {
		depth += parenDelta(line)
	}
	return depth
}

func (m replModel) View() string {
	if !m.initialized {
		return "Loading..."
	}

	if m.quitting {
		return mutedStyle.Render("Goodbye!\n")
	}

	var b strings.Builder

	header := headerStyle.Render("Brewin REPL")
	b.WriteString(header + "\n")
	b.WriteString(mutedStyle.Render(strings.Repeat("─", max(min(m.width-2, 60), 0))) + "\n\n")

	reservedLines := 8
	if m.showHelp {
		reservedLines += 12
	}
	if m.showClasses {
		reservedLines += len(m.classes) + 3
	}
	availableHeight := m.height - reservedLines

	historyStart := 0
	if len(m.history) > availableHeight {
		historyStart = max(len(m.history)-availableHeight, 0)
	}

	for i := historyStart; i < len(m.history); i++ {
		entry := m.history[i]
		if entry.input != "" {
			for _, line := range strings.Split(entry.input, "\n") {
				b.WriteString(mutedStyle.Render("  › ") + line + "\n")
			}
		}
		for _, line := range strings.Split(entry.output, "\n") {
			if entry.isErr {
				b.WriteString("  " + errorStyle.Render("✗ "+line) + "\n")
			} else {
				b.WriteString("  " + resultStyle.Render("→ "+line) + "\n")
			}
		}
		b.WriteString("\n")
	}

	for _, line := range m.pending {
		b.WriteString(mutedStyle.Render("  … ") + line + "\n")
	}

	if m.showClasses {
		b.WriteString(renderClassesPanel(m.classes, len(m.queuedInput)))
		b.WriteString("\n")
	}

	if m.showHelp {
		b.WriteString(renderHelpPanel())
		b.WriteString("\n")
	}

	b.WriteString(m.textInput.View() + "\n\n")

	footer := helpKeyStyle.Render("ctrl+k") + helpDescStyle.Render(" help  ") +
		helpKeyStyle.Render("ctrl+v") + helpDescStyle.Render(" classes  ") +
		helpKeyStyle.Render("ctrl+l") + helpDescStyle.Render(" clear  ") +
		helpKeyStyle.Render("ctrl+c") + helpDescStyle.Render(" quit")
	b.WriteString(footer)

	return b.String()
}

func renderClassesPanel(classes []replClass, queued int) string {
	if len(classes) == 0 {
		return borderStyle.Render(mutedStyle.Render("No classes declared"))
	}

	var lines []string
	lines = append(lines, lipgloss.NewStyle().Bold(true).Foreground(accentColor).Render("Classes"))
	nameStyle := lipgloss.NewStyle().Foreground(highlightColor)
	for _, c := range classes {
		lines = append(lines, "  "+nameStyle.Render(c.name))
	}
	lines = append(lines, mutedStyle.Render(fmt.Sprintf("  %d input line(s) queued", queued)))
	return borderStyle.Render(strings.Join(lines, "\n"))
}

func renderHelpPanel() string {
	help := []struct {
		key  string
		desc string
	}{
		{"↑/↓", "Navigate line history"},
		{"Tab", "Autocomplete keywords and class names"},
		{"Enter", "Submit a line; declarations load when balanced"},
		{":run", "Run main.main"},
		{":input", "Queue a line for inputi/inputs"},
		{":classes", "Toggle classes panel"},
		{":help", "Toggle this help"},
		{":clear", "Clear history"},
		{":reset", "Forget all classes"},
		{":quit", "Exit REPL"},
	}

	var lines []string
	lines = append(lines, lipgloss.NewStyle().Bold(true).Foreground(accentColor).Render("Help"))
	for _, h := range help {
		line := fmt.Sprintf("  %s  %s",
			helpKeyStyle.Render(fmt.Sprintf("%-9s", h.key)),
			helpDescStyle.Render(h.desc))
		lines = append(lines, line)
	}

	return borderStyle.Render(strings.Join(lines, "\n"))
}

func runREPL() error {
	p := tea.NewProgram(newREPLModel(), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
