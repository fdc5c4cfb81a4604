package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/wippyai/docbridge/foreign"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4")).
			Padding(0, 1)

	presetStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#98FB98"))

	sizeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#87CEEB"))

	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FAFAFA")).
			Background(lipgloss.Color("#7D56F4"))

	resultStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#90EE90"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FF6B6B"))

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666"))
)

const (
	inputTitle = iota
	inputItems
	inputOut
)

type interactiveModel struct {
	err      error
	env      *foreign.Env
	result   string
	presets  []presetInfo
	inputs   []textinput.Model
	selected int
	focusIdx int
	state    modelState
}

type modelState int

const (
	stateSelectPreset modelState = iota
	stateInputArgs
	stateShowResult
)

func newInteractiveModel(env *foreign.Env) *interactiveModel {
	return &interactiveModel{
		env:   env,
		state: stateSelectPreset,
	}
}

type loadedMsg struct {
	err     error
	presets []presetInfo
}

type renderResultMsg struct {
	err    error
	result string
}

func (m *interactiveModel) Init() tea.Cmd {
	return m.loadPresets
}

func (m *interactiveModel) loadPresets() tea.Msg {
	list, err := listPresets(m.env)
	return loadedMsg{presets: list, err: err}
}

func (m *interactiveModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "q":
			if m.state != stateInputArgs {
				return m, tea.Quit
			}
		case "up", "k":
			if m.state == stateSelectPreset && m.selected > 0 {
				m.selected--
			}
		case "down", "j":
			if m.state == stateSelectPreset && m.selected < len(m.presets)-1 {
				m.selected++
			}
		case "enter":
			switch m.state {
			case stateSelectPreset:
				if len(m.presets) == 0 {
					return m, nil
				}
				m.prepareInputs()
				m.state = stateInputArgs
				return m, nil
			case stateInputArgs:
				return m, m.renderSelected
			case stateShowResult:
				m.state = stateSelectPreset
				m.result = ""
				m.err = nil
			}
		case "tab":
			if m.state == stateInputArgs && len(m.inputs) > 1 {
				m.inputs[m.focusIdx].Blur()
				m.focusIdx = (m.focusIdx + 1) % len(m.inputs)
				m.inputs[m.focusIdx].Focus()
			}
		case "esc":
			switch m.state {
			case stateInputArgs:
				m.state = stateSelectPreset
				m.inputs = nil
			case stateShowResult:
				m.state = stateSelectPreset
				m.result = ""
				m.err = nil
			}
		}

	case loadedMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.presets = msg.presets

	case renderResultMsg:
		m.result = msg.result
		m.err = msg.err
		m.state = stateShowResult
	}

	if m.state == stateInputArgs {
		var cmds []tea.Cmd
		for i := range m.inputs {
			var cmd tea.Cmd
			m.inputs[i], cmd = m.inputs[i].Update(msg)
			cmds = append(cmds, cmd)
		}
		return m, tea.Batch(cmds...)
	}
	return m, nil
}

func (m *interactiveModel) prepareInputs() {
	fields := []struct{ prompt, placeholder, value string }{
		inputTitle: {"title: ", "Invoice", "Invoice"},
		inputItems: {"items: ", "NAME=PRICE,...", "Widget=2.50,Gadget=7.00"},
		inputOut:   {"out:   ", "file.pdf (empty renders only)", ""},
	}
	m.inputs = make([]textinput.Model, len(fields))
	for i, f := range fields {
		ti := textinput.New()
		ti.Prompt = f.prompt
		ti.Placeholder = f.placeholder
		ti.SetValue(f.value)
		ti.Width = 40
		if i == 0 {
			ti.Focus()
		}
		m.inputs[i] = ti
	}
	m.focusIdx = 0
}

func (m *interactiveModel) renderSelected() tea.Msg {
	p := m.presets[m.selected]
	lines, err := parseItems(m.inputs[inputItems].Value())
	if err != nil {
		return renderResultMsg{err: err}
	}
	pdf, err := render(m.env, invoice{
		title:  m.inputs[inputTitle].Value(),
		page:   p.preset,
		lines:  lines,
		footer: "Generated by docbridge",
	})
	if err != nil {
		return renderResultMsg{err: err}
	}
	out := strings.TrimSpace(m.inputs[inputOut].Value())
	if out == "" {
		return renderResultMsg{result: fmt.Sprintf("%s: %d bytes", p.preset, len(pdf))}
	}
	if err := os.WriteFile(out, pdf, 0o644); err != nil {
		return renderResultMsg{err: err}
	}
	return renderResultMsg{result: fmt.Sprintf("%s: wrote %s (%d bytes)", p.preset, out, len(pdf))}
}

func (m *interactiveModel) View() string {
	if m.err != nil && m.state != stateShowResult {
		return errorStyle.Render(fmt.Sprintf("Error: %v\n\nPress q to quit.", m.err))
	}

	if len(m.presets) == 0 {
		return "Resolving page sizes..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("docbridge"))
	b.WriteString(" page sizes\n\n")

	switch m.state {
	case stateSelectPreset:
		b.WriteString("Select a page size to render:\n\n")
		for i, p := range m.presets {
			if i == m.selected {
				b.WriteString(selectedStyle.Render("> " + formatPlain(p)))
			} else {
				b.WriteString("  " + formatPreset(p))
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("↑/↓: navigate • enter: select • q: quit"))

	case stateInputArgs:
		b.WriteString("Render ")
		b.WriteString(formatPreset(m.presets[m.selected]))
		b.WriteString("\n\n")
		for _, input := range m.inputs {
			b.WriteString(input.View())
			b.WriteString("\n")
		}
		b.WriteString("\n")
		b.WriteString(helpStyle.Render("tab: next field • enter: render • esc: back"))

	case stateShowResult:
		if m.err != nil {
			b.WriteString(errorStyle.Render(fmt.Sprintf("Error: %v", m.err)))
		} else {
			b.WriteString(resultStyle.Render(m.result))
		}
		b.WriteString("\n\n")
		b.WriteString(helpStyle.Render("enter/esc: back • q: quit"))
	}

	return b.String()
}

func formatPreset(p presetInfo) string {
	return presetStyle.Render(fmt.Sprintf("%-10s", p.preset)) + " " +
		sizeStyle.Render(fmt.Sprintf("%7.1f x %7.1f pt", p.width, p.height))
}

func formatPlain(p presetInfo) string {
	return fmt.Sprintf("%-10s %7.1f x %7.1f pt", p.preset, p.width, p.height)
}

func runInteractive(env *foreign.Env) error {
	p := tea.NewProgram(newInteractiveModel(env), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
