package tui

import (
	"errors"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// ErrAborted is returned when the selector is left without a choice.
var ErrAborted = errors.New("selection aborted")

type model struct {
	title    string
	choices  []string
	cursor   int
	selected bool
}

func (m model) Init() tea.Cmd { return nil }

func (m model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.choices)-1 {
				m.cursor++
			}
		case "enter":
			m.selected = true
			return m, tea.Quit
		case "q", "esc", "ctrl+c":
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m model) View() string {
	var sb strings.Builder
	sb.WriteString(m.title + "\n\n")
	for i, choice := range m.choices {
		cursor := " "
		if m.cursor == i {
			cursor = ">"
		}
		sb.WriteString(cursor + " " + choice + "\n")
	}
	return sb.String()
}

// Select shows choices under title and returns the one picked.
func Select(title string, choices []string) (string, error) {
	if len(choices) == 0 {
		return "", errors.New("nothing to select")
	}
	p := tea.NewProgram(model{title: title, choices: choices})
	m, err := p.Run()
	if err != nil {
		return "", err
	}
	final := m.(model)
	if !final.selected {
		return "", ErrAborted
	}
	return final.choices[final.cursor], nil
}
