package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// CheckboxOption represents a checkbox choice
type CheckboxOption struct {
	Label   string
	Value   string
	Checked bool
}

// CheckboxModel is the bubbletea model for picking files out of a list
type CheckboxModel struct {
	title     string
	options   []CheckboxOption
	cursor    int
	done      bool
	minSelect int
	maxSelect int // 0 means unlimited
}

// NewCheckboxModel creates a new checkbox selector allowing at most maxSelect picks
func NewCheckboxModel(title string, options []CheckboxOption, maxSelect int) CheckboxModel {
	return CheckboxModel{
		title:     title,
		options:   options,
		minSelect: 1,
		maxSelect: maxSelect,
	}
}

func (m CheckboxModel) Init() tea.Cmd {
	return nil
}

func (m CheckboxModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.options)-1 {
				m.cursor++
			}
		case " ", "x":
			if len(m.options) == 0 {
				return m, nil
			}
			opt := &m.options[m.cursor]
			if !opt.Checked && m.atLimit() {
				return m, nil
			}
			opt.Checked = !opt.Checked
		case "a":
			m.toggleAll()
		case "enter":
			if m.countSelected() >= m.minSelect {
				m.done = true
				return m, tea.Quit
			}
		case "q", "ctrl+c", "esc":
			m.done = false
			for i := range m.options {
				m.options[i].Checked = false
			}
			return m, tea.Quit
		}
	}
	return m, nil
}

// toggleAll checks as many options as the limit allows, or clears them
// all when everything possible is already checked.
func (m *CheckboxModel) toggleAll() {
	if m.countSelected() > 0 && (m.atLimit() || m.countSelected() == len(m.options)) {
		for i := range m.options {
			m.options[i].Checked = false
		}
		return
	}
	for i := range m.options {
		if m.atLimit() {
			return
		}
		m.options[i].Checked = true
	}
}

func (m CheckboxModel) atLimit() bool {
	return m.maxSelect > 0 && m.countSelected() >= m.maxSelect
}

func (m CheckboxModel) countSelected() int {
	count := 0
	for _, opt := range m.options {
		if opt.Checked {
			count++
		}
	}
	return count
}

func (m CheckboxModel) View() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render(m.title))
	sb.WriteString("\n\n")

	for i, opt := range m.options {
		cursor := "  "
		if i == m.cursor {
			cursor = "> "
		}

		checkbox := "[ ]"
		style := uncheckedStyle
		if opt.Checked {
			checkbox = "[x]"
			style = checkedStyle
		}

		line := fmt.Sprintf("%s%s %s", cursor, checkbox, opt.Label)
		sb.WriteString(style.Render(line))
		sb.WriteString("\n")
	}

	selected := m.countSelected()
	hint := "\n"
	switch {
	case selected < m.minSelect:
		hint = fmt.Sprintf("\n(select at least %d)\n", m.minSelect)
	case m.maxSelect > 0:
		hint = fmt.Sprintf("\n(%d/%d selected)\n", selected, m.maxSelect)
	}
	sb.WriteString(hint)
	sb.WriteString(hintStyle.Render("(space=toggle, a=all, enter=confirm, q=cancel)"))
	sb.WriteString("\n")

	return sb.String()
}

// Selected returns the selected option values
func (m CheckboxModel) Selected() []string {
	var result []string
	for _, opt := range m.options {
		if opt.Checked {
			result = append(result, opt.Value)
		}
	}
	return result
}

// Cancelled returns true if the user cancelled
func (m CheckboxModel) Cancelled() bool {
	return !m.done
}

// RunCheckbox displays checkboxes and returns selected values
func RunCheckbox(title string, options []CheckboxOption, maxSelect int) ([]string, error) {
	p := tea.NewProgram(NewCheckboxModel(title, options, maxSelect))

	finalModel, err := p.Run()
	if err != nil {
		return nil, err
	}

	result := finalModel.(CheckboxModel)
	if result.Cancelled() {
		return nil, nil
	}
	return result.Selected(), nil
}
