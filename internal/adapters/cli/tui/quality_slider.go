package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
)

// QualitySliderModel is a horizontal slider over the quality steps.
// Every move is committed right away, not only on confirm.
type QualitySliderModel struct {
	steps  []int
	index  int
	commit func(int) error
	err    error
}

// NewQualitySliderModel creates a slider positioned at current
func NewQualitySliderModel(steps []int, current int, commit func(int) error) QualitySliderModel {
	m := QualitySliderModel{steps: steps, commit: commit}
	for i, q := range steps {
		if q == current {
			m.index = i
		}
	}
	return m
}

func (m QualitySliderModel) Init() tea.Cmd {
	return nil
}

func (m QualitySliderModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "left", "h", "down", "j":
			if m.index > 0 {
				m.move(m.index - 1)
			}
		case "right", "l", "up", "k":
			if m.index < len(m.steps)-1 {
				m.move(m.index + 1)
			}
		case "enter", "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *QualitySliderModel) move(index int) {
	m.index = index
	if m.commit != nil {
		m.err = m.commit(m.steps[index])
	}
}

func (m QualitySliderModel) View() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render("Image quality"))
	sb.WriteString("\n\n")

	for i, q := range m.steps {
		label := fmt.Sprintf(" %d ", q)
		if i == m.index {
			sb.WriteString(selectedStyle.Render("[" + label + "]"))
		} else {
			sb.WriteString(uncheckedStyle.Render(" " + label + " "))
		}
	}
	sb.WriteString("\n")

	if m.err != nil {
		sb.WriteString("\n")
		sb.WriteString(m.err.Error())
		sb.WriteString("\n")
	}
	sb.WriteString(hintStyle.Render("\n(left/right to adjust, enter to finish)"))
	sb.WriteString("\n")
	return sb.String()
}

// Value returns the quality under the cursor
func (m QualitySliderModel) Value() int {
	if len(m.steps) == 0 {
		return 0
	}
	return m.steps[m.index]
}

// RunQualitySlider displays the slider and returns the final value
func RunQualitySlider(steps []int, current int, commit func(int) error) (int, error) {
	p := tea.NewProgram(NewQualitySliderModel(steps, current, commit))

	finalModel, err := p.Run()
	if err != nil {
		return current, err
	}
	return finalModel.(QualitySliderModel).Value(), nil
}
