package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/devbush/swiftconvert/internal/domain"
)

// FormatSelectorModel is the bubbletea model for picking an output format.
// Unavailable entries are shown but cannot be chosen.
type FormatSelectorModel struct {
	current  domain.SupportedFileType
	options  []domain.SupportedFileType
	cursor   int
	chosen   domain.FileTypeID
	done     bool
	rejected string
}

// NewFormatSelectorModel creates a selector over options
func NewFormatSelectorModel(current domain.SupportedFileType, options []domain.SupportedFileType) FormatSelectorModel {
	m := FormatSelectorModel{current: current, options: options}
	for i, opt := range options {
		if !opt.Unavailable {
			m.cursor = i
			break
		}
	}
	return m
}

func (m FormatSelectorModel) Init() tea.Cmd {
	return nil
}

func (m FormatSelectorModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		m.rejected = ""
		switch msg.String() {
		case "up", "k":
			if m.cursor > 0 {
				m.cursor--
			}
		case "down", "j":
			if m.cursor < len(m.options)-1 {
				m.cursor++
			}
		case "enter":
			if len(m.options) == 0 {
				return m, tea.Quit
			}
			opt := m.options[m.cursor]
			if opt.Unavailable {
				m.rejected = fmt.Sprintf("%s was already uploaded this session", opt.Name)
				return m, nil
			}
			m.chosen = opt.ID
			m.done = true
			return m, tea.Quit
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m FormatSelectorModel) View() string {
	var sb strings.Builder

	sb.WriteString(titleStyle.Render(fmt.Sprintf("Convert to (currently %s):", m.current.Name)))
	sb.WriteString("\n\n")

	for i, opt := range m.options {
		cursor := "  "
		style := normalStyle
		if i == m.cursor {
			cursor = "> "
			style = selectedStyle
		}
		if opt.Unavailable {
			style = disabledStyle
		}
		sb.WriteString(cursor)
		sb.WriteString(style.Render(FormatFileTypeLabel(opt)))
		sb.WriteString("\n")
	}

	if m.rejected != "" {
		sb.WriteString("\n")
		sb.WriteString(m.rejected)
		sb.WriteString("\n")
	}
	sb.WriteString(hintStyle.Render("\n(up/down to navigate, enter to select, q to keep current)"))
	sb.WriteString("\n")
	return sb.String()
}

// Chosen returns the picked type and whether a choice was made
func (m FormatSelectorModel) Chosen() (domain.FileTypeID, bool) {
	return m.chosen, m.done
}

// RunFormatSelector displays the output formats and returns the choice
func RunFormatSelector(current domain.SupportedFileType, options []domain.SupportedFileType) (domain.FileTypeID, bool, error) {
	p := tea.NewProgram(NewFormatSelectorModel(current, options))

	finalModel, err := p.Run()
	if err != nil {
		return "", false, err
	}

	id, ok := finalModel.(FormatSelectorModel).Chosen()
	return id, ok, nil
}
