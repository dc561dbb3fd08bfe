package tui

import "github.com/charmbracelet/lipgloss"

var (
	selectedStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	normalStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
	checkedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("212"))
	uncheckedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	disabledStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Strikethrough(true)
	titleStyle     = lipgloss.NewStyle().Bold(true)
	hintStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
)
