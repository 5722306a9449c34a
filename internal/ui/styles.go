package ui

import "github.com/charmbracelet/lipgloss"

var (
	titleStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("39"))
	quitTextStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	spinnerStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	textStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("252"))
)
