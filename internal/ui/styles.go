package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Lipgloss styles shared by the client views
var (
	DocStyle    = lipgloss.NewStyle().Margin(1, 2)
	TitleStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("228")).Bold(true)
	RedStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#CD0000")).Bold(true)
	BlackStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("252")).Bold(true)
	BoxStyle    = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).Padding(0, 1)
	PromptStyle = lipgloss.NewStyle().MarginTop(1)
	ErrorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	DimStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
)
