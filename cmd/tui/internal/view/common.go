package view

import (
	"github.com/charmbracelet/lipgloss"
)

// CommonModel carries the terminal size; zero until the first WindowSizeMsg.
type CommonModel struct {
	Width  int
	Height int
}

var (
	errorStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("196"))
	activeStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("205"))
	faintStyle  = lipgloss.NewStyle().Faint(true)
)
