// Package styles contains the shared styles for terminal output.
package styles

import (
	"github.com/charmbracelet/lipgloss"
)

type RenderFunc func(string ...string) string

const Check = "✔"

const (
	ColorSuccess = "#22c55e"
	ColorSubtle  = "#a3a3a3"
)

var (
	Bold RenderFunc = lipgloss.NewStyle().Bold(true).Render

	Success RenderFunc = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSuccess)).PaddingLeft(1).Render
	Subtle  RenderFunc = lipgloss.NewStyle().Foreground(lipgloss.Color(ColorSubtle)).PaddingLeft(1).Render
)
