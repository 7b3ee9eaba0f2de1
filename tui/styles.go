// Package tui provides the terminal chat widget for AI Guru.
package tui

import "github.com/charmbracelet/lipgloss"

var (
	colorPrimary = lipgloss.Color("#7C3AED")
	colorSurface = lipgloss.Color("#27272A")
	colorText    = lipgloss.Color("#FAFAFA")
	colorTextDim = lipgloss.Color("#A1A1AA")
	colorError   = lipgloss.Color("#EF4444")
)

var (
	headerStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorPrimary).
			Padding(0, 1)

	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorPrimary)

	subtitleStyle = lipgloss.NewStyle().
			Foreground(colorTextDim)

	offlineStyle = lipgloss.NewStyle().
			Foreground(colorError)

	userLabelStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(colorTextDim)

	assistantLabelStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(colorPrimary)

	userBubbleStyle = lipgloss.NewStyle().
			Background(colorPrimary).
			Foreground(colorText).
			Padding(0, 1)

	assistantBubbleStyle = lipgloss.NewStyle().
				Background(colorSurface).
				Padding(0, 1)

	inputPanelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(colorTextDim).
			Padding(0, 1)

	loadingStyle = lipgloss.NewStyle().
			Foreground(colorPrimary)

	hintStyle = lipgloss.NewStyle().
			Foreground(colorTextDim).
			Italic(true)

	noteStyle = lipgloss.NewStyle().
			Foreground(colorError)
)
