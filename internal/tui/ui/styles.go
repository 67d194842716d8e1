package ui

import (
	"github.com/charmbracelet/lipgloss"
)

// Styles contains all the styles used in the TUI
type Styles struct {
	// Base styles
	App lipgloss.Style

	// Tab bar
	TabBar      lipgloss.Style
	TabActive   lipgloss.Style
	TabInactive lipgloss.Style

	// Content area
	Content   lipgloss.Style
	ViewTitle lipgloss.Style

	// Status bar
	StatusBar  lipgloss.Style
	StatusKey  lipgloss.Style
	StatusHelp lipgloss.Style

	// Timeline
	SlotSelected lipgloss.Style
	SlotNormal   lipgloss.Style
	SlotGap      lipgloss.Style
	SlotTime     lipgloss.Style
	SlotProject  lipgloss.Style
	SlotHours    lipgloss.Style

	// Tables
	TableHeader lipgloss.Style
	TableTotal  lipgloss.Style

	// Labels
	StatLabel lipgloss.Style
	StatValue lipgloss.Style

	// Input
	Input        lipgloss.Style
	InputFocused lipgloss.Style

	// Dialog
	Dialog lipgloss.Style

	// Errors and warnings
	Error   lipgloss.Style
	Warning lipgloss.Style
	Success lipgloss.Style
}

// DefaultStyles returns the default TUI styles
func DefaultStyles() Styles {
	// Color palette
	primary := lipgloss.Color("39")     // Cyan
	accent := lipgloss.Color("214")     // Orange
	muted := lipgloss.Color("240")      // Gray
	success := lipgloss.Color("82")     // Green
	warning := lipgloss.Color("214")    // Orange
	errorColor := lipgloss.Color("196") // Red

	return Styles{
		App: lipgloss.NewStyle().Padding(1, 2),

		TabBar: lipgloss.NewStyle().
			MarginBottom(1).
			BorderBottom(true).
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(muted),
		TabActive: lipgloss.NewStyle().
			Foreground(primary).
			Bold(true).
			Padding(0, 2),
		TabInactive: lipgloss.NewStyle().
			Foreground(muted).
			Padding(0, 2),

		Content: lipgloss.NewStyle().
			Padding(0, 1),
		ViewTitle: lipgloss.NewStyle().
			Foreground(primary).
			Bold(true).
			MarginBottom(1),

		StatusBar: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Background(lipgloss.Color("236")).
			Padding(0, 1),
		StatusKey: lipgloss.NewStyle().
			Foreground(primary).
			Bold(true),
		StatusHelp: lipgloss.NewStyle().
			Foreground(muted),

		SlotSelected: lipgloss.NewStyle().
			Background(lipgloss.Color("237")).
			Bold(true),
		SlotNormal: lipgloss.NewStyle(),
		SlotGap: lipgloss.NewStyle().
			Foreground(muted).
			Italic(true),
		SlotTime: lipgloss.NewStyle().
			Foreground(primary).
			Width(14),
		SlotProject: lipgloss.NewStyle().
			Foreground(accent).
			Width(10),
		SlotHours: lipgloss.NewStyle().
			Foreground(accent).
			Width(8).
			Align(lipgloss.Right),

		TableHeader: lipgloss.NewStyle().
			Foreground(primary).
			Bold(true),
		TableTotal: lipgloss.NewStyle().
			Bold(true),

		StatLabel: lipgloss.NewStyle().
			Foreground(muted).
			Width(18),
		StatValue: lipgloss.NewStyle().
			Foreground(lipgloss.Color("252")).
			Bold(true),

		Input: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(muted).
			Padding(0, 1),
		InputFocused: lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(primary).
			Padding(0, 1),

		Dialog: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(primary).
			Padding(1, 2).
			Width(50),

		Error: lipgloss.NewStyle().
			Foreground(errorColor),
		Warning: lipgloss.NewStyle().
			Foreground(warning),
		Success: lipgloss.NewStyle().
			Foreground(success),
	}
}
