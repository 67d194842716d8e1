// Package tui provides the terminal user interface for taskday.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/ayliff/taskday/internal/service"
	"github.com/ayliff/taskday/internal/tui/ui"
	"github.com/ayliff/taskday/internal/tui/views"
)

// Tab represents a view tab
type Tab int

const (
	TabDay Tab = iota
	TabWeek
	TabMonth
)

var tabNames = []string{"Day", "Week", "Month"}

// Model is the root TUI model
type Model struct {
	// Services
	services *service.Services

	// UI state
	activeTab Tab
	width     int
	height    int
	showHelp  bool

	// View models
	dayView   views.DayModel
	weekView  views.WeekModel
	monthView views.MonthModel

	// Styles and keys
	styles ui.Styles
	keys   ui.KeyMap
}

// New creates a new TUI model
func New(services *service.Services, now time.Time) Model {
	styles := ui.DefaultStyles()
	keys := ui.DefaultKeyMap()

	return Model{
		services:  services,
		activeTab: TabDay,
		styles:    styles,
		keys:      keys,
		dayView:   views.NewDayModel(services, styles, keys, now),
		weekView:  views.NewWeekModel(services, styles, keys, now),
		monthView: views.NewMonthModel(services, styles, keys, now),
	}
}

// Init implements tea.Model
func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.dayView.Init(),
		m.weekView.Init(),
		m.monthView.Init(),
	)
}

// Update implements tea.Model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		// Input forms capture the keyboard, including the tab keys.
		modalInput := m.isModalInputMode()

		switch {
		case key.Matches(msg, m.keys.Quit) && !modalInput:
			return m, tea.Quit

		case key.Matches(msg, m.keys.Help) && !modalInput:
			m.showHelp = !m.showHelp
			return m, nil

		case key.Matches(msg, m.keys.NextTab) && !modalInput:
			m.activeTab = Tab((int(m.activeTab) + 1) % len(tabNames))
			return m, m.initCurrentView()

		case key.Matches(msg, m.keys.PrevTab) && !modalInput:
			m.activeTab = Tab((int(m.activeTab) - 1 + len(tabNames)) % len(tabNames))
			return m, m.initCurrentView()

		case key.Matches(msg, m.keys.Tab1) && !modalInput:
			m.activeTab = TabDay
			return m, m.initCurrentView()

		case key.Matches(msg, m.keys.Tab2) && !modalInput:
			m.activeTab = TabWeek
			return m, m.initCurrentView()

		case key.Matches(msg, m.keys.Tab3) && !modalInput:
			m.activeTab = TabMonth
			return m, m.initCurrentView()
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height

		contentHeight := m.height - 4 // tabs and status bar
		m.dayView.SetSize(m.width, contentHeight)
		m.weekView.SetSize(m.width, contentHeight)
		m.monthView.SetSize(m.width, contentHeight)
		return m, nil
	}

	// Update the active view
	switch m.activeTab {
	case TabDay:
		m.dayView, cmd = m.dayView.Update(msg)
	case TabWeek:
		m.weekView, cmd = m.weekView.Update(msg)
	case TabMonth:
		m.monthView, cmd = m.monthView.Update(msg)
	}

	cmds = append(cmds, cmd)
	return m, tea.Batch(cmds...)
}

// View implements tea.Model
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	var b strings.Builder

	b.WriteString(m.renderTabs())
	b.WriteString("\n")

	switch m.activeTab {
	case TabDay:
		b.WriteString(m.dayView.View())
	case TabWeek:
		b.WriteString(m.weekView.View())
	case TabMonth:
		b.WriteString(m.monthView.View())
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatusBar())

	if m.showHelp {
		return m.styles.App.Render(m.renderHelp())
	}

	return m.styles.App.Render(b.String())
}

// renderTabs renders the tab bar
func (m Model) renderTabs() string {
	var tabs []string
	for i, name := range tabNames {
		if Tab(i) == m.activeTab {
			tabs = append(tabs, m.styles.TabActive.Render(name))
		} else {
			tabs = append(tabs, m.styles.TabInactive.Render(name))
		}
	}
	return m.styles.TabBar.Render(lipgloss.JoinHorizontal(lipgloss.Top, tabs...))
}

// renderStatusBar renders the status bar at the bottom
func (m Model) renderStatusBar() string {
	var parts []string

	if m.isModalInputMode() {
		parts = append(parts, m.renderKeyHelp("Tab", "switch field"))
		parts = append(parts, m.renderKeyHelp("Enter", "save"))
		parts = append(parts, m.renderKeyHelp("Esc", "cancel"))
	} else {
		switch m.activeTab {
		case TabDay:
			parts = append(parts, m.renderKeyHelp("n", "new"))
			parts = append(parts, m.renderKeyHelp("d", "delete"))
			parts = append(parts, m.renderKeyHelp("h/l", "prev/next day"))
		case TabWeek:
			parts = append(parts, m.renderKeyHelp("h/l", "prev/next week"))
		case TabMonth:
			parts = append(parts, m.renderKeyHelp("Enter", "set progress"))
			parts = append(parts, m.renderKeyHelp("h/l", "prev/next month"))
		}

		parts = append(parts, m.renderKeyHelp("t", "today"))
		parts = append(parts, m.renderKeyHelp("1-3", "views"))
		parts = append(parts, m.renderKeyHelp("?", "help"))
		parts = append(parts, m.renderKeyHelp("q", "quit"))
	}

	content := strings.Join(parts, "  ")

	padding := m.width - lipgloss.Width(content)
	if padding > 0 {
		content += strings.Repeat(" ", padding)
	}

	return m.styles.StatusBar.Render(content)
}

// renderKeyHelp renders a single key help item
func (m Model) renderKeyHelp(key, desc string) string {
	return fmt.Sprintf("%s %s",
		m.styles.StatusKey.Render(key),
		m.styles.StatusHelp.Render(desc))
}

// isModalInputMode checks if the current view has an input form open
func (m Model) isModalInputMode() bool {
	switch m.activeTab {
	case TabDay:
		return m.dayView.IsInputMode()
	case TabMonth:
		return m.monthView.IsInputMode()
	}
	return false
}

// initCurrentView reloads the current view when switching tabs
func (m Model) initCurrentView() tea.Cmd {
	switch m.activeTab {
	case TabDay:
		return m.dayView.Init()
	case TabWeek:
		return m.weekView.Init()
	case TabMonth:
		return m.monthView.Init()
	}
	return nil
}

// renderHelp renders the help overlay
func (m Model) renderHelp() string {
	var help strings.Builder

	help.WriteString(m.styles.ViewTitle.Render("Keyboard Shortcuts"))
	help.WriteString("\n\n")

	help.WriteString(m.styles.StatLabel.Render("Global:"))
	help.WriteString("\n")
	help.WriteString("  Tab/1-3    Switch views\n")
	help.WriteString("  t          Jump to today\n")
	help.WriteString("  r          Refresh\n")
	help.WriteString("  ?          Toggle help\n")
	help.WriteString("  q          Quit\n")
	help.WriteString("\n")

	switch m.activeTab {
	case TabDay:
		help.WriteString(m.styles.StatLabel.Render("Day:"))
		help.WriteString("\n")
		help.WriteString("  h/l        Previous/next day\n")
		help.WriteString("  j/k        Move the cursor\n")
		help.WriteString("  n          Log a task\n")
		help.WriteString("  d          Delete the selected task\n")
	case TabWeek:
		help.WriteString(m.styles.StatLabel.Render("Week:"))
		help.WriteString("\n")
		help.WriteString("  h/l        Previous/next week\n")
	case TabMonth:
		help.WriteString(m.styles.StatLabel.Render("Month:"))
		help.WriteString("\n")
		help.WriteString("  h/l        Previous/next month\n")
		help.WriteString("  j/k        Move the cursor\n")
		help.WriteString("  Enter      Set end-of-month progress\n")
	}

	help.WriteString("\n")
	help.WriteString(m.styles.StatLabel.Render("Press ? to close"))

	return m.styles.Dialog.Render(help.String())
}

// Run starts the TUI application
func Run(services *service.Services, now time.Time) error {
	model := New(services, now)
	p := tea.NewProgram(model, tea.WithAltScreen())
	_, err := p.Run()
	return err
}
