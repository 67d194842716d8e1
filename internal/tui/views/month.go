package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ayliff/taskday/internal/report"
	"github.com/ayliff/taskday/internal/service"
	"github.com/ayliff/taskday/internal/timeutil"
	"github.com/ayliff/taskday/internal/tui/ui"
)

// MonthModel is the model for the monthly progress view
type MonthModel struct {
	services *service.Services
	styles   ui.Styles
	keys     ui.KeyMap

	// UI state
	width  int
	height int
	date   time.Time
	report *report.MonthlyReport
	err    error
	status string
	cursor int

	// Progress input
	inputMode bool
	input     textinput.Model
}

// NewMonthModel creates a new month view model
func NewMonthModel(services *service.Services, styles ui.Styles, keys ui.KeyMap, today time.Time) MonthModel {
	ti := textinput.New()
	ti.Placeholder = "0-100 or '-'"
	ti.CharLimit = 6

	return MonthModel{
		services: services,
		styles:   styles,
		keys:     keys,
		date:     timeutil.DateOnly(today),
		input:    ti,
	}
}

// monthLoadedMsg is sent when the monthly report is loaded
type monthLoadedMsg struct {
	report *report.MonthlyReport
	err    error
}

// progressSavedMsg is sent after a progress store attempt
type progressSavedMsg struct {
	err error
}

// Init implements tea.Model
func (m MonthModel) Init() tea.Cmd {
	return m.loadMonth()
}

// IsInputMode reports whether the progress input is open
func (m MonthModel) IsInputMode() bool {
	return m.inputMode
}

// Update implements tea.Model
func (m MonthModel) Update(msg tea.Msg) (MonthModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.inputMode {
			switch {
			case key.Matches(msg, m.keys.Back):
				m.inputMode = false
				m.status = ""
				return m, nil
			case key.Matches(msg, m.keys.Select):
				return m, m.saveProgress()
			}
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd
		}

		switch {
		case key.Matches(msg, m.keys.PrevDay):
			m.date = timeutil.AddMonths(m.date, -1)
			m.cursor = 0
			return m, m.loadMonth()
		case key.Matches(msg, m.keys.NextDay):
			m.date = timeutil.AddMonths(m.date, 1)
			m.cursor = 0
			return m, m.loadMonth()
		case key.Matches(msg, m.keys.Today):
			m.date = timeutil.Today()
			m.cursor = 0
			return m, m.loadMonth()
		case key.Matches(msg, m.keys.Refresh):
			return m, m.loadMonth()
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case key.Matches(msg, m.keys.Down):
			if m.report != nil && m.cursor < len(m.report.Rows)-1 {
				m.cursor++
			}
			return m, nil
		case key.Matches(msg, m.keys.Select):
			return m.openInput()
		}

	case monthLoadedMsg:
		m.err = msg.err
		m.report = msg.report
		if m.report != nil && m.cursor >= len(m.report.Rows) {
			m.cursor = 0
		}

	case progressSavedMsg:
		if msg.err != nil {
			m.status = "invalid value: use 0-100 or '-'"
			return m, nil
		}
		m.status = ""
		m.inputMode = false
		return m, m.loadMonth()
	}

	return m, nil
}

// openInput opens the progress input for the selected row
func (m MonthModel) openInput() (MonthModel, tea.Cmd) {
	if m.report == nil || m.cursor >= len(m.report.Rows) {
		return m, nil
	}
	m.inputMode = true
	m.status = ""
	m.input.SetValue("")
	return m, m.input.Focus()
}

// saveProgress stores the entered value for the selected row
func (m MonthModel) saveProgress() tea.Cmd {
	if m.report == nil || m.cursor >= len(m.report.Rows) {
		return nil
	}
	row := m.report.Rows[m.cursor]
	value := strings.TrimSpace(m.input.Value())
	month := m.date
	services := m.services

	return func() tea.Msg {
		return progressSavedMsg{err: services.Report.SetProgress(month, row.Key, value)}
	}
}

// View implements tea.Model
func (m MonthModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.ViewTitle.Render(m.date.Format("January 2006")))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err)))
		return b.String()
	}
	if m.report == nil {
		b.WriteString("Loading...")
		return b.String()
	}

	if len(m.report.Rows) == 0 {
		b.WriteString(m.styles.SlotGap.Render("No reportable tasks this month"))
		return b.String()
	}

	const codeWidth, descWidth = 8, 26
	header := fmt.Sprintf("%-*s  %-*s", codeWidth, "Project", descWidth, "Description")
	for w := 1; w <= m.report.NumWeeks; w++ {
		header += fmt.Sprintf("  %5s", fmt.Sprintf("W%d", w))
	}
	b.WriteString(m.styles.TableHeader.Render(header))
	b.WriteString("\n")

	for i, row := range m.report.Rows {
		style := m.styles.SlotNormal
		if i == m.cursor && !m.inputMode {
			style = m.styles.SlotSelected
		}

		line := fmt.Sprintf("%-*s  %-*s", codeWidth, row.ProjectCode, descWidth, truncate(row.Description, descWidth))
		if row.NeedsInput {
			for range row.WeeklyHours {
				line += fmt.Sprintf("  %5s", "?")
			}
		} else {
			for _, cell := range row.Cells {
				line += fmt.Sprintf("  %5s", cell.String())
			}
		}
		b.WriteString(style.Render(line))
		b.WriteString("\n")
	}

	if m.inputMode {
		row := m.report.Rows[m.cursor]
		b.WriteString("\n")
		b.WriteString(m.styles.Dialog.Render(fmt.Sprintf("%s\n%s / %s\n\n%s",
			m.styles.ViewTitle.Render("End-of-month progress"),
			row.ProjectCode, truncate(row.Description, 30),
			m.styles.InputFocused.Render(m.input.View()))))
	}
	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Error.Render(m.status))
	}

	return b.String()
}

// SetSize sets the view dimensions
func (m *MonthModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// loadMonth creates a command to load the monthly report
func (m MonthModel) loadMonth() tea.Cmd {
	services := m.services
	date := m.date
	return func() tea.Msg {
		rep, err := services.Report.Monthly(date)
		if err != nil {
			return monthLoadedMsg{err: err}
		}
		return monthLoadedMsg{report: &rep}
	}
}
