package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ayliff/taskday/internal/report"
	"github.com/ayliff/taskday/internal/service"
	"github.com/ayliff/taskday/internal/timeutil"
	"github.com/ayliff/taskday/internal/tui/ui"
)

// WeekModel is the model for the weekly timesheet view
type WeekModel struct {
	services *service.Services
	styles   ui.Styles
	keys     ui.KeyMap

	// UI state
	width     int
	height    int
	date      time.Time
	timesheet *report.Timesheet
	err       error
}

// NewWeekModel creates a new week view model
func NewWeekModel(services *service.Services, styles ui.Styles, keys ui.KeyMap, today time.Time) WeekModel {
	return WeekModel{
		services: services,
		styles:   styles,
		keys:     keys,
		date:     timeutil.DateOnly(today),
	}
}

// weekLoadedMsg is sent when the timesheet is loaded
type weekLoadedMsg struct {
	timesheet *report.Timesheet
	err       error
}

// Init implements tea.Model
func (m WeekModel) Init() tea.Cmd {
	return m.loadWeek()
}

// Update implements tea.Model
func (m WeekModel) Update(msg tea.Msg) (WeekModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.PrevDay):
			m.date = m.date.AddDate(0, 0, -7)
			return m, m.loadWeek()
		case key.Matches(msg, m.keys.NextDay):
			m.date = m.date.AddDate(0, 0, 7)
			return m, m.loadWeek()
		case key.Matches(msg, m.keys.Today):
			m.date = timeutil.Today()
			return m, m.loadWeek()
		case key.Matches(msg, m.keys.Refresh):
			return m, m.loadWeek()
		}

	case weekLoadedMsg:
		m.err = msg.err
		m.timesheet = msg.timesheet
	}

	return m, nil
}

// View implements tea.Model
func (m WeekModel) View() string {
	var b strings.Builder

	if m.err != nil {
		b.WriteString(m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err)))
		return b.String()
	}
	if m.timesheet == nil {
		b.WriteString("Loading...")
		return b.String()
	}
	ts := m.timesheet

	b.WriteString(m.styles.ViewTitle.Render(fmt.Sprintf("Week %s - %s",
		ts.WeekStart.Format("2006-01-02"), ts.WeekEnd.Format("2006-01-02"))))
	b.WriteString("\n\n")

	const nameWidth = 22
	header := fmt.Sprintf("%-*s", nameWidth, "Project")
	for _, d := range ts.Dates {
		header += fmt.Sprintf("  %6s", d.Format("Mon 02"))
	}
	b.WriteString(m.styles.TableHeader.Render(header))
	b.WriteString("\n")

	for _, row := range ts.Rows {
		line := fmt.Sprintf("%-*s", nameWidth, truncate(row.DisplayName, nameWidth))
		for i := range row.Hours {
			line += fmt.Sprintf("  %6s", report.FormatHours(row.Hours[i]))
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	total := fmt.Sprintf("%-*s", nameWidth, "Total")
	for i, h := range ts.Totals {
		cell := report.FormatHours(h)
		if ts.Shortfall[i] {
			cell += "!"
		}
		total += fmt.Sprintf("  %6s", cell)
	}
	b.WriteString(m.styles.TableTotal.Render(total))
	b.WriteString("\n")

	for i, holiday := range ts.Holiday {
		if holiday {
			b.WriteString(m.styles.Warning.Render(
				fmt.Sprintf("%s is a public holiday", ts.Dates[i].Format("Mon 2006-01-02"))))
			b.WriteString("\n")
		}
	}

	return b.String()
}

// SetSize sets the view dimensions
func (m *WeekModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

// loadWeek creates a command to load the timesheet
func (m WeekModel) loadWeek() tea.Cmd {
	services := m.services
	date := m.date
	return func() tea.Msg {
		ts, err := services.Report.Timesheet(date)
		if err != nil {
			return weekLoadedMsg{err: err}
		}
		return weekLoadedMsg{timesheet: &ts}
	}
}
