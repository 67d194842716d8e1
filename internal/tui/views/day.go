package views

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/ayliff/taskday/internal/interval"
	"github.com/ayliff/taskday/internal/policy"
	"github.com/ayliff/taskday/internal/service"
	"github.com/ayliff/taskday/internal/timeutil"
	"github.com/ayliff/taskday/internal/tui/ui"
)

// Input field indices for the new-task form
const (
	fieldStart = iota
	fieldEnd
	fieldProject
	fieldDescription
	fieldCount
)

// DayModel is the model for the day timeline view
type DayModel struct {
	services *service.Services
	styles   ui.Styles
	keys     ui.KeyMap

	// UI state
	width  int
	height int
	date   time.Time
	view   *service.DayView
	err    error
	status string
	cursor int

	// New-task form
	inputMode  bool
	inputs     [fieldCount]textinput.Model
	focusIndex int
}

// NewDayModel creates a new day view model
func NewDayModel(services *service.Services, styles ui.Styles, keys ui.KeyMap, today time.Time) DayModel {
	m := DayModel{
		services: services,
		styles:   styles,
		keys:     keys,
		date:     timeutil.DateOnly(today),
	}

	placeholders := [fieldCount]string{"09:30", "11:00", "P100", "What did you work on?"}
	for i := range m.inputs {
		ti := textinput.New()
		ti.Placeholder = placeholders[i]
		ti.CharLimit = 80
		m.inputs[i] = ti
	}
	return m
}

// dayLoadedMsg is sent when the day view is loaded
type dayLoadedMsg struct {
	view *service.DayView
	err  error
}

// taskLoggedMsg is sent after a log attempt
type taskLoggedMsg struct {
	err error
}

// Init implements tea.Model
func (m DayModel) Init() tea.Cmd {
	return m.loadDay()
}

// IsInputMode reports whether the new-task form is open
func (m DayModel) IsInputMode() bool {
	return m.inputMode
}

// Update implements tea.Model
func (m DayModel) Update(msg tea.Msg) (DayModel, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.inputMode {
			return m.updateForm(msg)
		}

		switch {
		case key.Matches(msg, m.keys.PrevDay):
			m.date = m.date.AddDate(0, 0, -1)
			m.cursor = 0
			return m, m.loadDay()
		case key.Matches(msg, m.keys.NextDay):
			m.date = m.date.AddDate(0, 0, 1)
			m.cursor = 0
			return m, m.loadDay()
		case key.Matches(msg, m.keys.Today):
			m.date = timeutil.Today()
			m.cursor = 0
			return m, m.loadDay()
		case key.Matches(msg, m.keys.Refresh):
			return m, m.loadDay()
		case key.Matches(msg, m.keys.Up):
			if m.cursor > 0 {
				m.cursor--
			}
			return m, nil
		case key.Matches(msg, m.keys.Down):
			if m.view != nil && m.cursor < len(m.view.Slots)-1 {
				m.cursor++
			}
			return m, nil
		case key.Matches(msg, m.keys.New):
			return m.openForm()
		case key.Matches(msg, m.keys.Delete):
			return m, m.deleteSelected()
		}

	case dayLoadedMsg:
		m.err = msg.err
		m.view = msg.view
		if m.view != nil && m.cursor >= len(m.view.Slots) {
			m.cursor = 0
		}

	case taskLoggedMsg:
		if msg.err != nil {
			m.status = rejectionMessage(msg.err)
			return m, nil
		}
		m.status = ""
		m.inputMode = false
		return m, m.loadDay()
	}

	return m, nil
}

// updateForm handles key input while the new-task form is open
func (m DayModel) updateForm(msg tea.KeyMsg) (DayModel, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Back):
		m.inputMode = false
		m.status = ""
		return m, nil

	case msg.String() == "tab", msg.String() == "shift+tab":
		if msg.String() == "tab" {
			m.focusIndex = (m.focusIndex + 1) % fieldCount
		} else {
			m.focusIndex = (m.focusIndex - 1 + fieldCount) % fieldCount
		}
		var cmds []tea.Cmd
		for i := range m.inputs {
			if i == m.focusIndex {
				cmds = append(cmds, m.inputs[i].Focus())
			} else {
				m.inputs[i].Blur()
			}
		}
		return m, tea.Batch(cmds...)

	case key.Matches(msg, m.keys.Select):
		return m, m.submitForm()
	}

	var cmd tea.Cmd
	m.inputs[m.focusIndex], cmd = m.inputs[m.focusIndex].Update(msg)
	return m, cmd
}

// openForm opens the new-task form with a suggested start time
func (m DayModel) openForm() (DayModel, tea.Cmd) {
	m.inputMode = true
	m.status = ""
	m.focusIndex = fieldEnd

	if suggested, err := m.services.Tasks.SuggestStart(m.date); err == nil {
		m.inputs[fieldStart].SetValue(suggested.Short())
	}
	m.inputs[fieldEnd].SetValue("")
	m.inputs[fieldDescription].SetValue("")

	var cmds []tea.Cmd
	for i := range m.inputs {
		if i == m.focusIndex {
			cmds = append(cmds, m.inputs[i].Focus())
		} else {
			m.inputs[i].Blur()
		}
	}
	return m, tea.Batch(cmds...)
}

// submitForm validates the form and logs the task
func (m DayModel) submitForm() tea.Cmd {
	date := m.date
	startStr := strings.TrimSpace(m.inputs[fieldStart].Value())
	endStr := strings.TrimSpace(m.inputs[fieldEnd].Value())
	project := strings.TrimSpace(m.inputs[fieldProject].Value())
	desc := strings.TrimSpace(m.inputs[fieldDescription].Value())

	return func() tea.Msg {
		start, err := interval.ParseClock(startStr)
		if err != nil {
			return taskLoggedMsg{err: fmt.Errorf("invalid start time %q", startStr)}
		}
		end, err := interval.ParseClock(endStr)
		if err != nil {
			return taskLoggedMsg{err: fmt.Errorf("invalid end time %q", endStr)}
		}
		_, err = m.services.Tasks.Log(date, start, end, project, desc, nil, nil)
		return taskLoggedMsg{err: err}
	}
}

// deleteSelected deletes the task under the cursor
func (m DayModel) deleteSelected() tea.Cmd {
	if m.view == nil || m.cursor >= len(m.view.Slots) {
		return nil
	}
	slot := m.view.Slots[m.cursor]
	if !slot.Recorded() {
		return nil
	}
	id := slot.Task.ID

	return func() tea.Msg {
		_, err := m.services.Tasks.Delete(id)
		return dayLoadedMsgAfter(m.services, m.date, err)
	}
}

// dayLoadedMsgAfter reloads the day after a mutation
func dayLoadedMsgAfter(services *service.Services, date time.Time, err error) tea.Msg {
	if err != nil {
		return dayLoadedMsg{err: err}
	}
	view, err := services.Tasks.View(date)
	if err != nil {
		return dayLoadedMsg{err: err}
	}
	return dayLoadedMsg{view: &view}
}

// View implements tea.Model
func (m DayModel) View() string {
	var b strings.Builder

	b.WriteString(m.styles.ViewTitle.Render(
		fmt.Sprintf("%s (%s)", m.date.Format("2006-01-02"), timeutil.WeekdayName(m.date))))
	b.WriteString("\n\n")

	if m.err != nil {
		b.WriteString(m.styles.Error.Render(fmt.Sprintf("Error: %v", m.err)))
		return b.String()
	}
	if m.view == nil {
		b.WriteString("Loading...")
		return b.String()
	}

	switch m.view.DayOff {
	case policy.PublicHoliday:
		b.WriteString(m.styles.Warning.Render("Public holiday"))
		b.WriteString("\n")
	case policy.NonWorkingDay:
		b.WriteString(m.styles.SlotGap.Render("Non-working day"))
		b.WriteString("\n")
	}

	if m.view.Span.Degenerate() {
		b.WriteString(m.styles.SlotGap.Render("No computable schedule"))
		return b.String()
	}

	b.WriteString(m.renderStatLine("Workday:", fmt.Sprintf("%s - %s",
		m.view.Span.Start.Format("15:04"), m.view.Span.End.Format("15:04"))))
	b.WriteString(m.renderStatLine("Lunch:", m.view.Span.Lunch.String()))
	b.WriteString("\n")

	var logged float64
	for i, slot := range m.view.Slots {
		style := m.styles.SlotNormal
		if i == m.cursor && !m.inputMode {
			style = m.styles.SlotSelected
		}

		timeCol := m.styles.SlotTime.Render(slot.Interval.String())
		if slot.Recorded() {
			t := slot.Task
			logged += t.Hours()
			line := fmt.Sprintf("%s %s %s %s",
				timeCol,
				m.styles.SlotProject.Render(t.ProjectCode),
				truncate(t.PlainDescription(), 40),
				m.styles.SlotHours.Render(formatHours(t.Hours())))
			b.WriteString(style.Render(line))
		} else {
			line := fmt.Sprintf("%s %s", timeCol,
				m.styles.SlotGap.Render(fmt.Sprintf("unrecorded (%s)", formatHours(slot.Interval.Hours()))))
			b.WriteString(style.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(m.renderStatLine("Logged:",
		fmt.Sprintf("%s of %s", formatHours(logged), formatHours(m.view.Policy.RequiredHours))))

	if m.inputMode {
		b.WriteString("\n")
		b.WriteString(m.renderForm())
	}
	if m.status != "" {
		b.WriteString("\n")
		b.WriteString(m.styles.Error.Render(m.status))
	}

	return b.String()
}

// renderForm renders the new-task input form
func (m DayModel) renderForm() string {
	labels := [fieldCount]string{"Start", "End", "Project", "Description"}

	var b strings.Builder
	b.WriteString(m.styles.ViewTitle.Render("New task"))
	b.WriteString("\n")
	for i := range m.inputs {
		style := m.styles.Input
		if i == m.focusIndex {
			style = m.styles.InputFocused
		}
		b.WriteString(fmt.Sprintf("%s\n%s\n",
			m.styles.StatLabel.Render(labels[i]),
			style.Render(m.inputs[i].View())))
	}
	return m.styles.Dialog.Render(b.String())
}

// SetSize sets the view dimensions
func (m *DayModel) SetSize(width, height int) {
	m.width = width
	m.height = height
}

func (m DayModel) renderStatLine(label, value string) string {
	return m.styles.StatLabel.Render(label) + " " + m.styles.StatValue.Render(value) + "\n"
}

// loadDay creates a command to load the day view
func (m DayModel) loadDay() tea.Cmd {
	services := m.services
	date := m.date
	return func() tea.Msg {
		view, err := services.Tasks.View(date)
		if err != nil {
			return dayLoadedMsg{err: err}
		}
		return dayLoadedMsg{view: &view}
	}
}
