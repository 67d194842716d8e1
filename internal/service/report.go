package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/ayliff/taskday/internal/config"
	"github.com/ayliff/taskday/internal/policy"
	"github.com/ayliff/taskday/internal/progress"
	"github.com/ayliff/taskday/internal/report"
	"github.com/ayliff/taskday/internal/schedule"
	"github.com/ayliff/taskday/internal/storage"
	"github.com/ayliff/taskday/internal/task"
	"github.com/ayliff/taskday/internal/timeutil"
)

// ReportService builds the weekly timesheet, the travel extract, and
// the monthly design-record report from stored tasks.
type ReportService struct {
	tasksPath     string
	overridesPath string
	progressPath  string
	config        config.Config
}

// NewReportService creates a new ReportService
func NewReportService(tasksPath, overridesPath, progressPath string, cfg config.Config) *ReportService {
	return &ReportService{
		tasksPath:     tasksPath,
		overridesPath: overridesPath,
		progressPath:  progressPath,
		config:        cfg,
	}
}

// Timesheet builds the weekly timesheet for the week containing date.
// Days whose policy was frozen by a pin use their frozen required
// hours; the configured default covers the rest.
func (s *ReportService) Timesheet(date time.Time) (report.Timesheet, error) {
	all, err := storage.ReadTasks(s.tasksPath)
	if err != nil {
		return report.Timesheet{}, fmt.Errorf("failed to read tasks: %w", err)
	}

	inWeek := make(map[string]bool, 7)
	for _, d := range timeutil.WeekDates(date) {
		inWeek[d.Format(task.DateLayout)] = true
	}
	var weekTasks []task.Task
	for _, t := range all {
		if inWeek[t.Date] {
			weekTasks = append(weekTasks, t)
		}
	}

	overrides, err := storage.ReadOverrides(s.overridesPath)
	if err != nil {
		return report.Timesheet{}, fmt.Errorf("failed to read day overrides: %w", err)
	}
	requiredHours := make(map[string]float64)
	for _, o := range overrides {
		if inWeek[o.Date] {
			requiredHours[o.Date] = o.Policy.DailyWorkingHours
		}
	}

	return report.BuildTimesheet(date, weekTasks, requiredHours, s.config), nil
}

// monthTasks reads every task logged in the month containing date.
func (s *ReportService) monthTasks(month time.Time) ([]task.Task, error) {
	all, err := storage.ReadTasks(s.tasksPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read tasks: %w", err)
	}

	prefix := month.Format(timeutil.MonthLayout) + "-"
	var out []task.Task
	for _, t := range all {
		if strings.HasPrefix(t.Date, prefix) {
			out = append(out, t)
		}
	}
	return out, nil
}

// Travel builds the travel extract for the month containing date.
func (s *ReportService) Travel(month time.Time) ([]report.TravelRow, error) {
	tasks, err := s.monthTasks(month)
	if err != nil {
		return nil, err
	}
	return report.BuildTravel(tasks, s.config.TravelCategories), nil
}

// Monthly builds the design-record report for the month containing
// date. Rows without a stored progress value come back with NeedsInput
// set; the caller collects the value and stores it via SetProgress.
func (s *ReportService) Monthly(month time.Time) (report.MonthlyReport, error) {
	tasks, err := s.monthTasks(month)
	if err != nil {
		return report.MonthlyReport{}, err
	}

	records, err := storage.ReadProgressRecords(s.progressPath)
	if err != nil {
		return report.MonthlyReport{}, fmt.Errorf("failed to read progress records: %w", err)
	}
	monthKey := month.Format(timeutil.MonthLayout)
	var monthRecords []storage.ProgressRecord
	for _, r := range records {
		if r.Month == monthKey {
			monthRecords = append(monthRecords, r)
		}
	}

	return report.BuildMonthly(month, tasks, s.config.ProgressCategories, monthRecords), nil
}

// SetProgress stores a task group's final progress for a month. The
// value must be a percentage or the recurring marker. The group's
// start-of-month progress is carried over from the previous month's
// final figure when that was numeric, so the apportionment continues
// where last month ended.
func (s *ReportService) SetProgress(month time.Time, key task.GroupKey, final string) error {
	if _, err := progress.ParseFinal(final); err != nil {
		return err
	}

	var start float64
	prevKey := timeutil.AddMonths(month, -1).Format(timeutil.MonthLayout)
	if prev, found, err := storage.FindProgress(s.progressPath, prevKey, key.ProjectCode, key.Description); err != nil {
		return fmt.Errorf("failed to read progress records: %w", err)
	} else if found {
		if pct, err := strconv.ParseFloat(strings.TrimSpace(prev.FinalProgress), 64); err == nil {
			start = pct
		}
	}

	return storage.UpsertProgress(s.progressPath, storage.ProgressRecord{
		Month:         month.Format(timeutil.MonthLayout),
		ProjectCode:   key.ProjectCode,
		Description:   key.Description,
		StartProgress: start,
		FinalProgress: strings.TrimSpace(final),
	})
}

// WorkloadCheck summarizes the most recent working day before a date.
type WorkloadCheck struct {
	Date          time.Time
	HasTasks      bool
	HoursLogged   float64
	RequiredHours float64
	Short         bool
}

// PreviousDayWorkload checks whether the previous working day met its
// required hours. The second return is false when the check is disabled
// or no working day was found.
func (s *ReportService) PreviousDayWorkload(now time.Time) (WorkloadCheck, bool, error) {
	if !s.config.Reminders.PreviousDayWorkloadEnabled {
		return WorkloadCheck{}, false, nil
	}

	p, err := policy.FromConfig(s.config)
	if err != nil {
		return WorkloadCheck{}, false, err
	}
	prev, found := schedule.PreviousWorkingDay(now, p)
	if !found {
		return WorkloadCheck{}, false, nil
	}

	tasks, err := storage.ReadTasksForDate(s.tasksPath, prev.Format(task.DateLayout))
	if err != nil {
		return WorkloadCheck{}, false, fmt.Errorf("failed to read tasks: %w", err)
	}

	check := WorkloadCheck{
		Date:          prev,
		HasTasks:      len(tasks) > 0,
		RequiredHours: s.config.DailyWorkingHours,
	}
	for _, t := range tasks {
		check.HoursLogged += t.Hours()
	}
	check.Short = check.HoursLogged < check.RequiredHours
	return check, true, nil
}
