// Package config loads and saves the TOML application configuration.
// The engine itself never reads this package directly: the policy
// resolver turns it into an immutable DayPolicy per date and everything
// downstream consumes that.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"

	"github.com/ayliff/taskday/internal/interval"
)

const (
	// AppName is the application name used for the config directory
	AppName = "taskday"
	// ConfigFile is the name of the TOML configuration file
	ConfigFile = "config.toml"
)

// FlexibleStart bounds the window in which the workday may begin.
type FlexibleStart struct {
	Lower string `toml:"lower"`
	Upper string `toml:"upper"`
}

// Lunch is the daily lunch interval as wall-clock bounds.
type Lunch struct {
	Start string `toml:"start"`
	End   string `toml:"end"`
}

// Reminders configures the submission-reminder instants computed by the
// schedule package. The timers that fire them live outside this tool.
type Reminders struct {
	WeeklyTimesheetEnabled     bool    `toml:"weekly_timesheet_enabled"`
	WeeklyTimesheetDay         string  `toml:"weekly_timesheet_day"`
	MonthlyClaimsEnabled       bool    `toml:"monthly_claims_enabled"`
	MonthlyClaimsDay           int     `toml:"monthly_claims_day"`
	MonthlyTimesheetEnabled    bool    `toml:"monthly_timesheet_enabled"`
	MonthlyTimesheetDay        int     `toml:"monthly_timesheet_day"`
	OffsetHoursStart           float64 `toml:"reminder_offset_hours_start"`
	OffsetHoursEnd             float64 `toml:"reminder_offset_hours_end"`
	PreviousDayWorkloadEnabled bool    `toml:"previous_day_workload_enabled"`
}

// TimesheetRow pins a project row in the weekly timesheet: prefix rows
// always appear first, suffix rows last (and only when they have
// hours), and the holiday row receives backfilled hours on public
// holidays.
type TimesheetRow struct {
	ProjectCode   string `toml:"project_code"`
	DisplayName   string `toml:"display_name"`
	IsPrefix      bool   `toml:"is_prefix"`
	IsSuffix      bool   `toml:"is_suffix"`
	IsHolidayCode bool   `toml:"is_holiday_code"`
}

// Config is the full application configuration.
type Config struct {
	FlexibleStart     FlexibleStart `toml:"flexible_start"`
	DailyWorkingHours float64       `toml:"daily_working_hours"`
	Lunch             Lunch         `toml:"lunch"`
	WorkingDays       []string      `toml:"working_days"`
	Holidays          []string      `toml:"holidays"`

	ProjectCategories  []string `toml:"project_categories"`
	SoftwareUsed       []string `toml:"software_used"`
	TravelCategories   []string `toml:"travel_categories"`
	ProgressCategories []string `toml:"progress_categories"`

	PromptIntervalMinutes    int  `toml:"prompt_interval_minutes"`
	PromptAutocloseMinutes   int  `toml:"prompt_autoclose_minutes"`
	ShowScheduleNotification bool `toml:"show_schedule_notification"`
	MaxBackupsToKeep         int  `toml:"max_backups_to_keep"`

	Reminders     Reminders      `toml:"reminders"`
	TimesheetRows []TimesheetRow `toml:"timesheet_rows"`
}

// DefaultConfig returns the configuration used until the user saves
// their own: 8h days inside a 08:30-09:30 flexible window, an hour of
// lunch at 13:00, Monday-Friday.
func DefaultConfig() Config {
	return Config{
		FlexibleStart:            FlexibleStart{Lower: "08:30:00", Upper: "09:30:00"},
		DailyWorkingHours:        8.0,
		Lunch:                    Lunch{Start: "13:00:00", End: "14:00:00"},
		WorkingDays:              []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"},
		Holidays:                 []string{},
		ProjectCategories:        []string{"Design", "Site", "Meeting", "Admin"},
		SoftwareUsed:             []string{},
		TravelCategories:         []string{"Travel"},
		ProgressCategories:       []string{"Design"},
		PromptIntervalMinutes:    30,
		PromptAutocloseMinutes:   2,
		ShowScheduleNotification: true,
		MaxBackupsToKeep:         4,
		Reminders: Reminders{
			WeeklyTimesheetDay:         "Monday",
			MonthlyClaimsDay:           1,
			MonthlyTimesheetDay:        1,
			OffsetHoursStart:           1.0,
			OffsetHoursEnd:             1.0,
			PreviousDayWorkloadEnabled: true,
		},
	}
}

// GetConfigPath returns the path to the config file, creating the
// config directory if needed.
func GetConfigPath() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}

	appDir := filepath.Join(configDir, AppName)
	if err := os.MkdirAll(appDir, 0755); err != nil {
		return "", err
	}

	return filepath.Join(appDir, ConfigFile), nil
}

// Load reads and validates the config file at path.
func Load(path string) (Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return Config{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadOrDefault reads the config file at path, returning defaults when
// the file does not exist yet.
func LoadOrDefault(path string) (Config, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return DefaultConfig(), nil
	}
	return Load(path)
}

// Save writes the config to path using an atomic temp-file rename.
func Save(path string, cfg Config) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(cfg); err != nil {
		return fmt.Errorf("failed to encode config: %w", err)
	}

	tmpFile := path + ".tmp"
	if err := os.WriteFile(tmpFile, buf.Bytes(), 0644); err != nil {
		return err
	}
	return os.Rename(tmpFile, path)
}

var weekdayNames = map[string]bool{
	"Monday": true, "Tuesday": true, "Wednesday": true, "Thursday": true,
	"Friday": true, "Saturday": true, "Sunday": true,
}

// Validate checks the clock fields, window ordering, and weekday names.
func (c Config) Validate() error {
	lower, err := interval.ParseClock(c.FlexibleStart.Lower)
	if err != nil {
		return fmt.Errorf("flexible_start.lower: %w", err)
	}
	upper, err := interval.ParseClock(c.FlexibleStart.Upper)
	if err != nil {
		return fmt.Errorf("flexible_start.upper: %w", err)
	}
	if lower.After(upper) {
		return fmt.Errorf("flexible_start: lower %s is after upper %s", lower, upper)
	}

	lunchStart, err := interval.ParseClock(c.Lunch.Start)
	if err != nil {
		return fmt.Errorf("lunch.start: %w", err)
	}
	lunchEnd, err := interval.ParseClock(c.Lunch.End)
	if err != nil {
		return fmt.Errorf("lunch.end: %w", err)
	}
	if !lunchStart.Before(lunchEnd) {
		return fmt.Errorf("lunch: start %s must be before end %s", lunchStart, lunchEnd)
	}
	if lunchStart.Before(lower) {
		return fmt.Errorf("lunch must start after the flexible start window opens")
	}

	if c.DailyWorkingHours <= 0 || c.DailyWorkingHours > 16 {
		return fmt.Errorf("daily_working_hours %.2f out of range (0, 16]", c.DailyWorkingHours)
	}

	for _, day := range c.WorkingDays {
		if !weekdayNames[day] {
			return fmt.Errorf("working_days: unknown weekday %q", day)
		}
	}

	return nil
}
