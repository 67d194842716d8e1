package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/ayliff/taskday/internal/config"
	"github.com/ayliff/taskday/internal/interval"
	"github.com/ayliff/taskday/internal/policy"
	"github.com/ayliff/taskday/internal/reconcile"
	"github.com/ayliff/taskday/internal/schedule"
	"github.com/ayliff/taskday/internal/storage"
	"github.com/ayliff/taskday/internal/task"
	"github.com/ayliff/taskday/internal/timeline"
	"github.com/ayliff/taskday/internal/timeutil"
)

// Common errors for the task service
var (
	ErrEmptyProject    = errors.New("project code cannot be empty")
	ErrInvalidInterval = errors.New("end time must be after start time")
)

// TaskService provides the day-centric operations: resolving a date's
// working-hour schedule, logging tasks against it, and pinning the
// effective start on first encounter.
type TaskService struct {
	tasksPath     string
	overridesPath string
	config        config.Config
}

// NewTaskService creates a new TaskService
func NewTaskService(tasksPath, overridesPath string, cfg config.Config) *TaskService {
	return &TaskService{
		tasksPath:     tasksPath,
		overridesPath: overridesPath,
		config:        cfg,
	}
}

// DayView is the fully resolved picture of one date: the policy in
// force, the workday span, where the effective start came from, and the
// day's tasks interleaved with its unrecorded gaps.
type DayView struct {
	Date        time.Time
	Policy      policy.DayPolicy
	Span        policy.Span
	StartOrigin policy.StartOrigin
	DayOff      policy.DayOffReason
	Tasks       []task.Task
	Slots       []timeline.Slot
	Gaps        []interval.Interval
}

// ResolveDay loads everything needed to compute a date's schedule: the
// frozen override policy when one exists, the live configuration
// otherwise, plus the date's tasks sorted by start.
func (s *TaskService) ResolveDay(date time.Time) (policy.DayPolicy, *interval.Clock, []task.Task, error) {
	dateStr := date.Format(task.DateLayout)

	tasks, err := storage.ReadTasksForDate(s.tasksPath, dateStr)
	if err != nil {
		return policy.DayPolicy{}, nil, nil, fmt.Errorf("failed to read tasks: %w", err)
	}

	override, found, err := storage.FindOverride(s.overridesPath, dateStr)
	if err != nil {
		return policy.DayPolicy{}, nil, nil, fmt.Errorf("failed to read day override: %w", err)
	}

	if found {
		p, err := policy.FromSnapshot(override.Policy)
		if err != nil {
			return policy.DayPolicy{}, nil, nil, fmt.Errorf("corrupt policy snapshot for %s: %w", dateStr, err)
		}
		pinned, err := interval.ParseClock(override.EffectiveStart)
		if err != nil {
			return policy.DayPolicy{}, nil, nil, fmt.Errorf("corrupt pinned start for %s: %w", dateStr, err)
		}
		return p, &pinned, tasks, nil
	}

	p, err := policy.FromConfig(s.config)
	if err != nil {
		return policy.DayPolicy{}, nil, nil, err
	}
	return p, nil, tasks, nil
}

// View assembles the DayView for a date.
func (s *TaskService) View(date time.Time) (DayView, error) {
	p, pinned, tasks, err := s.ResolveDay(date)
	if err != nil {
		return DayView{}, err
	}

	start, origin := policy.EffectiveStart(date, p, pinned, tasks)
	span := policy.ComputeSpan(date, start, p)

	return DayView{
		Date:        timeutil.DateOnly(date),
		Policy:      p,
		Span:        span,
		StartOrigin: origin,
		DayOff:      p.DayOff(date),
		Tasks:       tasks,
		Slots:       timeline.DaySlots(span, tasks),
		Gaps:        timeline.Gaps(span, tasks),
	}, nil
}

// PinDay pins today's effective start if it is not pinned yet: the
// current wall-clock time clamped into the flexible window, with the
// live policy frozen alongside it. Re-running later in the day (or
// after a config change) is a no-op — the first pin wins.
func (s *TaskService) PinDay(now time.Time) error {
	date := timeutil.DateOnly(now)
	dateStr := date.Format(task.DateLayout)

	p, err := policy.FromConfig(s.config)
	if err != nil {
		return err
	}
	if p.DayOff(date) != policy.Working {
		return nil
	}

	if _, found, err := storage.FindOverride(s.overridesPath, dateStr); err != nil {
		return fmt.Errorf("failed to read day override: %w", err)
	} else if found {
		return nil
	}

	clock := interval.ClockOf(now)
	clock.Second = 0
	pinned := p.ClampToWindow(clock)

	return storage.UpsertOverride(s.overridesPath, storage.DayOverride{
		Date:           dateStr,
		EffectiveStart: pinned.String(),
		Policy:         p.Snapshot(),
	})
}

// Log reconciles a proposed interval against the date's schedule and
// persists the surviving sub-intervals, each as its own task carrying
// the same metadata. Returns the created tasks; a reconciler rejection
// comes back unchanged for the caller to branch on.
func (s *TaskService) Log(date time.Time, start, end interval.Clock, projectCode, description string, categories, software []string) ([]task.Task, error) {
	if projectCode == "" {
		return nil, ErrEmptyProject
	}
	if !start.Before(end) {
		return nil, ErrInvalidInterval
	}

	p, pinned, existing, err := s.ResolveDay(date)
	if err != nil {
		return nil, err
	}
	effective, _ := policy.EffectiveStart(date, p, pinned, existing)
	span := policy.ComputeSpan(date, effective, p)

	proposed := interval.OnDate(date, start, end)
	pieces, err := reconcile.Insert(date, proposed, span, p, existing)
	if err != nil {
		return nil, err
	}

	all, err := storage.ReadTasks(s.tasksPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read tasks: %w", err)
	}
	nextID := storage.NextTaskID(all)

	created := make([]task.Task, 0, len(pieces))
	for _, piece := range pieces {
		t := task.Task{
			ID:          nextID,
			Date:        date.Format(task.DateLayout),
			Start:       interval.ClockOf(piece.Start).String(),
			End:         interval.ClockOf(piece.End).String(),
			ProjectCode: projectCode,
			Description: description,
			Categories:  categories,
			Software:    software,
		}
		if err := storage.AppendTask(s.tasksPath, t); err != nil {
			return created, fmt.Errorf("failed to save task: %w", err)
		}
		created = append(created, t)
		nextID++
	}
	return created, nil
}

// Update replaces a stored task.
func (s *TaskService) Update(t task.Task) error {
	return storage.UpdateTask(s.tasksPath, t)
}

// Delete removes the task with the given ID and returns it.
func (s *TaskService) Delete(id int64) (task.Task, error) {
	return storage.DeleteTask(s.tasksPath, id)
}

// Tasks returns the date's tasks sorted by start time.
func (s *TaskService) Tasks(date time.Time) ([]task.Task, error) {
	return storage.ReadTasksForDate(s.tasksPath, date.Format(task.DateLayout))
}

// SuggestStart proposes a start time for a new task on the date: the
// last logged task's end, bumped past lunch when it falls inside it;
// with nothing logged yet, the pinned start or the flexible window's
// upper bound.
func (s *TaskService) SuggestStart(date time.Time) (interval.Clock, error) {
	p, pinned, tasks, err := s.ResolveDay(date)
	if err != nil {
		return interval.Clock{}, err
	}

	if len(tasks) == 0 {
		if pinned != nil {
			return *pinned, nil
		}
		return p.FlexibleUpper, nil
	}

	lastEnd, err := interval.ParseClock(tasks[len(tasks)-1].End)
	if err != nil {
		return p.FlexibleUpper, nil
	}
	if !lastEnd.Before(p.LunchStart) && lastEnd.Before(p.LunchEnd) {
		return p.LunchEnd, nil
	}
	return lastEnd, nil
}

// DuePrompts lists the date's remaining prompt instants: the configured
// cadence minus any prompt whose covered stretch is already fully
// logged.
func (s *TaskService) DuePrompts(date time.Time) ([]schedule.Prompt, error) {
	p, pinned, tasks, err := s.ResolveDay(date)
	if err != nil {
		return nil, err
	}
	if p.DayOff(date) != policy.Working {
		return nil, nil
	}

	start, _ := policy.EffectiveStart(date, p, pinned, tasks)
	span := policy.ComputeSpan(date, start, p)
	every := time.Duration(s.config.PromptIntervalMinutes) * time.Minute
	return schedule.DuePrompts(span, tasks, every), nil
}

// TasksPath returns the path of the task store.
func (s *TaskService) TasksPath() string {
	return s.tasksPath
}

// OverridesPath returns the path of the day-override store.
func (s *TaskService) OverridesPath() string {
	return s.overridesPath
}

// StorageHealth reports on the task store's integrity.
func (s *TaskService) StorageHealth() (storage.StorageHealth, error) {
	return storage.ValidateStorage(s.tasksPath)
}
