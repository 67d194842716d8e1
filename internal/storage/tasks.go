package storage

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ayliff/taskday/internal/task"
)

const (
	// AppName is the application name used for the data directory
	AppName = "taskday"
	// TasksFile is the name of the JSON Lines task storage file
	TasksFile = "tasks.jsonl"
)

// ParseWarning represents a warning about a corrupted or malformed line
type ParseWarning struct {
	LineNumber int    // Line number in the file (1-indexed)
	Content    string // Raw content of the corrupted line
	Error      string // Description of the parsing error
}

// ReadResult contains the results of reading tasks from storage,
// including both successfully parsed tasks and any warnings about
// corrupted or malformed lines.
type ReadResult struct {
	Tasks    []task.Task    // Successfully parsed tasks
	Warnings []ParseWarning // Warnings about corrupted lines
}

// GetDataDir returns the application data directory, creating it if it
// doesn't exist. Uses os.UserConfigDir() for cross-platform
// XDG-compliant placement.
func GetDataDir() (string, error) {
	configDir, err := os.UserConfigDir()
	if err != nil {
		return "", err
	}

	appDir := filepath.Join(configDir, AppName)
	if err := os.MkdirAll(appDir, 0755); err != nil {
		return "", err
	}

	return appDir, nil
}

// GetTasksPath returns the path to the task storage file, creating the
// data directory if needed.
func GetTasksPath() (string, error) {
	dir, err := GetDataDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, TasksFile), nil
}

// NextTaskID returns the next free task ID: one past the highest ID in
// use, starting at 1 for an empty store.
func NextTaskID(tasks []task.Task) int64 {
	var max int64
	for _, t := range tasks {
		if t.ID > max {
			max = t.ID
		}
	}
	return max + 1
}

// AppendTask appends a single task to the JSON Lines storage file.
// Creates the file if it doesn't exist.
// Uses O_APPEND for atomic append operations.
func AppendTask(path string, t task.Task) error {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0644)
	if err != nil {
		return err
	}
	defer func() { _ = file.Close() }()

	line, err := json.Marshal(t)
	if err != nil {
		return err
	}

	_, err = file.WriteString(string(line) + "\n")
	return err
}

// ReadTasksWithWarnings reads all tasks from the JSON Lines storage
// file and returns both successfully parsed tasks and warnings about
// any corrupted lines. Returns an empty ReadResult if the file doesn't
// exist (graceful handling).
func ReadTasksWithWarnings(path string) (ReadResult, error) {
	result := ReadResult{
		Tasks:    []task.Task{},
		Warnings: []ParseWarning{},
	}

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return result, nil
		}
		return result, err
	}
	defer func() { _ = file.Close() }()

	scanner := bufio.NewScanner(file)
	lineNumber := 0
	for scanner.Scan() {
		lineNumber++
		lineContent := scanner.Text()

		var t task.Task
		if err := json.Unmarshal([]byte(lineContent), &t); err != nil {
			result.Warnings = append(result.Warnings, ParseWarning{
				LineNumber: lineNumber,
				Content:    lineContent,
				Error:      err.Error(),
			})
			continue
		}
		result.Tasks = append(result.Tasks, t)
	}

	if err := scanner.Err(); err != nil {
		return result, err
	}

	return result, nil
}

// ReadTasks reads all tasks from the JSON Lines storage file.
// Returns an empty slice if the file doesn't exist (graceful handling).
// Skips malformed lines for fault tolerance.
func ReadTasks(path string) ([]task.Task, error) {
	result, err := ReadTasksWithWarnings(path)
	return result.Tasks, err
}

// ReadTasksForDate reads the tasks logged on one calendar date, sorted
// by start time. Every reconciliation and view for a date begins here.
func ReadTasksForDate(path, date string) ([]task.Task, error) {
	all, err := ReadTasks(path)
	if err != nil {
		return nil, err
	}

	var day []task.Task
	for _, t := range all {
		if t.Date == date {
			day = append(day, t)
		}
	}
	task.SortByStart(day)
	return day, nil
}

// WriteTasks writes all tasks to the JSON Lines storage file using an
// atomic temp-file rename. This is used for operations that modify
// existing tasks (update, delete).
func WriteTasks(path string, tasks []task.Task) error {
	tmpFile := path + ".tmp"
	file, err := os.OpenFile(tmpFile, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0644)
	if err != nil {
		return err
	}

	for _, t := range tasks {
		line, err := json.Marshal(t)
		if err != nil {
			_ = file.Close()
			_ = os.Remove(tmpFile)
			return err
		}
		if _, err := file.WriteString(string(line) + "\n"); err != nil {
			_ = file.Close()
			_ = os.Remove(tmpFile)
			return err
		}
	}

	if err := file.Close(); err != nil {
		_ = os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, path)
}

// UpdateTask replaces the stored task with the same ID.
// Returns an error if no task with that ID exists.
func UpdateTask(path string, updated task.Task) error {
	tasks, err := ReadTasks(path)
	if err != nil {
		return err
	}

	found := false
	for i, t := range tasks {
		if t.ID == updated.ID {
			tasks[i] = updated
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("no task with id %d", updated.ID)
	}

	return WriteTasks(path, tasks)
}

// DeleteTask removes the task with the given ID and returns it.
// Returns an error if no task with that ID exists.
func DeleteTask(path string, id int64) (task.Task, error) {
	tasks, err := ReadTasks(path)
	if err != nil {
		return task.Task{}, err
	}

	index := -1
	for i, t := range tasks {
		if t.ID == id {
			index = i
			break
		}
	}
	if index == -1 {
		return task.Task{}, fmt.Errorf("no task with id %d", id)
	}

	deleted := tasks[index]
	remaining := append(tasks[:index], tasks[index+1:]...)

	if err := WriteTasks(path, remaining); err != nil {
		return task.Task{}, err
	}

	return deleted, nil
}

// StorageHealth contains information about the health status of the
// task storage file.
type StorageHealth struct {
	TotalLines     int            // Total number of lines in the storage file
	ValidTasks     int            // Number of successfully parsed tasks
	CorruptedLines int            // Number of corrupted/malformed lines
	Warnings       []ParseWarning // Detailed information about each corrupted line
}

// ValidateStorage analyzes the task storage file and returns health
// status information. Returns empty health status if the file doesn't
// exist.
func ValidateStorage(path string) (StorageHealth, error) {
	health := StorageHealth{
		Warnings: []ParseWarning{},
	}

	file, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return health, nil
		}
		return health, err
	}
	defer func() { _ = file.Close() }()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		health.TotalLines++
	}
	if err := scanner.Err(); err != nil {
		return health, err
	}

	result, err := ReadTasksWithWarnings(path)
	if err != nil {
		return health, err
	}

	health.ValidTasks = len(result.Tasks)
	health.CorruptedLines = len(result.Warnings)
	health.Warnings = result.Warnings

	return health, nil
}
