package storage

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/ayliff/taskday/internal/task"
)

func tasksPath(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), TasksFile)
}

func sampleTask(id int64, date, start, end string) task.Task {
	return task.Task{
		ID:          id,
		Date:        date,
		Start:       start,
		End:         end,
		ProjectCode: "P100",
		Description: "Drafting",
		Categories:  []string{"Design"},
	}
}

func TestAppendAndReadTasks(t *testing.T) {
	path := tasksPath(t)

	if err := AppendTask(path, sampleTask(1, "2025-03-04", "09:00:00", "10:00:00")); err != nil {
		t.Fatalf("AppendTask error: %v", err)
	}
	if err := AppendTask(path, sampleTask(2, "2025-03-04", "10:00:00", "11:00:00")); err != nil {
		t.Fatalf("AppendTask error: %v", err)
	}

	tasks, err := ReadTasks(path)
	if err != nil {
		t.Fatalf("ReadTasks error: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("got %d tasks, want 2", len(tasks))
	}
	if tasks[0].ID != 1 || tasks[1].ID != 2 {
		t.Errorf("ids = %d, %d", tasks[0].ID, tasks[1].ID)
	}
	if tasks[0].ProjectCode != "P100" || len(tasks[0].Categories) != 1 {
		t.Errorf("task fields not preserved: %+v", tasks[0])
	}
}

func TestReadTasksMissingFile(t *testing.T) {
	tasks, err := ReadTasks(tasksPath(t))
	if err != nil {
		t.Fatalf("missing file should not error: %v", err)
	}
	if len(tasks) != 0 {
		t.Errorf("got %d tasks, want 0", len(tasks))
	}
}

func TestReadTasksWithWarnings(t *testing.T) {
	path := tasksPath(t)

	if err := AppendTask(path, sampleTask(1, "2025-03-04", "09:00:00", "10:00:00")); err != nil {
		t.Fatal(err)
	}
	// Inject a corrupted line between two valid ones.
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := f.WriteString("{not valid json\n"); err != nil {
		t.Fatal(err)
	}
	_ = f.Close()
	if err := AppendTask(path, sampleTask(2, "2025-03-04", "10:00:00", "11:00:00")); err != nil {
		t.Fatal(err)
	}

	result, err := ReadTasksWithWarnings(path)
	if err != nil {
		t.Fatalf("ReadTasksWithWarnings error: %v", err)
	}
	if len(result.Tasks) != 2 {
		t.Errorf("got %d tasks, want 2", len(result.Tasks))
	}
	if len(result.Warnings) != 1 {
		t.Fatalf("got %d warnings, want 1", len(result.Warnings))
	}
	if result.Warnings[0].LineNumber != 2 {
		t.Errorf("warning line = %d, want 2", result.Warnings[0].LineNumber)
	}
}

func TestReadTasksForDate(t *testing.T) {
	path := tasksPath(t)

	// Out of order on purpose; a different date mixed in.
	_ = AppendTask(path, sampleTask(1, "2025-03-04", "14:00:00", "15:00:00"))
	_ = AppendTask(path, sampleTask(2, "2025-03-05", "09:00:00", "10:00:00"))
	_ = AppendTask(path, sampleTask(3, "2025-03-04", "09:00:00", "10:00:00"))

	tasks, err := ReadTasksForDate(path, "2025-03-04")
	if err != nil {
		t.Fatalf("ReadTasksForDate error: %v", err)
	}
	if len(tasks) != 2 {
		t.Fatalf("got %d tasks, want 2", len(tasks))
	}
	if tasks[0].ID != 3 || tasks[1].ID != 1 {
		t.Errorf("tasks not sorted by start: ids %d, %d", tasks[0].ID, tasks[1].ID)
	}
}

func TestNextTaskID(t *testing.T) {
	if got := NextTaskID(nil); got != 1 {
		t.Errorf("NextTaskID(empty) = %d, want 1", got)
	}
	tasks := []task.Task{{ID: 3}, {ID: 7}, {ID: 2}}
	if got := NextTaskID(tasks); got != 8 {
		t.Errorf("NextTaskID = %d, want 8", got)
	}
}

func TestUpdateTask(t *testing.T) {
	path := tasksPath(t)
	_ = AppendTask(path, sampleTask(1, "2025-03-04", "09:00:00", "10:00:00"))
	_ = AppendTask(path, sampleTask(2, "2025-03-04", "10:00:00", "11:00:00"))

	updated := sampleTask(2, "2025-03-04", "10:00:00", "11:30:00")
	updated.Description = "Revised drawing"
	if err := UpdateTask(path, updated); err != nil {
		t.Fatalf("UpdateTask error: %v", err)
	}

	tasks, _ := ReadTasks(path)
	if tasks[1].End != "11:30:00" || tasks[1].Description != "Revised drawing" {
		t.Errorf("update not persisted: %+v", tasks[1])
	}

	missing := sampleTask(99, "2025-03-04", "09:00:00", "10:00:00")
	if err := UpdateTask(path, missing); err == nil {
		t.Error("expected error for unknown id")
	}
}

func TestDeleteTask(t *testing.T) {
	path := tasksPath(t)
	_ = AppendTask(path, sampleTask(1, "2025-03-04", "09:00:00", "10:00:00"))
	_ = AppendTask(path, sampleTask(2, "2025-03-04", "10:00:00", "11:00:00"))

	deleted, err := DeleteTask(path, 1)
	if err != nil {
		t.Fatalf("DeleteTask error: %v", err)
	}
	if deleted.ID != 1 {
		t.Errorf("deleted id = %d, want 1", deleted.ID)
	}

	tasks, _ := ReadTasks(path)
	if len(tasks) != 1 || tasks[0].ID != 2 {
		t.Errorf("remaining tasks = %+v", tasks)
	}

	if _, err := DeleteTask(path, 99); err == nil {
		t.Error("expected error for unknown id")
	}
}

func TestValidateStorage(t *testing.T) {
	path := tasksPath(t)
	_ = AppendTask(path, sampleTask(1, "2025-03-04", "09:00:00", "10:00:00"))
	f, _ := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0644)
	_, _ = f.WriteString("garbage\n")
	_ = f.Close()

	health, err := ValidateStorage(path)
	if err != nil {
		t.Fatalf("ValidateStorage error: %v", err)
	}
	if health.TotalLines != 2 || health.ValidTasks != 1 || health.CorruptedLines != 1 {
		t.Errorf("health = %+v", health)
	}
}
