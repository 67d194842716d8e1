package task

import (
	"testing"
)

func makeTask(date, start, end string) Task {
	return Task{
		ID:          1,
		Date:        date,
		Start:       start,
		End:         end,
		ProjectCode: "P-100",
		Description: "site inspection",
	}
}

func TestInterval(t *testing.T) {
	tk := makeTask("2025-03-04", "09:00:00", "10:30:00")

	iv, err := tk.Interval()
	if err != nil {
		t.Fatalf("Interval() error: %v", err)
	}
	if iv.Start.Hour() != 9 || iv.Start.Minute() != 0 {
		t.Errorf("start = %v, want 09:00", iv.Start)
	}
	if iv.End.Hour() != 10 || iv.End.Minute() != 30 {
		t.Errorf("end = %v, want 10:30", iv.End)
	}
	if iv.Start.Day() != 4 {
		t.Errorf("interval not on task date: %v", iv.Start)
	}
}

func TestIntervalInvalidInputs(t *testing.T) {
	tests := []struct {
		name string
		task Task
	}{
		{"bad date", makeTask("04/03/2025", "09:00:00", "10:00:00")},
		{"bad start", makeTask("2025-03-04", "9am", "10:00:00")},
		{"bad end", makeTask("2025-03-04", "09:00:00", "")},
	}

	for _, tt := range tests {
		if _, err := tt.task.Interval(); err == nil {
			t.Errorf("%s: expected error", tt.name)
		}
	}
}

func TestHours(t *testing.T) {
	tk := makeTask("2025-03-04", "09:00:00", "10:30:00")
	if got := tk.Hours(); got != 1.5 {
		t.Errorf("Hours = %v, want 1.5", got)
	}

	broken := makeTask("2025-03-04", "bad", "10:00:00")
	if got := broken.Hours(); got != 0 {
		t.Errorf("Hours on unparseable task = %v, want 0", got)
	}
}

func TestHasAnyCategory(t *testing.T) {
	tk := makeTask("2025-03-04", "09:00:00", "10:00:00")
	tk.Categories = []string{"Design", " Travel "}

	if !tk.HasAnyCategory([]string{"Travel"}) {
		t.Error("should match Travel despite stored whitespace")
	}
	if !tk.HasAnyCategory([]string{"Admin", "Design"}) {
		t.Error("should match when any requested category is present")
	}
	if tk.HasAnyCategory([]string{"Admin"}) {
		t.Error("should not match a missing category")
	}
	if tk.HasAnyCategory(nil) {
		t.Error("empty request should never match")
	}
}

func TestPlainDescription(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"plain text", "plain text"},
		{"<b>bridge</b> deck review", "bridge deck review"},
		{"<p>first</p><p>second</p>", "firstsecond"},
		{"A &amp; B", "A & B"},
		{"  padded  ", "padded"},
	}

	for _, tt := range tests {
		tk := Task{Description: tt.in}
		if got := tk.PlainDescription(); got != tt.want {
			t.Errorf("PlainDescription(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSortByStart(t *testing.T) {
	tasks := []Task{
		makeTask("2025-03-04", "14:00:00", "15:00:00"),
		makeTask("2025-03-04", "09:00:00", "10:00:00"),
		makeTask("2025-03-04", "10:30:00", "11:00:00"),
	}

	SortByStart(tasks)

	want := []string{"09:00:00", "10:30:00", "14:00:00"}
	for i, w := range want {
		if tasks[i].Start != w {
			t.Errorf("position %d: start = %s, want %s", i, tasks[i].Start, w)
		}
	}
}

func TestKey(t *testing.T) {
	a := makeTask("2025-03-04", "09:00:00", "10:00:00")
	b := makeTask("2025-03-18", "11:00:00", "12:00:00")

	if a.Key() != b.Key() {
		t.Error("tasks with the same project and description should share a group key")
	}

	b.Description = "different"
	if a.Key() == b.Key() {
		t.Error("different descriptions must not share a group key")
	}
}
