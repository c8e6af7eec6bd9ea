package model

import (
	"strings"
	"testing"
)

func fptr(f float64) *float64 { return &f }

func validTask() *Task {
	return &Task{
		TaskID: NewTaskID(),
		Title:  "OS revision",
		Date:   "2024-01-10",
		Status: StatusPending,
	}
}

func TestNewTaskID_Shape(t *testing.T) {
	id := NewTaskID()
	if len(id) < 8 {
		t.Fatalf("id suspiciously short: %q", id)
	}
	if strings.ContainsAny(id, " /.") {
		t.Fatalf("id must be a plain base36 string: %q", id)
	}

	seen := map[string]bool{}
	for i := 0; i < 1000; i++ {
		id := NewTaskID()
		if seen[id] {
			t.Fatalf("duplicate id generated: %q", id)
		}
		seen[id] = true
	}
}

func TestTaskValidate(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Task)
		ok     bool
	}{
		{"valid", func(*Task) {}, true},
		{"missing id", func(tk *Task) { tk.TaskID = "" }, false},
		{"blank id", func(tk *Task) { tk.TaskID = "  " }, false},
		{"missing title", func(tk *Task) { tk.Title = "" }, false},
		{"blank title", func(tk *Task) { tk.Title = "   " }, false},
		{"bad status", func(tk *Task) { tk.Status = "archived" }, false},
		{"bad date", func(tk *Task) { tk.Date = "10-01-2024" }, false},
		{"empty date ok", func(tk *Task) { tk.Date = "" }, true},
		{"negative estimate", func(tk *Task) { tk.EstimatedMinutes = fptr(-5) }, false},
		{"negative hours", func(tk *Task) { tk.StudyHours = fptr(-1) }, false},
		{"done status ok", func(tk *Task) { tk.Status = StatusDone }, true},
	}

	for _, tc := range cases {
		task := validTask()
		tc.mutate(task)
		err := task.Validate()
		if tc.ok && err != nil {
			t.Errorf("%s: unexpected error: %v", tc.name, err)
		}
		if !tc.ok {
			if err == nil {
				t.Errorf("%s: expected error", tc.name)
			} else if !IsValidation(err) {
				t.Errorf("%s: expected a validation error, got %T", tc.name, err)
			}
		}
	}
}

func TestCompletedDay(t *testing.T) {
	stamp := "2024-01-10T23:59:59Z"
	task := &Task{Status: StatusDone, CompletedAt: &stamp}
	if got := task.CompletedDay(); got != "2024-01-10" {
		t.Fatalf("expected 2024-01-10, got %q", got)
	}

	none := &Task{Status: StatusPending}
	if got := none.CompletedDay(); got != "" {
		t.Fatalf("expected empty day for pending task, got %q", got)
	}

	short := "x"
	bad := &Task{Status: StatusDone, CompletedAt: &short}
	if got := bad.CompletedDay(); got != "" {
		t.Fatalf("expected empty day for malformed stamp, got %q", got)
	}
}
