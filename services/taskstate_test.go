package services

import (
	"testing"
	"time"

	"gateprep/model"
)

func strPtr(s string) *string   { return &s }
func f64Ptr(f float64) *float64 { return &f }

func doneTask(completedAt time.Time) *model.Task {
	stamp := completedAt.Format(time.RFC3339)
	return &model.Task{
		TaskID:      "t1",
		Title:       "OS revision",
		Status:      model.StatusDone,
		CompletedAt: &stamp,
	}
}

func TestTaskLocked_BeforeAndAfterWindow(t *testing.T) {
	completed := time.Date(2024, 1, 10, 10, 0, 0, 0, time.UTC)
	task := doneTask(completed)

	if TaskLocked(task, completed.Add(5*time.Hour+59*time.Minute)) {
		t.Fatalf("task should not be locked at 5h59m after completion")
	}
	if !TaskLocked(task, completed.Add(6*time.Hour)) {
		t.Fatalf("task should be locked at exactly 6h after completion")
	}
	if !TaskLocked(task, completed.Add(6*time.Hour+time.Minute)) {
		t.Fatalf("task should be locked at 6h01m after completion")
	}
}

func TestTaskLocked_PendingNeverLocks(t *testing.T) {
	task := &model.Task{TaskID: "t1", Title: "x", Status: model.StatusPending}
	if TaskLocked(task, time.Now().Add(100*time.Hour)) {
		t.Fatalf("pending task must never lock")
	}
}

func TestTaskLocked_NilAndUnparseable(t *testing.T) {
	if TaskLocked(nil, time.Now()) {
		t.Fatalf("nil task must not lock")
	}

	bad := &model.Task{Status: model.StatusDone, CompletedAt: strPtr("not-a-date")}
	if TaskLocked(bad, time.Now()) {
		t.Fatalf("unparseable completedAt must not lock")
	}

	noStamp := &model.Task{Status: model.StatusDone}
	if TaskLocked(noStamp, time.Now()) {
		t.Fatalf("done task without completedAt must not lock")
	}
}

func TestMarkDonePatch_DerivesStudyHours(t *testing.T) {
	now := time.Date(2024, 1, 10, 10, 0, 0, 0, time.UTC)
	task := &model.Task{
		TaskID:           "t1",
		Title:            "OS revision",
		Status:           model.StatusPending,
		EstimatedMinutes: f64Ptr(45),
	}

	patch := MarkDonePatch(task, now)
	if patch["status"] != model.StatusDone {
		t.Fatalf("expected status done, got %v", patch["status"])
	}
	if patch["completedAt"] != "2024-01-10T10:00:00Z" {
		t.Fatalf("unexpected completedAt: %v", patch["completedAt"])
	}
	if patch["studyHours"] != 0.75 {
		t.Fatalf("expected derived studyHours 0.75, got %v", patch["studyHours"])
	}
}

func TestMarkDonePatch_KeepsExplicitStudyHours(t *testing.T) {
	task := &model.Task{
		TaskID:           "t1",
		Title:            "x",
		Status:           model.StatusPending,
		EstimatedMinutes: f64Ptr(45),
		StudyHours:       f64Ptr(2),
	}

	patch := MarkDonePatch(task, time.Now())
	if _, ok := patch["studyHours"]; ok {
		t.Fatalf("explicit studyHours must not be overwritten")
	}
}

func TestMarkDonePatch_IgnoresNegativeEstimate(t *testing.T) {
	task := &model.Task{
		TaskID:           "t1",
		Title:            "x",
		Status:           model.StatusPending,
		EstimatedMinutes: f64Ptr(-30),
	}

	patch := MarkDonePatch(task, time.Now())
	if _, ok := patch["studyHours"]; ok {
		t.Fatalf("negative estimate must not derive studyHours, got %v", patch["studyHours"])
	}
}

func TestMarkPendingPatch_ClearsCompletion(t *testing.T) {
	patch := MarkPendingPatch()
	if patch["status"] != model.StatusPending {
		t.Fatalf("expected status pending, got %v", patch["status"])
	}
	if patch["completedAt"] != nil {
		t.Fatalf("expected completedAt cleared, got %v", patch["completedAt"])
	}
}

func TestCanMutate_FollowsLock(t *testing.T) {
	completed := time.Date(2024, 1, 10, 10, 0, 0, 0, time.UTC)
	task := doneTask(completed)

	if !CanMutate(task, completed.Add(time.Hour)) {
		t.Fatalf("unlocked task must be mutable")
	}
	if CanMutate(task, completed.Add(7*time.Hour)) {
		t.Fatalf("locked task must not be mutable")
	}
	if !CanMutate(nil, time.Now()) {
		t.Fatalf("absent task must be mutable (upsert path)")
	}
}
