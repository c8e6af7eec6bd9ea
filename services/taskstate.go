package services

import (
	"time"

	"gateprep/model"
)

// LockAfter is how long after completion a task becomes immutable: no edit,
// delete or un-mark once the window has passed.
const LockAfter = 6 * time.Hour

// TaskLocked reports whether the task passed its mutation window. The check
// is pure and evaluated against the caller's clock on every call; nothing is
// cached on the task.
func TaskLocked(t *model.Task, now time.Time) bool {
	if t == nil || t.Status != model.StatusDone || t.CompletedAt == nil {
		return false
	}
	completed, err := time.Parse(time.RFC3339, *t.CompletedAt)
	if err != nil {
		// An unparseable timestamp never locks; matches the web client.
		return false
	}
	return now.Sub(completed) >= LockAfter
}

// CanMutate gates edit, delete and un-mark. It is a policy check with a
// boolean result, not an error: handlers reject locked mutations before any
// repository call is made.
func CanMutate(t *model.Task, now time.Time) bool {
	return !TaskLocked(t, now)
}

// MarkDonePatch builds the merge patch for a pending -> done transition.
// When the task has no recorded study hours but carries an estimate, hours
// are derived from it so stats stay useful.
func MarkDonePatch(t *model.Task, now time.Time) map[string]interface{} {
	patch := map[string]interface{}{
		"status":      model.StatusDone,
		"completedAt": now.Format(time.RFC3339),
	}
	if t != nil && t.StudyHours == nil && t.EstimatedMinutes != nil && *t.EstimatedMinutes >= 0 {
		patch["studyHours"] = *t.EstimatedMinutes / 60
	}
	return patch
}

// MarkPendingPatch builds the merge patch for a done -> pending transition.
// Callers must check CanMutate first; reverting clears the completion stamp.
func MarkPendingPatch() map[string]interface{} {
	return map[string]interface{}{
		"status":      model.StatusPending,
		"completedAt": nil,
	}
}
