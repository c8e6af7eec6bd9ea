package model

import (
	"math/rand"
	"strconv"
	"strings"
	"time"
)

const (
	StatusPending = "pending"
	StatusDone    = "done"
)

// DateLayout is the calendar-day format used for scheduling and analytics.
const DateLayout = "2006-01-02"

// Task is one study item. The document id is the key under
// users/{uid}/tasks and is never written into the document body.
type Task struct {
	TaskID           string   `firestore:"-" json:"id"`
	Title            string   `firestore:"title" json:"title"`
	Link             *string  `firestore:"link" json:"link"`
	Subject          *string  `firestore:"subject" json:"subject"`
	Description      *string  `firestore:"description" json:"description"`
	Date             string   `firestore:"date" json:"date"`
	Status           string   `firestore:"status" json:"status"`
	CreatedAt        string   `firestore:"createdAt" json:"createdAt"`
	CompletedAt      *string  `firestore:"completedAt" json:"completedAt"`
	EstimatedMinutes *float64 `firestore:"estimatedMinutes" json:"estimatedMinutes"`
	StudyHours       *float64 `firestore:"studyHours" json:"studyHours"`
}

func (t *Task) IsDone() bool {
	return t != nil && t.Status == StatusDone
}

// CompletedDay returns the calendar day (YYYY-MM-DD) the task was completed
// on, or "" when it has no completion timestamp.
func (t *Task) CompletedDay() string {
	if t == nil || t.CompletedAt == nil {
		return ""
	}
	s := *t.CompletedAt
	if len(s) < len(DateLayout) {
		return ""
	}
	return s[:len(DateLayout)]
}

// NewTaskID generates a document id using the same random-plus-timestamp
// scheme the web client uses, so ids minted on either side never collide
// under normal single-user load.
func NewTaskID() string {
	return strconv.FormatUint(rand.Uint64(), 36) + strconv.FormatInt(time.Now().UnixMilli(), 36)
}

// Validate checks the fields a task must carry before it is persisted.
func (t *Task) Validate() error {
	if strings.TrimSpace(t.TaskID) == "" {
		return NewValidationError("task id is required")
	}
	if strings.TrimSpace(t.Title) == "" {
		return NewValidationError("title is required")
	}
	if t.Status != StatusPending && t.Status != StatusDone {
		return NewValidationError("status must be pending or done")
	}
	if t.Date != "" {
		if _, err := time.Parse(DateLayout, t.Date); err != nil {
			return NewValidationError("date must be formatted YYYY-MM-DD")
		}
	}
	if t.EstimatedMinutes != nil && *t.EstimatedMinutes < 0 {
		return NewValidationError("estimatedMinutes must not be negative")
	}
	if t.StudyHours != nil && *t.StudyHours < 0 {
		return NewValidationError("studyHours must not be negative")
	}
	return nil
}
