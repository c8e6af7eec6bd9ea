package model

import "strings"

// Note is a timestamped annotation taken while watching a task's linked
// video, stored at users/{uid}/tasks/{taskId}/notes/{noteId}.
type Note struct {
	NoteID    string   `firestore:"-" json:"id"`
	Text      string   `firestore:"text" json:"text"`
	VideoTime *float64 `firestore:"videoTime" json:"videoTime"` // seconds into the video
	CreatedAt string   `firestore:"createdAt" json:"createdAt"`
}

func (n *Note) Validate() error {
	if strings.TrimSpace(n.Text) == "" {
		return NewValidationError("note text is required")
	}
	if n.VideoTime != nil && *n.VideoTime < 0 {
		return NewValidationError("videoTime must not be negative")
	}
	return nil
}
