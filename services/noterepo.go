package services

import (
	"context"
	"sort"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/iterator"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"gateprep/model"
)

const notesCollection = "notes"

func noteCollection(fb *firestore.Client, uid, taskID string) *firestore.CollectionRef {
	return taskCollection(fb, uid).Doc(taskID).Collection(notesCollection)
}

// ListNotes returns a task's video notes oldest first.
func ListNotes(ctx context.Context, fb *firestore.Client, uid, taskID string) ([]model.Note, error) {
	if uid == "" {
		return nil, model.ErrNotAuthenticated
	}
	if taskID == "" {
		return nil, model.NewValidationError("task id is required")
	}

	iter := noteCollection(fb, uid, taskID).Documents(ctx)
	defer iter.Stop()

	notes := []model.Note{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, model.WrapRepository("list notes", err)
		}

		var note model.Note
		if err := doc.DataTo(&note); err != nil {
			return nil, model.WrapRepository("decode note", err)
		}
		note.NoteID = doc.Ref.ID
		notes = append(notes, note)
	}

	sort.SliceStable(notes, func(i, j int) bool {
		return notes[i].CreatedAt < notes[j].CreatedAt
	})
	return notes, nil
}

func CreateNote(ctx context.Context, fb *firestore.Client, uid, taskID string, note *model.Note) error {
	if uid == "" {
		return model.ErrNotAuthenticated
	}
	if taskID == "" {
		return model.NewValidationError("task id is required")
	}
	if err := note.Validate(); err != nil {
		return err
	}

	if _, err := noteCollection(fb, uid, taskID).Doc(note.NoteID).Set(ctx, note); err != nil {
		return model.WrapRepository("create note", err)
	}
	return nil
}

func deleteAllNotes(ctx context.Context, fb *firestore.Client, uid, taskID string) error {
	iter := noteCollection(fb, uid, taskID).Documents(ctx)
	defer iter.Stop()
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return model.WrapRepository("list notes", err)
		}
		if _, err := doc.Ref.Delete(ctx); err != nil {
			return model.WrapRepository("delete note", err)
		}
	}
	return nil
}

func DeleteNote(ctx context.Context, fb *firestore.Client, uid, taskID, noteID string) error {
	if uid == "" {
		return model.ErrNotAuthenticated
	}
	if taskID == "" || noteID == "" {
		return model.NewValidationError("task id and note id are required")
	}

	if _, err := noteCollection(fb, uid, taskID).Doc(noteID).Delete(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return nil
		}
		return model.WrapRepository("delete note", err)
	}
	return nil
}
