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

const (
	usersCollection = "users"
	tasksCollection = "tasks"
)

func taskCollection(fb *firestore.Client, uid string) *firestore.CollectionRef {
	return fb.Collection(usersCollection).Doc(uid).Collection(tasksCollection)
}

// ListTasks returns every task owned by uid, sorted by creation time so the
// dashboard renders in a stable order.
func ListTasks(ctx context.Context, fb *firestore.Client, uid string) ([]model.Task, error) {
	if uid == "" {
		return nil, model.ErrNotAuthenticated
	}

	iter := taskCollection(fb, uid).Documents(ctx)
	defer iter.Stop()

	tasks := []model.Task{}
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, model.WrapRepository("list tasks", err)
		}

		var task model.Task
		if err := doc.DataTo(&task); err != nil {
			return nil, model.WrapRepository("decode task", err)
		}
		// The document key is authoritative; any id field inside the body is
		// ignored so stale duplicates cannot shadow it.
		task.TaskID = doc.Ref.ID
		tasks = append(tasks, task)
	}

	sort.SliceStable(tasks, func(i, j int) bool {
		return tasks[i].CreatedAt < tasks[j].CreatedAt
	})
	return tasks, nil
}

// GetTask fetches a single task, returning model.ErrTaskNotFound when the
// document does not exist.
func GetTask(ctx context.Context, fb *firestore.Client, uid, id string) (*model.Task, error) {
	if uid == "" {
		return nil, model.ErrNotAuthenticated
	}
	if id == "" {
		return nil, model.NewValidationError("task id is required")
	}

	doc, err := taskCollection(fb, uid).Doc(id).Get(ctx)
	if err != nil {
		if status.Code(err) == codes.NotFound {
			return nil, model.ErrTaskNotFound
		}
		return nil, model.WrapRepository("get task", err)
	}

	var task model.Task
	if err := doc.DataTo(&task); err != nil {
		return nil, model.WrapRepository("decode task", err)
	}
	task.TaskID = doc.Ref.ID
	return &task, nil
}

// CreateTask writes the task body under the pre-assigned id. Using the task
// id as the document key makes a retried create an idempotent upsert instead
// of a duplicate.
func CreateTask(ctx context.Context, fb *firestore.Client, uid string, task *model.Task) error {
	if uid == "" {
		return model.ErrNotAuthenticated
	}
	if err := task.Validate(); err != nil {
		return err
	}

	if _, err := taskCollection(fb, uid).Doc(task.TaskID).Set(ctx, task); err != nil {
		return model.WrapRepository("create task", err)
	}
	return nil
}

// UpdateTask applies a merge-style patch. Fields absent from the patch are
// preserved, and a missing document is created rather than failing.
func UpdateTask(ctx context.Context, fb *firestore.Client, uid, id string, patch map[string]interface{}) error {
	if uid == "" {
		return model.ErrNotAuthenticated
	}
	if id == "" {
		return model.NewValidationError("task id is required")
	}

	if _, err := taskCollection(fb, uid).Doc(id).Set(ctx, patch, firestore.MergeAll); err != nil {
		return model.WrapRepository("update task", err)
	}
	return nil
}

// DeleteAllTasks removes every task owned by uid along with the notes under
// each, used by account deletion. Firestore does not cascade subcollection
// deletes, so notes go first.
func DeleteAllTasks(ctx context.Context, fb *firestore.Client, uid string) error {
	if uid == "" {
		return model.ErrNotAuthenticated
	}

	iter := taskCollection(fb, uid).Documents(ctx)
	defer iter.Stop()
	for {
		doc, err := iter.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return model.WrapRepository("list tasks", err)
		}
		if err := deleteAllNotes(ctx, fb, uid, doc.Ref.ID); err != nil {
			return err
		}
		if _, err := doc.Ref.Delete(ctx); err != nil {
			return model.WrapRepository("delete task", err)
		}
	}
	return nil
}

// DeleteTask hard-deletes a task. Deleting an id that no longer exists is
// treated as success.
func DeleteTask(ctx context.Context, fb *firestore.Client, uid, id string) error {
	if uid == "" {
		return model.ErrNotAuthenticated
	}
	if id == "" {
		return model.NewValidationError("task id is required")
	}

	if _, err := taskCollection(fb, uid).Doc(id).Delete(ctx); err != nil {
		if status.Code(err) == codes.NotFound {
			return nil
		}
		return model.WrapRepository("delete task", err)
	}
	return nil
}
