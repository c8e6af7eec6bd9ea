package services

import (
	"encoding/json"
	"errors"
	"time"

	bolt "go.etcd.io/bbolt"

	"gateprep/model"
)

// ErrNoSnapshot is returned when no cached list exists for the owner.
var ErrNoSnapshot = errors.New("no cached snapshot")

var snapshotBucket = []byte("task_snapshots")

// TaskCache keeps the last task list fetched for each owner in a local bbolt
// file so reads can still be answered while Firestore is unreachable. It is
// a fallback only: the remote store stays authoritative and the snapshot is
// rewritten on every successful list.
type TaskCache struct {
	db *bolt.DB
}

type snapshot struct {
	SavedAt string       `json:"savedAt"`
	Tasks   []model.Task `json:"tasks"`
}

func OpenTaskCache(path string) (*TaskCache, error) {
	db, err := bolt.Open(path, 0o600, &bolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, err
	}
	err = db.Update(func(tx *bolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(snapshotBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, err
	}
	return &TaskCache{db: db}, nil
}

func (c *TaskCache) Close() error {
	return c.db.Close()
}

func (c *TaskCache) Save(userID string, tasks []model.Task) error {
	body, err := json.Marshal(snapshot{
		SavedAt: time.Now().Format(time.RFC3339),
		Tasks:   tasks,
	})
	if err != nil {
		return err
	}
	return c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(snapshotBucket).Put([]byte(userID), body)
	})
}

// Load returns the cached task list and the time it was saved.
func (c *TaskCache) Load(userID string) ([]model.Task, string, error) {
	var snap snapshot
	err := c.db.View(func(tx *bolt.Tx) error {
		body := tx.Bucket(snapshotBucket).Get([]byte(userID))
		if body == nil {
			return ErrNoSnapshot
		}
		return json.Unmarshal(body, &snap)
	})
	if err != nil {
		return nil, "", err
	}
	return snap.Tasks, snap.SavedAt, nil
}

// Drop removes the owner's snapshot, used when the account is deleted.
func (c *TaskCache) Drop(userID string) error {
	return c.db.Update(func(tx *bolt.Tx) error {
		return tx.Bucket(snapshotBucket).Delete([]byte(userID))
	})
}
