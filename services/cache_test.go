package services

import (
	"errors"
	"path/filepath"
	"testing"

	"gateprep/model"
)

func testCache(t *testing.T) *TaskCache {
	t.Helper()
	cache, err := OpenTaskCache(filepath.Join(t.TempDir(), "cache.db"))
	if err != nil {
		t.Fatalf("opening cache: %v", err)
	}
	t.Cleanup(func() { cache.Close() })
	return cache
}

func TestTaskCache_SaveAndLoad(t *testing.T) {
	cache := testCache(t)

	stamp := "2024-01-10T10:00:00Z"
	tasks := []model.Task{
		{
			TaskID:      "t1",
			Title:       "OS revision",
			Date:        "2024-01-10",
			Status:      model.StatusDone,
			CompletedAt: &stamp,
			StudyHours:  f64Ptr(0.75),
		},
	}
	if err := cache.Save("u1", tasks); err != nil {
		t.Fatalf("saving snapshot: %v", err)
	}

	loaded, savedAt, err := cache.Load("u1")
	if err != nil {
		t.Fatalf("loading snapshot: %v", err)
	}
	if savedAt == "" {
		t.Fatalf("expected a savedAt stamp")
	}
	if len(loaded) != 1 || loaded[0].TaskID != "t1" || loaded[0].Title != "OS revision" {
		t.Fatalf("unexpected snapshot contents: %+v", loaded)
	}
	if loaded[0].CompletedAt == nil || *loaded[0].CompletedAt != stamp {
		t.Fatalf("completedAt not preserved: %+v", loaded[0])
	}
}

func TestTaskCache_MissingSnapshot(t *testing.T) {
	cache := testCache(t)

	if _, _, err := cache.Load("nobody"); !errors.Is(err, ErrNoSnapshot) {
		t.Fatalf("expected ErrNoSnapshot, got %v", err)
	}
}

func TestTaskCache_Drop(t *testing.T) {
	cache := testCache(t)

	if err := cache.Save("u1", []model.Task{{TaskID: "t1", Title: "x"}}); err != nil {
		t.Fatalf("saving snapshot: %v", err)
	}
	if err := cache.Drop("u1"); err != nil {
		t.Fatalf("dropping snapshot: %v", err)
	}
	if _, _, err := cache.Load("u1"); !errors.Is(err, ErrNoSnapshot) {
		t.Fatalf("expected ErrNoSnapshot after drop, got %v", err)
	}
}

func TestTaskCache_SnapshotIsPerOwner(t *testing.T) {
	cache := testCache(t)

	if err := cache.Save("u1", []model.Task{{TaskID: "t1", Title: "a"}}); err != nil {
		t.Fatalf("saving snapshot: %v", err)
	}
	if err := cache.Save("u2", []model.Task{{TaskID: "t2", Title: "b"}}); err != nil {
		t.Fatalf("saving snapshot: %v", err)
	}

	loaded, _, err := cache.Load("u2")
	if err != nil {
		t.Fatalf("loading snapshot: %v", err)
	}
	if len(loaded) != 1 || loaded[0].TaskID != "t2" {
		t.Fatalf("owners must not share snapshots: %+v", loaded)
	}
}
