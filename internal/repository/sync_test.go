package repository

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/atinyakov/readsync/internal/apperr"
	"github.com/atinyakov/readsync/internal/models"
)

func TestUpdateAndGetProgress(t *testing.T) {
	repo := NewKVSyncRepository(newFakeStore())
	ctx := context.Background()

	want := models.ProgressState{
		Document:   "book1",
		Percentage: 0.5,
		Progress:   "p1",
		Device:     "phone",
		DeviceID:   "dev-1",
		Timestamp:  1700000000,
	}
	if err := repo.UpdateProgress(ctx, "alice", want); err != nil {
		t.Fatalf("UpdateProgress: %v", err)
	}

	got, err := repo.GetProgress(ctx, "alice", "book1")
	if err != nil {
		t.Fatalf("GetProgress: %v", err)
	}
	if got == nil || !reflect.DeepEqual(*got, want) {
		t.Errorf("GetProgress = %+v; want %+v", got, want)
	}
}

func TestUpdateProgress_ReplacesWholeRecord(t *testing.T) {
	repo := NewKVSyncRepository(newFakeStore())
	ctx := context.Background()

	first := models.ProgressState{Document: "b", Percentage: 0.1, Progress: "p1", Device: "phone", DeviceID: "x", Timestamp: 1}
	second := models.ProgressState{Document: "b", Percentage: 0.2, Progress: "p2", Device: "tablet", Timestamp: 2}
	if err := repo.UpdateProgress(ctx, "alice", first); err != nil {
		t.Fatal(err)
	}
	if err := repo.UpdateProgress(ctx, "alice", second); err != nil {
		t.Fatal(err)
	}

	got, err := repo.GetProgress(ctx, "alice", "b")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(*got, second) {
		t.Errorf("GetProgress = %+v; want %+v (device_id must not be merged)", *got, second)
	}
}

func TestGetProgress_Absent(t *testing.T) {
	repo := NewKVSyncRepository(newFakeStore())

	got, err := repo.GetProgress(context.Background(), "alice", "never")
	if err != nil {
		t.Fatalf("GetProgress returned error: %v", err)
	}
	if got != nil {
		t.Errorf("GetProgress = %+v; want nil", got)
	}
}

func TestGetProgress_IsolatedPerUser(t *testing.T) {
	repo := NewKVSyncRepository(newFakeStore())
	ctx := context.Background()

	if err := repo.UpdateProgress(ctx, "alice", models.ProgressState{Document: "b"}); err != nil {
		t.Fatal(err)
	}
	got, err := repo.GetProgress(ctx, "bob", "b")
	if err != nil || got != nil {
		t.Errorf("bob sees alice's progress: %+v, %v", got, err)
	}
}

func TestGetProgress_Malformed(t *testing.T) {
	store := newFakeStore()
	if err := store.mem.Put(context.Background(), "user:alice:document:b", []byte("{not json")); err != nil {
		t.Fatal(err)
	}
	repo := NewKVSyncRepository(store)

	_, err := repo.GetProgress(context.Background(), "alice", "b")
	if !errors.Is(err, apperr.ErrStore) {
		t.Fatalf("error = %v; want ErrStore", err)
	}
}

func TestProgress_StoreErrors(t *testing.T) {
	boom := errors.New("backend down")
	store := newFakeStore()
	store.GetFunc = func(ctx context.Context, key string) ([]byte, error) { return nil, boom }
	store.PutFunc = func(ctx context.Context, key string, value []byte) error { return boom }
	repo := NewKVSyncRepository(store)
	ctx := context.Background()

	if err := repo.UpdateProgress(ctx, "alice", models.ProgressState{Document: "b"}); !errors.Is(err, apperr.ErrStore) {
		t.Errorf("UpdateProgress error = %v; want ErrStore", err)
	}
	if _, err := repo.GetProgress(ctx, "alice", "b"); !errors.Is(err, apperr.ErrStore) {
		t.Errorf("GetProgress error = %v; want ErrStore", err)
	}
}
