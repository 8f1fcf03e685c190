package repository_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/thread-watch-api/internal/mocks"
)

func TestMockWatchedUserRepository_AddAndExists(t *testing.T) {
	repo := mocks.NewMockWatchedUserRepository()
	ctx := context.Background()

	if err := repo.Add(ctx, "alice"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	exists, err := repo.Exists(ctx, "alice")
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if !exists {
		t.Errorf("Expected alice to exist")
	}

	exists, err = repo.Exists(ctx, "bob")
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if exists {
		t.Errorf("Expected bob to not exist")
	}
}

func TestMockWatchedUserRepository_AddIsIdempotent(t *testing.T) {
	repo := mocks.NewMockWatchedUserRepository()
	ctx := context.Background()

	// Watching the same author twice must not error or double-count
	if err := repo.Add(ctx, "alice"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := repo.Add(ctx, "alice"); err != nil {
		t.Fatalf("Second Add failed: %v", err)
	}

	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 1 {
		t.Errorf("Expected count 1, got %d", count)
	}
}

func TestMockWatchedUserRepository_RemoveAndGetAll(t *testing.T) {
	repo := mocks.NewMockWatchedUserRepository()
	ctx := context.Background()

	for i := 0; i < 3; i++ {
		if err := repo.Add(ctx, fmt.Sprintf("user-%d", i)); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}

	if err := repo.Remove(ctx, "user-1"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}

	users, err := repo.GetAll(ctx)
	if err != nil {
		t.Fatalf("GetAll failed: %v", err)
	}
	if len(users) != 2 {
		t.Fatalf("Expected 2 users, got %d", len(users))
	}
	// GetAll is sorted by username
	if users[0].Username != "user-0" || users[1].Username != "user-2" {
		t.Errorf("Unexpected users: %+v", users)
	}
}

func TestMockPinnedCommentRepository_PinAndGetByThread(t *testing.T) {
	repo := mocks.NewMockPinnedCommentRepository()
	ctx := context.Background()

	if err := repo.Pin(ctx, "thread-1", "c1"); err != nil {
		t.Fatalf("Pin failed: %v", err)
	}
	if err := repo.Pin(ctx, "thread-1", "c2"); err != nil {
		t.Fatalf("Pin failed: %v", err)
	}
	if err := repo.Pin(ctx, "thread-2", "c3"); err != nil {
		t.Fatalf("Pin failed: %v", err)
	}

	pins, err := repo.GetByThread(ctx, "thread-1")
	if err != nil {
		t.Fatalf("GetByThread failed: %v", err)
	}
	if len(pins) != 2 {
		t.Errorf("Expected 2 pins for thread-1, got %d", len(pins))
	}
	for _, p := range pins {
		if p.ThreadID != "thread-1" {
			t.Errorf("Pin leaked across threads: %+v", p)
		}
	}
}

func TestMockPinnedCommentRepository_PinIsIdempotent(t *testing.T) {
	repo := mocks.NewMockPinnedCommentRepository()
	ctx := context.Background()

	if err := repo.Pin(ctx, "thread-1", "c1"); err != nil {
		t.Fatalf("Pin failed: %v", err)
	}
	if err := repo.Pin(ctx, "thread-1", "c1"); err != nil {
		t.Fatalf("Second Pin failed: %v", err)
	}

	pins, err := repo.GetByThread(ctx, "thread-1")
	if err != nil {
		t.Fatalf("GetByThread failed: %v", err)
	}
	if len(pins) != 1 {
		t.Errorf("Expected 1 pin after duplicate Pin, got %d", len(pins))
	}
}

func TestMockPinnedCommentRepository_UnpinAndClear(t *testing.T) {
	repo := mocks.NewMockPinnedCommentRepository()
	ctx := context.Background()

	repo.Pin(ctx, "thread-1", "c1")
	repo.Pin(ctx, "thread-1", "c2")

	if err := repo.Unpin(ctx, "thread-1", "c1"); err != nil {
		t.Fatalf("Unpin failed: %v", err)
	}
	pins, _ := repo.GetByThread(ctx, "thread-1")
	if len(pins) != 1 || pins[0].CommentID != "c2" {
		t.Errorf("Expected only c2 pinned, got %+v", pins)
	}

	if err := repo.Clear(ctx, "thread-1"); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	pins, _ = repo.GetByThread(ctx, "thread-1")
	if len(pins) != 0 {
		t.Errorf("Expected no pins after Clear, got %+v", pins)
	}

	count, err := repo.Count(ctx)
	if err != nil {
		t.Fatalf("Count failed: %v", err)
	}
	if count != 0 {
		t.Errorf("Expected count 0, got %d", count)
	}
}
