package mocks

import (
	"context"
	"sort"
	"time"

	"github.com/thread-watch-api/internal/models"
	"github.com/thread-watch-api/internal/repository"
)

// MockWatchedUserRepository is an in-memory WatchedUserRepository
type MockWatchedUserRepository struct {
	Users    map[string]models.WatchedUser
	AddError error
}

// Verify interface compliance
var _ repository.WatchedUserRepository = (*MockWatchedUserRepository)(nil)

func NewMockWatchedUserRepository() *MockWatchedUserRepository {
	return &MockWatchedUserRepository{
		Users: make(map[string]models.WatchedUser),
	}
}

func (m *MockWatchedUserRepository) Add(ctx context.Context, username string) error {
	if m.AddError != nil {
		return m.AddError
	}
	if _, ok := m.Users[username]; !ok {
		m.Users[username] = models.WatchedUser{Username: username, CreatedAt: time.Now()}
	}
	return nil
}

func (m *MockWatchedUserRepository) Remove(ctx context.Context, username string) error {
	delete(m.Users, username)
	return nil
}

func (m *MockWatchedUserRepository) Exists(ctx context.Context, username string) (bool, error) {
	_, ok := m.Users[username]
	return ok, nil
}

func (m *MockWatchedUserRepository) GetAll(ctx context.Context) ([]models.WatchedUser, error) {
	out := make([]models.WatchedUser, 0, len(m.Users))
	for _, u := range m.Users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (m *MockWatchedUserRepository) Count(ctx context.Context) (int, error) {
	return len(m.Users), nil
}

// MockPinnedCommentRepository is an in-memory PinnedCommentRepository
type MockPinnedCommentRepository struct {
	Pins map[string]map[string]models.PinnedComment
}

// Verify interface compliance
var _ repository.PinnedCommentRepository = (*MockPinnedCommentRepository)(nil)

func NewMockPinnedCommentRepository() *MockPinnedCommentRepository {
	return &MockPinnedCommentRepository{
		Pins: make(map[string]map[string]models.PinnedComment),
	}
}

func (m *MockPinnedCommentRepository) Pin(ctx context.Context, threadID, commentID string) error {
	if m.Pins[threadID] == nil {
		m.Pins[threadID] = make(map[string]models.PinnedComment)
	}
	if _, ok := m.Pins[threadID][commentID]; !ok {
		m.Pins[threadID][commentID] = models.PinnedComment{
			ThreadID:  threadID,
			CommentID: commentID,
			CreatedAt: time.Now(),
		}
	}
	return nil
}

func (m *MockPinnedCommentRepository) Unpin(ctx context.Context, threadID, commentID string) error {
	if pins, ok := m.Pins[threadID]; ok {
		delete(pins, commentID)
	}
	return nil
}

func (m *MockPinnedCommentRepository) Clear(ctx context.Context, threadID string) error {
	delete(m.Pins, threadID)
	return nil
}

func (m *MockPinnedCommentRepository) GetByThread(ctx context.Context, threadID string) ([]models.PinnedComment, error) {
	pins := m.Pins[threadID]
	out := make([]models.PinnedComment, 0, len(pins))
	for _, p := range pins {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CommentID < out[j].CommentID })
	return out, nil
}

func (m *MockPinnedCommentRepository) Count(ctx context.Context) (int, error) {
	n := 0
	for _, pins := range m.Pins {
		n += len(pins)
	}
	return n, nil
}
