package mocks

import (
	"context"
	"sort"

	"github.com/thread-watch-api/internal/models"
	"github.com/thread-watch-api/internal/service"
)

// MockWatchService is a mock implementation of WatchService
type MockWatchService struct {
	CreateFunc  func(ctx context.Context, req *models.CreateWatchRequest) (*models.Watch, error)
	GetFunc     func(ctx context.Context, watchID string) (*models.WatchSnapshot, error)
	RefreshFunc func(ctx context.Context, watchID string) (*models.WatchSnapshot, error)
	UpdateFunc  func(ctx context.Context, watchID string, req *models.UpdateWatchRequest) (*models.Watch, error)
	DeleteFunc  func(ctx context.Context, watchID string) error
	Watches     map[string]*models.Watch
	Deleted     []string
	Refreshed   []string
	StoppedAll  bool
}

// Verify interface compliance
var _ service.WatchService = (*MockWatchService)(nil)

func NewMockWatchService() *MockWatchService {
	return &MockWatchService{
		Watches: make(map[string]*models.Watch),
	}
}

func (m *MockWatchService) Create(ctx context.Context, req *models.CreateWatchRequest) (*models.Watch, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, req)
	}
	watch := &models.Watch{
		ID:            "test-watch-id",
		URL:           req.URL,
		IntervalLabel: req.Interval,
		State:         models.WatchStateWatching,
	}
	m.Watches[watch.ID] = watch
	return watch, nil
}

func (m *MockWatchService) Get(ctx context.Context, watchID string) (*models.WatchSnapshot, error) {
	if m.GetFunc != nil {
		return m.GetFunc(ctx, watchID)
	}
	watch, ok := m.Watches[watchID]
	if !ok {
		return nil, service.ErrWatchNotFound
	}
	return &models.WatchSnapshot{Watch: *watch, Comments: []models.Comment{}}, nil
}

func (m *MockWatchService) List(ctx context.Context) []models.Watch {
	out := make([]models.Watch, 0, len(m.Watches))
	for _, w := range m.Watches {
		out = append(out, *w)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (m *MockWatchService) Refresh(ctx context.Context, watchID string) (*models.WatchSnapshot, error) {
	m.Refreshed = append(m.Refreshed, watchID)
	if m.RefreshFunc != nil {
		return m.RefreshFunc(ctx, watchID)
	}
	return m.Get(ctx, watchID)
}

func (m *MockWatchService) Update(ctx context.Context, watchID string, req *models.UpdateWatchRequest) (*models.Watch, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, watchID, req)
	}
	watch, ok := m.Watches[watchID]
	if !ok {
		return nil, service.ErrWatchNotFound
	}
	if req.URL != "" {
		watch.URL = req.URL
	}
	if req.Interval != "" {
		watch.IntervalLabel = req.Interval
	}
	return watch, nil
}

func (m *MockWatchService) Delete(ctx context.Context, watchID string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, watchID)
	}
	if _, ok := m.Watches[watchID]; !ok {
		return service.ErrWatchNotFound
	}
	delete(m.Watches, watchID)
	m.Deleted = append(m.Deleted, watchID)
	return nil
}

func (m *MockWatchService) ActiveCount() int {
	return len(m.Watches)
}

func (m *MockWatchService) StopAll() {
	m.StoppedAll = true
}

// MockWatchlistService is a mock implementation of WatchlistService
type MockWatchlistService struct {
	WatchUserFunc func(ctx context.Context, username string) error
	Users         map[string]models.WatchedUser
	ActivityMap   map[string]int
	RecordedTrees [][]models.Comment
}

// Verify interface compliance
var _ service.WatchlistService = (*MockWatchlistService)(nil)

func NewMockWatchlistService() *MockWatchlistService {
	return &MockWatchlistService{
		Users:       make(map[string]models.WatchedUser),
		ActivityMap: make(map[string]int),
	}
}

func (m *MockWatchlistService) WatchUser(ctx context.Context, username string) error {
	if m.WatchUserFunc != nil {
		return m.WatchUserFunc(ctx, username)
	}
	m.Users[username] = models.WatchedUser{Username: username}
	return nil
}

func (m *MockWatchlistService) UnwatchUser(ctx context.Context, username string) error {
	if _, ok := m.Users[username]; !ok {
		return service.ErrUserNotWatched
	}
	delete(m.Users, username)
	delete(m.ActivityMap, username)
	return nil
}

func (m *MockWatchlistService) IsWatched(ctx context.Context, username string) (bool, error) {
	_, ok := m.Users[username]
	return ok, nil
}

func (m *MockWatchlistService) GetAll(ctx context.Context) ([]models.WatchedUser, error) {
	out := make([]models.WatchedUser, 0, len(m.Users))
	for _, u := range m.Users {
		out = append(out, u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out, nil
}

func (m *MockWatchlistService) RecordActivity(ctx context.Context, comments []models.Comment, firstSeen map[string]struct{}) error {
	m.RecordedTrees = append(m.RecordedTrees, comments)
	return nil
}

func (m *MockWatchlistService) Activity() []models.UserActivity {
	out := make([]models.UserActivity, 0, len(m.ActivityMap))
	for author, count := range m.ActivityMap {
		out = append(out, models.UserActivity{Username: author, NewCount: count})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Username < out[j].Username })
	return out
}

func (m *MockWatchlistService) ClearActivity(username string) {
	delete(m.ActivityMap, username)
}

func (m *MockWatchlistService) ClearAllActivity() {
	m.ActivityMap = make(map[string]int)
}

func (m *MockWatchlistService) Count(ctx context.Context) (int, error) {
	return len(m.Users), nil
}

// MockPinService is a mock implementation of PinService
type MockPinService struct {
	PinFunc func(ctx context.Context, threadID, commentID string) error
	Pins    map[string][]models.PinnedComment
}

// Verify interface compliance
var _ service.PinService = (*MockPinService)(nil)

func NewMockPinService() *MockPinService {
	return &MockPinService{
		Pins: make(map[string][]models.PinnedComment),
	}
}

func (m *MockPinService) Pin(ctx context.Context, threadID, commentID string) error {
	if m.PinFunc != nil {
		return m.PinFunc(ctx, threadID, commentID)
	}
	m.Pins[threadID] = append(m.Pins[threadID], models.PinnedComment{ThreadID: threadID, CommentID: commentID})
	return nil
}

func (m *MockPinService) Unpin(ctx context.Context, threadID, commentID string) error {
	pins := m.Pins[threadID]
	out := pins[:0]
	for _, p := range pins {
		if p.CommentID != commentID {
			out = append(out, p)
		}
	}
	m.Pins[threadID] = out
	return nil
}

func (m *MockPinService) Clear(ctx context.Context, threadID string) error {
	delete(m.Pins, threadID)
	return nil
}

func (m *MockPinService) GetByThread(ctx context.Context, threadID string) ([]models.PinnedComment, error) {
	return m.Pins[threadID], nil
}

func (m *MockPinService) Count(ctx context.Context) (int, error) {
	n := 0
	for _, pins := range m.Pins {
		n += len(pins)
	}
	return n, nil
}
