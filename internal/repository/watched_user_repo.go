package repository

import (
	"context"
	"time"

	"github.com/thread-watch-api/internal/database"
	"github.com/thread-watch-api/internal/models"
)

// watchedUserRepo is the concrete implementation of WatchedUserRepository
type watchedUserRepo struct {
	db *database.DB
}

// NewWatchedUserRepo creates a new watched user repository
func NewWatchedUserRepo(db *database.DB) WatchedUserRepository {
	return &watchedUserRepo{db: db}
}

// Add inserts an author into the watch list; re-watching is a no-op
func (r *watchedUserRepo) Add(ctx context.Context, username string) error {
	query := `
		INSERT INTO watched_users (username, created_at)
		VALUES ($1, $2)
		ON CONFLICT (username) DO NOTHING
	`
	_, err := r.db.ExecContext(ctx, query, username, time.Now())
	return err
}

// Remove deletes an author from the watch list
func (r *watchedUserRepo) Remove(ctx context.Context, username string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM watched_users WHERE username = $1`, username)
	return err
}

// Exists checks whether an author is on the watch list
func (r *watchedUserRepo) Exists(ctx context.Context, username string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM watched_users WHERE username = $1)`
	err := r.db.QueryRowContext(ctx, query, username).Scan(&exists)
	return exists, err
}

// GetAll returns the full watch list, oldest first
func (r *watchedUserRepo) GetAll(ctx context.Context) ([]models.WatchedUser, error) {
	query := `SELECT username, created_at FROM watched_users ORDER BY created_at`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]models.WatchedUser, 0)
	for rows.Next() {
		var u models.WatchedUser
		if err := rows.Scan(&u.Username, &u.CreatedAt); err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

// Count returns the number of watched authors
func (r *watchedUserRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM watched_users`).Scan(&count)
	return count, err
}
