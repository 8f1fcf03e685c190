package repository

import (
	"context"
	"time"

	"github.com/thread-watch-api/internal/database"
	"github.com/thread-watch-api/internal/models"
)

// pinnedCommentRepo is the concrete implementation of PinnedCommentRepository
type pinnedCommentRepo struct {
	db *database.DB
}

// NewPinnedCommentRepo creates a new pinned comment repository
func NewPinnedCommentRepo(db *database.DB) PinnedCommentRepository {
	return &pinnedCommentRepo{db: db}
}

// Pin marks a comment as pinned within a thread; re-pinning is a no-op
func (r *pinnedCommentRepo) Pin(ctx context.Context, threadID, commentID string) error {
	query := `
		INSERT INTO pinned_comments (thread_id, comment_id, created_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (thread_id, comment_id) DO NOTHING
	`
	_, err := r.db.ExecContext(ctx, query, threadID, commentID, time.Now())
	return err
}

// Unpin removes a single pin
func (r *pinnedCommentRepo) Unpin(ctx context.Context, threadID, commentID string) error {
	query := `DELETE FROM pinned_comments WHERE thread_id = $1 AND comment_id = $2`
	_, err := r.db.ExecContext(ctx, query, threadID, commentID)
	return err
}

// Clear removes every pin for a thread
func (r *pinnedCommentRepo) Clear(ctx context.Context, threadID string) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM pinned_comments WHERE thread_id = $1`, threadID)
	return err
}

// GetByThread returns a thread's pins in the order they were created
func (r *pinnedCommentRepo) GetByThread(ctx context.Context, threadID string) ([]models.PinnedComment, error) {
	query := `
		SELECT thread_id, comment_id, created_at
		FROM pinned_comments
		WHERE thread_id = $1
		ORDER BY created_at
	`
	rows, err := r.db.QueryContext(ctx, query, threadID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pins := make([]models.PinnedComment, 0)
	for rows.Next() {
		var p models.PinnedComment
		if err := rows.Scan(&p.ThreadID, &p.CommentID, &p.CreatedAt); err != nil {
			return nil, err
		}
		pins = append(pins, p)
	}
	return pins, rows.Err()
}

// Count returns the total number of pins across all threads
func (r *pinnedCommentRepo) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM pinned_comments`).Scan(&count)
	return count, err
}
