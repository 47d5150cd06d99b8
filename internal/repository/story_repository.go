package repository

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/spec-kit/stories-service/internal/domain"
)

// StoryRepository persists story records. Each write is a single atomic
// statement; no multi-statement transactions are needed.
type StoryRepository interface {
	Create(ctx context.Context, story *domain.Story) error
	ListActive(ctx context.Context, now time.Time) ([]domain.Story, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

type storyRepository struct {
	pool *pgxpool.Pool
}

// NewStoryRepository constructs a Postgres-backed implementation.
func NewStoryRepository(pool *pgxpool.Pool) StoryRepository {
	return &storyRepository{pool: pool}
}

func (r *storyRepository) Create(ctx context.Context, story *domain.Story) error {
	const query = `
        INSERT INTO stories (account_id, media_url, created_at, expires_at)
        VALUES ($1, $2, $3, $4)
        RETURNING id`

	return r.pool.QueryRow(ctx, query,
		story.AccountID,
		story.MediaURL,
		story.CreatedAt,
		story.ExpiresAt,
	).Scan(&story.ID)
}

// ListActive returns unexpired stories joined with the owner handle, newest
// first. The expiry filter is evaluated against the caller-supplied instant,
// so each call is an independent point-in-time snapshot.
func (r *storyRepository) ListActive(ctx context.Context, now time.Time) ([]domain.Story, error) {
	const query = `
        SELECT s.id, s.account_id, s.media_url, s.created_at, s.expires_at, a.handle
        FROM stories s
        JOIN accounts a ON a.id = s.account_id
        WHERE s.expires_at > $1
        ORDER BY s.created_at DESC`

	rows, err := r.pool.Query(ctx, query, now)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []domain.Story
	for rows.Next() {
		var story domain.Story
		if err := rows.Scan(
			&story.ID,
			&story.AccountID,
			&story.MediaURL,
			&story.CreatedAt,
			&story.ExpiresAt,
			&story.OwnerHandle,
		); err != nil {
			return nil, err
		}
		result = append(result, story)
	}
	return result, rows.Err()
}

// DeleteExpired hard-deletes rows whose expiry has passed. Used only by the
// background reaper; the read path filters instead of deleting.
func (r *storyRepository) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	const query = `DELETE FROM stories WHERE expires_at <= $1`

	cmd, err := r.pool.Exec(ctx, query, now)
	if err != nil {
		return 0, err
	}
	return cmd.RowsAffected(), nil
}
