package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rozgaar/backend/pkg/activity"
	"github.com/rozgaar/backend/pkg/jobs"
)

// ActivityRepository implements activity.Repository backed by PostgreSQL (pgx).
type ActivityRepository struct {
	pool *pgxpool.Pool
}

func NewActivityRepository(pool *pgxpool.Pool) *ActivityRepository {
	return &ActivityRepository{pool: pool}
}

func (r *ActivityRepository) Insert(ctx context.Context, e activity.Event) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO user_activity (user_id, action, metadata) VALUES ($1, $2, $3)
	`, e.UserID, e.Action, e.Metadata)
	return err
}

// UpsertFeedback returns jobs.ErrNotFound when the job does not exist.
func (r *ActivityRepository) UpsertFeedback(ctx context.Context, f activity.Feedback) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO job_feedback (user_id, job_id, relevant) VALUES ($1, $2, $3)
		ON CONFLICT (user_id, job_id) DO UPDATE SET relevant = EXCLUDED.relevant, created_at = now()
	`, f.UserID, f.JobID, f.Relevant)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" { // foreign_key_violation
			return jobs.ErrNotFound
		}
		return err
	}
	return nil
}
