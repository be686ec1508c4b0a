package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rozgaar/backend/pkg/ratelimit"
)

// UsageRepository implements ratelimit.UsageRepository over the per-kind
// log tables.
type UsageRepository struct {
	pool *pgxpool.Pool
}

func NewUsageRepository(pool *pgxpool.Pool) *UsageRepository {
	return &UsageRepository{pool: pool}
}

type usageTable struct{ name, at string }

var usageTables = map[ratelimit.Kind]usageTable{
	ratelimit.KindChat:     {"chat_message_logs", "created_at"},
	ratelimit.KindJobFetch: {"job_fetch_logs", "fetched_at"},
}

func tableFor(kind ratelimit.Kind) (usageTable, error) {
	t, ok := usageTables[kind]
	if !ok {
		return usageTable{}, fmt.Errorf("no usage log for kind %q", kind)
	}
	return t, nil
}

func (r *UsageRepository) CountSince(ctx context.Context, userID uuid.UUID, kind ratelimit.Kind, since time.Time) (int, error) {
	t, err := tableFor(kind)
	if err != nil {
		return 0, err
	}
	var n int
	err = r.pool.QueryRow(ctx,
		fmt.Sprintf(`SELECT COUNT(*)::int FROM %s WHERE user_id = $1 AND %s >= $2`, t.name, t.at),
		userID, since).Scan(&n)
	return n, err
}

func (r *UsageRepository) Record(ctx context.Context, userID uuid.UUID, kind ratelimit.Kind, at time.Time) error {
	t, err := tableFor(kind)
	if err != nil {
		return err
	}
	_, err = r.pool.Exec(ctx,
		fmt.Sprintf(`INSERT INTO %s (user_id, %s) VALUES ($1, $2)`, t.name, t.at),
		userID, at)
	return err
}
