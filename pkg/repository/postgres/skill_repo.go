package postgres

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rozgaar/backend/pkg/skills"
)

// SkillRepository implements skills.Repository backed by PostgreSQL (pgx).
type SkillRepository struct {
	pool *pgxpool.Pool
}

func NewSkillRepository(pool *pgxpool.Pool) *SkillRepository {
	return &SkillRepository{pool: pool}
}

// GetOrCreate relies on the unique name; the no-op update makes RETURNING
// yield the existing row on conflict.
func (r *SkillRepository) GetOrCreate(ctx context.Context, name string) (skills.Skill, error) {
	var s skills.Skill
	err := r.pool.QueryRow(ctx, `
		INSERT INTO skills (name) VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, name
	`, name).Scan(&s.ID, &s.Name)
	if err != nil {
		return skills.Skill{}, fmt.Errorf("upsert skill %q: %w", name, err)
	}
	return s, nil
}

func (r *SkillRepository) AttachToJob(ctx context.Context, jobID, skillID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO jobs_skills (job_id, skill_id) VALUES ($1, $2)
		ON CONFLICT DO NOTHING
	`, jobID, skillID)
	return err
}

func (r *SkillRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]skills.UserSkill, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT s.id, s.name, COALESCE(us.proficiency, 0)
		FROM users_skills us JOIN skills s ON s.id = us.skill_id
		WHERE us.user_id = $1
		ORDER BY us.created_at DESC, s.name
	`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []skills.UserSkill{}
	for rows.Next() {
		var us skills.UserSkill
		if err := rows.Scan(&us.SkillID, &us.Name, &us.Proficiency); err != nil {
			return nil, err
		}
		out = append(out, us)
	}
	return out, rows.Err()
}

func (r *SkillRepository) UpsertForUser(ctx context.Context, userID, skillID uuid.UUID, proficiency int) error {
	_, err := r.pool.Exec(ctx, `
		INSERT INTO users_skills (user_id, skill_id, proficiency) VALUES ($1, $2, $3)
		ON CONFLICT (user_id, skill_id) DO UPDATE SET proficiency = EXCLUDED.proficiency
	`, userID, skillID, proficiency)
	return err
}

func (r *SkillRepository) RemoveForUser(ctx context.Context, userID, skillID uuid.UUID) error {
	_, err := r.pool.Exec(ctx, `DELETE FROM users_skills WHERE user_id = $1 AND skill_id = $2`, userID, skillID)
	return err
}
