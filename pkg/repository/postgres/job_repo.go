package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/rozgaar/backend/pkg/jobs"
)

// JobRepository implements jobs.Repository backed by PostgreSQL (pgx).
type JobRepository struct {
	pool *pgxpool.Pool
}

func NewJobRepository(pool *pgxpool.Pool) *JobRepository {
	return &JobRepository{pool: pool}
}

const jobColumns = `
	j.id, j.title, COALESCE(j.company, ''), COALESCE(j.location, ''), COALESCE(j.description, ''),
	j.job_type::text, j.source, j.source_url, j.posted_at, j.created_at,
	ARRAY(SELECT s.name FROM jobs_skills js JOIN skills s ON s.id = js.skill_id
	      WHERE js.job_id = j.id ORDER BY s.name)`

func (r *JobRepository) CreateIfAbsent(ctx context.Context, p jobs.Posting) (jobs.Job, bool, error) {
	var jobType *string
	if p.Type != nil {
		t := string(*p.Type)
		jobType = &t
	}
	job := jobs.Job{
		Title:       p.Title,
		Company:     p.Company,
		Location:    p.Location,
		Description: p.Description,
		Type:        p.Type,
		Source:      p.Source,
		SourceURL:   p.SourceURL,
		PostedAt:    p.PostedAt,
		Skills:      []string{},
	}
	err := r.pool.QueryRow(ctx, `
		INSERT INTO jobs (title, company, location, description, job_type, source, source_url, posted_at)
		VALUES ($1, NULLIF($2, ''), NULLIF($3, ''), NULLIF($4, ''), CAST($5::text AS job_type), $6, $7, $8)
		ON CONFLICT (source_url) DO NOTHING
		RETURNING id, created_at
	`, p.Title, p.Company, p.Location, p.Description, jobType, p.Source, p.SourceURL, p.PostedAt).
		Scan(&job.ID, &job.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return jobs.Job{}, false, nil
		}
		return jobs.Job{}, false, fmt.Errorf("insert job: %w", err)
	}
	job.CreatedAt = job.CreatedAt.UTC()
	return job, true, nil
}

func (r *JobRepository) GetByID(ctx context.Context, id uuid.UUID) (jobs.Job, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+jobColumns+` FROM jobs j WHERE j.id = $1`, id)
	job, err := scanJob(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return jobs.Job{}, jobs.ErrNotFound
		}
		return jobs.Job{}, err
	}
	return job, nil
}

func (r *JobRepository) Search(ctx context.Context, f jobs.Filter) ([]jobs.Job, error) {
	where, args := searchClause(f)
	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}
	args = append(args, limit)
	q := `SELECT ` + jobColumns + ` FROM jobs j` + where +
		fmt.Sprintf(` ORDER BY j.created_at DESC LIMIT $%d`, len(args))
	return r.list(ctx, q, args...)
}

func (r *JobRepository) Recent(ctx context.Context, limit int) ([]jobs.Job, error) {
	return r.list(ctx, `SELECT `+jobColumns+` FROM jobs j ORDER BY j.created_at DESC LIMIT $1`, limit)
}

func (r *JobRepository) list(ctx context.Context, q string, args ...any) ([]jobs.Job, error) {
	rows, err := r.pool.Query(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	out := []jobs.Job{}
	for rows.Next() {
		job, err := scanJob(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, job)
	}
	return out, rows.Err()
}

// searchClause renders f as a WHERE clause with positional arguments.
func searchClause(f jobs.Filter) (string, []any) {
	var conds []string
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if t := strings.TrimSpace(f.Text); t != "" {
		p := arg(contains(t))
		conds = append(conds, fmt.Sprintf("(j.title ILIKE %[1]s OR j.company ILIKE %[1]s OR j.location ILIKE %[1]s)", p))
	}
	var kw []string
	for _, k := range f.Keywords {
		if k = strings.TrimSpace(k); k == "" {
			continue
		}
		p := arg(contains(k))
		kw = append(kw, fmt.Sprintf("j.title ILIKE %[1]s OR j.description ILIKE %[1]s OR j.company ILIKE %[1]s", p))
	}
	if len(kw) > 0 {
		conds = append(conds, "("+strings.Join(kw, " OR ")+")")
	}
	if f.Type != nil {
		conds = append(conds, "j.job_type = CAST("+arg(string(*f.Type))+"::text AS job_type)")
	}
	if l := strings.TrimSpace(f.Location); l != "" {
		conds = append(conds, "j.location ILIKE "+arg(contains(l)))
	}
	if f.Remote {
		conds = append(conds, "(j.location ILIKE '%remote%' OR j.source IN ('remoteok', 'remotive'))")
	}
	if len(conds) == 0 {
		return "", args
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

func contains(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return "%" + r.Replace(s) + "%"
}

func scanJob(row pgx.Row) (jobs.Job, error) {
	var j jobs.Job
	var jobType *string
	if err := row.Scan(&j.ID, &j.Title, &j.Company, &j.Location, &j.Description,
		&jobType, &j.Source, &j.SourceURL, &j.PostedAt, &j.CreatedAt, &j.Skills); err != nil {
		return jobs.Job{}, err
	}
	if jobType != nil {
		t := jobs.Type(*jobType)
		j.Type = &t
	}
	if j.Skills == nil {
		j.Skills = []string{}
	}
	j.CreatedAt = j.CreatedAt.UTC()
	return j, nil
}
