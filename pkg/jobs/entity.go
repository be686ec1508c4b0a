package jobs

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("job not found")

// Type is the shared four-value job type vocabulary.
type Type string

const (
	TypeInternship Type = "internship"
	TypeFullTime   Type = "full-time"
	TypePartTime   Type = "part-time"
	TypeContract   Type = "contract"
)

// ParseType maps provider vocabulary ("Full Time", "full_time", "contractor",
// "Internship") onto Type. Anything else, including pseudo types such as
// "remote", yields nil.
func ParseType(raw string) *Type {
	t := strings.ToLower(raw)
	var out Type
	switch {
	case t == "":
		return nil
	case strings.Contains(t, "full"):
		out = TypeFullTime
	case strings.Contains(t, "part"):
		out = TypePartTime
	case strings.Contains(t, "contract"):
		out = TypeContract
	case strings.Contains(t, "intern"):
		out = TypeInternship
	default:
		return nil
	}
	return &out
}

// Posting is the normalized record every source adapter produces.
type Posting struct {
	Title       string
	Company     string
	Location    string
	Description string
	Type        *Type
	Tags        []string
	Source      string
	SourceURL   string
	PostedAt    *time.Time
}

// Valid reports whether the posting carries the minimum needed to be stored.
func (p Posting) Valid() bool {
	return strings.TrimSpace(p.Title) != "" && strings.TrimSpace(p.SourceURL) != ""
}

// Job is a stored posting.
type Job struct {
	ID          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Company     string     `json:"company,omitempty"`
	Location    string     `json:"location,omitempty"`
	Description string     `json:"description,omitempty"`
	Type        *Type      `json:"jobType"`
	Source      string     `json:"source"`
	SourceURL   string     `json:"sourceUrl"`
	PostedAt    *time.Time `json:"postedAt"`
	CreatedAt   time.Time  `json:"createdAt"`
	Skills      []string   `json:"skills"`
}

// Filter narrows a job listing. Zero values mean "no constraint".
type Filter struct {
	// Text is matched case-insensitively against title, company or location.
	Text string
	// Keywords are OR-ed; each is matched against title, description or company.
	Keywords []string
	Type     *Type
	Location string
	Remote   bool
	Limit    int
}

// Repository is the port for job storage.
type Repository interface {
	// CreateIfAbsent inserts p unless its source URL is already stored.
	// created is false for a duplicate, in which case the returned Job is zero.
	CreateIfAbsent(ctx context.Context, p Posting) (job Job, created bool, err error)
	GetByID(ctx context.Context, id uuid.UUID) (Job, error)
	Search(ctx context.Context, f Filter) ([]Job, error)
	// Recent returns the newest jobs with their skill names.
	Recent(ctx context.Context, limit int) ([]Job, error)
}
