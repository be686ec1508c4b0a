package sources

import (
	"context"
	"fmt"
	"net/url"

	"golang.org/x/time/rate"

	"github.com/rozgaar/backend/pkg/jobs"
)

const RemotiveURL = "https://remotive.com/api/remote-jobs"

type Remotive struct {
	URL string

	client *Client
	lim    *rate.Limiter
}

func NewRemotive(c *Client) *Remotive {
	return &Remotive{URL: RemotiveURL, client: c, lim: c.limiter()}
}

type remotiveResponse struct {
	Jobs []struct {
		Title                     string   `json:"title"`
		CompanyName               string   `json:"company_name"`
		CandidateRequiredLocation string   `json:"candidate_required_location"`
		Description               string   `json:"description"`
		JobType                   string   `json:"job_type"`
		Tags                      []string `json:"tags"`
		URL                       string   `json:"url"`
		PublicationDate           string   `json:"publication_date"`
	} `json:"jobs"`
}

// Remotive publishes timestamps without a zone.
var remotiveLayouts = []string{"2006-01-02T15:04:05", "2006-01-02T15:04:05Z07:00"}

func (r *Remotive) Name() string { return "remotive" }

func (r *Remotive) Fetch(ctx context.Context, query string) ([]jobs.Posting, error) {
	endpoint := r.URL + "?" + url.Values{"search": {query}}.Encode()
	var resp remotiveResponse
	if err := r.client.getJSON(ctx, r.lim, endpoint, &resp); err != nil {
		return nil, fmt.Errorf("remotive: %w", err)
	}

	out := make([]jobs.Posting, 0, len(resp.Jobs))
	for _, j := range resp.Jobs {
		loc := j.CandidateRequiredLocation
		if loc == "" {
			loc = "Remote"
		}
		tags := j.Tags
		if tags == nil {
			tags = []string{}
		}
		out = append(out, jobs.Posting{
			Title:       j.Title,
			Company:     j.CompanyName,
			Location:    loc,
			Description: htmlToText(j.Description),
			Type:        jobs.ParseType(j.JobType),
			Tags:        tags,
			Source:      r.Name(),
			SourceURL:   j.URL,
			PostedAt:    parseTime(remotiveLayouts, j.PublicationDate),
		})
	}
	return out, nil
}
