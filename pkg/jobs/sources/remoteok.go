package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"golang.org/x/time/rate"

	"github.com/rozgaar/backend/pkg/jobs"
)

const RemoteOKURL = "https://remoteok.com/api"

// RemoteOK fetches the full RemoteOK feed. The feed is not searchable, so
// the query is ignored.
type RemoteOK struct {
	URL string

	client *Client
	lim    *rate.Limiter
}

func NewRemoteOK(c *Client) *RemoteOK {
	return &RemoteOK{URL: RemoteOKURL, client: c, lim: c.limiter()}
}

type remoteOKJob struct {
	Position    string   `json:"position"`
	Company     string   `json:"company"`
	Location    string   `json:"location"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	Date        string   `json:"date"`
	URL         string   `json:"url"`
}

func (r *RemoteOK) Name() string { return "remoteok" }

func (r *RemoteOK) Fetch(ctx context.Context, _ string) ([]jobs.Posting, error) {
	var raw []json.RawMessage
	if err := r.client.getJSON(ctx, r.lim, r.URL, &raw); err != nil {
		return nil, fmt.Errorf("remoteok: %w", err)
	}
	return parseRemoteOK(raw), nil
}

// parseRemoteOK skips the leading metadata element and entries without a position.
func parseRemoteOK(raw []json.RawMessage) []jobs.Posting {
	if len(raw) <= 1 {
		return nil
	}
	out := make([]jobs.Posting, 0, len(raw)-1)
	for _, item := range raw[1:] {
		var j remoteOKJob
		if err := json.Unmarshal(item, &j); err != nil || j.Position == "" {
			continue
		}
		loc := j.Location
		if loc == "" {
			loc = "Remote"
		}
		tags := j.Tags
		if tags == nil {
			tags = []string{}
		}
		out = append(out, jobs.Posting{
			Title:       j.Position,
			Company:     j.Company,
			Location:    loc,
			Description: htmlToText(j.Description),
			Type:        jobs.ParseType("remote"),
			Tags:        tags,
			Source:      "remoteok",
			SourceURL:   j.URL,
			PostedAt:    parseTime([]string{time.RFC3339}, j.Date),
		})
	}
	return out
}
