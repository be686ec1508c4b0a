package sources

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"time"

	"golang.org/x/time/rate"

	"github.com/rozgaar/backend/pkg/jobs"
)

const AdzunaBaseURL = "https://api.adzuna.com/v1/api/jobs"

// Adzuna fetches the first result page of the Adzuna search API.
// Without credentials Fetch returns nothing and makes no request.
type Adzuna struct {
	AppID   string
	AppKey  string
	Country string
	BaseURL string

	client *Client
	lim    *rate.Limiter
}

func NewAdzuna(c *Client, appID, appKey, country string) *Adzuna {
	if country == "" {
		country = "in"
	}
	return &Adzuna{AppID: appID, AppKey: appKey, Country: country, BaseURL: AdzunaBaseURL, client: c, lim: c.limiter()}
}

type adzunaResponse struct {
	Results []adzunaResult `json:"results"`
}

type adzunaResult struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	Company     struct {
		DisplayName string `json:"display_name"`
	} `json:"company"`
	Location struct {
		DisplayName string `json:"display_name"`
	} `json:"location"`
	RedirectURL  string `json:"redirect_url"`
	Created      string `json:"created"`
	ContractType string `json:"contract_type"`
	ContractTime string `json:"contract_time"`
}

func (a *Adzuna) Name() string { return "adzuna" }

func (a *Adzuna) Fetch(ctx context.Context, query string) ([]jobs.Posting, error) {
	if a.AppID == "" || a.AppKey == "" {
		slog.Debug("adzuna credentials not set, skipping")
		return nil, nil
	}
	params := url.Values{}
	params.Set("app_id", a.AppID)
	params.Set("app_key", a.AppKey)
	params.Set("what", query)
	endpoint := fmt.Sprintf("%s/%s/search/1?%s", a.BaseURL, a.Country, params.Encode())

	var resp adzunaResponse
	if err := a.client.getJSON(ctx, a.lim, endpoint, &resp); err != nil {
		return nil, fmt.Errorf("adzuna: %w", err)
	}

	out := make([]jobs.Posting, 0, len(resp.Results))
	for _, r := range resp.Results {
		kind := r.ContractType
		if kind == "" {
			kind = r.ContractTime
		}
		out = append(out, jobs.Posting{
			Title:       r.Title,
			Company:     r.Company.DisplayName,
			Location:    r.Location.DisplayName,
			Description: htmlToText(r.Description),
			Type:        jobs.ParseType(kind),
			Tags:        []string{},
			Source:      a.Name(),
			SourceURL:   r.RedirectURL,
			PostedAt:    parseTime([]string{time.RFC3339}, r.Created),
		})
	}
	return out, nil
}
