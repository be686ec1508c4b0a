package jobs

import (
	"net/url"
	"strings"
)

// SourceLink is a ready-made search on a job board the service does not ingest.
type SourceLink struct {
	Source string `json:"source"`
	URL    string `json:"url"`
}

type linkBuilder struct {
	name  string
	build func(query, location string) string
}

var linkBuilders = []linkBuilder{
	{"LinkedIn", func(q, loc string) string {
		v := url.Values{}
		v.Set("keywords", q)
		v.Set("location", loc)
		return "https://www.linkedin.com/jobs/search/?" + v.Encode()
	}},
	{"Naukri", func(q, loc string) string {
		path := slug(q) + "-jobs"
		if loc != "" {
			path += "-in-" + slug(loc)
		}
		return "https://www.naukri.com/" + url.PathEscape(path)
	}},
	{"Company Career Pages", func(q, _ string) string {
		return "https://www.google.com/search?q=" + url.QueryEscape(q+" careers")
	}},
}

// SearchLinks builds one search URL per external board for query, in a
// fixed order.
func SearchLinks(query, location string) []SourceLink {
	out := make([]SourceLink, 0, len(linkBuilders))
	for _, b := range linkBuilders {
		out = append(out, SourceLink{Source: b.name, URL: b.build(query, location)})
	}
	return out
}

func slug(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), "-")
}
