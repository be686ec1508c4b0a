package chat

import (
	_ "embed"
	"fmt"
	"net/url"
	"strings"

	"go.yaml.in/yaml/v4"
)

//go:embed resources.yaml
var resourcesYAML []byte

type Resource struct {
	Type        string `yaml:"type" json:"type"`
	Title       string `yaml:"title" json:"title"`
	URL         string `yaml:"url" json:"url"`
	Description string `yaml:"description" json:"description"`
	Duration    string `yaml:"duration,omitempty" json:"duration,omitempty"`
	Platform    string `yaml:"platform" json:"platform"`
	Difficulty  string `yaml:"difficulty,omitempty" json:"difficulty,omitempty"`
}

// Catalog maps a lowercase skill name to curated learning resources.
type Catalog map[string][]Resource

func LoadCatalog() (Catalog, error) {
	var c Catalog
	if err := yaml.Unmarshal(resourcesYAML, &c); err != nil {
		return nil, fmt.Errorf("parse resource catalog: %w", err)
	}
	return c, nil
}

// For returns curated resources for skill, or a single web search link
// when the skill is not in the catalog.
func (c Catalog) For(skill string) []Resource {
	if rs := c[strings.ToLower(skill)]; len(rs) > 0 {
		return rs
	}
	return []Resource{{
		Type:        "course",
		Title:       "Learn " + skill,
		URL:         "https://www.google.com/search?q=learn+" + url.QueryEscape(skill) + "+tutorial",
		Description: fmt.Sprintf("Find curated resources to master %s", skill),
		Platform:    "Web Search",
	}}
}
