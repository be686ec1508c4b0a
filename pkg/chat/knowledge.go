package chat

import (
	_ "embed"
	"fmt"
	"sort"
	"strings"

	"go.yaml.in/yaml/v4"

	"github.com/rozgaar/backend/pkg/nlp"
)

//go:embed knowledge.yaml
var knowledgeYAML []byte

const topK = 3

type Doc struct {
	Topic    string `yaml:"topic"`
	Category string `yaml:"category"`
	Content  string `yaml:"content"`
}

// LoadKnowledge parses the embedded knowledge base.
func LoadKnowledge() ([]Doc, error) {
	var docs []Doc
	if err := yaml.Unmarshal(knowledgeYAML, &docs); err != nil {
		return nil, fmt.Errorf("parse knowledge base: %w", err)
	}
	return docs, nil
}

// Retrieve ranks docs against query by keyword overlap and returns up to k
// with a positive score. Each query word longer than three characters adds
// 10 when found in the topic, 5 in the category and 1 in the content.
// Ties keep knowledge base order.
func Retrieve(docs []Doc, query string, k int) []Doc {
	keywords := nlp.Words(query, 3)
	type scored struct {
		doc   Doc
		score int
	}
	ranked := make([]scored, 0, len(docs))
	for _, d := range docs {
		topic := strings.ToLower(d.Topic)
		category := strings.ToLower(d.Category)
		content := strings.ToLower(d.Content)
		s := 0
		for _, kw := range keywords {
			if topic != "" && strings.Contains(topic, kw) {
				s += 10
			}
			if strings.Contains(category, kw) {
				s += 5
			}
			if strings.Contains(content, kw) {
				s++
			}
		}
		if s > 0 {
			ranked = append(ranked, scored{d, s})
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].score > ranked[j].score })
	if len(ranked) > k {
		ranked = ranked[:k]
	}
	out := make([]Doc, len(ranked))
	for i, r := range ranked {
		out[i] = r.doc
	}
	return out
}
