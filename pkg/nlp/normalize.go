package nlp

import (
	"strings"
)

// NormalizeSkill trims, lowercases and collapses inner whitespace so that
// "  React  Native" and "react native" resolve to the same vocabulary entry.
func NormalizeSkill(skill string) string {
	return strings.ToLower(strings.Join(strings.Fields(skill), " "))
}

// UniqueSkills normalises every name and drops empties and repeats, keeping
// first-seen order.
func UniqueSkills(names []string) []string {
	out := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		n = NormalizeSkill(n)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
