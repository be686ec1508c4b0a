package nlp

import (
	"regexp"
	"strings"
)

var reFence = regexp.MustCompile("```(?:json|JSON)?\\s*")

// Words lowercases s, splits it on whitespace and keeps words longer than minLen runes.
func Words(s string, minLen int) []string {
	var out []string
	for _, w := range strings.Fields(strings.ToLower(s)) {
		if len([]rune(w)) > minLen {
			out = append(out, w)
		}
	}
	return out
}

// StripCodeFences removes markdown code fences a model may wrap its JSON in.
func StripCodeFences(s string) string {
	return strings.TrimSpace(reFence.ReplaceAllString(s, ""))
}

// Truncate cuts s to at most n bytes without splitting a UTF-8 sequence.
func Truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	for n > 0 && !utf8RuneStart(s[n]) {
		n--
	}
	return s[:n]
}

func utf8RuneStart(b byte) bool { return b&0xC0 != 0x80 }
