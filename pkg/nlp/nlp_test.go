package nlp

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeSkillIdempotent(t *testing.T) {
	for _, in := range []string{"  Python ", "REACT  Native", "c++", "UI/UX", "", "\tGo\n"} {
		once := NormalizeSkill(in)
		assert.Equal(t, once, NormalizeSkill(once), "input %q", in)
	}
	assert.Equal(t, "react native", NormalizeSkill("  React \t Native "))
	assert.Equal(t, NormalizeSkill("Python"), NormalizeSkill("pYTHON"))
}

func TestUniqueSkills(t *testing.T) {
	got := UniqueSkills([]string{"Go", "go ", "", "  ", "Docker", "GO", "docker"})
	assert.Equal(t, []string{"go", "docker"}, got)
}

func TestWords(t *testing.T) {
	assert.Equal(t, []string{"learn", "react"}, Words("How to learn React", 3))
	assert.Equal(t, []string{"remote", "react", "jobs"}, Words("remote React jobs in NY", 2))
	assert.Empty(t, Words("   ", 2))
}

func TestStripCodeFences(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", `{"a":1}`, `{"a":1}`},
		{"json fence", "```json\n{\"a\":1}\n```", `{"a":1}`},
		{"bare fence", "```\n[\"go\"]\n```", `["go"]`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, StripCodeFences(tt.in))
		})
	}
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", Truncate("abcdef", 3))
	assert.Equal(t, "ab", Truncate("ab", 10))
	assert.Equal(t, "a", Truncate("aé", 2))
}
