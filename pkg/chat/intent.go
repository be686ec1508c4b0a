package chat

import (
	"regexp"
	"strings"
)

type Intent int

const (
	IntentNone Intent = iota
	IntentLearn
	IntentMySkills
	IntentResources
)

var (
	skillPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)(?:want to learn|learning|learn|studying|study|add)\s+([a-z0-9+#.\- ]{2,50})`),
		regexp.MustCompile(`(?i)(?:help (?:me )?with|resources for|teach me)\s+([a-z0-9+#.\- ]{2,50})`),
	}
	reSkillTail = regexp.MustCompile(`(?i)\b(with|for|to|and|my|skills?|please|now)\b.*$`)
	reSpaces    = regexp.MustCompile(`\s+`)
)

var intentWords = []struct {
	intent Intent
	words  []string
}{
	{IntentLearn, []string{"learn", "add", "study"}},
	{IntentMySkills, []string{"my skills", "what am i learning"}},
	{IntentResources, []string{"resources", "recommend"}},
}

// DetectIntent routes a message by plain substring checks, in priority order.
func DetectIntent(message string) Intent {
	for _, iw := range intentWords {
		if Mentions(message, iw.intent) {
			return iw.intent
		}
	}
	return IntentNone
}

// Mentions reports whether message contains one of intent's trigger phrases.
// A message can mention several intents.
func Mentions(message string, intent Intent) bool {
	m := strings.ToLower(message)
	for _, iw := range intentWords {
		if iw.intent != intent {
			continue
		}
		for _, w := range iw.words {
			if strings.Contains(m, w) {
				return true
			}
		}
	}
	return false
}

// ExtractSkill pulls the skill a user says they want to learn, e.g.
// "I want to learn Machine Learning please" gives "machine learning".
func ExtractSkill(message string) string {
	for _, re := range skillPatterns {
		m := re.FindStringSubmatch(message)
		if m == nil {
			continue
		}
		raw := strings.ToLower(strings.TrimSpace(reSkillTail.ReplaceAllString(m[1], "")))
		if len(raw) >= 2 {
			return reSpaces.ReplaceAllString(raw, " ")
		}
	}
	return ""
}
