package coach

import (
	"sort"
	"strings"
)

var topicKeywords = map[string][]string{
	"funding": {"investment", "funding", "capital", "runway"},
	"market":  {"customers", "market", "competition", "demand"},
	"product": {"product", "feature", "development", "technology"},
	"team":    {"hiring", "team", "talent", "skills"},
}

// Topics returns the business topics mentioned in text, sorted.
func Topics(text string) []string {
	lower := strings.ToLower(text)
	var out []string
	for topic, words := range topicKeywords {
		for _, w := range words {
			if strings.Contains(lower, w) {
				out = append(out, topic)
				break
			}
		}
	}
	sort.Strings(out)
	return out
}

type TurnMetrics struct {
	WordCount         int     `json:"word_count"`
	QuestionFrequency float64 `json:"question_frequency"`
}

func MeasureTurn(text string) TurnMetrics {
	words := len(strings.Fields(text))
	denom := words
	if denom < 1 {
		denom = 1
	}
	return TurnMetrics{
		WordCount:         words,
		QuestionFrequency: float64(strings.Count(text, "?")) / float64(denom),
	}
}
