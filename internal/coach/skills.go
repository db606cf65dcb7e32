package coach

import (
	"sort"
	"strings"
)

const improvementThreshold = 0.3

const (
	SkillPitchClarity      = "pitch_clarity"
	SkillObjectionHandling = "objection_handling"
	SkillActiveListening   = "active_listening"
	SkillClosingAbility    = "closing_ability"
)

var skillOrder = []string{
	SkillPitchClarity,
	SkillObjectionHandling,
	SkillActiveListening,
	SkillClosingAbility,
}

var skillIndicators = map[string][]string{
	SkillPitchClarity:      {"value", "benefit", "solution", "roi", "results"},
	SkillObjectionHandling: {"understand", "however", "alternative", "instead", "solution"},
	SkillActiveListening:   {"you mentioned", "you said", "your needs", "you're looking for"},
	SkillClosingAbility:    {"next steps", "schedule", "follow up", "agreement", "move forward"},
}

// Scores maps a skill name to a value in [0,1].
type Scores map[string]float64

// ScoreTurn scores text against each skill's indicator phrases: the share of
// phrases that occur as substrings of the lower-cased text.
func ScoreTurn(text string) Scores {
	lower := strings.ToLower(text)
	out := make(Scores, len(skillOrder))
	for _, skill := range skillOrder {
		ind := skillIndicators[skill]
		hits := 0
		for _, phrase := range ind {
			if strings.Contains(lower, phrase) {
				hits++
			}
		}
		out[skill] = float64(hits) / float64(len(ind))
	}
	return out
}

// Assessment is the running skill picture for one conversation.
type Assessment struct {
	skills      Scores
	improvement map[string]struct{}
}

func NewAssessment() *Assessment {
	s := make(Scores, len(skillOrder))
	for _, k := range skillOrder {
		s[k] = 0
	}
	return &Assessment{skills: s, improvement: make(map[string]struct{})}
}

// Update folds a turn into the running averages and returns the turn scores.
func (a *Assessment) Update(text string) Scores {
	turn := ScoreTurn(text)
	for _, k := range skillOrder {
		a.skills[k] = (a.skills[k] + turn[k]) / 2
		if turn[k] < improvementThreshold {
			a.improvement[k] = struct{}{}
		}
	}
	return turn
}

func (a *Assessment) Skills() Scores {
	out := make(Scores, len(a.skills))
	for k, v := range a.skills {
		out[k] = v
	}
	return out
}

func (a *Assessment) ImprovementAreas() []string {
	out := make([]string, 0, len(a.improvement))
	for k := range a.improvement {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
