package coach

import (
	"context"
	"encoding/json"

	"github.com/yoockh/coachify/internal/providers/llm"
)

const (
	simulatorTemperature = 0.7
	simulatorMaxTokens   = 150

	FallbackStatusReply = "Let's focus on your value proposition. How would you explain our solution's benefits?"
	FallbackErrorReply  = "Could you rephrase your pitch?"
)

// Simulator plays the customer/coach side of a sales conversation. One
// Simulator belongs to one connection and is not safe for concurrent use.
type Simulator struct {
	llm        llm.Provider
	mode       Mode
	scenario   *Scenario
	assessment *Assessment
	history    []llm.Message
}

func NewSimulator(p llm.Provider, mode Mode) *Simulator {
	return &Simulator{llm: p, mode: mode, assessment: NewAssessment()}
}

func (s *Simulator) Mode() Mode { return s.mode }

func (s *Simulator) SetScenario(sc *Scenario) { s.scenario = sc }

func (s *Simulator) History() []llm.Message {
	out := make([]llm.Message, len(s.history))
	copy(out, s.history)
	return out
}

func (s *Simulator) Assessment() *Assessment { return s.assessment }

// Reply is one simulator answer plus the analysis produced for the turn.
type Reply struct {
	Text       string
	TurnScores Scores
	FellBack   bool
	Err        error
}

type salesContext struct {
	Scenario         *Scenario `json:"scenario"`
	SkillsAssessment Scores    `json:"skills_assessment"`
	ImprovementAreas []string  `json:"improvement_areas"`
}

// Respond records the user's utterance, scores it and asks the model for the
// next line. Provider failures are replaced with fixed coaching lines.
func (s *Simulator) Respond(ctx context.Context, transcript string) Reply {
	s.history = append(s.history, llm.Message{Role: llm.RoleUser, Content: transcript})
	turn := s.assessment.Update(transcript)

	sc, _ := json.Marshal(salesContext{
		Scenario:         s.scenario,
		SkillsAssessment: s.assessment.Skills(),
		ImprovementAreas: s.assessment.ImprovementAreas(),
	})

	msgs := []llm.Message{
		{Role: llm.RoleSystem, Content: s.mode.SystemPrompt()},
		{Role: llm.RoleSystem, Content: "Sales Context: " + string(sc)},
	}
	msgs = append(msgs, lastN(s.history, 2)...)

	r := Reply{TurnScores: turn}
	text, err := s.llm.Complete(ctx, llm.Request{
		Messages:    msgs,
		Temperature: simulatorTemperature,
		MaxTokens:   simulatorMaxTokens,
	})
	switch {
	case err == nil:
		r.Text = text
	case llm.IsStatusError(err):
		r.Text, r.FellBack, r.Err = FallbackStatusReply, true, err
	default:
		r.Text, r.FellBack, r.Err = FallbackErrorReply, true, err
	}

	s.history = append(s.history, llm.Message{Role: llm.RoleAssistant, Content: r.Text})
	return r
}

func lastN(msgs []llm.Message, n int) []llm.Message {
	if len(msgs) <= n {
		return msgs
	}
	return msgs[len(msgs)-n:]
}
