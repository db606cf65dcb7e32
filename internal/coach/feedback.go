package coach

import (
	"context"
	"encoding/json"

	"github.com/yoockh/coachify/internal/providers/llm"
)

const (
	feedbackPrefix    = "Coach Feedback: "
	feedbackMaxTokens = 200

	FallbackStatusFeedback = feedbackPrefix + "Focus on clearly articulating the value proposition."
	FallbackErrorFeedback  = feedbackPrefix + "Remember to address customer needs directly."
)

const feedbackPrompt = `As a Coachify AI Sales Coach, analyze this sales conversation.
Focus on:
1. Pitch effectiveness and clarity
2. Objection handling technique
3. Active listening skills
4. Closing strategy

Provide specific, actionable feedback to improve sales performance.

Conversation:
`

type FeedbackAgent struct {
	llm llm.Provider
}

func NewFeedbackAgent(p llm.Provider) *FeedbackAgent {
	return &FeedbackAgent{llm: p}
}

// Review critiques the last exchange in history. The result always starts
// with "Coach Feedback: ".
func (f *FeedbackAgent) Review(ctx context.Context, history []llm.Message) (text string, fellBack bool, err error) {
	conv, err := json.Marshal(lastN(history, 2))
	if err != nil {
		return FallbackErrorFeedback, true, err
	}

	out, err := f.llm.Complete(ctx, llm.Request{
		Messages:    []llm.Message{{Role: llm.RoleUser, Content: feedbackPrompt + string(conv)}},
		Temperature: simulatorTemperature,
		MaxTokens:   feedbackMaxTokens,
	})
	switch {
	case err == nil:
		return feedbackPrefix + out, false, nil
	case llm.IsStatusError(err):
		return FallbackStatusFeedback, true, err
	default:
		return FallbackErrorFeedback, true, err
	}
}
