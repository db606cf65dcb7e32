package coach

import (
	"context"
	"strings"

	"github.com/yoockh/coachify/internal/providers/llm"
)

const (
	Greeting = "I am the IT Director evaluating your proposal. Convince me why I should trust your solution with our sensitive data."

	FallbackTrainerReply = "How can you differentiate your solution from competitors?"

	trainerPrompt = "You are a sales coach helping startups perfect their pitch. Ask one challenging question about their value proposition, target market, or competitive advantage. Keep your response short and focused."

	trainerTemperature = 0.8
	trainerMaxTokens   = 1024
)

// Trainer asks one probing question per utterance on /voice/chat.
type Trainer struct {
	llm llm.Provider
}

func NewTrainer(p llm.Provider) *Trainer {
	return &Trainer{llm: p}
}

func (t *Trainer) Reply(ctx context.Context, utterance string) (text string, fellBack bool, err error) {
	out, err := t.llm.Complete(ctx, llm.Request{
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: trainerPrompt},
			{Role: llm.RoleUser, Content: utterance},
		},
		Temperature: trainerTemperature,
		MaxTokens:   trainerMaxTokens,
	})
	if err != nil {
		return FallbackTrainerReply, true, err
	}
	out = strings.TrimSpace(out)
	if out == "" {
		return FallbackTrainerReply, true, nil
	}
	return out, false, nil
}
