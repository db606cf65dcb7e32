package llm

import (
	"context"
	"errors"
	"fmt"
)

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type Request struct {
	Messages    []Message
	Temperature float64
	MaxTokens   int
}

type Provider interface {
	// Complete returns the model's reply to the conversation in req.
	Complete(ctx context.Context, req Request) (string, error)
}

var ErrNotConfigured = errors.New("llm provider is not configured")

// StatusError is returned when the provider answers with a non-2xx status.
type StatusError struct {
	Provider   string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("%s: unexpected status %d: %s", e.Provider, e.StatusCode, e.Body)
}

// IsStatusError reports whether err came from a non-2xx provider response.
func IsStatusError(err error) bool {
	var se *StatusError
	return errors.As(err, &se)
}

// Unconfigured always fails with ErrNotConfigured so callers take their
// fallback path.
type Unconfigured struct{}

func (Unconfigured) Complete(context.Context, Request) (string, error) {
	return "", ErrNotConfigured
}

// flatten renders a chat transcript as a single prompt for text-only models.
func flatten(msgs []Message) string {
	var out string
	for i, m := range msgs {
		if i > 0 {
			out += "\n\n"
		}
		switch m.Role {
		case RoleSystem:
			out += m.Content
		case RoleAssistant:
			out += "Assistant: " + m.Content
		default:
			out += "User: " + m.Content
		}
	}
	return out
}
