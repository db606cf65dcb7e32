package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"
	"time"
)

const togetherBaseURL = "https://api.together.xyz"

// Together calls the Together AI chat-completions endpoint.
type Together struct {
	apiKey  string
	model   string
	baseURL string
	client  *http.Client
}

func NewTogether(apiKey, model string) *Together {
	return &Together{
		apiKey:  apiKey,
		model:   model,
		baseURL: togetherBaseURL,
		client:  &http.Client{Timeout: 60 * time.Second},
	}
}

// WithBaseURL points the client at another host (tests, proxies).
func (t *Together) WithBaseURL(u string) *Together {
	t.baseURL = strings.TrimRight(u, "/")
	return t
}

type togetherRequest struct {
	Model       string    `json:"model"`
	Messages    []Message `json:"messages"`
	Temperature float64   `json:"temperature"`
	MaxTokens   int       `json:"max_tokens"`
}

type togetherResponse struct {
	Choices []struct {
		Message Message `json:"message"`
	} `json:"choices"`
}

func (t *Together) Complete(ctx context.Context, req Request) (string, error) {
	if t.apiKey == "" {
		return "", ErrNotConfigured
	}

	body, err := json.Marshal(togetherRequest{
		Model:       t.model,
		Messages:    req.Messages,
		Temperature: req.Temperature,
		MaxTokens:   req.MaxTokens,
	})
	if err != nil {
		return "", err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, t.baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Authorization", "Bearer "+t.apiKey)
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := t.client.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return "", &StatusError{Provider: "together", StatusCode: resp.StatusCode, Body: string(b)}
	}

	var out togetherResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	if len(out.Choices) == 0 {
		return "", errors.New("together: empty choices")
	}
	return out.Choices[0].Message.Content, nil
}
