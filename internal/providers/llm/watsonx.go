package llm

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"
)

const (
	ibmIAMURL          = "https://iam.cloud.ibm.com"
	watsonxAPIVersion  = "2023-05-29"
	iamTokenSafetySkew = time.Minute
)

// Watsonx calls IBM watsonx.ai text generation. The IAM bearer token is
// exchanged from the API key and cached until shortly before it expires.
type Watsonx struct {
	apiKey    string
	baseURL   string
	iamURL    string
	projectID string
	model     string
	client    *http.Client

	mu       sync.Mutex
	token    string
	tokenExp time.Time
}

func NewWatsonx(apiKey, baseURL, projectID, model string) *Watsonx {
	return &Watsonx{
		apiKey:    apiKey,
		baseURL:   strings.TrimRight(baseURL, "/"),
		iamURL:    ibmIAMURL,
		projectID: projectID,
		model:     model,
		client:    &http.Client{Timeout: 90 * time.Second},
	}
}

func (w *Watsonx) WithIAMURL(u string) *Watsonx {
	w.iamURL = strings.TrimRight(u, "/")
	return w
}

func (w *Watsonx) Configured() bool {
	return w.apiKey != "" && w.projectID != "" && w.baseURL != ""
}

type watsonxParams struct {
	DecodingMethod string  `json:"decoding_method"`
	Temperature    float64 `json:"temperature,omitempty"`
	MinNewTokens   int     `json:"min_new_tokens"`
	MaxNewTokens   int     `json:"max_new_tokens"`
}

type watsonxRequest struct {
	ModelID    string        `json:"model_id"`
	Input      string        `json:"input"`
	Parameters watsonxParams `json:"parameters"`
	ProjectID  string        `json:"project_id"`
}

type watsonxResponse struct {
	Results []struct {
		GeneratedText string `json:"generated_text"`
	} `json:"results"`
}

func (w *Watsonx) Complete(ctx context.Context, req Request) (string, error) {
	if !w.Configured() {
		return "", ErrNotConfigured
	}

	token, err := w.bearer(ctx)
	if err != nil {
		return "", err
	}

	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 1024
	}
	body, err := json.Marshal(watsonxRequest{
		ModelID: w.model,
		Input:   flatten(req.Messages),
		Parameters: watsonxParams{
			DecodingMethod: "greedy",
			Temperature:    req.Temperature,
			MinNewTokens:   10,
			MaxNewTokens:   maxTokens,
		},
		ProjectID: w.projectID,
	})
	if err != nil {
		return "", err
	}

	endpoint := w.baseURL + "/ml/v1/text/generation?version=" + watsonxAPIVersion
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	httpReq.Header.Set("Authorization", "Bearer "+token)
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "application/json")

	resp, err := w.client.Do(httpReq)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return "", &StatusError{Provider: "watsonx", StatusCode: resp.StatusCode, Body: string(b)}
	}

	var out watsonxResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", err
	}
	for _, r := range out.Results {
		if s := strings.TrimSpace(r.GeneratedText); s != "" {
			return s, nil
		}
	}
	return "", errors.New("watsonx: no generated text")
}

func (w *Watsonx) bearer(ctx context.Context) (string, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.token != "" && time.Now().Before(w.tokenExp) {
		return w.token, nil
	}

	form := url.Values{}
	form.Set("grant_type", "urn:ibm:params:oauth:grant-type:apikey")
	form.Set("apikey", w.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.iamURL+"/identity/token", strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := w.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return "", &StatusError{Provider: "ibm-iam", StatusCode: resp.StatusCode, Body: string(b)}
	}

	var tok struct {
		AccessToken string `json:"access_token"`
		ExpiresIn   int64  `json:"expires_in"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&tok); err != nil {
		return "", err
	}
	if tok.AccessToken == "" {
		return "", errors.New("ibm-iam: empty access token")
	}

	w.token = tok.AccessToken
	w.tokenExp = time.Now().Add(time.Duration(tok.ExpiresIn)*time.Second - iamTokenSafetySkew)
	return w.token, nil
}
