package stt

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// AzureSpeech uses the Azure short-audio recognition REST endpoint.
// Audio is expected as 16 kHz mono PCM WAV.
type AzureSpeech struct {
	key      string
	endpoint string
	client   *http.Client
}

func NewAzureSpeech(key, region string) (*AzureSpeech, error) {
	if key == "" || region == "" {
		return nil, errors.New("azure speech key and region are required")
	}
	return &AzureSpeech{
		key:      key,
		endpoint: fmt.Sprintf("https://%s.stt.speech.microsoft.com/speech/recognition/conversation/cognitiveservices/v1", region),
		client:   &http.Client{Timeout: 30 * time.Second},
	}, nil
}

func (a *AzureSpeech) WithEndpoint(u string) *AzureSpeech {
	a.endpoint = u
	return a
}

func (a *AzureSpeech) Close() error { return nil }

type azureRecognition struct {
	RecognitionStatus string `json:"RecognitionStatus"`
	DisplayText       string `json:"DisplayText"`
}

func (a *AzureSpeech) Transcribe(ctx context.Context, audio []byte, language string) (string, float64, error) {
	if language == "" {
		language = "en-US"
	}
	q := url.Values{}
	q.Set("language", language)
	q.Set("format", "simple")

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint+"?"+q.Encode(), bytes.NewReader(audio))
	if err != nil {
		return "", 0, err
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", a.key)
	req.Header.Set("Content-Type", "audio/wav; codecs=audio/pcm; samplerate=16000")
	req.Header.Set("Accept", "application/json")

	resp, err := a.client.Do(req)
	if err != nil {
		return "", 0, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return "", 0, fmt.Errorf("azure stt: status %d: %s", resp.StatusCode, string(b))
	}

	var out azureRecognition
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", 0, err
	}
	if out.RecognitionStatus != "Success" {
		// NoMatch / InitialSilenceTimeout: nothing was said
		return "", 0, nil
	}
	return out.DisplayText, 1, nil
}
