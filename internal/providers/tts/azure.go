package tts

import (
	"context"
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"
)

const azureOutputFormat = "audio-24khz-48kbitrate-mono-mp3"

type Azure struct {
	key      string
	voice    string
	language string
	endpoint string
	client   *http.Client
}

func NewAzure(key, region, voice, language string) (*Azure, error) {
	if key == "" || region == "" {
		return nil, errors.New("azure speech key and region are required")
	}
	if voice == "" {
		voice = "en-US-GuyNeural"
	}
	if language == "" {
		language = "en-US"
	}
	return &Azure{
		key:      key,
		voice:    voice,
		language: language,
		endpoint: fmt.Sprintf("https://%s.tts.speech.microsoft.com/cognitiveservices/v1", region),
		client:   &http.Client{Timeout: 30 * time.Second},
	}, nil
}

func (a *Azure) WithEndpoint(u string) *Azure {
	a.endpoint = u
	return a
}

func (a *Azure) ContentType() string { return "audio/mpeg" }

func (a *Azure) Synthesize(ctx context.Context, text string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, a.endpoint, strings.NewReader(a.ssml(text)))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Ocp-Apim-Subscription-Key", a.key)
	req.Header.Set("Content-Type", "application/ssml+xml")
	req.Header.Set("X-Microsoft-OutputFormat", azureOutputFormat)
	req.Header.Set("User-Agent", "coachify")

	resp, err := a.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 4<<10))
		return nil, fmt.Errorf("azure tts: status %d: %s", resp.StatusCode, string(b))
	}
	return io.ReadAll(resp.Body)
}

func (a *Azure) ssml(text string) string {
	var esc strings.Builder
	_ = xml.EscapeText(&esc, []byte(text))
	return fmt.Sprintf(
		`<speak version="1.0" xml:lang="%s"><voice xml:lang="%s" name="%s">%s</voice></speak>`,
		a.language, a.language, a.voice, esc.String(),
	)
}
