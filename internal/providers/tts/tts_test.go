package tts

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAzure_Synthesize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "key", r.Header.Get("Ocp-Apim-Subscription-Key"))
		assert.Equal(t, azureOutputFormat, r.Header.Get("X-Microsoft-OutputFormat"))
		b, _ := io.ReadAll(r.Body)
		assert.Contains(t, string(b), `name="en-US-GuyNeural"`)
		assert.Contains(t, string(b), "R&amp;D budget")
		_, _ = w.Write([]byte("mp3-bytes"))
	}))
	defer srv.Close()

	a, err := NewAzure("key", "eastus", "", "")
	require.NoError(t, err)
	audio, err := a.WithEndpoint(srv.URL).Synthesize(context.Background(), "R&D budget")
	require.NoError(t, err)
	assert.Equal(t, []byte("mp3-bytes"), audio)
	assert.Equal(t, "audio/mpeg", a.ContentType())
}

func TestAzure_ErrorStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
	}))
	defer srv.Close()

	a, err := NewAzure("key", "eastus", "", "")
	require.NoError(t, err)
	_, err = a.WithEndpoint(srv.URL).Synthesize(context.Background(), "hi")
	assert.Error(t, err)
}

func TestElevenLabs_Synthesize(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/text-to-speech/voice-1", r.URL.Path)
		assert.Equal(t, "xi", r.Header.Get("xi-api-key"))

		var body elevenLabsRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.Equal(t, "hello", body.Text)
		assert.Equal(t, 0.5, body.VoiceSettings.Stability)
		assert.Equal(t, 0.75, body.VoiceSettings.SimilarityBoost)
		_, _ = w.Write([]byte("audio"))
	}))
	defer srv.Close()

	e, err := NewElevenLabs("xi", "voice-1")
	require.NoError(t, err)
	audio, err := e.WithBaseURL(srv.URL).Synthesize(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, []byte("audio"), audio)
}

func TestSilent(t *testing.T) {
	audio, err := Silent{}.Synthesize(context.Background(), "x")
	require.NoError(t, err)
	assert.Nil(t, audio)
}
