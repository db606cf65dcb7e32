package app

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yoockh/coachify/config"
	"github.com/yoockh/coachify/internal/logger"
	"github.com/yoockh/coachify/internal/providers/llm"
	"github.com/yoockh/coachify/internal/providers/stt"
	"github.com/yoockh/coachify/internal/providers/tts"
)

func TestNewProviders_DegradesWithoutCredentials(t *testing.T) {
	p := NewProviders(context.Background(), &config.Config{}, logger.Discard())
	defer p.Close()

	assert.IsType(t, &llm.Together{}, p.Coach)
	assert.Same(t, p.Coach, p.Trainer)
	assert.IsType(t, llm.Unconfigured{}, p.SEO)
	assert.IsType(t, stt.Passthrough{}, p.STT)
	assert.IsType(t, tts.Silent{}, p.TTS)
}

func TestNewProviders_WatsonxTrainer(t *testing.T) {
	cfg := &config.Config{}
	cfg.LLM.WatsonxAPIKey = "key"
	cfg.LLM.WatsonxURL = "https://us-south.ml.cloud.ibm.com"
	cfg.LLM.WatsonxProjectID = "proj"

	p := NewProviders(context.Background(), cfg, logger.Discard())
	assert.IsType(t, &llm.Watsonx{}, p.Trainer)
}

func TestSpeechSelection(t *testing.T) {
	log := logger.Discard()

	assert.IsType(t, &tts.Azure{}, textToSpeech(config.SpeechConfig{TTSProvider: "azure", AzureKey: "k", AzureRegion: "eastus"}, log))
	assert.IsType(t, &tts.ElevenLabs{}, textToSpeech(config.SpeechConfig{TTSProvider: "ElevenLabs", ElevenLabsAPIKey: "k"}, log))
	assert.IsType(t, tts.Silent{}, textToSpeech(config.SpeechConfig{TTSProvider: "azure"}, log))
	assert.IsType(t, tts.Silent{}, textToSpeech(config.SpeechConfig{TTSProvider: "polly"}, log))

	p := &Providers{}
	cfg := &config.Config{}
	cfg.Speech = config.SpeechConfig{STTProvider: "azure", AzureKey: "k", AzureRegion: "eastus"}
	assert.IsType(t, &stt.AzureSpeech{}, p.speechToText(context.Background(), cfg, log))

	cfg.Speech = config.SpeechConfig{STTProvider: "whisper"}
	assert.IsType(t, stt.Passthrough{}, p.speechToText(context.Background(), cfg, log))
	require.Empty(t, p.closers)
}
