package app

import (
	"context"
	"errors"
	"strings"

	"github.com/sirupsen/logrus"
	"google.golang.org/api/option"

	"github.com/yoockh/coachify/config"
	"github.com/yoockh/coachify/internal/providers/llm"
	"github.com/yoockh/coachify/internal/providers/stt"
	"github.com/yoockh/coachify/internal/providers/tts"
)

// Providers are the external AI services picked from configuration. Missing
// credentials degrade a feature instead of failing startup.
type Providers struct {
	STT     stt.Provider
	TTS     tts.Synthesizer
	Coach   llm.Provider
	Trainer llm.Provider
	SEO     llm.Provider

	closers []func() error
}

func NewProviders(ctx context.Context, cfg *config.Config, log *logrus.Logger) *Providers {
	p := &Providers{}

	together := llm.NewTogether(cfg.LLM.TogetherAPIKey, cfg.LLM.TogetherModel)
	if cfg.LLM.TogetherAPIKey == "" {
		log.Warn("TOGETHER_API_KEY not set; coaching replies use fallback text")
	}
	p.Coach = together

	wx := llm.NewWatsonx(cfg.LLM.WatsonxAPIKey, cfg.LLM.WatsonxURL, cfg.LLM.WatsonxProjectID, cfg.LLM.WatsonxModel)
	if wx.Configured() {
		p.Trainer = wx
	} else {
		log.Info("watsonx not configured; trainer uses Together AI")
		p.Trainer = together
	}

	p.SEO = p.gemini(ctx, cfg, log)
	p.STT = p.speechToText(ctx, cfg, log)
	p.TTS = textToSpeech(cfg.Speech, log)
	return p
}

func googleOptions(credentialsFile string) []option.ClientOption {
	if credentialsFile == "" {
		return nil
	}
	return []option.ClientOption{option.WithCredentialsFile(credentialsFile)}
}

func (p *Providers) gemini(ctx context.Context, cfg *config.Config, log *logrus.Logger) llm.Provider {
	if cfg.LLM.GoogleProject == "" {
		log.Warn("GOOGLE_CLOUD_PROJECT not set; social posts skip SEO optimization")
		return llm.Unconfigured{}
	}
	g, err := llm.NewVertexGemini(ctx, cfg.LLM.GoogleProject, cfg.LLM.VertexLocation, cfg.LLM.GeminiModel,
		googleOptions(cfg.Storage.CredentialsFile)...)
	if err != nil {
		log.WithError(err).Warn("vertex gemini unavailable; social posts skip SEO optimization")
		return llm.Unconfigured{}
	}
	p.closers = append(p.closers, g.Close)
	return g
}

func (p *Providers) speechToText(ctx context.Context, cfg *config.Config, log *logrus.Logger) stt.Provider {
	switch strings.ToLower(cfg.Speech.STTProvider) {
	case "google":
		g, err := stt.NewGoogleSpeech(ctx, cfg.Storage.CredentialsFile)
		if err != nil {
			log.WithError(err).Warn("google speech unavailable; using text passthrough")
			return stt.Passthrough{}
		}
		p.closers = append(p.closers, g.Close)
		return g
	case "azure":
		a, err := stt.NewAzureSpeech(cfg.Speech.AzureKey, cfg.Speech.AzureRegion)
		if err != nil {
			log.WithError(err).Warn("azure speech unavailable; using text passthrough")
			return stt.Passthrough{}
		}
		return a
	case "":
		return stt.Passthrough{}
	default:
		log.WithField("stt_provider", cfg.Speech.STTProvider).Warn("unknown STT provider; using text passthrough")
		return stt.Passthrough{}
	}
}

func textToSpeech(c config.SpeechConfig, log *logrus.Logger) tts.Synthesizer {
	var (
		s   tts.Synthesizer
		err error
	)
	switch strings.ToLower(c.TTSProvider) {
	case "azure":
		s, err = tts.NewAzure(c.AzureKey, c.AzureRegion, c.AzureVoice, c.Language)
	case "elevenlabs":
		s, err = tts.NewElevenLabs(c.ElevenLabsAPIKey, c.ElevenLabsVoiceID)
	case "":
		return tts.Silent{}
	default:
		err = errors.New("unknown TTS provider " + c.TTSProvider)
	}
	if err != nil {
		log.WithError(err).Warn("speech synthesis disabled")
		return tts.Silent{}
	}
	return s
}

// Close releases SDK clients.
func (p *Providers) Close() error {
	var errs []error
	for _, c := range p.closers {
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
