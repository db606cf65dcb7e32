package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "JWT_EXPIRY", "MONGO_DB", "LANGUAGE"} {
		t.Setenv(k, "")
	}
	t.Setenv("DATABASE_URL", "postgres://localhost/coachify")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8000", cfg.Server.Port)
	assert.Equal(t, 30*time.Minute, cfg.Auth.JWTExpiry)
	assert.Equal(t, "coachify", cfg.Mongo.Database)
	assert.Equal(t, "v18.0", cfg.Facebook.APIVersion)
	assert.Equal(t, 10*time.Minute, cfg.Unsplash.CacheTTL)
	assert.Equal(t, "en-US", cfg.Speech.Language)
	assert.Equal(t, "postgres://localhost/coachify", cfg.Database.URL)
}

func TestLoad_FlatEnvNames(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("JWT_EXPIRY", "45m")
	t.Setenv("REDIS_URL", "redis://cache:6379/0")
	t.Setenv("FACEBOOK_APP_ID", "app-1")
	t.Setenv("TTS_PROVIDER", "elevenlabs")
	t.Setenv("FRONTEND_URL", "https://app.coachify.io")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, "s3cret", cfg.Auth.JWTSecret)
	assert.Equal(t, 45*time.Minute, cfg.Auth.JWTExpiry)
	assert.Equal(t, "redis://cache:6379/0", cfg.Redis.Addr)
	assert.Equal(t, "app-1", cfg.Facebook.AppID)
	assert.Equal(t, "elevenlabs", cfg.Speech.TTSProvider)
	assert.Equal(t, "https://app.coachify.io", cfg.Server.FrontendURL)
}

func TestValidate(t *testing.T) {
	cfg := &Config{}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
	assert.Contains(t, err.Error(), "JWT_SECRET")

	cfg.Database.URL = "postgres://x"
	cfg.Mongo.URI = "mongodb://x"
	cfg.Auth.JWTSecret = "k"
	assert.NoError(t, cfg.Validate())
}

func TestVoiceIndexes_NamedAndUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, ci := range voiceIndexes() {
		require.NotEmpty(t, ci.models, ci.collection)
		for _, m := range ci.models {
			require.NotNil(t, m.Options)
			require.NotNil(t, m.Options.Name)
			key := ci.collection + "." + *m.Options.Name
			assert.False(t, seen[key], key)
			seen[key] = true
		}
	}
	assert.True(t, seen["realtime_buffer.ttl_expires_at"])
	assert.True(t, seen["voice_sessions.uniq_session_id"])
}
