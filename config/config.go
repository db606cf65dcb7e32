package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Mongo    MongoConfig    `mapstructure:"mongo"`
	Redis    RedisConfig    `mapstructure:"redis"`
	Auth     AuthConfig     `mapstructure:"auth"`
	Facebook FacebookConfig `mapstructure:"facebook"`
	Unsplash UnsplashConfig `mapstructure:"unsplash"`
	LLM      LLMConfig      `mapstructure:"llm"`
	Speech   SpeechConfig   `mapstructure:"speech"`
	Storage  StorageConfig  `mapstructure:"storage"`
}

type ServerConfig struct {
	Port            string        `mapstructure:"port"`
	LogLevel        string        `mapstructure:"log_level"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
	FrontendURL     string        `mapstructure:"frontend_url"`
}

type DatabaseConfig struct {
	URL             string        `mapstructure:"url"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
}

type MongoConfig struct {
	URI       string        `mapstructure:"uri"`
	Database  string        `mapstructure:"database"`
	BufferTTL time.Duration `mapstructure:"buffer_ttl"`
}

type RedisConfig struct {
	Addr string `mapstructure:"addr"`
}

type AuthConfig struct {
	JWTSecret string        `mapstructure:"jwt_secret"`
	JWTExpiry time.Duration `mapstructure:"jwt_expiry"`
}

type FacebookConfig struct {
	AppID       string `mapstructure:"app_id"`
	AppSecret   string `mapstructure:"app_secret"`
	RedirectURI string `mapstructure:"redirect_uri"`
	APIVersion  string `mapstructure:"api_version"`
}

type UnsplashConfig struct {
	AccessKey     string        `mapstructure:"access_key"`
	ApplicationID string        `mapstructure:"application_id"`
	CacheTTL      time.Duration `mapstructure:"cache_ttl"`
}

type LLMConfig struct {
	TogetherAPIKey   string `mapstructure:"together_api_key"`
	TogetherModel    string `mapstructure:"together_model"`
	GoogleProject    string `mapstructure:"google_project"`
	VertexLocation   string `mapstructure:"vertex_location"`
	GeminiModel      string `mapstructure:"gemini_model"`
	WatsonxAPIKey    string `mapstructure:"watsonx_api_key"`
	WatsonxURL       string `mapstructure:"watsonx_url"`
	WatsonxProjectID string `mapstructure:"watsonx_project_id"`
	WatsonxModel     string `mapstructure:"watsonx_model"`
}

type SpeechConfig struct {
	STTProvider       string `mapstructure:"stt_provider"` // google|azure|"" (text passthrough)
	TTSProvider       string `mapstructure:"tts_provider"` // azure|elevenlabs|"" (no audio)
	Language          string `mapstructure:"language"`
	AzureKey          string `mapstructure:"azure_key"`
	AzureRegion       string `mapstructure:"azure_region"`
	AzureVoice        string `mapstructure:"azure_voice"`
	ElevenLabsAPIKey  string `mapstructure:"elevenlabs_api_key"`
	ElevenLabsVoiceID string `mapstructure:"elevenlabs_voice_id"`
}

type StorageConfig struct {
	GCSBucket       string `mapstructure:"gcs_bucket"`
	CredentialsFile string `mapstructure:"credentials_file"`
}

// Load reads configuration from an optional config file and the environment.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)
	bindEnv(v)

	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if !errors.As(err, &nf) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return &cfg, nil
}

// Validate reports settings the server cannot start without.
func (c *Config) Validate() error {
	var missing []string
	if c.Database.URL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if c.Mongo.URI == "" {
		missing = append(missing, "MONGO_URI")
	}
	if c.Auth.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}
	if len(missing) > 0 {
		return fmt.Errorf("missing required configuration: %s", strings.Join(missing, ", "))
	}
	return nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8000")
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.shutdown_timeout", "15s")

	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 100)
	v.SetDefault("database.conn_max_lifetime", "30m")
	v.SetDefault("database.conn_max_idle_time", "5m")

	v.SetDefault("mongo.database", "coachify")
	v.SetDefault("mongo.buffer_ttl", "24h")

	v.SetDefault("auth.jwt_expiry", "30m")

	v.SetDefault("facebook.redirect_uri", "http://localhost:8000/auth/facebook/callback")
	v.SetDefault("facebook.api_version", "v18.0")

	v.SetDefault("unsplash.cache_ttl", "10m")

	v.SetDefault("llm.together_model", "mistralai/Mixtral-8x7B-Instruct-v0.1")
	v.SetDefault("llm.vertex_location", "us-central1")
	v.SetDefault("llm.gemini_model", "gemini-1.5-flash")
	v.SetDefault("llm.watsonx_url", "https://us-south.ml.cloud.ibm.com")
	v.SetDefault("llm.watsonx_model", "mistralai/mixtral-8x7b-instruct-v01")

	v.SetDefault("speech.language", "en-US")
	v.SetDefault("speech.azure_voice", "en-US-GuyNeural")
	v.SetDefault("speech.elevenlabs_voice_id", "21m00Tcm4TlvDq8ikWAM")
}

// The deployment uses flat env names; map them onto the nested keys.
func bindEnv(v *viper.Viper) {
	_ = v.BindEnv("server.port", "PORT")
	_ = v.BindEnv("server.log_level", "LOG_LEVEL")
	_ = v.BindEnv("server.frontend_url", "FRONTEND_URL")

	_ = v.BindEnv("database.url", "DATABASE_URL", "POSTGRES_URI")

	_ = v.BindEnv("mongo.uri", "MONGO_URI")
	_ = v.BindEnv("mongo.database", "MONGO_DB")

	_ = v.BindEnv("redis.addr", "REDIS_ADDR", "REDIS_URI", "REDIS_URL")

	_ = v.BindEnv("auth.jwt_secret", "JWT_SECRET")
	_ = v.BindEnv("auth.jwt_expiry", "JWT_EXPIRY")

	_ = v.BindEnv("facebook.app_id", "FACEBOOK_APP_ID")
	_ = v.BindEnv("facebook.app_secret", "FACEBOOK_APP_SECRET")
	_ = v.BindEnv("facebook.redirect_uri", "FACEBOOK_REDIRECT_URI")

	_ = v.BindEnv("unsplash.access_key", "UNSPLASH_ACCESS_KEY")
	_ = v.BindEnv("unsplash.application_id", "UNSPLASH_APPLICATION_ID")

	_ = v.BindEnv("llm.together_api_key", "TOGETHER_API_KEY")
	_ = v.BindEnv("llm.google_project", "GOOGLE_CLOUD_PROJECT")
	_ = v.BindEnv("llm.vertex_location", "VERTEX_LOCATION")
	_ = v.BindEnv("llm.gemini_model", "GEMINI_MODEL")
	_ = v.BindEnv("llm.watsonx_api_key", "WATSONX_API_KEY")
	_ = v.BindEnv("llm.watsonx_url", "WATSONX_URL")
	_ = v.BindEnv("llm.watsonx_project_id", "WATSONX_PROJECT_ID")

	_ = v.BindEnv("speech.stt_provider", "STT_PROVIDER")
	_ = v.BindEnv("speech.tts_provider", "TTS_PROVIDER")
	_ = v.BindEnv("speech.azure_key", "AZURE_SPEECH_KEY")
	_ = v.BindEnv("speech.azure_region", "AZURE_SPEECH_REGION")
	_ = v.BindEnv("speech.azure_voice", "AZURE_SPEECH_VOICE")
	_ = v.BindEnv("speech.elevenlabs_api_key", "ELEVENLABS_API_KEY")
	_ = v.BindEnv("speech.elevenlabs_voice_id", "ELEVENLABS_VOICE_ID")

	_ = v.BindEnv("storage.gcs_bucket", "GCS_BUCKET")
	_ = v.BindEnv("storage.credentials_file", "GOOGLE_APPLICATION_CREDENTIALS")
}
