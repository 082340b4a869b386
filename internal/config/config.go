package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all runtime settings, read from environment variables.
type Config struct {
	Port string

	GeminiModel     string
	Temperature     float32
	MaxOutputTokens int32

	Voice         string
	VoiceLanguage string

	AudioBucket     string
	SpeechLanguage  string
	SampleRateHertz int32
	PollInterval    time.Duration
	PollTimeout     time.Duration

	SessionTTL    time.Duration
	PromptFile    string
	LogLevel      string
	AllowedOrigin string
}

func Load() (*Config, error) {
	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		GeminiModel:     getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		Temperature:     getEnvFloat32("GEMINI_TEMPERATURE", 0.5),
		MaxOutputTokens: int32(getEnvInt("GEMINI_MAX_OUTPUT_TOKENS", 2048)),
		Voice:           getEnv("TTS_VOICE", "en-US-Neural2-C"),
		VoiceLanguage:   getEnv("TTS_LANGUAGE", "en-US"),
		AudioBucket:     getEnv("AUDIO_BUCKET", ""),
		SpeechLanguage:  getEnv("STT_LANGUAGE", "en-US"),
		SampleRateHertz: int32(getEnvInt("STT_SAMPLE_RATE", 48000)),
		PollInterval:    getEnvDuration("TRANSCRIBE_POLL_INTERVAL", 5*time.Second),
		PollTimeout:     getEnvDuration("TRANSCRIBE_POLL_TIMEOUT", 60*time.Second),
		SessionTTL:      getEnvDuration("SESSION_TTL", 60*time.Minute),
		PromptFile:      getEnv("PROMPT_FILE", ""),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
		AllowedOrigin:   getEnv("ALLOWED_ORIGIN", "*"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if c.Port == "" {
		return fmt.Errorf("PORT cannot be empty")
	}
	if c.AudioBucket == "" {
		return fmt.Errorf("AUDIO_BUCKET cannot be empty")
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("GEMINI_TEMPERATURE must be between 0 and 2")
	}
	if c.MaxOutputTokens <= 0 {
		return fmt.Errorf("GEMINI_MAX_OUTPUT_TOKENS must be > 0")
	}
	if c.PollInterval <= 0 {
		return fmt.Errorf("TRANSCRIBE_POLL_INTERVAL must be > 0")
	}
	if c.PollTimeout < c.PollInterval {
		return fmt.Errorf("TRANSCRIBE_POLL_TIMEOUT must be >= TRANSCRIBE_POLL_INTERVAL")
	}
	if c.SessionTTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be > 0")
	}
	return nil
}

// IsLambda reports whether the process runs inside the AWS Lambda runtime.
func IsLambda() bool {
	return os.Getenv("LAMBDA_TASK_ROOT") != ""
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok && value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	n, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return n
}

func getEnvFloat32(key string, fallback float32) float32 {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(value), 32)
	if err != nil {
		return fallback
	}
	return float32(f)
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}
	d, err := time.ParseDuration(strings.TrimSpace(value))
	if err != nil {
		return fallback
	}
	return d
}
