package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap/zapcore"

	"github.com/bgunnarsson/askcourses/internal/llm"
)

type LookupFunc func(string) (string, bool)

type Config struct {
	Database DatabaseConfig
	AI       AIConfig
	Log      LogConfig

	// SchemaFile overrides the embedded schema descriptor when set.
	SchemaFile string
}

type DatabaseConfig struct {
	Driver       string
	DSN          string
	QueryTimeout time.Duration
}

type AIConfig struct {
	BaseURL string
	APIKey  string
	Model   string
	Timeout time.Duration
}

type LogConfig struct {
	Level zapcore.Level
}

func LoadFromEnv() (Config, error) {
	return Load(os.LookupEnv)
}

func Load(lookup LookupFunc) (Config, error) {
	if lookup == nil {
		return Config{}, fmt.Errorf("lookup function is required")
	}

	cfg := Defaults()

	if err := applyString(lookup, "ASKCOURSES_DRIVER", &cfg.Database.Driver); err != nil {
		return Config{}, err
	}
	if err := applyString(lookup, "ASKCOURSES_DB", &cfg.Database.DSN); err != nil {
		return Config{}, err
	}
	if err := applyDuration(lookup, "ASKCOURSES_QUERY_TIMEOUT", &cfg.Database.QueryTimeout); err != nil {
		return Config{}, err
	}
	if err := applyString(lookup, "OPENAI_BASE_URL", &cfg.AI.BaseURL); err != nil {
		return Config{}, err
	}
	if err := applyString(lookup, "OPENAI_API_KEY", &cfg.AI.APIKey); err != nil {
		return Config{}, err
	}
	if err := applyString(lookup, "ASKCOURSES_MODEL", &cfg.AI.Model); err != nil {
		return Config{}, err
	}
	if err := applyDuration(lookup, "ASKCOURSES_LLM_TIMEOUT", &cfg.AI.Timeout); err != nil {
		return Config{}, err
	}
	if err := applyString(lookup, "ASKCOURSES_SCHEMA_FILE", &cfg.SchemaFile); err != nil {
		return Config{}, err
	}
	if err := applyLogLevel(lookup, "ASKCOURSES_LOG_LEVEL", &cfg.Log.Level); err != nil {
		return Config{}, err
	}

	if cfg.Database.DSN == "" {
		return Config{}, fmt.Errorf("database path is required")
	}
	if cfg.AI.Model == "" {
		return Config{}, fmt.Errorf("model is required")
	}
	return cfg, nil
}

func Defaults() Config {
	return Config{
		Database: DatabaseConfig{
			Driver:       "sqlite",
			DSN:          "courses.sqlite3",
			QueryTimeout: 30 * time.Second,
		},
		AI: AIConfig{
			BaseURL: llm.DefaultBaseURL,
			Model:   "gpt-4-turbo-preview",
			Timeout: 60 * time.Second,
		},
		Log: LogConfig{
			Level: zapcore.WarnLevel,
		},
	}
}

func applyString(lookup LookupFunc, key string, dst *string) error {
	raw, ok := lookup(key)
	if !ok {
		return nil
	}
	*dst = strings.TrimSpace(raw)
	return nil
}

func applyDuration(lookup LookupFunc, key string, dst *time.Duration) error {
	raw, ok := lookup(key)
	if !ok {
		return nil
	}
	value, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	if value < 0 {
		return fmt.Errorf("invalid %s: negative duration %s", key, value)
	}
	*dst = value
	return nil
}

func applyLogLevel(lookup LookupFunc, key string, dst *zapcore.Level) error {
	raw, ok := lookup(key)
	if !ok {
		return nil
	}
	level, err := zapcore.ParseLevel(strings.TrimSpace(raw))
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	*dst = level
	return nil
}
