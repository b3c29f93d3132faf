// Package config loads service settings from an optional YAML file and
// MATHDRILL_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/abhisek/mathdrill/internal/llm"
	"github.com/abhisek/mathdrill/internal/speech"
)

// EnvPrefix is prepended to every environment variable, e.g.
// MATHDRILL_SERVER_PORT for server.port.
const EnvPrefix = "MATHDRILL"

type Config struct {
	Server  ServerConfig  `mapstructure:"server" validate:"required"`
	Store   StoreConfig   `mapstructure:"store" validate:"required"`
	Session SessionConfig `mapstructure:"session" validate:"required"`
	LLM     LLMConfig     `mapstructure:"llm"`
	Speech  SpeechConfig  `mapstructure:"speech"`
}

type ServerConfig struct {
	Port        int      `mapstructure:"port" validate:"required,gt=0,lt=65536"`
	LogLevel    string   `mapstructure:"log_level" validate:"required,oneof=debug info warn error"`
	Mode        string   `mapstructure:"mode" validate:"required,oneof=dev prod"`
	CORSOrigins []string `mapstructure:"cors_origins"`
}

type StoreConfig struct {
	Driver     string        `mapstructure:"driver" validate:"required,oneof=memory sqlite redis"`
	Path       string        `mapstructure:"path"`
	RedisAddr  string        `mapstructure:"redis_addr" validate:"required_if=Driver redis"`
	SessionTTL time.Duration `mapstructure:"session_ttl" validate:"gte=0"`
}

type SessionConfig struct {
	DefaultQuestions int `mapstructure:"default_questions" validate:"gt=0,lte=100"`
}

// LLMConfig selects the help provider. Provider "auto" picks the first
// vendor whose standard API key variable is set.
type LLMConfig struct {
	Provider string        `mapstructure:"provider" validate:"omitempty,oneof=auto anthropic openai gemini openrouter mock"`
	APIKey   string        `mapstructure:"api_key"`
	Model    string        `mapstructure:"model"`
	BaseURL  string        `mapstructure:"base_url" validate:"omitempty,url"`
	Timeout  time.Duration `mapstructure:"timeout" validate:"gte=0"`
}

// SpeechConfig enables audio narration when APIKey is set.
type SpeechConfig struct {
	APIKey  string `mapstructure:"api_key"`
	BaseURL string `mapstructure:"base_url" validate:"omitempty,url"`
	Model   string `mapstructure:"model"`
	Voice   string `mapstructure:"voice"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.log_level", "info")
	v.SetDefault("server.mode", "dev")
	v.SetDefault("server.cors_origins", []string{"*"})

	v.SetDefault("store.driver", "memory")
	v.SetDefault("store.path", "")
	v.SetDefault("store.redis_addr", "")
	v.SetDefault("store.session_ttl", 24*time.Hour)

	v.SetDefault("session.default_questions", 10)

	v.SetDefault("llm.provider", "")
	v.SetDefault("llm.api_key", "")
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.base_url", "")
	v.SetDefault("llm.timeout", 30*time.Second)

	v.SetDefault("speech.api_key", "")
	v.SetDefault("speech.base_url", "")
	v.SetDefault("speech.model", "tts-1")
	v.SetDefault("speech.voice", "alloy")
}

// Load reads configuration. An empty path looks for mathdrill.yaml in the
// working directory and tolerates its absence; an explicit path must exist.
// Environment variables override file values.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("mathdrill")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks struct tags and cross-field rules.
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	if c.LLM.Provider != "auto" {
		if err := c.LLMConfig().Validate(); err != nil {
			return fmt.Errorf("invalid configuration: %w", err)
		}
	}
	return nil
}

// LLMConfig maps the llm section onto llm.Config.
func (c *Config) LLMConfig() llm.Config {
	if c.LLM.Provider == "auto" {
		cfg, ok := llm.DiscoverConfig()
		if !ok {
			return llm.DefaultConfig()
		}
		cfg.Model = c.LLM.Model
		cfg.Timeout = c.LLM.Timeout
		return cfg
	}

	cfg := llm.DefaultConfig()
	cfg.Provider = c.LLM.Provider
	cfg.APIKey = c.LLM.APIKey
	cfg.Model = c.LLM.Model
	cfg.BaseURL = c.LLM.BaseURL
	cfg.Timeout = c.LLM.Timeout
	return cfg
}

// SpeechEnabled reports whether audio narration is configured.
func (c *Config) SpeechEnabled() bool {
	return c.Speech.APIKey != ""
}

// SpeechConfig maps the speech section onto speech.Config.
func (c *Config) SpeechConfig() speech.Config {
	return speech.Config{
		APIKey:  c.Speech.APIKey,
		BaseURL: c.Speech.BaseURL,
		Model:   c.Speech.Model,
		Voice:   c.Speech.Voice,
	}
}
