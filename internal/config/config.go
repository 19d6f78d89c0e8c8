package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/abhisek/studyflow/internal/llm"
)

// Config holds all application configuration.
type Config struct {
	Locale     string           `mapstructure:"locale"`
	LLM        LLMConfig        `mapstructure:"llm"`
	Log        LogConfig        `mapstructure:"log"`
	Server     ServerConfig     `mapstructure:"server"`
	RequestLog RequestLogConfig `mapstructure:"request_log"`
}

// LLMConfig selects the provider and models.
type LLMConfig struct {
	Provider    string        `mapstructure:"provider"`
	Model       string        `mapstructure:"model"`
	ChatModel   string        `mapstructure:"chat_model"`
	BaseURL     string        `mapstructure:"base_url"`
	MaxAttempts int           `mapstructure:"max_attempts"`
	Timeout     time.Duration `mapstructure:"timeout"`

	// Per-provider credentials. Only the selected provider's key is used.
	GeminiAPIKey     string `mapstructure:"gemini_api_key"`
	AnthropicAPIKey  string `mapstructure:"anthropic_api_key"`
	OpenAIAPIKey     string `mapstructure:"openai_api_key"`
	OpenRouterAPIKey string `mapstructure:"openrouter_api_key"`
}

// LogConfig controls the zerolog output.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	// File receives TUI-mode logs. Empty resolves to the XDG state dir.
	File string `mapstructure:"file"`
}

// ServerConfig configures `studyflow serve`.
type ServerConfig struct {
	Addr    string `mapstructure:"addr"`
	GinMode string `mapstructure:"gin_mode"`
	// AllowedOrigins controls HTTP CORS and WebSocket origin validation.
	// Empty means all origins are permitted.
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
	SessionTTL     time.Duration `mapstructure:"session_ttl"`
	MaxUploadBytes int64         `mapstructure:"max_upload_bytes"`
}

// RequestLogConfig controls the SQLite LLM request log.
type RequestLogConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	DBPath  string `mapstructure:"db_path"`
}

// envPrefix is prepended to every environment override, e.g.
// STUDYFLOW_LLM_PROVIDER for llm.provider.
const envPrefix = "STUDYFLOW"

// Load reads configuration from, in increasing priority: defaults, an
// optional studyflow.yaml in dir or the user config dir, an optional .env
// in dir, and the process environment.
func Load(dir string) (*Config, error) {
	// .env is optional and never overrides variables already set.
	if err := godotenv.Load(filepath.Join(dir, ".env")); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("load .env: %w", err)
	}

	v := viper.New()
	v.SetConfigName("studyflow")
	v.SetConfigType("yaml")
	v.AddConfigPath(dir)
	if cfgDir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(cfgDir, "studyflow"))
	}

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Credentials also honor the unprefixed names other tools use.
	bindings := map[string][]string{
		"llm.gemini_api_key":     {"STUDYFLOW_GEMINI_API_KEY", "GEMINI_API_KEY", "API_KEY"},
		"llm.anthropic_api_key":  {"STUDYFLOW_ANTHROPIC_API_KEY", "ANTHROPIC_API_KEY"},
		"llm.openai_api_key":     {"STUDYFLOW_OPENAI_API_KEY", "OPENAI_API_KEY"},
		"llm.openrouter_api_key": {"STUDYFLOW_OPENROUTER_API_KEY", "OPENROUTER_API_KEY"},
	}
	for key, envs := range bindings {
		if err := v.BindEnv(append([]string{key}, envs...)...); err != nil {
			return nil, fmt.Errorf("bind %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	cfg.Server.AllowedOrigins = parseOrigins(cfg.Server.AllowedOrigins)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	def := llm.DefaultConfig()

	v.SetDefault("locale", "en")

	v.SetDefault("llm.provider", def.Provider)
	v.SetDefault("llm.model", "")
	v.SetDefault("llm.chat_model", "")
	v.SetDefault("llm.base_url", "")
	v.SetDefault("llm.max_attempts", def.Retry.MaxAttempts)
	v.SetDefault("llm.timeout", def.Timeout)
	v.SetDefault("llm.gemini_api_key", "")
	v.SetDefault("llm.anthropic_api_key", "")
	v.SetDefault("llm.openai_api_key", "")
	v.SetDefault("llm.openrouter_api_key", "")

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "pretty")
	v.SetDefault("log.file", "")

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.gin_mode", "release")
	v.SetDefault("server.allowed_origins", []string{})
	v.SetDefault("server.session_ttl", 2*time.Hour)
	v.SetDefault("server.max_upload_bytes", 10<<20)

	v.SetDefault("request_log.enabled", true)
	v.SetDefault("request_log.db_path", "")
}

// Validate rejects settings no component can work with.
func (c *Config) Validate() error {
	switch c.Locale {
	case "en", "es":
	default:
		return fmt.Errorf("unsupported locale %q (want en or es)", c.Locale)
	}
	switch c.Log.Format {
	case "json", "pretty":
	default:
		return fmt.Errorf("unsupported log format %q (want json or pretty)", c.Log.Format)
	}
	if c.Server.SessionTTL <= 0 {
		return fmt.Errorf("server.session_ttl must be positive")
	}
	return c.LLMSettings().Validate()
}

// APIKey returns the credential of the selected provider.
func (c *Config) APIKey() string {
	switch c.LLM.Provider {
	case "gemini":
		return c.LLM.GeminiAPIKey
	case "anthropic":
		return c.LLM.AnthropicAPIKey
	case "openai":
		return c.LLM.OpenAIAPIKey
	case "openrouter":
		return c.LLM.OpenRouterAPIKey
	}
	return ""
}

// LLMSettings converts the file/env view into the provider factory's Config.
func (c *Config) LLMSettings() llm.Config {
	out := llm.DefaultConfig()
	out.Provider = c.LLM.Provider
	out.APIKey = c.APIKey()
	out.Model = c.LLM.Model
	out.ChatModel = c.LLM.ChatModel
	out.BaseURL = c.LLM.BaseURL
	out.Retry.MaxAttempts = c.LLM.MaxAttempts
	out.Timeout = c.LLM.Timeout
	return out.WithProviderDefaults()
}

// parseOrigins accepts both YAML lists and a single comma-separated env value.
func parseOrigins(raw []string) []string {
	var origins []string
	for _, entry := range raw {
		for _, p := range strings.Split(entry, ",") {
			if trimmed := strings.TrimSpace(p); trimmed != "" {
				origins = append(origins, trimmed)
			}
		}
	}
	return origins
}
