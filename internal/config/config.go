package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/stockscope/stockscope/internal/core"
)

type Config struct {
	Server  ServerConfig  `mapstructure:"server"`
	Web     WebConfig     `mapstructure:"web"`
	Market  MarketConfig  `mapstructure:"market"`
	LLM     LLMConfig     `mapstructure:"llm"`
	Insight InsightConfig `mapstructure:"insight"`
	Archive ArchiveConfig `mapstructure:"archive"`
	Metrics MetricsConfig `mapstructure:"metrics"`
	Log     LogConfig     `mapstructure:"log"`
}

// ServerConfig holds the analysis API server settings.
type ServerConfig struct {
	Host        string `mapstructure:"host"`
	Port        int    `mapstructure:"port"`
	JobTTLHours int    `mapstructure:"job_ttl_hours"`
	MaxJobs     int    `mapstructure:"max_jobs"`
}

// WebConfig holds the viewer frontend settings. The viewer talks to the
// analysis API over HTTP, so it needs the API base URL.
type WebConfig struct {
	Host          string        `mapstructure:"host"`
	Port          int           `mapstructure:"port"`
	APIBaseURL    string        `mapstructure:"api_base_url"`
	TemplatesDir  string        `mapstructure:"templates_dir"`
	LookupTimeout time.Duration `mapstructure:"lookup_timeout"` // 0 means no timeout
}

// MarketConfig selects and configures the market data source.
type MarketConfig struct {
	Source string      `mapstructure:"source"` // "yahoo" or "fixture"
	Yahoo  YahooConfig `mapstructure:"yahoo"`
}

type YahooConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type LLMConfig struct {
	Provider string       `mapstructure:"provider"`
	Claude   ClaudeConfig `mapstructure:"claude"`
	OpenAI   OpenAIConfig `mapstructure:"openai"`
	Ollama   OllamaConfig `mapstructure:"ollama"`
}

type ClaudeConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type OpenAIConfig struct {
	APIKey string `mapstructure:"api_key"`
	Model  string `mapstructure:"model"`
}

type OllamaConfig struct {
	Endpoint string `mapstructure:"endpoint"`
	Model    string `mapstructure:"model"`
}

// InsightConfig controls the LLM analyst commentary in generated reports.
type InsightConfig struct {
	Enabled     bool    `mapstructure:"enabled"`
	MaxTokens   int     `mapstructure:"max_tokens"`
	Temperature float64 `mapstructure:"temperature"`
}

// ArchiveConfig selects where generated reports are stored.
type ArchiveConfig struct {
	Type string   `mapstructure:"type"` // "localfs" or "s3"
	Path string   `mapstructure:"path"` // For localfs
	S3   S3Config `mapstructure:"s3"`   // For S3
}

type S3Config struct {
	Bucket    string `mapstructure:"bucket"`
	Endpoint  string `mapstructure:"endpoint"`
	Region    string `mapstructure:"region"`
	AccessKey string `mapstructure:"access_key"`
	SecretKey string `mapstructure:"secret_key"`
	Prefix    string `mapstructure:"prefix"`
}

// MetricsConfig holds metrics configuration.
type MetricsConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	Path    string `mapstructure:"path"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Development bool `mapstructure:"development"`
}

// Load reads configuration from file
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetConfigFile(path)

	// Support environment variable overrides
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	// Expand environment variables in string values
	for _, key := range v.AllKeys() {
		val := v.GetString(key)
		if strings.HasPrefix(val, "${") && strings.HasSuffix(val, "}") {
			envKey := strings.TrimSuffix(strings.TrimPrefix(val, "${"), "}")
			v.Set(key, os.Getenv(envKey))
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	return &cfg, nil
}

// Defaults returns a config with sensible defaults. The API listens on 8000
// and the viewer points at it on localhost, so both commands run out of the
// box with no config file.
func Defaults() *Config {
	return &Config{
		Server: ServerConfig{
			Host:        "0.0.0.0",
			Port:        8000,
			JobTTLHours: 1,
			MaxJobs:     100,
		},
		Web: WebConfig{
			Host:          "0.0.0.0",
			Port:          8080,
			APIBaseURL:    "http://localhost:8000",
			LookupTimeout: 10 * time.Second,
		},
		Market: MarketConfig{
			Source: "yahoo",
			Yahoo: YahooConfig{
				Timeout: 10 * time.Second,
			},
		},
		Insight: InsightConfig{
			Enabled:     false,
			MaxTokens:   2500,
			Temperature: 0.3,
		},
		Archive: ArchiveConfig{
			Type: "localfs",
			Path: "reports",
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Path:    "/metrics",
		},
	}
}

// Validate checks the configuration for errors.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("server port must be between 1 and 65535, got %d", c.Server.Port))
	}
	if c.Web.Port < 1 || c.Web.Port > 65535 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("web port must be between 1 and 65535, got %d", c.Web.Port))
	}
	if c.Web.APIBaseURL == "" {
		return core.WrapError(core.ErrConfigMissing,
			fmt.Errorf("web api_base_url required"))
	}

	switch c.Market.Source {
	case "yahoo", "fixture":
	default:
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("unknown market source %q", c.Market.Source))
	}

	switch c.Archive.Type {
	case "", "localfs":
	case "s3":
		if c.Archive.S3.Bucket == "" {
			return core.WrapError(core.ErrConfigMissing,
				fmt.Errorf("s3 bucket required when archive type is s3"))
		}
	default:
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("unknown archive type %q", c.Archive.Type))
	}

	if c.Insight.Temperature < 0 || c.Insight.Temperature > 2 {
		return core.WrapError(core.ErrConfigInvalid,
			fmt.Errorf("insight temperature must be between 0 and 2, got %f", c.Insight.Temperature))
	}

	// LLM validation - if provider set, check config exists
	if c.LLM.Provider != "" {
		switch c.LLM.Provider {
		case "claude":
			if c.LLM.Claude.APIKey == "" {
				return core.WrapError(core.ErrConfigMissing,
					fmt.Errorf("claude api_key required when provider is claude"))
			}
		case "openai":
			if c.LLM.OpenAI.APIKey == "" {
				return core.WrapError(core.ErrConfigMissing,
					fmt.Errorf("openai api_key required when provider is openai"))
			}
		case "ollama":
			if c.LLM.Ollama.Endpoint == "" {
				return core.WrapError(core.ErrConfigMissing,
					fmt.Errorf("ollama endpoint required when provider is ollama"))
			}
		}
	}

	return nil
}
