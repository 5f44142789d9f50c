package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config aggregates runtime configuration used across the service.
type Config struct {
	HTTP     HTTPConfig     `yaml:"http"`
	Pipeline PipelineConfig `yaml:"pipeline"`
}

// HTTPConfig controls server level behavior.
type HTTPConfig struct {
	Address        string          `yaml:"address"`
	ReadTimeout    time.Duration   `yaml:"readTimeout"`
	WriteTimeout   time.Duration   `yaml:"writeTimeout"`
	MaxUploadBytes int64           `yaml:"maxUploadBytes"`
	AllowedOrigins []string        `yaml:"allowedOrigins"`
	RateLimit      RateLimitConfig `yaml:"rateLimit"`
}

// RateLimitConfig drives the request limiting middleware.
type RateLimitConfig struct {
	Enabled           bool `yaml:"enabled"`
	RequestsPerMinute int  `yaml:"requestsPerMinute"`
	Burst             int  `yaml:"burst"`
}

// PipelineConfig controls the corrector and mapper defaults.
type PipelineConfig struct {
	// FAQColumn forces the FAQ text column; empty means auto-detect.
	FAQColumn string `yaml:"faqColumn"`
	// Threshold is the fuzzy acceptance cutoff in [0, 100].
	Threshold int `yaml:"threshold"`
	// KeywordFallback toggles the keyword stage for unmapped rows.
	KeywordFallback bool `yaml:"keywordFallback"`
	// Keywords are evaluated in list order, first match wins.
	Keywords []KeywordConfig `yaml:"keywords"`
}

// KeywordConfig is one ordered keyword-to-canonical-text mapping.
type KeywordConfig struct {
	Keyword string `yaml:"keyword"`
	Target  string `yaml:"target"`
}

// Load reads configuration from a YAML file and environment variables.
func Load() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		if err := hydrateFromFile(cfg, path); err != nil {
			return nil, err
		}
	} else if _, err := os.Stat("configs/config.yaml"); err == nil {
		if err := hydrateFromFile(cfg, "configs/config.yaml"); err != nil {
			return nil, err
		}
	}

	applyEnvOverrides(cfg)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

func hydrateFromFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func applyEnvOverrides(cfg *Config) {
	if v := os.Getenv("HTTP_ADDRESS"); v != "" {
		cfg.HTTP.Address = v
	}
	if v := os.Getenv("HTTP_MAX_UPLOAD_BYTES"); v != "" {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			cfg.HTTP.MaxUploadBytes = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_ENABLED"); v != "" {
		cfg.HTTP.RateLimit.Enabled = v == "1" || strings.EqualFold(v, "true")
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_RPM"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.RequestsPerMinute = parsed
		}
	}
	if v := os.Getenv("HTTP_RATE_LIMIT_BURST"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.HTTP.RateLimit.Burst = parsed
		}
	}
	if v := os.Getenv("PIPELINE_FAQ_COLUMN"); v != "" {
		cfg.Pipeline.FAQColumn = v
	}
	if v := os.Getenv("PIPELINE_THRESHOLD"); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			cfg.Pipeline.Threshold = parsed
		}
	}
	if v := os.Getenv("PIPELINE_KEYWORD_FALLBACK"); v != "" {
		cfg.Pipeline.KeywordFallback = v == "1" || strings.EqualFold(v, "true")
	}
}

func defaultConfig() *Config {
	return &Config{
		HTTP: HTTPConfig{
			Address:        ":8080",
			ReadTimeout:    30 * time.Second,
			WriteTimeout:   60 * time.Second,
			MaxUploadBytes: 32 << 20,
			RateLimit: RateLimitConfig{
				Enabled:           true,
				RequestsPerMinute: 60,
				Burst:             20,
			},
		},
		Pipeline: PipelineConfig{
			Threshold:       80,
			KeywordFallback: true,
			Keywords: []KeywordConfig{
				{Keyword: "wrong item", Target: "Received the wrong item"},
				{Keyword: "cold food", Target: "Food arrived cold"},
				{Keyword: "too slow", Target: "Food preparation is too slow"},
				{Keyword: "refund", Target: "How do I request a refund"},
			},
		},
	}
}

// Validate ensures the configuration is safe to use.
func (c *Config) Validate() error {
	if c.HTTP.Address == "" {
		return errors.New("http.address cannot be empty")
	}
	if c.HTTP.MaxUploadBytes <= 0 {
		return errors.New("http.maxUploadBytes must be positive")
	}
	if c.Pipeline.Threshold < 0 || c.Pipeline.Threshold > 100 {
		return errors.New("pipeline.threshold must be within [0, 100]")
	}
	for i, kw := range c.Pipeline.Keywords {
		if strings.TrimSpace(kw.Keyword) == "" {
			return fmt.Errorf("pipeline.keywords[%d].keyword cannot be empty", i)
		}
		if strings.TrimSpace(kw.Target) == "" {
			return fmt.Errorf("pipeline.keywords[%d].target cannot be empty", i)
		}
	}
	if c.HTTP.RateLimit.Enabled {
		if c.HTTP.RateLimit.RequestsPerMinute <= 0 {
			return errors.New("http.rateLimit.requestsPerMinute must be positive")
		}
		if c.HTTP.RateLimit.Burst <= 0 {
			return errors.New("http.rateLimit.burst must be positive")
		}
	}
	return nil
}
