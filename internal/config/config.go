// Package config loads application configuration from a YAML file with
// environment variable overrides.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// Defaults for the analysis provider.
const (
	DefaultAnalysisBaseURL = "https://api.perplexity.ai"
	DefaultAnalysisModel   = "llama-3.1-sonar-small-128k-online"
)

// Analysis configures the LLM provider used for burnout report analysis.
type Analysis struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
	Model   string `yaml:"model"`
}

// Config holds all user-tunable settings. Every field is optional: with
// no webhook URL submissions are skipped, with no API key the report
// screen shows answers without the AI analysis.
type Config struct {
	WebhookURL string   `yaml:"webhook_url"`
	Analysis   Analysis `yaml:"analysis"`
}

// Default returns a Config with provider defaults filled in.
func Default() Config {
	return Config{
		Analysis: Analysis{
			BaseURL: DefaultAnalysisBaseURL,
			Model:   DefaultAnalysisModel,
		},
	}
}

// DefaultPath resolves the config file location:
// $XDG_CONFIG_HOME/anima/config.yaml, falling back to
// ~/.config/anima/config.yaml.
func DefaultPath() (string, error) {
	configHome := os.Getenv("XDG_CONFIG_HOME")
	if configHome == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		configHome = filepath.Join(home, ".config")
	}
	return filepath.Join(configHome, "anima", "config.yaml"), nil
}

// Load reads the config file at path, applies environment overrides and
// fills defaults. A missing file is not an error: overrides and
// defaults still apply.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// No file, run on defaults and env.
	case err != nil:
		return Config{}, fmt.Errorf("read config: %w", err)
	default:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	cfg.applyEnv()
	cfg.fillDefaults()

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// LoadDefault loads from the default path.
func LoadDefault() (Config, error) {
	path, err := DefaultPath()
	if err != nil {
		return Config{}, err
	}
	return Load(path)
}

func (c *Config) applyEnv() {
	if v := os.Getenv("ANIMA_WEBHOOK_URL"); v != "" {
		c.WebhookURL = v
	}
	if v := os.Getenv("ANIMA_ANALYSIS_API_KEY"); v != "" {
		c.Analysis.APIKey = v
	}
	if v := os.Getenv("ANIMA_ANALYSIS_BASE_URL"); v != "" {
		c.Analysis.BaseURL = v
	}
	if v := os.Getenv("ANIMA_ANALYSIS_MODEL"); v != "" {
		c.Analysis.Model = v
	}
}

func (c *Config) fillDefaults() {
	if c.Analysis.BaseURL == "" {
		c.Analysis.BaseURL = DefaultAnalysisBaseURL
	}
	if c.Analysis.Model == "" {
		c.Analysis.Model = DefaultAnalysisModel
	}
}

// Validate checks structural sanity of the configured values.
func (c Config) Validate() error {
	if c.WebhookURL != "" && !strings.HasPrefix(c.WebhookURL, "http://") && !strings.HasPrefix(c.WebhookURL, "https://") {
		return fmt.Errorf("webhook_url must be an http(s) URL, got %q", c.WebhookURL)
	}
	if c.Analysis.BaseURL != "" && !strings.HasPrefix(c.Analysis.BaseURL, "http://") && !strings.HasPrefix(c.Analysis.BaseURL, "https://") {
		return fmt.Errorf("analysis.base_url must be an http(s) URL, got %q", c.Analysis.BaseURL)
	}
	return nil
}

// AnalysisEnabled reports whether the AI analysis provider is usable.
func (c Config) AnalysisEnabled() bool {
	return c.Analysis.APIKey != ""
}

// SubmitEnabled reports whether webhook submission is configured.
func (c Config) SubmitEnabled() bool {
	return c.WebhookURL != ""
}
