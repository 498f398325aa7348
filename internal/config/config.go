// Package config loads and validates the orcado configuration.
package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// Provider configures one LLM backend in the pool. Pool order follows the
// order providers appear in the config file.
type Provider struct {
	Name              string `mapstructure:"name" validate:"required"`
	Type              string `mapstructure:"type" validate:"required,oneof=openai openrouter anthropic ollama"`
	Model             string `mapstructure:"model" validate:"required"`
	APIKey            string `mapstructure:"api_key"`
	BaseURL           string `mapstructure:"base_url" validate:"omitempty,url"`
	RequestsPerMinute int    `mapstructure:"requests_per_minute" validate:"omitempty,min=1"`
}

// Extraction tunes the extraction pipeline.
type Extraction struct {
	MaxInputBytes int           `mapstructure:"max_input_bytes" validate:"omitempty,min=1024"`
	MaxTokens     int           `mapstructure:"max_tokens" validate:"omitempty,min=1"`
	Temperature   float64       `mapstructure:"temperature" validate:"min=0,max=2"`
	Timeout       time.Duration `mapstructure:"timeout"`
}

// Config is the root configuration.
type Config struct {
	Providers    []Provider `mapstructure:"providers" validate:"min=1,dive"`
	Extraction   Extraction `mapstructure:"extraction"`
	DatabasePath string     `mapstructure:"database_path"`
}

// Defaults applied when the config file leaves a field unset.
const (
	DefaultMaxInputBytes = 48 * 1024
	DefaultMaxTokens     = 2048
	DefaultTemperature   = 0.1
	DefaultTimeout       = 120 * time.Second
	DefaultRPM           = 60
)

// Load unmarshals and validates the configuration held by v.
func Load(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	cfg.applyDefaults()

	if err := validator.New().Struct(&cfg); err != nil {
		if errs, ok := err.(validator.ValidationErrors); ok {
			return nil, fmt.Errorf("invalid config: %s", formatErrors(errs))
		}
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	seen := make(map[string]bool, len(cfg.Providers))
	for _, p := range cfg.Providers {
		if seen[p.Name] {
			return nil, fmt.Errorf("invalid config: duplicate provider name %q", p.Name)
		}
		seen[p.Name] = true
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Extraction.MaxInputBytes == 0 {
		c.Extraction.MaxInputBytes = DefaultMaxInputBytes
	}
	if c.Extraction.MaxTokens == 0 {
		c.Extraction.MaxTokens = DefaultMaxTokens
	}
	if c.Extraction.Temperature == 0 {
		c.Extraction.Temperature = DefaultTemperature
	}
	if c.Extraction.Timeout == 0 {
		c.Extraction.Timeout = DefaultTimeout
	}
	for i := range c.Providers {
		if c.Providers[i].RequestsPerMinute == 0 {
			c.Providers[i].RequestsPerMinute = DefaultRPM
		}
	}
}

// ProviderIDs returns the pool identifiers in configuration order.
func (c *Config) ProviderIDs() []string {
	ids := make([]string, len(c.Providers))
	for i, p := range c.Providers {
		ids[i] = p.Name
	}
	return ids
}

func formatErrors(errs validator.ValidationErrors) string {
	msg := ""
	for i, e := range errs {
		if i > 0 {
			msg += "; "
		}
		msg += fmt.Sprintf("%s failed %q", e.Namespace(), e.Tag())
	}
	return msg
}
