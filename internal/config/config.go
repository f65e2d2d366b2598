// Package config resolves the application configuration from defaults, an
// optional YAML file, CONTRIB_GRAPH_* environment variables and flags.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"github.com/go-ozzo/ozzo-validation/v4/is"
	"github.com/naka-gawa/contrib-graph/internal/domain"
	"github.com/naka-gawa/contrib-graph/internal/gateway"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of every environment variable read by Load.
const EnvPrefix = "CONTRIB_GRAPH"

// Config holds the validated, final configuration.
type Config struct {
	BaseURL       string        `mapstructure:"base-url"`
	UserAgent     string        `mapstructure:"user-agent"`
	RequestedWith string        `mapstructure:"requested-with"`
	Timeout       time.Duration `mapstructure:"timeout"`
	Addr          string        `mapstructure:"addr"`
	APIBaseURL    string        `mapstructure:"api-base-url"`
	RateLimitWait time.Duration `mapstructure:"rate-limit-wait"`
	Palette       []string      `mapstructure:"palette"`
	GitHubToken   string        `mapstructure:"github-token"`
}

// SetDefaults registers every default value on v.
func SetDefaults(v *viper.Viper) {
	def := gateway.DefaultConfig()
	v.SetDefault("base-url", def.BaseURL)
	v.SetDefault("user-agent", def.UserAgent)
	v.SetDefault("requested-with", def.RequestedWith)
	v.SetDefault("timeout", def.Timeout)
	v.SetDefault("addr", ":8080")
	v.SetDefault("api-base-url", "https://api.github.com/")
	v.SetDefault("rate-limit-wait", time.Minute)
	v.SetDefault("palette", domain.DefaultPalette[:])
	v.SetDefault("github-token", "")
}

// Load reads the config file (when present) and the environment into v,
// then unmarshals and validates the result. An empty file searches
// .contrib-graph.yaml in the working and home directories.
func Load(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName(".contrib-graph")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	// GITHUB_TOKEN is honored without the prefix.
	if err := v.BindEnv("github-token", EnvPrefix+"_GITHUB_TOKEN", "GITHUB_TOKEN"); err != nil {
		return nil, fmt.Errorf("failed to bind token env: %w", err)
	}
	SetDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) || file != "" {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unable to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return cfg, nil
}

// Validate validates the configuration.
func (c *Config) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.BaseURL, validation.Required, is.URL),
		validation.Field(&c.UserAgent, validation.Required),
		validation.Field(&c.Timeout, validation.Required, validation.Min(time.Millisecond)),
		validation.Field(&c.Addr, validation.Required),
		validation.Field(&c.APIBaseURL, validation.Required, is.URL),
		validation.Field(&c.RateLimitWait, validation.Required, validation.Min(time.Second)),
		validation.Field(&c.Palette, validation.Required, validation.Length(len(domain.Palette{}), len(domain.Palette{}))),
	)
}

// Gateway returns the page fetcher configuration.
func (c *Config) Gateway() gateway.Config {
	return gateway.Config{
		BaseURL:       c.BaseURL,
		UserAgent:     c.UserAgent,
		RequestedWith: c.RequestedWith,
		Timeout:       c.Timeout,
	}
}

// Profile returns the REST client configuration.
func (c *Config) Profile() gateway.ProfileConfig {
	return gateway.ProfileConfig{
		APIBaseURL:    c.APIBaseURL,
		Token:         c.GitHubToken,
		RateLimitWait: c.RateLimitWait,
	}
}

// LevelPalette returns the configured colors as a Palette.
// Validate guarantees the length.
func (c *Config) LevelPalette() domain.Palette {
	var p domain.Palette
	copy(p[:], c.Palette)
	return p
}
