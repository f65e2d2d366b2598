package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/naka-gawa/contrib-graph/internal/domain"
	"github.com/naka-gawa/contrib-graph/internal/gateway"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("GITHUB_TOKEN", "")

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, gateway.DefaultBaseURL, cfg.BaseURL)
	assert.Equal(t, gateway.DefaultUserAgent, cfg.UserAgent)
	assert.Equal(t, gateway.DefaultRequestedWith, cfg.RequestedWith)
	assert.Equal(t, 15*time.Second, cfg.Timeout)
	assert.Equal(t, ":8080", cfg.Addr)
	assert.Equal(t, domain.DefaultPalette, cfg.LevelPalette())
	assert.Empty(t, cfg.GitHubToken)
}

func TestLoad_FileAndEnv(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(file, []byte(`
base-url: https://example.test
timeout: 3s
palette: ["#000000", "#111111", "#222222", "#333333", "#444444"]
`), 0o600))
	t.Setenv("CONTRIB_GRAPH_ADDR", ":9090")
	t.Setenv("GITHUB_TOKEN", "from-env")

	cfg, err := Load(viper.New(), file)
	require.NoError(t, err)

	assert.Equal(t, "https://example.test", cfg.BaseURL)
	assert.Equal(t, 3*time.Second, cfg.Timeout)
	assert.Equal(t, ":9090", cfg.Addr)
	assert.Equal(t, "from-env", cfg.GitHubToken)
	assert.Equal(t, domain.Palette{"#000000", "#111111", "#222222", "#333333", "#444444"}, cfg.LevelPalette())

	gw := cfg.Gateway()
	assert.Equal(t, "https://example.test", gw.BaseURL)
	assert.Equal(t, 3*time.Second, gw.Timeout)
	assert.Equal(t, "from-env", cfg.Profile().Token)
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	_, err := Load(viper.New(), filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestConfig_Validate(t *testing.T) {
	valid := func() Config {
		return Config{
			BaseURL:       "https://github.com",
			UserAgent:     "ua",
			Timeout:       time.Second,
			Addr:          ":8080",
			APIBaseURL:    "https://api.github.com/",
			RateLimitWait: time.Minute,
			Palette:       domain.DefaultPalette[:],
		}
	}

	testCases := []struct {
		name        string
		mutate      func(c *Config)
		expectError bool
	}{
		{name: "valid", mutate: func(c *Config) {}},
		{name: "invalid base URL", mutate: func(c *Config) { c.BaseURL = "not a url" }, expectError: true},
		{name: "zero timeout", mutate: func(c *Config) { c.Timeout = 0 }, expectError: true},
		{name: "short palette", mutate: func(c *Config) { c.Palette = []string{"#fff"} }, expectError: true},
		{name: "empty user agent", mutate: func(c *Config) { c.UserAgent = "" }, expectError: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			c := valid()
			tc.mutate(&c)
			err := c.Validate()
			if tc.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
