package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 10*time.Second, cfg.Schedule.Interval)
	assert.Equal(t, 3, cfg.Escalation.MaxRetries)
	assert.False(t, cfg.Notification.Enabled)
	assert.Equal(t, "email", cfg.Notification.Type)
	assert.Equal(t, 587, cfg.SMTP.Port)
	assert.Equal(t, 5, cfg.Schedule.MaxWorkers)
	assert.Empty(t, cfg.Events.URL, "events disabled by default")

	listen, timeout := cfg.GetServerConfig()
	assert.Equal(t, ":8080", listen)
	assert.Equal(t, 30*time.Second, timeout)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(c *Config)
		errMsg string
	}{
		{name: "short interval", modify: func(c *Config) { c.Schedule.Interval = 100 * time.Millisecond }, errMsg: "schedule interval"},
		{name: "no workers", modify: func(c *Config) { c.Schedule.MaxWorkers = 0 }, errMsg: "max workers"},
		{name: "no attempts", modify: func(c *Config) { c.Schedule.RetryAttempts = 0 }, errMsg: "retry attempts"},
		{name: "negative max retries", modify: func(c *Config) { c.Escalation.MaxRetries = -1 }, errMsg: "max retries"},
		{name: "zero fetch timeout", modify: func(c *Config) { c.Fetch.Timeout = 0 }, errMsg: "fetch timeout"},
		{name: "bad smtp port", modify: func(c *Config) { c.SMTP.Port = 70000 }, errMsg: "smtp port"},
		{name: "server timeout", modify: func(c *Config) { c.Server.Timeout = 0 }, errMsg: "server timeout"},
		{name: "events without exchange", modify: func(c *Config) { c.Events.URL = "amqp://localhost"; c.Events.Exchange = "" },
			errMsg: "events exchange"},
		{name: "unknown notification type accepted", modify: func(c *Config) { c.Notification.Type = "pigeon" }},
		{name: "zero max retries accepted", modify: func(c *Config) { c.Escalation.MaxRetries = 0 }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(&cfg)
			err := cfg.Validate()
			if tt.errMsg == "" {
				require.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}
}

func writeSeeds(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "feeds.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadSeeds(t *testing.T) {
	t.Run("valid", func(t *testing.T) {
		t.Setenv("FW_OWNER", "owner@example.com")
		path := writeSeeds(t, `
feeds:
  - name: go-blog
    url: https://go.dev/blog/feed.atom
    owner_email: ${FW_OWNER}
  - name: hn
    url: https://news.ycombinator.com/rss
`)
		seeds, err := LoadSeeds(path)
		require.NoError(t, err)
		require.Len(t, seeds.Feeds, 2)
		assert.Equal(t, SeedFeed{Name: "go-blog", URL: "https://go.dev/blog/feed.atom", OwnerEmail: "owner@example.com"},
			seeds.Feeds[0])
		assert.Equal(t, "hn", seeds.Feeds[1].Name)
		assert.Empty(t, seeds.Feeds[1].OwnerEmail)
	})

	tests := []struct {
		name    string
		content string
		errMsg  string
	}{
		{name: "invalid yaml", content: "feeds: [\n  - name", errMsg: "parse seeds"},
		{name: "empty file", content: "", errMsg: "seeds.feeds is required"},
		{name: "missing url", content: "feeds:\n  - name: a\n", errMsg: "feeds[0].url is required"},
		{name: "unknown property", content: "feeds:\n  - name: a\n    url: https://a.com\n    interval: 5m\n",
			errMsg: `unknown property "interval"`},
		{name: "unknown top level", content: "feeds: []\nserver: x\n", errMsg: `seeds: unknown property "server"`},
		{name: "bad url", content: "feeds:\n  - name: a\n    url: ftp://a.com/rss\n", errMsg: "invalid url"},
		{name: "duplicate name", content: "feeds:\n  - name: a\n    url: https://a.com\n  - name: a\n    url: https://b.com\n",
			errMsg: "duplicate name"},
		{name: "duplicate url", content: "feeds:\n  - name: a\n    url: https://a.com\n  - name: b\n    url: https://a.com\n",
			errMsg: "duplicate url"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadSeeds(writeSeeds(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.errMsg)
		})
	}

	t.Run("file not found", func(t *testing.T) {
		seeds, err := LoadSeeds("/non/existent/feeds.yml")
		require.Error(t, err)
		assert.Nil(t, seeds)
		assert.Contains(t, err.Error(), "read seeds file")
	})
}
