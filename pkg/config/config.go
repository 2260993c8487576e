// Package config defines explicit application configuration and the feeds seed file.
// Config is built once at startup and passed into constructors, nothing reads it globally.
package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

//go:generate go run ../../cmd/schema/main.go seeds.schema.json

// Config holds the application configuration
type Config struct {
	Schedule struct {
		Interval          time.Duration // time between ticks
		MaxWorkers        int           // feeds updated concurrently
		RetryAttempts     int           // tick attempts on infrastructure failures
		RetryInitialDelay time.Duration
		RetryMaxDelay     time.Duration
	}

	Escalation struct {
		MaxRetries int // failures tolerated before a feed is deactivated
	}

	Fetch struct {
		Timeout   time.Duration
		UserAgent string
	}

	Notification struct {
		Enabled bool
		Type    string // email or sms, checked on first send only
	}

	SMTP struct {
		Server   string
		Port     int
		Login    string
		Password string
		From     string
		Timeout  time.Duration
	}

	Database struct {
		DSN             string
		MaxOpenConns    int
		MaxIdleConns    int
		ConnMaxLifetime time.Duration
	}

	Server struct {
		Listen  string
		Timeout time.Duration
	}

	Events struct {
		URL        string // amqp url, empty disables publishing
		Exchange   string
		RoutingKey string
		Queue      string
	}

	Debug bool
}

// Default returns configuration with all defaults set
func Default() Config {
	var cfg Config
	cfg.Schedule.Interval = 10 * time.Second
	cfg.Schedule.MaxWorkers = 5
	cfg.Schedule.RetryAttempts = 3
	cfg.Schedule.RetryInitialDelay = time.Second
	cfg.Schedule.RetryMaxDelay = 5 * time.Second
	cfg.Escalation.MaxRetries = 3
	cfg.Fetch.Timeout = 30 * time.Second
	cfg.Fetch.UserAgent = "feedwatch/1.0"
	cfg.Notification.Type = "email"
	cfg.SMTP.Port = 587
	cfg.SMTP.Timeout = 30 * time.Second
	cfg.Database.DSN = "file:feedwatch.db?cache=shared&mode=rwc&_txlock=immediate"
	cfg.Database.MaxOpenConns = 10
	cfg.Database.MaxIdleConns = 5
	cfg.Database.ConnMaxLifetime = time.Hour
	cfg.Server.Listen = ":8080"
	cfg.Server.Timeout = 30 * time.Second
	cfg.Events.Exchange = "feedwatch"
	cfg.Events.RoutingKey = "feeds"
	cfg.Events.Queue = "feedwatch-events"
	return cfg
}

// Validate checks configuration for correctness.
// The notification variant is not checked here, an unknown one fails on send.
func (c *Config) Validate() error {
	if c.Schedule.Interval < time.Second {
		return errors.New("schedule interval must be at least 1 second")
	}
	if c.Schedule.MaxWorkers < 1 {
		return errors.New("schedule max workers must be at least 1")
	}
	if c.Schedule.RetryAttempts < 1 {
		return errors.New("schedule retry attempts must be at least 1")
	}
	if c.Escalation.MaxRetries < 0 {
		return errors.New("max retries must be non-negative")
	}
	if c.Fetch.Timeout <= 0 {
		return errors.New("fetch timeout must be positive")
	}
	if c.SMTP.Port < 1 || c.SMTP.Port > 65535 {
		return fmt.Errorf("invalid smtp port %d", c.SMTP.Port)
	}
	if c.Server.Timeout < time.Second {
		return errors.New("server timeout must be at least 1 second")
	}
	if c.Events.URL != "" && c.Events.Exchange == "" {
		return errors.New("events exchange is required when events url is set")
	}
	return nil
}

// GetServerConfig returns server configuration
func (c *Config) GetServerConfig() (listen string, timeout time.Duration) {
	return c.Server.Listen, c.Server.Timeout
}

// Seeds is the feeds seed file, feeds listed there are followed on startup
type Seeds struct {
	Feeds []SeedFeed `yaml:"feeds" json:"feeds" jsonschema:"description=Feeds to follow on startup"`
}

// SeedFeed is a single feed of the seed file
type SeedFeed struct {
	Name       string `yaml:"name" json:"name" jsonschema:"description=Unique feed name"`
	URL        string `yaml:"url" json:"url" jsonschema:"format=uri,description=Feed URL"`
	OwnerEmail string `yaml:"owner_email,omitempty" json:"owner_email,omitempty" jsonschema:"format=email,description=Contact notified when the feed is deactivated"`
}

// LoadSeeds reads the seed file. Environment variables in the file are expanded.
func LoadSeeds(path string) (*Seeds, error) {
	data, err := os.ReadFile(path) //nolint:gosec // file path comes from CLI flag
	if err != nil {
		return nil, fmt.Errorf("read seeds file: %w", err)
	}

	expanded := []byte(os.ExpandEnv(string(data)))

	var raw map[string]any
	if err := yaml.Unmarshal(expanded, &raw); err != nil {
		return nil, fmt.Errorf("parse seeds: %w", err)
	}
	if err := VerifyAgainstEmbeddedSchema(raw); err != nil {
		return nil, fmt.Errorf("verify seeds: %w", err)
	}

	var seeds Seeds
	if err := yaml.Unmarshal(expanded, &seeds); err != nil {
		return nil, fmt.Errorf("parse seeds: %w", err)
	}
	if err := seeds.validate(); err != nil {
		return nil, fmt.Errorf("validate seeds: %w", err)
	}
	return &seeds, nil
}

func (s *Seeds) validate() error {
	names := make(map[string]struct{}, len(s.Feeds))
	urls := make(map[string]struct{}, len(s.Feeds))
	for i, f := range s.Feeds {
		if strings.TrimSpace(f.Name) == "" {
			return fmt.Errorf("feed #%d: name is required", i)
		}
		u, err := url.Parse(f.URL)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return fmt.Errorf("feed %s: invalid url %q", f.Name, f.URL)
		}
		if _, ok := names[f.Name]; ok {
			return fmt.Errorf("feed %s: duplicate name", f.Name)
		}
		if _, ok := urls[f.URL]; ok {
			return fmt.Errorf("feed %s: duplicate url %s", f.Name, f.URL)
		}
		names[f.Name], urls[f.URL] = struct{}{}, struct{}{}
	}
	return nil
}
