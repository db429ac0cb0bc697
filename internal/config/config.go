// Package config loads server settings from the environment.
package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config holds every setting the server reads at startup.
type Config struct {
	Port     string `env:"PORT" envDefault:"8080"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info"`

	GitHubAPIURL     string        `env:"GITHUB_API_URL" envDefault:"https://api.github.com/"`
	GitHubPerPage    int           `env:"GITHUB_PER_PAGE" envDefault:"50"`
	GitHubUserAgent  string        `env:"GITHUB_USER_AGENT" envDefault:"activity-log"`
	GitHubTimeout    time.Duration `env:"GITHUB_TIMEOUT" envDefault:"10s"`
	GitHubRatePerMin int           `env:"GITHUB_RATE_PER_MINUTE" envDefault:"0"`

	// HostingSuffix maps a request host like "octocat.github.io" to a user.
	HostingSuffix   string `env:"HOSTING_SUFFIX" envDefault:".github.io"`
	DisplayTimezone string `env:"DISPLAY_TIMEZONE" envDefault:"Local"`

	RedisURL      string        `env:"REDIS_URL"`
	CachePrefix   string        `env:"CACHE_PREFIX" envDefault:"activity:"`
	FeedCacheTTL  time.Duration `env:"FEED_CACHE_TTL" envDefault:"60s"`
	FeedCacheSize int           `env:"FEED_CACHE_SIZE" envDefault:"512"`
}

// Load parses the environment into a Config and validates it.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	// Hosts are matched lower-cased.
	cfg.HostingSuffix = strings.ToLower(cfg.HostingSuffix)
	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c Config) validate() error {
	u, err := url.Parse(c.GitHubAPIURL)
	if err != nil || !u.IsAbs() {
		return fmt.Errorf("GITHUB_API_URL must be an absolute URL: %q", c.GitHubAPIURL)
	}
	if c.GitHubPerPage < 1 || c.GitHubPerPage > 100 {
		return fmt.Errorf("GITHUB_PER_PAGE must be between 1 and 100, got %d", c.GitHubPerPage)
	}
	if c.GitHubRatePerMin < 0 {
		return fmt.Errorf("GITHUB_RATE_PER_MINUTE must not be negative, got %d", c.GitHubRatePerMin)
	}
	if c.FeedCacheTTL < 0 {
		return fmt.Errorf("FEED_CACHE_TTL must not be negative, got %s", c.FeedCacheTTL)
	}
	if c.HostingSuffix != "" && !strings.HasPrefix(c.HostingSuffix, ".") {
		return fmt.Errorf("HOSTING_SUFFIX must start with a dot: %q", c.HostingSuffix)
	}
	return nil
}

// Addr is the listen address for Port.
func (c Config) Addr() string {
	return ":" + c.Port
}
