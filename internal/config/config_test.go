package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "https://api.github.com/", cfg.GitHubAPIURL)
	assert.Equal(t, 50, cfg.GitHubPerPage)
	assert.Equal(t, 10*time.Second, cfg.GitHubTimeout)
	assert.Equal(t, ".github.io", cfg.HostingSuffix)
	assert.Equal(t, "Local", cfg.DisplayTimezone)
	assert.Empty(t, cfg.RedisURL)
	assert.Equal(t, "activity:", cfg.CachePrefix)
	assert.Equal(t, time.Minute, cfg.FeedCacheTTL)
	assert.Equal(t, 512, cfg.FeedCacheSize)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("GITHUB_API_URL", "http://127.0.0.1:1234/")
	t.Setenv("GITHUB_RATE_PER_MINUTE", "30")
	t.Setenv("FEED_CACHE_TTL", "5m")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("HOSTING_SUFFIX", ".Pages.Example.COM")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":9000", cfg.Addr())
	assert.Equal(t, "http://127.0.0.1:1234/", cfg.GitHubAPIURL)
	assert.Equal(t, 30, cfg.GitHubRatePerMin)
	assert.Equal(t, 5*time.Minute, cfg.FeedCacheTTL)
	assert.Equal(t, "redis://localhost:6379/0", cfg.RedisURL)
	assert.Equal(t, ".pages.example.com", cfg.HostingSuffix)
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name, key, value, want string
	}{
		{"unparsable int", "GITHUB_PER_PAGE", "many", "parse env:"},
		{"per page too large", "GITHUB_PER_PAGE", "500", "GITHUB_PER_PAGE"},
		{"relative api url", "GITHUB_API_URL", "api.github.com", "GITHUB_API_URL"},
		{"negative rate", "GITHUB_RATE_PER_MINUTE", "-1", "GITHUB_RATE_PER_MINUTE"},
		{"bad duration", "FEED_CACHE_TTL", "soon", "parse env:"},
		{"suffix without dot", "HOSTING_SUFFIX", "github.io", "HOSTING_SUFFIX"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := Load()
			assert.ErrorContains(t, err, tt.want)
		})
	}
}
