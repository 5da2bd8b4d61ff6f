package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "donors.db", cfg.DatabasePath)
	assert.Equal(t, defaultUserAgent, cfg.UserAgent)
	assert.Equal(t, 15*time.Second, cfg.FetchTimeout)
	assert.Equal(t, 15*time.Minute, cfg.SyncInterval)
	assert.Equal(t, DefaultMainSnapshot, cfg.CacheMainFile)
	assert.Equal(t, DefaultModalSnapshot, cfg.CacheModalFile)
}

func TestSyncIntervalParsing(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  time.Duration
	}{
		{"fractional minutes", "2.5", 150 * time.Second},
		{"sub-floor clamped", "0.2", 30 * time.Second},
		{"zero falls back to default", "0", 15 * time.Minute},
		{"negative falls back to default", "-5", 15 * time.Minute},
		{"garbage falls back to default", "often", 15 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("SCRAPE_INTERVAL_MINUTES", tt.value)
			assert.Equal(t, tt.want, Load().SyncInterval)
		})
	}
}

func TestFallbackCandidatesPriority(t *testing.T) {
	t.Setenv("DONOR_LOCAL_MODAL_FILE", "local-modal.html")
	t.Setenv("DONOR_LOCAL_FILE", "local-main.html")

	cfg := Load()

	assert.Equal(t, []string{
		"local-modal.html",
		"local-main.html",
		DefaultModalSnapshot,
		DefaultMainSnapshot,
	}, cfg.FallbackCandidates())
}

func TestFallbackCandidatesSkipsUnset(t *testing.T) {
	cfg := Load()

	assert.Equal(t, []string{
		DefaultModalSnapshot,
		DefaultMainSnapshot,
	}, cfg.FallbackCandidates())
}

func TestCacheOverrides(t *testing.T) {
	t.Setenv("DONOR_CACHE_MAIN_FILE", "custom-main.html")
	t.Setenv("DONOR_CACHE_MODAL_FILE", "custom-modal.html")
	t.Setenv("DONOR_CACHE_DIR", "/var/cache/donor-wall")

	cfg := Load()

	assert.Equal(t, "custom-main.html", cfg.CacheMainFile)
	assert.Equal(t, "custom-modal.html", cfg.CacheModalFile)
	assert.Equal(t, "/var/cache/donor-wall", cfg.CacheDir)
}
