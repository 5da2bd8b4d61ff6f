package config

import (
	"math"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	defaultUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/122.0 Safari/537.36"

	// Repo-seeded snapshots of the campaign pages, used as last-resort
	// fallback candidates.
	DefaultModalSnapshot = "campaign_donors_72810_all.html"
	DefaultMainSnapshot  = "honors-winter-gala.html"
)

// Config holds all environment-level settings. The donor source URL is not
// here: it lives in the settings table and is read per sync run.
type Config struct {
	Port         string
	DatabasePath string

	UserAgent       string
	ClearanceCookie string
	CookieString    string
	FetchTimeout    time.Duration

	CacheDir       string
	CacheMainFile  string
	CacheModalFile string
	LocalModalFile string
	LocalMainFile  string

	SyncInterval time.Duration
}

// Load reads configuration from the environment, loading a local .env file
// first if one exists.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:            getenv("PORT", "8080"),
		DatabasePath:    getenv("DATABASE_PATH", "donors.db"),
		UserAgent:       getenv("SCRAPE_USER_AGENT", defaultUserAgent),
		ClearanceCookie: os.Getenv("CF_CLEARANCE_COOKIE"),
		CookieString:    os.Getenv("SCRAPE_COOKIE_STRING"),
		FetchTimeout:    fetchTimeout(),
		CacheDir:        os.Getenv("DONOR_CACHE_DIR"),
		CacheMainFile:   getenv("DONOR_CACHE_MAIN_FILE", DefaultMainSnapshot),
		CacheModalFile:  getenv("DONOR_CACHE_MODAL_FILE", DefaultModalSnapshot),
		LocalModalFile:  os.Getenv("DONOR_LOCAL_MODAL_FILE"),
		LocalMainFile:   os.Getenv("DONOR_LOCAL_FILE"),
		SyncInterval:    syncInterval(),
	}
}

// FallbackCandidates returns snapshot locations to try when the live fetch
// yields nothing, highest priority first.
func (c Config) FallbackCandidates() []string {
	candidates := []string{
		c.LocalModalFile,
		c.LocalMainFile,
		c.CacheModalFile,
		c.CacheMainFile,
		DefaultModalSnapshot,
		DefaultMainSnapshot,
	}
	seen := make(map[string]struct{}, len(candidates))
	var out []string
	for _, cand := range candidates {
		if cand == "" {
			continue
		}
		if _, ok := seen[cand]; ok {
			continue
		}
		seen[cand] = struct{}{}
		out = append(out, cand)
	}
	return out
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func fetchTimeout() time.Duration {
	raw := os.Getenv("SCRAPE_TIMEOUT_SECONDS")
	secs, err := strconv.Atoi(raw)
	if err != nil || secs <= 0 {
		secs = 15
	}
	return time.Duration(secs) * time.Second
}

// syncInterval parses SCRAPE_INTERVAL_MINUTES as a float so sub-minute
// intervals are possible, clamped to a 30s floor.
func syncInterval() time.Duration {
	minutes, err := strconv.ParseFloat(os.Getenv("SCRAPE_INTERVAL_MINUTES"), 64)
	if err != nil || minutes <= 0 {
		minutes = 15
	}
	secs := math.Ceil(minutes * 60)
	if secs < 30 {
		secs = 30
	}
	return time.Duration(secs) * time.Second
}
