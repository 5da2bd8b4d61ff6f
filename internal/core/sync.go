package core

import (
	"context"
	"log/slog"

	"github.com/baxromumarov/donor-wall/internal/config"
	"github.com/baxromumarov/donor-wall/internal/httpx"
	"github.com/baxromumarov/donor-wall/internal/observability"
	"github.com/baxromumarov/donor-wall/internal/scraper"
	"github.com/baxromumarov/donor-wall/internal/snapshot"
	"github.com/baxromumarov/donor-wall/internal/store"
)

type Status string

const (
	// StatusSuccess: donors were extracted and the store now mirrors them.
	StatusSuccess Status = "success"
	// StatusNoData: every source came up empty; the store was left untouched.
	// Distinct from a transient fetch failure, which still falls back to
	// cached snapshots before this is reported.
	StatusNoData Status = "no_data"
	// StatusError: the settings read or the store replace itself failed.
	StatusError Status = "error"
)

type Result struct {
	Status Status `json:"status"`
	Count  int    `json:"count,omitempty"`
	Detail string `json:"detail,omitempty"`
}

// SyncService runs the fetch → extract → fallback → replace pipeline. Each
// Run is synchronous and self-contained; it holds no re-entrancy guard, so a
// caller that cannot tolerate overlapping runs must serialize them itself.
// The store replace is transactional either way.
type SyncService struct {
	store *store.Store
	cfg   config.Config
}

func NewSyncService(st *store.Store, cfg config.Config) *SyncService {
	return &SyncService{store: st, cfg: cfg}
}

// Run synchronizes the donor table with the configured campaign page,
// falling back to cached snapshots when the live fetch fails or yields
// nothing. Fetch failures never abort the sync; only a settings read or
// store failure does.
func (s *SyncService) Run(ctx context.Context) Result {
	observability.IncSyncRun()

	sourceURL, err := s.store.DonorSourceURL(ctx)
	if err != nil {
		observability.IncError(observability.ErrorStore, "sync")
		return Result{Status: StatusError, Detail: "failed to read donor source setting: " + err.Error()}
	}

	cache := snapshot.NewStore(s.cfg.CacheDir)

	var candidates []scraper.Candidate
	if sourceURL == "" {
		slog.Info("no donor source configured, skipping remote fetch")
	} else {
		client := httpx.NewClient(httpx.ClientConfig{
			UserAgent:       s.cfg.UserAgent,
			ClearanceCookie: s.cfg.ClearanceCookie,
			CookieString:    s.cfg.CookieString,
			Timeout:         s.cfg.FetchTimeout,
		})
		fetcher := scraper.NewFetcher(client, cache, s.cfg.CacheMainFile, s.cfg.CacheModalFile)

		fetched, err := fetcher.FetchDonors(ctx, sourceURL)
		if err != nil {
			slog.Warn("live donor fetch failed, trying cached snapshots", "url", sourceURL, "error", err)
		} else {
			candidates = fetched
		}
	}

	if len(candidates) == 0 {
		candidates = scraper.LoadLocal(cache, s.cfg.FallbackCandidates())
	}

	records := make([]store.Donor, 0, len(candidates))
	for _, c := range candidates {
		if c.Name == "" {
			continue
		}
		records = append(records, store.Donor{
			Name:   c.Name,
			Amount: scraper.ParseAmount(c.Amount),
		})
	}

	if len(records) == 0 {
		slog.Warn("no donor data found in any source")
		return Result{Status: StatusNoData}
	}

	count, err := s.store.ReplaceDonors(ctx, records)
	if err != nil {
		observability.IncError(observability.ErrorStore, "sync")
		return Result{Status: StatusError, Detail: "failed to replace donors: " + err.Error()}
	}

	observability.AddDonorsSynced(count)
	slog.Info("donor sync complete", "count", count)
	return Result{Status: StatusSuccess, Count: count}
}
