package scraper

import (
	"bytes"
	"log/slog"
	"os"

	"github.com/PuerkitoBio/goquery"
	"github.com/baxromumarov/donor-wall/internal/observability"
	"github.com/baxromumarov/donor-wall/internal/snapshot"
)

// LoadLocal extracts donor names from cached snapshots, trying every
// candidate location in priority order. Names from all readable candidates
// are accumulated and deduplicated together; a missing or broken candidate
// is skipped, never fatal.
func LoadLocal(cache *snapshot.Store, candidates []string) []Candidate {
	var names []string
	for _, location := range candidates {
		if location == "" {
			continue
		}
		raw, err := cache.Read(location)
		if err != nil {
			if !os.IsNotExist(err) {
				observability.IncError(observability.ErrorCache, "fallback")
				slog.Warn("failed to read cached snapshot", "location", location, "error", err)
			}
			continue
		}
		doc, err := goquery.NewDocumentFromReader(bytes.NewReader(raw))
		if err != nil {
			observability.IncError(observability.ErrorParsing, "fallback")
			slog.Warn("failed to parse cached snapshot", "location", location, "error", err)
			continue
		}
		names = append(names, ExtractNames(doc)...)
	}
	return candidatesFromNames(dedupe(names))
}
