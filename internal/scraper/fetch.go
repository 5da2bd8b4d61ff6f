package scraper

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"regexp"

	"github.com/PuerkitoBio/goquery"
	"github.com/baxromumarov/donor-wall/internal/httpx"
	"github.com/baxromumarov/donor-wall/internal/observability"
	"github.com/baxromumarov/donor-wall/internal/snapshot"
)

var (
	// The campaign page embeds its numeric id in the "View All Donors"
	// modal element id, e.g. myModal72810_all.
	modalIDPattern = regexp.MustCompile(`myModal(\d+)_all`)
	// Older markup links the full list directly instead.
	donorsPathPattern = regexp.MustCompile(`/campaigns/(\d+)/campaign_donors\.html`)
)

// Fetcher retrieves the live campaign page and, when discoverable, the
// full "all donors" page it links to. Every successful response body is
// cached so later syncs can fall back to it.
type Fetcher struct {
	client    *httpx.Client
	cache     *snapshot.Store
	mainSlot  string
	modalSlot string
}

func NewFetcher(client *httpx.Client, cache *snapshot.Store, mainSlot, modalSlot string) *Fetcher {
	return &Fetcher{
		client:    client,
		cache:     cache,
		mainSlot:  mainSlot,
		modalSlot: modalSlot,
	}
}

// FetchDonors scrapes donor names from the campaign page at pageURL. A
// failure on the main page fails the whole fetch; a failure on the secondary
// page is logged and the primary names stand. Amounts are never present on
// this source family.
func (f *Fetcher) FetchDonors(ctx context.Context, pageURL string) ([]Candidate, error) {
	body, _, err := f.client.Get(ctx, pageURL)
	if err != nil {
		observability.IncError(observability.ClassifyFetchError(err), "fetcher")
		return nil, fmt.Errorf("fetch campaign page: %w", err)
	}
	observability.IncPageFetched("fetcher")
	f.cacheBody(f.mainSlot, body)

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		observability.IncError(observability.ErrorParsing, "fetcher")
		return nil, fmt.Errorf("parse campaign page: %w", err)
	}
	names := ExtractNames(doc)

	if id := findCampaignID(doc); id != "" {
		if modalURL := buildModalURL(pageURL, id); modalURL != "" {
			names = append(names, f.fetchModal(ctx, modalURL)...)
		}
	}

	return candidatesFromNames(dedupe(names)), nil
}

// fetchModal is best-effort: any failure leaves the primary results intact.
func (f *Fetcher) fetchModal(ctx context.Context, modalURL string) []string {
	body, _, err := f.client.Get(ctx, modalURL)
	if err != nil {
		observability.IncError(observability.ClassifyFetchError(err), "fetcher")
		slog.Warn("all-donors page fetch failed", "url", modalURL, "error", err)
		return nil
	}
	observability.IncPageFetched("fetcher")
	f.cacheBody(f.modalSlot, body)

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		observability.IncError(observability.ErrorParsing, "fetcher")
		slog.Warn("all-donors page parse failed", "url", modalURL, "error", err)
		return nil
	}
	return ExtractNames(doc)
}

func (f *Fetcher) cacheBody(slot string, body []byte) {
	if slot == "" {
		return
	}
	if err := f.cache.Write(slot, body); err != nil {
		observability.IncError(observability.ErrorCache, "fetcher")
		slog.Warn("failed to cache fetched page", "slot", slot, "error", err)
	}
}

// findCampaignID digs the numeric campaign id out of the page markup: first
// from a modal element id, then from anchors pointing at the full donor list.
func findCampaignID(doc *goquery.Document) string {
	id := ""
	doc.Find("[id]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if m := modalIDPattern.FindStringSubmatch(sel.AttrOr("id", "")); m != nil {
			id = m[1]
			return false
		}
		return true
	})
	if id != "" {
		return id
	}

	doc.Find("a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		if m := donorsPathPattern.FindStringSubmatch(sel.AttrOr("href", "")); m != nil {
			id = m[1]
			return false
		}
		return true
	})
	return id
}

func buildModalURL(pageURL, campaignID string) string {
	base, err := url.Parse(pageURL)
	if err != nil || base.Host == "" {
		return ""
	}
	modal := url.URL{
		Scheme:   base.Scheme,
		Host:     base.Host,
		Path:     fmt.Sprintf("/campaigns/%s/campaign_donors.html", campaignID),
		RawQuery: "show=all",
	}
	return modal.String()
}
