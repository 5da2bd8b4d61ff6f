package scraper

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"
)

// NameSelectors lists the known markup shapes donor names have appeared in
// across historical versions of the campaign pages. Matches are collected in
// document order and deduplicated, so appending new patterns as the markup
// drifts is safe.
var NameSelectors = []string{
	"#recent_donors_block .profile_block.small .profile_block-content span",
	".donor-listing .text-xl",
	".donor-listing .donor-name",
	".donor .name",
	".donor-name",
	".donor_name",
	".campaign-donor .name",
	".profile_block-content span",
}

// The "View All Donors" modal renders a leaderboard table; the first cell of
// each row holds the donor name, with affiliation icons in a sibling column.
const (
	leaderboardRowSelector  = "table#all-table tr.leaderboard-row"
	leaderboardNameSelector = "div.col-sm-6"
)

// ExtractNames pulls donor names out of a parsed campaign page. Names come
// back trimmed, non-empty, in first-occurrence document order, deduplicated
// by exact match.
func ExtractNames(doc *goquery.Document) []string {
	seen := make(map[string]struct{})
	var names []string

	add := func(raw string) {
		name := collapseWhitespace(raw)
		if name == "" {
			return
		}
		if _, ok := seen[name]; ok {
			return
		}
		seen[name] = struct{}{}
		names = append(names, name)
	}

	// A single selector group keeps matches in document order regardless of
	// which pattern hit.
	doc.Find(strings.Join(NameSelectors, ", ")).Each(func(_ int, sel *goquery.Selection) {
		add(selectionText(sel))
	})

	doc.Find(leaderboardRowSelector).Each(func(_ int, row *goquery.Selection) {
		cell := row.Find("td").First()
		if cell.Length() == 0 {
			return
		}
		if nameDiv := cell.Find(leaderboardNameSelector).First(); nameDiv.Length() > 0 {
			add(selectionText(nameDiv))
			return
		}
		add(selectionText(cell))
	})

	return names
}

func selectionText(sel *goquery.Selection) string {
	var sb strings.Builder
	for _, n := range sel.Nodes {
		nodeText(n, &sb)
	}
	return sb.String()
}

func nodeText(n *html.Node, sb *strings.Builder) {
	if n.Type == html.TextNode {
		sb.WriteString(n.Data)
		sb.WriteString(" ")
		return
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		nodeText(c, sb)
	}
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// dedupe removes exact duplicates preserving first-seen order. Used when
// merging names across documents; ExtractNames already dedups within one.
func dedupe(names []string) []string {
	seen := make(map[string]struct{}, len(names))
	var out []string
	for _, name := range names {
		if name == "" {
			continue
		}
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}
