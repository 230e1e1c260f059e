package assistant

import (
	"regexp"
	"strings"

	"github.com/plateworks/storefront/internal/catalog"
	"github.com/plateworks/storefront/internal/model"
)

// The model's output is semi-trusted free text. Sanitize re-parses it through
// explicit fallback tiers (SHOW: lines, then whole-word name detection, then
// a keyword filter over the user's query) and never attaches item cards to an
// allergy-safety response.

const (
	showPrefix = "SHOW:"

	// featuredFallbackLimit bounds the popularity-query featured fallback.
	// Smaller than directFilterLimit on purpose; the limits are
	// path-specific in the product.
	featuredFallbackLimit = 6

	genericLeadIn = "Here are the dishes that match your request:"
)

// allergySignature detects the allergy-notice shape in raw model output, so
// safety responses are never decorated with item cards.
var allergySignature = regexp.MustCompile(`(?i)⚠️.*ALLERGY|allergy concerns|For your safety.*contact`)

// menuQueryPattern decides whether an item-less response to a menu-sounding
// query should fall back to catalog filtering.
var menuQueryPattern = regexp.MustCompile(`(?i)\b(show|what|items|dishes|menu|food|have|options|recommend|best|popular|good|vegetarian|vegan|fish|meat|gluten|dairy|spicy|without|no|want|get|order)\b`)

var (
	priceLinePattern   = regexp.MustCompile(`\$\d+`)
	ordinalLinePattern = regexp.MustCompile(`^\d+\.`)
	sentenceEndPattern = regexp.MustCompile(`[.!?]`)
	trailingPunct      = regexp.MustCompile(`[,.]$`)

	fallbackVeganPattern      = regexp.MustCompile(`(?i)\b(vegan|vegetarian)\b`)
	fallbackGlutenFreePattern = regexp.MustCompile(`(?i)\bgluten[- ]?free\b`)
	fallbackNoFishPattern     = regexp.MustCompile(`(?i)\b(no fish|without fish|no seafood)\b`)
	fallbackFishPattern       = regexp.MustCompile(`(?i)\b(fish|seafood|salmon|tuna)\b`)
	fallbackPopularPattern    = regexp.MustCompile(`(?i)\b(popular|best|recommend|featured|top)\b`)
)

// SanitizeResult is the parsed form of a raw model response.
type SanitizeResult struct {
	// Content is the cleaned prose shown above the item cards.
	Content string
	// Items are the menu items to render as cards, in detection order.
	Items []model.MenuItem
	// IsAllergy reports that the response matched the allergy-notice
	// signature and item detection was skipped.
	IsAllergy bool
}

func wholeWordPattern(name string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(name) + `\b`)
}

// Sanitize parses a raw model response against the catalog snapshot.
// userQuery is the user text that produced the response; it drives the
// keyword-filter fallback tier.
func Sanitize(raw, userQuery string, snap *catalog.Snapshot) SanitizeResult {
	isAllergy := allergySignature.MatchString(raw)

	// Tier 1: extract SHOW: lines. Unresolved names are dropped silently.
	var showNames []string
	var keptLines []string
	for _, line := range strings.Split(raw, "\n") {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, showPrefix) {
			showNames = append(showNames, strings.TrimSpace(trimmed[len(showPrefix):]))
		} else {
			keptLines = append(keptLines, line)
		}
	}
	content := strings.TrimSpace(strings.Join(keptLines, "\n"))

	// Safety responses keep their prose but never get item cards, even when
	// the model emitted SHOW: lines alongside the notice.
	if isAllergy {
		return SanitizeResult{Content: content, IsAllergy: true}
	}

	var items []model.MenuItem
	for _, name := range showNames {
		if item := snap.ItemByName(name); item != nil {
			items = append(items, *item)
		}
	}

	if len(items) > 0 {
		return SanitizeResult{Content: content, Items: items}
	}

	// Tier 2: whole-word item-name detection over the response body.
	var detected []model.MenuItem
	for _, item := range snap.Items {
		if wholeWordPattern(item.Name).MatchString(content) {
			detected = append(detected, item)
		}
	}

	// Tier 3: keyword-filter fallback driven by the user's query.
	if len(detected) == 0 {
		detected = queryFallbackItems(userQuery, snap)
	}

	if len(detected) == 0 {
		return SanitizeResult{Content: content}
	}

	return SanitizeResult{
		Content: simplifyContent(content, raw, detected),
		Items:   detected,
	}
}

// queryFallbackItems applies the direct-filter rules to the available catalog
// when the model mentioned no resolvable items but the user plainly asked
// about the menu.
func queryFallbackItems(userQuery string, snap *catalog.Snapshot) []model.MenuItem {
	if !menuQueryPattern.MatchString(userQuery) {
		return nil
	}

	filtered := snap.Available()

	switch {
	case fallbackVeganPattern.MatchString(userQuery):
		filtered = filterItems(filtered, func(item model.MenuItem) bool {
			return anyTagMatches(item.DietaryTags, veganTagPattern)
		})
	case fallbackGlutenFreePattern.MatchString(userQuery):
		filtered = filterItems(filtered, func(item model.MenuItem) bool {
			return anyTagMatches(item.DietaryTags, glutenTagPattern)
		})
	case fallbackNoFishPattern.MatchString(userQuery):
		filtered = filterItems(filtered, func(item model.MenuItem) bool {
			return !mentionsSeafood(item)
		})
	case fallbackFishPattern.MatchString(userQuery):
		filtered = filterItems(filtered, mentionsSeafood)
	case fallbackPopularPattern.MatchString(userQuery):
		filtered = filterItems(filtered, func(item model.MenuItem) bool {
			return item.IsFeatured
		})
	}

	if len(filtered) > 0 {
		return catalog.Truncate(filtered, directFilterLimit)
	}
	if fallbackPopularPattern.MatchString(userQuery) {
		return catalog.Truncate(snap.Featured(), featuredFallbackLimit)
	}
	return nil
}

func filterItems(items []model.MenuItem, keep func(model.MenuItem) bool) []model.MenuItem {
	var out []model.MenuItem
	for _, item := range items {
		if keep(item) {
			out = append(out, item)
		}
	}
	return out
}

// simplifyContent strips prose that duplicates the item cards: price lines,
// ordinal list markers, lines naming a detected item, and long description
// lines. When nothing usable remains it rebuilds an intro from the raw
// response's first sentence, or falls back to a generic lead-in.
func simplifyContent(content, raw string, detected []model.MenuItem) string {
	namePatterns := make([]*regexp.Regexp, len(detected))
	for i, item := range detected {
		namePatterns[i] = wholeWordPattern(item.Name)
	}

	var kept []string
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		if priceLinePattern.MatchString(trimmed) {
			continue
		}
		if ordinalLinePattern.MatchString(trimmed) {
			continue
		}
		mentionsItem := false
		for _, pattern := range namePatterns {
			if pattern.MatchString(trimmed) {
				mentionsItem = true
				break
			}
		}
		if mentionsItem {
			continue
		}
		if len(trimmed) >= 150 {
			continue
		}
		kept = append(kept, line)
	}

	content = strings.TrimSpace(strings.Join(kept, "\n"))

	if len(content) < 10 {
		first := strings.TrimSpace(sentenceEndPattern.Split(raw, 2)[0])
		if len(first) > 10 && len(first) < 200 {
			return first + ":"
		}
		return genericLeadIn
	}
	if !strings.HasSuffix(content, ":") {
		content = trailingPunct.ReplaceAllString(content, "") + ":"
	}
	return content
}
