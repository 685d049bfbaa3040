package topics

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"SEOAutomation/internal/domain"
)

const comparisonTemplate = "%s vs %s: Which Hosting Provider Should You Choose in 2025?"

// Seeds are the generic hosting guides planned after competitor comparisons.
var Seeds = []string{
	"Best Web Hosting for Small Businesses in 2025",
	"VPS vs Shared Hosting: Which Is Right for Your Site?",
	"How to Choose the Best Managed WordPress Hosting",
	"How SSD and NVMe Storage Improve Hosting Performance",
	"Hardening WordPress on cPanel: Security Checklist",
}

var (
	schemePrefix = regexp.MustCompile(`(?i)^https?://`)
	wwwPrefix    = regexp.MustCompile(`(?i)^www\.`)
)

// Plan returns up to limit topics: one comparison per competitor feed first, then the seed guides.
// Entries equal after trimming and lower-casing are dropped, keeping the first.
func Plan(settings domain.Settings, limit int) []string {
	if limit <= 0 {
		return nil
	}

	candidates := make([]string, 0, len(settings.CompetitorFeedURLs)+len(Seeds))
	for _, feedURL := range settings.CompetitorFeedURLs {
		candidates = append(candidates, fmt.Sprintf(comparisonTemplate, settings.Brand, CompetitorName(feedURL)))
	}
	candidates = append(candidates, Seeds...)

	out := make([]string, 0, limit)
	seen := make(map[string]struct{}, len(candidates))
	for _, topic := range candidates {
		key := strings.ToLower(strings.TrimSpace(topic))
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, topic)
		if len(out) >= limit {
			break
		}
	}
	return out
}

// CompetitorName derives a display name from a feed URL: "https://www.blue-host.com/feed" -> "Blue Host".
func CompetitorName(feedURL string) string {
	name := schemePrefix.ReplaceAllString(strings.TrimSpace(feedURL), "")
	name = wwwPrefix.ReplaceAllString(name, "")
	if i := strings.IndexByte(name, '.'); i >= 0 {
		name = name[:i]
	}
	name = strings.NewReplacer("-", " ", "_", " ").Replace(name)

	words := strings.Fields(name)
	for i, w := range words {
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}
