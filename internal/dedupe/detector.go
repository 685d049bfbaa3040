package dedupe

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"SEOAutomation/internal/article"
	"SEOAutomation/internal/domain"
	"SEOAutomation/internal/ports"
)

const (
	// DefaultScanLimit caps how many existing items a check compares against. Items past the cap are
	// never compared, so detection degrades on repositories larger than this.
	DefaultScanLimit = 500

	bodySnippetBytes = 500
	bodyLeeway       = 10
)

// Match describes the existing item that made a candidate a duplicate.
type Match struct {
	ItemID  int64
	Title   string
	Field   string
	Percent float64
}

// IsDuplicate reports whether the candidate is too similar to any existing item. Titles are compared
// against thresholdPercent; the first 500 bytes of the bodies against thresholdPercent-10.
func IsDuplicate(title, body string, existing []domain.ContentItem, thresholdPercent int) bool {
	_, ok := FindDuplicate(title, body, existing, thresholdPercent)
	return ok
}

// FindDuplicate is IsDuplicate that also returns the first item that triggered the verdict.
func FindDuplicate(title, body string, existing []domain.ContentItem, thresholdPercent int) (Match, bool) {
	candidateTitle := strings.ToLower(title)
	candidateBody := snippet(strings.ToLower(body))
	titleThreshold := float64(thresholdPercent)
	bodyThreshold := float64(thresholdPercent - bodyLeeway)

	for _, item := range existing {
		if p := Similarity(strings.ToLower(item.Title), candidateTitle); p >= titleThreshold {
			return Match{ItemID: item.ID, Title: item.Title, Field: "title", Percent: p}, true
		}

		existingBody := snippet(strings.ToLower(article.PlainText(item.Body)))
		if p := Similarity(existingBody, candidateBody); p >= bodyThreshold {
			return Match{ItemID: item.ID, Title: item.Title, Field: "body", Percent: p}, true
		}
	}

	return Match{}, false
}

func snippet(s string) string {
	if len(s) > bodySnippetBytes {
		return s[:bodySnippetBytes]
	}
	return s
}

// Detector runs duplicate checks against the content repository.
type Detector struct {
	lister    ports.ContentLister
	scanLimit int
	logger    *slog.Logger
}

var _ ports.DuplicateChecker = (*Detector)(nil)

// NewDetector wires a repository lister; scanLimit <= 0 falls back to DefaultScanLimit.
func NewDetector(lister ports.ContentLister, scanLimit int, logger *slog.Logger) *Detector {
	if scanLimit <= 0 {
		scanLimit = DefaultScanLimit
	}
	return &Detector{lister: lister, scanLimit: scanLimit, logger: logger}
}

// Check lists existing items of any status and compares the candidate against them.
func (d *Detector) Check(ctx context.Context, title, body string, thresholdPercent int) (bool, error) {
	if d.lister == nil {
		return false, fmt.Errorf("duplicate detector has no repository")
	}

	items, err := d.lister.ListItems(ctx, domain.ListFilter{Limit: d.scanLimit})
	if err != nil {
		return false, fmt.Errorf("list existing items: %w", err)
	}

	match, dup := FindDuplicate(title, body, items, thresholdPercent)
	if dup && d.logger != nil {
		d.logger.Debug("duplicate match",
			"title", title,
			"existing_id", match.ItemID,
			"existing_title", match.Title,
			"field", match.Field,
			"percent", match.Percent,
		)
	}
	return dup, nil
}
