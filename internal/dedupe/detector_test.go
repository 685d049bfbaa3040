package dedupe

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SEOAutomation/internal/domain"
)

type stubLister struct {
	items  []domain.ContentItem
	err    error
	filter domain.ListFilter
}

func (s *stubLister) ListItems(_ context.Context, filter domain.ListFilter) ([]domain.ContentItem, error) {
	s.filter = filter
	return s.items, s.err
}

func TestIsDuplicateTitleScenario(t *testing.T) {
	t.Parallel()

	existing := []domain.ContentItem{
		{ID: 1, Title: "VPS vs Shared Hosting: Which Is Right for Your Site?", Body: "<p>Unrelated words.</p>"},
	}

	assert.True(t, IsDuplicate("VPS vs Shared Hosting: Which Is Right For You?", "zzz", existing, 80))
}

func TestIsDuplicateBodyUsesLooserThreshold(t *testing.T) {
	t.Parallel()

	body := strings.Repeat("Managed WordPress hosting keeps your site fast and secure. ", 12)
	existing := []domain.ContentItem{
		{ID: 7, Title: "Completely different heading", Body: "<p>" + body + "</p>"},
	}

	match, dup := FindDuplicate("Zebra", body, existing, 95)
	require.True(t, dup)
	assert.Equal(t, int64(7), match.ItemID)
	assert.Equal(t, "body", match.Field)
}

func TestIsDuplicateNoExistingItems(t *testing.T) {
	t.Parallel()

	assert.False(t, IsDuplicate("Anything", "at all", nil, 50))
}

func TestIsDuplicateEmptyCandidate(t *testing.T) {
	t.Parallel()

	existing := []domain.ContentItem{{ID: 1, Title: "Hosting", Body: "<p>Body</p>"}}
	assert.False(t, IsDuplicate("", "", existing, 50))
}

func TestIsDuplicateMonotonicInThreshold(t *testing.T) {
	t.Parallel()

	existing := []domain.ContentItem{
		{ID: 1, Title: "Best Web Hosting for Small Businesses in 2025", Body: "<p>Small businesses need reliable hosting.</p>"},
		{ID: 2, Title: "How SSD and NVMe Storage Improve Hosting Performance", Body: "<p>NVMe drives are fast.</p>"},
	}
	candidates := []struct{ title, body string }{
		{"Best Web Hosting for Small Business in 2025", "Small businesses need reliable hosting and support."},
		{"NVMe Storage and Hosting Performance", "NVMe drives are fast and SSDs are cheap."},
		{"Hardening WordPress on cPanel", "Lock down your admin panel."},
	}

	for _, c := range candidates {
		prev := true
		for threshold := domain.DuplicateThresholdMin; threshold <= domain.DuplicateThresholdMax; threshold++ {
			dup := IsDuplicate(c.title, c.body, existing, threshold)
			if dup {
				assert.True(t, prev, "verdict flipped back to duplicate at %d for %q", threshold, c.title)
			}
			prev = dup
		}
	}
}

func TestDetectorCheckListsAllStatusesWithCap(t *testing.T) {
	t.Parallel()

	lister := &stubLister{items: []domain.ContentItem{
		{ID: 3, Title: "Hardening WordPress on cPanel: Security Checklist", Status: domain.StatusDraft},
	}}
	d := NewDetector(lister, 0, nil)

	dup, err := d.Check(context.Background(), "Hardening WordPress on cPanel: Security Checklist", "", 80)
	require.NoError(t, err)
	assert.True(t, dup)
	assert.Equal(t, DefaultScanLimit, lister.filter.Limit)
	assert.Empty(t, lister.filter.Statuses)
}

func TestDetectorCheckPropagatesListError(t *testing.T) {
	t.Parallel()

	d := NewDetector(&stubLister{err: errors.New("db down")}, 10, nil)

	_, err := d.Check(context.Background(), "Title", "Body", 80)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "db down")
}
