package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSettingsNormalizeClamps(t *testing.T) {
	t.Parallel()

	cases := []struct {
		minWords, threshold         int
		wantMinWords, wantThreshold int
	}{
		{minWords: 0, threshold: 0, wantMinWords: 300, wantThreshold: 50},
		{minWords: 1200, threshold: 80, wantMinWords: 1200, wantThreshold: 80},
		{minWords: 299, threshold: 96, wantMinWords: 300, wantThreshold: 95},
	}

	for _, tc := range cases {
		got := Settings{MinWords: tc.minWords, DuplicateThreshold: tc.threshold}.Normalize()
		assert.Equal(t, tc.wantMinWords, got.MinWords)
		assert.Equal(t, tc.wantThreshold, got.DuplicateThreshold)
	}
}

func TestSettingsNormalizeEnumsAndFeeds(t *testing.T) {
	t.Parallel()

	zero := int64(0)
	got := Settings{
		Brand:              "  Acme ",
		CompetitorFeedURLs: []string{" https://a.example/feed ", "", "   "},
		PostStatus:         "PUBLISH",
		Schedule:           "weekly",
		CategoryID:         &zero,
	}.Normalize()

	assert.Equal(t, "Acme", got.Brand)
	assert.Equal(t, []string{"https://a.example/feed"}, got.CompetitorFeedURLs)
	assert.Equal(t, StatusPublish, got.PostStatus)
	assert.Equal(t, ScheduleDaily, got.Schedule)
	assert.Nil(t, got.CategoryID)

	assert.Equal(t, StatusDraft, Settings{PostStatus: "pending"}.Normalize().PostStatus)
}

func TestScheduleInterval(t *testing.T) {
	t.Parallel()

	assert.Equal(t, time.Hour, ScheduleHourly.Interval())
	assert.Equal(t, 12*time.Hour, ScheduleTwiceDaily.Interval())
	assert.Equal(t, 24*time.Hour, ScheduleDaily.Interval())
}
