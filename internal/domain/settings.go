package domain

import (
	"strings"
	"time"
)

const (
	MinWordsFloor         = 300
	DuplicateThresholdMin = 50
	DuplicateThresholdMax = 95
)

// PostStatus is the status assigned to newly created content items.
type PostStatus string

const (
	StatusDraft   PostStatus = "draft"
	StatusPublish PostStatus = "publish"
)

// Schedule names how often the pipeline is triggered automatically.
type Schedule string

const (
	ScheduleHourly     Schedule = "hourly"
	ScheduleTwiceDaily Schedule = "twicedaily"
	ScheduleDaily      Schedule = "daily"
)

// Interval converts the schedule into a ticker period.
func (s Schedule) Interval() time.Duration {
	switch s {
	case ScheduleHourly:
		return time.Hour
	case ScheduleTwiceDaily:
		return 12 * time.Hour
	default:
		return 24 * time.Hour
	}
}

// Settings is the immutable configuration every pipeline component receives at call time.
type Settings struct {
	Brand              string
	APIKey             string
	CompetitorFeedURLs []string
	PostStatus         PostStatus
	CategoryID         *int64
	MinWords           int
	DuplicateThreshold int
	Schedule           Schedule
}

// Normalize applies the boundary clamps; components downstream assume they hold.
func (s Settings) Normalize() Settings {
	out := s
	out.Brand = strings.TrimSpace(s.Brand)
	out.APIKey = strings.TrimSpace(s.APIKey)

	out.CompetitorFeedURLs = make([]string, 0, len(s.CompetitorFeedURLs))
	for _, u := range s.CompetitorFeedURLs {
		if u = strings.TrimSpace(u); u != "" {
			out.CompetitorFeedURLs = append(out.CompetitorFeedURLs, u)
		}
	}

	switch PostStatus(strings.ToLower(strings.TrimSpace(string(s.PostStatus)))) {
	case StatusPublish:
		out.PostStatus = StatusPublish
	default:
		out.PostStatus = StatusDraft
	}

	switch Schedule(strings.ToLower(strings.TrimSpace(string(s.Schedule)))) {
	case ScheduleHourly:
		out.Schedule = ScheduleHourly
	case ScheduleTwiceDaily:
		out.Schedule = ScheduleTwiceDaily
	default:
		out.Schedule = ScheduleDaily
	}

	if s.CategoryID != nil {
		id := *s.CategoryID
		if id > 0 {
			out.CategoryID = &id
		} else {
			out.CategoryID = nil
		}
	}

	out.MinWords = max(MinWordsFloor, s.MinWords)
	out.DuplicateThreshold = min(DuplicateThresholdMax, max(DuplicateThresholdMin, s.DuplicateThreshold))
	return out
}
