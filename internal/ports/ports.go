package ports

import (
	"context"
	"time"

	"SEOAutomation/internal/domain"
)

// HeadlineSource pulls recent competitor headlines used as prompt context.
type HeadlineSource interface {
	FetchHeadlines(ctx context.Context, feedURLs []string) []string
}

// Generator sends a system instruction and user prompt to an LLM and returns the generated text.
type Generator interface {
	Complete(ctx context.Context, apiKey, system, prompt string) (string, error)
}

// ContentLister reads existing items for duplicate comparison.
type ContentLister interface {
	ListItems(ctx context.Context, filter domain.ListFilter) ([]domain.ContentItem, error)
}

// MetadataSink stores a key/value metadata entry on a content item.
type MetadataSink interface {
	SetMetadata(ctx context.Context, itemID int64, key, value string) error
}

// ContentRepository stores published and draft articles.
type ContentRepository interface {
	ContentLister
	MetadataSink
	InsertItem(ctx context.Context, item domain.NewContentItem) (int64, error)
}

// DuplicateChecker decides whether a candidate article is too similar to existing content.
type DuplicateChecker interface {
	Check(ctx context.Context, title, body string, thresholdPercent int) (bool, error)
}

// MetadataWriter attaches SEO title and description to a freshly created item.
type MetadataWriter interface {
	Write(ctx context.Context, itemID int64, title, description string) error
}

// Notifier delivers run summaries to an operator channel.
type Notifier interface {
	PublishSummary(ctx context.Context, summary string) error
}

// Scheduler controls when pipelines execute.
type Scheduler interface {
	Start(ctx context.Context, job func(time.Time)) error
	Stop(ctx context.Context) error
}
