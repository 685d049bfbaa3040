package domain

// GeneratedArticle is the model output plus the fields derived from it before persistence.
type GeneratedArticle struct {
	Topic           string
	RawText         string
	Title           string
	MetaDescription string
}

// ContentItem is an article stored in the content repository.
type ContentItem struct {
	ID         int64
	Title      string
	Body       string
	Status     PostStatus
	CategoryID *int64
	Metadata   map[string]string
}

// NewContentItem carries the fields required to insert a content item.
type NewContentItem struct {
	Title      string
	Body       string
	Status     PostStatus
	CategoryID *int64
}

// SkipReason enumerates why a planned topic did not produce a published item.
type SkipReason string

const (
	SkipGenerationFailed SkipReason = "generation_failed"
	SkipDuplicate        SkipReason = "duplicate"
	SkipDuplicateCheck   SkipReason = "duplicate_check_failed"
	SkipPersistFailed    SkipReason = "persist_failed"
)

// SkipRecord explains a single skipped topic.
type SkipRecord struct {
	Topic  string     `json:"topic"`
	Title  string     `json:"title,omitempty"`
	Reason SkipReason `json:"reason"`
	Detail string     `json:"detail,omitempty"`
}

// RunResult is the outcome of one pipeline run.
type RunResult struct {
	RunID     string       `json:"run_id"`
	Published int          `json:"published"`
	ItemIDs   []int64      `json:"item_ids,omitempty"`
	Skipped   []SkipRecord `json:"skipped,omitempty"`
	Summary   string       `json:"summary"`
}

// ListFilter narrows a repository listing. Zero Limit means no limit.
type ListFilter struct {
	Statuses []PostStatus
	Limit    int
}
