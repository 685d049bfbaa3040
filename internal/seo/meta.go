package seo

import (
	"context"
	"fmt"

	"SEOAutomation/internal/ports"
)

// KeyMap lists, per logical field, the metadata keys downstream renderers read it from.
type KeyMap struct {
	Title       []string `yaml:"title"`
	Description []string `yaml:"description"`
}

// DefaultKeyMap covers Yoast, Rank Math and AIOSEO plus one generic description key.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Title: []string{
			"_yoast_wpseo_title",
			"rank_math_title",
			"_aioseo_title",
		},
		Description: []string{
			"_yoast_wpseo_metadesc",
			"rank_math_description",
			"_aioseo_description",
			"_aisa_meta_description",
		},
	}
}

// Empty reports whether no key is configured for any field.
func (k KeyMap) Empty() bool {
	return len(k.Title) == 0 && len(k.Description) == 0
}

// Writer fans title and description out to every configured metadata key.
type Writer struct {
	sink ports.MetadataSink
	keys KeyMap
}

var _ ports.MetadataWriter = (*Writer)(nil)

// NewWriter uses DefaultKeyMap when keys is empty.
func NewWriter(sink ports.MetadataSink, keys KeyMap) *Writer {
	if keys.Empty() {
		keys = DefaultKeyMap()
	}
	return &Writer{sink: sink, keys: keys}
}

// Write stores title and description on the item; the first failing key aborts.
func (w *Writer) Write(ctx context.Context, itemID int64, title, description string) error {
	if w.sink == nil {
		return fmt.Errorf("metadata sink is not configured")
	}

	for _, key := range w.keys.Title {
		if err := w.sink.SetMetadata(ctx, itemID, key, title); err != nil {
			return fmt.Errorf("set %s: %w", key, err)
		}
	}
	for _, key := range w.keys.Description {
		if err := w.sink.SetMetadata(ctx, itemID, key, description); err != nil {
			return fmt.Errorf("set %s: %w", key, err)
		}
	}
	return nil
}
