package seo

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingSink struct {
	values map[string]string
	failOn string
}

func (r *recordingSink) SetMetadata(_ context.Context, _ int64, key, value string) error {
	if key == r.failOn {
		return errors.New("write refused")
	}
	if r.values == nil {
		r.values = map[string]string{}
	}
	r.values[key] = value
	return nil
}

func TestWriterDefaultKeys(t *testing.T) {
	t.Parallel()

	sink := &recordingSink{}
	w := NewWriter(sink, KeyMap{})

	require.NoError(t, w.Write(context.Background(), 42, "Title", "Desc"))
	assert.Len(t, sink.values, 7)
	assert.Equal(t, "Title", sink.values["_yoast_wpseo_title"])
	assert.Equal(t, "Title", sink.values["rank_math_title"])
	assert.Equal(t, "Desc", sink.values["_aioseo_description"])
	assert.Equal(t, "Desc", sink.values["_aisa_meta_description"])
}

func TestWriterCustomKeys(t *testing.T) {
	t.Parallel()

	sink := &recordingSink{}
	w := NewWriter(sink, KeyMap{Description: []string{"og:description"}})

	require.NoError(t, w.Write(context.Background(), 1, "Title", "Desc"))
	assert.Equal(t, map[string]string{"og:description": "Desc"}, sink.values)
}

func TestWriterStopsOnFailure(t *testing.T) {
	t.Parallel()

	sink := &recordingSink{failOn: "rank_math_title"}
	w := NewWriter(sink, DefaultKeyMap())

	err := w.Write(context.Background(), 1, "Title", "Desc")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "rank_math_title")
	assert.NotContains(t, sink.values, "_aioseo_title")
}
