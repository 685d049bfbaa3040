package storage

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SEOAutomation/internal/config"
	"SEOAutomation/internal/domain"
)

func openTestRepository(t *testing.T) *SQLRepository {
	t.Helper()

	repo, err := Open(context.Background(), config.DatabaseConfig{
		Driver: "sqlite",
		DSN:    filepath.Join(t.TempDir(), "content.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Close() })
	return repo
}

func TestInsertAndListItems(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := openTestRepository(t)
	category := int64(7)

	firstID, err := repo.InsertItem(ctx, domain.NewContentItem{Title: "First", Body: "<p>one</p>", Status: domain.StatusDraft})
	require.NoError(t, err)
	secondID, err := repo.InsertItem(ctx, domain.NewContentItem{Title: "Second", Body: "<p>two</p>", Status: domain.StatusPublish, CategoryID: &category})
	require.NoError(t, err)
	assert.Greater(t, secondID, firstID)

	items, err := repo.ListItems(ctx, domain.ListFilter{})
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "Second", items[0].Title)
	assert.Equal(t, domain.StatusPublish, items[0].Status)
	require.NotNil(t, items[0].CategoryID)
	assert.Equal(t, category, *items[0].CategoryID)
	assert.Equal(t, "First", items[1].Title)
	assert.Nil(t, items[1].CategoryID)
}

func TestListItemsFilterAndLimit(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := openTestRepository(t)
	for _, status := range []domain.PostStatus{domain.StatusDraft, domain.StatusPublish, domain.StatusDraft} {
		_, err := repo.InsertItem(ctx, domain.NewContentItem{Title: string(status), Body: "b", Status: status})
		require.NoError(t, err)
	}

	drafts, err := repo.ListItems(ctx, domain.ListFilter{Statuses: []domain.PostStatus{domain.StatusDraft}})
	require.NoError(t, err)
	assert.Len(t, drafts, 2)

	limited, err := repo.ListItems(ctx, domain.ListFilter{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)
}

func TestInsertItemRejectsEmptyTitle(t *testing.T) {
	t.Parallel()

	_, err := openTestRepository(t).InsertItem(context.Background(), domain.NewContentItem{Title: "  "})
	require.Error(t, err)
}

func TestSetMetadataUpserts(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	repo := openTestRepository(t)
	id, err := repo.InsertItem(ctx, domain.NewContentItem{Title: "Item", Body: "b", Status: domain.StatusDraft})
	require.NoError(t, err)

	require.NoError(t, repo.SetMetadata(ctx, id, "rank_math_title", "old"))
	require.NoError(t, repo.SetMetadata(ctx, id, "rank_math_title", "new"))
	require.NoError(t, repo.SetMetadata(ctx, id, "_aioseo_description", "desc"))

	meta, err := repo.Metadata(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"rank_math_title": "new", "_aioseo_description": "desc"}, meta)
}

func TestOpenRejectsUnknownDriver(t *testing.T) {
	t.Parallel()

	_, err := Open(context.Background(), config.DatabaseConfig{Driver: "oracle"})
	require.Error(t, err)
}

func TestPostgresPlaceholders(t *testing.T) {
	t.Parallel()

	repo := NewSQLRepository(nil, DriverPostgres)
	stmt, _, err := repo.sb.Select("id").From(itemsTable).Where("status = ?", "draft").ToSql()
	require.NoError(t, err)
	assert.Equal(t, "SELECT id FROM content_items WHERE status = $1", stmt)
}
