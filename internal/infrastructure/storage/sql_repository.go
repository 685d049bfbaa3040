package storage

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	sq "github.com/Masterminds/squirrel"
	_ "github.com/jackc/pgx/v5/stdlib"
	_ "modernc.org/sqlite"

	"SEOAutomation/internal/config"
	"SEOAutomation/internal/domain"
	"SEOAutomation/internal/ports"
)

const (
	DriverPostgres = "pgx"
	DriverSQLite   = "sqlite"

	itemsTable    = "content_items"
	metadataTable = "content_metadata"
)

// SQLRepository persists content items and their metadata in Postgres or SQLite.
type SQLRepository struct {
	db     *sql.DB
	driver string
	sb     sq.StatementBuilderType
}

var _ ports.ContentRepository = (*SQLRepository)(nil)

// Open connects using the configured driver and creates the schema when missing.
func Open(ctx context.Context, cfg config.DatabaseConfig) (*SQLRepository, error) {
	driver, err := normalizeDriver(cfg.Driver)
	if err != nil {
		return nil, err
	}

	db, err := sql.Open(driver, cfg.DSN)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", driver, err)
	}
	if driver == DriverSQLite {
		db.SetMaxOpenConns(1)
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping %s: %w", driver, err)
	}

	repo := NewSQLRepository(db, driver)
	if err := repo.EnsureSchema(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}
	return repo, nil
}

// NewSQLRepository wires an open sql.DB; driver selects the placeholder format and DDL dialect.
func NewSQLRepository(db *sql.DB, driver string) *SQLRepository {
	var placeholder sq.PlaceholderFormat = sq.Question
	if driver == DriverPostgres {
		placeholder = sq.Dollar
	}
	return &SQLRepository{
		db:     db,
		driver: driver,
		sb:     sq.StatementBuilder.PlaceholderFormat(placeholder),
	}
}

// Close releases the underlying connection pool.
func (r *SQLRepository) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}

// EnsureSchema creates the content tables if they do not exist.
func (r *SQLRepository) EnsureSchema(ctx context.Context) error {
	idColumn := "id INTEGER PRIMARY KEY AUTOINCREMENT"
	if r.driver == DriverPostgres {
		idColumn = "id BIGSERIAL PRIMARY KEY"
	}

	statements := []string{
		`CREATE TABLE IF NOT EXISTS ` + itemsTable + ` (
			` + idColumn + `,
			title TEXT NOT NULL,
			body TEXT NOT NULL,
			status TEXT NOT NULL,
			category_id BIGINT NULL,
			created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS ` + metadataTable + ` (
			item_id BIGINT NOT NULL REFERENCES ` + itemsTable + `(id) ON DELETE CASCADE,
			meta_key TEXT NOT NULL,
			meta_value TEXT NOT NULL,
			PRIMARY KEY (item_id, meta_key)
		)`,
	}

	for _, stmt := range statements {
		if _, err := r.db.ExecContext(ctx, stmt); err != nil {
			return fmt.Errorf("ensure schema: %w", err)
		}
	}
	return nil
}

// ListItems returns items newest first, optionally filtered by status and capped by filter.Limit.
func (r *SQLRepository) ListItems(ctx context.Context, filter domain.ListFilter) ([]domain.ContentItem, error) {
	query := r.sb.Select("id", "title", "body", "status", "category_id").
		From(itemsTable).
		OrderBy("id DESC")

	if len(filter.Statuses) > 0 {
		statuses := make([]string, len(filter.Statuses))
		for i, s := range filter.Statuses {
			statuses[i] = string(s)
		}
		query = query.Where(sq.Eq{"status": statuses})
	}
	if filter.Limit > 0 {
		query = query.Limit(uint64(filter.Limit))
	}

	stmt, args, err := query.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build list query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}

	var items []domain.ContentItem
	for rows.Next() {
		var (
			item     domain.ContentItem
			status   string
			category sql.NullInt64
		)
		if err := rows.Scan(&item.ID, &item.Title, &item.Body, &status, &category); err != nil {
			_ = rows.Close()
			return nil, fmt.Errorf("scan item: %w", err)
		}
		item.Status = domain.PostStatus(status)
		if category.Valid {
			id := category.Int64
			item.CategoryID = &id
		}
		items = append(items, item)
	}

	if rowsErr := rows.Err(); rowsErr != nil {
		_ = rows.Close()
		return nil, fmt.Errorf("rows iteration: %w", rowsErr)
	}

	if closeErr := rows.Close(); closeErr != nil {
		return nil, fmt.Errorf("close rows: %w", closeErr)
	}

	return items, nil
}

// InsertItem creates a new item and returns its id.
func (r *SQLRepository) InsertItem(ctx context.Context, item domain.NewContentItem) (int64, error) {
	if strings.TrimSpace(item.Title) == "" {
		return 0, fmt.Errorf("insert item: empty title")
	}

	var category sql.NullInt64
	if item.CategoryID != nil {
		category = sql.NullInt64{Int64: *item.CategoryID, Valid: true}
	}

	stmt, args, err := r.sb.Insert(itemsTable).
		Columns("title", "body", "status", "category_id").
		Values(item.Title, item.Body, string(item.Status), category).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build insert: %w", err)
	}

	var id int64
	if err := r.db.QueryRowContext(ctx, stmt, args...).Scan(&id); err != nil {
		return 0, fmt.Errorf("insert item: %w", err)
	}
	return id, nil
}

// SetMetadata upserts one metadata entry on an item.
func (r *SQLRepository) SetMetadata(ctx context.Context, itemID int64, key, value string) error {
	stmt, args, err := r.sb.Insert(metadataTable).
		Columns("item_id", "meta_key", "meta_value").
		Values(itemID, key, value).
		Suffix("ON CONFLICT (item_id, meta_key) DO UPDATE SET meta_value = excluded.meta_value").
		ToSql()
	if err != nil {
		return fmt.Errorf("build metadata upsert: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, stmt, args...); err != nil {
		return fmt.Errorf("upsert metadata %s: %w", key, err)
	}
	return nil
}

// Metadata returns all metadata entries of an item.
func (r *SQLRepository) Metadata(ctx context.Context, itemID int64) (map[string]string, error) {
	stmt, args, err := r.sb.Select("meta_key", "meta_value").
		From(metadataTable).
		Where(sq.Eq{"item_id": itemID}).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build metadata query: %w", err)
	}

	rows, err := r.db.QueryContext(ctx, stmt, args...)
	if err != nil {
		return nil, fmt.Errorf("query metadata: %w", err)
	}
	defer rows.Close()

	meta := map[string]string{}
	for rows.Next() {
		var key, value string
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("scan metadata: %w", err)
		}
		meta[key] = value
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows iteration: %w", err)
	}
	return meta, nil
}

func normalizeDriver(driver string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(driver)) {
	case "", "pgx", "postgres", "postgresql":
		return DriverPostgres, nil
	case "sqlite", "sqlite3":
		return DriverSQLite, nil
	default:
		return "", fmt.Errorf("unsupported database driver %q", driver)
	}
}
