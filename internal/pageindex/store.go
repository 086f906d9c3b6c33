package pageindex

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"
)

// Store persists a built page index to SQLite so the server can warm-start
// without rescanning the content trees. Use ":memory:" for tests.
type Store struct {
	db *sql.DB
}

// OpenStore opens (and if needed initializes) the index database at dbPath.
func OpenStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open index database: %w", err)
	}

	store := &Store{db: db}
	if err := store.initialize(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("initialize index schema: %w", err)
	}
	return store, nil
}

func (s *Store) initialize() error {
	schema := `
	CREATE TABLE IF NOT EXISTS pages (
		locale TEXT NOT NULL,
		content_path TEXT NOT NULL,
		url TEXT NOT NULL,
		dir TEXT NOT NULL,
		title TEXT,
		fingerprint TEXT,
		file_path TEXT,
		PRIMARY KEY (locale, content_path)
	);
	CREATE TABLE IF NOT EXISTS meta (
		key TEXT PRIMARY KEY,
		value TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Save replaces the persisted index with the given one.
func (s *Store) Save(ctx context.Context, ix *Index) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin index save: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM pages"); err != nil {
		return fmt.Errorf("clear pages: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		"INSERT INTO pages (locale, content_path, url, dir, title, fingerprint, file_path) VALUES (?, ?, ?, ?, ?, ?, ?)")
	if err != nil {
		return fmt.Errorf("prepare page insert: %w", err)
	}
	defer stmt.Close()

	for _, p := range ix.Pages() {
		locale := p.Locale
		if locale == "" {
			locale = ix.DefaultLocale()
		}
		if _, err := stmt.ExecContext(ctx, locale, p.ContentPath, p.URL, p.Dir, p.Title, p.Fingerprint, p.FilePath); err != nil {
			return fmt.Errorf("insert page %s: %w", p.ContentPath, err)
		}
	}

	if _, err := tx.ExecContext(ctx,
		"INSERT INTO meta (key, value) VALUES ('default_locale', ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		ix.DefaultLocale()); err != nil {
		return fmt.Errorf("save index metadata: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit index save: %w", err)
	}
	return nil
}

// Load reads the persisted index. An empty database yields an empty index
// with the provided fallback locale.
func (s *Store) Load(ctx context.Context, fallbackLocale string) (*Index, error) {
	defaultLocale := fallbackLocale
	row := s.db.QueryRowContext(ctx, "SELECT value FROM meta WHERE key = 'default_locale'")
	if err := row.Scan(&defaultLocale); err != nil && err != sql.ErrNoRows {
		return nil, fmt.Errorf("read index metadata: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		"SELECT locale, content_path, url, dir, title, fingerprint, file_path FROM pages ORDER BY locale, content_path")
	if err != nil {
		return nil, fmt.Errorf("query pages: %w", err)
	}
	defer rows.Close()

	var pages []Page
	for rows.Next() {
		var p Page
		if err := rows.Scan(&p.Locale, &p.ContentPath, &p.URL, &p.Dir, &p.Title, &p.Fingerprint, &p.FilePath); err != nil {
			return nil, fmt.Errorf("scan page row: %w", err)
		}
		pages = append(pages, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate pages: %w", err)
	}

	return NewIndex(defaultLocale, pages), nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}
