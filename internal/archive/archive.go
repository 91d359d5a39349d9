// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package archive maintains a local SQLite index over written MDX posts so
// past output stays searchable without re-reading every file.
package archive

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/pdiddy/blog-engine/internal/mdx"
	"github.com/pdiddy/blog-engine/pkg/types"
)

const dbFile = "posts.db"

// Store manages the post archive SQLite database.
type Store struct {
	db         *sql.DB
	maxResults int
}

// NewStore opens or creates the archive database at
// cfg.ArchiveDir/posts.db, creating the schema if it does not exist.
func NewStore(cfg types.ArchiveConfig) (*Store, error) {
	if err := os.MkdirAll(cfg.ArchiveDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating archive directory: %w", err)
	}

	dbPath := filepath.Join(cfg.ArchiveDir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS posts (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			slug TEXT NOT NULL UNIQUE,
			title TEXT,
			date TEXT,
			category TEXT,
			description TEXT,
			tags TEXT,
			file_path TEXT,
			content TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_posts_date ON posts(date)`,
		`CREATE TABLE IF NOT EXISTS indexing_status (
			file_name TEXT PRIMARY KEY,
			file_mod_time TEXT
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='posts_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE posts_fts USING fts5(title, description, content, content=posts, content_rowid=rowid)`,
			`CREATE TRIGGER posts_ai AFTER INSERT ON posts BEGIN
				INSERT INTO posts_fts(rowid, title, description, content) VALUES (new.rowid, new.title, new.description, new.content);
			END`,
			`CREATE TRIGGER posts_ad AFTER DELETE ON posts BEGIN
				INSERT INTO posts_fts(posts_fts, rowid, title, description, content) VALUES('delete', old.rowid, old.title, old.description, old.content);
			END`,
			`CREATE TRIGGER posts_au AFTER UPDATE ON posts BEGIN
				INSERT INTO posts_fts(posts_fts, rowid, title, description, content) VALUES('delete', old.rowid, old.title, old.description, old.content);
				INSERT INTO posts_fts(rowid, title, description, content) VALUES (new.rowid, new.title, new.description, new.content);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// IndexSummary holds counts from one archive indexing run.
type IndexSummary struct {
	Indexed int
	Updated int
	Skipped int
	Failed  int
}

// Total returns the number of files processed.
func (s IndexSummary) Total() int {
	return s.Indexed + s.Updated + s.Skipped + s.Failed
}

// Index scans postsDir for .mdx files and upserts them into the archive.
// Files whose modification time is unchanged since the last run are
// skipped. Individual file failures are reported on w and counted, never
// fatal to the run.
func (s *Store) Index(ctx context.Context, postsDir string, w io.Writer) (IndexSummary, error) {
	entries, err := os.ReadDir(postsDir)
	if err != nil {
		return IndexSummary{}, fmt.Errorf("reading posts directory %s: %w", postsDir, err)
	}

	var summary IndexSummary

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".mdx") {
			continue
		}

		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		name := entry.Name()
		path := filepath.Join(postsDir, name)

		info, err := entry.Info()
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", name, err)
			summary.Failed++
			continue
		}
		modTime := info.ModTime().UTC().Format(time.RFC3339Nano)

		var storedModTime string
		err = s.db.QueryRowContext(ctx,
			`SELECT file_mod_time FROM indexing_status WHERE file_name = ?`, name,
		).Scan(&storedModTime)

		if err == nil && storedModTime == modTime {
			fmt.Fprintf(w, "skipped %s\n", name)
			summary.Skipped++
			continue
		}

		isUpdate := err == nil

		if err := s.indexFile(ctx, name, path, modTime); err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", name, err)
			summary.Failed++
			continue
		}

		if isUpdate {
			fmt.Fprintf(w, "updated %s\n", name)
			summary.Updated++
		} else {
			fmt.Fprintf(w, "indexed %s\n", name)
			summary.Indexed++
		}
	}

	fmt.Fprintf(w, "\nindexed: %d, updated: %d, skipped: %d, failed: %d\n",
		summary.Indexed, summary.Updated, summary.Skipped, summary.Failed)

	return summary, nil
}

func (s *Store) indexFile(ctx context.Context, name, path, modTime string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}

	fm, body, err := mdx.ParseFrontmatter(data)
	if err != nil {
		return fmt.Errorf("parse error: %w", err)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	tagsJSON, _ := json.Marshal(fm.Tags)
	_, err = tx.ExecContext(ctx,
		`INSERT INTO posts (slug, title, date, category, description, tags, file_path, content)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(slug) DO UPDATE SET
			title=excluded.title, date=excluded.date, category=excluded.category,
			description=excluded.description, tags=excluded.tags,
			file_path=excluded.file_path, content=excluded.content`,
		fm.Slug, fm.Title, fm.Date, fm.Category, fm.Description,
		string(tagsJSON), path, body,
	)
	if err != nil {
		return fmt.Errorf("upserting post: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO indexing_status (file_name, file_mod_time) VALUES (?, ?)
		 ON CONFLICT(file_name) DO UPDATE SET file_mod_time=excluded.file_mod_time`,
		name, modTime,
	)
	if err != nil {
		return fmt.Errorf("updating indexing status: %w", err)
	}

	return tx.Commit()
}

// SearchResult is one archive search hit.
type SearchResult struct {
	Slug        string   `json:"slug"`
	Title       string   `json:"title"`
	Date        string   `json:"date"`
	Category    string   `json:"category"`
	Description string   `json:"description"`
	Tags        []string `json:"tags"`
	FilePath    string   `json:"file_path"`
}

// Search runs an FTS5 full-text query over titles, descriptions, and
// content, ranked best match first.
func (s *Store) Search(ctx context.Context, query string) ([]SearchResult, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT p.slug, p.title, p.date, p.category, p.description, p.tags, p.file_path
		 FROM posts_fts f
		 JOIN posts p ON p.rowid = f.rowid
		 WHERE posts_fts MATCH ?
		 ORDER BY rank
		 LIMIT ?`,
		query, s.maxResults,
	)
	if err != nil {
		return nil, fmt.Errorf("querying archive: %w", err)
	}
	defer rows.Close()

	return scanResults(rows)
}

// List returns all indexed posts ordered by publication date descending.
func (s *Store) List(ctx context.Context) ([]SearchResult, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT slug, title, date, category, description, tags, file_path
		 FROM posts ORDER BY date DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing archive: %w", err)
	}
	defer rows.Close()

	return scanResults(rows)
}

func scanResults(rows *sql.Rows) ([]SearchResult, error) {
	var results []SearchResult
	for rows.Next() {
		var r SearchResult
		var tagsJSON string
		if err := rows.Scan(&r.Slug, &r.Title, &r.Date, &r.Category, &r.Description, &tagsJSON, &r.FilePath); err != nil {
			return nil, fmt.Errorf("scanning result: %w", err)
		}
		if tagsJSON != "" {
			// Tags were stored as JSON; a decode failure leaves them empty.
			_ = json.Unmarshal([]byte(tagsJSON), &r.Tags)
		}
		results = append(results, r)
	}
	return results, rows.Err()
}
