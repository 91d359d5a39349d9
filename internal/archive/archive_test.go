package archive

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/blog-engine/internal/mdx"
	"github.com/pdiddy/blog-engine/pkg/types"
)

// --- test helpers ---

func testSetup(t *testing.T) (*Store, string) {
	t.Helper()
	tmpDir := t.TempDir()

	postsDir := filepath.Join(tmpDir, "posts")
	if err := os.MkdirAll(postsDir, 0o755); err != nil {
		t.Fatal(err)
	}

	cfg := types.ArchiveConfig{
		ArchiveDir: filepath.Join(tmpDir, "archive"),
		MaxResults: 20,
	}
	store, err := NewStore(cfg)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })

	return store, postsDir
}

func writePost(t *testing.T, postsDir string, post *types.Post) string {
	t.Helper()
	path, err := mdx.WritePost(post, "", nil, postsDir)
	if err != nil {
		t.Fatal(err)
	}
	return path
}

func samplePost(slug, title, date string) *types.Post {
	return &types.Post{
		Title:       title,
		Slug:        slug,
		Description: "A short description of " + title,
		Tags:        []string{"Finnish Culture", "Visit Finland"},
		Content:     "# " + title + "\n\nThe sauna is the heart of Finnish life.",
		Level:       "A1-A2",
		Category:    "Sauna Culture",
		Date:        date,
	}
}

func indexHelper(t *testing.T, store *Store, postsDir string) IndexSummary {
	t.Helper()
	var buf strings.Builder
	summary, err := store.Index(context.Background(), postsDir, &buf)
	if err != nil {
		t.Fatal(err)
	}
	return summary
}

// --- schema tests ---

func TestNewStoreCreatesSchema(t *testing.T) {
	store, _ := testSetup(t)

	tables := []string{"posts", "posts_fts", "indexing_status"}
	for _, table := range tables {
		var count int
		err := store.db.QueryRow(
			`SELECT count(*) FROM sqlite_master WHERE type IN ('table','view') AND name = ?`, table,
		).Scan(&count)
		if err != nil {
			t.Fatalf("checking table %s: %v", table, err)
		}
		if count == 0 {
			t.Errorf("table %s does not exist", table)
		}
	}
}

// --- indexing tests ---

func TestIndexNewPosts(t *testing.T) {
	store, postsDir := testSetup(t)
	writePost(t, postsDir, samplePost("sauna-guide", "Sauna Guide", "2026-01-10"))
	writePost(t, postsDir, samplePost("lapland-lights", "Lapland Lights", "2026-01-11"))

	summary := indexHelper(t, store, postsDir)
	if summary.Indexed != 2 {
		t.Errorf("Indexed = %d, want 2", summary.Indexed)
	}
	if summary.Total() != 2 {
		t.Errorf("Total = %d, want 2", summary.Total())
	}
}

func TestIndexSkipsUnchanged(t *testing.T) {
	store, postsDir := testSetup(t)
	writePost(t, postsDir, samplePost("sauna-guide", "Sauna Guide", "2026-01-10"))

	indexHelper(t, store, postsDir)
	summary := indexHelper(t, store, postsDir)

	if summary.Skipped != 1 || summary.Indexed != 0 {
		t.Errorf("second run: Skipped = %d, Indexed = %d, want 1/0", summary.Skipped, summary.Indexed)
	}
}

func TestIndexUpdatesChanged(t *testing.T) {
	store, postsDir := testSetup(t)
	path := writePost(t, postsDir, samplePost("sauna-guide", "Sauna Guide", "2026-01-10"))
	indexHelper(t, store, postsDir)

	// Rewrite the file with a bumped mod time.
	post := samplePost("sauna-guide", "Sauna Guide, Revised", "2026-01-10")
	writePost(t, postsDir, post)
	future := mustStat(t, path).ModTime().Add(2 * time.Second)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatal(err)
	}

	summary := indexHelper(t, store, postsDir)
	if summary.Updated != 1 {
		t.Errorf("Updated = %d, want 1", summary.Updated)
	}

	results, err := store.List(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		t.Fatalf("List returned %d posts, want 1", len(results))
	}
	if results[0].Title != "Sauna Guide, Revised" {
		t.Errorf("Title = %q, want revised title", results[0].Title)
	}
}

func mustStat(t *testing.T, path string) os.FileInfo {
	t.Helper()
	info, err := os.Stat(path)
	if err != nil {
		t.Fatal(err)
	}
	return info
}

func TestIndexCountsUnparseableFiles(t *testing.T) {
	store, postsDir := testSetup(t)
	if err := os.WriteFile(filepath.Join(postsDir, "broken.mdx"), []byte("no frontmatter"), 0o644); err != nil {
		t.Fatal(err)
	}
	writePost(t, postsDir, samplePost("sauna-guide", "Sauna Guide", "2026-01-10"))

	summary := indexHelper(t, store, postsDir)
	if summary.Failed != 1 || summary.Indexed != 1 {
		t.Errorf("Failed = %d, Indexed = %d, want 1/1", summary.Failed, summary.Indexed)
	}
}

// --- query tests ---

func TestSearch(t *testing.T) {
	store, postsDir := testSetup(t)
	writePost(t, postsDir, samplePost("sauna-guide", "Sauna Guide", "2026-01-10"))
	writePost(t, postsDir, samplePost("lapland-lights", "Lapland Lights", "2026-01-11"))
	indexHelper(t, store, postsDir)

	results, err := store.Search(context.Background(), "lapland")
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		t.Fatalf("Search returned %d results, want 1", len(results))
	}
	if results[0].Slug != "lapland-lights" {
		t.Errorf("Slug = %q, want lapland-lights", results[0].Slug)
	}
	if len(results[0].Tags) != 2 {
		t.Errorf("Tags = %v, want 2 entries", results[0].Tags)
	}
}

func TestSearchBodyText(t *testing.T) {
	store, postsDir := testSetup(t)
	writePost(t, postsDir, samplePost("sauna-guide", "Sauna Guide", "2026-01-10"))
	indexHelper(t, store, postsDir)

	results, err := store.Search(context.Background(), "heart")
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		t.Fatalf("body-text search returned %d results, want 1", len(results))
	}
}

func TestListNewestFirst(t *testing.T) {
	store, postsDir := testSetup(t)
	writePost(t, postsDir, samplePost("older", "Older Post", "2026-01-10"))
	writePost(t, postsDir, samplePost("newer", "Newer Post", "2026-02-01"))
	indexHelper(t, store, postsDir)

	results, err := store.List(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("List returned %d posts, want 2", len(results))
	}
	if results[0].Slug != "newer" {
		t.Errorf("first result = %q, want newer", results[0].Slug)
	}
}
