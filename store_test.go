package devlogs

import (
	"testing"
	"time"
)

func setupTestPageStore(t *testing.T) *pageStore {
	t.Helper()
	s, err := newPageStore(t.TempDir() + "/pages.db")
	if err != nil {
		t.Fatalf("failed to create page store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPageStoreSaveAndLoad(t *testing.T) {
	s := setupTestPageStore(t)

	post := testPost("p1", "test-post", "Test Post")
	post.Description = "A summary"
	fetched := time.Now().Add(-30 * time.Second)

	if err := s.Save("test-post", pageEntry{Post: post, Fetched: fetched}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	entries, err := s.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	e, ok := entries["test-post"]
	if !ok {
		t.Fatalf("entries = %v, want test-post", entries)
	}
	if e.NotFound {
		t.Error("NotFound should be false")
	}
	if e.Post.Title != "Test Post" || e.Post.Description != "A summary" {
		t.Errorf("Post = %+v, want saved fields back", e.Post)
	}
	if e.Fetched.Unix() != fetched.Unix() {
		t.Errorf("Fetched = %v, want %v", e.Fetched, fetched)
	}
}

func TestPageStoreNegativeEntry(t *testing.T) {
	s := setupTestPageStore(t)

	if err := s.Save("gone", pageEntry{NotFound: true, Fetched: time.Now()}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	entries, err := s.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if !entries["gone"].NotFound {
		t.Error("expected the negative entry to round-trip")
	}
}

func TestPageStoreUpsert(t *testing.T) {
	s := setupTestPageStore(t)

	if err := s.Save("slug", pageEntry{Post: testPost("p1", "slug", "Old"), Fetched: time.Now()}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := s.Save("slug", pageEntry{Post: testPost("p1", "slug", "New"), Fetched: time.Now()}); err != nil {
		t.Fatalf("second Save failed: %v", err)
	}

	entries, err := s.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("entries = %d, want 1 after upsert", len(entries))
	}
	if entries["slug"].Post.Title != "New" {
		t.Errorf("Title = %q, want %q", entries["slug"].Post.Title, "New")
	}
}

func TestPageStoreEmpty(t *testing.T) {
	s := setupTestPageStore(t)
	entries, err := s.LoadAll()
	if err != nil {
		t.Fatalf("LoadAll failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("entries = %v, want none", entries)
	}
}
