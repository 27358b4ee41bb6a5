package runlog

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "runs.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func sampleEntry(status string) Entry {
	return Entry{
		StartedAt:     time.Date(2026, 2, 10, 9, 30, 0, 0, time.UTC),
		Duration:      1400 * time.Millisecond,
		ArticleSHA256: "9f86d081884c7d659a2feaa0c55ad015a3bf4f1b2b0b822cd15d6c15b0f00a08",
		ArticleBytes:  2048,
		Backend:       "openai",
		Model:         "gpt-4.1-mini",
		Status:        status,
		Asset:         "The Clementi Mall",
		BookPath:      "transactions.xlsx",
	}
}

func TestRecordAndRecent(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	if err := s.Record(ctx, sampleEntry(StatusOK)); err != nil {
		t.Fatalf("Record: %v", err)
	}
	failed := sampleEntry(StatusExtractionFailed)
	failed.Error = "calling OpenAI API: connection refused"
	failed.Asset = ""
	if err := s.Record(ctx, failed); err != nil {
		t.Fatalf("Record: %v", err)
	}

	entries, err := s.Recent(ctx, 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 2 {
		t.Fatalf("got %d entries, want 2", len(entries))
	}

	// Newest first.
	if entries[0].Status != StatusExtractionFailed {
		t.Errorf("entries[0].Status = %q, want %q", entries[0].Status, StatusExtractionFailed)
	}
	if entries[0].Error != "calling OpenAI API: connection refused" {
		t.Errorf("entries[0].Error = %q", entries[0].Error)
	}
	if entries[1].Status != StatusOK {
		t.Errorf("entries[1].Status = %q, want %q", entries[1].Status, StatusOK)
	}
	if entries[1].Asset != "The Clementi Mall" {
		t.Errorf("entries[1].Asset = %q", entries[1].Asset)
	}
	if entries[1].Backend != "openai" || entries[1].Model != "gpt-4.1-mini" {
		t.Errorf("entries[1] backend/model = %q/%q", entries[1].Backend, entries[1].Model)
	}
	if entries[1].ArticleBytes != 2048 {
		t.Errorf("entries[1].ArticleBytes = %d, want 2048", entries[1].ArticleBytes)
	}
	if !entries[1].StartedAt.Equal(time.Date(2026, 2, 10, 9, 30, 0, 0, time.UTC)) {
		t.Errorf("entries[1].StartedAt = %v", entries[1].StartedAt)
	}
	if entries[1].Duration != 1400*time.Millisecond {
		t.Errorf("entries[1].Duration = %v", entries[1].Duration)
	}
}

func TestRecentLimit(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		if err := s.Record(ctx, sampleEntry(StatusOK)); err != nil {
			t.Fatal(err)
		}
	}

	entries, err := s.Recent(ctx, 3)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 3 {
		t.Errorf("got %d entries, want 3", len(entries))
	}

	// Non-positive limit falls back to the default.
	entries, err = s.Recent(ctx, 0)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 5 {
		t.Errorf("got %d entries, want 5", len(entries))
	}
}

func TestRecentEmpty(t *testing.T) {
	s := testStore(t)

	entries, err := s.Recent(context.Background(), 10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("got %d entries, want 0", len(entries))
	}
}

func TestOpenCreatesSchemaOnce(t *testing.T) {
	path := filepath.Join(t.TempDir(), "runs.db")

	s, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := s.Record(context.Background(), sampleEntry(StatusOK)); err != nil {
		t.Fatal(err)
	}
	if err := s.Close(); err != nil {
		t.Fatal(err)
	}

	// Reopening an existing database keeps its rows.
	s, err = Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer s.Close()

	entries, err := s.Recent(context.Background(), 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("got %d entries after reopen, want 1", len(entries))
	}
}
