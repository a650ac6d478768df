package store

import (
	"path/filepath"
	"testing"

	"hepharvest/internal/bibtex"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "entries.db"))
	if err != nil {
		t.Fatalf("Open() error: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndGet(t *testing.T) {
	s := openTestStore(t)

	e := bibtex.Entry{
		Type:     bibtex.TypeArticle,
		Key:      "Abad:2021def",
		Title:    "A Test",
		DOI:      "10.1103/PhysRevD.104.052002",
		ArxivID:  "2101.00001",
		RecordID: "1234567",
	}
	e.Bibtex = bibtex.Render(e)

	if err := s.Save(e); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	got, err := s.Get("Abad:2021def")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got == nil {
		t.Fatal("Get() = nil for saved entry")
	}
	if got.Title != "A Test" || got.DOI != e.DOI || got.Bibtex != e.Bibtex {
		t.Errorf("Get() = %+v", got)
	}
	if got.FetchedAt.IsZero() {
		t.Error("FetchedAt not recorded")
	}
}

func TestGet_Missing(t *testing.T) {
	s := openTestStore(t)

	got, err := s.Get("Nope:2020")
	if err != nil {
		t.Fatalf("Get() error: %v", err)
	}
	if got != nil {
		t.Errorf("Get() = %+v for missing key, want nil", got)
	}
}

func TestSave_ReplacesExisting(t *testing.T) {
	s := openTestStore(t)

	e := bibtex.Entry{Type: bibtex.TypeArticle, Key: "K", Title: "First"}
	if err := s.Save(e); err != nil {
		t.Fatalf("Save() error: %v", err)
	}
	e.Title = "Second"
	if err := s.Save(e); err != nil {
		t.Fatalf("Save() error: %v", err)
	}

	entries, err := s.List()
	if err != nil {
		t.Fatalf("List() error: %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("List() = %d entries, want 1", len(entries))
	}
	if entries[0].Title != "Second" {
		t.Errorf("Title = %q, want Second", entries[0].Title)
	}
}

func TestSave_RequiresKey(t *testing.T) {
	s := openTestStore(t)

	if err := s.Save(bibtex.Entry{Type: bibtex.TypeArticle}); err == nil {
		t.Error("Save() expected error for entry without key")
	}
}

func TestLastHarvestDate(t *testing.T) {
	s := openTestStore(t)

	date, err := s.LastHarvestDate()
	if err != nil {
		t.Fatalf("LastHarvestDate() error: %v", err)
	}
	if date != "" {
		t.Errorf("LastHarvestDate() = %q before any harvest", date)
	}

	if err := s.SetLastHarvestDate("2026-08-31"); err != nil {
		t.Fatalf("SetLastHarvestDate() error: %v", err)
	}
	date, err = s.LastHarvestDate()
	if err != nil {
		t.Fatalf("LastHarvestDate() error: %v", err)
	}
	if date != "2026-08-31" {
		t.Errorf("LastHarvestDate() = %q, want 2026-08-31", date)
	}
}
