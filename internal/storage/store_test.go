package storage

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"probuild/catalog/internal/domain"
)

func TestDatasetRoundTrip(t *testing.T) {
	store := NewFileStore()
	path := filepath.Join(t.TempDir(), "data", "products.json")

	in := &domain.Dataset{Categories: []domain.Category{
		{ID: "carrier-systems", Name: "Carrier Systems", Slug: "carrier-systems",
			Products: []domain.ProductRef{{ID: "p1", Name: "Grid", Slug: "grid"}}},
	}}

	if err := store.SaveDataset(path, in); err != nil {
		t.Fatalf("save: %v", err)
	}
	out, err := store.LoadDataset(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(out.Categories) != 1 || out.Categories[0].Products[0].ID != "p1" {
		t.Fatalf("round trip lost data: %+v", out)
	}

	raw, _ := os.ReadFile(path)
	if !strings.HasSuffix(string(raw), "\n") {
		t.Fatal("artifact should end with a newline")
	}
	if !strings.Contains(string(raw), "  \"categories\"") {
		t.Fatal("artifact should be indented")
	}
	entries, _ := os.ReadDir(filepath.Dir(path))
	if len(entries) != 1 {
		t.Fatalf("temp files left behind: %v", entries)
	}
}

func TestSaveDatasetIsDeterministic(t *testing.T) {
	store := NewFileStore()
	dir := t.TempDir()
	in := &domain.Dataset{Categories: []domain.Category{{ID: "a", Name: "A", Slug: "a"}}}

	first := filepath.Join(dir, "one.json")
	second := filepath.Join(dir, "two.json")
	if err := store.SaveDataset(first, in); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := store.SaveDataset(second, in); err != nil {
		t.Fatalf("save: %v", err)
	}

	a, _ := os.ReadFile(first)
	b, _ := os.ReadFile(second)
	if string(a) != string(b) {
		t.Fatal("identical input must serialize identically")
	}
}

func TestBackupDataset(t *testing.T) {
	store := NewFileStore()
	dir := t.TempDir()
	path := filepath.Join(dir, "products.json")
	backup := path + ".backup"

	// Nothing to back up on the first run.
	if err := store.BackupDataset(path, backup); err != nil {
		t.Fatalf("missing dataset must not be an error: %v", err)
	}
	if _, err := os.Stat(backup); !os.IsNotExist(err) {
		t.Fatal("no backup should exist yet")
	}

	if err := os.WriteFile(path, []byte(`{"categories":[]}`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if err := store.BackupDataset(path, backup); err != nil {
		t.Fatalf("backup: %v", err)
	}
	content, err := os.ReadFile(backup)
	if err != nil || string(content) != `{"categories":[]}` {
		t.Fatalf("backup content wrong: %q, %v", content, err)
	}
}
