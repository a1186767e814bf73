package storage

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"probuild/catalog/internal/domain"
)

// CatalogStore persists and reloads the pipeline's JSON artifacts. Every save
// writes to a temp file in the destination directory and renames it into
// place, so readers never observe a half-written document.
type CatalogStore interface {
	LoadDataset(path string) (*domain.Dataset, error)
	SaveDataset(path string, dataset *domain.Dataset) error
	LoadSnapshot(path string) (*domain.Snapshot, error)
	SaveSnapshot(path string, snapshot *domain.Snapshot) error
	SaveNavigation(path string, nav *domain.Navigation) error
	BackupDataset(path, backupPath string) error
}

type fileStore struct{}

func NewFileStore() CatalogStore {
	return &fileStore{}
}

func (s *fileStore) LoadDataset(path string) (*domain.Dataset, error) {
	var dataset domain.Dataset
	if err := readJSON(path, &dataset); err != nil {
		return nil, err
	}
	return &dataset, nil
}

func (s *fileStore) SaveDataset(path string, dataset *domain.Dataset) error {
	return writeJSON(path, dataset)
}

func (s *fileStore) LoadSnapshot(path string) (*domain.Snapshot, error) {
	var snapshot domain.Snapshot
	if err := readJSON(path, &snapshot); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

func (s *fileStore) SaveSnapshot(path string, snapshot *domain.Snapshot) error {
	return writeJSON(path, snapshot)
}

func (s *fileStore) SaveNavigation(path string, nav *domain.Navigation) error {
	return writeJSON(path, nav)
}

// BackupDataset copies the current dataset aside before a full rewrite. A
// missing dataset is not an error: the first run has nothing to back up.
func (s *fileStore) BackupDataset(path, backupPath string) error {
	src, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to open dataset for backup: %w", err)
	}
	defer src.Close()

	dst, err := os.Create(backupPath)
	if err != nil {
		return fmt.Errorf("failed to create dataset backup: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return fmt.Errorf("failed to copy dataset to backup: %w", err)
	}
	return nil
}

func readJSON(path string, v any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", path, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", path, err)
	}
	return nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create directory %s: %w", dir, err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temp file for %s: %w", path, err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp file for %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace %s: %w", path, err)
	}
	return nil
}
