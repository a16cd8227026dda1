package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FileStore keeps the high score record in a small JSON file:
//
//	{"high_score": 1234}
//
// A missing file reads as 0.
type FileStore struct {
	path string
}

type highScoreRecord struct {
	HighScore int `json:"high_score"`
}

// NewFileStore returns a store backed by path. A leading ~ is expanded on
// first use. The file is not touched until the first save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Path returns the record location as given.
func (f *FileStore) Path() string {
	return f.path
}

// LoadHighScore reads the record. A missing file is a fresh install and
// reads as 0 with no error; unreadable or malformed files return 0 and an
// error so the caller can warn.
func (f *FileStore) LoadHighScore() (int, error) {
	path, err := expandHome(f.path)
	if err != nil {
		return 0, err
	}
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return 0, nil
	}
	if err != nil {
		return 0, fmt.Errorf("storage: cannot read high score: %w", err)
	}

	var rec highScoreRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return 0, fmt.Errorf("storage: cannot decode high score %s: %w", path, err)
	}
	return max(rec.HighScore, 0), nil
}

// SaveHighScore overwrites the record, creating parent directories as needed.
// The file is replaced atomically so a crash never leaves half a record.
func (f *FileStore) SaveHighScore(score int) error {
	path, err := expandHome(f.path)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("storage: cannot create directory for %s: %w", path, err)
	}

	data, err := json.Marshal(highScoreRecord{HighScore: score})
	if err != nil {
		return fmt.Errorf("storage: cannot encode high score: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("storage: cannot write high score: %w", err)
	}
	if err := os.Rename(tmp, path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("storage: cannot replace high score file: %w", err)
	}
	return nil
}
