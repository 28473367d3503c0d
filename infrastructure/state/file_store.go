// ABOUTME: File-backed watermark store writing a flat JSON object
// ABOUTME: Saves go to a temp file renamed over the target so readers never see partial writes

package state

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"ai-news-api/core/domain"
	apperrors "ai-news-api/core/errors"
)

// FileStore persists watermarks as JSON at Path
type FileStore struct {
	Path string
}

// NewFileStore creates a store for path
func NewFileStore(path string) *FileStore {
	return &FileStore{Path: path}
}

// Load reads the watermark file. A missing file is a cold start; an
// unparsable file yields an empty map together with the decode error.
func (s *FileStore) Load(ctx context.Context) (domain.Watermarks, error) {
	if err := ctx.Err(); err != nil {
		return domain.Watermarks{}, err
	}

	data, err := os.ReadFile(s.Path)
	if errors.Is(err, os.ErrNotExist) {
		return domain.Watermarks{}, nil
	}
	if err != nil {
		return domain.Watermarks{}, &apperrors.PersistenceError{Resource: s.Path, Err: err}
	}

	return decodeWatermarks(s.Path, data)
}

// Save overwrites the file with the full map
func (s *FileStore) Save(ctx context.Context, marks domain.Watermarks) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	data, err := json.MarshalIndent(marks, "", "  ")
	if err != nil {
		return &apperrors.PersistenceError{Resource: s.Path, Err: err}
	}

	if err := writeFileAtomic(s.Path, data); err != nil {
		return &apperrors.PersistenceError{Resource: s.Path, Err: err}
	}
	return nil
}

func writeFileAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace %s: %w", path, err)
	}
	return nil
}

func decodeWatermarks(resource string, data []byte) (domain.Watermarks, error) {
	var marks domain.Watermarks
	if err := json.Unmarshal(data, &marks); err != nil {
		return domain.Watermarks{}, &apperrors.PersistenceError{Resource: resource, Err: err}
	}
	if marks == nil {
		marks = domain.Watermarks{}
	}
	return marks, nil
}
