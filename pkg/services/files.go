package services

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// FileStore persists content files. Front matter is always written back as
// YAML regardless of what format a file was originally read in.
type FileStore struct {
	log *zap.Logger
}

func NewFileStore(log *zap.Logger) *FileStore {
	return &FileStore{log: log}
}

func (f *FileStore) Write(path string, frontMatter map[string]any, body string) error {
	content, err := BuildContent(frontMatter, body, "yaml")
	if err != nil {
		return fmt.Errorf("building %s: %w", path, err)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating folder for %s: %w", path, err)
	}
	if err := os.WriteFile(path, content, 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	f.log.Info("wrote content file", zap.String("path", path))
	return nil
}

func (f *FileStore) Delete(path string) error {
	if err := os.Remove(path); err != nil {
		return fmt.Errorf("deleting %s: %w", path, err)
	}
	f.log.Info("deleted content file", zap.String("path", path))
	return nil
}

func (f *FileStore) Rename(oldPath, newPath string) error {
	if err := os.Rename(oldPath, newPath); err != nil {
		return fmt.Errorf("renaming %s: %w", oldPath, err)
	}
	f.log.Info("renamed content file",
		zap.String("from", oldPath), zap.String("to", newPath))
	return nil
}
