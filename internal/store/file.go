package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
)

var _ KV = (*FileStore)(nil)

// FileStore is a KV held in memory and flushed to a JSON file on every write.
type FileStore struct {
	mu       sync.RWMutex
	items    map[string]string
	filePath string
	log      *slog.Logger
}

// NewFileStore creates a FileStore, loading persisted state from filePath.
// A missing or unreadable file starts empty.
func NewFileStore(filePath string, log *slog.Logger) *FileStore {
	if log == nil {
		log = slog.Default()
	}
	s := &FileStore{
		items:    make(map[string]string),
		filePath: filePath,
		log:      log,
	}
	s.load()
	return s
}

// GetItem returns the value under key.
func (s *FileStore) GetItem(key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.items[key]
	return v, ok, nil
}

// SetItem stores value and persists the whole map. On a failed write the
// in-memory value is kept and the error returned.
func (s *FileStore) SetItem(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items[key] = value
	return s.flush()
}

// DeleteItem removes key and persists the map.
func (s *FileStore) DeleteItem(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.items, key)
	return s.flush()
}

// load reads the JSON file into memory.
func (s *FileStore) load() {
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		return // no file yet, start empty
	}
	var loaded map[string]string
	if err := json.Unmarshal(data, &loaded); err != nil {
		s.log.Warn("loading state file", "path", s.filePath, "error", err)
		return
	}
	if loaded == nil {
		s.log.Warn("state file holds no object, starting empty", "path", s.filePath)
		return // a bare null decodes to a nil map
	}
	s.items = loaded
	s.log.Info("loaded state file", "path", s.filePath, "keys", len(loaded))
}

// flush writes the in-memory state to disk through a temp file. Must be
// called with mu held.
func (s *FileStore) flush() error {
	data, err := json.MarshalIndent(s.items, "", "  ")
	if err != nil {
		return fmt.Errorf("marshalling state: %w", err)
	}
	if dir := filepath.Dir(s.filePath); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating state dir: %w", err)
		}
	}
	tmp := s.filePath + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("writing state file: %w", err)
	}
	if err := os.Rename(tmp, s.filePath); err != nil {
		return fmt.Errorf("replacing state file: %w", err)
	}
	return nil
}
