package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/naveenspark/hackboard/pkg/domain"
)

// Record is what gets persisted between runs.
type Record struct {
	Token     string          `json:"token"`
	Student   *domain.Student `json:"student,omitempty"`
	SavedAt   time.Time       `json:"saved_at"`
	ExpiresAt time.Time       `json:"expires_at"`
}

// Empty reports whether the record carries no credential.
func (r Record) Empty() bool { return r.Token == "" }

// Store persists a single session record.
type Store interface {
	Load() (Record, error)
	Save(Record) error
	Clear() error
}

// FileStore keeps the record as JSON in a single file readable only by the
// current user.
type FileStore struct {
	path string
	now  func() time.Time
}

// NewFileStore returns a store backed by path. The parent directory is
// created on first Save.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path, now: time.Now}
}

// Path returns the backing file.
func (s *FileStore) Path() string { return s.path }

// Load returns the persisted record. A missing, unreadable-as-JSON or expired
// file yields an empty record.
func (s *FileStore) Load() (Record, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return Record{}, nil
	}
	if err != nil {
		return Record{}, fmt.Errorf("session.Load: %w", err)
	}

	var rec Record
	if err := json.Unmarshal(data, &rec); err != nil {
		slog.Warn("discarding corrupt session file", "path", s.path, "err", err)
		return Record{}, nil
	}
	if !rec.ExpiresAt.IsZero() && !s.now().Before(rec.ExpiresAt) {
		slog.Info("persisted session expired", "expires_at", rec.ExpiresAt)
		if err := s.Clear(); err != nil {
			slog.Warn("could not remove expired session", "err", err)
		}
		return Record{}, nil
	}
	return rec, nil
}

// Save writes rec atomically with 0600 permissions.
func (s *FileStore) Save(rec Record) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("session.Save: create dir: %w", err)
	}
	data, err := json.MarshalIndent(rec, "", "  ")
	if err != nil {
		return fmt.Errorf("session.Save: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return fmt.Errorf("session.Save: %w", err)
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck

	if err := tmp.Chmod(0600); err != nil {
		tmp.Close() //nolint:errcheck
		return fmt.Errorf("session.Save: chmod: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close() //nolint:errcheck
		return fmt.Errorf("session.Save: write: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("session.Save: close: %w", err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return fmt.Errorf("session.Save: rename: %w", err)
	}
	return nil
}

// Clear removes the persisted record. Clearing an absent record is not an error.
func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("session.Clear: %w", err)
	}
	return nil
}
