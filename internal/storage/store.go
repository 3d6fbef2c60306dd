package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"teadesk-system/internal/common/logger"

	"github.com/google/uuid"
)

// Store reads and writes whole JSON documents. Reads never fail (a
// missing or corrupt document degrades to the caller's fallback);
// writes go through a temp-file-plus-rename chain so a reader only
// ever observes a complete document.
type Store struct {
	lg *logger.Logger
}

func New(lg *logger.Logger) *Store { return &Store{lg: lg} }

// ReadJSON returns the document at path, or fallback when the file is
// absent, unreadable or not valid JSON. Corruption is logged as a
// degraded read, never surfaced as an error.
func ReadJSON[T any](s *Store, path string, fallback T) T {
	b, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			s.lg.Warn("persistence_degraded", err, map[string]any{"path": path, "op": "read"})
		}
		return fallback
	}
	var v T
	if err := json.Unmarshal(b, &v); err != nil {
		s.lg.Warn("persistence_degraded", err, map[string]any{"path": path, "op": "decode"})
		return fallback
	}
	return v
}

// WriteJSON persists doc at path atomically.
func WriteJSON(s *Store, path string, doc any) error {
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal document for %s: %w", path, err)
	}
	return s.WriteBytes(path, b)
}

// WriteBytes writes raw content with the same fallback chain as
// WriteJSON: tmp sibling + rename, rename retry after removing the
// destination, and finally a best-effort direct write. An error means
// every tier was exhausted and nothing durable happened.
func (s *Store) WriteBytes(path string, b []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", path, err)
	}

	tmp := path + ".tmp-" + uuid.NewString()
	if err := os.WriteFile(tmp, b, 0o644); err != nil {
		// tmp stage failed, try the destination directly
		s.lg.Warn("persistence_fallback", err, map[string]any{"path": path, "tier": "direct"})
		if werr := os.WriteFile(path, b, 0o644); werr != nil {
			return fmt.Errorf("failed to write %s: %w", path, werr)
		}
		return nil
	}

	if err := os.Rename(tmp, path); err != nil {
		// some platforms refuse to rename over an existing file
		_ = os.Remove(path)
		if rerr := os.Rename(tmp, path); rerr != nil {
			_ = os.Remove(tmp)
			s.lg.Warn("persistence_fallback", rerr, map[string]any{"path": path, "tier": "direct"})
			if werr := os.WriteFile(path, b, 0o644); werr != nil {
				return fmt.Errorf("failed to write %s: %w", path, werr)
			}
		}
	}
	return nil
}
