// Package articles persists and loads a day's collection of article records.
// Records are opaque JSON values: the store never interprets their schema, it
// only preserves their order and bytes between the fetcher and the summarizer.
package articles

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/jonesrussell/newsbrief/internal/datekey"
	"github.com/jonesrussell/newsbrief/internal/logger"
)

// ErrNotFound is returned when no article file exists for a date key.
var ErrNotFound = errors.New("article file not found")

// dirPerm is the mode for created article directories.
const dirPerm = 0o755

// filePerm is the mode for written article files.
const filePerm = 0o644

// Store reads and writes per-day article collections under a base directory.
type Store struct {
	dir    string
	logger logger.Interface
}

// NewStore creates a store rooted at dir.
func NewStore(dir string, log logger.Interface) *Store {
	return &Store{
		dir:    dir,
		logger: log.WithComponent("articles"),
	}
}

// Path returns the article file path for a date key.
func (s *Store) Path(key datekey.Key) string {
	return filepath.Join(s.dir, key.String()+".json")
}

// Load reads the article collection for a date key. Records come back in
// file order, unparsed.
func (s *Store) Load(key datekey.Key) ([]json.RawMessage, error) {
	path := s.Path(key)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, path)
		}
		return nil, fmt.Errorf("read article file %s: %w", path, err)
	}

	var records []json.RawMessage
	if err := json.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("parse article file %s: %w", path, err)
	}

	s.logger.Info("Loaded articles",
		"path", path,
		"count", len(records),
	)
	return records, nil
}

// Save writes the article collection for a date key, creating the base
// directory if needed and replacing any existing file.
func (s *Store) Save(key datekey.Key, records any) (string, error) {
	if err := ensureDir(s.dir, s.logger); err != nil {
		return "", err
	}

	data, err := EncodeIndent(records)
	if err != nil {
		return "", fmt.Errorf("encode articles: %w", err)
	}

	path := s.Path(key)
	if err := os.WriteFile(path, data, filePerm); err != nil {
		return "", fmt.Errorf("write article file %s: %w", path, err)
	}

	return path, nil
}

// EncodeIndent serializes v as two-space indented JSON with non-ASCII
// characters preserved literally. The same serialization feeds both the
// article files and the outgoing prompt.
func EncodeIndent(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	// Encode appends a trailing newline; drop it so callers control layout.
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// ensureDir creates dir if it does not exist.
func ensureDir(dir string, log logger.Interface) error {
	if _, err := os.Stat(dir); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat directory %s: %w", dir, err)
	}

	if err := os.MkdirAll(dir, dirPerm); err != nil {
		return fmt.Errorf("create directory %s: %w", dir, err)
	}
	log.Info("Created directory", "path", dir)
	return nil
}
