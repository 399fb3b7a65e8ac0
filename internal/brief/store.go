// Package brief persists generated daily briefs as one markdown file per
// date key.
package brief

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/jonesrussell/newsbrief/internal/datekey"
	"github.com/jonesrussell/newsbrief/internal/logger"
)

// ErrNotFound is returned when no brief exists for a date key.
var ErrNotFound = errors.New("brief not found")

const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// Info describes one generated brief on disk.
type Info struct {
	Key      datekey.Key
	Path     string
	Size     int64
	Modified time.Time
}

// Store reads and writes briefs under a base directory.
type Store struct {
	dir    string
	logger logger.Interface
}

// NewStore creates a store rooted at dir.
func NewStore(dir string, log logger.Interface) *Store {
	return &Store{
		dir:    dir,
		logger: log.WithComponent("brief"),
	}
}

// Path returns the brief file path for a date key.
func (s *Store) Path(key datekey.Key) string {
	return filepath.Join(s.dir, key.String()+".md")
}

// Write persists the brief verbatim, creating the base directory if needed
// and fully replacing any prior brief for the same key. Returns the path.
func (s *Store) Write(key datekey.Key, content string) (string, error) {
	if _, err := os.Stat(s.dir); os.IsNotExist(err) {
		if mkErr := os.MkdirAll(s.dir, dirPerm); mkErr != nil {
			return "", fmt.Errorf("create brief directory %s: %w", s.dir, mkErr)
		}
		s.logger.Info("Created directory", "path", s.dir)
	}

	path := s.Path(key)
	if err := os.WriteFile(path, []byte(content), filePerm); err != nil {
		return "", fmt.Errorf("write brief %s: %w", path, err)
	}

	s.logger.Info("Brief saved", "path", path, "bytes", len(content))
	return path, nil
}

// Read returns the brief content for a date key.
func (s *Store) Read(key datekey.Key) (string, error) {
	data, err := os.ReadFile(s.Path(key))
	if err != nil {
		if os.IsNotExist(err) {
			return "", fmt.Errorf("%w: %s", ErrNotFound, key)
		}
		return "", fmt.Errorf("read brief %s: %w", key, err)
	}
	return string(data), nil
}

// List returns the briefs on disk sorted by date key. Files that do not look
// like <YYYYMMDD>.md are ignored.
func (s *Store) List() ([]Info, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("read brief directory %s: %w", s.dir, err)
	}

	infos := make([]Info, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}
		key, keyErr := datekey.Parse(strings.TrimSuffix(entry.Name(), ".md"))
		if keyErr != nil {
			continue
		}
		fi, infoErr := entry.Info()
		if infoErr != nil {
			continue
		}
		infos = append(infos, Info{
			Key:      key,
			Path:     filepath.Join(s.dir, entry.Name()),
			Size:     fi.Size(),
			Modified: fi.ModTime(),
		})
	}

	sort.Slice(infos, func(i, j int) bool { return infos[i].Key < infos[j].Key })
	return infos, nil
}
