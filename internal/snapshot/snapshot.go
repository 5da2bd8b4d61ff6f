package snapshot

import (
	"os"
	"path/filepath"
)

// Store persists raw fetched documents under named locations so syncs can
// replay the last successful fetch when the live site is unreachable. Each
// location holds exactly the last body written, no history.
type Store struct {
	dir string
}

// NewStore returns a store rooted at dir. An empty dir resolves locations
// relative to the working directory; absolute locations are used as-is.
func NewStore(dir string) *Store {
	return &Store{dir: dir}
}

func (s *Store) path(location string) string {
	if s.dir == "" || filepath.IsAbs(location) {
		return location
	}
	return filepath.Join(s.dir, location)
}

func (s *Store) Write(location string, body []byte) error {
	path := s.path(location)
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, body, 0o644)
}

func (s *Store) Read(location string) ([]byte, error) {
	return os.ReadFile(s.path(location))
}

// Exists reports whether a location holds a readable snapshot.
func (s *Store) Exists(location string) bool {
	info, err := os.Stat(s.path(location))
	return err == nil && !info.IsDir()
}
