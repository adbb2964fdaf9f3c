// Package viewstate remembers where the user was in each file so a revisit
// resumes at the same place.
package viewstate

import (
	"path/filepath"

	"golang.org/x/text/unicode/norm"
)

// Store maps file paths to resume descriptors. Entries live until Reset;
// descriptors of files that left the working set are harmless orphans.
type Store struct {
	entries map[string]Descriptor
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{entries: make(map[string]Descriptor)}
}

// Save stores d for path, replacing any previous descriptor. A nil
// descriptor is ignored.
func (s *Store) Save(path string, d Descriptor) {
	if d == nil {
		return
	}
	s.entries[key(path)] = d
}

// Load returns the descriptor saved for path.
func (s *Store) Load(path string) (Descriptor, bool) {
	d, ok := s.entries[key(path)]
	return d, ok
}

// Reset drops every entry.
func (s *Store) Reset() {
	clear(s.entries)
}

// Len is the number of stored descriptors.
func (s *Store) Len() int {
	return len(s.entries)
}

func key(path string) string {
	return norm.NFC.String(filepath.Clean(path))
}
