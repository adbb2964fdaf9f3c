package watch

import (
	"path/filepath"
	"sync"

	"github.com/cespare/xxhash/v2"
)

// Detector remembers a content fingerprint per path so editors that touch a
// file without changing it do not cause a redisplay.
type Detector struct {
	mu   sync.Mutex
	sums map[string]uint64
}

// NewDetector returns an empty detector.
func NewDetector() *Detector {
	return &Detector{sums: make(map[string]uint64)}
}

// Changed records data as the content of path and reports whether it
// differs from what was recorded before. The first observation of a path
// counts as a change.
func (d *Detector) Changed(path string, data []byte) bool {
	sum := xxhash.Sum64(data)
	path = filepath.Clean(path)

	d.mu.Lock()
	defer d.mu.Unlock()
	old, seen := d.sums[path]
	d.sums[path] = sum
	return !seen || old != sum
}

// Forget drops the fingerprint of path.
func (d *Detector) Forget(path string) {
	d.mu.Lock()
	defer d.mu.Unlock()
	delete(d.sums, filepath.Clean(path))
}
