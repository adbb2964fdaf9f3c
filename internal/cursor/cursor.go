// Package cursor implements the bidirectional file-list cursor: an ordered
// working set of paths split around a single current position.
//
// The working set always reads as
//
//	reverse(Before()) ++ [Current()]? ++ After()
//
// where Before and After are nearest-first. Internally both halves are stacks
// whose top (the last slice element) is the element nearest to the current
// position, so a single step in either direction is O(1).
package cursor

import (
	"path/filepath"
	"slices"

	"golang.org/x/text/unicode/norm"

	"lookat/internal/errors"
)

// LoadMode selects how Load combines new paths with the existing set.
type LoadMode int

const (
	// Replace discards the existing working set.
	Replace LoadMode = iota
	// Append keeps the existing working set behind the new paths.
	Append
)

func (m LoadMode) String() string {
	if m == Append {
		return "append"
	}
	return "replace"
}

// Cursor is the before/current/after navigation engine. The zero value is
// an empty cursor ready for Load.
type Cursor struct {
	// back holds visited paths in working-set order; its last element is
	// the nearest one.
	back []string
	// fwd holds unvisited paths in reverse working-set order; its last
	// element is the next one to visit.
	fwd     []string
	current string
	has     bool
}

// New returns an empty cursor.
func New() *Cursor {
	return &Cursor{}
}

// Load installs paths as the forward half. Replace drops the old set; Append
// moves the whole old set, in order, into the backward half. In both modes
// there is no current path afterwards, call Advance(1) to visit the first
// new path.
func (c *Cursor) Load(paths []string, mode LoadMode) {
	if mode == Append {
		c.back = c.Paths()
	} else {
		c.back = nil
	}
	c.fwd = reversed(paths)
	c.current, c.has = "", false
}

// Reset empties the cursor.
func (c *Cursor) Reset() {
	c.back, c.fwd = nil, nil
	c.current, c.has = "", false
}

// Current returns the current path, if any.
func (c *Cursor) Current() (string, bool) {
	return c.current, c.has
}

// Before returns visited paths, nearest first.
func (c *Cursor) Before() []string {
	return reversed(c.back)
}

// After returns unvisited paths, nearest first.
func (c *Cursor) After() []string {
	return reversed(c.fwd)
}

// BackwardCount is the number of paths behind the current position.
func (c *Cursor) BackwardCount() int { return len(c.back) }

// ForwardCount is the number of paths ahead of the current position.
func (c *Cursor) ForwardCount() int { return len(c.fwd) }

// Len is the size of the working set including the current path.
func (c *Cursor) Len() int {
	n := len(c.back) + len(c.fwd)
	if c.has {
		n++
	}
	return n
}

// Empty reports whether the working set has no paths at all.
func (c *Cursor) Empty() bool {
	return c.Len() == 0
}

// Paths returns the whole working set in order.
func (c *Cursor) Paths() []string {
	out := make([]string, 0, c.Len())
	out = append(out, c.back...)
	if c.has {
		out = append(out, c.current)
	}
	for i := len(c.fwd) - 1; i >= 0; i-- {
		out = append(out, c.fwd[i])
	}
	return out
}

// Position returns the absolute index of the current path.
func (c *Cursor) Position() (int, bool) {
	if !c.has {
		return -1, false
	}
	return len(c.back), true
}

// Advance moves n steps forward. Each step pushes the current path (if any)
// behind and pops the next one; running off the end leaves no current path.
// Negative n retreats.
func (c *Cursor) Advance(n int) {
	if n < 0 {
		c.Retreat(-n)
		return
	}
	for i := 0; i < n; i++ {
		if !c.has && len(c.fwd) == 0 {
			return
		}
		if c.has {
			c.back = append(c.back, c.current)
		}
		c.current, c.has = pop(&c.fwd)
	}
}

// Retreat moves n steps backward, mirroring Advance.
func (c *Cursor) Retreat(n int) {
	if n < 0 {
		c.Advance(-n)
		return
	}
	for i := 0; i < n; i++ {
		if !c.has && len(c.back) == 0 {
			return
		}
		if c.has {
			c.fwd = append(c.fwd, c.current)
		}
		c.current, c.has = pop(&c.back)
	}
}

// RemoveCurrent drops the current path from the working set. The nearest
// previous path becomes current, or the next one when nothing is behind.
func (c *Cursor) RemoveCurrent() (string, error) {
	if !c.has {
		return "", errors.NewNavigationError("no current file", "remove", errors.NoCurrentFile, nil)
	}
	removed := c.current
	c.current, c.has = c.nearest()
	return removed, nil
}

// nearest pops the replacement for a removed current path.
func (c *Cursor) nearest() (string, bool) {
	if len(c.back) > 0 {
		return pop(&c.back)
	}
	return pop(&c.fwd)
}

// InsertBefore makes path the current path, pushing the old current one
// behind it. The path need not be part of the working set yet.
func (c *Cursor) InsertBefore(path string) {
	if c.has {
		c.back = append(c.back, c.current)
	}
	c.current, c.has = path, true
}

// bounds returns the valid absolute index range for jumps.
func (c *Cursor) bounds() (int, int) {
	total := len(c.back) + len(c.fwd)
	return -(total + 1), total
}

// JumpToIndex moves to absolute index n of the working set. Negative n
// counts from the end, -1 being the last path. The valid range is
// -(total+1)..total with total = BackwardCount()+ForwardCount(). With no
// current path, the normalized positions -1 and Len() stand for running off
// the front and the end.
func (c *Cursor) JumpToIndex(n int) error {
	lo, hi := c.bounds()
	if n < lo || n > hi {
		return errors.OutOfRangef("jump", "index %d outside %d..%d", n, lo, hi)
	}
	if n < 0 {
		n += c.Len()
	}

	if c.has {
		c.Advance(n - len(c.back))
		return nil
	}
	// no current path: it sits between back and fwd
	if n >= len(c.back) {
		c.Advance(n - len(c.back) + 1)
	} else {
		c.Retreat(len(c.back) - n)
	}
	return nil
}

// IndexOf returns the absolute index of path, searching the visited half
// nearest-first and then the unvisited half nearest-first. Paths compare
// after cleaning and Unicode NFC normalization.
func (c *Cursor) IndexOf(path string) (int, bool) {
	want := normalize(path)
	if c.has && normalize(c.current) == want {
		return len(c.back), true
	}
	for i := len(c.back) - 1; i >= 0; i-- {
		if normalize(c.back[i]) == want {
			return i, true
		}
	}
	offset := len(c.back)
	if c.has {
		offset++
	}
	for i := len(c.fwd) - 1; i >= 0; i-- {
		if normalize(c.fwd[i]) == want {
			return offset + (len(c.fwd) - 1 - i), true
		}
	}
	return -1, false
}

// JumpToPath moves to path. A path that is not in the working set is
// ignored and reported as false.
func (c *Cursor) JumpToPath(path string) bool {
	idx, ok := c.IndexOf(path)
	if !ok {
		return false
	}
	// the index comes from the set, so it is always in range
	_ = c.JumpToIndex(idx)
	return true
}

// Sort orders the working set with less and keeps the current path current
// at its new position.
func (c *Cursor) Sort(less func(a, b string) bool) error {
	if less == nil {
		return errors.NewNavigationError("comparator is nil", "sort", errors.InvalidComparator, nil)
	}
	c.rearrange(func(all []string, cur int) int {
		idx := make([]int, len(all))
		for i := range idx {
			idx[i] = i
		}
		sorted := slices.Clone(all)
		slices.SortStableFunc(idx, func(a, b int) int {
			switch {
			case less(all[a], all[b]):
				return -1
			case less(all[b], all[a]):
				return 1
			}
			return 0
		})
		newCur := -1
		for to, from := range idx {
			sorted[to] = all[from]
			if from == cur {
				newCur = to
			}
		}
		copy(all, sorted)
		return newCur
	})
	return nil
}

// Reverse flips the working set order, keeping the current path current.
func (c *Cursor) Reverse() {
	c.rearrange(func(all []string, cur int) int {
		slices.Reverse(all)
		if cur < 0 {
			return -1
		}
		return len(all) - 1 - cur
	})
}

// rearrange flattens the set, lets fn reorder it in place and report where
// the current path went, then splits the set again around that index. With
// no current path everything lands in the forward half, unless only the
// backward half held paths before, in which case it stays behind.
func (c *Cursor) rearrange(fn func(all []string, cur int) int) {
	cur := -1
	if c.has {
		cur = len(c.back)
	}
	keepBehind := !c.has && len(c.back) > 0 && len(c.fwd) == 0

	all := c.Paths()
	newCur := fn(all, cur)

	switch {
	case newCur >= 0:
		c.split(all, newCur)
	case keepBehind:
		c.back, c.fwd = all, nil
	default:
		c.back, c.fwd = nil, reversed(all)
	}
}

// split installs all with all[at] as the current path.
func (c *Cursor) split(all []string, at int) {
	c.back = slices.Clone(all[:at])
	c.current, c.has = all[at], true
	c.fwd = reversed(all[at+1:])
}

// MoveCurrentToIndex moves the current path to absolute index pos, using
// the same indexing and bounds as JumpToIndex. It stays current.
func (c *Cursor) MoveCurrentToIndex(pos int) error {
	if !c.has {
		return errors.NewNavigationError("no current file", "move", errors.NoCurrentFile, nil)
	}
	lo, hi := c.bounds()
	if pos < lo || pos > hi {
		return errors.OutOfRangef("move", "index %d outside %d..%d", pos, lo, hi)
	}
	if pos < 0 {
		pos += c.Len()
	}

	rest := make([]string, 0, c.Len())
	rest = append(rest, c.back...)
	rest = append(rest, reversed(c.fwd)...)
	all := slices.Insert(rest, pos, c.current)
	c.split(all, pos)
	return nil
}

// Retain keeps only the paths for which keep returns true. When the current
// path is dropped its replacement is chosen like RemoveCurrent does.
func (c *Cursor) Retain(keep func(path string) bool) (int, error) {
	if keep == nil {
		return 0, errors.NewNavigationError("predicate is nil", "retain", errors.InvalidPredicate, nil)
	}
	before := c.Len()
	c.back = slices.DeleteFunc(c.back, func(p string) bool { return !keep(p) })
	c.fwd = slices.DeleteFunc(c.fwd, func(p string) bool { return !keep(p) })
	if c.has && !keep(c.current) {
		c.current, c.has = c.nearest()
	}
	return before - c.Len(), nil
}

// Snapshot is an immutable copy of the cursor state, safe to hand to
// readers outside the goroutine that owns the cursor.
type Snapshot struct {
	Before  []string
	Current string
	HasCur  bool
	After   []string
}

// Snapshot copies the cursor state.
func (c *Cursor) Snapshot() Snapshot {
	return Snapshot{
		Before:  c.Before(),
		Current: c.current,
		HasCur:  c.has,
		After:   c.After(),
	}
}

func pop(stack *[]string) (string, bool) {
	s := *stack
	if len(s) == 0 {
		return "", false
	}
	top := s[len(s)-1]
	*stack = s[:len(s)-1]
	return top, true
}

func reversed(in []string) []string {
	out := make([]string, len(in))
	for i, p := range in {
		out[len(in)-1-i] = p
	}
	return out
}

func normalize(path string) string {
	return norm.NFC.String(filepath.Clean(path))
}
