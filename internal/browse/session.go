// Package browse ties the working-set filter, the file-list cursor and the
// view-state store into a browsing session driven by a host display.
//
// Every navigation runs the same sequence: capture the view of the file
// being left, mutate the cursor, display the new current file, restore its
// saved view and refresh the header. A Session is not safe for concurrent
// use; hosts call it from their single update loop.
package browse

import (
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/go-git/go-billy/v5"

	"lookat/internal/cursor"
	"lookat/internal/errors"
	"lookat/internal/filter"
	"lookat/internal/header"
	"lookat/internal/log"
	"lookat/internal/viewstate"
)

// Direction hints where files remain when nothing is current.
type Direction int

const (
	NoDirection Direction = iota
	Forward
	Backward
)

func (d Direction) String() string {
	switch d {
	case Forward:
		return "forward"
	case Backward:
		return "backward"
	}
	return "none"
}

// StateKind enumerates the session states.
type StateKind int

const (
	Empty StateKind = iota
	Viewing
	Exhausted
)

func (k StateKind) String() string {
	switch k {
	case Viewing:
		return "viewing"
	case Exhausted:
		return "exhausted"
	}
	return "empty"
}

// State is the session state. Path is set while Viewing; Direction while
// Exhausted.
type State struct {
	Kind      StateKind
	Path      string
	Direction Direction
}

// Host displays files for a session.
type Host interface {
	// DisplayFile renders path into the viewing surface and reports how it
	// was displayed.
	DisplayFile(path string) (viewstate.Kind, error)
	Surface() viewstate.Surface
	ShowHeader(text string)
	// ShowExhausted replaces the file display when nothing is current.
	ShowExhausted(dir Direction, text string)
}

// Marker supplies a host selection of paths.
type Marker interface {
	ListMarkedPaths() ([]string, error)
}

// Option configures a Session.
type Option func(*Session)

// WithRegistry replaces the default view-state handler registry.
func WithRegistry(r *viewstate.Registry) Option {
	return func(s *Session) { s.registry = r }
}

// WithGlobber replaces the file-system globber used by LoadGlob.
func WithGlobber(g filter.Globber) Option {
	return func(s *Session) { s.globber = g }
}

// WithWorkingDir sets the directory relative paths are resolved against.
func WithWorkingDir(dir string) Option {
	return func(s *Session) { s.wd = dir }
}

// WithFilterConfig sets the filter configuration used until the first
// load supplies one.
func WithFilterConfig(cfg filter.Config) Option {
	return func(s *Session) {
		s.cfg = cfg
		s.headerOpts.ShowSubdirectories = cfg.ShowSubdirectories
	}
}

// WithMaxNameWidth limits the file name width in the header.
func WithMaxNameWidth(n int) Option {
	return func(s *Session) { s.headerOpts.MaxNameWidth = n }
}

// Session is one browsing session.
type Session struct {
	fs       billy.Filesystem
	host     Host
	cur      *cursor.Cursor
	store    *viewstate.Store
	registry *viewstate.Registry
	globber  filter.Globber

	cfg        filter.Config
	headerOpts header.Options
	wd         string
	root       string
	subdirs    []string

	// displayed is the path whose view is on the surface, empty when the
	// surface shows nothing worth capturing.
	displayed string
	kind      viewstate.Kind
}

// New creates an empty session reading files through fs.
func New(fs billy.Filesystem, host Host, opts ...Option) *Session {
	s := &Session{
		fs:       fs,
		host:     host,
		cur:      cursor.New(),
		store:    viewstate.NewStore(),
		registry: viewstate.NewRegistry(),
		globber:  filter.FSGlobber{FS: fs},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.wd == "" {
		if wd, err := os.Getwd(); err == nil {
			s.wd = wd
		} else {
			s.wd = string(filepath.Separator)
		}
	}
	return s
}

// Store exposes the view-state store.
func (s *Session) Store() *viewstate.Store { return s.store }

// Config is the filter configuration of the last load.
func (s *Session) Config() filter.Config { return s.cfg }

// LoadFiles builds a working set from raw paths and shows its first file.
// Replace discards the current set; Append keeps it behind the new files.
// An empty result leaves an appended session untouched.
func (s *Session) LoadFiles(raw []string, mode cursor.LoadMode, cfg filter.Config) error {
	f, err := filter.New(s.fs, cfg)
	if err != nil {
		return err
	}
	paths := make([]string, len(raw))
	for i, p := range raw {
		paths[i] = s.absolute(p)
	}
	return s.install(f.Build(paths), mode, cfg)
}

// LoadGlob builds a working set by expanding pattern, "*" when empty.
func (s *Session) LoadGlob(pattern string, mode cursor.LoadMode, cfg filter.Config) error {
	f, err := filter.New(s.fs, cfg)
	if err != nil {
		return err
	}
	if pattern == "" {
		pattern = "*"
	}
	ws, err := f.BuildGlob(s.globber, s.absolute(pattern))
	if err != nil {
		return err
	}
	return s.install(ws, mode, cfg)
}

// LoadMarked builds a working set from the host's marked paths.
func (s *Session) LoadMarked(m Marker, mode cursor.LoadMode, cfg filter.Config) error {
	raw, err := m.ListMarkedPaths()
	if err != nil {
		return errors.Wrap(err, "failed to list marked paths")
	}
	return s.LoadFiles(raw, mode, cfg)
}

func (s *Session) install(ws filter.WorkingSet, mode cursor.LoadMode, cfg filter.Config) error {
	log.LogWithFields(
		log.F("files", len(ws.Files)),
		log.F("subdirs", len(ws.Subdirs)),
		log.F("mode", mode.String()),
	).Debug("working set built")

	if ws.Empty() && mode == cursor.Append {
		log.Info("no files to append")
		return nil
	}

	s.leave()
	s.cfg = cfg
	s.headerOpts.ShowSubdirectories = cfg.ShowSubdirectories
	s.cur.Load(ws.Files, mode)
	if mode == cursor.Append {
		s.subdirs = append(s.subdirs, ws.Subdirs...)
	} else {
		s.subdirs = ws.Subdirs
	}
	s.root = commonDir(s.cur.Paths())
	s.cur.Advance(1)
	return s.visitCurrent()
}

func (s *Session) absolute(p string) string {
	if filepath.IsAbs(p) {
		return filepath.Clean(p)
	}
	return filepath.Join(s.wd, p)
}

// leave saves the view of the displayed file.
func (s *Session) leave() {
	if s.displayed == "" {
		return
	}
	d := s.registry.Handler(s.kind).Capture(s.host.Surface())
	s.store.Save(s.displayed, d)
}

// visitCurrent displays the current file and restores its saved view, or
// reports exhaustion when nothing is current.
func (s *Session) visitCurrent() error {
	path, ok := s.cur.Current()
	if !ok {
		s.displayed, s.kind = "", viewstate.KindUnknown
		s.host.ShowExhausted(s.direction(), s.Header())
		return nil
	}

	kind, err := s.host.DisplayFile(path)
	if err != nil {
		s.displayed, s.kind = "", viewstate.KindUnknown
		s.host.ShowHeader(s.Header())
		return displayError(path, err)
	}
	s.displayed, s.kind = path, kind
	if d, ok := s.store.Load(path); ok {
		s.registry.Handler(kind).Restore(s.host.Surface(), d)
	}
	s.host.ShowHeader(s.Header())
	return nil
}

// DisplayError reports a file the host failed to display. The file stays
// current; Err is the classified cause.
type DisplayError struct {
	Path string
	Err  error
}

func (e *DisplayError) Error() string {
	return e.Err.Error()
}

func (e *DisplayError) Unwrap() error {
	return e.Err
}

// IsDisplayError reports whether err came from displaying a file rather than
// from building or changing the working set.
func IsDisplayError(err error) bool {
	var de *DisplayError
	return errors.As(err, &de)
}

func displayError(path string, err error) error {
	return &DisplayError{Path: path, Err: fileError("cannot display file", path, err)}
}

// fileError classifies err as a FileError unless it already is one.
func fileError(msg, path string, err error) error {
	var fileErr *errors.FileError
	if errors.As(err, &fileErr) {
		return err
	}
	kind := errors.FileAccessDenied
	if os.IsNotExist(err) {
		kind = errors.FileNotFound
	}
	return errors.NewFileError(msg, path, kind, err)
}

func (s *Session) direction() Direction {
	switch {
	case s.cur.ForwardCount() > 0:
		return Forward
	case s.cur.BackwardCount() > 0:
		return Backward
	}
	return NoDirection
}

// navigate wraps a cursor mutation in the save/display/restore sequence.
// A failed mutation leaves the display alone.
func (s *Session) navigate(op string, fn func() error) error {
	if s.cur.Empty() {
		s.host.ShowExhausted(NoDirection, s.Header())
		return errors.NewNavigationError("no files loaded", op, errors.EmptyList, errors.ErrEmptyList)
	}
	s.leave()
	if err := fn(); err != nil {
		log.LogWithError(err).Debug("navigation rejected")
		return err
	}
	return s.visitCurrent()
}

// Advance moves n files forward.
func (s *Session) Advance(n int) error {
	return s.navigate("advance", func() error {
		s.cur.Advance(n)
		return nil
	})
}

// Retreat moves n files backward.
func (s *Session) Retreat(n int) error {
	return s.navigate("retreat", func() error {
		s.cur.Retreat(n)
		return nil
	})
}

// Refresh redisplays the current file, keeping its view.
func (s *Session) Refresh() error {
	return s.Advance(0)
}

// JumpToIndex moves to absolute index n, negative counting from the end.
func (s *Session) JumpToIndex(n int) error {
	return s.navigate("jump", func() error {
		return s.cur.JumpToIndex(n)
	})
}

// JumpToPath moves to path if it is in the working set. A missing path
// changes nothing and reports false.
func (s *Session) JumpToPath(path string) bool {
	path = s.absolute(path)
	if _, ok := s.cur.IndexOf(path); !ok {
		log.LogWithFields(log.F("path", path)).Debug("jump target not in working set")
		return false
	}
	_ = s.navigate("jump", func() error {
		s.cur.JumpToPath(path)
		return nil
	})
	return true
}

// InsertFile makes path the current file, placed just after the file being
// viewed. The path must name an existing file.
func (s *Session) InsertFile(path string) error {
	path = s.absolute(path)
	info, err := s.fs.Stat(path)
	if err != nil {
		return fileError("cannot insert file", path, err)
	}
	if info.IsDir() {
		return errors.NewFileError("cannot insert a directory", path, errors.InvalidPath, nil)
	}
	s.leave()
	s.cur.InsertBefore(path)
	if s.root == "" {
		s.root = filepath.Dir(path)
	}
	return s.visitCurrent()
}

// RemoveCurrent drops the current file from the working set. The previous
// file becomes current, or the next one when there is none.
func (s *Session) RemoveCurrent() (string, error) {
	var removed string
	err := s.navigate("remove", func() error {
		var err error
		removed, err = s.cur.RemoveCurrent()
		if err == nil {
			s.displayed = ""
		}
		return err
	})
	return removed, err
}

// Sort orders the working set with the named comparator.
func (s *Session) Sort(name string) error {
	less, err := Comparator(s.fs, name)
	if err != nil {
		return err
	}
	return s.SortBy(less)
}

// SortBy orders the working set with less.
func (s *Session) SortBy(less func(a, b string) bool) error {
	return s.navigate("sort", func() error {
		return s.cur.Sort(less)
	})
}

// Reverse flips the working-set order.
func (s *Session) Reverse() error {
	return s.navigate("reverse", func() error {
		s.cur.Reverse()
		return nil
	})
}

// MoveCurrentToIndex moves the current file to absolute index pos.
func (s *Session) MoveCurrentToIndex(pos int) error {
	return s.navigate("move", func() error {
		return s.cur.MoveCurrentToIndex(pos)
	})
}

// Retain keeps only files whose path matches re and reports how many were
// dropped.
func (s *Session) Retain(re *regexp.Regexp) (int, error) {
	return s.filterBy("retain", re, true)
}

// Remove drops files whose path matches re and reports how many were
// dropped.
func (s *Session) Remove(re *regexp.Regexp) (int, error) {
	return s.filterBy("remove", re, false)
}

func (s *Session) filterBy(op string, re *regexp.Regexp, keepMatches bool) (int, error) {
	if re == nil {
		return 0, errors.NewNavigationError("pattern is nil", op, errors.InvalidPredicate, nil)
	}
	var dropped int
	err := s.navigate(op, func() error {
		var err error
		dropped, err = s.cur.Retain(func(p string) bool {
			return re.MatchString(p) == keepMatches
		})
		return err
	})
	return dropped, err
}

// Reset empties the session and forgets all saved views.
func (s *Session) Reset() {
	s.cur.Reset()
	s.store.Reset()
	s.subdirs, s.root = nil, ""
	s.displayed, s.kind = "", viewstate.KindUnknown
	s.host.ShowExhausted(NoDirection, s.Header())
}

// State reports the session state.
func (s *Session) State() State {
	if s.cur.Empty() {
		return State{Kind: Empty}
	}
	if p, ok := s.cur.Current(); ok {
		return State{Kind: Viewing, Path: p}
	}
	return State{Kind: Exhausted, Direction: s.direction()}
}

// Current returns the current path.
func (s *Session) Current() (string, bool) {
	return s.cur.Current()
}

// Kind returns how the current file was displayed.
func (s *Session) Kind() viewstate.Kind {
	return s.kind
}

// Paths returns the working set in order.
func (s *Session) Paths() []string {
	return s.cur.Paths()
}

// Position returns the absolute index of the current file.
func (s *Session) Position() (int, bool) {
	return s.cur.Position()
}

// Snapshot copies the cursor state for readers outside the update loop.
func (s *Session) Snapshot() cursor.Snapshot {
	return s.cur.Snapshot()
}

// Status summarizes the session for rendering. Names are relative to the
// common directory of the working set.
func (s *Session) Status() header.Status {
	st := header.Status{
		Backward:    s.cur.BackwardCount(),
		Forward:     s.cur.ForwardCount(),
		Highlighted: -1,
	}
	cur, ok := s.cur.Current()
	if ok {
		st.Current = s.Relative(cur)
	}
	if len(s.subdirs) > 0 {
		st.Subdirs = make([]string, len(s.subdirs))
		for i, d := range s.subdirs {
			st.Subdirs[i] = s.Relative(d)
			if ok && d == filepath.Dir(cur) && st.Highlighted < 0 {
				st.Highlighted = i
			}
		}
	}
	return st
}

// Header renders the status line.
func (s *Session) Header() string {
	return header.Render(s.Status(), s.headerOpts)
}

// Relative returns path relative to the working-set root when it lies below
// it.
func (s *Session) Relative(path string) string {
	if s.root == "" {
		return path
	}
	rel, err := filepath.Rel(s.root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return path
	}
	return rel
}

// commonDir returns the deepest directory containing every path.
func commonDir(paths []string) string {
	if len(paths) == 0 {
		return ""
	}
	root := filepath.Dir(paths[0])
	for _, p := range paths[1:] {
		for !within(root, p) {
			parent := filepath.Dir(root)
			if parent == root {
				break
			}
			root = parent
		}
	}
	return root
}

func within(dir, path string) bool {
	if dir == string(filepath.Separator) {
		return true
	}
	return strings.HasPrefix(path, dir+string(filepath.Separator))
}
