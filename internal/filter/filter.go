// Package filter decides which paths enter a browsing working set and
// expands directories into the directories that will be scanned.
package filter

import (
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/gobwas/glob"

	"lookat/internal/errors"
	"lookat/internal/log"
)

// GlobPrefix marks an exclusion pattern written in glob syntax instead of
// a regular expression.
const GlobPrefix = "glob:"

// Decision is the outcome of Admit.
type Decision int

const (
	Admitted Decision = iota
	SkippedFile
	SkippedDirectory
	// SkippedOther covers entries that are neither regular files nor
	// directories as reported by Lstat, symlinks included.
	SkippedOther
)

func (d Decision) String() string {
	switch d {
	case Admitted:
		return "admitted"
	case SkippedFile:
		return "skipped-file"
	case SkippedDirectory:
		return "skipped-directory"
	default:
		return "skipped-other"
	}
}

// Config is the filter configuration for one browsing session.
type Config struct {
	FileExclusions      []string
	DirectoryExclusions []string
	Recurse             bool
	ShowSubdirectories  bool
}

type matcher interface {
	Match(name string) bool
}

// reMatcher adapts a regexp to matcher.
type reMatcher struct {
	re *regexp.Regexp
}

func (r reMatcher) Match(name string) bool {
	return r.re.MatchString(name)
}

type pattern struct {
	source string
	m      matcher
}

func compile(source string) (pattern, error) {
	if rest, ok := strings.CutPrefix(source, GlobPrefix); ok {
		g, err := glob.Compile(rest)
		if err != nil {
			return pattern{}, err
		}
		return pattern{source: source, m: g}, nil
	}
	re, err := regexp.Compile(source)
	if err != nil {
		return pattern{}, err
	}
	return pattern{source: source, m: reMatcher{re: re}}, nil
}

func compileAll(param string, sources []string) ([]pattern, error) {
	out := make([]pattern, 0, len(sources))
	for _, src := range sources {
		p, err := compile(src)
		if err != nil {
			return nil, errors.NewConfigError("invalid exclusion pattern "+src, param, errors.InvalidConfig, err)
		}
		out = append(out, p)
	}
	return out, nil
}

// Validate compiles every pattern of cfg and reports the first failure.
func (cfg Config) Validate() error {
	if _, err := compileAll("file_exclusions", cfg.FileExclusions); err != nil {
		return err
	}
	_, err := compileAll("directory_exclusions", cfg.DirectoryExclusions)
	return err
}

// Filter admits paths against compiled exclusion patterns. All file system
// access goes through the billy.Filesystem it was built with.
type Filter struct {
	fs      billy.Filesystem
	cfg     Config
	files   []pattern
	dirs    []pattern
	recurse bool
}

// New compiles cfg into a Filter over fs.
func New(fs billy.Filesystem, cfg Config) (*Filter, error) {
	files, err := compileAll("file_exclusions", cfg.FileExclusions)
	if err != nil {
		return nil, err
	}
	dirs, err := compileAll("directory_exclusions", cfg.DirectoryExclusions)
	if err != nil {
		return nil, err
	}
	return &Filter{fs: fs, cfg: cfg, files: files, dirs: dirs, recurse: cfg.Recurse}, nil
}

// Config returns the configuration the filter was built from.
func (f *Filter) Config() Config {
	return f.cfg
}

// FS returns the file system the filter reads.
func (f *Filter) FS() billy.Filesystem {
	return f.fs
}

func anyMatch(patterns []pattern, name string) bool {
	for _, p := range patterns {
		if p.m.Match(name) {
			return true
		}
	}
	return false
}

// SkipFile reports whether a file name matches a file exclusion.
func (f *Filter) SkipFile(name string) bool {
	return anyMatch(f.files, name)
}

// SkipDirectory reports whether a directory name matches a directory
// exclusion.
func (f *Filter) SkipDirectory(name string) bool {
	return anyMatch(f.dirs, name)
}

// Admit classifies path using the type reported by Lstat. A path that
// cannot be stat'ed is SkippedOther.
func (f *Filter) Admit(path string) Decision {
	info, err := f.fs.Lstat(path)
	if err != nil {
		log.LogWithFields(log.F("path", path), log.F("error", err)).Debug("cannot stat candidate")
		return SkippedOther
	}
	return f.decide(info)
}

func (f *Filter) decide(info os.FileInfo) Decision {
	name := filepath.Base(info.Name())
	switch {
	case info.Mode().IsRegular():
		if f.SkipFile(name) {
			return SkippedFile
		}
		return Admitted
	case info.IsDir():
		if f.SkipDirectory(name) {
			return SkippedDirectory
		}
		return Admitted
	}
	return SkippedOther
}

// readDir lists dir sorted by name. Listing errors are logged and yield no
// entries so one unreadable directory never aborts a scan.
func (f *Filter) readDir(dir string) []os.FileInfo {
	entries, err := f.fs.ReadDir(dir)
	if err != nil {
		log.LogWithFields(log.F("directory", dir), log.F("error", err)).Debug("skipping unreadable directory")
		return nil
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].Name() < entries[j].Name() })
	return entries
}

// ExpandDirectory returns dir followed by every admitted descendant
// directory, depth-first in pre-order, when recursion is enabled; otherwise
// just dir.
func (f *Filter) ExpandDirectory(dir string) []string {
	out := []string{dir}
	if !f.recurse {
		return out
	}
	var walk func(string)
	walk = func(d string) {
		for _, entry := range f.readDir(d) {
			name := entry.Name()
			if name == "." || name == ".." || !entry.IsDir() {
				continue
			}
			if f.decide(entry) != Admitted {
				continue
			}
			child := filepath.Join(d, name)
			out = append(out, child)
			walk(child)
		}
	}
	walk(dir)
	return out
}

// filesIn returns the admitted regular files directly inside dir.
func (f *Filter) filesIn(dir string) []string {
	var out []string
	for _, entry := range f.readDir(dir) {
		if entry.IsDir() || f.decide(entry) != Admitted {
			continue
		}
		out = append(out, filepath.Join(dir, entry.Name()))
	}
	return out
}
