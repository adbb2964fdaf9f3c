package filter

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-git/go-billy/v5"
	"github.com/gobwas/glob"

	"lookat/internal/errors"
	"lookat/internal/log"
)

// WorkingSet is the result of list construction: admitted files in order
// plus the scanned directories, kept for header display.
type WorkingSet struct {
	Files   []string
	Subdirs []string
}

// Empty reports whether no file was admitted.
func (w WorkingSet) Empty() bool {
	return len(w.Files) == 0
}

// Build turns raw paths into a working set. Regular files are admitted in
// input order; a directory contributes its admitted files, followed by those
// of every expanded subdirectory when recursion is on. Nothing is
// deduplicated.
func (f *Filter) Build(raw []string) WorkingSet {
	var ws WorkingSet
	for _, p := range raw {
		info, err := f.fs.Lstat(p)
		if err != nil {
			log.LogWithFields(log.F("path", p), log.F("error", err)).Debug("skipping missing path")
			continue
		}
		switch d := f.decide(info); {
		case d != Admitted:
			log.LogWithFields(log.F("path", p), log.F("decision", d.String())).Debug("path filtered")
		case info.IsDir():
			for _, dir := range f.ExpandDirectory(p) {
				ws.Subdirs = append(ws.Subdirs, dir)
				ws.Files = append(ws.Files, f.filesIn(dir)...)
			}
		default:
			ws.Files = append(ws.Files, p)
		}
	}
	return ws
}

// BuildGlob expands pattern in its own directory and, when recursion is on,
// in every expanded subdirectory. Only admitted regular files are kept. An
// error expanding the pattern's own directory is returned; subdirectories
// that fail are skipped.
func (f *Filter) BuildGlob(g Globber, pattern string) (WorkingSet, error) {
	if pattern == "" {
		pattern = "*"
	}
	dir, base := filepath.Split(pattern)
	dir = filepath.Clean(dir)

	var ws WorkingSet
	for i, d := range f.ExpandDirectory(dir) {
		matches, err := g.ExpandGlob(filepath.Join(d, base))
		if err != nil {
			if i == 0 {
				return WorkingSet{}, err
			}
			log.LogWithFields(log.F("directory", d), log.F("error", err)).Debug("skipping unreadable directory")
			continue
		}
		ws.Subdirs = append(ws.Subdirs, d)
		for _, m := range matches {
			info, err := f.fs.Lstat(m)
			if err != nil || info.IsDir() || f.decide(info) != Admitted {
				continue
			}
			ws.Files = append(ws.Files, m)
		}
	}
	return ws, nil
}

// Globber expands a wildcard pattern into paths.
type Globber interface {
	ExpandGlob(pattern string) ([]string, error)
}

// FSGlobber expands patterns against a billy.Filesystem. Wildcards are only
// honored in the last path element. A leading dot in a name must be matched
// explicitly, as in a shell.
type FSGlobber struct {
	FS billy.Filesystem
}

// ExpandGlob returns the sorted entries of the pattern's directory whose
// names match its last element. An empty pattern means "*".
func (g FSGlobber) ExpandGlob(pattern string) ([]string, error) {
	if pattern == "" {
		pattern = "*"
	}
	dir, base := filepath.Split(pattern)
	if dir == "" {
		dir = "."
	}
	m, err := glob.Compile(base)
	if err != nil {
		return nil, errors.NewInvalidInputError("invalid glob pattern", err).WithContext("pattern", pattern)
	}

	entries, err := g.FS.ReadDir(dir)
	if err != nil {
		kind := errors.FileAccessDenied
		if os.IsNotExist(err) {
			kind = errors.FileNotFound
		}
		return nil, errors.NewFileError("cannot list directory", dir, kind, err)
	}

	var out []string
	for _, e := range entries {
		name := e.Name()
		if strings.HasPrefix(name, ".") && !strings.HasPrefix(base, ".") {
			continue
		}
		if m.Match(name) {
			out = append(out, filepath.Join(dir, name))
		}
	}
	sort.Strings(out)
	return out, nil
}
