package browse

import (
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/go-git/go-billy/v5"

	"lookat/internal/errors"
)

// DefaultComparator is used when no comparator is named.
const DefaultComparator = "name"

type comparatorFactory func(stat func(string) os.FileInfo) func(a, b string) bool

var comparators = map[string]comparatorFactory{
	"name": func(func(string) os.FileInfo) func(a, b string) bool {
		return func(a, b string) bool { return a < b }
	},
	"name-desc": func(func(string) os.FileInfo) func(a, b string) bool {
		return func(a, b string) bool { return a > b }
	},
	// newest first, like ls -t
	"mtime": func(stat func(string) os.FileInfo) func(a, b string) bool {
		return func(a, b string) bool {
			ia, ib := stat(a), stat(b)
			if ia == nil || ib == nil {
				return ia != nil
			}
			return ia.ModTime().After(ib.ModTime())
		}
	},
	// largest first, like ls -S
	"size": func(stat func(string) os.FileInfo) func(a, b string) bool {
		return func(a, b string) bool {
			ia, ib := stat(a), stat(b)
			if ia == nil || ib == nil {
				return ia != nil
			}
			return ia.Size() > ib.Size()
		}
	},
	"extension": func(func(string) os.FileInfo) func(a, b string) bool {
		return func(a, b string) bool {
			ea, eb := strings.ToLower(filepath.Ext(a)), strings.ToLower(filepath.Ext(b))
			if ea != eb {
				return ea < eb
			}
			return a < b
		}
	},
}

// Comparators lists the comparator names in order.
func Comparators() []string {
	names := make([]string, 0, len(comparators))
	for name := range comparators {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// HasComparator reports whether name is a known comparator.
func HasComparator(name string) bool {
	_, ok := comparators[name]
	return ok
}

// Comparator returns the named ordering over paths in fs. File metadata is
// read at most once per path. An empty name selects DefaultComparator.
func Comparator(fs billy.Filesystem, name string) (func(a, b string) bool, error) {
	if name == "" {
		name = DefaultComparator
	}
	factory, ok := comparators[name]
	if !ok {
		return nil, errors.NewNavigationError("unknown comparator "+name, "sort", errors.InvalidComparator, nil)
	}

	cache := make(map[string]os.FileInfo)
	stat := func(path string) os.FileInfo {
		if info, ok := cache[path]; ok {
			return info
		}
		info, err := fs.Stat(path)
		if err != nil {
			info = nil
		}
		cache[path] = info
		return info
	}
	return factory(stat), nil
}
