// Package header renders the one-line position summary shown above the
// viewer.
package header

import (
	"fmt"
	"strings"

	"github.com/mattn/go-runewidth"
)

const ellipsis = "…"

// Status is a read-only summary of a browsing session.
type Status struct {
	Backward int
	Forward  int
	// Current is the display name of the current file, empty when none.
	Current string
	Subdirs []string
	// Highlighted indexes Subdirs, -1 for none.
	Highlighted int
}

// HasCurrent reports whether a file is being viewed.
func (s Status) HasCurrent() bool {
	return s.Current != ""
}

// Options control rendering.
type Options struct {
	// MaxNameWidth limits the file name in terminal cells; 0 means no limit.
	MaxNameWidth       int
	ShowSubdirectories bool
}

// Render formats s as "[back|forward] name", followed by the subdirectory
// strip when enabled.
func Render(s Status, o Options) string {
	var b strings.Builder
	fmt.Fprintf(&b, "[%d|%d] ", s.Backward, s.Forward)

	switch {
	case s.HasCurrent():
		b.WriteString(TruncateLeft(s.Current, o.MaxNameWidth))
	case s.Backward == 0 && s.Forward == 0:
		b.WriteString("-- empty --")
	case s.Forward == 0:
		b.WriteString("-- end of list --")
	default:
		b.WriteString("-- start of list --")
	}

	if o.ShowSubdirectories && len(s.Subdirs) > 0 {
		b.WriteString("  ")
		b.WriteString(subdirStrip(s.Subdirs, s.Highlighted))
	}
	return b.String()
}

func subdirStrip(dirs []string, highlighted int) string {
	parts := make([]string, len(dirs))
	for i, d := range dirs {
		if i == highlighted {
			parts[i] = "[" + d + "]"
		} else {
			parts[i] = d
		}
	}
	return strings.Join(parts, " ")
}

// TruncateLeft shortens name to at most width cells by dropping leading
// runes, marking the cut with an ellipsis.
func TruncateLeft(name string, width int) string {
	if width <= 0 || runewidth.StringWidth(name) <= width {
		return name
	}
	room := width - runewidth.StringWidth(ellipsis)
	runes := []rune(name)
	start := len(runes)
	used := 0
	for start > 0 {
		w := runewidth.RuneWidth(runes[start-1])
		if used+w > room {
			break
		}
		used += w
		start--
	}
	return ellipsis + string(runes[start:])
}
