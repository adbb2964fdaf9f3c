package components

import (
	"fmt"
	"strings"

	"lookat/internal/tui/styles"
)

// FileList shows the working set with the current file marked and lets the
// user pick an entry.
type FileList struct {
	names   []string
	current int // -1 when nothing is current
	cursor  int
	height  int
	theme   styles.Theme
}

func NewFileList(theme styles.Theme) *FileList {
	return &FileList{current: -1, height: 10, theme: theme}
}

// SetFiles replaces the entries and puts the list cursor on the current
// file.
func (fl *FileList) SetFiles(names []string, current int) {
	fl.names = names
	fl.current = current
	fl.cursor = 0
	if current >= 0 && current < len(names) {
		fl.cursor = current
	}
}

func (fl *FileList) SetHeight(h int) {
	if h < 1 {
		h = 1
	}
	fl.height = h
}

func (fl *FileList) Len() int {
	return len(fl.names)
}

func (fl *FileList) Cursor() int {
	return fl.cursor
}

func (fl *FileList) MoveUp() {
	if fl.cursor > 0 {
		fl.cursor--
	}
}

func (fl *FileList) MoveDown() {
	if fl.cursor < len(fl.names)-1 {
		fl.cursor++
	}
}

func (fl *FileList) GotoTop() {
	fl.cursor = 0
}

func (fl *FileList) GotoBottom() {
	if len(fl.names) > 0 {
		fl.cursor = len(fl.names) - 1
	}
}

// window returns the range of entries that fits the height and contains
// the cursor.
func (fl *FileList) window() (int, int) {
	start := 0
	if fl.cursor >= fl.height {
		start = fl.cursor - fl.height + 1
	}
	end := start + fl.height
	if end > len(fl.names) {
		end = len(fl.names)
	}
	return start, end
}

func (fl *FileList) View() string {
	if len(fl.names) == 0 {
		return fl.theme.Unselected.Render("No files loaded")
	}

	width := len(fmt.Sprint(len(fl.names)))
	start, end := fl.window()

	var s strings.Builder
	for i := start; i < end; i++ {
		cursor := " "
		if i == fl.cursor {
			cursor = ">"
		}
		mark := " "
		if i == fl.current {
			mark = "*"
		}
		line := fmt.Sprintf("%s%s %*d  %s", cursor, mark, width, i, fl.names[i])

		style := fl.theme.Unselected
		if i == fl.cursor {
			style = fl.theme.Selected
		}
		s.WriteString(style.Render(line))
		if i < end-1 {
			s.WriteString("\n")
		}
	}
	return s.String()
}
