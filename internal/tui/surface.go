package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/x/ansi"

	"lookat/internal/viewstate"
)

// Surface is the single viewport every file is displayed in. It keeps the
// rendered lines next to their unstyled text so handlers can search what
// the user sees.
type Surface struct {
	vp     viewport.Model
	lines  []string
	plain  []string
	cursor int

	// laidOut is the width the current text was rendered for
	laidOut int

	// card content for files displayed with an info panel
	card     string
	details  string
	expanded bool

	cursorStyle lipgloss.Style
}

var _ viewstate.Surface = (*Surface)(nil)
var _ viewstate.Expander = (*Surface)(nil)

// NewSurface returns an empty surface of the given size.
func NewSurface(width, height int, cursorStyle lipgloss.Style) *Surface {
	return &Surface{
		vp:          viewport.New(width, height),
		cursorStyle: cursorStyle,
	}
}

// SetContent replaces the displayed text and moves to the top.
func (s *Surface) SetContent(content string) {
	s.card, s.details = "", ""
	s.setLines(content)
}

// SetCard displays a summary with an optional details panel shown while
// the surface is expanded.
func (s *Surface) SetCard(card, details string) {
	s.card, s.details = card, details
	s.setLines(s.cardContent())
}

func (s *Surface) cardContent() string {
	if s.expanded && s.details != "" {
		return s.card + "\n\n" + s.details
	}
	return s.card
}

func (s *Surface) setLines(content string) {
	content = strings.TrimRight(content, "\n")
	if content == "" {
		s.lines = nil
	} else {
		s.lines = strings.Split(content, "\n")
	}
	s.plain = make([]string, len(s.lines))
	for i, l := range s.lines {
		s.plain[i] = ansi.Strip(l)
	}
	s.cursor = 0
	s.laidOut = s.vp.Width
	s.refresh()
	s.vp.SetYOffset(0)
}

func (s *Surface) refresh() {
	if s.cursor < 0 || s.cursor >= len(s.lines) || s.card != "" {
		s.vp.SetContent(strings.Join(s.lines, "\n"))
		return
	}
	shown := make([]string, len(s.lines))
	copy(shown, s.lines)
	shown[s.cursor] = s.cursorStyle.Render(s.plain[s.cursor])
	s.vp.SetContent(strings.Join(shown, "\n"))
}

// SetSize resizes the viewport keeping the offset when possible.
func (s *Surface) SetSize(width, height int) {
	offset := s.vp.YOffset
	s.vp.Width = width
	s.vp.Height = height
	s.vp.SetYOffset(offset)
}

func (s *Surface) Height() int {
	return s.vp.Height
}

func (s *Surface) View() string {
	return s.vp.View()
}

func (s *Surface) CursorOffset() int {
	return s.cursor
}

// SetCursorOffset moves the cursor line and scrolls it into view. -1 and
// TotalLines() are kept as positions outside the text.
func (s *Surface) SetCursorOffset(n int) {
	if n < -1 {
		n = -1
	}
	if n > len(s.lines) {
		n = len(s.lines)
	}
	s.cursor = n
	s.refresh()
	if n < 0 || n >= len(s.lines) {
		return
	}
	switch {
	case n < s.vp.YOffset:
		s.vp.SetYOffset(n)
	case s.vp.Height > 0 && n >= s.vp.YOffset+s.vp.Height:
		s.vp.SetYOffset(n - s.vp.Height + 1)
	}
}

func (s *Surface) ViewportOffset() int {
	return s.vp.YOffset
}

func (s *Surface) SetViewportOffset(n int) {
	s.vp.SetYOffset(n)
}

// Width is the width the displayed text was laid out for, which lags
// behind a resize until the file is displayed again.
func (s *Surface) Width() int {
	return s.laidOut
}

// ViewWidth is the current width of the viewport.
func (s *Surface) ViewWidth() int {
	return s.vp.Width
}

func (s *Surface) TotalLines() int {
	return len(s.lines)
}

func (s *Surface) Lines() []string {
	out := make([]string, len(s.plain))
	copy(out, s.plain)
	return out
}

func (s *Surface) InfoExpanded() bool {
	return s.expanded
}

func (s *Surface) SetInfoExpanded(expanded bool) {
	if s.expanded == expanded {
		return
	}
	s.expanded = expanded
	if s.card != "" {
		offset := s.vp.YOffset
		s.setLines(s.cardContent())
		s.vp.SetYOffset(offset)
	}
}

// Scroll moves the cursor by n lines.
func (s *Surface) Scroll(n int) {
	if len(s.lines) == 0 {
		return
	}
	c := s.cursor + n
	if c < 0 {
		c = 0
	}
	if c >= len(s.lines) {
		c = len(s.lines) - 1
	}
	s.SetCursorOffset(c)
}

// Page moves by one viewport height.
func (s *Surface) Page(forward bool) {
	h := s.vp.Height
	if h < 1 {
		h = 1
	}
	if forward {
		s.vp.SetYOffset(s.vp.YOffset + h)
	} else {
		s.vp.SetYOffset(s.vp.YOffset - h)
	}
	if len(s.lines) > 0 {
		s.cursor = s.vp.YOffset
		s.refresh()
	}
}
