package viewstate

import "regexp"

// Surface is the host's single reusable viewing surface as seen by
// handlers. Offsets are line numbers. SetCursorOffset also accepts -1 and
// TotalLines(), the positions before the first and after the last line,
// which searches use as starting points.
type Surface interface {
	CursorOffset() int
	SetCursorOffset(n int)
	ViewportOffset() int
	SetViewportOffset(n int)
	Width() int
	TotalLines() int
	// Lines returns the displayed text without styling.
	Lines() []string
}

// Expander is implemented by surfaces that can show an extra information
// panel, such as image metadata.
type Expander interface {
	InfoExpanded() bool
	SetInfoExpanded(bool)
}

// Handler captures, restores and searches the view of one kind of file.
// Searches start strictly after (before) the cursor line and move the
// cursor to the match.
type Handler interface {
	Capture(s Surface) Descriptor
	Restore(s Surface, d Descriptor)
	SearchForward(s Surface, re *regexp.Regexp) bool
	SearchBackward(s Surface, re *regexp.Regexp) bool
}

// Registry selects a Handler by Kind, falling back to the generic one.
type Registry struct {
	handlers map[Kind]Handler
	fallback Handler
}

// NewRegistry returns a registry with the built-in markdown and image
// handlers and the generic fallback.
func NewRegistry() *Registry {
	r := &Registry{
		handlers: make(map[Kind]Handler),
		fallback: GenericHandler{},
	}
	r.Register(KindMarkdown, MarkdownHandler{})
	r.Register(KindImage, ImageHandler{})
	return r
}

// Register installs h for k, replacing any previous handler.
func (r *Registry) Register(k Kind, h Handler) {
	r.handlers[k] = h
}

// Handler returns the handler for k.
func (r *Registry) Handler(k Kind) Handler {
	if h, ok := r.handlers[k]; ok {
		return h
	}
	return r.fallback
}

// GenericHandler stores cursor and viewport offsets and searches the
// surface text line by line.
type GenericHandler struct{}

func (GenericHandler) Capture(s Surface) Descriptor {
	return GenericDescriptor{CursorOffset: s.CursorOffset(), ViewportOffset: s.ViewportOffset()}
}

func (GenericHandler) Restore(s Surface, d Descriptor) {
	g, ok := d.(GenericDescriptor)
	if !ok {
		return
	}
	s.SetCursorOffset(clamp(g.CursorOffset, s.TotalLines()))
	s.SetViewportOffset(clamp(g.ViewportOffset, s.TotalLines()))
}

func (GenericHandler) SearchForward(s Surface, re *regexp.Regexp) bool {
	return searchLines(s, re, 1)
}

func (GenericHandler) SearchBackward(s Surface, re *regexp.Regexp) bool {
	return searchLines(s, re, -1)
}

func searchLines(s Surface, re *regexp.Regexp, step int) bool {
	lines := s.Lines()
	for i := s.CursorOffset() + step; i >= 0 && i < len(lines); i += step {
		if re.MatchString(lines[i]) {
			s.SetCursorOffset(i)
			return true
		}
	}
	return false
}

// MarkdownHandler rescales the viewport offset when the document was
// rendered at a different width since it was captured.
type MarkdownHandler struct{}

func (MarkdownHandler) Capture(s Surface) Descriptor {
	return MarkdownDescriptor{
		ViewportOffset: s.ViewportOffset(),
		Width:          s.Width(),
		TotalLines:     s.TotalLines(),
	}
}

func (MarkdownHandler) Restore(s Surface, d Descriptor) {
	m, ok := d.(MarkdownDescriptor)
	if !ok {
		GenericHandler{}.Restore(s, d)
		return
	}
	offset := m.ViewportOffset
	total := s.TotalLines()
	if m.Width != s.Width() && m.TotalLines > 0 {
		offset = offset * total / m.TotalLines
	}
	offset = clamp(offset, total)
	s.SetViewportOffset(offset)
	s.SetCursorOffset(offset)
}

func (MarkdownHandler) SearchForward(s Surface, re *regexp.Regexp) bool {
	return searchLines(s, re, 1)
}

func (MarkdownHandler) SearchBackward(s Surface, re *regexp.Regexp) bool {
	return searchLines(s, re, -1)
}

// ImageHandler keeps the metadata panel state. Images have no text to
// search.
type ImageHandler struct{}

func (ImageHandler) Capture(s Surface) Descriptor {
	e, ok := s.(Expander)
	return ImageDescriptor{InfoExpanded: ok && e.InfoExpanded()}
}

func (ImageHandler) Restore(s Surface, d Descriptor) {
	img, ok := d.(ImageDescriptor)
	if !ok {
		return
	}
	if e, ok := s.(Expander); ok {
		e.SetInfoExpanded(img.InfoExpanded)
	}
}

func (ImageHandler) SearchForward(Surface, *regexp.Regexp) bool  { return false }
func (ImageHandler) SearchBackward(Surface, *regexp.Regexp) bool { return false }

func clamp(n, total int) int {
	if n >= total {
		n = total - 1
	}
	if n < 0 {
		n = 0
	}
	return n
}
