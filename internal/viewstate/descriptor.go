package viewstate

import "fmt"

// Kind tags how the host displayed a file. It selects the Handler that
// captures and restores view state.
type Kind string

const (
	KindUnknown  Kind = ""
	KindText     Kind = "text"
	KindCode     Kind = "code"
	KindMarkdown Kind = "markdown"
	KindImage    Kind = "image"
	KindBinary   Kind = "binary"
)

func (k Kind) String() string {
	if k == KindUnknown {
		return "unknown"
	}
	return string(k)
}

// Descriptor is resume state for one file. It is plain data; the handler
// for the file's kind interprets it. The set of implementations is closed.
type Descriptor interface {
	fmt.Stringer
	descriptor()
}

// GenericDescriptor is the fallback for kinds without their own handler.
type GenericDescriptor struct {
	CursorOffset   int
	ViewportOffset int
}

func (GenericDescriptor) descriptor() {}

func (d GenericDescriptor) String() string {
	return fmt.Sprintf("generic(cursor=%d, viewport=%d)", d.CursorOffset, d.ViewportOffset)
}

// MarkdownDescriptor records the rendered layout so the offset can be
// rescaled when the file is rendered at another width.
type MarkdownDescriptor struct {
	ViewportOffset int
	Width          int
	TotalLines     int
}

func (MarkdownDescriptor) descriptor() {}

func (d MarkdownDescriptor) String() string {
	return fmt.Sprintf("markdown(viewport=%d, width=%d, lines=%d)", d.ViewportOffset, d.Width, d.TotalLines)
}

// ImageDescriptor records whether the metadata panel was open.
type ImageDescriptor struct {
	InfoExpanded bool
}

func (ImageDescriptor) descriptor() {}

func (d ImageDescriptor) String() string {
	return fmt.Sprintf("image(info=%t)", d.InfoExpanded)
}
