package tui

import (
	"bytes"
	"fmt"
	"io"
	"path/filepath"
	"sort"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
	"github.com/charmbracelet/glamour"
	"github.com/dustin/go-humanize"
	"github.com/go-git/go-billy/v5"

	"lookat/internal/analysis"
	"lookat/internal/errors"
	"lookat/internal/log"
	"lookat/internal/viewstate"
	"lookat/pkg/types"
)

// maxTextBytes caps how much of a text file is displayed.
const maxTextBytes = 4 << 20

// Rendered is a file prepared for the surface.
type Rendered struct {
	Kind    viewstate.Kind
	Content string
	// Details is the extra panel of a card display, empty for text.
	Details string
	Card    bool
	// Data is the displayed content as read from disk.
	Data      []byte
	Truncated bool
}

// Renderer turns files into displayable text by kind: highlighted code,
// rendered markdown, plain text, image and binary cards.
type Renderer struct {
	fs            billy.Filesystem
	engine        *analysis.Engine
	codeStyle     string
	markdownStyle string
}

// NewRenderer returns a renderer reading through fs. codeStyle is a chroma
// style name, markdownStyle a glamour standard style.
func NewRenderer(fs billy.Filesystem, codeStyle, markdownStyle string) *Renderer {
	return &Renderer{
		fs:            fs,
		engine:        analysis.New(fs),
		codeStyle:     codeStyle,
		markdownStyle: markdownStyle,
	}
}

// Render reads and formats path for a surface width columns wide.
func (r *Renderer) Render(path string, width int) (*Rendered, error) {
	info, err := r.engine.Scan(path)
	if err != nil {
		return nil, err
	}
	kind := viewstate.Kind(info.Kind)

	switch kind {
	case viewstate.KindImage:
		return r.renderImage(path)
	case viewstate.KindBinary:
		return &Rendered{Kind: kind, Content: binaryCard(info), Card: true}, nil
	}

	data, truncated, err := r.read(path)
	if err != nil {
		return nil, err
	}
	out := &Rendered{Kind: kind, Data: data, Truncated: truncated}
	text := string(data)

	switch kind {
	case viewstate.KindCode:
		out.Content = r.highlight(path, text)
	case viewstate.KindMarkdown:
		out.Content = r.markdown(path, text, width)
	default:
		out.Content = text
	}
	if truncated {
		out.Content += fmt.Sprintf("\n[truncated at %s]", humanize.IBytes(maxTextBytes))
	}
	return out, nil
}

func (r *Renderer) read(path string) ([]byte, bool, error) {
	f, err := r.fs.Open(path)
	if err != nil {
		return nil, false, errors.NewFileError("failed to open file", path, errors.FileAccessDenied, err)
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxTextBytes+1))
	if err != nil {
		return nil, false, errors.NewFileError("failed to read file", path, errors.FileAccessDenied, err)
	}
	if len(data) > maxTextBytes {
		return data[:maxTextBytes], true, nil
	}
	return data, false, nil
}

func (r *Renderer) highlight(path, text string) string {
	var buf bytes.Buffer
	if err := quick.Highlight(&buf, text, filepath.Base(path), "terminal256", r.codeStyle); err != nil {
		log.LogWithFields(log.F("path", path), log.F("error", err)).Debug("highlighting failed, showing plain text")
		return text
	}
	return buf.String()
}

func (r *Renderer) markdown(path, text string, width int) string {
	opts := []glamour.TermRendererOption{glamour.WithStandardStyle(r.markdownStyle)}
	if width > 4 {
		opts = append(opts, glamour.WithWordWrap(width-2))
	}
	tr, err := glamour.NewTermRenderer(opts...)
	if err != nil {
		log.LogWithFields(log.F("path", path), log.F("error", err)).Warn("glamour init failed")
		return text
	}
	out, err := tr.Render(text)
	if err != nil {
		log.LogWithFields(log.F("path", path), log.F("error", err)).Debug("markdown rendering failed, showing source")
		return text
	}
	return strings.Trim(out, "\n")
}

func (r *Renderer) renderImage(path string) (*Rendered, error) {
	info, err := r.engine.Analyze(path)
	if err != nil {
		return nil, err
	}

	var card strings.Builder
	fmt.Fprintf(&card, "%s\n", info.Name())
	if format, ok := info.Metadata["Format"]; ok {
		fmt.Fprintf(&card, "%s image", strings.ToUpper(format))
	} else {
		card.WriteString("image")
	}
	if dims, ok := info.Metadata["Dimensions"]; ok {
		fmt.Fprintf(&card, ", %s", dims)
	}
	fmt.Fprintf(&card, ", %s", humanize.IBytes(uint64(info.Size)))

	return &Rendered{
		Kind:    viewstate.KindImage,
		Content: card.String(),
		Details: metadataPanel(info),
		Card:    true,
	}, nil
}

// metadataPanel lists the metadata other than what the card shows.
func metadataPanel(info *types.FileInfo) string {
	keys := make([]string, 0, len(info.Metadata))
	for k := range info.Metadata {
		if k == "Format" || k == "Dimensions" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)

	lines := []string{"Modified: " + humanize.Time(info.ModTime)}
	for _, k := range keys {
		lines = append(lines, k+": "+info.Metadata[k])
	}
	return strings.Join(lines, "\n")
}

func binaryCard(info *types.FileInfo) string {
	return fmt.Sprintf("%s\nbinary file, %s (%s bytes)\n%s",
		info.Name(),
		humanize.IBytes(uint64(info.Size)),
		humanize.Comma(info.Size),
		info.ContentType)
}
