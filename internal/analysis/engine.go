// Package analysis sniffs file contents to decide how the viewer displays a
// file and collects metadata for images.
package analysis

import (
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"unicode/utf8"

	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/go-git/go-billy/v5"
	"github.com/rwcarlsen/goexif/exif"
	"github.com/rwcarlsen/goexif/mknote"

	serr "lookat/internal/errors"
	log "lookat/internal/log"
	"lookat/internal/viewstate"
	"lookat/pkg/types"
)

const sniffLen = 512

var markdownExts = map[string]bool{
	".md":       true,
	".markdown": true,
	".mdown":    true,
}

// Analyzer defines the interface for file type specific analyzers
type Analyzer interface {
	// CanHandle checks if this analyzer is suitable for the given content type
	CanHandle(contentType string) bool
	// Analyze performs the specific analysis and updates FileInfo
	Analyze(fs billy.Filesystem, info *types.FileInfo) (*types.FileInfo, error)
}

// ImageAnalyzer reads dimensions and EXIF data from images.
type ImageAnalyzer struct{}

// CanHandle checks if the content type is an image type
func (a *ImageAnalyzer) CanHandle(contentType string) bool {
	return strings.HasPrefix(contentType, "image/")
}

// Analyze extracts dimensions and EXIF metadata
func (a *ImageAnalyzer) Analyze(fs billy.Filesystem, info *types.FileInfo) (*types.FileInfo, error) {
	logger := log.LogWithFields(log.F("path", info.Path))
	if info.Metadata == nil {
		info.Metadata = make(map[string]string)
	}

	file, err := fs.Open(info.Path)
	if err != nil {
		return info, fmt.Errorf("failed to open image: %w", err)
	}
	defer file.Close()

	if cfg, format, err := image.DecodeConfig(file); err == nil {
		info.Metadata["Dimensions"] = fmt.Sprintf("%dx%d", cfg.Width, cfg.Height)
		info.Metadata["Format"] = format
	}

	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return info, nil
	}
	x, err := exif.Decode(file)
	if err != nil {
		logger.Debugf("no EXIF data: %v", err)
		return info, nil
	}

	fields := []struct {
		name  exif.FieldName
		label string
	}{
		{exif.DateTimeOriginal, "DateTimeOriginal"},
		{exif.Make, "CameraMake"},
		{exif.Model, "CameraModel"},
		{exif.LensModel, "LensModel"},
	}
	for _, f := range fields {
		tag, err := x.Get(f.name)
		if err != nil {
			continue
		}
		if s, err := tag.StringVal(); err == nil && s != "" {
			info.Metadata[f.label] = s
		}
	}
	if lat, long, err := x.LatLong(); err == nil {
		info.Metadata["Location"] = fmt.Sprintf("%.5f, %.5f", lat, long)
	}
	return info, nil
}

// Engine handles file analysis and content detection
type Engine struct {
	fs        billy.Filesystem
	analyzers []Analyzer
}

var registerMakerNotes sync.Once

// New creates an engine reading through fs with the default analyzers.
func New(fs billy.Filesystem) *Engine {
	registerMakerNotes.Do(func() { exif.RegisterParsers(mknote.All...) })
	e := &Engine{fs: fs}
	e.registerAnalyzer(&ImageAnalyzer{})
	return e
}

func (e *Engine) registerAnalyzer(a Analyzer) {
	e.analyzers = append(e.analyzers, a)
}

// Scan stats and sniffs path and decides its display kind.
func (e *Engine) Scan(path string) (*types.FileInfo, error) {
	stat, err := e.fs.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, serr.NewFileError("failed to stat file", path, serr.FileNotFound, err)
		}
		return nil, serr.NewFileError("failed to stat file", path, serr.FileAccessDenied, err)
	}
	if stat.IsDir() {
		return nil, serr.NewFileError("not a file", path, serr.InvalidPath, nil)
	}

	file, err := e.fs.Open(path)
	if err != nil {
		return nil, serr.NewFileError("failed to open file", path, serr.FileAccessDenied, err)
	}
	defer file.Close()

	buffer := make([]byte, sniffLen)
	n, err := io.ReadFull(file, buffer)
	if err != nil && err != io.EOF && err != io.ErrUnexpectedEOF {
		return nil, serr.NewFileError("failed to read file", path, serr.FileAccessDenied, err)
	}
	buffer = buffer[:n]

	contentType := http.DetectContentType(buffer)
	kind := DetectKind(path, contentType, buffer)

	return &types.FileInfo{
		Path:        path,
		ContentType: contentType,
		Kind:        string(kind),
		Size:        stat.Size(),
		ModTime:     stat.ModTime(),
		Tags:        []string{string(kind)},
	}, nil
}

// Analyze scans path and runs the first analyzer that handles its content
// type. Analyzer failures leave the scanned information in place.
func (e *Engine) Analyze(path string) (*types.FileInfo, error) {
	info, err := e.Scan(path)
	if err != nil {
		return nil, err
	}
	for _, a := range e.analyzers {
		if !a.CanHandle(info.ContentType) {
			continue
		}
		if _, err := a.Analyze(e.fs, info); err != nil {
			log.LogWithFields(log.F("path", path), log.F("analyzer", fmt.Sprintf("%T", a)), log.F("error", err.Error())).
				Warn("analyzer failed, returning partial info")
		}
		break
	}
	return info, nil
}

// DetectKind picks the display kind from the file name, the sniffed content
// type and the leading bytes.
func DetectKind(path, contentType string, head []byte) viewstate.Kind {
	ext := strings.ToLower(filepath.Ext(path))
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return viewstate.KindImage
	case !isText(contentType, head):
		return viewstate.KindBinary
	case markdownExts[ext]:
		return viewstate.KindMarkdown
	case ext != ".txt" && lexers.Match(filepath.Base(path)) != nil:
		return viewstate.KindCode
	}
	return viewstate.KindText
}

func isText(contentType string, head []byte) bool {
	if strings.HasPrefix(contentType, "text/") {
		return true
	}
	switch contentType {
	case "application/json", "application/xml", "application/javascript":
		return true
	}
	if len(head) == 0 {
		return true
	}
	for _, b := range head {
		if b == 0 {
			return false
		}
	}
	// a multi-byte rune may be cut at the end of the sniffed prefix
	for i := 0; i < utf8.UTFMax && len(head) > 0; i++ {
		if utf8.Valid(head) {
			return true
		}
		head = head[:len(head)-1]
	}
	return false
}
