package testutils

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/require"
)

// CreateTestFilesWithContent creates test files with specific content.
// Names may contain slashes; parent directories are created.
func CreateTestFilesWithContent(t *testing.T, dir string, files map[string]string) {
	t.Helper()
	for name, content := range files {
		path := filepath.Join(dir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
}

// CreateTree writes files into a billy filesystem, typically a memfs.
func CreateTree(t *testing.T, fs billy.Filesystem, files map[string]string) {
	t.Helper()
	for name, content := range files {
		require.NoError(t, util.WriteFile(fs, name, []byte(content), 0644))
	}
}

// StripANSI removes ANSI escape sequences from a string
func StripANSI(str string) string {
	return ansi.Strip(str)
}

// Surface is an in-memory viewing surface for handler and session tests.
type Surface struct {
	Text     []string
	Cursor   int
	Viewport int
	Columns  int
	Expanded bool
}

// NewSurface returns a surface showing content split into lines.
func NewSurface(content string) *Surface {
	s := &Surface{Columns: 80}
	s.SetContent(content)
	return s
}

// SetContent replaces the text and moves to the top.
func (s *Surface) SetContent(content string) {
	s.Text = strings.Split(content, "\n")
	s.Cursor, s.Viewport = 0, 0
}

func (s *Surface) CursorOffset() int       { return s.Cursor }
func (s *Surface) SetCursorOffset(n int)   { s.Cursor = n }
func (s *Surface) ViewportOffset() int     { return s.Viewport }
func (s *Surface) SetViewportOffset(n int) { s.Viewport = n }
func (s *Surface) Width() int              { return s.Columns }
func (s *Surface) TotalLines() int         { return len(s.Text) }
func (s *Surface) Lines() []string         { return s.Text }
func (s *Surface) InfoExpanded() bool      { return s.Expanded }
func (s *Surface) SetInfoExpanded(b bool)  { s.Expanded = b }
