package tui

import (
	"bytes"
	"image"
	"image/png"
	"strings"
	"testing"

	"github.com/go-git/go-billy/v5"
	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lookat/internal/errors"
	"lookat/internal/viewstate"
	"lookat/pkg/testutils"
)

func writePNG(t *testing.T, fs billy.Filesystem, path string) {
	t.Helper()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 3, 2))))
	require.NoError(t, util.WriteFile(fs, path, buf.Bytes(), 0644))
}

func TestRender(t *testing.T) {
	fs := memfs.New()
	testutils.CreateTree(t, fs, map[string]string{
		"/d/notes.txt": "just some notes\n",
		"/d/main.go":   "package main\n\nfunc main() {}\n",
		"/d/README.md": "# Heading\n\nSome *emphasis* here.\n",
		"/d/blob.bin":  "\x00\x01\x02\x03binary",
	})
	writePNG(t, fs, "/d/pic.png")
	r := NewRenderer(fs, "monokai", "notty")

	tests := []struct {
		path     string
		kind     viewstate.Kind
		card     bool
		contains []string
	}{
		{"/d/notes.txt", viewstate.KindText, false, []string{"just some notes"}},
		{"/d/main.go", viewstate.KindCode, false, []string{"package main", "func main() {}"}},
		{"/d/README.md", viewstate.KindMarkdown, false, []string{"Heading", "emphasis"}},
		{"/d/blob.bin", viewstate.KindBinary, true, []string{"blob.bin", "binary file, 10 B (10 bytes)"}},
		{"/d/pic.png", viewstate.KindImage, true, []string{"pic.png", "PNG image, 3x2"}},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			out, err := r.Render(tt.path, 80)
			require.NoError(t, err)
			assert.Equal(t, tt.kind, out.Kind)
			assert.Equal(t, tt.card, out.Card)
			text := testutils.StripANSI(out.Content)
			for _, s := range tt.contains {
				assert.Contains(t, text, s)
			}
		})
	}

	t.Run("text keeps the bytes read", func(t *testing.T) {
		out, err := r.Render("/d/notes.txt", 80)
		require.NoError(t, err)
		assert.Equal(t, []byte("just some notes\n"), out.Data)
		assert.False(t, out.Truncated)
	})

	t.Run("image details", func(t *testing.T) {
		out, err := r.Render("/d/pic.png", 80)
		require.NoError(t, err)
		assert.True(t, strings.HasPrefix(out.Details, "Modified: "))
		assert.NotContains(t, out.Details, "Dimensions")
	})
}

func TestRenderErrors(t *testing.T) {
	fs := memfs.New()
	testutils.CreateTree(t, fs, map[string]string{"/d/a.txt": "a"})
	r := NewRenderer(fs, "monokai", "notty")

	_, err := r.Render("/d/missing.txt", 80)
	require.Error(t, err)
	assert.True(t, errors.IsFileNotFound(err))

	_, err = r.Render("/d", 80)
	require.Error(t, err)
}

func TestRenderTruncatesLargeText(t *testing.T) {
	fs := memfs.New()
	big := bytes.Repeat([]byte("0123456789abcde\n"), maxTextBytes/16+1)
	require.NoError(t, util.WriteFile(fs, "/big.txt", big, 0644))

	out, err := NewRenderer(fs, "monokai", "notty").Render("/big.txt", 80)
	require.NoError(t, err)
	assert.True(t, out.Truncated)
	assert.Len(t, out.Data, maxTextBytes)
	assert.Contains(t, out.Content, "[truncated at 4.0 MiB]")
}
