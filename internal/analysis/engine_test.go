package analysis

import (
	"bytes"
	"image"
	"image/png"
	"testing"

	"github.com/go-git/go-billy/v5/memfs"
	"github.com/go-git/go-billy/v5/util"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"lookat/internal/errors"
	"lookat/internal/viewstate"
	"lookat/pkg/testutils"
)

func TestScanKinds(t *testing.T) {
	fs := memfs.New()
	testutils.CreateTree(t, fs, map[string]string{
		"/docs/notes.txt":   "plain notes\nsecond line",
		"/docs/readme.md":   "# Title\n\nbody",
		"/docs/main.go":     "package main\n\nfunc main() {}\n",
		"/docs/config.json": `{"a": 1}`,
		"/docs/empty.txt":   "",
		"/docs/blob.bin":    "\x00\x01\x02\x03binary",
		"/docs/unicode.txt": "héllo wörld",
	})
	e := New(fs)

	tests := []struct {
		path string
		want viewstate.Kind
	}{
		{"/docs/notes.txt", viewstate.KindText},
		{"/docs/readme.md", viewstate.KindMarkdown},
		{"/docs/main.go", viewstate.KindCode},
		{"/docs/config.json", viewstate.KindCode},
		{"/docs/empty.txt", viewstate.KindText},
		{"/docs/blob.bin", viewstate.KindBinary},
		{"/docs/unicode.txt", viewstate.KindText},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			info, err := e.Scan(tt.path)
			require.NoError(t, err)
			assert.Equal(t, string(tt.want), info.Kind)
			assert.True(t, info.HasTag(string(tt.want)))
		})
	}
}

func TestScanErrors(t *testing.T) {
	fs := memfs.New()
	require.NoError(t, fs.MkdirAll("/dir", 0755))
	e := New(fs)

	_, err := e.Scan("/missing.txt")
	require.Error(t, err)
	assert.True(t, errors.IsFileNotFound(err))

	_, err = e.Scan("/dir")
	require.Error(t, err)
	assert.Equal(t, errors.InvalidPath, errors.KindOf(err))
}

func TestAnalyzeImage(t *testing.T) {
	fs := memfs.New()
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 3, 2))))
	require.NoError(t, util.WriteFile(fs, "/photos/pixel.png", buf.Bytes(), 0644))

	info, err := New(fs).Analyze("/photos/pixel.png")
	require.NoError(t, err)
	assert.Equal(t, string(viewstate.KindImage), info.Kind)
	assert.Equal(t, "image/png", info.ContentType)
	assert.Equal(t, "3x2", info.Metadata["Dimensions"])
	assert.Equal(t, "png", info.Metadata["Format"])
	assert.Contains(t, info.String(), "Dimensions: 3x2")
}

func TestDetectKind(t *testing.T) {
	assert.Equal(t, viewstate.KindImage, DetectKind("a.jpg", "image/jpeg", nil))
	assert.Equal(t, viewstate.KindMarkdown, DetectKind("A.MARKDOWN", "text/plain; charset=utf-8", []byte("x")))
	assert.Equal(t, viewstate.KindText, DetectKind("a.txt", "text/plain; charset=utf-8", []byte("x")))
	assert.Equal(t, viewstate.KindBinary, DetectKind("a.dat", "application/octet-stream", []byte{0xff, 0xfe, 0x00}))
	// a rune cut at the end of the sniffed prefix is still text
	assert.Equal(t, viewstate.KindText, DetectKind("a.txt", "application/octet-stream", []byte("ab\xc3")))
}
