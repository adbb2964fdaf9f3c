package header

import (
	"testing"

	"github.com/alecthomas/assert/v2"
	"github.com/mattn/go-runewidth"
)

func TestRender(t *testing.T) {
	tests := []struct {
		name   string
		status Status
		opts   Options
		want   string
	}{
		{
			name:   "viewing",
			status: Status{Backward: 1, Forward: 1, Current: "b.txt", Highlighted: -1},
			want:   "[1|1] b.txt",
		},
		{
			name:   "end of list",
			status: Status{Backward: 3, Highlighted: -1},
			want:   "[3|0] -- end of list --",
		},
		{
			name:   "start of list",
			status: Status{Forward: 3, Highlighted: -1},
			want:   "[0|3] -- start of list --",
		},
		{
			name:   "empty",
			status: Status{Highlighted: -1},
			want:   "[0|0] -- empty --",
		},
		{
			name:   "subdirectories hidden",
			status: Status{Current: "2023/c.jpg", Subdirs: []string{".", "2023"}, Highlighted: 1},
			want:   "[0|0] 2023/c.jpg",
		},
		{
			name:   "subdirectories shown",
			status: Status{Current: "2023/c.jpg", Subdirs: []string{".", "2023", "zz"}, Highlighted: 1},
			opts:   Options{ShowSubdirectories: true},
			want:   "[0|0] 2023/c.jpg  . [2023] zz",
		},
		{
			name:   "long name truncated",
			status: Status{Backward: 2, Current: "very/long/directory/name.txt", Highlighted: -1},
			opts:   Options{MaxNameWidth: 10},
			want:   "[2|0] …/name.txt",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Render(tt.status, tt.opts))
		})
	}
}

func TestTruncateLeft(t *testing.T) {
	assert.Equal(t, "short.txt", TruncateLeft("short.txt", 20))
	assert.Equal(t, "short.txt", TruncateLeft("short.txt", 0))
	assert.Equal(t, "…e.txt", TruncateLeft("abcde.txt", 6))

	// wide runes never overflow the width
	got := TruncateLeft("写真/日本語のファイル.jpg", 9)
	assert.True(t, runewidth.StringWidth(got) <= 9)
	assert.Equal(t, "…イル.jpg", got)
}
