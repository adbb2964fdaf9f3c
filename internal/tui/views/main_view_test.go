package views

import (
	"testing"

	"lookat/pkg/types"

	"github.com/stretchr/testify/assert"
)

// Mock model for testing
type mockModel struct {
	mode     types.Mode
	showHelp bool
}

func (m *mockModel) Mode() types.Mode   { return m.mode }
func (m *mockModel) Header() string     { return "[0|2] a.txt" }
func (m *mockModel) Body() string       { return "file body" }
func (m *mockModel) Status() string     { return "status line" }
func (m *mockModel) PromptView() string { return "Glob: *.go" }
func (m *mockModel) ListView() string   { return "> * 0  a.txt" }
func (m *mockModel) HelpView() string   { return "n next file" }
func (m *mockModel) ShowHelp() bool     { return m.showHelp }

func TestRenderMainView(t *testing.T) {
	tests := []struct {
		name     string
		model    *mockModel
		contains []string // Strings that should be present in the output
		excludes []string // Strings that should not be present in the output
	}{
		{
			name:     "viewing a file",
			model:    &mockModel{mode: types.Normal},
			contains: []string{"[0|2] a.txt", "file body", "status line"},
			excludes: []string{"Glob:", "n next file"},
		},
		{
			name:     "prompting",
			model:    &mockModel{mode: types.Prompt},
			contains: []string{"file body", "Glob: *.go"},
			excludes: []string{"status line"},
		},
		{
			name:     "listing",
			model:    &mockModel{mode: types.List},
			contains: []string{"> * 0  a.txt", "status line"},
			excludes: []string{"file body"},
		},
		{
			name:     "help replaces the body",
			model:    &mockModel{mode: types.Normal, showHelp: true},
			contains: []string{"n next file"},
			excludes: []string{"file body"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			output := RenderMainView(tt.model)
			for _, s := range tt.contains {
				assert.Contains(t, output, s)
			}
			for _, s := range tt.excludes {
				assert.NotContains(t, output, s)
			}
		})
	}
}

func TestRenderMainViewLayout(t *testing.T) {
	out := RenderMainView(&mockModel{})
	assert.Equal(t, "[0|2] a.txt\nfile body\nstatus line", out)
}
