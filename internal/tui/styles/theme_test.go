package styles

import (
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"
)

func TestNew(t *testing.T) {
	th := New(map[string]string{"primary": "213", "error": "196"})

	assert.Equal(t, lipgloss.Color("213"), th.Header.GetForeground())
	assert.Equal(t, lipgloss.Color("196"), th.Error.GetForeground())
	assert.True(t, th.Header.GetBold())
	assert.True(t, th.Cursor.GetReverse())
}

func TestNewWithoutColors(t *testing.T) {
	th := New(nil)
	assert.Equal(t, "plain", th.Status.Render("plain"))
}
