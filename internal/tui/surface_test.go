package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
	"github.com/stretchr/testify/assert"

	"lookat/internal/viewstate"
)

func TestSurface(t *testing.T) {
	s := NewSurface(40, 5, lipgloss.NewStyle().Reverse(true))
	s.SetContent("\x1b[31mred\x1b[0m\ngreen\nblue\n")

	assert.Equal(t, 3, s.TotalLines())
	assert.Equal(t, []string{"red", "green", "blue"}, s.Lines())
	assert.Equal(t, 40, s.Width())
	assert.Equal(t, 0, s.CursorOffset())

	t.Run("cursor bounds", func(t *testing.T) {
		s.SetCursorOffset(-5)
		assert.Equal(t, -1, s.CursorOffset())
		s.SetCursorOffset(10)
		assert.Equal(t, 3, s.CursorOffset())
		s.SetCursorOffset(1)
		assert.Equal(t, 1, s.CursorOffset())
	})

	t.Run("lines are a copy", func(t *testing.T) {
		lines := s.Lines()
		lines[0] = "changed"
		assert.Equal(t, "red", s.Lines()[0])
	})

	t.Run("width lags behind a resize", func(t *testing.T) {
		s.SetSize(60, 5)
		assert.Equal(t, 40, s.Width())
		assert.Equal(t, 60, s.ViewWidth())
		s.SetContent("again")
		assert.Equal(t, 60, s.Width())
	})
}

func TestSurfaceScrolling(t *testing.T) {
	var lines []string
	for i := 0; i < 20; i++ {
		lines = append(lines, strings.Repeat("x", i))
	}
	s := NewSurface(40, 5, lipgloss.NewStyle())
	s.SetContent(strings.Join(lines, "\n"))

	s.SetCursorOffset(7)
	assert.Equal(t, 3, s.ViewportOffset())

	s.SetCursorOffset(1)
	assert.Equal(t, 1, s.ViewportOffset())

	s.Scroll(-10)
	assert.Equal(t, 0, s.CursorOffset())
	s.Scroll(100)
	assert.Equal(t, 19, s.CursorOffset())

	s.SetViewportOffset(0)
	s.Page(true)
	assert.Equal(t, 5, s.ViewportOffset())
	assert.Equal(t, 5, s.CursorOffset())
	s.Page(false)
	assert.Equal(t, 0, s.ViewportOffset())
}

func TestSurfaceCard(t *testing.T) {
	s := NewSurface(40, 5, lipgloss.NewStyle())
	var _ viewstate.Expander = s

	s.SetCard("pic.png\nPNG image", "Modified: now\nCameraMake: Acme")
	assert.Equal(t, 2, s.TotalLines())

	s.SetInfoExpanded(true)
	assert.True(t, s.InfoExpanded())
	assert.Equal(t, []string{"pic.png", "PNG image", "", "Modified: now", "CameraMake: Acme"}, s.Lines())

	s.SetInfoExpanded(false)
	assert.Equal(t, 2, s.TotalLines())

	s.SetContent("plain")
	s.SetInfoExpanded(true)
	assert.Equal(t, []string{"plain"}, s.Lines())
}
