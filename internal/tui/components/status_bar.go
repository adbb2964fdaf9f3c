package components

import (
	"lookat/internal/tui/styles"

	"github.com/charmbracelet/lipgloss"
)

type StatusBar struct {
	text     string
	isError  bool
	style    lipgloss.Style
	errStyle lipgloss.Style
}

func NewStatusBar(theme styles.Theme) *StatusBar {
	return &StatusBar{
		style:    theme.Status,
		errStyle: theme.Error,
	}
}

func (s *StatusBar) SetText(text string) {
	s.text = text
	s.isError = false
}

func (s *StatusBar) SetError(err error) {
	if err == nil {
		s.Clear()
		return
	}
	s.text = err.Error()
	s.isError = true
}

func (s *StatusBar) Clear() {
	s.text = ""
	s.isError = false
}

// Text returns the unstyled status text.
func (s *StatusBar) Text() string {
	return s.text
}

func (s *StatusBar) IsError() bool {
	return s.isError
}

func (s *StatusBar) View() string {
	if s.text == "" {
		return ""
	}
	if s.isError {
		return s.errStyle.Render(s.text)
	}
	return s.style.Render(s.text)
}
