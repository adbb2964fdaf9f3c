package views

import (
	"strings"

	"lookat/pkg/types"
)

// RenderMainView lays out the header, the body (file, list or help), and
// the status or prompt line.
func RenderMainView(m types.ModelReader) string {
	var sb strings.Builder

	sb.WriteString(m.Header())
	sb.WriteString("\n")

	switch {
	case m.ShowHelp():
		sb.WriteString(m.HelpView())
	case m.Mode() == types.List:
		sb.WriteString(m.ListView())
	default:
		sb.WriteString(m.Body())
	}
	sb.WriteString("\n")

	if m.Mode() == types.Prompt {
		sb.WriteString(m.PromptView())
	} else {
		sb.WriteString(m.Status())
	}

	return sb.String()
}
