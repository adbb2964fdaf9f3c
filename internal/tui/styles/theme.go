package styles

import "github.com/charmbracelet/lipgloss"

// Theme defines the core UI styles
type Theme struct {
	App        lipgloss.Style
	Header     lipgloss.Style
	Exhausted  lipgloss.Style
	Cursor     lipgloss.Style
	Status     lipgloss.Style
	Error      lipgloss.Style
	Success    lipgloss.Style
	Prompt     lipgloss.Style
	Selected   lipgloss.Style
	Unselected lipgloss.Style
	Help       lipgloss.Style
	Card       lipgloss.Style
}

// New builds the styles from a color table with the keys primary, success,
// warning, error, info, emphasis and border. Missing keys render without
// color.
func New(colors map[string]string) Theme {
	c := func(name string) lipgloss.Color { return lipgloss.Color(colors[name]) }

	return Theme{
		App: lipgloss.NewStyle(),
		Header: lipgloss.NewStyle().
			Bold(true).
			Foreground(c("primary")),
		Exhausted: lipgloss.NewStyle().
			Italic(true).
			Foreground(c("warning")),
		Cursor: lipgloss.NewStyle().
			Reverse(true),
		Status: lipgloss.NewStyle().
			Foreground(c("info")),
		Error: lipgloss.NewStyle().
			Foreground(c("error")),
		Success: lipgloss.NewStyle().
			Foreground(c("success")),
		Prompt: lipgloss.NewStyle().
			Bold(true).
			Foreground(c("emphasis")),
		Selected: lipgloss.NewStyle().
			Foreground(c("emphasis")).
			Bold(true),
		Unselected: lipgloss.NewStyle().
			Foreground(lipgloss.Color("#666666")),
		Help: lipgloss.NewStyle().
			Foreground(c("info")),
		Card: lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(c("border")).
			Padding(0, 1),
	}
}
