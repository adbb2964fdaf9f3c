package types

// Mode represents the current mode of the TUI
type Mode int

const (
	// Normal is the default mode for viewing and navigating files
	Normal Mode = iota
	// Prompt is the mode for entering the value of a command
	Prompt
	// List shows the working set for picking a file
	List
)

func (m Mode) String() string {
	switch m {
	case Prompt:
		return "prompt"
	case List:
		return "list"
	}
	return "normal"
}

// ModelReader defines the interface that views use to read model state
type ModelReader interface {
	Mode() Mode
	Header() string
	Body() string
	Status() string
	PromptView() string
	ListView() string
	HelpView() string
	ShowHelp() bool
}
