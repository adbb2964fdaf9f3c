package types

import "github.com/charmbracelet/bubbles/key"

// KeyMap defines the keybindings of the viewer.
// It lives in pkg/types so the model and the views share one definition.
type KeyMap struct {
	// General
	Help key.Binding
	Quit key.Binding

	// Working set navigation
	Next       key.Binding
	Prev       key.Binding
	Refresh    key.Binding
	Drop       key.Binding // Remove the current file from the working set
	Reverse    key.Binding
	ShowList   key.Binding
	CopyPath   key.Binding
	ToggleInfo key.Binding

	// Scrolling within the current file
	Up         key.Binding
	Down       key.Binding
	PageUp     key.Binding
	PageDown   key.Binding
	GotoTop    key.Binding
	GotoBottom key.Binding

	// Prompted commands
	LoadGlob       key.Binding
	AppendGlob     key.Binding
	RetainMatching key.Binding
	RemoveMatching key.Binding
	JumpToIndex    key.Binding
	JumpToPath     key.Binding
	InsertFile     key.Binding
	MoveToIndex    key.Binding
	Sort           key.Binding
	SearchForward  key.Binding
	SearchBackward key.Binding

	// Prompt and list mode
	Accept key.Binding
	Cancel key.Binding
}

// DefaultKeyMap returns the default bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Help: key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit: key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),

		Next:       key.NewBinding(key.WithKeys("n", " ", "right"), key.WithHelp("n/space", "next file")),
		Prev:       key.NewBinding(key.WithKeys("p", "left"), key.WithHelp("p", "previous file")),
		Refresh:    key.NewBinding(key.WithKeys("ctrl+l"), key.WithHelp("ctrl+l", "redisplay")),
		Drop:       key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "drop file")),
		Reverse:    key.NewBinding(key.WithKeys("S"), key.WithHelp("S", "reverse")),
		ShowList:   key.NewBinding(key.WithKeys("l"), key.WithHelp("l", "list files")),
		CopyPath:   key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy path")),
		ToggleInfo: key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "image info")),

		Up:         key.NewBinding(key.WithKeys("k", "up"), key.WithHelp("↑/k", "up")),
		Down:       key.NewBinding(key.WithKeys("j", "down"), key.WithHelp("↓/j", "down")),
		PageUp:     key.NewBinding(key.WithKeys("b", "pgup"), key.WithHelp("b", "page up")),
		PageDown:   key.NewBinding(key.WithKeys("f", "pgdown"), key.WithHelp("f", "page down")),
		GotoTop:    key.NewBinding(key.WithKeys("g", "home"), key.WithHelp("g", "top")),
		GotoBottom: key.NewBinding(key.WithKeys("G", "end"), key.WithHelp("G", "bottom")),

		LoadGlob:       key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open glob")),
		AppendGlob:     key.NewBinding(key.WithKeys("O"), key.WithHelp("O", "append glob")),
		RetainMatching: key.NewBinding(key.WithKeys("&"), key.WithHelp("&", "keep matching")),
		RemoveMatching: key.NewBinding(key.WithKeys("!"), key.WithHelp("!", "drop matching")),
		JumpToIndex:    key.NewBinding(key.WithKeys("#"), key.WithHelp("#", "jump to index")),
		JumpToPath:     key.NewBinding(key.WithKeys("J"), key.WithHelp("J", "jump to file")),
		InsertFile:     key.NewBinding(key.WithKeys("I"), key.WithHelp("I", "insert file")),
		MoveToIndex:    key.NewBinding(key.WithKeys("m"), key.WithHelp("m", "move file")),
		Sort:           key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
		SearchForward:  key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "search")),
		SearchBackward: key.NewBinding(key.WithKeys("\\"), key.WithHelp("\\", "search back")),

		Accept: key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "accept")),
		Cancel: key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Next, k.Prev, k.SearchForward, k.LoadGlob, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Next, k.Prev, k.Refresh, k.Drop, k.Reverse, k.ShowList, k.CopyPath, k.ToggleInfo},
		{k.Up, k.Down, k.PageUp, k.PageDown, k.GotoTop, k.GotoBottom},
		{k.LoadGlob, k.AppendGlob, k.RetainMatching, k.RemoveMatching, k.Sort},
		{k.JumpToIndex, k.JumpToPath, k.InsertFile, k.MoveToIndex, k.SearchForward, k.SearchBackward},
		{k.Help, k.Quit},
	}
}
