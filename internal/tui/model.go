// Package tui is the terminal viewer: a bubbletea program hosting a browse
// session on a single viewport.
package tui

import (
	"fmt"
	"os"
	"strings"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-git/go-billy/v5"

	"lookat/internal/browse"
	"lookat/internal/config"
	"lookat/internal/errors"
	"lookat/internal/log"
	"lookat/internal/tui/components"
	"lookat/internal/tui/messages"
	"lookat/internal/tui/styles"
	"lookat/internal/tui/views"
	"lookat/internal/viewstate"
	"lookat/internal/watch"
	"lookat/pkg/types"
)

const (
	defaultWidth  = 80
	defaultHeight = 24
	// header and status line
	chromeLines = 2
)

// Option configures a Model.
type Option func(*Model)

// WithWatcher refreshes the current file when w reports a change to it.
func WithWatcher(w *watch.Watcher) Option {
	return func(m *Model) { m.watcher = w }
}

// WithClipboard replaces the function that copies a path to the clipboard.
func WithClipboard(copyPath func(string) error) Option {
	return func(m *Model) { m.copyPath = copyPath }
}

// WithWorkingDir sets the directory relative paths are resolved against.
func WithWorkingDir(dir string) Option {
	return func(m *Model) { m.wd = dir }
}

// WithSize sets the initial terminal size.
func WithSize(width, height int) Option {
	return func(m *Model) { m.width, m.height = width, height }
}

type Model struct {
	cfg      *config.Config
	fs       billy.Filesystem
	session  *browse.Session
	renderer *Renderer
	surface  *Surface

	theme  styles.Theme
	keys   types.KeyMap
	help   help.Model
	input  textinput.Model
	status *components.StatusBar
	list   *components.FileList

	// Core state
	mode      types.Mode
	pending   browse.Command
	showHelp  bool
	header    string
	exhausted bool
	width     int
	height    int
	wd        string

	watcher  *watch.Watcher
	detector *watch.Detector
	copyPath func(string) error
}

// New creates a viewer reading files through fs.
func New(fs billy.Filesystem, cfg *config.Config, opts ...Option) *Model {
	if cfg == nil {
		cfg = config.New()
	}
	theme := styles.New(cfg.ThemeColors())

	m := &Model{
		cfg:      cfg,
		fs:       fs,
		renderer: NewRenderer(fs, cfg.Viewer.Style, cfg.Viewer.MarkdownStyle),
		theme:    theme,
		keys:     types.DefaultKeyMap(),
		help:     help.New(),
		input:    textinput.New(),
		status:   components.NewStatusBar(theme),
		list:     components.NewFileList(theme),
		mode:     types.Normal,
		width:    defaultWidth,
		height:   defaultHeight,
		detector: watch.NewDetector(),
		copyPath: clipboard.WriteAll,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.wd == "" {
		if wd, err := os.Getwd(); err == nil {
			m.wd = wd
		}
	}

	m.input.ShowSuggestions = true
	m.input.PromptStyle = theme.Prompt
	m.surface = NewSurface(m.width, m.bodyHeight(), theme.Cursor)
	m.list.SetHeight(m.bodyHeight())
	m.help.Width = m.width

	m.session = browse.New(fs, m,
		browse.WithWorkingDir(m.wd),
		browse.WithMaxNameWidth(cfg.Header.MaxNameWidth),
		browse.WithFilterConfig(cfg.FilterConfig()),
	)
	return m
}

// Session is the browse session the viewer hosts.
func (m *Model) Session() *browse.Session {
	return m.session
}

func (m *Model) bodyHeight() int {
	if h := m.height - chromeLines; h > 0 {
		return h
	}
	return 1
}

// Init implements tea.Model
func (m *Model) Init() tea.Cmd {
	if m.watcher == nil {
		return nil
	}
	return waitForChange(m.watcher.FileChannel())
}

// View implements tea.Model
func (m *Model) View() string {
	return views.RenderMainView(m)
}

// Update implements tea.Model
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg.Width, msg.Height)
		return m, nil
	case tea.KeyMsg:
		return m.handleKeyMsg(msg)
	case messages.FileChangedMsg:
		return m, m.handleFileChanged(msg.Mod)
	case messages.WatchStoppedMsg:
		log.Debug("watcher channel closed")
	case messages.ClipboardMsg:
		if msg.Error != nil {
			m.status.SetError(fmt.Errorf("copy failed: %w", msg.Error))
		} else {
			m.status.SetText("copied " + msg.Path)
		}
	case messages.StatusMsg:
		m.status.SetText(msg.Text)
	case messages.ErrorMsg:
		m.report(msg.Err)
	}
	return m, nil
}

func (m *Model) resize(width, height int) {
	widthChanged := width != m.surface.ViewWidth()
	m.width, m.height = width, height
	m.surface.SetSize(width, m.bodyHeight())
	m.list.SetHeight(m.bodyHeight())
	m.help.Width = width
	m.input.Width = width - len(m.input.Prompt) - 1

	// text is laid out for the width, so redisplay
	if widthChanged && m.session.State().Kind == browse.Viewing {
		m.report(m.session.Refresh())
	}
}

func (m *Model) handleKeyMsg(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case types.Prompt:
		return m.handlePromptKeys(msg)
	case types.List:
		return m.handleListKeys(msg)
	default:
		return m.handleNormalKeys(msg)
	}
}

// commandKeys maps the prompted commands to their bindings.
func (m *Model) commandKeys() []struct {
	binding key.Binding
	cmd     browse.Command
} {
	return []struct {
		binding key.Binding
		cmd     browse.Command
	}{
		{m.keys.LoadGlob, browse.CmdLoadGlob},
		{m.keys.AppendGlob, browse.CmdAppendGlob},
		{m.keys.RetainMatching, browse.CmdRetainMatching},
		{m.keys.RemoveMatching, browse.CmdRemoveMatching},
		{m.keys.JumpToIndex, browse.CmdJumpToIndex},
		{m.keys.JumpToPath, browse.CmdJumpToPath},
		{m.keys.InsertFile, browse.CmdInsertFile},
		{m.keys.MoveToIndex, browse.CmdMoveToIndex},
		{m.keys.Sort, browse.CmdSort},
		{m.keys.SearchForward, browse.CmdSearchForward},
		{m.keys.SearchBackward, browse.CmdSearchBackward},
	}
}

func (m *Model) handleNormalKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.showHelp {
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Help), key.Matches(msg, m.keys.Cancel):
			m.showHelp = false
		}
		return m, nil
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.showHelp = true
	case key.Matches(msg, m.keys.Next):
		m.report(m.session.Advance(1))
	case key.Matches(msg, m.keys.Prev):
		m.report(m.session.Retreat(1))
	case key.Matches(msg, m.keys.Refresh):
		m.report(m.session.Refresh())
	case key.Matches(msg, m.keys.Drop):
		removed, err := m.session.RemoveCurrent()
		if m.report(err) {
			m.status.SetText("dropped " + m.session.Relative(removed))
		}
	case key.Matches(msg, m.keys.Reverse):
		if m.report(m.session.Reverse()) {
			m.status.SetText("reversed")
		}
	case key.Matches(msg, m.keys.ShowList):
		m.openList()
	case key.Matches(msg, m.keys.CopyPath):
		return m, m.copyCurrent()
	case key.Matches(msg, m.keys.ToggleInfo):
		if m.session.Kind() == viewstate.KindImage {
			m.surface.SetInfoExpanded(!m.surface.InfoExpanded())
		}
	case key.Matches(msg, m.keys.Up):
		m.surface.Scroll(-1)
	case key.Matches(msg, m.keys.Down):
		m.surface.Scroll(1)
	case key.Matches(msg, m.keys.PageUp):
		m.surface.Page(false)
	case key.Matches(msg, m.keys.PageDown):
		m.surface.Page(true)
	case key.Matches(msg, m.keys.GotoTop):
		m.surface.SetCursorOffset(0)
		m.surface.SetViewportOffset(0)
	case key.Matches(msg, m.keys.GotoBottom):
		if n := m.surface.TotalLines(); n > 0 {
			m.surface.SetCursorOffset(n - 1)
		}
	default:
		for _, c := range m.commandKeys() {
			if key.Matches(msg, c.binding) {
				return m, m.startPrompt(c.cmd)
			}
		}
	}
	return m, nil
}

func (m *Model) handleListKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Accept):
		m.mode = types.Normal
		m.report(m.session.JumpToIndex(m.list.Cursor()))
	case key.Matches(msg, m.keys.Cancel), key.Matches(msg, m.keys.ShowList):
		m.mode = types.Normal
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit
	case key.Matches(msg, m.keys.Up):
		m.list.MoveUp()
	case key.Matches(msg, m.keys.Down):
		m.list.MoveDown()
	case key.Matches(msg, m.keys.GotoTop):
		m.list.GotoTop()
	case key.Matches(msg, m.keys.GotoBottom):
		m.list.GotoBottom()
	}
	return m, nil
}

func (m *Model) openList() {
	paths := m.session.Paths()
	names := make([]string, len(paths))
	for i, p := range paths {
		names[i] = m.session.Relative(p)
	}
	current := -1
	if pos, ok := m.session.Position(); ok {
		current = pos
	}
	m.list.SetFiles(names, current)
	m.mode = types.List
}

// answer is a Prompter replaying the value typed into the prompt line.
type answer struct {
	value string
	ok    bool
}

func (a answer) Prompt(browse.PromptKind, string) (string, error) {
	if !a.ok {
		return "", errors.ErrUserCancelled
	}
	return a.value, nil
}

func (m *Model) startPrompt(cmd browse.Command) tea.Cmd {
	m.mode = types.Prompt
	m.pending = cmd
	m.input.Reset()
	m.input.Prompt = cmd.Label() + ": "

	var suggestions []string
	switch cmd.PromptKind() {
	case browse.PromptComparator:
		suggestions = browse.Comparators()
	case browse.PromptPath:
		for _, p := range m.session.Paths() {
			suggestions = append(suggestions, m.session.Relative(p))
		}
	}
	m.input.SetSuggestions(suggestions)
	return m.input.Focus()
}

func (m *Model) handlePromptKeys(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Accept):
		value := m.input.Value()
		m.endPrompt()
		if m.report(m.session.Run(m.pending, answer{value: value, ok: true})) {
			m.commandDone(m.pending, value)
		}
		return m, nil
	case key.Matches(msg, m.keys.Cancel):
		m.endPrompt()
		m.report(m.session.Run(m.pending, answer{}))
		return m, nil
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *Model) endPrompt() {
	m.mode = types.Normal
	m.input.Blur()
}

func (m *Model) commandDone(cmd browse.Command, value string) {
	switch cmd {
	case browse.CmdLoadGlob, browse.CmdAppendGlob, browse.CmdRetainMatching, browse.CmdRemoveMatching:
		m.status.SetText(fmt.Sprintf("%d files", len(m.session.Paths())))
	case browse.CmdSort:
		name := strings.TrimSpace(value)
		if name == "" {
			name = browse.DefaultComparator
		}
		m.status.SetText("sorted by " + name)
	default:
		m.status.Clear()
	}
}

// report shows err on the status line and reports whether it was nil.
func (m *Model) report(err error) bool {
	switch {
	case err == nil:
		return true
	case errors.IsUserCancelled(err):
		m.status.SetText("cancelled")
	default:
		log.LogWithError(err).Debug("command failed")
		m.status.SetError(err)
	}
	return false
}

func (m *Model) copyCurrent() tea.Cmd {
	path, ok := m.session.Current()
	if !ok {
		m.status.SetError(errors.ErrNoCurrentFile)
		return nil
	}
	copyPath := m.copyPath
	return func() tea.Msg {
		return messages.ClipboardMsg{Path: path, Error: copyPath(path)}
	}
}

// Mode returns the input mode.
func (m *Model) Mode() types.Mode {
	return m.mode
}

// Header returns the styled header line.
func (m *Model) Header() string {
	if m.exhausted {
		return m.theme.Exhausted.Render(m.header)
	}
	return m.theme.Header.Render(m.header)
}

// Body returns the viewport.
func (m *Model) Body() string {
	return m.surface.View()
}

// Status returns the status line, or the short help when there is no
// status to show.
func (m *Model) Status() string {
	if s := m.status.View(); s != "" {
		return s
	}
	return m.help.ShortHelpView(m.keys.ShortHelp())
}

// StatusText returns the unstyled status message.
func (m *Model) StatusText() string {
	return m.status.Text()
}

func (m *Model) PromptView() string {
	return m.input.View()
}

func (m *Model) ListView() string {
	return m.list.View()
}

func (m *Model) HelpView() string {
	return m.help.FullHelpView(m.keys.FullHelp())
}

func (m *Model) ShowHelp() bool {
	return m.showHelp
}
