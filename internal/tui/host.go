package tui

import (
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-git/go-billy/v5/util"

	"lookat/internal/browse"
	"lookat/internal/log"
	"lookat/internal/tui/messages"
	"lookat/internal/viewstate"
	"lookat/internal/watch"
)

var _ browse.Host = (*Model)(nil)

// DisplayFile renders path into the surface.
func (m *Model) DisplayFile(path string) (viewstate.Kind, error) {
	m.exhausted = false
	m.surface.expanded = false

	r, err := m.renderer.Render(path, m.surface.ViewWidth())
	if err != nil {
		m.surface.SetContent(m.theme.Error.Render(err.Error()))
		m.track(path)
		return viewstate.KindUnknown, err
	}

	if r.Card {
		m.surface.SetCard(m.theme.Card.Render(r.Content), r.Details)
	} else {
		m.surface.SetContent(r.Content)
	}
	if r.Data != nil {
		m.detector.Changed(path, r.Data)
	}
	m.track(path)
	return r.Kind, nil
}

// Surface is the single viewing surface.
func (m *Model) Surface() viewstate.Surface {
	return m.surface
}

func (m *Model) ShowHeader(text string) {
	m.header = text
}

func (m *Model) ShowExhausted(dir browse.Direction, text string) {
	m.header = text
	m.exhausted = true

	// dir points at the remaining files
	var hint string
	switch dir {
	case browse.Backward:
		hint = "No more files. Press p to go back."
	case browse.Forward:
		hint = "Start of the list. Press n to go forward."
	default:
		hint = "No files. Press o to open a glob."
	}
	m.surface.SetContent(m.theme.Exhausted.Render(hint))
	m.track("")
}

// track points the watcher at the displayed file.
func (m *Model) track(path string) {
	if m.watcher == nil {
		return
	}
	var paths []string
	if path != "" {
		paths = []string{path}
	}
	if err := m.watcher.Track(paths); err != nil {
		log.LogWithFields(log.F("path", path), log.F("error", err)).Debug("cannot watch file")
	}
}

func waitForChange(ch <-chan watch.FileModification) tea.Cmd {
	return func() tea.Msg {
		mod, ok := <-ch
		if !ok {
			return messages.WatchStoppedMsg{}
		}
		return messages.FileChangedMsg{Mod: mod}
	}
}

// handleFileChanged redisplays the current file when its content changed
// and keeps listening.
func (m *Model) handleFileChanged(mod watch.FileModification) tea.Cmd {
	var next tea.Cmd
	if m.watcher != nil {
		next = waitForChange(m.watcher.FileChannel())
	}

	cur, ok := m.session.Current()
	if !ok || filepath.Clean(cur) != filepath.Clean(mod.Path) {
		return next
	}

	if mod.Removed() {
		m.detector.Forget(cur)
		m.report(m.session.Refresh())
		return next
	}
	data, err := util.ReadFile(m.fs, cur)
	if err != nil {
		log.LogWithFields(log.F("path", cur), log.F("error", err)).Debug("cannot read changed file")
		return next
	}
	if m.detector.Changed(cur, data) {
		if m.report(m.session.Refresh()) {
			m.status.SetText("reloaded " + m.session.Relative(cur))
		}
	}
	return next
}
