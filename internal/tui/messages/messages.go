package messages

import (
	"lookat/internal/watch"
)

type ErrorMsg struct {
	Err error
}

// StatusMsg replaces the status line.
type StatusMsg struct {
	Text string
}

// FileChangedMsg carries a watcher event for the displayed file.
type FileChangedMsg struct {
	Mod watch.FileModification
}

// WatchStoppedMsg is sent once the watcher channel is closed.
type WatchStoppedMsg struct{}

type ClipboardMsg struct {
	Path  string
	Error error
}
