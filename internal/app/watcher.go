// watcher.go polls the open workbook for changes made by other programs.
//
// Every poll interval (default 2 s) the workbook path is stat'ed and its
// modification time and size compared to the last observation. A change is
// reported in the status line only: the in-memory edits are never replaced
// behind the user's back, so reloading stays an explicit Ctrl+O.
package app

import (
	"errors"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// fileWatchTickMsg is emitted by the poll timer.
type fileWatchTickMsg struct{}

// fileWatchEntry is what the watcher observes about the workbook file.
// ModNano is compared as an integer to avoid time.Time location issues.
type fileWatchEntry struct {
	Path    string
	ModNano int64
	Size    int64
	Missing bool
}

// scheduleFileWatchTick queues the next poll. A disabled watcher schedules
// nothing.
func (m *Model) scheduleFileWatchTick() tea.Cmd {
	if m.fileWatchInterval <= 0 {
		return nil
	}
	return tea.Tick(m.fileWatchInterval, func(time.Time) tea.Msg {
		return fileWatchTickMsg{}
	})
}

func watchInterval(seconds int) time.Duration {
	switch {
	case seconds < 0:
		return 0
	case seconds == 0:
		return DefaultFileWatchInterval
	default:
		return time.Duration(seconds) * time.Second
	}
}

// handleFileWatchTick compares the workbook file against the last
// observation and always schedules the next poll.
func (m *Model) handleFileWatchTick(_ fileWatchTickMsg) (tea.Model, tea.Cmd) {
	if m.filePath == "" || m.loading {
		return m, m.scheduleFileWatchTick()
	}

	entry, err := statFileWatchEntry(m.filePath)
	if err != nil {
		appLog.Warn("stat workbook for watcher", "path", m.filePath, "error", err)
		return m, m.scheduleFileWatchTick()
	}
	if m.fileWatch.Path != entry.Path {
		m.fileWatch = entry
		return m, m.scheduleFileWatchTick()
	}
	if entry != m.fileWatch {
		m.fileWatch = entry
		m.handleExternalFileChange(entry)
	}
	return m, m.scheduleFileWatchTick()
}

// rememberFileState records the current on-disk state of path so that the
// app's own writes and loads are not reported as external changes.
func (m *Model) rememberFileState(path string) {
	entry, err := statFileWatchEntry(path)
	if err != nil {
		appLog.Debug("stat workbook for watcher", "path", path, "error", err)
		m.fileWatch = fileWatchEntry{}
		return
	}
	m.fileWatch = entry
}

func statFileWatchEntry(path string) (fileWatchEntry, error) {
	info, err := os.Stat(path)
	if errors.Is(err, os.ErrNotExist) {
		return fileWatchEntry{Path: path, Missing: true}, nil
	}
	if err != nil {
		return fileWatchEntry{}, err
	}
	return fileWatchEntry{
		Path:    path,
		ModNano: info.ModTime().UnixNano(),
		Size:    info.Size(),
	}, nil
}

func (m *Model) handleExternalFileChange(entry fileWatchEntry) {
	name := filepath.Base(entry.Path)
	if entry.Missing {
		m.status = name + " was removed from disk"
		return
	}
	appLog.Info("workbook changed on disk", "path", entry.Path, "size", entry.Size)
	m.status = name + " changed on disk, " + m.primaryActionKey(actionOpen, "Ctrl+O") + " to reload"
}
