// state.go persists app state across runs: the recently opened workbooks and
// the sheet last active in each.
//
// State lives at ~/.cli-sheets/state.json. Paths are stored absolute since
// workbooks can sit anywhere on disk. A Model created without a state path
// keeps state in memory only.
//
// State is saved after a workbook loads and after a sheet switch.
package app

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"
)

// MaxRecentFiles bounds the recent workbook list.
const MaxRecentFiles = 9

// persistedState is the on-disk JSON form of the app state.
type persistedState struct {
	RecentFiles []string       `json:"recent_files,omitempty"`
	LastSheets  map[string]int `json:"last_sheets,omitempty"`
}

// loadAppState reads the state file. A missing file yields empty state.
// Relative paths and negative sheet indices are discarded.
func loadAppState(path string) (persistedState, error) {
	state := persistedState{LastSheets: map[string]int{}}
	if path == "" {
		return state, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return state, nil
		}
		return state, fmt.Errorf("read app state %q: %w", path, err)
	}

	var persisted persistedState
	if err := json.Unmarshal(data, &persisted); err != nil {
		return state, fmt.Errorf("parse app state %q: %w", path, err)
	}
	for _, file := range persisted.RecentFiles {
		if filepath.IsAbs(file) && !slices.Contains(state.RecentFiles, file) {
			state.RecentFiles = append(state.RecentFiles, file)
		}
	}
	state.RecentFiles = trimRecentFiles(state.RecentFiles)
	for file, sheet := range persisted.LastSheets {
		if filepath.IsAbs(file) && sheet >= 0 {
			state.LastSheets[file] = sheet
		}
	}
	return state, nil
}

// saveAppState writes recent workbooks and their last sheets. Sheet entries
// for workbooks that dropped off the recent list are pruned.
func (m *Model) saveAppState() {
	if m.statePath == "" {
		return
	}
	state := persistedState{
		RecentFiles: m.recentFiles,
		LastSheets:  make(map[string]int, len(m.recentFiles)),
	}
	for _, file := range m.recentFiles {
		if sheet, ok := m.lastSheets[file]; ok && sheet > 0 {
			state.LastSheets[file] = sheet
		}
	}

	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		appLog.Warn("encode app state", "error", err)
		return
	}
	if err := os.MkdirAll(filepath.Dir(m.statePath), 0o700); err != nil {
		appLog.Warn("create app state dir", "path", m.statePath, "error", err)
		return
	}
	if err := os.WriteFile(m.statePath, append(data, '\n'), 0o600); err != nil {
		appLog.Warn("write app state", "path", m.statePath, "error", err)
	}
}

// recordRecentFile moves path to the front of the recent list.
func (m *Model) recordRecentFile(path string) {
	recent := make([]string, 0, len(m.recentFiles)+1)
	recent = append(recent, path)
	for _, file := range m.recentFiles {
		if file != path {
			recent = append(recent, file)
		}
	}
	m.recentFiles = trimRecentFiles(recent)
}

// rememberSheet stores the active sheet of the open workbook.
func (m *Model) rememberSheet() {
	if m.filePath == "" || !m.workbookLoaded() {
		return
	}
	if m.lastSheets == nil {
		m.lastSheets = map[string]int{}
	}
	m.lastSheets[m.filePath] = m.session.CurrentIndex()
	m.saveAppState()
}

// restoreSheet returns the sheet to activate after loading path: the
// start-up --sheet flag on first load, else the remembered sheet.
func (m *Model) restoreSheet(path string) int {
	if m.initialSheet > 0 {
		return m.initialSheet
	}
	return m.lastSheets[path]
}

func trimRecentFiles(files []string) []string {
	if len(files) > MaxRecentFiles {
		return files[:MaxRecentFiles]
	}
	return files
}
