package app

import (
	"encoding/json"
	"os"
	"slices"
	"strings"

	"github.com/treykane/cli-sheets/internal/config"
)

// ---------------------------------------------------------------------------
// Action constants
// ---------------------------------------------------------------------------
//
// Each constant identifies a browse-mode action. A key press is looked up in
// keyToAction and the resulting action is dispatched in handleBrowseKey.
//
// Defaults live in defaultActionKeys. Users override them with the
// "keybindings" map in config.json or the keymap file (default
// ~/.cli-sheets/keymap.json).
// ---------------------------------------------------------------------------

const (
	// actionCursorUp moves the cell cursor up one row.
	actionCursorUp = "cursor.up"

	// actionCursorDown moves the cell cursor down one row.
	actionCursorDown = "cursor.down"

	// actionCursorLeft moves the cell cursor one column left.
	actionCursorLeft = "cursor.left"

	// actionCursorRight moves the cell cursor one column right.
	actionCursorRight = "cursor.right"

	// actionJumpTop moves the cursor to the header row.
	actionJumpTop = "cursor.top"

	// actionJumpBottom moves the cursor to the last data row.
	actionJumpBottom = "cursor.bottom"

	// actionRowStart moves the cursor to the first displayed column.
	actionRowStart = "cursor.row_start"

	// actionRowEnd moves the cursor to the last displayed column.
	actionRowEnd = "cursor.row_end"

	// actionPageUp moves the cursor up by one screen of rows.
	actionPageUp = "cursor.page_up"

	// actionPageDown moves the cursor down by one screen of rows.
	actionPageDown = "cursor.page_down"

	// actionNextSheet activates the next sheet tab, wrapping around.
	actionNextSheet = "sheet.next"

	// actionPrevSheet activates the previous sheet tab, wrapping around.
	actionPrevSheet = "sheet.prev"

	// actionEditCell opens the cell editor on the cursor cell. On the header
	// row it edits the column header.
	actionEditCell = "cell.edit"

	// actionClearCell empties the cursor cell.
	actionClearCell = "cell.clear"

	// actionAddRow appends a blank row to the active sheet.
	actionAddRow = "row.add"

	// actionAddColumn appends a blank column to the active sheet.
	actionAddColumn = "column.add"

	// actionMoveRow picks up the cursor row, or drops a picked-up row at the
	// cursor row.
	actionMoveRow = "row.move"

	// actionMoveColumn picks up the cursor column, or drops a picked-up
	// column at the cursor column.
	actionMoveColumn = "column.move"

	// actionCancel abandons a pending move.
	actionCancel = "move.cancel"

	// actionShrinkColumn narrows the cursor column.
	actionShrinkColumn = "column.shrink"

	// actionGrowColumn widens the cursor column.
	actionGrowColumn = "column.grow"

	// actionToggleRow selects or deselects the cursor row. On the header row
	// it toggles every data row.
	actionToggleRow = "row.select"

	// actionToggleAllRows selects every data row holding data, or clears
	// them all when they are already selected.
	actionToggleAllRows = "row.select_all"

	// actionCopyCell copies the cursor cell to the system clipboard.
	actionCopyCell = "cell.copy"

	// actionCopyRow copies the cursor row as tab-separated text.
	actionCopyRow = "row.copy"

	// actionPaste writes clipboard text at the cursor. Tab and newline
	// separated text fills a block of cells.
	actionPaste = "cell.paste"

	// actionOpen prompts for a workbook path to load.
	actionOpen = "file.open"

	// actionExport writes every sheet to the export path.
	actionExport = "file.export"

	// actionReset discards the workbook after confirmation.
	actionReset = "file.reset"

	// actionHelp toggles the keyboard reference.
	actionHelp = "help.toggle"

	// actionQuit exits the application.
	actionQuit = "app.quit"
)

// defaultActionKeys maps each action to its factory-default key bindings.
//
// Key strings use the Bubble Tea notation ("ctrl+", "alt+", "shift+"
// modifiers, named keys such as "enter" or "pgdown", single characters).
// The space bar is spelled "space".
var defaultActionKeys = map[string][]string{
	actionCursorUp:      {"up", "k"},
	actionCursorDown:    {"down", "j"},
	actionCursorLeft:    {"left", "h"},
	actionCursorRight:   {"right", "l"},
	actionJumpTop:       {"g"},
	actionJumpBottom:    {"shift+g"},
	actionRowStart:      {"home", "0"},
	actionRowEnd:        {"end", "$"},
	actionPageUp:        {"pgup"},
	actionPageDown:      {"pgdown"},
	actionNextSheet:     {"tab", "]"},
	actionPrevSheet:     {"shift+tab", "["},
	actionEditCell:      {"enter", "e"},
	actionClearCell:     {"delete", "backspace"},
	actionAddRow:        {"r"},
	actionAddColumn:     {"c"},
	actionMoveRow:       {"x"},
	actionMoveColumn:    {"shift+x"},
	actionCancel:        {"esc"},
	actionShrinkColumn:  {"<"},
	actionGrowColumn:    {">"},
	actionToggleRow:     {"space"},
	actionToggleAllRows: {"a"},
	actionCopyCell:      {"y"},
	actionCopyRow:       {"shift+y"},
	actionPaste:         {"p"},
	actionOpen:          {"ctrl+o"},
	actionExport:        {"ctrl+s"},
	actionReset:         {"ctrl+n"},
	actionHelp:          {"?"},
	actionQuit:          {"q", "ctrl+c"},
}

// ---------------------------------------------------------------------------
// Keybinding initialization
// ---------------------------------------------------------------------------

// loadKeybindings builds the key and action maps from, in increasing
// priority, defaultActionKeys, cfg.Keybindings and the keymap file at
// cfg.KeymapFile.
//
// An override replaces the action's whole default key set. Unknown actions
// are logged and skipped.
func (m *Model) loadKeybindings(cfg config.Config) {
	m.keyForAction = map[string][]string{}
	for action, keys := range defaultActionKeys {
		m.keyForAction[action] = append([]string(nil), keys...)
	}

	for action, key := range cfg.Keybindings {
		m.applyKeybindingOverride(action, key)
	}

	fileOverrides := loadKeymapFile(cfg.KeymapFile)
	for action, key := range fileOverrides {
		m.applyKeybindingOverride(action, key)
	}

	m.rebuildActionKeyIndex()
}

// loadKeymapFile reads a flat JSON object of action to key, for example:
//
//	{
//	    "file.export": "ctrl+e",
//	    "row.add": "R"
//	}
//
// A missing file yields nil. Read and parse errors are logged.
func loadKeymapFile(path string) map[string]string {
	if strings.TrimSpace(path) == "" {
		return nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			appLog.Warn("read keymap file", "path", path, "error", err)
		}
		return nil
	}
	overrides := map[string]string{}
	if err := json.Unmarshal(data, &overrides); err != nil {
		appLog.Warn("parse keymap file", "path", path, "error", err)
		return nil
	}
	return overrides
}

// applyKeybindingOverride rebinds action to the single key.
func (m *Model) applyKeybindingOverride(action, key string) {
	action = strings.TrimSpace(action)
	key = normalizeKeyString(key)
	if action == "" || key == "" {
		return
	}
	if _, ok := defaultActionKeys[action]; !ok {
		appLog.Warn("ignore unknown keybinding action", "action", action)
		return
	}
	m.keyForAction[action] = []string{key}
}

// rebuildActionKeyIndex rebuilds keyToAction from keyForAction. When two
// actions claim one key the first one seen keeps it and the conflict is
// logged.
func (m *Model) rebuildActionKeyIndex() {
	m.keyToAction = map[string]string{}
	for action, keys := range m.keyForAction {
		for _, key := range keys {
			if key == "" {
				continue
			}
			if existing, ok := m.keyToAction[key]; ok && existing != action {
				appLog.Warn("keybinding conflict ignored", "key", key, "action", action, "existing_action", existing)
				continue
			}
			m.keyToAction[key] = action
		}
	}
}

// ---------------------------------------------------------------------------
// Key string normalization
// ---------------------------------------------------------------------------

// normalizeKeyString converts a key string to the lowercase form used by the
// keybinding maps.
//
//	normalizeKeyString("Ctrl+O")  → "ctrl+o"
//	normalizeKeyString(" Y ")     → "shift+y"
//	normalizeKeyString(" ")       → "space"
//	normalizeKeyString("")        → ""
func normalizeKeyString(key string) string {
	if key == " " {
		return "space"
	}
	key = strings.TrimSpace(key)
	if key == "" {
		return ""
	}
	// Bubble Tea may report uppercase single rune keys for shifted letters.
	// Normalize "Y" → "shift+y" so config files can use either form.
	if len([]rune(key)) == 1 && strings.ToUpper(key) == key && strings.ToLower(key) != key {
		return "shift+" + strings.ToLower(key)
	}
	return strings.ToLower(key)
}

// actionForKey returns the action bound to key, or "".
func (m *Model) actionForKey(key string) string {
	if m.keyToAction == nil {
		return ""
	}
	return m.keyToAction[normalizeKeyString(key)]
}

func (m *Model) actionKeyLabels(action string) []string {
	keys, ok := m.keyForAction[action]
	if !ok || len(keys) == 0 {
		return nil
	}
	labels := make([]string, 0, len(keys))
	for _, key := range keys {
		label := humanizeKeyLabel(key)
		if label == "" {
			continue
		}
		if slices.Contains(labels, label) {
			continue
		}
		labels = append(labels, label)
	}
	return labels
}

func (m *Model) primaryActionKey(action, fallback string) string {
	keys := m.actionKeyLabels(action)
	if len(keys) == 0 {
		return fallback
	}
	return keys[0]
}

func (m *Model) allActionKeys(action, fallback string) string {
	keys := m.actionKeyLabels(action)
	if len(keys) == 0 {
		return fallback
	}
	return strings.Join(keys, ", ")
}

func humanizeKeyLabel(key string) string {
	normalized := normalizeKeyString(key)
	if normalized == "" {
		return ""
	}
	special := map[string]string{
		"up":        "↑",
		"down":      "↓",
		"left":      "←",
		"right":     "→",
		"enter":     "Enter",
		"esc":       "Esc",
		"tab":       "Tab",
		"home":      "Home",
		"end":       "End",
		"pgup":      "PgUp",
		"pgdown":    "PgDn",
		"space":     "Space",
		"backspace": "Backspace",
	}
	parts := strings.Split(normalized, "+")
	for i, part := range parts {
		switch part {
		case "ctrl":
			parts[i] = "Ctrl"
		case "alt":
			parts[i] = "Alt"
		case "shift":
			parts[i] = "Shift"
		default:
			if label, ok := special[part]; ok {
				parts[i] = label
				continue
			}
			runes := []rune(part)
			if len(runes) == 1 && runes[0] >= 'a' && runes[0] <= 'z' {
				parts[i] = strings.ToUpper(part)
			} else {
				parts[i] = strings.ToUpper(part[:1]) + part[1:]
			}
		}
	}
	return strings.Join(parts, "+")
}
