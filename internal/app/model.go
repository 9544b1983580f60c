package app

import (
	"os"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/treykane/cli-sheets/internal/codec"
	"github.com/treykane/cli-sheets/internal/config"
	"github.com/treykane/cli-sheets/internal/layout"
	"github.com/treykane/cli-sheets/internal/session"
)

// mode controls the UI state and which input widget is active.
type mode int

const (
	modeBrowse mode = iota
	modeEditCell
	modeOpenFile
	modeConfirmReset
)

// Options configure a new Model.
type Options struct {
	// Path is loaded on start when set.
	Path string
	// ExportPath overrides the configured export path.
	ExportPath string
	// Sheet is the sheet activated after the first load.
	Sheet  int
	Config config.Config
	// StatePath is where recent workbooks are remembered. Empty keeps
	// them in memory only.
	StatePath string
}

// Model holds the Bubble Tea state for the entire UI.
type Model struct {
	session  *session.Session
	filePath string

	// Cursor position within the displayed table: cursorRow indexes the
	// header-then-data row list and cursorCol the display columns.
	cursorRow int
	cursorCol int
	rowOffset int
	colOffset int

	// Cell editor and open-file prompt share one input.
	input   textinput.Model
	editRow int
	editCol int

	mode       mode
	status     string
	showHelp   bool
	help       viewport.Model
	helpWidth  int
	debugInput bool

	width  int
	height int

	spinner     spinner.Model
	loading     bool
	loadingPath string

	exportPath   string
	initialPath  string
	initialSheet int

	// Mouse drag in progress, zero when none.
	mouseDrag session.DragKind

	fileWatchInterval time.Duration
	fileWatch         fileWatchEntry

	statePath   string
	recentFiles []string
	lastSheets  map[string]int

	keyForAction map[string][]string
	keyToAction  map[string]string
}

// New prepares the initial UI model.
func New(opts Options) *Model {
	input := textinput.New()
	input.Prompt = ""
	input.CharLimit = CellCharLimit

	spin := spinner.New()
	spin.Spinner = spinner.Line

	m := &Model{
		session:      session.New(layout.CellRule),
		input:        input,
		help:         viewport.New(0, 0),
		mode:         modeBrowse,
		status:       "Press Ctrl+O to open a workbook",
		spinner:      spin,
		exportPath:   resolveExportPath(opts.ExportPath, opts.Config),
		initialPath:  opts.Path,
		initialSheet: opts.Sheet,
		showHelp:     opts.Config.ShowHelpOnStart,
		debugInput:   os.Getenv("CLI_SHEETS_DEBUG_INPUT") != "",

		fileWatchInterval: watchInterval(opts.Config.FileWatchIntervalSeconds),
		statePath:         opts.StatePath,
	}
	state, err := loadAppState(opts.StatePath)
	if err != nil {
		appLog.Warn("load app state", "error", err)
	}
	m.recentFiles = state.RecentFiles
	m.lastSheets = state.LastSheets
	m.loadKeybindings(opts.Config)
	return m
}

func resolveExportPath(flag string, cfg config.Config) string {
	switch {
	case flag != "":
		return flag
	case cfg.ExportName != "":
		return cfg.ExportName
	default:
		return codec.DefaultExportName
	}
}

// Init loads the start-up workbook, if any, and starts the file watcher.
func (m *Model) Init() tea.Cmd {
	var open tea.Cmd
	if m.initialPath != "" {
		open = m.openFile(m.initialPath)
	}
	return tea.Batch(open, m.scheduleFileWatchTick())
}

// Update is the Bubble Tea update loop: handle events and emit commands.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	model, cmd := m.update(msg)
	m.scrollToCursor()
	return model, cmd
}

func (m *Model) update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case spinner.TickMsg:
		return m.handleSpinnerTick(msg)
	case tea.WindowSizeMsg:
		return m.handleWindowResize(msg)
	case decodeResultMsg:
		return m.handleDecodeResult(msg)
	case exportResultMsg:
		return m.handleExportResult(msg)
	case fileWatchTickMsg:
		return m.handleFileWatchTick(msg)
	case tea.MouseMsg:
		return m.handleMouse(msg)
	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

// handleKey routes key presses based on the current mode.
func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.mode {
	case modeEditCell:
		return m.handleEditCellKey(msg)
	case modeOpenFile:
		return m.handleOpenFileKey(msg)
	case modeConfirmReset:
		return m.handleConfirmResetKey(msg.String())
	}
	if m.showHelp {
		return m.handleHelpKey(msg)
	}
	return m.handleBrowseKey(msg.String())
}
