package tui

import (
	"github.com/Iron-Ham/rfpdesk/internal/logging"
	"github.com/Iron-Ham/rfpdesk/internal/notify"
	"github.com/Iron-Ham/rfpdesk/internal/session"
	"github.com/Iron-Ham/rfpdesk/internal/tui/styles"
	"github.com/Iron-Ham/rfpdesk/internal/workflow"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
)

// Layout constants
const (
	DefaultSidebarWidth = 36
	SidebarMinWidth     = 24

	// header (2) + steps (1) + status (1) + help bar (2)
	chromeHeight = 6

	promptEditorHeight = 8
)

// mode is the input mode of the main screen.
type mode int

const (
	modeNormal mode = iota
	modePathInput
	modeEditPrompt
	modeConfirmDelete
	modeHelp
)

// pane is the part of the screen that receives navigation keys.
type pane int

const (
	paneSessions pane = iota
	paneWorkspace
)

// Options configures a Model.
type Options struct {
	BackendURL       string
	DownloadDir      string
	SidebarWidth     int
	CollapseSections bool
	Notify           notify.Config
	Logger           *logging.Logger
}

// Model holds the TUI application state
type Model struct {
	backend Backend
	logger  *logging.Logger
	notify  *notify.Manager
	opts    Options
	keys    keyMap

	// state is the single source of truth for what the workspace shows.
	state workflow.State

	// UI state
	mode     mode
	pane     pane
	cursor   int
	width    int
	height   int
	ready    bool
	quitting bool

	// pathKind is the file input the path prompt fills.
	pathKind workflow.FileKind

	// pendingDelete is the session id awaiting y/n confirmation.
	pendingDelete int

	// collapsed and sectionCursor are the requirement section fold state.
	collapsed     map[int]bool
	sectionCursor int

	pathInput textinput.Model
	editor    textarea.Model
	viewport  viewport.Model
	spinner   spinner.Model
}

// NewModel creates a new TUI model
func NewModel(backend Backend, opts Options) Model {
	if opts.Logger == nil {
		opts.Logger = logging.NopLogger()
	}
	if opts.SidebarWidth == 0 {
		opts.SidebarWidth = DefaultSidebarWidth
	}

	ti := textinput.New()
	ti.Placeholder = "path to a PDF, TXT or DOCX file"
	ti.CharLimit = 4096
	ti.Width = 60

	ta := textarea.New()
	ta.Placeholder = "Describe the response you want generated..."
	ta.CharLimit = 0
	ta.ShowLineNumbers = false
	ta.SetHeight(promptEditorHeight)

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = styles.Primary

	return Model{
		backend:       backend,
		logger:        opts.Logger.WithOperation("tui"),
		notify:        notify.NewManager(opts.Notify),
		opts:          opts,
		keys:          defaultKeyMap(),
		state:         workflow.New(),
		collapsed:     map[int]bool{},
		sectionCursor: -1,
		pathInput:     ti,
		editor:        ta,
		viewport:      viewport.New(80, 20),
		spinner:       sp,
	}
}

// State returns the current workflow state.
func (m Model) State() workflow.State {
	return m.state
}

// cursorSession returns the session under the sidebar cursor.
func (m Model) cursorSession() (session.Session, bool) {
	if m.cursor < 0 || m.cursor >= len(m.state.Sessions) {
		return session.Session{}, false
	}
	return m.state.Sessions[m.cursor], true
}

// sidebarWidth returns the sidebar width for the current terminal width.
func (m Model) sidebarWidth() int {
	if m.width < 100 {
		return SidebarMinWidth
	}
	return m.opts.SidebarWidth
}

// contentWidth returns the width of the workspace pane.
func (m Model) contentWidth() int {
	return max(m.width-m.sidebarWidth()-1, 20)
}

// clampCursor keeps the sidebar cursor on an existing row.
func (m *Model) clampCursor() {
	m.cursor = min(m.cursor, len(m.state.Sessions)-1)
	m.cursor = max(m.cursor, 0)
}

// resetFolds applies the configured default fold state to freshly shown
// requirements.
func (m *Model) resetFolds() {
	m.collapsed = map[int]bool{}
	m.sectionCursor = -1
	if !m.opts.CollapseSections {
		return
	}
	for i := range sectionCount(m.state) {
		m.collapsed[i] = true
	}
}
