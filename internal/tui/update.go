package tui

import (
	"strings"

	"github.com/Iron-Ham/rfpdesk/internal/notify"
	"github.com/Iron-Ham/rfpdesk/internal/tui/view"
	"github.com/Iron-Ham/rfpdesk/internal/util"
	"github.com/Iron-Ham/rfpdesk/internal/workflow"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Init loads the session list.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.refreshCmd())
}

// Update handles messages and updates the model
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	next, cmd := m.update(msg)
	next.syncLayout()
	return next, cmd
}

func (m Model) update(msg tea.Msg) (Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		return m, nil

	case tea.KeyMsg:
		return m.handleKeypress(msg)

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case notify.ExpiredMsg:
		m.notify.Dismiss(msg.ID)
		m.notify.Expire()
		return m, nil

	case sessionsLoadedMsg:
		m.notify.EndLoading(msg.token)
		if msg.err != nil {
			m.logger.Warn("session list refresh failed", "error", msg.err.Error())
			return m, m.showError(msg.err, "Failed to load sessions")
		}
		m.state = m.state.ApplySessions(msg.sessions)
		m.clampCursor()
		return m, nil

	case rfpUploadedMsg:
		m.notify.EndLoading(msg.token)
		if msg.err != nil {
			m.logger.Warn("rfp upload failed", "file", msg.path, "error", msg.err.Error())
			return m, m.showError(msg.err, "Error uploading RFP")
		}
		m.state = m.state.ApplyRFPUpload(msg.result.Requirements, msg.result.Filename)
		m.resetFolds()
		m.logger.Info("rfp analyzed", "file", msg.result.Filename)
		return m, tea.Batch(m.showSuccess("RFP analyzed successfully"), m.refreshCmd())

	case orgUploadedMsg:
		m.notify.EndLoading(msg.token)
		if msg.err != nil {
			m.logger.Warn("organization upload failed", "file", msg.path, "error", msg.err.Error())
			return m, m.showError(msg.err, "Error uploading organization profile")
		}
		r := msg.result
		m.state = m.state.ApplyOrgUpload(r.OrgAnalysis, r.MatchingTable, r.ResponsePrompt)
		m.logger.Info("organization analyzed", "file", r.Filename, "matches", len(r.MatchingTable))
		return m, tea.Batch(m.showSuccess("Organization profile analyzed successfully"), m.refreshCmd())

	case generatedMsg:
		m.notify.EndLoading(msg.token)
		if msg.err != nil {
			m.logger.Warn("generation failed", "error", msg.err.Error())
			return m, m.showError(msg.err, "Error generating document")
		}
		m.state = m.state.ApplyGenerated(msg.result.Filename())
		m.logger.Info("document generated", "file", m.state.DownloadFilename)
		return m, tea.Batch(m.showSuccess("Document generated successfully"), m.refreshCmd())

	case deletedMsg:
		m.notify.EndLoading(msg.token)
		if msg.err != nil {
			m.logger.Warn("session delete failed", "session_id", msg.id, "error", msg.err.Error())
			return m, m.showError(msg.err, "Error deleting session")
		}
		wasCurrent := m.state.IsActive(msg.id)
		m.state = m.state.ApplyDeleted(msg.id)
		if wasCurrent {
			m.resetEditors()
		}
		m.clampCursor()
		m.logger.WithSession(msg.id).Info("session deleted")
		return m, tea.Batch(m.showSuccess("Session deleted"), m.refreshCmd())

	case downloadedMsg:
		m.notify.EndLoading(msg.token)
		if msg.err != nil {
			return m, m.showError(msg.err, "Error downloading document")
		}
		return m, m.showSuccess("Saved " + msg.path)

	case configChangedMsg:
		if msg.err != nil {
			m.logger.Warn("config reload failed", "error", msg.err.Error())
			return m, m.showError(msg.err, "Invalid configuration")
		}
		m.notify.UpdateConfig(msg.notify)
		m.opts.Notify = msg.notify
		return m, m.showInfo("Configuration reloaded")
	}

	return m, nil
}

// handleKeypress processes keyboard input
func (m Model) handleKeypress(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch m.mode {
	case modePathInput:
		return m.handlePathInput(msg)
	case modeEditPrompt:
		return m.handleEditorInput(msg)
	case modeConfirmDelete:
		return m.handleConfirmDelete(msg)
	case modeHelp:
		if key.Matches(msg, m.keys.Help, m.keys.Quit) || msg.Type == tea.KeyEsc {
			m.mode = modeNormal
		}
		return m, nil
	}

	k := m.enabledKeys()

	switch {
	case key.Matches(msg, k.Quit):
		m.quitting = true
		return m, tea.Quit

	case key.Matches(msg, k.Help):
		m.mode = modeHelp
		return m, nil

	case key.Matches(msg, k.Focus):
		if m.pane == paneSessions {
			m.pane = paneWorkspace
		} else {
			m.pane = paneSessions
			m.sectionCursor = -1
		}
		return m, nil

	case key.Matches(msg, k.Up):
		if m.pane == paneSessions {
			m.cursor--
			m.clampCursor()
		} else {
			m.viewport.ScrollUp(1)
		}
		return m, nil

	case key.Matches(msg, k.Down):
		if m.pane == paneSessions {
			m.cursor++
			m.clampCursor()
		} else {
			m.viewport.ScrollDown(1)
		}
		return m, nil

	case key.Matches(msg, k.PageUp):
		m.viewport.PageUp()
		return m, nil

	case key.Matches(msg, k.PageDown):
		m.viewport.PageDown()
		return m, nil

	case key.Matches(msg, k.Select):
		return m.selectCursorSession()

	case key.Matches(msg, k.Delete):
		sess, ok := m.cursorSession()
		if !ok {
			return m, nil
		}
		m.pendingDelete = sess.ID
		m.mode = modeConfirmDelete
		return m, nil

	case key.Matches(msg, k.Refresh):
		return m, m.refreshCmd()

	case key.Matches(msg, k.UploadRFP):
		return m.startPathInput(workflow.FileRFP)

	case key.Matches(msg, k.UploadOrg):
		return m.startPathInput(workflow.FileOrg)

	case key.Matches(msg, k.EditPrompt):
		m.mode = modeEditPrompt
		m.editor.SetValue(m.state.Prompt)
		m.editor.SetWidth(max(m.contentWidth()-8, 20))
		return m, m.editor.Focus()

	case key.Matches(msg, k.ResetPrompt):
		m.state = m.state.ResetPrompt()
		return m, m.showInfo("Prompt reset to original")

	case key.Matches(msg, k.Generate):
		return m.generate()

	case key.Matches(msg, k.Download):
		token := m.notify.BeginLoading("Downloading document")
		return m, downloadCmd(m.backend, token, m.state.DownloadFilename, m.opts.DownloadDir)

	case key.Matches(msg, k.NewSession):
		m.state = m.state.ResetToBlankBaseline()
		m.resetEditors()
		return m, nil

	case key.Matches(msg, k.NextSection):
		m.moveSection(1)
		return m, nil

	case key.Matches(msg, k.PrevSection):
		m.moveSection(-1)
		return m, nil

	case key.Matches(msg, k.ToggleSection):
		if m.sectionCursor >= 0 {
			m.collapsed[m.sectionCursor] = !m.collapsed[m.sectionCursor]
		}
		return m, nil

	case key.Matches(msg, k.CollapseAll):
		m.toggleAllSections()
		return m, nil
	}

	return m, nil
}

// enabledKeys returns the key map with only the bindings that act on the
// current state enabled.
func (m Model) enabledKeys() keyMap {
	k := m.keys
	st := m.state
	_, hasCursor := m.cursorSession()
	hasSections := st.Panels.Requirements && sectionCount(st) > 0

	k.Select.SetEnabled(m.pane == paneSessions && hasCursor)
	k.Delete.SetEnabled(m.pane == paneSessions && hasCursor)
	k.UploadOrg.SetEnabled(st.Step >= workflow.StepOrgReview)
	k.EditPrompt.SetEnabled(st.Panels.Prompt)
	k.ResetPrompt.SetEnabled(st.Panels.Prompt && st.PromptModified())
	k.Generate.SetEnabled(st.Step >= workflow.StepGenerate || strings.TrimSpace(st.Prompt) != "")
	k.Download.SetEnabled(st.Panels.Download && st.DownloadFilename != "")
	k.NextSection.SetEnabled(m.pane == paneWorkspace && hasSections)
	k.PrevSection.SetEnabled(m.pane == paneWorkspace && hasSections)
	k.ToggleSection.SetEnabled(m.pane == paneWorkspace && hasSections && m.sectionCursor >= 0)
	k.CollapseAll.SetEnabled(hasSections)
	return k
}

func (m Model) selectCursorSession() (Model, tea.Cmd) {
	sess, ok := m.cursorSession()
	if !ok {
		return m, nil
	}
	m.state = m.state.SelectSession(sess)
	m.resetEditors()
	m.resetFolds()
	m.viewport.GotoTop()
	m.logger.WithSession(sess.ID).Debug("session selected")
	return m, nil
}

func (m Model) startPathInput(kind workflow.FileKind) (Model, tea.Cmd) {
	m.mode = modePathInput
	m.pathKind = kind
	m.pathInput.SetValue(m.state.File(kind))
	m.pathInput.CursorEnd()
	return m, tea.Batch(m.pathInput.Focus(), textinput.Blink)
}

func (m Model) handlePathInput(msg tea.KeyMsg) (Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		m.mode = modeNormal
		m.pathInput.Blur()
		return m, nil

	case tea.KeyEnter:
		path := strings.TrimSpace(m.pathInput.Value())
		m.mode = modeNormal
		m.pathInput.Blur()
		if path == "" {
			return m, nil
		}
		path = expandPath(path)
		m.state = m.state.SetFile(m.pathKind, path)
		return m.upload(m.pathKind, path)
	}

	var cmd tea.Cmd
	m.pathInput, cmd = m.pathInput.Update(msg)
	return m, cmd
}

// upload starts the request for kind. Each request closes over its own
// path, so overlapping uploads never see each other's input.
func (m Model) upload(kind workflow.FileKind, path string) (Model, tea.Cmd) {
	if kind == workflow.FileRFP {
		token := m.notify.BeginLoading("Analyzing RFP")
		return m, uploadRFPCmd(m.backend, token, path)
	}

	var cmds []tea.Cmd
	if !m.state.TargetsNewest() {
		cmds = append(cmds, m.showInfo("The organization profile is applied to the most recent session"))
	}
	token := m.notify.BeginLoading("Analyzing organization profile")
	cmds = append(cmds, uploadOrgCmd(m.backend, token, path))
	return m, tea.Batch(cmds...)
}

func (m Model) generate() (Model, tea.Cmd) {
	var cmds []tea.Cmd
	if !m.state.TargetsNewest() {
		cmds = append(cmds, m.showInfo("The document is generated for the most recent session"))
	}
	token := m.notify.BeginLoading("Generating document")
	cmds = append(cmds, generateCmd(m.backend, token, m.state.Prompt))
	return m, tea.Batch(cmds...)
}

func (m Model) handleEditorInput(msg tea.KeyMsg) (Model, tea.Cmd) {
	if msg.Type == tea.KeyEsc {
		m.state = m.state.EditPrompt(m.editor.Value())
		m.editor.Blur()
		m.mode = modeNormal
		return m, nil
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	return m, cmd
}

func (m Model) handleConfirmDelete(msg tea.KeyMsg) (Model, tea.Cmd) {
	id := m.pendingDelete
	m.mode = modeNormal
	m.pendingDelete = 0

	switch msg.String() {
	case "y", "Y":
		token := m.notify.BeginLoading("Deleting session")
		return m, deleteCmd(m.backend, token, id)
	}
	return m, nil
}

// refreshCmd reloads the session list. The list is always re-read from the
// backend after a mutation rather than patched locally.
func (m Model) refreshCmd() tea.Cmd {
	token := m.notify.BeginLoading("Loading sessions")
	return loadSessionsCmd(m.backend, token)
}

// resetEditors syncs the prompt editor with the state after a reset or a
// session switch.
func (m *Model) resetEditors() {
	m.editor.SetValue(m.state.Prompt)
	m.editor.Blur()
	if m.mode == modeEditPrompt {
		m.mode = modeNormal
	}
}

func (m *Model) moveSection(delta int) {
	n := sectionCount(m.state)
	if n == 0 {
		m.sectionCursor = -1
		return
	}
	if m.sectionCursor < 0 {
		m.sectionCursor = 0
		return
	}
	m.sectionCursor = (m.sectionCursor + delta + n) % n
}

// toggleAllSections collapses every section, or expands them all when
// they are already collapsed.
func (m *Model) toggleAllSections() {
	n := sectionCount(m.state)
	allCollapsed := n > 0
	for i := range n {
		if !m.collapsed[i] {
			allCollapsed = false
			break
		}
	}
	for i := range n {
		m.collapsed[i] = !allCollapsed
	}
}

func (m Model) showSuccess(text string) tea.Cmd {
	return notify.ExpireCmd(m.notify.Success(text))
}

func (m Model) showInfo(text string) tea.Cmd {
	return notify.ExpireCmd(m.notify.Info(text))
}

func (m Model) showError(err error, fallback string) tea.Cmd {
	n := m.notify.Error(err, fallback)
	return tea.Batch(notify.ExpireCmd(n), notify.BellCmd(m.notify.Config(), n))
}

// syncLayout sizes the workspace viewport and refreshes its content.
func (m *Model) syncLayout() {
	if !m.ready {
		return
	}

	width := m.contentWidth()
	height := m.height - chromeHeight
	if overlay := m.loadingView(); overlay != "" {
		height -= lipgloss.Height(overlay)
	}

	m.viewport.Width = width
	m.viewport.Height = max(height, 3)
	m.viewport.SetContent(view.RenderWorkspace(m.state, m.workspaceState(), width))
}

func (m Model) workspaceState() view.WorkspaceState {
	rs := view.RequirementsState{Collapsed: m.collapsed, Cursor: -1}
	if m.pane == paneWorkspace {
		rs.Cursor = m.sectionCursor
	}
	return view.WorkspaceState{
		Requirements: rs,
		Prompt: view.PromptState{
			Editing: m.mode == modeEditPrompt,
			Editor:  m.editor.View(),
		},
		DownloadDir: m.opts.DownloadDir,
	}
}

func sectionCount(st workflow.State) int {
	return view.RequirementSections(st.Requirements)
}

// expandPath resolves a leading ~ and strips quotes a terminal adds when a
// file is dropped onto it.
func expandPath(path string) string {
	path = strings.Trim(path, `"'`)
	return util.ExpandHome(path)
}
