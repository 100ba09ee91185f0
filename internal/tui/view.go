package tui

import (
	"strings"

	"github.com/Iron-Ham/rfpdesk/internal/tui/view"
	"github.com/Iron-Ham/rfpdesk/internal/workflow"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/lipgloss"
)

var (
	confirmBindings = []key.Binding{
		key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "delete session")),
		key.NewBinding(key.WithKeys("n", "esc"), key.WithHelp("n", "keep")),
	}
	editorBindings = []key.Binding{
		key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "done editing")),
	}
)

// View renders the whole screen.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}

	if m.mode == modeHelp {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center,
			view.RenderFullHelp(m.keys.FullHelp()))
	}

	var b strings.Builder

	b.WriteString(view.RenderHeader(m.opts.BackendURL, m.width))
	b.WriteString("\n")
	b.WriteString(view.RenderSteps(m.state.Step))
	b.WriteString("\n")

	n, ok := m.notify.Current()
	b.WriteString(view.RenderNotification(n, ok, m.width))
	b.WriteString("\n")

	sidebarHeight := m.height - chromeHeight
	sidebar := view.RenderSessions(m.sessionListState(), m.sidebarWidth(), sidebarHeight)

	content := m.viewport.View()
	if overlay := m.loadingView(); overlay != "" {
		content = lipgloss.JoinVertical(lipgloss.Left, overlay, content)
	}

	b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, sidebar, " ", content))
	b.WriteString("\n")
	b.WriteString(m.helpView())

	return b.String()
}

func (m Model) sessionListState() view.SessionListState {
	id, hasActive := m.state.CurrentID()
	return view.SessionListState{
		Sessions:      m.state.Sessions,
		ActiveID:      id,
		HasActive:     hasActive,
		Cursor:        m.cursor,
		Focused:       m.pane == paneSessions,
		ConfirmDelete: m.mode == modeConfirmDelete,
	}
}

// loadingView renders the advisory overlay while requests are in flight.
func (m Model) loadingView() string {
	label, inFlight := m.notify.Loading()
	return view.RenderLoading(label, inFlight, m.spinner.View())
}

func (m Model) helpView() string {
	switch m.mode {
	case modePathInput:
		label := "RFP file"
		if m.pathKind == workflow.FileOrg {
			label = "Organization file"
		}
		return view.RenderHelp(view.HelpBarState{InputLabel: label, Input: m.pathInput.View()})
	case modeConfirmDelete:
		return view.RenderHelp(view.HelpBarState{Bindings: confirmBindings})
	case modeEditPrompt:
		return view.RenderHelp(view.HelpBarState{Bindings: editorBindings})
	}
	return view.RenderHelp(view.HelpBarState{Bindings: m.enabledKeys().ShortHelp()})
}
