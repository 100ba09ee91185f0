package view

import (
	"strings"

	"github.com/Iron-Ham/rfpdesk/internal/tui/styles"
	"github.com/Iron-Ham/rfpdesk/internal/workflow"
	"github.com/charmbracelet/lipgloss"
)

// WorkspaceState bundles the render-time state of the content panels.
type WorkspaceState struct {
	Requirements RequirementsState
	Prompt       PromptState

	// DownloadDir is where d saves the generated document.
	DownloadDir string
}

// RenderWorkspace stacks the visible content panels in workflow order.
// With no panel visible it renders the getting-started text.
func RenderWorkspace(st workflow.State, ws WorkspaceState, width int) string {
	if !st.Panels.Any() {
		return renderWelcome(st, width)
	}

	panels := []string{
		RenderRequirements(st, ws.Requirements, width),
		RenderOrganization(st, width),
		RenderMatches(st, width),
		RenderPrompt(st, ws.Prompt, width),
		RenderDownload(st, ws.DownloadDir, width),
	}

	visible := panels[:0]
	for _, p := range panels {
		if p != "" {
			visible = append(visible, p)
		}
	}
	return lipgloss.JoinVertical(lipgloss.Left, visible...)
}

func renderWelcome(st workflow.State, width int) string {
	lines := []string{
		styles.PanelTitle.Render("Start a response"),
		"",
		styles.HelpKey.Render("u") + "  upload an RFP (PDF, TXT or DOCX)",
		styles.HelpKey.Render("o") + "  add an organization profile once requirements are in",
		styles.HelpKey.Render("g") + "  generate the response document",
	}
	if len(st.Sessions) > 0 {
		lines = append(lines, "", styles.Muted.Render("Or pick a previous session from the list."))
	}
	return lipgloss.NewStyle().Width(max(width, MinPanelWidth)).Padding(1, 2).Render(strings.Join(lines, "\n"))
}

// joinColumns lays columns side by side with a gap.
func joinColumns(cols []string) string {
	if len(cols) == 0 {
		return ""
	}
	spaced := make([]string, 0, len(cols)*2)
	for i, c := range cols {
		if i > 0 {
			spaced = append(spaced, "    ")
		}
		spaced = append(spaced, c)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, spaced...)
}
