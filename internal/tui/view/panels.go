package view

import (
	"strings"

	"github.com/Iron-Ham/rfpdesk/internal/tui/styles"
	"github.com/Iron-Ham/rfpdesk/internal/workflow"
)

// RenderOrganization renders the organization analysis panel.
func RenderOrganization(st workflow.State, width int) string {
	if !st.Panels.Organization {
		return ""
	}

	body := placeholder("No organization analysis was returned.")
	if text := cleanText(st.OrgAnalysis); text != "" {
		body = renderParagraph(text, contentWidth(width))
	}
	return renderPanel("Organization Analysis", body, width)
}

// PromptState holds the render-time state of the prompt panel.
type PromptState struct {
	// Editing is true while the prompt editor has focus.
	Editing bool

	// Editor is the rendered editor, shown instead of the prompt text
	// while Editing.
	Editor string
}

// RenderPrompt renders the response prompt panel. The editor replaces the
// read-only text while editing.
func RenderPrompt(st workflow.State, ps PromptState, width int) string {
	if !st.Panels.Prompt {
		return ""
	}

	title := "Response Prompt"
	if st.PromptModified() {
		title += " " + styles.Warning.Render("(edited)")
	}

	var body string
	switch {
	case ps.Editing:
		body = styles.InputBox.Render(ps.Editor) + "\n" +
			styles.Muted.Render("esc to finish editing")
	case strings.TrimSpace(st.Prompt) == "":
		body = placeholder("The prompt is empty. Press e to write one.")
	default:
		body = renderParagraph(st.Prompt, contentWidth(width))
	}
	return renderPanel(title, body, width)
}

// RenderDownload renders the generated document affordance.
func RenderDownload(st workflow.State, dir string, width int) string {
	if !st.Panels.Download {
		return ""
	}

	name := cleanText(st.DownloadFilename)
	lines := []string{
		styles.DownloadButton.Render("⬇ Download"),
		styles.Text.Render(name),
	}
	if dir != "" {
		lines = append(lines, styles.Muted.Render("d saves to "+dir))
	}
	return renderPanel("Response Document", strings.Join(lines, "\n"), width)
}
