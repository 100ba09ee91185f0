package view

import (
	"fmt"
	"strings"

	"github.com/Iron-Ham/rfpdesk/internal/formatter"
	"github.com/Iron-Ham/rfpdesk/internal/tui/styles"
	"github.com/Iron-Ham/rfpdesk/internal/workflow"
)

const (
	sectionOpen     = "▾"
	sectionClosed   = "▸"
	untitledSection = "Overview"
)

// RequirementsState holds the render-time state of the requirements panel.
type RequirementsState struct {
	// Collapsed marks sections, by index, whose body is hidden.
	Collapsed map[int]bool

	// Cursor is the focused section index, or -1 when the panel has no focus.
	Cursor int
}

// IsCollapsed reports whether section i is collapsed.
func (r RequirementsState) IsCollapsed(i int) bool {
	return r.Collapsed[i]
}

// RequirementSections returns the number of collapsible sections text
// formats into. Unsectioned text has none.
func RequirementSections(text string) int {
	return len(formatter.Format(cleanText(text)).Sections)
}

// RenderRequirements renders the RFP requirements panel.
func RenderRequirements(st workflow.State, rs RequirementsState, width int) string {
	if !st.Panels.Requirements {
		return ""
	}

	doc := formatter.Format(cleanText(st.Requirements))
	return renderPanel("RFP Requirements", renderDocument(doc, rs, contentWidth(width)), width)
}

func renderDocument(doc formatter.Document, rs RequirementsState, width int) string {
	if doc.Empty() {
		return placeholder("No requirements were extracted.")
	}
	if doc.Unsectioned {
		return renderParagraph(doc.Raw, width)
	}

	parts := make([]string, 0, len(doc.Sections))
	for i, sec := range doc.Sections {
		parts = append(parts, renderSection(sec, rs.IsCollapsed(i), i == rs.Cursor, width))
	}
	return strings.Join(parts, "\n\n")
}

func renderSection(sec formatter.Section, collapsed, focused bool, width int) string {
	title := sec.Title
	if title == "" {
		title = untitledSection
	}

	marker := sectionOpen
	if collapsed {
		marker = sectionClosed
	}

	header := styles.SectionTitle.Render(marker + " " + title)
	if focused {
		header = styles.SidebarItemCursor.Render(marker + " " + title)
	}

	if collapsed {
		return header + " " + styles.SectionCollapsed.Render(collapsedHint(sec))
	}

	lines := []string{header}
	for _, block := range sec.Blocks {
		lines = append(lines, renderBlock(block, width-2))
	}
	return indentBody(strings.Join(lines, "\n"))
}

// collapsedHint summarizes what a collapsed section hides.
func collapsedHint(sec formatter.Section) string {
	items := 0
	for _, b := range sec.Blocks {
		if b.Kind == formatter.BlockList {
			items += len(b.Items)
		}
	}
	switch {
	case items == 1:
		return "(1 item)"
	case items > 1:
		return fmt.Sprintf("(%d items)", items)
	case len(sec.Blocks) > 0:
		return "(…)"
	default:
		return ""
	}
}

func renderBlock(block formatter.Block, width int) string {
	if block.Kind != formatter.BlockList {
		return renderParagraph(block.Text, width)
	}

	items := make([]string, 0, len(block.Items))
	for _, item := range block.Items {
		items = append(items, hangingIndent(styles.ListBullet.Render("•")+" ", item, 2, width))
	}
	return strings.Join(items, "\n")
}

func renderParagraph(text string, width int) string {
	return styles.Text.Render(wrapText(text, width))
}

// indentBody indents every line after the first by two spaces so section
// bodies sit under their title marker.
func indentBody(s string) string {
	lines := strings.Split(s, "\n")
	for i := 1; i < len(lines); i++ {
		if lines[i] != "" {
			lines[i] = "  " + lines[i]
		}
	}
	return strings.Join(lines, "\n")
}
