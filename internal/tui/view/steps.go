package view

import (
	"fmt"
	"strings"

	"github.com/Iron-Ham/rfpdesk/internal/tui/styles"
	"github.com/Iron-Ham/rfpdesk/internal/workflow"
)

// RenderSteps renders the step indicator. Steps before current are shown
// as done, current is highlighted.
func RenderSteps(current workflow.Step) string {
	steps := workflow.Steps()
	parts := make([]string, 0, len(steps))
	for _, s := range steps {
		label := fmt.Sprintf("%d %s", int(s), s)
		switch {
		case s == current:
			parts = append(parts, styles.StepActive.Render(label))
		case s < current:
			parts = append(parts, styles.StepDone.Render("✓ "+s.String()))
		default:
			parts = append(parts, styles.StepTodo.Render(label))
		}
	}
	return strings.Join(parts, styles.Muted.Render("→"))
}

// RenderHeader renders the title line with the backend address.
func RenderHeader(backend string, width int) string {
	title := styles.Title.UnsetMarginBottom().Render("rfpdesk")
	if backend != "" {
		title += "  " + styles.Subtitle.Render(backend)
	}
	return styles.Header.Width(max(width, 1)).Render(title)
}
