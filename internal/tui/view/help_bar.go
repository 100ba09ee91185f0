package view

import (
	"strings"

	"github.com/Iron-Ham/rfpdesk/internal/tui/styles"
	"github.com/charmbracelet/bubbles/key"
)

// HelpBarState holds the state needed to render the help bar.
type HelpBarState struct {
	// Bindings are the keys that currently do something, in display order.
	// Disabled bindings are skipped.
	Bindings []key.Binding

	// InputLabel and Input are set while a path input has focus.
	InputLabel string
	Input      string
}

// RenderHelp renders the single-line help bar, or the path input while
// one is active.
func RenderHelp(state HelpBarState) string {
	if state.InputLabel != "" {
		return styles.HelpBar.Render(
			styles.InputPrompt.Render(state.InputLabel+": ") + state.Input + "  " +
				styles.HelpKey.Render("[enter]") + " confirm  " +
				styles.HelpKey.Render("[esc]") + " cancel",
		)
	}

	parts := make([]string, 0, len(state.Bindings))
	for _, b := range state.Bindings {
		if !b.Enabled() {
			continue
		}
		h := b.Help()
		if h.Key == "" {
			continue
		}
		parts = append(parts, styles.HelpKey.Render("["+h.Key+"]")+" "+h.Desc)
	}
	return styles.HelpBar.Render(strings.Join(parts, "  "))
}

// RenderFullHelp renders the help overlay, one group of bindings per column.
func RenderFullHelp(groups [][]key.Binding) string {
	var cols []string
	for _, group := range groups {
		var lines []string
		for _, b := range group {
			h := b.Help()
			if h.Key == "" {
				continue
			}
			lines = append(lines, styles.HelpKey.Render(padRight(h.Key, 8))+" "+h.Desc)
		}
		if len(lines) > 0 {
			cols = append(cols, strings.Join(lines, "\n"))
		}
	}

	body := styles.PanelTitle.Render("Keys") + "\n\n" + joinColumns(cols)
	return styles.Overlay.Render(body + "\n\n" + styles.Muted.Render("? or esc to close"))
}

func padRight(s string, n int) string {
	if len(s) >= n {
		return s
	}
	return s + strings.Repeat(" ", n-len(s))
}
