package view

import (
	"strings"

	"github.com/Iron-Ham/rfpdesk/internal/tui/styles"
	"github.com/Iron-Ham/rfpdesk/internal/util"
)

// MinPanelWidth is the narrowest width a panel is laid out at.
const MinPanelWidth = 24

// panelChrome is the horizontal space taken by the panel border and padding.
const panelChrome = 4

// contentWidth returns the text width available inside a panel.
func contentWidth(width int) int {
	return max(width, MinPanelWidth) - panelChrome
}

// renderPanel draws body inside a titled, bordered box width cells wide.
func renderPanel(title, body string, width int) string {
	width = max(width, MinPanelWidth)
	content := styles.PanelTitle.Render(title)
	if body != "" {
		content += "\n" + body
	}
	// Width includes padding but not the border
	return styles.Panel.Width(width - 2).Render(content)
}

// cleanText sanitizes backend text and trims surrounding blank lines.
func cleanText(s string) string {
	return strings.TrimSpace(util.SanitizeTerminal(s))
}

// wrapText sanitizes and wraps s to width.
func wrapText(s string, width int) string {
	return util.Wrap(cleanText(s), width)
}

// hangingIndent wraps s to width and indents continuation lines by the
// width of prefix, which is put in front of the first line.
func hangingIndent(prefix, s string, prefixWidth, width int) string {
	lines := strings.Split(util.Wrap(s, max(width-prefixWidth, 1)), "\n")
	pad := strings.Repeat(" ", prefixWidth)
	for i := range lines {
		if i == 0 {
			lines[i] = prefix + lines[i]
			continue
		}
		lines[i] = pad + lines[i]
	}
	return strings.Join(lines, "\n")
}

// placeholder renders muted text for an empty region.
func placeholder(text string) string {
	return styles.Muted.Italic(true).Render(text)
}
