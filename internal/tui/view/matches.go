package view

import (
	"fmt"
	"strings"

	"github.com/Iron-Ham/rfpdesk/internal/session"
	"github.com/Iron-Ham/rfpdesk/internal/tui/styles"
	"github.com/Iron-Ham/rfpdesk/internal/workflow"
	"github.com/charmbracelet/lipgloss"
)

// unratedLabel is shown for a match without a strength label.
const unratedLabel = "Unrated"

// RenderMatches renders the capability matches panel. Matches are shown
// in the order received. A level without a dedicated style is drawn with
// the fallback style and its requirement, capability and notes are still
// shown.
func RenderMatches(st workflow.State, width int) string {
	if !st.Panels.Matches {
		return ""
	}

	inner := contentWidth(width)
	var body string
	if len(st.Matches) == 0 {
		body = placeholder("No capability matches were found.")
	} else {
		cards := make([]string, 0, len(st.Matches)+1)
		cards = append(cards, styles.Muted.Render(matchSummary(st.Matches)))
		for _, m := range st.Matches {
			cards = append(cards, renderMatch(m, inner))
		}
		body = strings.Join(cards, "\n\n")
	}

	return renderPanel(fmt.Sprintf("Capability Matches (%d)", len(st.Matches)), body, width)
}

// MatchBadge renders the strength label of a match in its class style.
func MatchBadge(level session.MatchLevel) string {
	label := cleanText(string(level))
	if label == "" {
		label = unratedLabel
	}
	return styles.MatchStyle(level.Class()).Render("[" + label + "]")
}

func renderMatch(m session.Match, width int) string {
	badge := MatchBadge(m.Match)
	badgeWidth := lipgloss.Width(badge) + 1

	lines := []string{
		hangingIndent(badge+" ", styles.Text.Bold(true).Render(cleanText(m.Requirement)), badgeWidth, width),
		renderField("Capability", m.Capability, width),
	}
	if notes := cleanText(m.Notes); notes != "" {
		lines = append(lines, renderField("Notes", notes, width))
	}
	return strings.Join(lines, "\n")
}

func renderField(name, value string, width int) string {
	value = cleanText(value)
	if value == "" {
		value = "-"
	}
	prefix := "  " + styles.Muted.Render(name+":") + " "
	return hangingIndent(prefix, value, len(name)+4, width)
}

// matchSummary counts matches per level, known levels first.
func matchSummary(matches []session.Match) string {
	counts := map[session.MatchLevel]int{}
	var other int
	for _, m := range matches {
		if m.Match.Known() {
			counts[m.Match]++
			continue
		}
		other++
	}

	parts := []string{
		fmt.Sprintf("%d strong", counts[session.MatchStrong]),
		fmt.Sprintf("%d partial", counts[session.MatchPartial]),
		fmt.Sprintf("%d none", counts[session.MatchNone]),
	}
	if other > 0 {
		parts = append(parts, fmt.Sprintf("%d other", other))
	}
	return strings.Join(parts, " · ")
}
