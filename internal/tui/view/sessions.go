package view

import (
	"fmt"
	"strings"

	"github.com/Iron-Ham/rfpdesk/internal/session"
	"github.com/Iron-Ham/rfpdesk/internal/tui/styles"
	"github.com/Iron-Ham/rfpdesk/internal/util"
	"github.com/charmbracelet/lipgloss"
)

const (
	activeMarker = "▶"
	cursorMarker = "›"
)

// SessionListState provides the state needed to render the session sidebar.
type SessionListState struct {
	// Sessions in backend order. They are never re-sorted here.
	Sessions []session.Session

	// ActiveID is the selected session when HasActive is set.
	ActiveID  int
	HasActive bool

	// Cursor is the highlighted row while the list has focus.
	Cursor  int
	Focused bool

	// ConfirmDelete shows a confirmation prompt on the cursor row.
	ConfirmDelete bool
}

// activeRow returns the index of the row to mark active, or -1. It is the
// first row carrying the active id, matching session.FindByID.
func (s SessionListState) activeRow() int {
	if !s.HasActive {
		return -1
	}
	return session.IndexOf(s.Sessions, s.ActiveID)
}

// RenderSessions renders the session sidebar. At most one row is marked
// active; after a reset no row is.
func RenderSessions(state SessionListState, width, height int) string {
	var b strings.Builder

	b.WriteString(styles.SidebarTitle.Render(fmt.Sprintf("Sessions (%d)", len(state.Sessions))))
	b.WriteString("\n")

	// Reserve: title, margin, footer hint, two scroll indicators, border
	availableRows := max((height-7)/2, 2)
	inner := max(width-4, 10)

	if len(state.Sessions) == 0 {
		b.WriteString(styles.Muted.Render("No sessions yet"))
		b.WriteString("\n")
		b.WriteString(styles.Muted.Render("Press u to upload an RFP"))
		return styles.Sidebar.Width(max(width-2, 1)).Render(b.String())
	}

	start, end := visibleRange(len(state.Sessions), state.Cursor, availableRows)
	if start > 0 {
		b.WriteString(styles.Muted.Render(fmt.Sprintf("▲ %d more above", start)))
		b.WriteString("\n")
	}

	active := state.activeRow()
	for i := start; i < end; i++ {
		b.WriteString(renderSessionRow(state, i, i == active, inner))
		b.WriteString("\n")
	}

	if end < len(state.Sessions) {
		b.WriteString(styles.Muted.Render(fmt.Sprintf("▼ %d more below", len(state.Sessions)-end)))
		b.WriteString("\n")
	}

	if state.Focused {
		b.WriteString(styles.Muted.Render("enter load · x delete"))
	}

	return styles.Sidebar.Width(max(width-2, 1)).Render(strings.TrimRight(b.String(), "\n"))
}

func renderSessionRow(state SessionListState, i int, active bool, width int) string {
	sess := state.Sessions[i]
	status := sess.Status()

	icon := lipgloss.NewStyle().Foreground(styles.StatusColor(status)).Render(styles.StatusIcon(status))
	name := util.TruncateANSI(cleanText(sess.DisplayName()), width-5)
	detail := sessionDetail(sess)

	cursor := state.Focused && i == state.Cursor
	marker := " "
	nameStyle := styles.SidebarItem
	switch {
	case active:
		marker = activeMarker
		nameStyle = styles.SidebarItemActive
	case cursor:
		marker = cursorMarker
		nameStyle = styles.SidebarItemCursor
	}

	row := marker + icon + nameStyle.Render(name) + "\n   " + styles.Muted.Render(util.TruncateANSI(detail, width-3))
	if cursor && state.ConfirmDelete {
		row += "\n   " + styles.WarningMsg.Render("Delete this session? y/n")
	}
	return row
}

// sessionDetail is the second row line: creation date and status.
func sessionDetail(sess session.Session) string {
	date := "Unknown date"
	if t, ok := sess.CreatedAt.Time(); ok {
		date = t.Format("01/02 15:04")
	}
	return date + " · " + sess.Status()
}

// visibleRange returns the window of rows to show so that cursor stays
// visible.
func visibleRange(total, cursor, rows int) (int, int) {
	if total <= rows {
		return 0, total
	}
	cursor = min(max(cursor, 0), total-1)
	start := max(cursor-rows/2, 0)
	end := start + rows
	if end > total {
		end = total
		start = end - rows
	}
	return start, end
}
