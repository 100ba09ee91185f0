package view

import (
	"fmt"

	"github.com/Iron-Ham/rfpdesk/internal/notify"
	"github.com/Iron-Ham/rfpdesk/internal/tui/styles"
	"github.com/Iron-Ham/rfpdesk/internal/util"
)

// RenderNotification renders a banner. It returns "" when ok is false.
func RenderNotification(n notify.Notification, ok bool, width int) string {
	if !ok {
		return ""
	}

	var icon string
	switch n.Kind {
	case notify.KindSuccess:
		icon = "✓"
	case notify.KindError:
		icon = "✗"
	default:
		icon = "ℹ"
	}

	text := icon + " " + cleanText(n.Message)
	if width > 0 {
		text = util.TruncateANSI(text, width-2)
	}
	return styles.ToastStyle(string(n.Kind)).Render(text)
}

// RenderLoading renders the loading overlay. It returns "" when nothing
// is in flight. spinner is the current spinner frame.
func RenderLoading(label string, inFlight int, spinner string) string {
	if inFlight == 0 {
		return ""
	}
	if label == "" {
		label = "Working"
	}

	text := spinner + " " + label + "…"
	if inFlight > 1 {
		text += styles.Muted.Render(fmt.Sprintf("  (%d requests)", inFlight))
	}
	return styles.Overlay.Render(text)
}
