// Package view renders the regions of the rfpdesk TUI.
//
// Every renderer is a pure function of a [workflow.State] (plus a small
// render-time state struct where the region has local UI state) and a
// width. A renderer whose panel flag is off returns the empty string, so
// the regions can be composed independently and toggled without touching
// each other.
//
// # Regions
//
//   - [RenderSteps]: the three-step indicator
//   - [RenderRequirements]: RFP requirements split into collapsible sections
//   - [RenderOrganization]: the organization analysis text
//   - [RenderMatches]: requirement/capability matches with strength badges
//   - [RenderPrompt]: the editable response prompt
//   - [RenderDownload]: the generated document affordance
//   - [RenderSessions]: the session sidebar, in backend order
//   - [RenderNotification] and [RenderLoading]: banners and the overlay
//   - [RenderHelp]: the key help bar
//
// [RenderWorkspace] stacks the content panels in workflow order.
//
// # Untrusted text
//
// Requirements, analysis, prompts, match fields and filenames come from
// the backend. They are passed through [util.SanitizeTerminal] before any
// styling so they can never emit escape sequences of their own.
package view
