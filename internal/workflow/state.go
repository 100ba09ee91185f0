// Package workflow holds the client-side state of the RFP wizard and the
// operations that move it between steps.
//
// State is a plain value. Every operation returns a new State and leaves
// the receiver untouched, including its slices, so callers can keep an old
// State around (to compare, or to fall back to after a failed request)
// without copying it first. Nothing here performs I/O except
// DeleteSession, which calls the injected SessionDeleter.
package workflow

import (
	"github.com/Iron-Ham/rfpdesk/internal/session"
)

// Step is the wizard stage, 1 to 3.
type Step int

const (
	// StepUpload is the initial stage: nothing analyzed yet.
	StepUpload Step = 1
	// StepOrgReview is reached once RFP requirements are known.
	StepOrgReview Step = 2
	// StepGenerate is reached once the organization analysis and matches are known.
	StepGenerate Step = 3
)

// Valid reports whether s is one of the three steps.
func (s Step) Valid() bool {
	return s >= StepUpload && s <= StepGenerate
}

// String returns the label shown in the step indicator.
func (s Step) String() string {
	switch s {
	case StepUpload:
		return "Upload RFP"
	case StepOrgReview:
		return "Add Organization"
	case StepGenerate:
		return "Generate"
	default:
		return "Unknown"
	}
}

// Steps returns all steps in order.
func Steps() []Step {
	return []Step{StepUpload, StepOrgReview, StepGenerate}
}

// Panels holds the visibility of each view region. The flags are
// independent: turning one off never affects another.
type Panels struct {
	Requirements bool
	Organization bool
	Matches      bool
	Prompt       bool
	Download     bool
}

// Any reports whether at least one panel is visible.
func (p Panels) Any() bool {
	return p.Requirements || p.Organization || p.Matches || p.Prompt || p.Download
}

// FileKind identifies one of the two file inputs.
type FileKind int

const (
	FileRFP FileKind = iota
	FileOrg
)

// String returns the file kind label.
func (k FileKind) String() string {
	if k == FileOrg {
		return "organization"
	}
	return "RFP"
}

// State is the single source of truth for what the UI shows.
type State struct {
	Step Step

	// Prompt is the editable response prompt. OriginalPrompt is the last
	// prompt received from the backend, restored by ResetPrompt.
	Prompt         string
	OriginalPrompt string

	// Current is the id of the selected session, or nil. It refers into
	// Sessions and is never an owning copy.
	Current *int

	// Sessions is the display list in backend order.
	Sessions []session.Session

	Requirements     string
	OrgAnalysis      string
	Matches          []session.Match
	DownloadFilename string

	Panels Panels

	// File input state.
	RFPFile string
	OrgFile string

	// PendingAdopt is the RFP filename of an upload whose session should
	// become Current once it shows up in the list.
	PendingAdopt string
}

// New returns the blank baseline with an empty session list.
func New() State {
	return State{Step: StepUpload}
}

// CurrentID returns the selected session id.
func (s State) CurrentID() (int, bool) {
	if s.Current == nil {
		return 0, false
	}
	return *s.Current, true
}

// IsActive reports whether id is the selected session id. None is after a
// reset. When ids repeat, only the first matching row is shown active.
func (s State) IsActive(id int) bool {
	return s.Current != nil && *s.Current == id
}

// CurrentSession returns the selected session from the list.
func (s State) CurrentSession() (session.Session, bool) {
	if s.Current == nil {
		return session.Session{}, false
	}
	return session.FindByID(s.Sessions, *s.Current)
}

// TargetsNewest reports whether backend operations that act on the newest
// session (organization upload, generation) will act on what is shown.
func (s State) TargetsNewest() bool {
	if s.Current == nil || len(s.Sessions) == 0 {
		return true
	}
	return s.Sessions[0].ID == *s.Current
}

// PromptModified reports whether the prompt differs from the one received.
func (s State) PromptModified() bool {
	return s.Prompt != s.OriginalPrompt
}

func intPtr(v int) *int {
	return &v
}
