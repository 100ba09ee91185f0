package workflow

import (
	"context"
	"slices"

	"github.com/Iron-Ham/rfpdesk/internal/session"
)

// SessionDeleter removes a session on the backend.
type SessionDeleter interface {
	DeleteSession(ctx context.Context, id int) error
}

// ResetToBlankBaseline clears file inputs, both prompts, all content and
// panels, deselects the current session and returns to StepUpload. The
// session list is kept. Calling it twice gives the same State as once.
func (s State) ResetToBlankBaseline() State {
	return State{
		Step:     StepUpload,
		Sessions: s.Sessions,
	}
}

// AdvanceStep sets the step to target when it is 1, 2 or 3. Any other
// value leaves the State unchanged.
func (s State) AdvanceStep(target Step) State {
	if !target.Valid() {
		return s
	}
	s.Step = target
	return s
}

// atLeast raises the step to target without ever lowering it.
func (s State) atLeast(target Step) State {
	if s.Step >= target {
		return s
	}
	return s.AdvanceStep(target)
}

// SelectSession makes sess current and replays its stored fields onto a
// blank baseline, in order: requirements (step 2), organization analysis
// with matching table (step 3), response prompt, output file. The download
// panel depends only on the output file, not on the step.
func (s State) SelectSession(sess session.Session) State {
	next := s.ResetToBlankBaseline()
	next.Current = intPtr(sess.ID)

	if sess.HasRequirements() {
		next.Requirements = sess.RFPRequirements
		next.Panels.Requirements = true
		next = next.atLeast(StepOrgReview)
	}

	if sess.HasOrgAnalysis() {
		next.OrgAnalysis = sess.OrgAnalysis
		next.Matches = slices.Clone(sess.MatchingTable)
		next.Panels.Organization = true
		next.Panels.Matches = true
		next.Panels.Prompt = true
		next = next.atLeast(StepGenerate)
	}

	if sess.HasPrompt() {
		next.Prompt = sess.ResponsePrompt
		next.OriginalPrompt = sess.ResponsePrompt
		next.Panels.Prompt = true
	}

	if sess.HasOutput() {
		next.DownloadFilename = sess.OutputFilename
		next.Panels.Download = true
	}

	return next
}

// SelectByID selects the listed session with the given id.
func (s State) SelectByID(id int) (State, bool) {
	sess, ok := session.FindByID(s.Sessions, id)
	if !ok {
		return s, false
	}
	return s.SelectSession(sess), true
}

// DeleteSession asks the backend to delete id and, on success, applies
// ApplyDeleted. On failure the receiver is returned unchanged together
// with the error.
func (s State) DeleteSession(ctx context.Context, deleter SessionDeleter, id int) (State, error) {
	if err := deleter.DeleteSession(ctx, id); err != nil {
		return s, err
	}
	return s.ApplyDeleted(id), nil
}

// ApplyDeleted removes id from the list. Deleting the current session
// also resets to the blank baseline; deleting any other leaves step,
// prompt and panels alone.
func (s State) ApplyDeleted(id int) State {
	s.Sessions = session.Without(s.Sessions, id)
	if s.IsActive(id) {
		return s.ResetToBlankBaseline()
	}
	return s
}

// ApplySessions replaces the display list. A pending upload is adopted as
// current once its row appears. If the current row is gone the selection
// is dropped, but the panels keep showing what they show.
func (s State) ApplySessions(list []session.Session) State {
	s.Sessions = session.Clone(list)
	if s.Sessions == nil {
		s.Sessions = []session.Session{}
	}

	if s.PendingAdopt != "" {
		if sess, ok := session.FindByRFPFilename(s.Sessions, s.PendingAdopt); ok {
			s.Current = intPtr(sess.ID)
			s.PendingAdopt = ""
		}
	}

	if s.Current != nil && !session.Contains(s.Sessions, *s.Current) {
		s.Current = nil
	}
	return s
}

// ApplyRFPUpload shows freshly analyzed requirements and moves to at least
// step 2. filename is the name the backend stored the upload under; the
// matching session is adopted on the next ApplySessions.
func (s State) ApplyRFPUpload(requirements, filename string) State {
	s.Requirements = requirements
	s.Panels.Requirements = true
	s.PendingAdopt = filename
	return s.atLeast(StepOrgReview)
}

// ApplyOrgUpload shows the organization analysis, the matches and the
// prompt editor and moves to step 3. A returned prompt replaces both the
// editable prompt and the original.
func (s State) ApplyOrgUpload(analysis string, matches []session.Match, prompt string) State {
	s.OrgAnalysis = analysis
	s.Matches = slices.Clone(matches)
	if s.Matches == nil {
		s.Matches = []session.Match{}
	}
	s.Panels.Organization = true
	s.Panels.Matches = true
	s.Panels.Prompt = true
	if prompt != "" {
		s.Prompt = prompt
		s.OriginalPrompt = prompt
	}
	return s.atLeast(StepGenerate)
}

// ApplyGenerated reveals the download affordance for filename.
func (s State) ApplyGenerated(filename string) State {
	s.DownloadFilename = filename
	s.Panels.Download = filename != ""
	return s
}

// EditPrompt replaces the editable prompt.
func (s State) EditPrompt(text string) State {
	s.Prompt = text
	return s
}

// ResetPrompt restores the last prompt received from the backend.
func (s State) ResetPrompt() State {
	s.Prompt = s.OriginalPrompt
	return s
}

// SetFile records the chosen path for one of the file inputs.
func (s State) SetFile(kind FileKind, path string) State {
	switch kind {
	case FileRFP:
		s.RFPFile = path
	case FileOrg:
		s.OrgFile = path
	}
	return s
}

// File returns the chosen path for kind.
func (s State) File(kind FileKind) string {
	if kind == FileOrg {
		return s.OrgFile
	}
	return s.RFPFile
}
