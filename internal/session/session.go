// Package session defines the records the RFP backend keeps for each
// workflow: the uploaded RFP, the organization analysis, the capability
// matches and the generated output. The backend owns these records; the
// client only ever holds read-only copies.
package session

import (
	"fmt"
)

// Status labels shown next to a session in the list.
const (
	StatusComplete   = "Complete"
	StatusInProgress = "In Progress"
)

// Session is one persisted workflow instance as returned by /get_sessions.
//
// Optional text fields are considered present when non-empty. MatchingTable
// is present when non-nil, so an empty JSON array still counts.
type Session struct {
	ID              int       `json:"id" yaml:"id"`
	RFPFilename     string    `json:"rfp_filename" yaml:"rfp_filename"`
	RFPRequirements string    `json:"rfp_requirements,omitempty" yaml:"rfp_requirements,omitempty"`
	OrgFilename     string    `json:"org_filename,omitempty" yaml:"org_filename,omitempty"`
	OrgAnalysis     string    `json:"org_analysis,omitempty" yaml:"org_analysis,omitempty"`
	MatchingTable   []Match   `json:"matching_table,omitempty" yaml:"matching_table,omitempty"`
	ResponsePrompt  string    `json:"response_prompt,omitempty" yaml:"response_prompt,omitempty"`
	OutputFilename  string    `json:"output_filename,omitempty" yaml:"output_filename,omitempty"`
	CreatedAt       Timestamp `json:"created_at,omitzero" yaml:"created_at,omitempty"`
	UpdatedAt       Timestamp `json:"updated_at,omitzero" yaml:"updated_at,omitempty"`
	CompletedAt     Timestamp `json:"completed_at,omitzero" yaml:"completed_at,omitempty"`
}

// HasRequirements reports whether the RFP analysis is present.
func (s Session) HasRequirements() bool {
	return s.RFPRequirements != ""
}

// HasOrgAnalysis reports whether both the organization analysis and the
// matching table are present. Either one alone is not enough to show the
// organization stage.
func (s Session) HasOrgAnalysis() bool {
	return s.OrgAnalysis != "" && s.MatchingTable != nil
}

// HasPrompt reports whether a response prompt was stored.
func (s Session) HasPrompt() bool {
	return s.ResponsePrompt != ""
}

// HasOutput reports whether a generated document exists.
func (s Session) HasOutput() bool {
	return s.OutputFilename != ""
}

// Status returns StatusComplete once a document was generated.
func (s Session) Status() string {
	if s.HasOutput() {
		return StatusComplete
	}
	return StatusInProgress
}

// DisplayName returns the RFP filename or a placeholder.
func (s Session) DisplayName() string {
	if s.RFPFilename == "" {
		return "Unknown RFP"
	}
	return s.RFPFilename
}

// Summary returns the one-line description used in listings:
// "<rfp> - MM/DD HH:MM (<status>)".
func (s Session) Summary() string {
	date := "Unknown date"
	if t, ok := s.CreatedAt.Time(); ok {
		date = t.Format("01/02 15:04")
	}
	return fmt.Sprintf("%s - %s (%s)", s.DisplayName(), date, s.Status())
}
