package session

import (
	"strings"
	"unicode"
)

// MatchLevel is the qualitative strength label of a Match. The label is
// case-sensitive and doubles as the style key used when rendering.
type MatchLevel string

// Known match levels.
const (
	MatchStrong  MatchLevel = "Strong"
	MatchPartial MatchLevel = "Partial"
	MatchNone    MatchLevel = "None"
)

// Known reports whether the level is one of Strong, Partial or None.
func (l MatchLevel) Known() bool {
	switch l {
	case MatchStrong, MatchPartial, MatchNone:
		return true
	}
	return false
}

// Class returns the lowercase style key for the level. Unknown labels get a
// derived key as well ("Very Strong" -> "very-strong") so rendering never
// depends on the label being recognised. An empty label yields "unknown".
func (l MatchLevel) Class() string {
	var b strings.Builder
	pendingDash := false
	for _, r := range strings.TrimSpace(string(l)) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(unicode.ToLower(r))
		default:
			pendingDash = true
		}
	}
	if b.Len() == 0 {
		return "unknown"
	}
	return b.String()
}

// Match is a single requirement-to-capability correspondence. Matches are
// rendered as received and never modified.
type Match struct {
	Requirement string     `json:"requirement" yaml:"requirement"`
	Capability  string     `json:"capability" yaml:"capability"`
	Match       MatchLevel `json:"match" yaml:"match"`
	Notes       string     `json:"notes,omitempty" yaml:"notes,omitempty"`
}
