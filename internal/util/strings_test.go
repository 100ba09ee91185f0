package util

import (
	"strings"
	"testing"

	"github.com/charmbracelet/lipgloss"
)

func TestTruncateString(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxLen   int
		expected string
	}{
		{"short string unchanged", "proposal.pdf", 20, "proposal.pdf"},
		{"exact length unchanged", "rfp.pdf", 7, "rfp.pdf"},
		{"long filename truncated", "county-it-services-rfp.pdf", 12, "county-it..."},
		{"tiny limit returns ellipsis", "rfp.pdf", 3, "..."},
		{"multibyte counted by rune", "Ausschreibung-für-Dienste", 10, "Ausschr..."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateString(tt.input, tt.maxLen)
			if got != tt.expected {
				t.Errorf("TruncateString(%q, %d) = %q, want %q", tt.input, tt.maxLen, got, tt.expected)
			}
		})
	}
}

func TestTruncateANSI(t *testing.T) {
	green := lipgloss.NewStyle().Foreground(lipgloss.Color("10"))

	tests := []struct {
		name     string
		input    string
		maxWidth int
	}{
		{"plain text", "rfp_response_ab12cd34.docx", 12},
		{"styled text", green.Render("Complete session row"), 10},
		{"wide characters", "提案依頼書の要件", 9},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := TruncateANSI(tt.input, tt.maxWidth)
			if w := lipgloss.Width(got); w > tt.maxWidth {
				t.Errorf("width %d exceeds %d: %q", w, tt.maxWidth, got)
			}
			if !strings.Contains(got, "...") {
				t.Errorf("expected ellipsis in %q", got)
			}
		})
	}

	if got := TruncateANSI("short", 20); got != "short" {
		t.Errorf("short input changed: %q", got)
	}
	styled := green.Render("ok")
	if got := TruncateANSI(styled, 20); got != styled {
		t.Errorf("styled short input changed: %q", got)
	}
	if got := TruncateANSI("anything", 2); got != "..." {
		t.Errorf("TruncateANSI with width 2 = %q, want ...", got)
	}
}

func TestSanitizeTerminal(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		expected string
	}{
		{"plain text kept", "Scope of Work:\n- Hosting", "Scope of Work:\n- Hosting"},
		{"color codes stripped", "\x1b[31mDeadline\x1b[0m: May 1", "Deadline: May 1"},
		{"cursor movement stripped", "a\x1b[2Jb", "ab"},
		{"osc title stripped", "\x1b]0;pwned\x07Requirements", "Requirements"},
		{"crlf normalized", "line one\r\nline two", "line one\nline two"},
		{"bell and backspace dropped", "ding\a\bdong", "dingdong"},
		{"tab expanded", "a\tb", "a    b"},
		{"unicode kept", "Évaluation • critères", "Évaluation • critères"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SanitizeTerminal(tt.input); got != tt.expected {
				t.Errorf("SanitizeTerminal(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestWrap(t *testing.T) {
	text := "The vendor shall provide round the clock support for all hosted systems"

	got := Wrap(text, 20)
	for _, line := range strings.Split(got, "\n") {
		if w := lipgloss.Width(line); w > 20 {
			t.Errorf("line %q is %d wide, want <= 20", line, w)
		}
	}
	if strings.Join(strings.Fields(got), " ") != text {
		t.Errorf("wrapping changed the words: %q", got)
	}

	if got := Wrap(text, 0); got != text {
		t.Errorf("Wrap with width 0 should not change input")
	}
}

func TestExpandHome(t *testing.T) {
	t.Setenv("HOME", "/home/tester")

	tests := []struct {
		input    string
		expected string
	}{
		{"~", "/home/tester"},
		{"~/Downloads", "/home/tester/Downloads"},
		{"/abs/path", "/abs/path"},
		{"relative/dir", "relative/dir"},
		{"~other/dir", "~other/dir"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := ExpandHome(tt.input); got != tt.expected {
				t.Errorf("ExpandHome(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}
