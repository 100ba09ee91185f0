package workflow

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"github.com/Iron-Ham/rfpdesk/internal/session"
)

type fakeDeleter struct {
	err   error
	calls []int
}

func (f *fakeDeleter) DeleteSession(_ context.Context, id int) error {
	f.calls = append(f.calls, id)
	return f.err
}

func fullSession(id int) session.Session {
	return session.Session{
		ID:              id,
		RFPFilename:     "rfp.pdf",
		RFPRequirements: "1. Scope\n- item",
		OrgFilename:     "org.pdf",
		OrgAnalysis:     "We do things.",
		MatchingTable: []session.Match{
			{Requirement: "Scope", Capability: "Things", Match: session.MatchStrong},
		},
		ResponsePrompt: "Write the response",
		OutputFilename: "rfp_response_1.docx",
	}
}

func sampleList() []session.Session {
	return []session.Session{
		fullSession(7),
		{ID: 5, RFPFilename: "middle.pdf", RFPRequirements: "reqs"},
		{ID: 3, RFPFilename: "old.pdf"},
	}
}

func TestResetToBlankBaseline_Idempotent(t *testing.T) {
	start := New().ApplySessions(sampleList()).SelectSession(fullSession(7)).
		SetFile(FileRFP, "/tmp/rfp.pdf").
		EditPrompt("changed")

	once := start.ResetToBlankBaseline()
	twice := once.ResetToBlankBaseline()

	if !reflect.DeepEqual(once, twice) {
		t.Errorf("second reset changed state:\nonce:  %+v\ntwice: %+v", once, twice)
	}

	if once.Step != StepUpload {
		t.Errorf("Step = %v, want %v", once.Step, StepUpload)
	}
	if once.Prompt != "" || once.OriginalPrompt != "" {
		t.Errorf("prompts not cleared: %q / %q", once.Prompt, once.OriginalPrompt)
	}
	if once.Panels.Any() {
		t.Errorf("panels still visible: %+v", once.Panels)
	}
	if once.RFPFile != "" || once.OrgFile != "" {
		t.Error("file inputs not cleared")
	}
	if once.Current != nil {
		t.Error("current session not cleared")
	}
	if len(once.Sessions) != 3 {
		t.Errorf("session list should be kept, got %d rows", len(once.Sessions))
	}
}

func TestSelectSession_TwiceIsStable(t *testing.T) {
	sessions := append(sampleList(),
		session.Session{ID: 9, OutputFilename: "only.docx"},
		session.Session{ID: 11, OrgAnalysis: "org only"},
	)
	base := New().ApplySessions(sessions)

	for _, s := range sessions {
		once := base.SelectSession(s)
		twice := once.SelectSession(s)
		if !reflect.DeepEqual(once, twice) {
			t.Errorf("session %d: selecting twice differs:\nonce:  %+v\ntwice: %+v", s.ID, once, twice)
		}
	}
}

func TestSelectSession_StepRules(t *testing.T) {
	tests := []struct {
		name         string
		sess         session.Session
		wantStep     Step
		wantPanels   Panels
		wantPrompt   string
		wantDownload string
	}{
		{
			name:       "requirements only",
			sess:       session.Session{ID: 1, RFPRequirements: "reqs"},
			wantStep:   StepOrgReview,
			wantPanels: Panels{Requirements: true},
		},
		{
			name: "requirements, org and table",
			sess: session.Session{
				ID:              2,
				RFPRequirements: "reqs",
				OrgAnalysis:     "org",
				MatchingTable:   []session.Match{{Requirement: "a", Capability: "b", Match: "Partial"}},
			},
			wantStep:   StepGenerate,
			wantPanels: Panels{Requirements: true, Organization: true, Matches: true, Prompt: true},
		},
		{
			name:         "output only",
			sess:         session.Session{ID: 3, OutputFilename: "out.docx"},
			wantStep:     StepUpload,
			wantPanels:   Panels{Download: true},
			wantDownload: "out.docx",
		},
		{
			name:       "org without table stays at step 2",
			sess:       session.Session{ID: 4, RFPRequirements: "reqs", OrgAnalysis: "org"},
			wantStep:   StepOrgReview,
			wantPanels: Panels{Requirements: true},
		},
		{
			name: "empty table still counts",
			sess: session.Session{
				ID:              5,
				RFPRequirements: "reqs",
				OrgAnalysis:     "org",
				MatchingTable:   []session.Match{},
			},
			wantStep:   StepGenerate,
			wantPanels: Panels{Requirements: true, Organization: true, Matches: true, Prompt: true},
		},
		{
			name:         "complete session",
			sess:         fullSession(6),
			wantStep:     StepGenerate,
			wantPanels:   Panels{Requirements: true, Organization: true, Matches: true, Prompt: true, Download: true},
			wantPrompt:   "Write the response",
			wantDownload: "rfp_response_1.docx",
		},
		{
			name:       "prompt without org",
			sess:       session.Session{ID: 8, ResponsePrompt: "p"},
			wantStep:   StepUpload,
			wantPanels: Panels{Prompt: true},
			wantPrompt: "p",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// Start from a busy state to prove the replay starts from blank
			start := New().SelectSession(fullSession(99)).AdvanceStep(StepGenerate)
			got := start.SelectSession(tt.sess)

			if got.Step != tt.wantStep {
				t.Errorf("Step = %v, want %v", got.Step, tt.wantStep)
			}
			if got.Panels != tt.wantPanels {
				t.Errorf("Panels = %+v, want %+v", got.Panels, tt.wantPanels)
			}
			if got.Prompt != tt.wantPrompt || got.OriginalPrompt != tt.wantPrompt {
				t.Errorf("Prompt = %q / %q, want %q", got.Prompt, got.OriginalPrompt, tt.wantPrompt)
			}
			if got.DownloadFilename != tt.wantDownload {
				t.Errorf("DownloadFilename = %q, want %q", got.DownloadFilename, tt.wantDownload)
			}
			if !got.IsActive(tt.sess.ID) {
				t.Errorf("session %d should be active", tt.sess.ID)
			}
		})
	}
}

func TestSelectSession_DoesNotShareMatches(t *testing.T) {
	sess := fullSession(1)
	st := New().SelectSession(sess)
	st.Matches[0].Notes = "edited"

	if sess.MatchingTable[0].Notes != "" {
		t.Error("state shares the session's matching table")
	}
}

func TestAdvanceStep(t *testing.T) {
	tests := []struct {
		target Step
		want   Step
	}{
		{StepUpload, StepUpload},
		{StepOrgReview, StepOrgReview},
		{StepGenerate, StepGenerate},
		{0, StepOrgReview},
		{4, StepOrgReview},
		{-1, StepOrgReview},
	}

	for _, tt := range tests {
		st := New().AdvanceStep(StepOrgReview)
		if got := st.AdvanceStep(tt.target).Step; got != tt.want {
			t.Errorf("AdvanceStep(%d) = %v, want %v", tt.target, got, tt.want)
		}
	}
}

func TestDeleteSession_Current(t *testing.T) {
	st := New().ApplySessions(sampleList())
	st, _ = st.SelectByID(7)
	st = st.EditPrompt("my edits")

	deleter := &fakeDeleter{}
	got, err := st.DeleteSession(context.Background(), deleter, 7)
	if err != nil {
		t.Fatalf("DeleteSession() error = %v", err)
	}

	if got.Step != StepUpload {
		t.Errorf("Step = %v, want %v", got.Step, StepUpload)
	}
	if got.Prompt != "" || got.OriginalPrompt != "" {
		t.Errorf("prompt not cleared: %q", got.Prompt)
	}
	if got.Panels.Any() {
		t.Errorf("panels still visible: %+v", got.Panels)
	}
	if got.Current != nil {
		t.Error("current not cleared")
	}
	if session.Contains(got.Sessions, 7) || len(got.Sessions) != 2 {
		t.Errorf("row 7 not removed: %+v", got.Sessions)
	}
	if !reflect.DeepEqual(deleter.calls, []int{7}) {
		t.Errorf("deleter calls = %v", deleter.calls)
	}
}

func TestDeleteSession_Other(t *testing.T) {
	st := New().ApplySessions(sampleList())
	st, _ = st.SelectByID(7)
	st = st.EditPrompt("my edits")

	got, err := st.DeleteSession(context.Background(), &fakeDeleter{}, 3)
	if err != nil {
		t.Fatalf("DeleteSession() error = %v", err)
	}

	if got.Step != st.Step || got.Prompt != st.Prompt || got.Panels != st.Panels {
		t.Errorf("unrelated delete changed the view: %+v", got)
	}
	if !got.IsActive(7) {
		t.Error("session 7 should stay active")
	}

	var ids []int
	for _, s := range got.Sessions {
		ids = append(ids, s.ID)
	}
	if !reflect.DeepEqual(ids, []int{7, 5}) {
		t.Errorf("ids = %v, want [7 5]", ids)
	}
	if len(st.Sessions) != 3 {
		t.Error("original state's list was modified")
	}
}

func TestDeleteSession_FailureLeavesStateUnchanged(t *testing.T) {
	st := New().ApplySessions(sampleList())
	st, _ = st.SelectByID(7)

	wantErr := errors.New("backend down")
	got, err := st.DeleteSession(context.Background(), &fakeDeleter{err: wantErr}, 7)
	if !errors.Is(err, wantErr) {
		t.Fatalf("error = %v, want %v", err, wantErr)
	}
	if !reflect.DeepEqual(got, st) {
		t.Errorf("state changed on failure:\nbefore: %+v\nafter:  %+v", st, got)
	}
}

func TestApplySessions(t *testing.T) {
	t.Run("adopts pending upload", func(t *testing.T) {
		st := New().ApplyRFPUpload("reqs", "new.pdf")
		if st.PendingAdopt != "new.pdf" {
			t.Fatalf("PendingAdopt = %q", st.PendingAdopt)
		}

		// Not there yet
		st = st.ApplySessions(sampleList())
		if st.Current != nil || st.PendingAdopt != "new.pdf" {
			t.Fatalf("adopted too early: %+v", st)
		}

		list := append([]session.Session{{ID: 8, RFPFilename: "new.pdf", RFPRequirements: "reqs"}}, sampleList()...)
		st = st.ApplySessions(list)
		if !st.IsActive(8) {
			t.Errorf("session 8 should be active, current = %v", st.Current)
		}
		if st.PendingAdopt != "" {
			t.Error("PendingAdopt should be cleared after adoption")
		}
	})

	t.Run("drops vanished current without touching panels", func(t *testing.T) {
		st := New().ApplySessions(sampleList())
		st, _ = st.SelectByID(7)

		got := st.ApplySessions(sampleList()[1:])
		if got.Current != nil {
			t.Error("current should be cleared")
		}
		if got.Panels != st.Panels || got.Step != st.Step {
			t.Error("panels or step changed")
		}
	})

	t.Run("nil list becomes empty", func(t *testing.T) {
		got := New().ApplySessions(nil)
		if got.Sessions == nil {
			t.Error("Sessions should be non-nil")
		}
	})
}

func TestApplyUploads(t *testing.T) {
	st := New().ApplyRFPUpload("1. Scope", "rfp.pdf")
	if st.Step != StepOrgReview || !st.Panels.Requirements {
		t.Fatalf("after RFP upload: %+v", st)
	}

	matches := []session.Match{{Requirement: "r", Capability: "c", Match: "Strong"}}
	st = st.ApplyOrgUpload("analysis", matches, "prompt v1")
	if st.Step != StepGenerate {
		t.Errorf("Step = %v, want %v", st.Step, StepGenerate)
	}
	want := Panels{Requirements: true, Organization: true, Matches: true, Prompt: true}
	if st.Panels != want {
		t.Errorf("Panels = %+v, want %+v", st.Panels, want)
	}
	if st.Prompt != "prompt v1" || st.OriginalPrompt != "prompt v1" {
		t.Errorf("prompt = %q / %q", st.Prompt, st.OriginalPrompt)
	}

	// A later RFP upload never lowers the step
	st = st.ApplyRFPUpload("2. Other", "other.pdf")
	if st.Step != StepGenerate {
		t.Errorf("Step lowered to %v", st.Step)
	}

	// An org answer without a prompt keeps the edited one
	st = st.EditPrompt("edited").ApplyOrgUpload("analysis 2", nil, "")
	if st.Prompt != "edited" || st.OriginalPrompt != "prompt v1" {
		t.Errorf("prompt = %q / %q", st.Prompt, st.OriginalPrompt)
	}
	if st.Matches == nil {
		t.Error("Matches should be empty, not nil")
	}

	st = st.ApplyGenerated("rfp_response_1.docx")
	if !st.Panels.Download || st.DownloadFilename != "rfp_response_1.docx" {
		t.Errorf("download not shown: %+v", st)
	}
}

func TestPromptEditing(t *testing.T) {
	st := New().ApplyOrgUpload("a", nil, "original")
	st = st.EditPrompt("changed")
	if !st.PromptModified() {
		t.Error("PromptModified() should be true")
	}
	st = st.ResetPrompt()
	if st.Prompt != "original" || st.PromptModified() {
		t.Errorf("ResetPrompt() = %q", st.Prompt)
	}
}

func TestSetFile(t *testing.T) {
	st := New().SetFile(FileRFP, "a.pdf").SetFile(FileOrg, "b.docx")
	if st.File(FileRFP) != "a.pdf" || st.File(FileOrg) != "b.docx" {
		t.Errorf("files = %q, %q", st.RFPFile, st.OrgFile)
	}
}

func TestTargetsNewest(t *testing.T) {
	st := New().ApplySessions(sampleList())
	if !st.TargetsNewest() {
		t.Error("no selection should target newest")
	}
	st, _ = st.SelectByID(7)
	if !st.TargetsNewest() {
		t.Error("newest selected should target newest")
	}
	st, _ = st.SelectByID(3)
	if st.TargetsNewest() {
		t.Error("older selection should not target newest")
	}
}

func TestSelectByID_Missing(t *testing.T) {
	st := New().ApplySessions(sampleList())
	got, ok := st.SelectByID(42)
	if ok {
		t.Error("SelectByID(42) should fail")
	}
	if !reflect.DeepEqual(got, st) {
		t.Error("state changed on missing id")
	}
}

func TestStep_String(t *testing.T) {
	for _, s := range Steps() {
		if s.String() == "Unknown" {
			t.Errorf("step %d has no label", s)
		}
	}
	if Step(0).String() != "Unknown" {
		t.Error("invalid step should be Unknown")
	}
}
