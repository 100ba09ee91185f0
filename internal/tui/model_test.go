package tui

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/Iron-Ham/rfpdesk/internal/config"
	deskerrors "github.com/Iron-Ham/rfpdesk/internal/errors"
	"github.com/Iron-Ham/rfpdesk/internal/gateway"
	"github.com/Iron-Ham/rfpdesk/internal/notify"
	"github.com/Iron-Ham/rfpdesk/internal/session"
	"github.com/Iron-Ham/rfpdesk/internal/workflow"
	tea "github.com/charmbracelet/bubbletea"
)

// fakeBackend records calls and returns canned results.
type fakeBackend struct {
	mu sync.Mutex

	sessions  []session.Session
	listErr   error
	rfp       gateway.RFPUpload
	rfpErr    error
	org       gateway.OrgUpload
	orgErr    error
	generated gateway.Generated
	genErr    error
	deleteErr error
	saved     string

	uploads   []string
	prompts   []string
	deletes   []int
	downloads []string
}

func (f *fakeBackend) UploadRFP(_ context.Context, path string) (gateway.RFPUpload, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploads = append(f.uploads, path)
	return f.rfp, f.rfpErr
}

func (f *fakeBackend) UploadOrg(_ context.Context, path string) (gateway.OrgUpload, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.uploads = append(f.uploads, path)
	return f.org, f.orgErr
}

func (f *fakeBackend) GenerateDocument(_ context.Context, prompt string) (gateway.Generated, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.prompts = append(f.prompts, prompt)
	return f.generated, f.genErr
}

func (f *fakeBackend) ListSessions(context.Context) ([]session.Session, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return session.Clone(f.sessions), f.listErr
}

func (f *fakeBackend) DeleteSession(_ context.Context, id int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.deletes = append(f.deletes, id)
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.sessions = session.Without(f.sessions, id)
	return nil
}

func (f *fakeBackend) DownloadToDir(_ context.Context, filename, dir string) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.downloads = append(f.downloads, filename)
	return f.saved, nil
}

// newTestModel returns a sized model whose banners never expire, so
// commands returned by Update never include timers.
func newTestModel(b Backend) Model {
	m := NewModel(b, Options{BackendURL: "http://rfp.test", DownloadDir: "/tmp/out"})
	next, _ := m.Update(tea.WindowSizeMsg{Width: 140, Height: 40})
	return next.(Model)
}

func keyPress(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(m Model, keys ...string) (Model, tea.Cmd) {
	var cmd tea.Cmd
	for _, k := range keys {
		var next tea.Model
		next, cmd = m.Update(keyPress(k))
		m = next.(Model)
	}
	return m, cmd
}

// deliver runs cmd and feeds its message back into the model.
func deliver(t *testing.T, m Model, cmd tea.Cmd) (Model, tea.Cmd) {
	t.Helper()
	if cmd == nil {
		t.Fatal("expected a command")
	}
	next, out := m.Update(cmd())
	return next.(Model), out
}

func sampleSessions() []session.Session {
	return []session.Session{
		{
			ID:              7,
			RFPFilename:     "county.pdf",
			RFPRequirements: "Scope:\n- Hosting\nSecurity:\n- SOC 2",
			OrgAnalysis:     "Acme hosts things.",
			MatchingTable:   []session.Match{{Requirement: "Hosting", Capability: "AWS", Match: session.MatchStrong}},
			ResponsePrompt:  "Write it.",
			OutputFilename:  "rfp_response_1.docx",
			CreatedAt:       session.NewTimestamp(time.Date(2026, 1, 2, 3, 4, 0, 0, time.UTC)),
		},
		{ID: 3, RFPFilename: "city.pdf", RFPRequirements: "Scope:\n- Roads"},
	}
}

func loaded(t *testing.T, b *fakeBackend) Model {
	t.Helper()
	m := newTestModel(b)
	m, cmd := press(m, "R")
	m, _ = deliver(t, m, cmd)
	return m
}

func TestModel_RefreshLoadsSessionsInBackendOrder(t *testing.T) {
	b := &fakeBackend{sessions: sampleSessions()}
	m := loaded(t, b)

	got := m.State().Sessions
	if len(got) != 2 || got[0].ID != 7 || got[1].ID != 3 {
		t.Fatalf("unexpected sessions %+v", got)
	}
	if _, n := m.notify.Loading(); n != 0 {
		t.Errorf("loading overlay still held by %d requests", n)
	}
}

func TestModel_RefreshFailureShowsError(t *testing.T) {
	b := &fakeBackend{listErr: deskerrors.NewTransportError(gateway.OpListSessions, errors.New("connection refused"))}
	m := loaded(t, b)

	n, ok := m.notify.Current()
	if !ok || n.Kind != notify.KindError {
		t.Fatalf("expected an error banner, got %+v", n)
	}
	if !strings.Contains(n.Message, "connection refused") {
		t.Errorf("banner should carry the cause, got %q", n.Message)
	}
}

func TestModel_UploadRFPAdoptsNewSession(t *testing.T) {
	b := &fakeBackend{
		rfp: gateway.RFPUpload{Requirements: "1. Scope\n- item A", Filename: "new.pdf"},
	}
	m := newTestModel(b)

	m, _ = press(m, "u")
	if m.mode != modePathInput {
		t.Fatalf("expected path input mode, got %v", m.mode)
	}
	m, _ = press(m, "/tmp/new.pdf")
	m, cmd := press(m, "enter")
	if m.State().RFPFile != "/tmp/new.pdf" {
		t.Errorf("RFP file input = %q", m.State().RFPFile)
	}

	// the backend stores the session before the list is re-read
	b.sessions = []session.Session{{ID: 1, RFPFilename: "new.pdf", RFPRequirements: "1. Scope\n- item A"}}

	m, cmd = deliver(t, m, cmd)
	st := m.State()
	if st.Step != workflow.StepOrgReview || !st.Panels.Requirements {
		t.Fatalf("expected step 2 with requirements, got step %d panels %+v", st.Step, st.Panels)
	}
	if n, ok := m.notify.Current(); !ok || n.Kind != notify.KindSuccess {
		t.Errorf("expected a success banner, got %+v", n)
	}

	m, _ = deliver(t, m, cmd)
	if id, ok := m.State().CurrentID(); !ok || id != 1 {
		t.Errorf("uploaded session should become current, got %d %v", id, ok)
	}
	if len(b.uploads) != 1 || b.uploads[0] != "/tmp/new.pdf" {
		t.Errorf("unexpected uploads %v", b.uploads)
	}
}

func TestModel_UploadValidationErrorLeavesState(t *testing.T) {
	b := &fakeBackend{
		rfpErr: deskerrors.NewValidationError("Please select a PDF, TXT, or DOCX file").WithField("file"),
	}
	m := newTestModel(b)

	m, _ = press(m, "u", "/tmp/virus.exe")
	m, cmd := press(m, "enter")
	m, _ = deliver(t, m, cmd)

	if m.State().Step != workflow.StepUpload || m.State().Panels.Any() {
		t.Errorf("failed upload must not change the workspace: %+v", m.State())
	}
	n, _ := m.notify.Current()
	if n.Message != "Please select a PDF, TXT, or DOCX file" {
		t.Errorf("banner = %q", n.Message)
	}
}

func TestModel_PathInputEscCancels(t *testing.T) {
	b := &fakeBackend{}
	m := newTestModel(b)

	m, _ = press(m, "u", "/tmp/a.pdf")
	m, cmd := press(m, "esc")
	if m.mode != modeNormal || cmd != nil {
		t.Errorf("esc should leave input mode without a command")
	}
	if len(b.uploads) != 0 {
		t.Errorf("no upload expected, got %v", b.uploads)
	}
}

func TestModel_OrgUploadDisabledBeforeRequirements(t *testing.T) {
	m := newTestModel(&fakeBackend{})

	m, _ = press(m, "o")
	if m.mode != modeNormal {
		t.Error("org upload should be unavailable at step 1")
	}
}

func TestModel_SelectSessionReplaysFields(t *testing.T) {
	b := &fakeBackend{sessions: sampleSessions()}
	m := loaded(t, b)

	m, _ = press(m, "enter")
	st := m.State()
	if id, _ := st.CurrentID(); id != 7 {
		t.Fatalf("current = %d, want 7", id)
	}
	if st.Step != workflow.StepGenerate || !st.Panels.Download || st.Prompt != "Write it." {
		t.Errorf("session fields not replayed: %+v", st)
	}

	again, _ := press(m, "enter")
	if again.View() != m.View() {
		t.Error("selecting the same session twice changed the screen")
	}
}

func TestModel_DeleteCurrentSessionResets(t *testing.T) {
	b := &fakeBackend{sessions: sampleSessions()}
	m := loaded(t, b)
	m, _ = press(m, "enter")

	m, _ = press(m, "x")
	if m.mode != modeConfirmDelete {
		t.Fatalf("expected confirmation, got mode %v", m.mode)
	}
	m, cmd := press(m, "y")
	m, cmd = deliver(t, m, cmd)

	st := m.State()
	if _, ok := st.CurrentID(); ok || st.Step != workflow.StepUpload || st.Prompt != "" || st.Panels.Any() {
		t.Errorf("deleting the current session should reset: %+v", st)
	}
	if len(st.Sessions) != 1 || st.Sessions[0].ID != 3 {
		t.Errorf("row not removed: %+v", st.Sessions)
	}
	if len(b.deletes) != 1 || b.deletes[0] != 7 {
		t.Errorf("deletes = %v", b.deletes)
	}

	m, _ = deliver(t, m, cmd)
	if len(m.State().Sessions) != 1 {
		t.Errorf("refresh after delete returned %d rows", len(m.State().Sessions))
	}
}

func TestModel_DeleteOtherSessionKeepsWorkspace(t *testing.T) {
	b := &fakeBackend{sessions: sampleSessions()}
	m := loaded(t, b)
	m, _ = press(m, "enter")
	before := m.State()

	m, _ = press(m, "j", "x")
	m, cmd := press(m, "y")
	m, _ = deliver(t, m, cmd)

	st := m.State()
	if st.Step != before.Step || st.Prompt != before.Prompt || st.Panels != before.Panels {
		t.Errorf("deleting another session changed the workspace")
	}
	if id, _ := st.CurrentID(); id != 7 {
		t.Errorf("current = %d, want 7", id)
	}
	if len(st.Sessions) != 1 || st.Sessions[0].ID != 7 {
		t.Errorf("only id 3 should be removed: %+v", st.Sessions)
	}
}

func TestModel_DeleteFailureLeavesStateUntouched(t *testing.T) {
	b := &fakeBackend{
		sessions:  sampleSessions(),
		deleteErr: deskerrors.NewApplicationError(gateway.OpDeleteSession, "Session not found").WithStatus(404),
	}
	m := loaded(t, b)
	m, _ = press(m, "enter")
	before := m.State()

	m, _ = press(m, "x")
	m, cmd := press(m, "y")
	m, next := deliver(t, m, cmd)

	st := m.State()
	if len(st.Sessions) != len(before.Sessions) {
		t.Errorf("list changed after failed delete")
	}
	if id, _ := st.CurrentID(); id != 7 {
		t.Errorf("current changed after failed delete: %d", id)
	}
	if next != nil {
		if _, isList := next().(sessionsLoadedMsg); isList {
			t.Error("failed delete should not refresh the list")
		}
	}
	if n, _ := m.notify.Current(); n.Message != "Session not found" {
		t.Errorf("banner = %q", n.Message)
	}
}

func TestModel_DeleteCancelled(t *testing.T) {
	b := &fakeBackend{sessions: sampleSessions()}
	m := loaded(t, b)

	m, cmd := press(m, "x", "n")
	if cmd != nil || m.mode != modeNormal {
		t.Error("declining should return to normal mode without a request")
	}
	if len(b.deletes) != 0 {
		t.Errorf("unexpected deletes %v", b.deletes)
	}
}

func TestModel_OverlappingRequestsHoldOverlay(t *testing.T) {
	b := &fakeBackend{sessions: sampleSessions()}
	m := newTestModel(b)

	m, first := press(m, "R")
	m, second := press(m, "R")
	if _, n := m.notify.Loading(); n != 2 {
		t.Fatalf("in flight = %d, want 2", n)
	}

	m, _ = deliver(t, m, second)
	if _, n := m.notify.Loading(); n != 1 {
		t.Errorf("overlay released too early: %d in flight", n)
	}
	m, _ = deliver(t, m, first)
	if _, n := m.notify.Loading(); n != 0 {
		t.Errorf("overlay still shown: %d in flight", n)
	}
}

func TestModel_EditAndResetPrompt(t *testing.T) {
	b := &fakeBackend{
		rfp: gateway.RFPUpload{Requirements: "Scope:\n- a", Filename: "r.pdf"},
		org: gateway.OrgUpload{OrgAnalysis: "org", MatchingTable: []session.Match{}, ResponsePrompt: "Original"},
	}
	m := newTestModel(b)

	m, _ = press(m, "u", "/tmp/r.pdf")
	m, cmd := press(m, "enter")
	m, _ = deliver(t, m, cmd)

	m, _ = press(m, "o", "/tmp/org.docx")
	m, cmd = press(m, "enter")
	m, _ = deliver(t, m, cmd)
	if m.State().Step != workflow.StepGenerate || m.State().Prompt != "Original" {
		t.Fatalf("org upload not applied: %+v", m.State())
	}

	m, _ = press(m, "e", " plus")
	m, _ = press(m, "esc")
	if got := m.State().Prompt; got != "Original plus" {
		t.Fatalf("edited prompt = %q", got)
	}
	if !m.State().PromptModified() {
		t.Error("prompt should be marked modified")
	}

	m, _ = press(m, "r")
	if m.State().Prompt != "Original" || m.State().PromptModified() {
		t.Errorf("reset prompt = %q", m.State().Prompt)
	}
}

func TestModel_GenerateSendsCurrentPrompt(t *testing.T) {
	b := &fakeBackend{
		sessions:  sampleSessions(),
		generated: gateway.Generated{DownloadURL: "/download/rfp_response_99.docx"},
		saved:     "/tmp/out/rfp_response_99.docx",
	}
	m := loaded(t, b)
	m, _ = press(m, "enter")

	m, cmd := press(m, "g")
	m, _ = deliver(t, m, cmd)

	if len(b.prompts) != 1 || b.prompts[0] != "Write it." {
		t.Errorf("prompts = %v", b.prompts)
	}
	if m.State().DownloadFilename != "rfp_response_99.docx" {
		t.Errorf("download filename = %q", m.State().DownloadFilename)
	}

	m, cmd = press(m, "d")
	m, _ = deliver(t, m, cmd)
	if len(b.downloads) != 1 || b.downloads[0] != "rfp_response_99.docx" {
		t.Errorf("downloads = %v", b.downloads)
	}
	if n, _ := m.notify.Current(); !strings.Contains(n.Message, "/tmp/out/rfp_response_99.docx") {
		t.Errorf("banner = %q", n.Message)
	}
}

func TestModel_NewSessionResets(t *testing.T) {
	b := &fakeBackend{sessions: sampleSessions()}
	m := loaded(t, b)
	m, _ = press(m, "enter", "n")

	st := m.State()
	if _, ok := st.CurrentID(); ok || st.Panels.Any() || st.Step != workflow.StepUpload {
		t.Errorf("n should return to the blank baseline: %+v", st)
	}
	if len(st.Sessions) != 2 {
		t.Error("the session list survives a reset")
	}
}

func TestModel_SectionFolding(t *testing.T) {
	b := &fakeBackend{sessions: sampleSessions()}
	m := loaded(t, b)
	m, _ = press(m, "enter", "tab", "]", " ")

	if !m.collapsed[0] || m.collapsed[1] {
		t.Fatalf("space should fold only the focused section: %v", m.collapsed)
	}
	m, _ = press(m, "c")
	if !m.collapsed[0] || !m.collapsed[1] {
		t.Errorf("fold all should fold every section: %v", m.collapsed)
	}
	m, _ = press(m, "c")
	if m.collapsed[0] || m.collapsed[1] {
		t.Errorf("fold all on a fully folded document expands it: %v", m.collapsed)
	}
}

func TestModel_ConfigChangeUpdatesNotifications(t *testing.T) {
	m := newTestModel(&fakeBackend{})

	cfg := notify.Config{SuccessTimeout: time.Second, ErrorTimeout: 2 * time.Second}
	next, _ := m.Update(configChangedMsg{notify: cfg})
	m = next.(Model)

	if got := m.notify.Config(); got != cfg {
		t.Errorf("notify config = %+v, want %+v", got, cfg)
	}
}

func TestModel_ViewRendersRegions(t *testing.T) {
	b := &fakeBackend{sessions: sampleSessions()}
	m := loaded(t, b)
	m, _ = press(m, "enter")

	out := m.View()
	for _, want := range []string{"rfpdesk", "http://rfp.test", "Sessions (2)", "county.pdf", "RFP Requirements", "Capability Matches"} {
		if !strings.Contains(out, want) {
			t.Errorf("view missing %q", want)
		}
	}

	m, _ = press(m, "?")
	if !strings.Contains(m.View(), "Keys") {
		t.Error("help overlay not shown")
	}
}

func TestNotifyConfig(t *testing.T) {
	got := NotifyConfig(config.NotificationConfig{SuccessTimeout: 2 * time.Second, Bell: true})
	if got.SuccessTimeout != 2*time.Second || got.InfoTimeout != 2*time.Second {
		t.Errorf("success timeout not applied: %+v", got)
	}
	if got.ErrorTimeout != notify.DefaultConfig().ErrorTimeout {
		t.Errorf("zero error timeout should keep the default, got %v", got.ErrorTimeout)
	}
	if !got.Bell {
		t.Error("bell not applied")
	}
}
