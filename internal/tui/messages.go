package tui

import (
	"context"

	"github.com/Iron-Ham/rfpdesk/internal/gateway"
	"github.com/Iron-Ham/rfpdesk/internal/notify"
	"github.com/Iron-Ham/rfpdesk/internal/session"
	tea "github.com/charmbracelet/bubbletea"
)

// Each backend call runs in its own command and closes over its own
// arguments. The result message carries the loading token it holds so
// Update can release it whatever the outcome.

type sessionsLoadedMsg struct {
	token    notify.Token
	sessions []session.Session
	err      error
}

type rfpUploadedMsg struct {
	token  notify.Token
	path   string
	result gateway.RFPUpload
	err    error
}

type orgUploadedMsg struct {
	token  notify.Token
	path   string
	result gateway.OrgUpload
	err    error
}

type generatedMsg struct {
	token  notify.Token
	result gateway.Generated
	err    error
}

type deletedMsg struct {
	token notify.Token
	id    int
	err   error
}

type downloadedMsg struct {
	token notify.Token
	path  string
	err   error
}

// configChangedMsg is sent when the config file changes on disk.
type configChangedMsg struct {
	notify notify.Config
	err    error
}

func loadSessionsCmd(b Backend, token notify.Token) tea.Cmd {
	return func() tea.Msg {
		list, err := b.ListSessions(context.Background())
		return sessionsLoadedMsg{token: token, sessions: list, err: err}
	}
}

func uploadRFPCmd(b Backend, token notify.Token, path string) tea.Cmd {
	return func() tea.Msg {
		res, err := b.UploadRFP(context.Background(), path)
		return rfpUploadedMsg{token: token, path: path, result: res, err: err}
	}
}

func uploadOrgCmd(b Backend, token notify.Token, path string) tea.Cmd {
	return func() tea.Msg {
		res, err := b.UploadOrg(context.Background(), path)
		return orgUploadedMsg{token: token, path: path, result: res, err: err}
	}
}

func generateCmd(b Backend, token notify.Token, prompt string) tea.Cmd {
	return func() tea.Msg {
		res, err := b.GenerateDocument(context.Background(), prompt)
		return generatedMsg{token: token, result: res, err: err}
	}
}

func deleteCmd(b Backend, token notify.Token, id int) tea.Cmd {
	return func() tea.Msg {
		err := b.DeleteSession(context.Background(), id)
		return deletedMsg{token: token, id: id, err: err}
	}
}

func downloadCmd(b Backend, token notify.Token, filename, dir string) tea.Cmd {
	return func() tea.Msg {
		path, err := b.DownloadToDir(context.Background(), filename, dir)
		return downloadedMsg{token: token, path: path, err: err}
	}
}
