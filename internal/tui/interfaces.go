package tui

import (
	"context"

	"github.com/Iron-Ham/rfpdesk/internal/gateway"
	"github.com/Iron-Ham/rfpdesk/internal/session"
)

// Backend is the subset of *gateway.Client the TUI drives.
type Backend interface {
	UploadRFP(ctx context.Context, path string) (gateway.RFPUpload, error)
	UploadOrg(ctx context.Context, path string) (gateway.OrgUpload, error)
	GenerateDocument(ctx context.Context, prompt string) (gateway.Generated, error)
	ListSessions(ctx context.Context) ([]session.Session, error)
	DeleteSession(ctx context.Context, id int) error
	DownloadToDir(ctx context.Context, filename, dir string) (string, error)
}

var _ Backend = (*gateway.Client)(nil)
