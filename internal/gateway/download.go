package gateway

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"

	deskerrors "github.com/Iron-Ham/rfpdesk/internal/errors"
	"github.com/Iron-Ham/rfpdesk/internal/logging"
)

// Download streams the generated document named filename into w and
// returns the number of bytes written.
func (c *Client) Download(ctx context.Context, filename string, w io.Writer) (int64, error) {
	if err := validateDownloadName(filename); err != nil {
		return 0, err
	}

	var written int64
	err := c.call(ctx, OpDownload, http.MethodGet, "/download/"+url.PathEscape(filename), "", nil, func(resp *http.Response, log *logging.Logger) error {
		if !isSuccess(resp.StatusCode) {
			data, err := readBody(OpDownload, resp)
			if err != nil {
				return err
			}
			return statusError(OpDownload, resp.StatusCode, data)
		}
		n, err := io.Copy(w, resp.Body)
		written = n
		if err != nil {
			return deskerrors.NewTransportError(OpDownload, err).
				WithStatus(resp.StatusCode).
				WithMessage("download interrupted")
		}
		log.Debug("download received", "file", filename, "bytes", n)
		return nil
	})
	return written, err
}

// DownloadToDir downloads filename into dir and returns the final path.
// The file is written to a temporary name and renamed once complete, so
// an interrupted download never leaves a truncated document behind.
func (c *Client) DownloadToDir(ctx context.Context, filename, dir string) (string, error) {
	if err := validateDownloadName(filename); err != nil {
		return "", err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create download directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".rfpdesk-download-*")
	if err != nil {
		return "", fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()
	defer func() {
		_ = os.Remove(tmpPath)
	}()

	if _, err := c.Download(ctx, filename, tmp); err != nil {
		_ = tmp.Close()
		return "", err
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("failed to sync download: %w", err)
	}
	if err := tmp.Chmod(0644); err != nil {
		_ = tmp.Close()
		return "", fmt.Errorf("failed to set permissions: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return "", fmt.Errorf("failed to close download: %w", err)
	}

	dest := filepath.Join(dir, filename)
	if err := os.Rename(tmpPath, dest); err != nil {
		return "", fmt.Errorf("failed to move download into place: %w", err)
	}
	return dest, nil
}

// validateDownloadName rejects names that would escape the download
// directory or address something other than a single file.
func validateDownloadName(filename string) error {
	if filename == "" || filename == "." || filename == ".." || filepath.Base(filename) != filename {
		return deskerrors.NewValidationError("Invalid download file name").
			WithField("filename").
			WithValue(filename).
			WithCause(deskerrors.ErrInvalidInput)
	}
	return nil
}
