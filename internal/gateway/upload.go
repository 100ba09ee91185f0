package gateway

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gabriel-vasile/mimetype"

	deskerrors "github.com/Iron-Ham/rfpdesk/internal/errors"
	"github.com/Iron-Ham/rfpdesk/internal/logging"
)

// MIME types the backend can extract text from, keyed by extension.
var mimeByExtension = map[string]string{
	".pdf":  "application/pdf",
	".txt":  "text/plain",
	".docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
}

// UploadPolicy is checked locally before a file is sent.
type UploadPolicy struct {
	// MaxBytes rejects larger files. 0 disables the check.
	MaxBytes int64
	// Extensions lists accepted extensions, including the dot.
	Extensions []string
}

// DefaultUploadPolicy mirrors the backend: PDF, TXT or DOCX up to 16 MB.
func DefaultUploadPolicy() UploadPolicy {
	return UploadPolicy{
		MaxBytes:   16 << 20,
		Extensions: []string{".pdf", ".txt", ".docx"},
	}
}

// FileCheck is the outcome of a successful policy check.
type FileCheck struct {
	Path string
	Name string
	Size int64
	// ContentType is the sniffed type, or application/octet-stream.
	ContentType string
}

// Check validates the file at path. A file is accepted when either its
// detected content type or its extension is allowed, so a .docx that
// sniffs as something unexpected still goes through.
func (p UploadPolicy) Check(path string) (FileCheck, error) {
	name := filepath.Base(path)

	info, err := os.Stat(path)
	if err != nil {
		return FileCheck{}, deskerrors.NewValidationError(fmt.Sprintf("Cannot read %s", name)).
			WithField("file").
			WithValue(path).
			WithCause(err)
	}
	if info.IsDir() {
		return FileCheck{}, deskerrors.NewValidationError(fmt.Sprintf("%s is a directory", name)).
			WithField("file").
			WithValue(path).
			WithCause(deskerrors.ErrInvalidInput)
	}
	if p.MaxBytes > 0 && info.Size() > p.MaxBytes {
		return FileCheck{}, deskerrors.NewValidationError(
			fmt.Sprintf("%s is too large (max %d MB)", name, p.MaxBytes>>20)).
			WithField("file").
			WithValue(info.Size()).
			WithCause(deskerrors.ErrFileTooLarge)
	}

	contentType := "application/octet-stream"
	typeAllowed := false
	if mt, err := mimetype.DetectFile(path); err == nil {
		contentType = mt.String()
		typeAllowed = p.allowsType(mt)
	}

	if !typeAllowed && !p.allowsExtension(name) {
		return FileCheck{}, deskerrors.NewValidationError(
			fmt.Sprintf("Please select a %s file", p.describe())).
			WithField("file").
			WithValue(name).
			WithCause(deskerrors.ErrUnsupportedFileType)
	}

	return FileCheck{
		Path:        path,
		Name:        name,
		Size:        info.Size(),
		ContentType: contentType,
	}, nil
}

func (p UploadPolicy) allowsExtension(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	if ext == "" {
		return false
	}
	return slices.ContainsFunc(p.Extensions, func(allowed string) bool {
		return strings.ToLower(allowed) == ext
	})
}

func (p UploadPolicy) allowsType(mt *mimetype.MIME) bool {
	for _, ext := range p.Extensions {
		want, ok := mimeByExtension[strings.ToLower(ext)]
		if !ok {
			continue
		}
		// Walk up so e.g. a more specific text type still counts as text/plain
		for m := mt; m != nil; m = m.Parent() {
			if m.Is(want) {
				return true
			}
		}
	}
	return false
}

// describe renders the allowed extensions as "PDF, TXT, or DOCX".
func (p UploadPolicy) describe() string {
	names := make([]string, 0, len(p.Extensions))
	for _, ext := range p.Extensions {
		names = append(names, strings.ToUpper(strings.TrimPrefix(ext, ".")))
	}
	switch len(names) {
	case 0:
		return "supported"
	case 1:
		return names[0]
	case 2:
		return names[0] + " or " + names[1]
	default:
		return strings.Join(names[:len(names)-1], ", ") + ", or " + names[len(names)-1]
	}
}

var quoteEscaper = strings.NewReplacer("\\", "\\\\", `"`, "\\\"")

// upload checks path against the policy and posts it as a single-file
// multipart form. Validation failures never reach the network.
func (c *Client) upload(ctx context.Context, op, route, field, path string, out any) error {
	check, err := c.policy.Check(path)
	if err != nil {
		c.logger.WithOperation(op).Debug("upload rejected", "file", path, "error", err.Error())
		return err
	}

	body, contentType, err := multipartBody(field, check)
	if err != nil {
		return deskerrors.NewValidationError(fmt.Sprintf("Cannot read %s", check.Name)).
			WithField(field).
			WithValue(path).
			WithCause(err)
	}

	return c.call(ctx, op, http.MethodPost, route, contentType, body, func(resp *http.Response, log *logging.Logger) error {
		log.Debug("upload sent", "file", check.Name, "bytes", check.Size, "content_type", check.ContentType)
		return decodeEnvelope(op, resp, out)
	})
}

// multipartBody buffers the form. Files are capped by the policy, so
// holding one in memory is fine and gives the request a Content-Length.
func multipartBody(field string, check FileCheck) (io.Reader, string, error) {
	f, err := os.Open(check.Path)
	if err != nil {
		return nil, "", err
	}
	defer func() { _ = f.Close() }()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", fmt.Sprintf(`form-data; name="%s"; filename="%s"`,
		quoteEscaper.Replace(field), quoteEscaper.Replace(check.Name)))
	h.Set("Content-Type", check.ContentType)

	part, err := w.CreatePart(h)
	if err != nil {
		return nil, "", err
	}
	if _, err := io.Copy(part, f); err != nil {
		return nil, "", err
	}
	if err := w.Close(); err != nil {
		return nil, "", err
	}
	return &buf, w.FormDataContentType(), nil
}
