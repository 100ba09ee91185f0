package gateway

import (
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"path"
	"strings"

	deskerrors "github.com/Iron-Ham/rfpdesk/internal/errors"
	"github.com/Iron-Ham/rfpdesk/internal/session"
	"github.com/Iron-Ham/rfpdesk/internal/util"
)

// maxSnippet bounds, in runes, how much of an unexpected body ends up in
// an error message.
const maxSnippet = 200

// RFPUpload is the success payload of /upload_rfp.
type RFPUpload struct {
	Requirements string `json:"requirements" yaml:"requirements"`
	Filename     string `json:"filename" yaml:"filename"`
}

// OrgUpload is the success payload of /upload_org.
type OrgUpload struct {
	OrgAnalysis    string          `json:"org_analysis" yaml:"org_analysis"`
	MatchingTable  []session.Match `json:"matching_table" yaml:"matching_table"`
	ResponsePrompt string          `json:"response_prompt" yaml:"response_prompt"`
	Filename       string          `json:"filename" yaml:"filename"`
}

// Generated is the success payload of /generate_document.
type Generated struct {
	DownloadURL string `json:"download_url" yaml:"download_url"`
}

// Filename returns the document name from DownloadURL
// ("/download/rfp_response_ab12cd34.docx" -> "rfp_response_ab12cd34.docx").
func (g Generated) Filename() string {
	p := g.DownloadURL
	if u, err := url.Parse(p); err == nil {
		p = u.Path
	}
	name := path.Base(p)
	if name == "." || name == "/" {
		return ""
	}
	return name
}

type generateRequest struct {
	Prompt string `json:"prompt"`
}

// envelope is the {success, error} wrapper of every POST/DELETE answer.
// The backend omits success on failures, so both fields are optional.
type envelope struct {
	Success *bool  `json:"success"`
	Error   string `json:"error"`
}

func (e envelope) failed() bool {
	return e.Error != "" || e.Success == nil || !*e.Success
}

func parseEnvelope(data []byte) (envelope, bool) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return envelope{}, false
	}
	return env, true
}

func isSuccess(code int) bool {
	return code >= 200 && code < 300
}

// maxResponseBytes caps how much of a JSON response is read. Analyses are
// large but nowhere near this.
const maxResponseBytes = 32 << 20

func readBody(op string, resp *http.Response) ([]byte, error) {
	data, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, deskerrors.NewTransportError(op, err).
			WithStatus(resp.StatusCode).
			WithMessage("failed to read response")
	}
	return data, nil
}

// decodeEnvelope checks the envelope and, on success, decodes the payload
// into out (which may be nil).
func decodeEnvelope(op string, resp *http.Response, out any) error {
	data, err := readBody(op, resp)
	if err != nil {
		return err
	}

	env, ok := parseEnvelope(data)
	if !ok {
		if !isSuccess(resp.StatusCode) {
			return statusError(op, resp.StatusCode, data)
		}
		return malformed(op, resp.StatusCode, deskerrors.New("response is not a JSON object"))
	}

	if env.failed() {
		if env.Error == "" && env.Success == nil && !isSuccess(resp.StatusCode) {
			// A JSON body that is not ours, e.g. a proxy error page
			return statusError(op, resp.StatusCode, data)
		}
		return deskerrors.NewApplicationError(op, env.Error).WithStatus(resp.StatusCode)
	}

	if out == nil {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return malformed(op, resp.StatusCode, err)
	}
	return nil
}

// statusError converts a non-2xx answer. An error envelope in the body
// still wins so the backend's message reaches the user.
func statusError(op string, code int, data []byte) error {
	if env, ok := parseEnvelope(data); ok && env.Error != "" {
		return deskerrors.NewApplicationError(op, env.Error).WithStatus(code)
	}
	return deskerrors.NewTransportError(op, deskerrors.ErrUnexpectedStatus).
		WithStatus(code).
		WithMessage(statusText(code, data))
}

func statusText(code int, data []byte) string {
	text := http.StatusText(code)
	if text == "" {
		text = "unexpected status"
	}
	snippet := strings.TrimSpace(string(data))
	snippet = util.TruncateString(snippet, maxSnippet)
	if snippet == "" {
		return text
	}
	return text + ": " + snippet
}

func malformed(op string, code int, cause error) error {
	return deskerrors.NewTransportError(op, deskerrors.Join(deskerrors.ErrMalformedResponse, cause)).
		WithStatus(code).
		WithMessage("malformed response")
}
