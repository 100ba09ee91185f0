// Package gateway is the HTTP client for the RFP analysis backend.
//
// Every operation either returns its decoded payload or one of the
// errors from internal/errors:
//
//   - *errors.ValidationError when the input is rejected locally. No
//     request is sent.
//   - *errors.ApplicationError when the backend answered with an error
//     envelope ({"error": "..."} or "success": false).
//   - *errors.TransportError when no usable answer arrived: network
//     failure, timeout, non-2xx status without an envelope, or a body that
//     is not valid JSON.
//
// Nothing is retried. The client keeps cookies between calls because the
// backend identifies the user by a cookie-held session.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	deskerrors "github.com/Iron-Ham/rfpdesk/internal/errors"
	"github.com/Iron-Ham/rfpdesk/internal/logging"
	"github.com/Iron-Ham/rfpdesk/internal/session"
)

// Operation names, used in errors and log lines.
const (
	OpUploadRFP     = "upload_rfp"
	OpUploadOrg     = "upload_org"
	OpGenerate      = "generate_document"
	OpListSessions  = "get_sessions"
	OpDeleteSession = "delete_session"
	OpDownload      = "download"
)

// RequestIDHeader carries the per-request correlation id.
const RequestIDHeader = "X-Request-ID"

// Client talks to one backend instance. It is safe for concurrent use.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	logger     *logging.Logger
	policy     UploadPolicy

	timeout    time.Duration
	hasTimeout bool

	// identityMu guards identified. The backend only assigns the user id
	// cookie on its index route, so that route is fetched once before the
	// first operation.
	identityMu sync.Mutex
	identified bool
}

// Option configures a Client.
type Option func(*Client)

// WithHTTPClient replaces the underlying http.Client. The client is copied,
// and the copy gets a cookie jar if it has none. nil is ignored.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTimeout bounds each request. 0 disables the timeout. It applies
// regardless of where it appears relative to WithHTTPClient.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		c.timeout = d
		c.hasTimeout = true
	}
}

// WithLogger sets the logger used for request outcomes.
func WithLogger(l *logging.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// WithUploadPolicy sets the local checks run before an upload.
func WithUploadPolicy(p UploadPolicy) Option {
	return func(c *Client) {
		c.policy = p
	}
}

// NewClient creates a Client for the backend at baseURL.
func NewClient(baseURL string, opts ...Option) (*Client, error) {
	u, err := url.Parse(strings.TrimSuffix(baseURL, "/"))
	if err != nil || u.Scheme == "" || u.Host == "" {
		return nil, deskerrors.NewValidationError("backend URL must be absolute").
			WithField("backend.url").
			WithValue(baseURL).
			WithCause(err)
	}

	c := &Client{
		baseURL:    u,
		httpClient: &http.Client{Timeout: 5 * time.Minute},
		logger:     logging.NopLogger(),
		policy:     DefaultUploadPolicy(),
	}
	for _, opt := range opts {
		opt(c)
	}

	hc := *c.httpClient
	if c.hasTimeout {
		hc.Timeout = c.timeout
	}
	if hc.Jar == nil {
		jar, err := cookiejar.New(nil)
		if err != nil {
			return nil, fmt.Errorf("failed to create cookie jar: %w", err)
		}
		hc.Jar = jar
	}
	c.httpClient = &hc

	return c, nil
}

// BaseURL returns the backend base URL.
func (c *Client) BaseURL() string {
	return c.baseURL.String()
}

// Policy returns the upload policy in effect.
func (c *Client) Policy() UploadPolicy {
	return c.policy
}

// UploadRFP validates and uploads an RFP file as multipart field rfp_file.
func (c *Client) UploadRFP(ctx context.Context, path string) (RFPUpload, error) {
	var out RFPUpload
	if err := c.upload(ctx, OpUploadRFP, "/upload_rfp", "rfp_file", path, &out); err != nil {
		return RFPUpload{}, err
	}
	return out, nil
}

// UploadOrg validates and uploads an organization profile as multipart
// field org_file. The backend matches it against the RFP of its most
// recent session.
func (c *Client) UploadOrg(ctx context.Context, path string) (OrgUpload, error) {
	var out OrgUpload
	if err := c.upload(ctx, OpUploadOrg, "/upload_org", "org_file", path, &out); err != nil {
		return OrgUpload{}, err
	}
	return out, nil
}

// GenerateDocument asks the backend to build the response document from
// prompt. A blank prompt is rejected locally.
func (c *Client) GenerateDocument(ctx context.Context, prompt string) (Generated, error) {
	if strings.TrimSpace(prompt) == "" {
		return Generated{}, deskerrors.NewValidationError("Please enter a prompt before generating").
			WithField("prompt").
			WithCause(deskerrors.ErrEmptyPrompt)
	}

	body, err := json.Marshal(generateRequest{Prompt: prompt})
	if err != nil {
		return Generated{}, fmt.Errorf("failed to marshal request: %w", err)
	}

	var out Generated
	err = c.call(ctx, OpGenerate, http.MethodPost, "/generate_document", "application/json", bytes.NewReader(body), func(resp *http.Response, log *logging.Logger) error {
		return decodeEnvelope(OpGenerate, resp, &out)
	})
	if err != nil {
		return Generated{}, err
	}
	return out, nil
}

// ListSessions returns the backend's sessions in the order it sent them.
func (c *Client) ListSessions(ctx context.Context) ([]session.Session, error) {
	var out []session.Session
	err := c.call(ctx, OpListSessions, http.MethodGet, "/get_sessions", "", nil, func(resp *http.Response, log *logging.Logger) error {
		data, err := readBody(OpListSessions, resp)
		if err != nil {
			return err
		}
		if !isSuccess(resp.StatusCode) {
			return statusError(OpListSessions, resp.StatusCode, data)
		}
		if err := json.Unmarshal(data, &out); err != nil {
			// An envelope in place of the list is still a backend answer
			if env, ok := parseEnvelope(data); ok && env.failed() {
				return deskerrors.NewApplicationError(OpListSessions, env.Error).WithStatus(resp.StatusCode)
			}
			return malformed(OpListSessions, resp.StatusCode, err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	if out == nil {
		out = []session.Session{}
	}
	return out, nil
}

// DeleteSession deletes the session with the given id.
func (c *Client) DeleteSession(ctx context.Context, id int) error {
	return c.call(ctx, OpDeleteSession, http.MethodDelete, fmt.Sprintf("/delete_session/%d", id), "", nil, func(resp *http.Response, log *logging.Logger) error {
		return decodeEnvelope(OpDeleteSession, resp, nil)
	})
}

// call sends one request and hands the response to handle. It owns
// request ids, logging, and conversion of network failures.
func (c *Client) call(ctx context.Context, op, method, path, contentType string, body io.Reader, handle func(*http.Response, *logging.Logger) error) error {
	requestID := uuid.NewString()
	log := c.logger.WithOperation(op).With("request_id", requestID)

	if err := c.identify(ctx, op, requestID); err != nil {
		log.Warn("request failed", "kind", deskerrors.KindOf(err).String(), "error", err.Error())
		return err
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path), body)
	if err != nil {
		return deskerrors.NewTransportError(op, err).WithMessage("failed to create request")
	}
	req.Header.Set(RequestIDHeader, requestID)
	req.Header.Set("Accept", "application/json")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}

	log.Debug("request started", "method", method, "path", path)
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		log.Warn("request failed", "error", err.Error(), "duration_ms", time.Since(start).Milliseconds())
		return deskerrors.NewTransportError(op, err)
	}
	defer func() { _ = resp.Body.Close() }()

	err = handle(resp, log)
	attrs := []any{"status", resp.StatusCode, "duration_ms", time.Since(start).Milliseconds()}
	if err != nil {
		log.Warn("request failed", append(attrs, "kind", deskerrors.KindOf(err).String(), "error", err.Error())...)
		return err
	}
	log.Info("request completed", attrs...)
	return nil
}

// identify fetches the index route once so the cookie jar holds the
// backend's user id. A failed attempt is retried on the next call.
func (c *Client) identify(ctx context.Context, op, requestID string) error {
	c.identityMu.Lock()
	defer c.identityMu.Unlock()
	if c.identified {
		return nil
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.endpoint("/"), nil)
	if err != nil {
		return deskerrors.NewTransportError(op, err).WithMessage("failed to create request")
	}
	req.Header.Set(RequestIDHeader, requestID)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return deskerrors.NewTransportError(op, err).WithMessage("failed to establish backend session")
	}
	defer func() { _ = resp.Body.Close() }()
	_, _ = io.Copy(io.Discard, resp.Body)

	if !isSuccess(resp.StatusCode) {
		return deskerrors.NewTransportError(op, deskerrors.ErrUnexpectedStatus).
			WithStatus(resp.StatusCode).
			WithMessage("failed to establish backend session")
	}
	c.identified = true
	return nil
}

func (c *Client) endpoint(path string) string {
	return c.baseURL.String() + path
}
