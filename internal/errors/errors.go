// Package errors provides the error taxonomy used across rfpdesk.
//
// Every failure the user can observe falls into one of three categories:
//
//   - ValidationError: rejected locally before any network call (bad file
//     type, oversized file, empty prompt). No state changes.
//   - TransportError: the request did not produce a usable answer (network
//     failure, non-OK status without an envelope, malformed JSON). The
//     operation is treated as not having happened.
//   - ApplicationError: the backend answered with success=false. The
//     backend's message is shown verbatim, or a per-operation fallback when
//     the backend sent none.
//
// NotFoundError covers lookups the client does itself, such as a session id
// given on the command line that is not in the list. None of these are
// retried automatically.
//
// # Usage
//
//	err := errors.NewValidationError("unsupported file type").
//		WithField("rfp_file").WithValue("notes.xls")
//
//	var appErr *errors.ApplicationError
//	if errors.As(err, &appErr) { ... }
//
//	switch errors.KindOf(err) { ... }
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Re-export standard library functions for convenience.
// This allows callers to import only this package for all error handling.
var (
	Is     = errors.Is
	As     = errors.As
	Unwrap = errors.Unwrap
	New    = errors.New
	Join   = errors.Join
)

// Kind classifies an error by where it came from.
type Kind int

const (
	// KindUnknown is any error that is not part of the taxonomy.
	KindUnknown Kind = iota
	KindValidation
	KindTransport
	KindApplication
	KindNotFound
)

var kindNames = map[Kind]string{
	KindUnknown:     "unknown",
	KindValidation:  "validation",
	KindTransport:   "transport",
	KindApplication: "application",
	KindNotFound:    "not_found",
}

// String returns the lowercase name used in log attributes.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// KindOf returns the kind of the first taxonomy error in err's chain.
func KindOf(err error) Kind {
	var k interface{ Kind() Kind }
	if err != nil && As(err, &k) {
		return k.Kind()
	}
	return KindUnknown
}

// Validation sentinels
var (
	// ErrInvalidInput indicates that input validation failed.
	ErrInvalidInput = New("invalid input")
	// ErrUnsupportedFileType indicates a file that is neither PDF, TXT nor DOCX.
	ErrUnsupportedFileType = New("unsupported file type")
	// ErrFileTooLarge indicates a file over the upload size limit.
	ErrFileTooLarge = New("file too large")
	// ErrEmptyPrompt indicates a generate request without prompt text.
	ErrEmptyPrompt = New("prompt is empty")
)

// Transport and backend sentinels
var (
	// ErrMalformedResponse indicates a response body that could not be decoded.
	ErrMalformedResponse = New("malformed response")
	// ErrUnexpectedStatus indicates a non-OK status without a readable envelope.
	ErrUnexpectedStatus = New("unexpected status")
	// ErrSessionNotFound indicates a session id that is not in the list.
	ErrSessionNotFound = New("session not found")
)

// detail is the part every taxonomy error shares: the text meant for the
// user and an optional cause.
type detail struct {
	message string
	cause   error
}

func (d *detail) Unwrap() error {
	return d.cause
}

// Message returns the bare message without cause or context.
func (d *detail) Message() string {
	return d.message
}

// render builds "<label> [k=v, ...]: <message>[: <cause>]".
func (d *detail) render(label string, context ...string) string {
	var b strings.Builder
	b.WriteString(label)
	if len(context) > 0 {
		b.WriteString(" [")
		b.WriteString(strings.Join(context, ", "))
		b.WriteString("]")
	}
	b.WriteString(": ")
	b.WriteString(d.message)
	if d.cause != nil {
		fmt.Fprintf(&b, ": %v", d.cause)
	}
	return b.String()
}

// ValidationError represents input rejected before any network call.
//
// Example:
//
//	err := errors.NewValidationError("please select a PDF, TXT or DOCX file").
//		WithField("rfp_file").WithValue("budget.xlsx").WithCause(errors.ErrUnsupportedFileType)
type ValidationError struct {
	detail
	Field string
	Value any
}

// NewValidationError creates a new ValidationError.
func NewValidationError(message string) *ValidationError {
	return &ValidationError{detail: detail{message: message}}
}

// WithField adds a field name to the error context.
func (e *ValidationError) WithField(field string) *ValidationError {
	e.Field = field
	return e
}

// WithValue adds the invalid value to the error context.
func (e *ValidationError) WithValue(value any) *ValidationError {
	e.Value = value
	return e
}

// WithCause adds a cause to the error.
func (e *ValidationError) WithCause(cause error) *ValidationError {
	e.cause = cause
	return e
}

func (e *ValidationError) Kind() Kind { return KindValidation }

func (e *ValidationError) Error() string {
	var context []string
	if e.Field != "" {
		context = append(context, "field="+e.Field)
	}
	if e.Value != nil {
		context = append(context, fmt.Sprintf("value=%v", e.Value))
	}
	return e.render("validation error", context...)
}

// Is matches any *ValidationError, ErrInvalidInput, or the cause.
func (e *ValidationError) Is(target error) bool {
	if _, ok := target.(*ValidationError); ok {
		return true
	}
	return target == ErrInvalidInput || (e.cause != nil && errors.Is(e.cause, target))
}

// TransportError represents a request that never produced a usable answer.
//
// Example:
//
//	err := errors.NewTransportError("upload_rfp", netErr).WithStatus(502)
//	fmt.Println(err) // "transport error [op=upload_rfp, status=502]: request failed: dial tcp ..."
type TransportError struct {
	detail
	Operation  string
	StatusCode int
}

// NewTransportError creates a new TransportError for the named operation.
func NewTransportError(operation string, cause error) *TransportError {
	return &TransportError{
		detail:    detail{message: "request failed", cause: cause},
		Operation: operation,
	}
}

// WithStatus records the HTTP status code that was received.
func (e *TransportError) WithStatus(code int) *TransportError {
	e.StatusCode = code
	return e
}

// WithMessage replaces the default "request failed" message.
func (e *TransportError) WithMessage(message string) *TransportError {
	e.message = message
	return e
}

func (e *TransportError) Kind() Kind { return KindTransport }

func (e *TransportError) Error() string {
	var context []string
	if e.Operation != "" {
		context = append(context, "op="+e.Operation)
	}
	if e.StatusCode != 0 {
		context = append(context, fmt.Sprintf("status=%d", e.StatusCode))
	}
	return e.render("transport error", context...)
}

// Is matches any *TransportError or the cause.
func (e *TransportError) Is(target error) bool {
	if _, ok := target.(*TransportError); ok {
		return true
	}
	return e.cause != nil && errors.Is(e.cause, target)
}

// ApplicationError represents a backend answer with success=false.
//
// Example:
//
//	err := errors.NewApplicationError("upload_org", "Please upload RFP file first")
type ApplicationError struct {
	detail
	Operation  string
	StatusCode int
}

// NewApplicationError creates a new ApplicationError. The message is the
// backend's error text and may be empty.
func NewApplicationError(operation, message string) *ApplicationError {
	return &ApplicationError{detail: detail{message: message}, Operation: operation}
}

// WithStatus records the HTTP status code that carried the envelope.
func (e *ApplicationError) WithStatus(code int) *ApplicationError {
	e.StatusCode = code
	return e
}

func (e *ApplicationError) Kind() Kind { return KindApplication }

func (e *ApplicationError) Error() string {
	msg := e.message
	if msg == "" {
		msg = "backend reported failure"
	}
	if e.Operation != "" {
		return fmt.Sprintf("application error [op=%s]: %s", e.Operation, msg)
	}
	return "application error: " + msg
}

// Is matches any *ApplicationError.
func (e *ApplicationError) Is(target error) bool {
	_, ok := target.(*ApplicationError)
	return ok
}

// NotFoundError represents a resource that could not be found.
//
// Example:
//
//	err := errors.NewNotFoundError("session", "7")
//	fmt.Println(err) // "session '7' not found"
type NotFoundError struct {
	detail
	ResourceType string
	ResourceID   string
}

// NewNotFoundError creates a new NotFoundError.
func NewNotFoundError(resourceType, resourceID string) *NotFoundError {
	return &NotFoundError{
		detail:       detail{message: fmt.Sprintf("%s '%s' not found", resourceType, resourceID)},
		ResourceType: resourceType,
		ResourceID:   resourceID,
	}
}

func (e *NotFoundError) Kind() Kind { return KindNotFound }

func (e *NotFoundError) Error() string {
	return e.message
}

// Is matches any *NotFoundError, and ErrSessionNotFound for sessions.
func (e *NotFoundError) Is(target error) bool {
	if _, ok := target.(*NotFoundError); ok {
		return true
	}
	return e.ResourceType == "session" && target == ErrSessionNotFound
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool { return KindOf(err) == KindValidation }

// IsTransport reports whether err is a TransportError.
func IsTransport(err error) bool { return KindOf(err) == KindTransport }

// IsApplication reports whether err is an ApplicationError.
func IsApplication(err error) bool { return KindOf(err) == KindApplication }

// Wrap wraps an error with additional context message.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}
