package errors

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestKind_String(t *testing.T) {
	tests := []struct {
		kind Kind
		want string
	}{
		{KindUnknown, "unknown"},
		{KindValidation, "validation"},
		{KindTransport, "transport"},
		{KindApplication, "application"},
		{KindNotFound, "not_found"},
		{Kind(99), "kind(99)"},
	}

	for _, tt := range tests {
		t.Run(tt.want, func(t *testing.T) {
			if got := tt.kind.String(); got != tt.want {
				t.Errorf("Kind.String() = %q, want %q", got, tt.want)
			}
		})
	}
}

// -----------------------------------------------------------------------------
// ValidationError Tests
// -----------------------------------------------------------------------------

func TestValidationError(t *testing.T) {
	err := NewValidationError("unsupported file").
		WithField("rfp_file").
		WithValue("budget.xlsx").
		WithCause(ErrUnsupportedFileType)

	want := "validation error [field=rfp_file, value=budget.xlsx]: unsupported file: unsupported file type"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}
	if err.Message() != "unsupported file" {
		t.Errorf("Message() = %q", err.Message())
	}
	if KindOf(err) != KindValidation {
		t.Errorf("KindOf() = %v, want validation", KindOf(err))
	}
	if !Is(err, ErrInvalidInput) {
		t.Error("ValidationError should match ErrInvalidInput")
	}
	if !Is(err, ErrUnsupportedFileType) {
		t.Error("ValidationError should match its cause")
	}
	if Is(err, ErrFileTooLarge) {
		t.Error("ValidationError should not match unrelated sentinel")
	}
}

func TestValidationError_NoContext(t *testing.T) {
	err := NewValidationError("prompt is required")
	if err.Error() != "validation error: prompt is required" {
		t.Errorf("Error() = %q", err.Error())
	}
}

// -----------------------------------------------------------------------------
// TransportError Tests
// -----------------------------------------------------------------------------

func TestTransportError(t *testing.T) {
	cause := fmt.Errorf("connection refused")
	err := NewTransportError("upload_rfp", cause).WithStatus(502)

	if !strings.Contains(err.Error(), "op=upload_rfp") {
		t.Errorf("Error() missing operation: %q", err.Error())
	}
	if !strings.Contains(err.Error(), "status=502") {
		t.Errorf("Error() missing status: %q", err.Error())
	}
	if !strings.Contains(err.Error(), "connection refused") {
		t.Errorf("Error() missing cause: %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("TransportError should unwrap to its cause")
	}
	if !IsTransport(Wrap(err, "outer")) {
		t.Error("IsTransport should see through wrapping")
	}
}

func TestTransportError_WithMessage(t *testing.T) {
	err := NewTransportError("get_sessions", ErrMalformedResponse).WithMessage("could not decode response")
	if !Is(err, ErrMalformedResponse) {
		t.Error("expected ErrMalformedResponse to match")
	}
	if err.Message() != "could not decode response" {
		t.Errorf("Message() = %q", err.Message())
	}
}

// -----------------------------------------------------------------------------
// ApplicationError Tests
// -----------------------------------------------------------------------------

func TestApplicationError(t *testing.T) {
	tests := []struct {
		name    string
		op      string
		message string
		want    string
	}{
		{"with message", "upload_org", "Please upload RFP file first", "application error [op=upload_org]: Please upload RFP file first"},
		{"empty message", "delete_session", "", "application error [op=delete_session]: backend reported failure"},
		{"no operation", "", "boom", "application error: boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewApplicationError(tt.op, tt.message)
			if got := err.Error(); got != tt.want {
				t.Errorf("Error() = %q, want %q", got, tt.want)
			}
			if !IsApplication(err) {
				t.Error("IsApplication() = false")
			}
			if IsTransport(err) || IsValidation(err) {
				t.Error("ApplicationError misclassified")
			}
		})
	}
}

// -----------------------------------------------------------------------------
// NotFoundError Tests
// -----------------------------------------------------------------------------

func TestNotFoundError(t *testing.T) {
	err := NewNotFoundError("session", "7")
	if err.Error() != "session '7' not found" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !Is(err, ErrSessionNotFound) {
		t.Error("session NotFoundError should match ErrSessionNotFound")
	}
	if Is(NewNotFoundError("file", "x"), ErrSessionNotFound) {
		t.Error("file NotFoundError should not match ErrSessionNotFound")
	}
}

// -----------------------------------------------------------------------------
// Classification Tests
// -----------------------------------------------------------------------------

func TestKindOf(t *testing.T) {
	plain := errors.New("plain")

	tests := []struct {
		name string
		err  error
		want Kind
	}{
		{"nil", nil, KindUnknown},
		{"plain", plain, KindUnknown},
		{"validation", NewValidationError("x"), KindValidation},
		{"transport", NewTransportError("op", plain), KindTransport},
		{"application", NewApplicationError("op", "x"), KindApplication},
		{"not found", NewNotFoundError("session", "1"), KindNotFound},
		{"wrapped transport", Wrap(NewTransportError("op", plain), "ctx"), KindTransport},
		{"joined", Join(plain, NewApplicationError("op", "x")), KindApplication},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := KindOf(tt.err); got != tt.want {
				t.Errorf("KindOf() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestWrap_Nil(t *testing.T) {
	if Wrap(nil, "x") != nil {
		t.Error("Wrap(nil) should be nil")
	}
}
