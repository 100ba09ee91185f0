package notify

import (
	"fmt"

	deskerrors "github.com/Iron-Ham/rfpdesk/internal/errors"
)

// genericFailure is shown when neither the error nor the caller provides text.
const genericFailure = "Something went wrong"

// Message returns the text shown to the user for err.
//
// Validation and application messages are shown verbatim. An application
// error without a message falls back to fallback (or a generic text).
// Transport errors show the raw cause, or the status text when the
// cause is only a status or decoding sentinel.
func Message(err error, fallback string) string {
	if fallback == "" {
		fallback = genericFailure
	}
	if err == nil {
		return fallback
	}

	var validation *deskerrors.ValidationError
	if deskerrors.As(err, &validation) {
		if msg := validation.Message(); msg != "" {
			return msg
		}
		return fallback
	}

	var app *deskerrors.ApplicationError
	if deskerrors.As(err, &app) {
		if msg := app.Message(); msg != "" {
			return msg
		}
		return fallback
	}

	var transport *deskerrors.TransportError
	if deskerrors.As(err, &transport) {
		cause := deskerrors.Unwrap(transport)
		if cause == nil ||
			deskerrors.Is(cause, deskerrors.ErrUnexpectedStatus) ||
			deskerrors.Is(cause, deskerrors.ErrMalformedResponse) {
			return fmt.Sprintf("Network error: %s", transport.Message())
		}
		return fmt.Sprintf("Network error: %v", cause)
	}

	return err.Error()
}
