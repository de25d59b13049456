package function

import (
	"errors"
	"net/http"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/thebartekbanach/woundfn/pkg/config"
	"github.com/thebartekbanach/woundfn/pkg/input"
	"github.com/thebartekbanach/woundfn/pkg/provisioner"
)

type ErrorKind string

const (
	ValidationError    ErrorKind = "ValidationError"
	ConfigurationError ErrorKind = "ConfigurationError"
	DecodeError        ErrorKind = "DecodeError"
	FetchError         ErrorKind = "FetchError"
	ProvisionError     ErrorKind = "ProvisionError"
	ProcessingError    ErrorKind = "ProcessingError"
)

// Error is a failure already translated for the caller: Message and Status
// go into the response, Err stays server side.
type Error struct {
	Kind    ErrorKind
	Status  int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return string(e.Kind) + ": " + e.Message
	}
	return string(e.Kind) + ": " + e.Message + ": " + e.Err.Error()
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newValidationError(err error) *Error {
	message := "Invalid request body"
	switch {
	case errors.Is(err, input.ErrMissingImageData):
		message = "Missing required field: imageData"
	case errors.Is(err, input.ErrInvalidMetadata):
		message = capitalize(err.Error())
	}

	return &Error{ValidationError, http.StatusBadRequest, message, err}
}

func newConfigurationError(err error) *Error {
	var missing *config.MissingConfigurationError
	if errors.As(err, &missing) {
		return &Error{ConfigurationError, http.StatusInternalServerError, "Missing required configuration: " + missing.Key, err}
	}

	return &Error{ConfigurationError, http.StatusInternalServerError, "Invalid configuration: " + err.Error(), err}
}

// newResolveError splits input resolution failures into fetch and decode
// errors. Fetch failures never expose the storage error to the caller.
func newResolveError(err error) *Error {
	if errors.Is(err, input.ErrFetchFailed) {
		return &Error{FetchError, http.StatusInternalServerError, "Failed to fetch image", err}
	}

	cause := err
	var resolveErr *input.ResolveError
	if errors.As(err, &resolveErr) {
		cause = resolveErr.Cause
	}

	return &Error{DecodeError, http.StatusInternalServerError, "Failed to decode image: " + cause.Error(), err}
}

func newProvisionError(err error) *Error {
	if errors.Is(err, provisioner.ErrRepositoryNotAllowed) {
		return &Error{ProvisionError, http.StatusInternalServerError, "Repository not allowed", err}
	}

	return &Error{ProvisionError, http.StatusInternalServerError, "Repository cloning failed", err}
}

func newProcessingError(err error) *Error {
	return &Error{ProcessingError, http.StatusInternalServerError, "Image processing failed: " + err.Error(), err}
}

func capitalize(message string) string {
	message = strings.TrimSpace(message)
	r, size := utf8.DecodeRuneInString(message)
	if r == utf8.RuneError {
		return message
	}

	return string(unicode.ToUpper(r)) + message[size:]
}
