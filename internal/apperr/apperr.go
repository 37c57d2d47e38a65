package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind is the machine-readable classification of a request failure.
type Kind string

const (
	KindUnsupportedFormat  Kind = "unsupported_format"
	KindEmptyDocument      Kind = "empty_document"
	KindCorruptFile        Kind = "corrupt_file"
	KindInvalidQuestions   Kind = "invalid_questions"
	KindMissingFile        Kind = "missing_file"
	KindFileTooLarge       Kind = "file_too_large"
	KindEmbeddingProvider  Kind = "embedding_provider_error"
	KindGenerationProvider Kind = "generation_provider_error"
	KindInternal           Kind = "internal_error"
)

// Error carries a kind alongside the human-readable message and cause.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

// New creates an Error without an underlying cause.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Wrap attaches a kind and message to an underlying error.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// KindOf extracts the kind from an error chain, KindInternal if absent.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindInternal
}

// MessageOf extracts the message from an error chain, falling back to
// the plain error text.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// HTTPStatus maps a kind to its response class: bad input is a client
// error, upstream provider failure is a bad gateway.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindUnsupportedFormat, KindEmptyDocument, KindCorruptFile,
		KindInvalidQuestions, KindMissingFile, KindFileTooLarge:
		return http.StatusBadRequest
	case KindEmbeddingProvider, KindGenerationProvider:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
