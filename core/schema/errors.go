package schema

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorKind classifies request failures. Every kind maps to exactly one
// HTTP status.
type ErrorKind int

const (
	ErrorKindUnknown ErrorKind = iota
	ErrorKindValidation
	ErrorKindConversion
	ErrorKindInference
	ErrorKindUpstream
)

func (k ErrorKind) String() string {
	switch k {
	case ErrorKindValidation:
		return "validation"
	case ErrorKindConversion:
		return "conversion"
	case ErrorKindInference:
		return "inference"
	case ErrorKindUpstream:
		return "upstream"
	default:
		return "unknown"
	}
}

// StatusCode returns the HTTP status for the kind.
func (k ErrorKind) StatusCode() int {
	if k == ErrorKindValidation {
		return http.StatusBadRequest
	}
	return http.StatusInternalServerError
}

// Error is an error tagged with its kind.
type Error struct {
	Kind ErrorKind
	Err  error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Kind.String() + " error"
	}
	return e.Err.Error()
}

func (e *Error) Unwrap() error { return e.Err }

// Errorf formats an error of the given kind. %w verbs are honored.
func Errorf(kind ErrorKind, format string, args ...any) error {
	return &Error{Kind: kind, Err: fmt.Errorf(format, args...)}
}

// WrapError tags err with kind. A nil err stays nil.
func WrapError(kind ErrorKind, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Err: err}
}

// KindOf returns the kind of the outermost *Error in err's chain.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ErrorKindUnknown
}

// ErrorResponse is the JSON envelope written for every failed request.
type ErrorResponse struct {
	Error string `json:"error"`
}
