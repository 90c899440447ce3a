// Package apierror provides standardized error response structures for the API.
// All errors returned to clients go through this package to ensure consistency
// and to prevent leaking internal details (stack traces, DB errors, etc.).
package apierror

import (
	"errors"
	"net/http"
	"strings"
)

// APIError is the canonical error envelope for all 4xx/5xx HTTP responses.
type APIError struct {
	Detail string `json:"detail"`
}

func New(msg string) *APIError {
	return &APIError{Detail: msg}
}

// Validation wraps multiple field errors.
type ValidationError struct {
	Detail string            `json:"detail"`
	Fields map[string]string `json:"fields,omitempty"`
}

func NewValidation(detail string, fields map[string]string) *ValidationError {
	return &ValidationError{Detail: detail, Fields: fields}
}

// ── Domain errors ─────────────────────────────────────────────────────────────

// Kind classifies a domain error; it decides the HTTP status at the boundary.
type Kind int

const (
	KindValidation Kind = iota + 1
	KindNotFound
	KindConflict
	KindDependency
)

// Error is returned by services for every failure the caller can act on.
// Anything that is not an *Error is treated as an internal fault.
type Error struct {
	Kind   Kind
	Msg    string
	Fields map[string]string
}

func (e *Error) Error() string { return e.Msg }

func Validation(msg string) *Error { return &Error{Kind: KindValidation, Msg: msg} }

// MissingFields builds a validation error naming the absent fields the way the
// forms label them: "Nome, CNPJ e E-mail são obrigatórios".
func MissingFields(labels ...string) *Error {
	fields := make(map[string]string, len(labels))
	for _, l := range labels {
		fields[l] = "required"
	}
	verb := "é obrigatório"
	if len(labels) > 1 {
		verb = "são obrigatórios"
	}
	return &Error{Kind: KindValidation, Msg: JoinLabels(labels) + " " + verb, Fields: fields}
}

func NotFound(msg string) *Error   { return &Error{Kind: KindNotFound, Msg: msg} }
func Conflict(msg string) *Error   { return &Error{Kind: KindConflict, Msg: msg} }
func Dependency(msg string) *Error { return &Error{Kind: KindDependency, Msg: msg} }

// As extracts a domain error from err's chain.
func As(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

// IsKind reports whether err carries a domain error of the given kind.
func IsKind(err error, k Kind) bool {
	e, ok := As(err)
	return ok && e.Kind == k
}

// Status maps a domain error kind to its HTTP status code.
func (e *Error) Status() int {
	switch e.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindValidation, KindDependency:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// Body returns the JSON envelope for e.
func (e *Error) Body() any {
	if e.Kind == KindValidation {
		return NewValidation(e.Msg, e.Fields)
	}
	return New(e.Msg)
}

// JoinLabels renders ["A","B","C"] as "A, B e C".
func JoinLabels(labels []string) string {
	switch len(labels) {
	case 0:
		return ""
	case 1:
		return labels[0]
	}
	return strings.Join(labels[:len(labels)-1], ", ") + " e " + labels[len(labels)-1]
}
