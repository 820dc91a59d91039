package errx

import (
	"fmt"
	"net/http"
)

// Type classifies an error for transport mapping and logging
type Type string

const (
	TypeValidation    Type = "VALIDATION"
	TypeNotFound      Type = "NOT_FOUND"
	TypeConflict      Type = "CONFLICT"
	TypeAuthorization Type = "AUTHORIZATION"
	TypeBusiness      Type = "BUSINESS"
	TypeInternal      Type = "INTERNAL"
	TypeExternal      Type = "EXTERNAL"
)

// Code is a registered error code with its default presentation
type Code struct {
	Key        string
	Type       Type
	HTTPStatus int
	Message    string
}

// Registry namespaces error codes per domain (e.g. "REPORT", "TXM")
type Registry struct {
	prefix string
	codes  map[string]Code
}

// NewRegistry creates a registry whose codes are exposed as PREFIX_CODE
func NewRegistry(prefix string) *Registry {
	return &Registry{
		prefix: prefix,
		codes:  make(map[string]Code),
	}
}

// Register adds a new code to the registry and returns it
func (r *Registry) Register(key string, t Type, httpStatus int, message string) Code {
	code := Code{
		Key:        r.prefix + "_" + key,
		Type:       t,
		HTTPStatus: httpStatus,
		Message:    message,
	}
	r.codes[key] = code
	return code
}

// New creates an error for a registered code
func (r *Registry) New(code Code) *Error {
	return &Error{
		Code:       code.Key,
		Type:       code.Type,
		Message:    code.Message,
		HTTPStatus: code.HTTPStatus,
	}
}

// NewWithCause creates an error for a registered code keeping the underlying cause
func (r *Registry) NewWithCause(code Code, cause error) *Error {
	e := r.New(code)
	e.cause = cause
	return e
}

// Error is the single error type that crosses component boundaries
type Error struct {
	Code       string         `json:"code"`
	Type       Type           `json:"type"`
	Message    string         `json:"message"`
	HTTPStatus int            `json:"-"`
	Details    map[string]any `json:"details,omitempty"`

	cause error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap exposes the cause to errors.Is / errors.As
func (e *Error) Unwrap() error {
	return e.cause
}

// Cause returns the underlying error, if any
func (e *Error) Cause() error {
	return e.cause
}

// WithDetail attaches a key/value pair for diagnostics and API responses
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// WithCause attaches the underlying error
func (e *Error) WithCause(cause error) *Error {
	e.cause = cause
	return e
}

// ToHTTPResponse renders the error as a response body
func (e *Error) ToHTTPResponse() map[string]any {
	resp := map[string]any{
		"code":    e.Code,
		"type":    e.Type,
		"message": e.Message,
	}
	if len(e.Details) > 0 {
		resp["details"] = e.Details
	}
	return resp
}

// Wrap converts an arbitrary error into an *Error with the given type
func Wrap(err error, message string, t Type) *Error {
	status := http.StatusInternalServerError
	switch t {
	case TypeValidation:
		status = http.StatusBadRequest
	case TypeNotFound:
		status = http.StatusNotFound
	case TypeConflict:
		status = http.StatusConflict
	case TypeAuthorization:
		status = http.StatusForbidden
	case TypeExternal:
		status = http.StatusBadGateway
	}

	return &Error{
		Code:       string(t) + "_ERROR",
		Type:       t,
		Message:    message,
		HTTPStatus: status,
		cause:      err,
	}
}

// IsType reports whether err is an *Error of the given type
func IsType(err error, t Type) bool {
	e, ok := err.(*Error)
	return ok && e.Type == t
}
