package errors

import (
	"errors"
	"net/http"
	"strings"
)

var (
	// ErrUserNotFound is returned when a user id does not exist.
	ErrUserNotFound = errors.New("User not found")
	// ErrContactNotFound is returned when a contact id does not exist.
	ErrContactNotFound = errors.New("Contact not found")
	// ErrFileNotFound is returned when an uploaded file does not exist.
	ErrFileNotFound = errors.New("File not found")
)

// FieldError is a single failed rule on a single field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError carries every field message produced while validating or persisting an entity.
type ValidationError struct {
	Fields []FieldError
}

// NewValidationError builds a ValidationError for one field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}

func (e *ValidationError) Error() string {
	return strings.Join(e.Messages(), "; ")
}

// Messages returns the field messages in order.
func (e *ValidationError) Messages() []string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		msgs = append(msgs, f.Message)
	}
	return msgs
}

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

// ValidationErrorResponse lists field-level validation messages.
type ValidationErrorResponse struct {
	Errors []string `json:"errors"`
}

// MessageResponse is the plain {"message": ...} body.
type MessageResponse struct {
	Message string `json:"message"`
}

// Envelope is the status/code/message/data body used by the authentication routes.
type Envelope struct {
	Status  string      `json:"status"`
	Code    int         `json:"code"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
}

// Success wraps data in a success envelope.
func Success(code int, message string, data interface{}) Envelope {
	return Envelope{Status: "success", Code: code, Message: message, Data: data}
}

// Failure builds an error envelope; data defaults to the HTTP status text.
func Failure(code int, message string) Envelope {
	return Envelope{Status: "error", Code: code, Message: message, Data: http.StatusText(code)}
}

// HTTPError represents an HTTP error with status code.
type HTTPError struct {
	StatusCode int
	Message    string
	Code       string
	Fields     []string
}

func (e *HTTPError) Error() string {
	return e.Message
}

// NewHTTPError creates a new HTTP error.
func NewHTTPError(statusCode int, message, code string) *HTTPError {
	return &HTTPError{
		StatusCode: statusCode,
		Message:    message,
		Code:       code,
	}
}

// ToResponse converts an HTTPError to the JSON body clients receive.
func (e *HTTPError) ToResponse() interface{} {
	if e.Fields != nil {
		return ValidationErrorResponse{Errors: e.Fields}
	}
	return ErrorResponse{
		Error: e.Message,
		Code:  e.Code,
	}
}

// MapErrorToHTTP maps domain errors to HTTP errors. Unknown errors become a 500 that
// carries the raw message.
func MapErrorToHTTP(err error) *HTTPError {
	var verr *ValidationError
	switch {
	case errors.As(err, &verr):
		httpErr := NewHTTPError(http.StatusBadRequest, verr.Error(), "VALIDATION_ERROR")
		httpErr.Fields = verr.Messages()
		return httpErr
	case errors.Is(err, ErrUserNotFound):
		return NewHTTPError(http.StatusNotFound, ErrUserNotFound.Error(), "")
	case errors.Is(err, ErrContactNotFound):
		return NewHTTPError(http.StatusNotFound, ErrContactNotFound.Error(), "")
	case errors.Is(err, ErrFileNotFound):
		return NewHTTPError(http.StatusNotFound, ErrFileNotFound.Error(), "")
	default:
		return NewHTTPError(http.StatusInternalServerError, err.Error(), "")
	}
}
