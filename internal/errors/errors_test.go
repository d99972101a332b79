package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapErrorToHTTP(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantBody   interface{}
	}{
		{
			name:       "validation",
			err:        fmt.Errorf("create contact: %w", NewValidationError("email", "Invalid e-mail!")),
			wantStatus: http.StatusBadRequest,
			wantBody:   ValidationErrorResponse{Errors: []string{"Invalid e-mail!"}},
		},
		{
			name:       "user not found",
			err:        fmt.Errorf("get user: %w", ErrUserNotFound),
			wantStatus: http.StatusNotFound,
			wantBody:   ErrorResponse{Error: "User not found"},
		},
		{
			name:       "contact not found",
			err:        ErrContactNotFound,
			wantStatus: http.StatusNotFound,
			wantBody:   ErrorResponse{Error: "Contact not found"},
		},
		{
			name:       "internal keeps raw message",
			err:        errors.New("disk I/O error"),
			wantStatus: http.StatusInternalServerError,
			wantBody:   ErrorResponse{Error: "disk I/O error"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			httpErr := MapErrorToHTTP(tt.err)
			assert.Equal(t, tt.wantStatus, httpErr.StatusCode)
			assert.Equal(t, tt.wantBody, httpErr.ToResponse())
		})
	}
}

func TestValidationError_Error(t *testing.T) {
	verr := &ValidationError{Fields: []FieldError{
		{Field: "phone", Message: "Phone number must contain only numbers."},
		{Field: "phone", Message: "Phone number must contain between 7 and 15 chars."},
	}}
	assert.Equal(t, "Phone number must contain only numbers.; Phone number must contain between 7 and 15 chars.", verr.Error())
}

func TestFailure_DataIsStatusText(t *testing.T) {
	env := Failure(http.StatusConflict, "Username already in use")
	assert.Equal(t, "error", env.Status)
	assert.Equal(t, "Conflict", env.Data)
	assert.Equal(t, "Bad Request", Failure(http.StatusBadRequest, "x").Data)
}
