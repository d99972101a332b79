package service

import (
	"errors"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "usercontacts/internal/errors"
	"usercontacts/internal/model"
)

func TestValidateStruct_ContactMessages(t *testing.T) {
	v := validator.New()

	tests := []struct {
		name    string
		contact model.Contact
		want    []string
	}{
		{"valid", model.Contact{Email: "a@b.co", Phone: "0712345678"}, nil},
		{"bad email", model.Contact{Email: "nope", Phone: "0712345678"}, []string{"Invalid e-mail!"}},
		{"empty email", model.Contact{Email: "", Phone: "0712345678"}, []string{"E-mail cannot be null"}},
		{"short phone", model.Contact{Email: "a@b.co", Phone: "123456"}, []string{"Phone number must contain between 7 and 15 chars."}},
		{"long phone", model.Contact{Email: "a@b.co", Phone: "1234567890123456"}, []string{"Phone number must contain between 7 and 15 chars."}},
		{"empty phone", model.Contact{Email: "a@b.co", Phone: ""}, []string{"Phone number must contain only numbers."}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateStruct(v, &tt.contact)
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			var verr *apperrors.ValidationError
			require.True(t, errors.As(err, &verr))
			assert.Equal(t, tt.want, verr.Messages())
		})
	}
}

func TestMessageFor_Fallback(t *testing.T) {
	assert.Equal(t, "Nickname failed on the 'alpha' rule", messageFor("Nickname", "alpha"))
}
