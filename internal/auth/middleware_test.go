package auth

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "usercontacts/internal/errors"
	"usercontacts/internal/model"
)

type fakeUsers map[uint]*model.User

func (f fakeUsers) GetUser(_ context.Context, id uint) (*model.User, error) {
	if u, ok := f[id]; ok {
		return u, nil
	}
	return nil, apperrors.ErrUserNotFound
}

type fakeStore struct {
	revoked map[string]bool
	err     error
}

func (f *fakeStore) Blacklist(_ context.Context, token string, _ time.Time) error {
	f.revoked[token] = true
	return nil
}

func (f *fakeStore) IsBlacklisted(_ context.Context, token string) (bool, error) {
	return f.revoked[token], f.err
}

func newProtected(jwtService *JWTService, users UserFinder, store TokenStoreInterface) *echo.Echo {
	e := echo.New()
	e.GET("/me", func(c echo.Context) error {
		user, ok := CurrentUser(c)
		if !ok {
			return c.NoContent(http.StatusTeapot)
		}
		_, exp, ok := CurrentToken(c)
		if !ok || exp.IsZero() {
			return c.NoContent(http.StatusTeapot)
		}
		return c.String(http.StatusOK, user.Username)
	}, JWTMiddleware(jwtService), RequireUser(users, store))
	return e
}

func call(e *echo.Echo, header string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/me", nil)
	if header != "" {
		req.Header.Set(echo.HeaderAuthorization, header)
	}
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func TestMiddleware(t *testing.T) {
	jwtService := NewJWTService("secret")
	users := fakeUsers{1: {ID: 1, Username: "ion"}}

	valid, err := jwtService.GenerateAccessToken(1, "ion")
	require.NoError(t, err)
	ghost, err := jwtService.GenerateAccessToken(2, "ghost")
	require.NoError(t, err)
	revoked, err := jwtService.GenerateAccessToken(1, "ion")
	require.NoError(t, err)
	foreign, err := NewJWTService("other").GenerateAccessToken(1, "ion")
	require.NoError(t, err)

	store := &fakeStore{revoked: map[string]bool{revoked: true}}
	e := newProtected(jwtService, users, store)

	tests := []struct {
		name        string
		header      string
		wantStatus  int
		wantMessage string
	}{
		{"valid token", "Bearer " + valid, http.StatusOK, ""},
		{"missing header", "", http.StatusUnauthorized, "Unauthorized"},
		{"wrong scheme", "Basic " + valid, http.StatusUnauthorized, "Unauthorized"},
		{"bad signature", "Bearer " + foreign, http.StatusUnauthorized, "Unauthorized"},
		{"garbage", "Bearer not.a.jwt", http.StatusUnauthorized, "Unauthorized"},
		{"user gone", "Bearer " + ghost, http.StatusUnauthorized, "Unauthorized"},
		{"blacklisted", "Bearer " + revoked, http.StatusUnauthorized, "Token invalid."},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := call(e, tt.header)
			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.wantStatus == http.StatusOK {
				assert.Equal(t, "ion", rec.Body.String())
				return
			}
			assert.Contains(t, rec.Body.String(), `"message":"`+tt.wantMessage+`"`)
			assert.Contains(t, rec.Body.String(), `"code":401`)
		})
	}
}

func TestMiddleware_StoreFailureIs500(t *testing.T) {
	jwtService := NewJWTService("secret")
	token, err := jwtService.GenerateAccessToken(1, "ion")
	require.NoError(t, err)

	store := &fakeStore{revoked: map[string]bool{}, err: errors.New("db down")}
	e := newProtected(jwtService, fakeUsers{1: {ID: 1, Username: "ion"}}, store)

	rec := call(e, "Bearer "+token)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Contains(t, rec.Body.String(), "db down")
}
