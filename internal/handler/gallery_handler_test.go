package handler

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	apperrors "usercontacts/internal/errors"
	"usercontacts/internal/storage"
)

type brokenStore struct {
	err error
}

func (s brokenStore) Save(context.Context, string, io.Reader) error { return s.err }

func (s brokenStore) List(context.Context) ([]string, error) { return nil, s.err }

func (s brokenStore) Delete(context.Context, string) error { return s.err }

func (s brokenStore) Open(context.Context, string) (io.ReadCloser, storage.ObjectInfo, error) {
	return nil, storage.ObjectInfo{}, s.err
}

func serve(e *echo.Echo, method, path string) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(method, path, nil))
	return rec
}

func TestGalleryHandler_StoreFailures(t *testing.T) {
	h := NewGalleryHandler(brokenStore{err: errors.New("permission denied")}, zap.NewNop())
	e := echo.New()
	e.GET("/gallery", h.Gallery)
	e.DELETE("/delete/:filename", h.Delete)
	e.GET("/uploads/:name", h.Serve)

	rec := serve(e, http.MethodGet, "/gallery")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"message":"Error on reading files"}`, rec.Body.String())

	rec = serve(e, http.MethodDelete, "/delete/a.png")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"message":"Error on deleting file"}`, rec.Body.String())

	rec = serve(e, http.MethodGet, "/uploads/a.png")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestGalleryHandler_MissingFile(t *testing.T) {
	h := NewGalleryHandler(brokenStore{err: apperrors.ErrFileNotFound}, zap.NewNop())
	e := echo.New()
	e.DELETE("/delete/:filename", h.Delete)
	e.GET("/uploads/:name", h.Serve)

	rec := serve(e, http.MethodDelete, "/delete/a.png")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"message":"File not found"}`, rec.Body.String())

	rec = serve(e, http.MethodGet, "/uploads/a.png")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestParseID(t *testing.T) {
	e := echo.New()
	for _, tc := range []struct {
		raw  string
		want uint
		ok   bool
	}{
		{"7", 7, true},
		{"0", 0, false},
		{"-1", 0, false},
		{"abc", 0, false},
	} {
		c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())
		c.SetParamNames("id")
		c.SetParamValues(tc.raw)

		id, err := parseID(c, "id")
		if tc.ok {
			assert.NoError(t, err, tc.raw)
			assert.Equal(t, tc.want, id)
			continue
		}
		var he *echo.HTTPError
		if assert.True(t, errors.As(err, &he), tc.raw) {
			assert.Equal(t, http.StatusBadRequest, he.Code)
			assert.Equal(t, apperrors.ErrorResponse{Error: "invalid id"}, he.Message)
		}
	}
}

func TestUserRequest_ToPatchKeepsNil(t *testing.T) {
	name := "x"
	patch := UserRequest{FirstName: &name}.toPatch()
	assert.Nil(t, patch.Username)
	assert.Nil(t, patch.Password)
	assert.Equal(t, "x", *patch.FirstName)

	user := UserRequest{Username: &name}.toUser()
	assert.Equal(t, "x", user.Username)
	assert.Empty(t, user.FavouriteColor)
}
