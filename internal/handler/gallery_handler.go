package handler

import (
	stderrors "errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"usercontacts/internal/errors"
	"usercontacts/internal/storage"
)

// UploadField is the multipart field carrying the uploaded file.
const UploadField = "picture"

// GalleryHandler handles file upload endpoints.
type GalleryHandler struct {
	store storage.Store
	log   *zap.Logger
	now   func() time.Time
}

// NewGalleryHandler creates a new gallery handler.
func NewGalleryHandler(store storage.Store, log *zap.Logger) *GalleryHandler {
	return &GalleryHandler{store: store, log: log, now: time.Now}
}

// UploadResponse is returned after a successful upload.
type UploadResponse struct {
	Message string `json:"message"`
	File    string `json:"file"`
}

// Upload godoc
// @Summary Upload a picture
// @Tags gallery
// @Accept multipart/form-data
// @Produce json
// @Param picture formData file true "File to upload"
// @Success 200 {object} UploadResponse
// @Failure 400 {object} errors.MessageResponse
// @Failure 500 {object} errors.MessageResponse
// @Router /upload [post]
func (h *GalleryHandler) Upload(c echo.Context) error {
	fh, err := c.FormFile(UploadField)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "No file uploaded")
	}
	src, err := fh.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "No file uploaded")
	}
	defer src.Close()

	name := storage.UniqueName(fh.Filename, h.now())
	if err := h.store.Save(c.Request().Context(), name, src); err != nil {
		h.log.Error("upload failed", zap.String("file", name), zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "Error on uploading file")
	}

	return c.JSON(http.StatusOK, UploadResponse{Message: "File successfully uploaded", File: name})
}

// Gallery godoc
// @Summary List uploaded files
// @Tags gallery
// @Produce json
// @Success 200 {array} string
// @Failure 500 {object} errors.MessageResponse
// @Router /gallery [get]
func (h *GalleryHandler) Gallery(c echo.Context) error {
	names, err := h.store.List(c.Request().Context())
	if err != nil {
		h.log.Error("list uploads failed", zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "Error on reading files")
	}
	return c.JSON(http.StatusOK, names)
}

// Delete godoc
// @Summary Delete an uploaded file
// @Tags gallery
// @Produce json
// @Param filename path string true "Stored file name"
// @Success 200 {object} errors.MessageResponse
// @Failure 404 {object} errors.MessageResponse
// @Failure 500 {object} errors.MessageResponse
// @Router /delete/{filename} [delete]
func (h *GalleryHandler) Delete(c echo.Context) error {
	name := c.Param("filename")
	if err := h.store.Delete(c.Request().Context(), name); err != nil {
		if stderrors.Is(err, errors.ErrFileNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, errors.ErrFileNotFound.Error())
		}
		h.log.Error("delete upload failed", zap.String("file", name), zap.Error(err))
		return echo.NewHTTPError(http.StatusInternalServerError, "Error on deleting file")
	}
	return c.JSON(http.StatusOK, errors.MessageResponse{Message: "File successfully deleted"})
}

// Serve streams a stored file. Used when uploads do not live on the local disk.
func (h *GalleryHandler) Serve(c echo.Context) error {
	rc, info, err := h.store.Open(c.Request().Context(), c.Param("name"))
	if err != nil {
		if stderrors.Is(err, errors.ErrFileNotFound) {
			return echo.NewHTTPError(http.StatusNotFound, errors.ErrFileNotFound.Error())
		}
		return echo.NewHTTPError(http.StatusInternalServerError, "Error on reading files")
	}
	defer rc.Close()
	return c.Stream(http.StatusOK, info.ContentType, rc)
}
