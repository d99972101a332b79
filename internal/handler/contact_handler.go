package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"usercontacts/internal/errors"
	"usercontacts/internal/model"
	"usercontacts/internal/service"
)

// ContactHandler handles contact endpoints.
type ContactHandler struct {
	svc service.ContactService
}

// NewContactHandler creates a new contact handler.
func NewContactHandler(svc service.ContactService) *ContactHandler {
	return &ContactHandler{svc: svc}
}

// ContactRequest is the body of contact create and update.
type ContactRequest struct {
	Email *string `json:"email"`
	Phone *string `json:"phone"`
}

func (r ContactRequest) toContact() *model.Contact {
	contact := &model.Contact{}
	if r.Email != nil {
		contact.Email = *r.Email
	}
	if r.Phone != nil {
		contact.Phone = *r.Phone
	}
	return contact
}

// AddContact godoc
// @Summary Add a contact to a user
// @Tags contacts
// @Accept json
// @Produce json
// @Param id path int true "User ID"
// @Param contact body ContactRequest true "Contact payload"
// @Success 201 {object} model.Contact
// @Failure 400 {object} errors.ValidationErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users/{id}/contacts [post]
func (h *ContactHandler) AddContact(c echo.Context) error {
	userID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req ContactRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}
	contact, err := h.svc.AddContact(c.Request().Context(), userID, req.toContact())
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusCreated, contact)
}

// ListContacts godoc
// @Summary List contacts with their owner
// @Tags contacts
// @Produce json
// @Success 200 {array} model.Contact
// @Failure 500 {object} errors.ErrorResponse
// @Router /contacts [get]
func (h *ContactHandler) ListContacts(c echo.Context) error {
	contacts, err := h.svc.ListContacts(c.Request().Context())
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, contacts)
}

// GetContact godoc
// @Summary Get contact by id
// @Tags contacts
// @Produce json
// @Param id path int true "Contact ID"
// @Success 200 {object} model.Contact
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /contacts/{id} [get]
func (h *ContactHandler) GetContact(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	contact, err := h.svc.GetContact(c.Request().Context(), id)
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, contact)
}

// UpdateContact godoc
// @Summary Update contact
// @Tags contacts
// @Accept json
// @Produce json
// @Param id path int true "Contact ID"
// @Param contact body ContactRequest true "Fields to change"
// @Success 200 {object} model.Contact
// @Failure 400 {object} errors.ValidationErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /contacts/{id} [put]
func (h *ContactHandler) UpdateContact(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	var req ContactRequest
	if err := c.Bind(&req); err != nil {
		return badRequest("invalid request body")
	}
	contact, err := h.svc.UpdateContact(c.Request().Context(), id, service.ContactPatch{Email: req.Email, Phone: req.Phone})
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, contact)
}

// DeleteContact godoc
// @Summary Delete contact
// @Tags contacts
// @Produce json
// @Param id path int true "Contact ID"
// @Success 200 {object} errors.MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /contacts/{id} [delete]
func (h *ContactHandler) DeleteContact(c echo.Context) error {
	id, err := parseID(c, "id")
	if err != nil {
		return err
	}
	if err := h.svc.DeleteContact(c.Request().Context(), id); err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, errors.MessageResponse{Message: "Contact deleted"})
}

// ListUserContacts godoc
// @Summary List a user's contacts
// @Tags contacts
// @Produce json
// @Param id path int true "User ID"
// @Success 200 {array} model.Contact
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /users/{id}/contacts [get]
func (h *ContactHandler) ListUserContacts(c echo.Context) error {
	userID, err := parseID(c, "id")
	if err != nil {
		return err
	}
	contacts, err := h.svc.ListUserContacts(c.Request().Context(), userID)
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, contacts)
}

// ContactsByUser godoc
// @Summary Contacts of a user joined with the owner's name
// @Tags contacts
// @Produce json
// @Param userId path int true "User ID"
// @Success 200 {array} model.ContactRow
// @Failure 400 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /raw/contacts-by-user/{userId} [get]
func (h *ContactHandler) ContactsByUser(c echo.Context) error {
	userID, err := parseID(c, "userId")
	if err != nil {
		return err
	}
	rows, err := h.svc.ContactsByUser(c.Request().Context(), userID)
	if err != nil {
		return errorResponse(err)
	}
	return c.JSON(http.StatusOK, rows)
}
