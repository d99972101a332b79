package handler

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"usercontacts/internal/auth"
	"usercontacts/internal/errors"
	"usercontacts/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisteredUser is the public part of a newly registered user.
type RegisteredUser struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
}

// RegisterData is the data of a successful registration envelope.
type RegisterData struct {
	Message string         `json:"message"`
	User    RegisteredUser `json:"user"`
}

// TokenData is the data of a successful login envelope.
type TokenData struct {
	Token string `json:"token"`
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} errors.Envelope{data=RegisterData}
// @Failure 400 {object} errors.Envelope
// @Failure 409 {object} errors.Envelope
// @Failure 500 {object} errors.Envelope
// @Router /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.Failure(http.StatusBadRequest, "Invalid request body"))
	}

	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.Failure(http.StatusBadRequest, service.ErrMissingCredentials.Error()))
	}

	user, err := h.authService.Register(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case stderrors.Is(err, service.ErrUserAlreadyExists):
			return echo.NewHTTPError(http.StatusConflict, errors.Failure(http.StatusConflict, err.Error()))
		case stderrors.Is(err, service.ErrMissingCredentials):
			return echo.NewHTTPError(http.StatusBadRequest, errors.Failure(http.StatusBadRequest, err.Error()))
		}
		return echo.NewHTTPError(http.StatusInternalServerError, errors.Failure(http.StatusInternalServerError, err.Error()))
	}

	return c.JSON(http.StatusCreated, errors.Success(http.StatusCreated, "", RegisterData{
		Message: "Registration successful",
		User:    RegisteredUser{ID: user.ID, Username: user.Username},
	}))
}

// Login godoc
// @Summary Login user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} errors.Envelope{data=TokenData}
// @Failure 400 {object} errors.Envelope
// @Failure 500 {object} errors.Envelope
// @Router /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, errors.Failure(http.StatusBadRequest, "Invalid request body"))
	}

	token, _, err := h.authService.Login(c.Request().Context(), req.Username, req.Password)
	if err != nil {
		if stderrors.Is(err, service.ErrInvalidCredentials) {
			body := errors.Failure(http.StatusBadRequest, err.Error())
			body.Data = "Bad request"
			return echo.NewHTTPError(http.StatusBadRequest, body)
		}
		return echo.NewHTTPError(http.StatusInternalServerError, errors.Failure(http.StatusInternalServerError, err.Error()))
	}

	return c.JSON(http.StatusOK, errors.Success(http.StatusOK, "", TokenData{Token: token}))
}

// List godoc
// @Summary Check authorisation
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} errors.Envelope{data=errors.MessageResponse}
// @Failure 401 {object} errors.Envelope
// @Router /list [get]
func (h *AuthHandler) List(c echo.Context) error {
	user, ok := auth.CurrentUser(c)
	if !ok {
		return echo.NewHTTPError(http.StatusUnauthorized, errors.Failure(http.StatusUnauthorized, "Unauthorized"))
	}
	return c.JSON(http.StatusOK, errors.Success(http.StatusOK, "", errors.MessageResponse{
		Message: fmt.Sprintf("Authorisation was successful: %s", user.Username),
	}))
}

// Logout godoc
// @Summary Logout user
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} errors.Envelope
// @Failure 401 {object} errors.Envelope
// @Failure 500 {object} errors.ErrorResponse
// @Router /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	token, expiresAt, ok := auth.CurrentToken(c)
	if !ok {
		return echo.NewHTTPError(http.StatusBadRequest, errors.MessageResponse{Message: "Missing token"})
	}

	if err := h.authService.Logout(c.Request().Context(), token, expiresAt); err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{Error: err.Error()})
	}

	return c.JSON(http.StatusOK, errors.Success(http.StatusOK, "Logout successful, token invalidated", nil))
}
