package auth

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	apperrors "usercontacts/internal/errors"
	"usercontacts/internal/model"
)

const (
	// ContextKeyToken is where echo-jwt stores the parsed *jwt.Token.
	ContextKeyToken = "user"
	contextKeyUser  = "currentUser"
)

// UserFinder resolves a user by primary key.
type UserFinder interface {
	GetUser(ctx context.Context, id uint) (*model.User, error)
}

// JWTMiddleware extracts the bearer token and verifies it with jwtService.
// Any failure, including a missing header, is answered with 401.
func JWTMiddleware(jwtService *JWTService) echo.MiddlewareFunc {
	return echojwt.WithConfig(echojwt.Config{
		ContextKey:  ContextKeyToken,
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ParseTokenFunc: func(c echo.Context, auth string) (interface{}, error) {
			return jwtService.ParseToken(auth)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return unauthorized("Unauthorized")
		},
	})
}

// RequireUser must run after JWTMiddleware. It loads the user named by the token and
// rejects tokens that were revoked by logout.
func RequireUser(users UserFinder, store TokenStoreInterface) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get(ContextKeyToken).(*jwt.Token)
			if !ok {
				return unauthorized("Unauthorized")
			}
			claims, ok := token.Claims.(*Claims)
			if !ok {
				return unauthorized("Unauthorized")
			}

			ctx := c.Request().Context()
			user, err := users.GetUser(ctx, claims.UserID)
			if err != nil {
				if errors.Is(err, apperrors.ErrUserNotFound) {
					return unauthorized("Unauthorized")
				}
				return internalError(err)
			}

			if token.Raw == "" {
				return unauthorized("Missing token.")
			}
			revoked, err := store.IsBlacklisted(ctx, token.Raw)
			if err != nil {
				return internalError(err)
			}
			if revoked {
				return unauthorized("Token invalid.")
			}

			c.Set(contextKeyUser, user)
			return next(c)
		}
	}
}

// CurrentUser returns the user stored by RequireUser.
func CurrentUser(c echo.Context) (*model.User, bool) {
	user, ok := c.Get(contextKeyUser).(*model.User)
	return user, ok
}

// CurrentToken returns the raw bearer token and its expiry.
func CurrentToken(c echo.Context) (string, time.Time, bool) {
	token, ok := c.Get(ContextKeyToken).(*jwt.Token)
	if !ok {
		return "", time.Time{}, false
	}
	claims, ok := token.Claims.(*Claims)
	if !ok || claims.ExpiresAt == nil {
		return "", time.Time{}, false
	}
	return token.Raw, claims.ExpiresAt.Time, true
}

func unauthorized(message string) error {
	return echo.NewHTTPError(http.StatusUnauthorized, apperrors.Failure(http.StatusUnauthorized, message))
}

func internalError(err error) error {
	return echo.NewHTTPError(http.StatusInternalServerError, apperrors.Envelope{
		Status:  "error",
		Code:    http.StatusInternalServerError,
		Message: "Internal server error",
		Data:    err.Error(),
	})
}
