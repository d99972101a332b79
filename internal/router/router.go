package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	"usercontacts/internal/auth"
	"usercontacts/internal/handler"
	"usercontacts/internal/storage"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	log *zap.Logger,
	jwtService *auth.JWTService,
	users auth.UserFinder,
	tokenStore auth.TokenStoreInterface,
	uploads storage.Store,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	contactHandler *handler.ContactHandler,
	galleryHandler *handler.GalleryHandler,
) {
	e.Use(middleware.RequestID())
	e.Use(RequestLogger(log))
	e.Use(middleware.Recover())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	// Uploads
	if disk, ok := uploads.(*storage.Disk); ok {
		e.Static("/uploads", disk.Dir())
	} else {
		e.GET("/uploads/:name", galleryHandler.Serve)
	}
	e.POST("/upload", galleryHandler.Upload)
	e.GET("/gallery", galleryHandler.Gallery)
	e.DELETE("/delete/:filename", galleryHandler.Delete)

	// Public routes
	e.POST("/register", authHandler.Register)
	e.POST("/login", authHandler.Login)

	e.POST("/users", userHandler.CreateUser)
	e.GET("/users", userHandler.ListUsers)
	e.GET("/users/:id", userHandler.GetUser)
	e.PUT("/users/:id", userHandler.UpdateUser)
	e.DELETE("/users/:id", userHandler.DeleteUser)

	e.POST("/users/:id/contacts", contactHandler.AddContact)
	e.GET("/users/:id/contacts", contactHandler.ListUserContacts)
	e.GET("/contacts", contactHandler.ListContacts)
	e.GET("/contacts/:id", contactHandler.GetContact)
	e.PUT("/contacts/:id", contactHandler.UpdateContact)
	e.DELETE("/contacts/:id", contactHandler.DeleteContact)
	e.GET("/raw/contacts-by-user/:userId", contactHandler.ContactsByUser)

	// Secured routes (require a valid, non-revoked bearer token)
	secured := []echo.MiddlewareFunc{auth.JWTMiddleware(jwtService), auth.RequireUser(users, tokenStore)}
	e.GET("/list", authHandler.List, secured...)
	e.POST("/logout", authHandler.Logout, secured...)
}

// RequestLogger logs every request through log once the response is written.
func RequestLogger(log *zap.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		HandleError:  true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("request_id", v.RequestID),
			}
			if v.Error != nil && v.Status >= http.StatusInternalServerError {
				log.Error("request", append(fields, zap.Error(v.Error))...)
				return nil
			}
			log.Info("request", fields...)
			return nil
		},
	})
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
