package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v4"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	echoSwagger "github.com/swaggo/echo-swagger"

	"helpdesk/internal/auth"
	"helpdesk/internal/config"
	"helpdesk/internal/handler"
	"helpdesk/internal/service"
)

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	userService service.UserService,
	authHandler *handler.AuthHandler,
	userHandler *handler.UserHandler,
	ticketHandler *handler.TicketHandler,
	commentHandler *handler.CommentHandler,
	catalogHandler *handler.CatalogHandler,
	notificationHandler *handler.NotificationHandler,
) {
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.RequestID())

	// Add validator
	e.Validator = &CustomValidator{validator: validator.New()}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})

	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api")

	// Public routes
	api.POST("/auth/register", authHandler.Register)
	api.POST("/auth/login", authHandler.Login)
	api.POST("/auth/refresh", authHandler.Refresh)
	api.POST("/auth/logout", authHandler.Logout)

	// Secured routes (require JWT authentication). The actor middleware
	// reloads the caller from the database so role edits apply to tokens
	// that are still in flight.
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization,
		NewClaimsFunc: func(c echo.Context) jwt.Claims {
			return &auth.Claims{}
		},
	}), handler.ActorMiddleware(userService))

	secured.GET("/me", authHandler.Me)

	// Ticket routes
	secured.GET("/tickets", ticketHandler.List)
	secured.POST("/tickets", ticketHandler.Create)
	secured.GET("/tickets/:id", ticketHandler.Get)
	secured.PATCH("/tickets/:id", ticketHandler.Update)
	secured.DELETE("/tickets/:id", ticketHandler.Delete)
	secured.POST("/tickets/:id/assign", ticketHandler.Assign)

	// Comment routes
	secured.GET("/tickets/:id/comments", commentHandler.List)
	secured.POST("/tickets/:id/comments", commentHandler.Create)

	// Notification routes
	secured.GET("/notifications", notificationHandler.List)
	secured.POST("/notifications/read-all", notificationHandler.MarkAllRead)
	secured.POST("/notifications/:id/read", notificationHandler.MarkRead)
	secured.GET("/notifications/preferences", notificationHandler.GetPreference)
	secured.PUT("/notifications/preferences", notificationHandler.UpdatePreference)

	// Catalog listings are readable by any authenticated user.
	secured.GET("/departments", catalogHandler.ListDepartments)
	secured.GET("/categories", catalogHandler.ListCategories)

	// Admin routes
	admin := secured.Group("", handler.RequireAdmin)

	admin.GET("/users", userHandler.List)
	admin.POST("/users", userHandler.Create)
	admin.GET("/users/:id", userHandler.Get)
	admin.PATCH("/users/:id", userHandler.Update)
	admin.DELETE("/users/:id", userHandler.Delete)

	admin.POST("/departments", catalogHandler.CreateDepartment)
	admin.PUT("/departments/:id", catalogHandler.UpdateDepartment)
	admin.DELETE("/departments/:id", catalogHandler.DeleteDepartment)

	admin.POST("/categories", catalogHandler.CreateCategory)
	admin.PUT("/categories/:id", catalogHandler.UpdateCategory)
	admin.DELETE("/categories/:id", catalogHandler.DeleteCategory)
}

// CustomValidator wraps validator for Echo.
type CustomValidator struct {
	validator *validator.Validate
}

// Validate implements echo.Validator interface.
func (cv *CustomValidator) Validate(i interface{}) error {
	return cv.validator.Struct(i)
}
