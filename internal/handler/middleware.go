package handler

import (
	"net/http"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"helpdesk/internal/auth"
	"helpdesk/internal/errors"
	"helpdesk/internal/model"
	"helpdesk/internal/service"
)

const actorContextKey = "actor"

// ActorMiddleware resolves the JWT claims stored by the echo-jwt middleware
// into a full user record and stashes it in the request context. Loading the
// record (rather than trusting the token) means an admin role edit takes
// effect on the next request, not the next login.
func ActorMiddleware(users service.UserService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
					Error: "authentication required",
					Code:  "UNAUTHORIZED",
				})
			}
			claims, ok := token.Claims.(*auth.Claims)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
					Error: "invalid token claims",
					Code:  "UNAUTHORIZED",
				})
			}
			userID, err := uuid.Parse(claims.UserID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
					Error: "invalid token subject",
					Code:  "UNAUTHORIZED",
				})
			}
			user, err := users.GetUser(c.Request().Context(), userID)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
					Error: "unknown user",
					Code:  "UNAUTHORIZED",
				})
			}
			c.Set(actorContextKey, user)
			return next(c)
		}
	}
}

// RequireAdmin rejects non-admin actors with a forbidden outcome.
func RequireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		actor := Actor(c)
		if actor == nil {
			return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
				Error: "authentication required",
				Code:  "UNAUTHORIZED",
			})
		}
		if actor.Role != model.RoleAdmin {
			return echo.NewHTTPError(http.StatusForbidden, errors.ErrorResponse{
				Error: "permission denied",
				Code:  "FORBIDDEN",
			})
		}
		return next(c)
	}
}

// Actor returns the authenticated user set by ActorMiddleware, or nil.
func Actor(c echo.Context) *model.User {
	if user, ok := c.Get(actorContextKey).(*model.User); ok {
		return user
	}
	return nil
}
