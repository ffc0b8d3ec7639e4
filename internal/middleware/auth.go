package middleware

import (
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"

	"secaware/internal/auth"
	"secaware/internal/errors"
	"secaware/internal/model"
	"secaware/internal/repository"
)

const identityContextKey = "identity"

// RequireSession runs after the JWT middleware has verified the token
// signature and expiry. It additionally requires the session id to still be
// registered server-side, so logout invalidates unexpired tokens. The wrapped
// handler never runs on failure.
func RequireSession(sessions auth.SessionStoreInterface) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := c.Get("user").(*jwt.Token)
			if !ok {
				return unauthenticated()
			}
			claims, ok := token.Claims.(*auth.SessionClaims)
			if !ok {
				return unauthenticated()
			}

			alive, err := sessions.Exists(c.Request().Context(), claims.ID)
			if err != nil || !alive {
				return unauthenticated()
			}

			c.Set(identityContextKey, claims.Identity())
			return next(c)
		}
	}
}

// RequireAdmin re-reads the caller's role from the users table rather than
// trusting the session snapshot: role can change after login, and admin-gated
// operations must reflect the current stored role. A vanished user fails too.
func RequireAdmin(users repository.UserRepository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, ok := IdentityFrom(c)
			if !ok {
				return unauthenticated()
			}

			user, err := users.FindByID(c.Request().Context(), identity.UserID)
			if err != nil {
				if err == gorm.ErrRecordNotFound {
					return forbidden()
				}
				return echo.NewHTTPError(http.StatusInternalServerError, errors.ErrorResponse{
					Error: "internal server error",
					Code:  "INTERNAL_ERROR",
				})
			}
			if !user.IsAdmin() {
				return forbidden()
			}
			return next(c)
		}
	}
}

// OptionalSession resolves an identity when a valid bearer token with a live
// session is attached, and silently continues anonymous otherwise. Used on
// public routes that enrich responses for authenticated callers.
func OptionalSession(tokens *auth.TokenService, sessions auth.SessionStoreInterface) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			tokenString, found := strings.CutPrefix(header, "Bearer ")
			if !found || tokenString == "" {
				return next(c)
			}

			claims, err := tokens.Parse(tokenString)
			if err != nil {
				return next(c)
			}
			alive, err := sessions.Exists(c.Request().Context(), claims.ID)
			if err != nil || !alive {
				return next(c)
			}

			c.Set(identityContextKey, claims.Identity())
			return next(c)
		}
	}
}

// IdentityFrom returns the request identity set by the session guards.
func IdentityFrom(c echo.Context) (auth.Identity, bool) {
	identity, ok := c.Get(identityContextKey).(auth.Identity)
	return identity, ok
}

// AdminIdentity is a convenience for handlers behind RequireAdmin that still
// need an identity value with the admin role asserted.
func AdminIdentity(c echo.Context) auth.Identity {
	identity, _ := IdentityFrom(c)
	identity.Role = model.RoleAdmin
	return identity
}

func unauthenticated() *echo.HTTPError {
	return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
		Error: "authentication required",
		Code:  "UNAUTHENTICATED",
	})
}

func forbidden() *echo.HTTPError {
	return echo.NewHTTPError(http.StatusForbidden, errors.ErrorResponse{
		Error: "admin privileges required",
		Code:  "FORBIDDEN",
	})
}
