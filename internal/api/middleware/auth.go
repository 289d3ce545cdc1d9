package middleware

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/teampulse/feedback-system/internal/core/domain"
	"github.com/teampulse/feedback-system/internal/core/ports"
)

// IdentityKey is the echo context key holding the resolved *domain.Identity.
const IdentityKey = "identity"

// Auth reads the bearer token, resolves it to the requester's identity and
// injects that identity into the context. Resolution failures are returned
// unchanged so the error handler can tell a bad token from a store outage.
func Auth(resolver ports.IdentityResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			authHeader := c.Request().Header.Get(echo.HeaderAuthorization)
			if authHeader == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || strings.TrimSpace(parts[1]) == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "Not authenticated")
			}

			identity, err := resolver.Resolve(c.Request().Context(), strings.TrimSpace(parts[1]))
			if err != nil {
				return err
			}

			c.Set(IdentityKey, identity)
			return next(c)
		}
	}
}

// IdentityFrom returns the identity stored by Auth.
func IdentityFrom(c echo.Context) (*domain.Identity, bool) {
	identity, ok := c.Get(IdentityKey).(*domain.Identity)
	return identity, ok && identity != nil
}
