package middleware

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/teampulse/feedback-system/internal/core/domain"
	"github.com/teampulse/feedback-system/internal/pkg/metrics"
)

// RequireManager admits only identities with the Manager role.
func RequireManager() echo.MiddlewareFunc {
	return gate(domain.RequireManager, domain.RoleManager, "Only managers can access this resource")
}

// RequireEmployee admits only identities with the Employee role.
func RequireEmployee() echo.MiddlewareFunc {
	return gate(domain.RequireEmployee, domain.RoleEmployee, "Only employees can access this resource")
}

// gate must run after Auth. Without an identity it answers 401, not 403.
func gate(check func(*domain.Identity) (*domain.Identity, error), role domain.Role, denied string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			identity, _ := IdentityFrom(c)
			if _, err := check(identity); err != nil {
				if errors.Is(err, domain.ErrForbidden) {
					metrics.AccessDeniedTotal.WithLabelValues(role.String()).Inc()
					return echo.NewHTTPError(http.StatusForbidden, denied)
				}
				return err
			}
			return next(c)
		}
	}
}
