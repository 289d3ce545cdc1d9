package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/teampulse/feedback-system/internal/api/middleware"
	"github.com/teampulse/feedback-system/internal/core/domain"
)

// ctxIdentity returns the identity injected by the Auth middleware. Its
// absence means the route was registered without Auth; answer 401.
func ctxIdentity(c echo.Context) (*domain.Identity, error) {
	identity, ok := middleware.IdentityFrom(c)
	if !ok {
		return nil, domain.ErrUnauthenticated
	}
	return identity, nil
}

// pathID parses a positive integer path parameter.
func pathID(c echo.Context, name string) (int64, error) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.NewValidationError(name + " must be a positive integer")
	}
	return id, nil
}

// forbidden replaces a bare domain.ErrForbidden with an endpoint specific
// message. Other errors pass through.
func forbidden(err error, msg string) error {
	if errors.Is(err, domain.ErrForbidden) {
		return echo.NewHTTPError(http.StatusForbidden, msg)
	}
	return err
}
