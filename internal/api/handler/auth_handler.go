package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/teampulse/feedback-system/internal/core/domain"
	"github.com/teampulse/feedback-system/internal/core/ports"
)

const msgBadCredentials = "Incorrect email or password"

type AuthHandler struct {
	authService ports.AuthService
}

func NewAuthHandler(authService ports.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Register creates a new user account.
//
// @Summary      Register a new user
// @Description  Employees must name an existing manager in manager_id. Managers never carry one.
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body      registerRequest  true  "User registration details"
// @Success      201   {object}  registerResponse
// @Failure      400   {object}  errorResponse
// @Failure      500   {object}  errorResponse
// @Router       /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req registerRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	identity, err := h.authService.Register(c.Request().Context(), toRegisterInput(req))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, registerResponse{
		Message: "User created successfully",
		UserID:  identity.ID,
	})
}

// Login authenticates a user and returns a bearer token.
//
// @Summary      Login
// @Description  Accepts a JSON body or an OAuth2 password form (username carries the email).
// @Tags         auth
// @Accept       json,x-www-form-urlencoded
// @Produce      json
// @Param        body  body      loginRequest  true  "Login credentials"
// @Success      200   {object}  tokenResponse
// @Failure      400   {object}  errorResponse
// @Failure      401   {object}  errorResponse
// @Failure      429   {object}  errorResponse
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	result, err := h.authService.Login(c.Request().Context(), req.login(), req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthenticated) {
			return echo.NewHTTPError(http.StatusUnauthorized, msgBadCredentials)
		}
		return err
	}

	return c.JSON(http.StatusOK, tokenResponse{
		AccessToken: result.Token,
		TokenType:   result.TokenType,
		UserID:      result.UserID,
		Role:        result.Role.String(),
	})
}

// Me returns the identity resolved from the bearer token.
//
// @Summary      Current user
// @Tags         auth
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  domain.Identity
// @Failure      401  {object}  errorResponse
// @Router       /me [get]
func (h *AuthHandler) Me(c echo.Context) error {
	identity, err := ctxIdentity(c)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, identity)
}
