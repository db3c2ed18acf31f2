package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"tapcard/internal/auth"
)

// AuthHandler handles session endpoints. Sign-in itself happens at the
// identity provider.
type AuthHandler struct {
	authn *auth.Authenticator
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authn *auth.Authenticator) *AuthHandler {
	return &AuthHandler{authn: authn}
}

// LoginResponse carries the provider sign-in link.
type LoginResponse struct {
	LoginURL string `json:"login_url"`
}

// Login godoc
// @Summary Get the sign-in link
// @Tags auth
// @Produce json
// @Param return_to query string false "Path to come back to after sign-in"
// @Success 200 {object} LoginResponse
// @Router /auth/login [get]
func (h *AuthHandler) Login(c echo.Context) error {
	return c.JSON(http.StatusOK, LoginResponse{LoginURL: h.authn.LoginURL(c.QueryParam("return_to"))})
}

// Logout godoc
// @Summary Sign out
// @Description Revokes the bearer token locally until it expires.
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} map[string]string
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	if err := h.authn.Logout(c.Request().Context(), sessionFrom(c)); err != nil {
		return mapError(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "signed out"})
}
