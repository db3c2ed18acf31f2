package handler

import (
	"github.com/labstack/echo/v4"

	"tapcard/internal/auth"
)

const sessionKey = "session"

// SessionMiddleware resolves the caller's session once per request.
func SessionMiddleware(authn *auth.Authenticator) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			c.Set(sessionKey, authn.SessionFromHeader(c.Request().Context(), header))
			return next(c)
		}
	}
}

func sessionFrom(c echo.Context) auth.Session {
	if s, ok := c.Get(sessionKey).(auth.Session); ok {
		return s
	}
	return auth.Anonymous{}
}
