package router

import (
	"net/http"

	"github.com/go-playground/validator/v10"
	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	echoSwagger "github.com/swaggo/echo-swagger"
	"go.uber.org/zap"

	"tapcard/internal/auth"
	"tapcard/internal/config"
	"tapcard/internal/errors"
	"tapcard/internal/handler"
)

// Handlers groups the HTTP handlers mounted under /api.
type Handlers struct {
	Scan     *handler.ScanHandler
	Card     *handler.CardHandler
	Checkout *handler.CheckoutHandler
	Auth     *handler.AuthHandler
}

// Register wires routes and middleware.
func Register(
	e *echo.Echo,
	cfg *config.Config,
	log *zap.Logger,
	authn *auth.Authenticator,
	validate *validator.Validate,
	h Handlers,
) {
	e.Use(middleware.RequestID())
	e.Use(requestLogger(log))
	e.Use(middleware.Recover())

	e.Validator = &CustomValidator{validator: validate}

	e.GET("/healthz", func(c echo.Context) error {
		return c.String(http.StatusOK, "ok")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	e.GET("/swagger/*", echoSwagger.WrapHandler)

	api := e.Group("/api", handler.SessionMiddleware(authn))

	// Public routes. Activation checks the session itself so a signed-out
	// caller gets a sign-in prompt instead of a bare 401.
	api.GET("/scan/:username", h.Scan.Resolve)
	api.POST("/cards/activate", h.Card.Activate)
	api.GET("/auth/login", h.Auth.Login)
	api.POST("/checkout", h.Checkout.Start)
	api.GET("/checkout/:id/summary", h.Checkout.Summary)
	api.POST("/checkout/:id/discount", h.Checkout.ApplyDiscount)
	api.DELETE("/checkout/:id/discount", h.Checkout.RemoveDiscount)
	api.POST("/checkout/:id/orders", h.Checkout.PlaceOrder)

	// Secured routes (require JWT authentication)
	secured := api.Group("", echojwt.WithConfig(echojwt.Config{
		SigningKey:  []byte(cfg.Auth.JWTSecret),
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ErrorHandler: func(c echo.Context, err error) error {
			return echo.NewHTTPError(http.StatusUnauthorized, errors.ErrorResponse{
				Error: errors.ErrUnauthenticated.Error(),
				Code:  "UNAUTHENTICATED",
			})
		},
	}))

	secured.PATCH("/cards/redirect", h.Card.UpdateRedirect)
	secured.GET("/cards/mine", h.Card.MyCards)
	secured.POST("/auth/logout", h.Auth.Logout)
}

func requestLogger(log *zap.Logger) echo.MiddlewareFunc {
	return middleware.RequestLoggerWithConfig(middleware.RequestLoggerConfig{
		LogMethod:    true,
		LogURI:       true,
		LogStatus:    true,
		LogLatency:   true,
		LogRequestID: true,
		LogError:     true,
		LogValuesFunc: func(c echo.Context, v middleware.RequestLoggerValues) error {
			fields := []zap.Field{
				zap.String("method", v.Method),
				zap.String("uri", v.URI),
				zap.Int("status", v.Status),
				zap.Duration("latency", v.Latency),
				zap.String("request_id", v.RequestID),
			}
			if v.Error != nil {
				log.Warn("request", append(fields, zap.Error(v.Error))...)
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
