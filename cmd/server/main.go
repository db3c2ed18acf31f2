package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "tapcard/docs" // swagger docs

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"tapcard/internal/auth"
	"tapcard/internal/backend"
	"tapcard/internal/cache"
	"tapcard/internal/config"
	"tapcard/internal/db"
	"tapcard/internal/handler"
	"tapcard/internal/logger"
	"tapcard/internal/repository"
	"tapcard/internal/router"
	"tapcard/internal/service"
)

// @title Tapcard API
// @version 1.0
// @description Scan resolution, card activation, redirect management and checkout for NFC/QR profile cards.
// @host localhost:8080
// @BasePath /api
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zlog, err := logger.New(cfg.Log, cfg.App.IsDevelopment())
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = zlog.Sync() }()

	cacheClient := cache.New(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
	defer cacheClient.Close()
	if err := cacheClient.Ping(ctx); err != nil {
		zlog.Warn("redis unreachable, checkout and sign-out will fail until it returns", zap.Error(err))
	}

	var orderLogs repository.OrderLogRepository
	if cfg.DB.DSN != "" {
		gormDB := openOrderLog(cfg.DB.DSN, zlog)
		defer db.Close(gormDB)
		orderLogs = repository.NewOrderLogRepository(gormDB)
	} else {
		zlog.Info("DB_DSN not set, order log disabled")
	}

	// Initialize auth components
	jwtService := auth.NewJWTService(cfg.Auth.JWTSecret)
	tokenStore := auth.NewTokenStore(cacheClient)
	authn := auth.NewAuthenticator(jwtService, tokenStore, cfg.Auth.LoginURL, zlog)

	// Initialize services
	client := backend.NewClient(cfg.Backend, zlog.Named("backend"))
	validate := service.NewValidator()
	cardValidator := service.NewCardValidator(validate)
	guard := service.NewInFlight()
	recorder := service.NewOrderRecorder(orderLogs, zlog)
	defer recorder.Close()

	flow := service.NewCardFlowController(service.NewCardLookup(client, zlog), authn, cfg.App.DashboardPath, zlog)
	activator := service.NewCardActivator(client, cardValidator, guard, cfg.App.ActivationDelay, cfg.App.DashboardPath, zlog)
	updater := service.NewRedirectUpdater(client, cardValidator, guard, zlog)
	dashboard := service.NewDashboard(client)
	checkout := service.NewCheckoutService(
		repository.NewCheckoutStore(cacheClient, cfg.App.CheckoutTTL),
		service.NewDiscountValidator(client, zlog),
		client,
		recorder,
		validate,
		guard,
		cfg.App.PaymentReturnPath,
		zlog,
	)

	e := echo.New()
	e.HideBanner = true
	router.Register(e, cfg, zlog, authn, validate, router.Handlers{
		Scan:     handler.NewScanHandler(flow),
		Card:     handler.NewCardHandler(activator, updater, dashboard),
		Checkout: handler.NewCheckoutHandler(checkout),
		Auth:     handler.NewAuthHandler(authn),
	})

	swaggerHost := cfg.Server.SwaggerHost
	if swaggerHost == "" {
		swaggerHost = "localhost:" + cfg.Server.Port
	}
	zlog.Info("starting server",
		zap.String("addr", cfg.Server.Addr()),
		zap.String("backend", cfg.Backend.BaseURL),
		zap.String("swagger", "http://"+swaggerHost+"/swagger/index.html"),
	)

	go func() {
		if err := e.Start(cfg.Server.Addr()); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("server start", zap.Error(err))
		}
	}()

	<-ctx.Done()
	zlog.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		zlog.Error("server shutdown", zap.Error(err))
	}
}

func openOrderLog(dsn string, zlog *zap.Logger) *gorm.DB {
	gormDB, err := db.Open(dsn)
	if err != nil {
		zlog.Fatal("database init", zap.Error(err))
	}
	if err := db.Migrate(gormDB); err != nil {
		zlog.Fatal("auto-migrate", zap.Error(err))
	}
	return gormDB
}
