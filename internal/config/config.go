package config

import (
	"context"
	"fmt"
	"time"

	"github.com/joho/godotenv"
	"github.com/sethvargo/go-envconfig"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	Server  ServerConfig  `env:",prefix=SERVER_"`
	Backend BackendConfig `env:",prefix=BACKEND_"`
	Redis   RedisConfig   `env:",prefix=REDIS_"`
	DB      DBConfig      `env:",prefix=DB_"`
	Auth    AuthConfig    `env:",prefix=AUTH_"`
	Log     LogConfig     `env:",prefix=LOG_"`
	App     AppConfig     `env:",prefix=APP_"`
}

// ServerConfig holds the listener settings of the HTTP server.
type ServerConfig struct {
	Port        string `env:"PORT,default=8080"`
	SwaggerHost string `env:"SWAGGER_HOST"`
}

// BackendConfig describes the remote card-and-order backend.
type BackendConfig struct {
	BaseURL       string        `env:"BASE_URL,default=http://localhost:3000"`
	Timeout       time.Duration `env:"TIMEOUT,default=15s"`
	RatePerSecond float64       `env:"RATE_PER_SECOND,default=50"`
	Burst         int           `env:"BURST,default=10"`
}

// RedisConfig holds the checkout and revocation store connection.
type RedisConfig struct {
	Addr     string `env:"ADDR,default=localhost:6379"`
	Password string `env:"PASSWORD"`
	DB       int    `env:"DB,default=0"`
}

// DBConfig holds the order log database DSN. Empty disables the log.
type DBConfig struct {
	DSN string `env:"DSN"`
}

// AuthConfig describes the external identity provider.
type AuthConfig struct {
	JWTSecret string `env:"JWT_SECRET,default=change-me"`
	LoginURL  string `env:"LOGIN_URL,default=/login"`
}

// LogConfig controls the zap logger.
type LogConfig struct {
	Level      string `env:"LEVEL,default=info"`
	File       string `env:"FILE"`
	MaxSizeMB  int    `env:"MAX_SIZE_MB,default=50"`
	MaxBackups int    `env:"MAX_BACKUPS,default=5"`
}

// AppConfig holds application-specific configuration.
type AppConfig struct {
	Environment       string        `env:"ENVIRONMENT,default=development"`
	CheckoutTTL       time.Duration `env:"CHECKOUT_TTL,default=24h"`
	ActivationDelay   time.Duration `env:"ACTIVATION_REDIRECT_DELAY,default=2s"`
	DashboardPath     string        `env:"DASHBOARD_PATH,default=/dashboard"`
	PaymentReturnPath string        `env:"PAYMENT_RETURN_PATH,default=/payment/callback"`
}

// Load builds Config from the environment. A .env file in the working
// directory is read first when present.
func Load(ctx context.Context) (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process(ctx, &cfg); err != nil {
		return nil, fmt.Errorf("process environment config: %w", err)
	}
	return &cfg, nil
}

// Addr returns the listen address.
func (c *ServerConfig) Addr() string {
	return ":" + c.Port
}

// IsDevelopment returns true if running in development environment.
func (c *AppConfig) IsDevelopment() bool {
	return c.Environment == "development"
}
