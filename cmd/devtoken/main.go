// Command devtoken signs a bearer token with the configured secret so the
// API can be exercised locally without the identity provider.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"time"

	"tapcard/internal/auth"
	"tapcard/internal/config"
)

func main() {
	subject := flag.String("sub", "dev-user", "token subject")
	email := flag.String("email", "dev@example.com", "email claim")
	ttl := flag.Duration("ttl", time.Hour, "token lifetime")
	flag.Parse()

	cfg, err := config.Load(context.Background())
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if !cfg.App.IsDevelopment() {
		log.Fatalf("refusing to sign tokens outside development (APP_ENVIRONMENT=%s)", cfg.App.Environment)
	}

	token, err := auth.NewJWTService(cfg.Auth.JWTSecret).GenerateAccessToken(*subject, *email, *ttl)
	if err != nil {
		log.Fatalf("sign token: %v", err)
	}
	fmt.Println(token)
}
