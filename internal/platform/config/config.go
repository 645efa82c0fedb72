package config

import (
	"os"
	"time"
)

// Server captures HTTP server level configuration.
type Server struct {
	Addr            string        `validate:"required"`
	DatabaseURL     string
	TokenSigningKey string        `validate:"required,notblank"`
	TokenIssuer     string        `validate:"omitempty,url"`
	SuperadminLogin string
	SuperadminHash  string
	ClientPolicies  string
	ShutdownTimeout time.Duration
	RequestTimeout  time.Duration
}

// FromEnv builds a Server config from environment variables so main stays lean.
func FromEnv() Server {
	addr := os.Getenv("MEMBERGATE_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	signingKey := os.Getenv("MEMBERGATE_SIGNING_KEY")
	if signingKey == "" {
		// Development default, must be overridden in production.
		signingKey = "dev-secret-key-change-in-production"
	}

	issuer := os.Getenv("MEMBERGATE_ISSUER")
	if issuer == "" {
		issuer = "http://localhost:8080"
	}

	return Server{
		Addr:            addr,
		DatabaseURL:     os.Getenv("MEMBERGATE_DATABASE_URL"),
		TokenSigningKey: signingKey,
		TokenIssuer:     issuer,
		SuperadminLogin: os.Getenv("MEMBERGATE_SUPERADMIN_LOGIN"),
		SuperadminHash:  os.Getenv("MEMBERGATE_SUPERADMIN_HASH"),
		ClientPolicies:  os.Getenv("MEMBERGATE_CLIENT_POLICIES"),
		ShutdownTimeout: 10 * time.Second,
		RequestTimeout:  30 * time.Second,
	}
}
