// Package config lee la configuración del servicio desde env.
// Todo tiene default razonable para levantar en modo dev sin nada seteado.
package config

import (
	"os"
	"strings"
	"time"
)

const defaultSignedURLTTL = 15 * time.Minute

type Config struct {
	Addr string

	// DBDSN vacío => repos in-memory (modo dev).
	DBDSN string

	LogLevel string

	// AuthJWTKey: clave HS256 del identity provider del estudio.
	// Vacío => modo dev (X-Debug-User-ID).
	AuthJWTKey string

	// Firma de URLs de media.
	SignerKey     string
	SignerBaseURL string
	SignedURLTTL  time.Duration
}

func FromEnv() Config {
	addr := ":8080"
	if v := strings.TrimSpace(os.Getenv("PORT")); v != "" {
		addr = ":" + v
	}

	ttl := defaultSignedURLTTL
	if v := strings.TrimSpace(os.Getenv("SIGNED_URL_TTL")); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			ttl = d
		}
	}

	return Config{
		Addr:          addr,
		DBDSN:         strings.TrimSpace(os.Getenv("DB_DSN")),
		LogLevel:      strings.TrimSpace(os.Getenv("LOG_LEVEL")),
		AuthJWTKey:    os.Getenv("AUTH_JWT_KEY"),
		SignerKey:     os.Getenv("SIGNER_KEY"),
		SignerBaseURL: strings.TrimSpace(os.Getenv("SIGNER_BASE_URL")),
		SignedURLTTL:  ttl,
	}
}
