// Command api levanta el servicio de galerías compartidas.
//
// @title Studio Gallery API
// @version 1.0
// @description Links compartidos de galerías con selección de fotos por el cliente.
// @BasePath /
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"studio-gallery/internal/adapters/auth/jwtverify"
	"studio-gallery/internal/adapters/signer/hmacsign"
	"studio-gallery/internal/adapters/storage/postgres"
	"studio-gallery/internal/config"
	"studio-gallery/internal/migrate"
	"studio-gallery/internal/ports/auth"
	"studio-gallery/internal/ports/signer"
	"studio-gallery/internal/router"

	_ "studio-gallery/docs"
)

func main() {
	cfg := config.FromEnv()

	logger := newLogger(cfg.LogLevel)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var db *postgres.DB
	if cfg.DBDSN != "" {
		if err := migrate.Up(ctx, cfg.DBDSN); err != nil {
			logger.Fatal("migrate up", zap.Error(err))
		}
		opened, err := postgres.New(ctx, cfg.DBDSN)
		if err != nil {
			logger.Fatal("postgres.New", zap.Error(err))
		}
		db = opened
		defer db.Close()
	} else {
		logger.Warn("DB_DSN vacío: repos in-memory, todo se pierde al bajar")
	}

	var verifier auth.AuthVerifier
	if cfg.AuthJWTKey != "" {
		verifier = jwtverify.NewVerifier([]byte(cfg.AuthJWTKey))
	} else {
		logger.Warn("AUTH_JWT_KEY vacío: modo dev (X-Debug-User-ID)")
	}

	var urlSigner signer.URLSigner
	if cfg.SignerKey != "" {
		urlSigner = hmacsign.New(cfg.SignerBaseURL, []byte(cfg.SignerKey))
	}

	h := router.NewRouter(router.Options{
		AuthVerifier: verifier,
		DB:           db,
		Signer:       urlSigner,
		SignedURLTTL: cfg.SignedURLTTL,
		Logger:       logger,
	})

	srv := &http.Server{
		Addr:         cfg.Addr,
		Handler:      h,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", cfg.Addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("shutdown", zap.Error(err))
		}
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("server error", zap.Error(err))
		}
	}

	logger.Info("shutdown complete")
}

func newLogger(level string) *zap.Logger {
	cfg := zap.NewProductionConfig()
	if lvl, err := zap.ParseAtomicLevel(level); err == nil && level != "" {
		cfg.Level = lvl
	}
	logger, err := cfg.Build()
	if err != nil {
		// sin logger no hay nada que hacer
		os.Exit(1)
	}
	return logger
}
