package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/blogpessoal/blogpessoal/internal/config"
	"github.com/blogpessoal/blogpessoal/internal/fakeapi"
	"github.com/blogpessoal/blogpessoal/internal/logger"
	"github.com/blogpessoal/blogpessoal/pkg/domain"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	log := logger.New(cfg.LogLevel, zapcore.Lock(os.Stdout))
	defer log.Sync() //nolint:errcheck

	backend := fakeapi.New(log)
	if email, pass := os.Getenv("BLOG_SEED_USER"), os.Getenv("BLOG_SEED_PASSWORD"); email != "" {
		u, err := backend.SeedUser(domain.User{Name: email, Email: email, Password: pass})
		if err != nil {
			return fmt.Errorf("seed user: %w", err)
		}
		log.Info("seeded user", zap.Int64("id", u.ID), zap.String("usuario", u.Email))
	}

	srv := &http.Server{
		Addr:              cfg.MockAddr,
		Handler:           backend.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		log.Info("mock backend listening", zap.String("addr", cfg.MockAddr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("serve: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
