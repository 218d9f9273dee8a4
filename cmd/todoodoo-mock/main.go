// Command todoodoo-mock serves the todoodoo API from memory for local
// development:
//
//	MOCK_USERS=demo:demo todoodoo-mock &
//	TODOODOO_API_URL=http://localhost:8089 todoodoo
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

	"github.com/idilsaglam/todoodoo/internal/config"
	"github.com/idilsaglam/todoodoo/internal/mockapi"
	"github.com/idilsaglam/todoodoo/pkg/logger"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, "todoodoo-mock:", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfg, err := config.Load(ctx)
	if err != nil {
		return err
	}
	log := logger.Init(logger.Options{Level: cfg.LogLevel, Pretty: true, Output: os.Stdout})

	srv, err := mockapi.New(mockapi.Options{
		JWTSecret:  cfg.Mock.JWTSecret,
		Users:      cfg.Mock.Users,
		WrapTodos:  cfg.Mock.WrapTodos,
		TokenField: cfg.Mock.TokenField,
		TokenTTL:   cfg.Mock.TokenTTL,
		Logger:     log,
	})
	if err != nil {
		return err
	}

	httpSrv := &http.Server{
		Addr:              cfg.Mock.Addr,
		Handler:           srv.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", cfg.Mock.Addr).Int("users", len(cfg.Mock.Users)).
			Bool("wrap_todos", cfg.Mock.WrapTodos).Msg("mock todoodoo service listening")
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}
