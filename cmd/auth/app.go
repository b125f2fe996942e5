package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/dkravets/video2mp3/internal/auth"
	"github.com/dkravets/video2mp3/internal/auth/config"
	"github.com/dkravets/video2mp3/internal/auth/httpapi"
	"github.com/dkravets/video2mp3/internal/logging"
	"github.com/dkravets/video2mp3/internal/users"
)

const shutdownTimeout = 10 * time.Second

type app struct {
	cfg    *config.Config
	logger logging.Logger
	server *http.Server
	db     *sql.DB
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {

	logger := logging.NewJSONLogger("auth")

	repo, db, err := users.Open(ctx, cfg.DatabaseDSN)
	if err != nil {
		return nil, err
	}

	verifier := auth.NewVerifier(repo, auth.NewPasswordMatcher(cfg.PasswordMatcher), auth.EveryoneAdmin{})
	service := auth.NewService(verifier, []byte(cfg.JWTSecret), cfg.TokenTTL)
	handler := httpapi.NewHandler(service, logger)

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler.Router(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return &app{cfg: cfg, logger: logger, server: server, db: db}, nil
}

func (a *app) run(ctx context.Context) error {

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- a.server.ListenAndServe()
	}()

	a.logger.Info(ctx, "auth service listening", "addr", a.cfg.Addr, "matcher", a.cfg.PasswordMatcher)

	select {
	case err := <-errCh:
		a.db.Close()
		return err
	case <-ctx.Done():
	}

	a.logger.Info(ctx, "shutting down")

	shCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := a.server.Shutdown(shCtx)
	if dbErr := a.db.Close(); dbErr != nil && err == nil {
		err = dbErr
	}
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
