package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/dkravets/video2mp3/internal/broker/rabbitmq"
	"github.com/dkravets/video2mp3/internal/gateway/authclient"
	"github.com/dkravets/video2mp3/internal/gateway/config"
	"github.com/dkravets/video2mp3/internal/gateway/httpapi"
	"github.com/dkravets/video2mp3/internal/gateway/upload"
	"github.com/dkravets/video2mp3/internal/logging"
	"github.com/dkravets/video2mp3/internal/storage/s3store"
)

const shutdownTimeout = 10 * time.Second

type app struct {
	cfg    *config.Config
	logger logging.Logger
	server *http.Server
	broker *rabbitmq.Client
}

func newApp(ctx context.Context, cfg *config.Config) (*app, error) {

	logger := logging.NewJSONLogger("gateway")

	videos, err := s3store.New(ctx, s3store.Config{
		Endpoint:  cfg.S3Endpoint,
		Region:    cfg.S3Region,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		Bucket:    cfg.VideoBucket,
	})
	if err != nil {
		return nil, err
	}

	mp3s, err := s3store.New(ctx, s3store.Config{
		Endpoint:  cfg.S3Endpoint,
		Region:    cfg.S3Region,
		AccessKey: cfg.S3AccessKey,
		SecretKey: cfg.S3SecretKey,
		Bucket:    cfg.MP3Bucket,
	})
	if err != nil {
		return nil, err
	}

	broker, err := rabbitmq.Dial(cfg.RabbitURL)
	if err != nil {
		return nil, err
	}
	if err := broker.DeclareQueue(cfg.VideoQueue); err != nil {
		broker.Close()
		return nil, err
	}

	coordinator := upload.NewCoordinator(videos, broker, cfg.VideoQueue, logger)
	authClient := authclient.New(cfg.AuthAddress, cfg.AuthTimeout)
	handler := httpapi.NewHandler(authClient, coordinator, mp3s, cfg.MaxUploadBytes, logger)

	server := &http.Server{
		Addr:         cfg.Addr,
		Handler:      handler.Router(),
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	return &app{cfg: cfg, logger: logger, server: server, broker: broker}, nil
}

func (a *app) run(ctx context.Context) error {

	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		errCh <- a.server.ListenAndServe()
	}()

	a.logger.Info(ctx, "gateway listening", "addr", a.cfg.Addr, "queue", a.cfg.VideoQueue)

	select {
	case err := <-errCh:
		a.broker.Close()
		return err
	case <-ctx.Done():
	}

	a.logger.Info(ctx, "shutting down")

	shCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	err := a.server.Shutdown(shCtx)
	if brErr := a.broker.Close(); brErr != nil && err == nil {
		err = brErr
	}
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}
