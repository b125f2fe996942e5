package main

import (
	"context"
	"log"
	"os/signal"
	"syscall"

	"github.com/dkravets/video2mp3/internal/broker/rabbitmq"
	"github.com/dkravets/video2mp3/internal/logging"
	"github.com/dkravets/video2mp3/internal/notifier"
	"github.com/dkravets/video2mp3/internal/notifier/config"
	"github.com/joho/godotenv"
)

func main() {

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("notifier: %v", err)
	}

	logger := logging.NewJSONLogger("notifier")

	broker, err := rabbitmq.Dial(cfg.RabbitURL)
	if err != nil {
		log.Fatalf("notifier: %v", err)
	}
	defer broker.Close()

	if err := broker.DeclareQueue(cfg.MP3Queue); err != nil {
		log.Fatalf("notifier: %v", err)
	}

	deliveries, err := broker.Consume(cfg.MP3Queue)
	if err != nil {
		log.Fatalf("notifier: %v", err)
	}

	sender := notifier.NewSMTPSender(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUsername, cfg.SMTPPassword, cfg.From)
	consumer := notifier.NewConsumer(sender, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info(ctx, "waiting for completion events", "queue", cfg.MP3Queue)
	consumer.Run(ctx, deliveries)
}
