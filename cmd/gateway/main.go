package main

import (
	"context"
	"log"

	"github.com/dkravets/video2mp3/internal/gateway/config"
	"github.com/joho/godotenv"
)

func main() {

	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("gateway: %v", err)
	}

	app, err := newApp(context.Background(), cfg)
	if err != nil {
		log.Fatalf("gateway: %v", err)
	}

	if err := app.run(context.Background()); err != nil {
		log.Fatalf("gateway: %v", err)
	}
}
