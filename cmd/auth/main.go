package main

import (
	"context"
	"log"

	"github.com/dkravets/video2mp3/internal/auth/config"
	"github.com/joho/godotenv"
)

func main() {

	// Optional .env overlay for local runs; real deployments set the
	// environment directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("auth: %v", err)
	}

	app, err := newApp(context.Background(), cfg)
	if err != nil {
		log.Fatalf("auth: %v", err)
	}

	if err := app.run(context.Background()); err != nil {
		log.Fatalf("auth: %v", err)
	}
}
