package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"resultdash/internal/config"
	"resultdash/internal/container"

	"github.com/joho/godotenv"
)

func main() {
	// Load environment variables from .env file
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	appConfig, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	appContainer, err := container.New(appConfig)
	if err != nil {
		log.Fatalf("Failed to create application container: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The dataset is loaded exactly once; without it there is nothing to serve.
	if err := appContainer.Init(ctx); err != nil {
		log.Fatalf("Failed to load result dataset: %v", err)
	}

	if err := appContainer.Run(ctx); err != nil {
		log.Fatalf("Server stopped: %v", err)
	}
}
