package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"storefront_api/config"
	"storefront_api/internal/storefront/app"
)

func main() {
	cfg, err := config.LoadConfig(os.Getenv("CONFIG_PATH"))
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	server := app.NewStorefrontServer(cfg, os.Stdout)
	if err := server.Run(ctx); err != nil {
		log.Fatalf("storefront stopped: %v", err)
	}
}
