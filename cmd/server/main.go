package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/civiclab/veritas/internal/config"
	"github.com/civiclab/veritas/internal/server"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using defaults")
	}

	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = "config/config.toml"
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Printf("No config file at %s, using defaults", cfgPath)
		cfg = config.Default()
	}

	port := os.Getenv("PORT")
	if port == "" {
		port = cfg.Server.Port
	}

	srv, err := server.NewServer(cfg)
	if err != nil {
		log.Fatal(err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	log.Printf("Starting server on port %s", port)
	if err := srv.Run(ctx, ":"+port); err != nil {
		log.Fatal(err)
	}
}
