package main

import (
	"log"
	"os"

	"github.com/aussiebroadwan/entrabackup/internal/backup/app"
)

func main() {
	envFile := os.Getenv("ENV_FILE")
	if envFile == "" {
		envFile = ".env"
	}
	if err := app.LoadDotEnv(envFile); err != nil {
		log.Fatalf("failed to load environment file: %v", err)
	}

	cfg := app.LoadConfig()

	application, err := app.New(cfg)
	if err != nil {
		log.Fatalf("failed to initialize application: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("application error: %v", err)
	}
}
