package main

import (
	"os"

	"github.com/DRSN-tech/recommendation-engine/internal/app"
	config "github.com/DRSN-tech/recommendation-engine/internal/cfg"
	"github.com/DRSN-tech/recommendation-engine/pkg/logger"
	"github.com/joho/godotenv"
)

func main() {
	log := logger.NewSlogLogger()

	// .env нужен только локально, в контейнере переменные приходят из окружения
	if err := godotenv.Load(); err != nil {
		log.Debugf(".env not loaded: %v", err)
	}

	cfg, err := config.Load(log)
	if err != nil {
		log.Errorf(err, "failed to load config")
		os.Exit(1)
	}

	application, err := app.NewApp(cfg, log)
	if err != nil {
		log.Errorf(err, "failed to initialize app")
		os.Exit(1)
	}

	if err := application.Run(); err != nil {
		os.Exit(1)
	}
}
