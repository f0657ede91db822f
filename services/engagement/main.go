package main

import (
	"log"

	"streamlane/pkg/config"
	"streamlane/services/engagement/internal/app"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	application, err := app.NewApp(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize app: %v", err)
	}

	if err := application.Run(); err != nil {
		log.Fatalf("Failed to run app: %v", err)
	}

	application.Wait()

	if err := application.Shutdown(); err != nil {
		log.Fatalf("Failed to shutdown gracefully: %v", err)
	}
}
