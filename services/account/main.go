package main

import (
	"fmt"

	"streamlane/pkg/config"
	"streamlane/services/account/internal/app"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic(fmt.Sprintf("Failed to load config: %v", err))
	}

	application, err := app.NewApp(cfg)
	if err != nil {
		panic(fmt.Sprintf("Failed to initialize account service: %v", err))
	}

	if err := application.Run(); err != nil {
		panic(fmt.Sprintf("Failed to run account service: %v", err))
	}

	application.Wait()
	application.Shutdown()
}
