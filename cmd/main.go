package main

import (
	"log"
	"os"

	"github.com/silvarafa06/1023A-backend-novo-1/internal/app"
	"github.com/silvarafa06/1023A-backend-novo-1/internal/config"
)

func main() {
	configPath := "config.yaml"
	if cp := os.Getenv("CONFIG_PATH"); cp != "" {
		configPath = cp
	}

	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	application, err := app.New(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize application: %v", err)
	}

	application.Run()
}
