package main

import (
	"flag"
	"log"

	"github.com/Dawstr8/peek-a-peak/internal/app"
	"github.com/Dawstr8/peek-a-peak/internal/config"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("load config %s: %v", *configPath, err)
	}

	a, err := app.New(cfg)
	if err != nil {
		log.Fatalf("build application: %v", err)
	}

	if err := a.Run(); err != nil {
		log.Fatalf("server stopped: %v", err)
	}
}
