package main

import (
	"context"
	"flag"
	"log"

	"github.com/Dawstr8/peek-a-peak/internal/config"
	"github.com/Dawstr8/peek-a-peak/internal/domain"
	"github.com/Dawstr8/peek-a-peak/internal/module/mountainrange"
	"github.com/Dawstr8/peek-a-peak/internal/module/peak"
	"github.com/Dawstr8/peek-a-peak/internal/seed"
)

func main() {
	configPath := flag.String("config", "configs/config.yaml", "path to configuration file")
	flag.Parse()

	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatal("failed to load config: ", err)
	}

	logger, err := config.SetupLogger(&cfg.Log)
	if err != nil {
		log.Fatal("failed to setup logger: ", err)
	}
	defer logger.Close()

	db, err := config.SetupDatabase(&cfg.Database, logger.Logger)
	if err != nil {
		log.Fatal("failed to setup database: ", err)
	}

	if err := db.AutoMigrate(&domain.MountainRange{}, &domain.Peak{}); err != nil {
		log.Fatal("failed to migrate: ", err)
	}

	seeder := seed.New(mountainrange.NewRangeRepository(db), peak.NewPeakRepository(db))
	if err := seeder.Run(context.Background()); err != nil {
		log.Fatal("seeding failed: ", err)
	}
}
