package main

import (
	"os"

	"github.com/phillipDoubleU/showdex/internal/config"
	"github.com/phillipDoubleU/showdex/internal/constants"
	"github.com/phillipDoubleU/showdex/internal/dex"
	"github.com/phillipDoubleU/showdex/internal/logging"
	"github.com/phillipDoubleU/showdex/internal/storage"
)

func loadConfigOrExit(path string) *config.Config {
	cfg, err := config.Load(path)
	if err != nil {
		logging.Fatal("Missing or invalid showdex configuration", err, logging.Fields{"config_path": path})
	}
	return cfg
}

func loadDexOrExit(cfg *config.Config) []dex.Move {
	dexPath := os.Getenv(constants.EnvDexPath)
	if dexPath == "" {
		dexPath = cfg.Dex.SeedPath
	}
	seed, err := dex.LoadSeed(dexPath)
	if err != nil {
		logging.Fatal("Missing or invalid dex seed", err, logging.Fields{
			"dex_path": dexPath,
			"hint":     "provide a JSON file with a 'moves' array (name, category, base_power, priority, optional recoil/drain/stat_change/status/field/secondary/multi_hit)",
		})
	}
	return seed
}

func openRepositoryOrExit(cfg *config.Config, seed []dex.Move) storage.Repository {
	dbPath := os.Getenv(constants.EnvDBPath)
	if dbPath == "" {
		dbPath = cfg.Database.Path
	}
	db, err := storage.OpenAndMigrate(dbPath, seed)
	if err != nil {
		logging.Fatal("Failed to initialize database", err, logging.Fields{"db_path": dbPath})
	}
	return storage.NewSQLiteRepository(db, seed)
}
