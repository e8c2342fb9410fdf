package main

import (
	"os"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/phillipDoubleU/showdex/internal/api"
	"github.com/phillipDoubleU/showdex/internal/calc"
	"github.com/phillipDoubleU/showdex/internal/constants"
	"github.com/phillipDoubleU/showdex/internal/engine"
	"github.com/phillipDoubleU/showdex/internal/logging"
	"github.com/phillipDoubleU/showdex/internal/session"
	"github.com/phillipDoubleU/showdex/internal/version"
)

func main() {
	configPath := os.Getenv(constants.EnvConfigPath)
	if configPath == "" {
		configPath = "./configs/showdex.yaml"
	}
	cfg := loadConfigOrExit(configPath)

	if err := logging.Configure(cfg.Logging.Level, cfg.Logging.Format); err != nil {
		logging.Fatal("Invalid logging configuration", err, nil)
	}

	seed := loadDexOrExit(cfg)
	repo := openRepositoryOrExit(cfg, seed)

	rngSeed := cfg.Session.Seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}
	mgr := session.NewManager(repo, calc.Stats{}, calc.Damage{}, engine.NewRand(rngSeed), cfg.Dex.Format, repo)

	stop := make(chan struct{})
	defer close(stop)
	mgr.StartSweeper(cfg.Session.SweepInterval, cfg.Session.IdleTTL, stop)

	handler := api.NewSimulationHandler(mgr, repo)
	router := gin.Default()
	api.Routes(router, handler)

	logging.Info("Server started", logging.Fields{
		constants.LogFieldAddr: cfg.Server.Address,
		"version":              version.Version,
		"format":               cfg.Dex.Format,
	})
	if err := router.Run(cfg.Server.Address); err != nil {
		logging.Fatal("Failed to start server", err, nil)
	}
}
