package main

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/uniease-api/internal/app"
	"github.com/BruksfildServices01/uniease-api/internal/config"
	"github.com/BruksfildServices01/uniease-api/internal/logging"
	"github.com/BruksfildServices01/uniease-api/internal/seed"
	"github.com/BruksfildServices01/uniease-api/internal/timezone"
)

func main() {
	cfg := config.Load()
	logging.Setup(cfg.LogLevel, cfg.LogFormat)

	if cfg.StoreDriver == config.DriverMemory {
		logrus.Fatal("seeding the in-memory store has no effect; set STORE_DRIVER")
	}

	stores, err := app.OpenStores(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("failed to open stores")
	}
	defer stores.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	if err := seed.Run(ctx, cfg, stores, timezone.TodayIn(cfg.CampusTimezone)); err != nil {
		logrus.WithError(err).Fatal("seed failed")
	}
	logrus.Info("seed complete")
}
