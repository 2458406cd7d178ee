package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/vitrine/backend/pkg/ai"
	"github.com/vitrine/backend/pkg/catalog"
	"github.com/vitrine/backend/pkg/config"
	"github.com/vitrine/backend/pkg/prometheus"
	"github.com/vitrine/backend/pkg/scraper"
)

func main() {
	// for development purposes
	// we don't care about errors here
	_ = godotenv.Load(".env")
	conf := config.NewConfig()

	c := context.Background()
	ctx, cancel := context.WithCancel(c)

	logger := createLogger(conf)
	mon := prometheus.New()

	store := catalog.NewStore()
	feed := scraper.New(conf, store, mon, logger)
	brain := ai.New(ctx, conf, mon, logger)

	StartServer(NewRouter(&HandlerRepository{
		store:   store,
		scraper: feed,
		ai:      brain,
		config:  conf,
		monitor: mon,
		logger:  logger,
	}), conf.Port, cancel)
}

func createLogger(conf *config.Config) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stdout)
	logger.SetFormatter(&logrus.JSONFormatter{})
	logger.SetLevel(logrus.InfoLevel)
	if conf.Debug {
		logger.SetLevel(logrus.DebugLevel)
	}

	return logger
}
