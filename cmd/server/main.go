package main

import (
	"context"
	"fmt"

	"github.com/boletapp/gastify-sync/internal/config"
	synchttp "github.com/boletapp/gastify-sync/internal/handler/http"
	"github.com/boletapp/gastify-sync/internal/logger"
	"github.com/boletapp/gastify-sync/internal/server"
	"github.com/boletapp/gastify-sync/internal/service"
	"github.com/boletapp/gastify-sync/internal/store"
	"github.com/boletapp/gastify-sync/internal/workers"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	log := logger.NewLogger("gastify-server")
	cfg, err := config.GetStructuredConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	db, err := store.NewConnectPostgres(context.Background(), cfg.Storage.DB, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error connecting to database")
	}

	if err = db.Migrate(); err != nil {
		log.Fatal().Err(err).Msg("error applying migrations")
	}

	storages := store.NewStorages(db, log)
	services := service.NewServices(storages, cfg, log)
	background := workers.NewWorkers(storages, cfg, log)
	handler := synchttp.NewHandler(services, log)

	srv, err := server.NewServer(handler, background, cfg.Server, log)
	if err != nil {
		log.Fatal().Err(err).Msg("error creating server")
	}

	srv.RunServer()
}

func printBuildInfo() {
	if buildVersion == "" {
		buildVersion = "N/A"
	}
	if buildDate == "" {
		buildDate = "N/A"
	}
	if buildCommit == "" {
		buildCommit = "N/A"
	}

	fmt.Printf("Build version: %s\n", buildVersion)
	fmt.Printf("Build date: %s\n", buildDate)
	fmt.Printf("Build commit: %s\n", buildCommit)
}
