package main

import (
	"flag"
	"fmt"
	"strings"

	"github.com/boletapp/gastify-sync/internal/adapter"
	"github.com/boletapp/gastify-sync/internal/client"
	"github.com/boletapp/gastify-sync/internal/config"
	"github.com/boletapp/gastify-sync/internal/logger"
	"github.com/boletapp/gastify-sync/internal/service"
	"github.com/boletapp/gastify-sync/internal/store"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	printBuildInfo()

	// Command flags must be registered before config loading parses the
	// shared flag set.
	var (
		login    = flag.String("login", "", "account login")
		password = flag.String("password", "", "account password")
		register = flag.Bool("register", false, "create the account before authenticating")
		groups   = flag.String("group", "", "comma-separated group ids to operate on")
		doSync   = flag.Bool("sync", false, "run one incremental sync per group")
		doFull   = flag.Bool("full", false, "run one full reconciliation per group")
		doPoll   = flag.Bool("poll", false, "probe each group for pending entries")
		doWatch  = flag.Bool("watch", false, "poll all groups on a timer until interrupted")
	)

	log := logger.NewClientLogger("gastify-client")
	cfg, err := config.GetClientConfig()
	if err != nil {
		log.Fatal().Err(err).Msg("error getting configs")
	}

	serverAdapter := adapter.NewHTTPServerAdapter(adapter.HTTPClientConfig{
		BaseURL: cfg.Adapter.HTTPAddress,
		Timeout: cfg.Adapter.RequestTimeout,
	})

	localStorage, err := store.NewClientStorages(cfg.Storage, log)
	if err != nil {
		log.Fatal().Err(err).Msg("create local storage")
	}

	onPending := func(groupID string, pending bool) {
		log.Info().Str("group_id", groupID).Bool("pending", pending).Msg("poll result")
	}

	services := service.NewClientServices(localStorage, serverAdapter, cfg.Sync, onPending, log)

	cmd := client.Command{
		Login:    *login,
		Password: *password,
		Register: *register,
		GroupIDs: splitGroups(*groups),
		Sync:     *doSync,
		Full:     *doFull,
		Poll:     *doPoll,
		Watch:    *doWatch,
	}

	app, err := client.NewApp(services, serverAdapter, cmd, cfg.Workers, log)
	if err != nil {
		log.Fatal().Err(err).Msg("init client app error")
	}

	if err = app.Run(); err != nil {
		log.Fatal().Err(err).Msg("client run error")
	}
}

func splitGroups(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	groups := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			groups = append(groups, trimmed)
		}
	}
	return groups
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
