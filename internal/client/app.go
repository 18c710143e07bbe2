package client

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/boletapp/gastify-sync/internal/adapter"
	"github.com/boletapp/gastify-sync/internal/config"
	"github.com/boletapp/gastify-sync/internal/logger"
	"github.com/boletapp/gastify-sync/internal/service"
	"github.com/boletapp/gastify-sync/models"
)

// Command is the parsed command-line request for one client invocation.
// Exactly one of Sync, Full, Poll, or Watch is expected to be set.
type Command struct {
	// Login and Password authenticate against the sync server. Register
	// creates the account first.
	Login    string
	Password string
	Register bool

	// GroupIDs are the groups the command operates on.
	GroupIDs []string

	Sync  bool
	Full  bool
	Poll  bool
	Watch bool
}

var errNoCommand = errors.New("no command given: use -sync, -full, -poll or -watch")

type App struct {
	services *service.ClientServices
	adapter  adapter.ServerAdapter
	cmd      Command
	workers  config.ClientWorkers

	logger *logger.Logger
}

func NewApp(services *service.ClientServices, serverAdapter adapter.ServerAdapter, cmd Command, workers config.ClientWorkers, logger *logger.Logger) (*App, error) {
	if !cmd.Sync && !cmd.Full && !cmd.Poll && !cmd.Watch {
		return nil, errNoCommand
	}
	if len(cmd.GroupIDs) == 0 {
		return nil, errors.New("no group given: use -group")
	}

	return &App{
		services: services,
		adapter:  serverAdapter,
		cmd:      cmd,
		workers:  workers,
		logger:   logger,
	}, nil
}

func (a *App) Run() error {
	ctx := context.Background()

	if err := a.authenticate(ctx); err != nil {
		return err
	}

	if a.cmd.Watch {
		return a.watch(ctx)
	}

	return a.runOnce(ctx)
}

func (a *App) authenticate(ctx context.Context) error {
	if a.cmd.Login == "" || a.cmd.Password == "" {
		return errors.New("credentials required: use -login and -password")
	}

	user := models.User{Login: a.cmd.Login, Password: a.cmd.Password}

	var err error
	if a.cmd.Register {
		_, err = a.adapter.Register(ctx, user)
	} else {
		_, err = a.adapter.Login(ctx, user)
	}
	if err != nil {
		return fmt.Errorf("authenticate: %w", err)
	}

	return nil
}

// runOnce executes one sync/poll command per group and prints each result as
// a JSON line on stdout.
func (a *App) runOnce(ctx context.Context) error {
	var failed bool

	for _, groupID := range a.cmd.GroupIDs {
		var result any
		var err error

		switch {
		case a.cmd.Sync:
			result, err = a.syncGroup(ctx, groupID)
		case a.cmd.Full:
			result, err = a.services.SyncService.SyncFull(ctx, groupID)
		case a.cmd.Poll:
			var pending bool
			pending, err = a.services.SyncService.PollPending(ctx, groupID)
			result = models.PendingResponse{Pending: pending}
		}

		if err != nil {
			failed = true
			a.logger.Err(err).Str("group_id", groupID).Msg("command failed")
		}
		printResult(groupID, result)
	}

	if failed {
		return errors.New("one or more groups failed")
	}
	return nil
}

// syncGroup runs an incremental sync and falls back to full reconciliation
// when the server refused the checkpoint or the page was truncated.
func (a *App) syncGroup(ctx context.Context, groupID string) (models.SyncOutcome, error) {
	outcome, err := a.services.SyncService.SyncIncremental(ctx, groupID)

	switch {
	case outcome.Status == models.SyncPartialTruncated:
		a.logger.Info().Str("group_id", groupID).Msg("page truncated, reconciling")
		return a.services.SyncService.SyncFull(ctx, groupID)
	case outcome.Status == models.SyncFailed && outcome.Reason == models.ReasonCheckpointExpired:
		a.logger.Info().Str("group_id", groupID).Msg("checkpoint expired, reconciling")
		return a.services.SyncService.SyncFull(ctx, groupID)
	}

	return outcome, err
}

// watch runs the poll job until the process receives a stop signal.
func (a *App) watch(ctx context.Context) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGTERM, syscall.SIGINT)
	defer stop()

	a.services.PollJob.Start(ctx, a.cmd.GroupIDs, a.workers.PollInterval)
	defer a.services.PollJob.Stop()

	<-ctx.Done()
	a.logger.Info().Msg("watch stopped")

	return nil
}

func printResult(groupID string, result any) {
	line := struct {
		GroupID string `json:"group_id"`
		Result  any    `json:"result"`
	}{GroupID: groupID, Result: result}

	_ = json.NewEncoder(os.Stdout).Encode(line)
}
