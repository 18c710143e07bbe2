package service

import (
	"github.com/boletapp/gastify-sync/internal/adapter"
	"github.com/boletapp/gastify-sync/internal/config"
	"github.com/boletapp/gastify-sync/internal/logger"
	"github.com/boletapp/gastify-sync/internal/store"
)

type ClientServices struct {
	SyncService ClientSyncService
	PollJob     ClientPollJob
}

func NewClientServices(storages *store.ClientStorages, serverAdapter adapter.ServerAdapter, cfg config.Sync, onPending PendingFunc, logger *logger.Logger) *ClientServices {
	syncSvc := NewClientSyncService(storages.SyncRepository, serverAdapter, cfg, logger)

	return &ClientServices{
		SyncService: syncSvc,
		PollJob:     NewClientPollJob(syncSvc, onPending),
	}
}
