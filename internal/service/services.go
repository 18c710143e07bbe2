package service

import (
	"github.com/boletapp/gastify-sync/internal/config"
	"github.com/boletapp/gastify-sync/internal/logger"
	"github.com/boletapp/gastify-sync/internal/store"
)

type Services struct {
	AuthService        AuthService
	GroupService       GroupService
	TransactionService TransactionService
	ChangelogService   ChangelogService
}

func NewServices(storages *store.Storages, cfg *config.StructuredConfig, logger *logger.Logger) *Services {
	return &Services{
		AuthService:        NewAuthService(storages.UserRepository, cfg.Auth, logger),
		GroupService:       NewGroupService(storages, logger),
		TransactionService: NewTransactionService(storages, logger),
		ChangelogService:   NewChangelogService(storages, cfg.Sync, logger),
	}
}
