package service

import "errors"

var (
	ErrSyncCooldown   = errors.New("sync refused by cooldown")
	ErrSyncInProgress = errors.New("sync already running for this group")
)
