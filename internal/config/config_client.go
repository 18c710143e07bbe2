package config

import (
	"fmt"
	"time"
)

// ClientAdapter holds network settings used by the client transport layer.
type ClientAdapter struct {
	// HTTPAddress is the sync server base URL used by the client.
	HTTPAddress string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
}

// ClientStorage groups client-side local persistence settings.
type ClientStorage struct {
	// CacheDBPath is the path of the SQLite file holding the local cache and
	// checkpoints.
	CacheDBPath string
}

// ClientWorkers contains client background job settings.
type ClientWorkers struct {
	// PollInterval defines how often the poll job checks for pending entries.
	PollInterval time.Duration
}

// ClientConfig is the top-level client configuration assembled from
// [StructuredConfig].
type ClientConfig struct {
	// Adapter contains client transport address and timeout.
	Adapter ClientAdapter
	// Storage contains local cache settings.
	Storage ClientStorage
	// Sync contains the protocol knobs shared with the server.
	Sync Sync
	// Workers contains background job settings.
	Workers ClientWorkers
}

// GetClientConfig builds and validates a client-specific config view from the
// merged structured configuration.
//
// It loads the base config via [GetStructuredConfig], maps only the fields
// relevant to the client runtime, and validates the resulting [ClientConfig].
func GetClientConfig() (*ClientConfig, error) {
	cfg, err := GetStructuredConfig()
	if err != nil {
		return nil, fmt.Errorf("error get structured config: %w", err)
	}

	clientCfg := &ClientConfig{
		Adapter: ClientAdapter{
			HTTPAddress:    cfg.Adapter.HTTPAddress,
			RequestTimeout: cfg.Adapter.RequestTimeout,
		},
		Storage: ClientStorage{
			CacheDBPath: cfg.Storage.DB.DSN,
		},
		Sync:    cfg.Sync,
		Workers: ClientWorkers{PollInterval: cfg.Workers.PollInterval},
	}

	return clientCfg, clientCfg.validate()
}
