package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigBuilder_MergePriority(t *testing.T) {
	// First appended config wins for non-zero fields (mergo does not
	// overwrite already-set destination fields).
	first := &StructuredConfig{Storage: Storage{DB: DBConfig{DSN: "from-env"}}}
	second := &StructuredConfig{
		Storage: Storage{DB: DBConfig{DSN: "from-flags"}},
		Server:  Server{HTTPAddress: "localhost:9999"},
	}

	b := newConfigBuilder()
	b.configs = append(b.configs, first, second)

	cfg, err := b.build()
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Storage.DB.DSN)
	assert.Equal(t, "localhost:9999", cfg.Server.HTTPAddress)
}

func TestConfigBuilder_NormalizeAppliesDefaults(t *testing.T) {
	b := newConfigBuilder()
	b.configs = append(b.configs, &StructuredConfig{})

	cfg, err := b.build()
	require.NoError(t, err)

	assert.Equal(t, DefaultRetentionWindow, cfg.Sync.RetentionWindow)
	assert.Equal(t, DefaultPageLimit, cfg.Sync.PageLimit)
	assert.Equal(t, DefaultLookbackWindow, cfg.Sync.LookbackWindow)
	assert.Equal(t, DefaultCooldownSteps(), cfg.Sync.CooldownSteps)
	assert.Equal(t, DefaultCooldownReset, cfg.Sync.CooldownReset)
	assert.Equal(t, DefaultPruneInterval, cfg.Workers.PruneInterval)
	assert.Equal(t, DefaultPollInterval, cfg.Workers.PollInterval)
}

func TestValidate_RejectsLookbackShorterThanRetention(t *testing.T) {
	cfg := &StructuredConfig{
		Sync: Sync{
			RetentionWindow: 30 * 24 * time.Hour,
			PageLimit:       100,
			LookbackWindow:  7 * 24 * time.Hour,
		},
	}

	err := cfg.validate()
	assert.ErrorIs(t, err, ErrInvalidSyncConfigs)
}

func TestClientConfigValidate(t *testing.T) {
	valid := &ClientConfig{
		Adapter: ClientAdapter{HTTPAddress: "http://localhost:8080", RequestTimeout: 15 * time.Second},
		Storage: ClientStorage{CacheDBPath: "/tmp/gastify-cache.db"},
		Workers: ClientWorkers{PollInterval: time.Minute},
	}
	require.NoError(t, valid.validate())

	noStore := *valid
	noStore.Storage.CacheDBPath = ""
	assert.ErrorIs(t, noStore.validate(), ErrInvalidStorageConfigs)

	inMemory := *valid
	inMemory.Storage.CacheDBPath = ":memory:"
	assert.ErrorIs(t, inMemory.validate(), ErrInvalidStorageConfigs)

	noAdapter := *valid
	noAdapter.Adapter.HTTPAddress = ""
	assert.ErrorIs(t, noAdapter.validate(), ErrInvalidAdapterConfigs)

	noPoll := *valid
	noPoll.Workers.PollInterval = 0
	assert.ErrorIs(t, noPoll.validate(), ErrInvalidWorkerConfigs)
}
