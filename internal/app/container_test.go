package app

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"github.com/felixgeelhaar/pairfit/internal/cache"
	"github.com/felixgeelhaar/pairfit/pkg/config"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		AppEnv:     "development",
		APIBaseURL: "http://127.0.0.1:0",
		DataDir:    t.TempDir(),
	}
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestNewContainer_BuildsFullGraph(t *testing.T) {
	c, err := NewContainer(testConfig(t), testLogger())
	require.NoError(t, err)
	t.Cleanup(c.Close)

	assert.NotNil(t, c.Cache)
	assert.NotNil(t, c.Credentials)
	assert.NotNil(t, c.APIClient)
	assert.NotNil(t, c.Bus)
	assert.NotNil(t, c.AuthStore)
	assert.NotNil(t, c.WorkoutStore)
	assert.NotNil(t, c.HabitStore)
	assert.NotNil(t, c.CoupleStore)
}

func TestBuildCredentialStore_SharesSqliteCacheDatabase(t *testing.T) {
	cfg := testConfig(t)
	sqliteCache, err := cache.OpenSQLite(cfg.DatabasePath())
	require.NoError(t, err)
	t.Cleanup(func() { sqliteCache.Close() })

	store, credDB, err := buildCredentialStore(cfg, sqliteCache, testLogger())
	require.NoError(t, err)
	require.NotNil(t, store)
	assert.Nil(t, credDB, "credentials ride along in the cache database")
}

func TestClose_ReleasesDedicatedCredentialDatabase(t *testing.T) {
	cfg := testConfig(t)
	logger := testLogger()

	store, credDB, err := buildCredentialStore(cfg, cache.NewMemoryStore(), logger)
	require.NoError(t, err)
	require.NotNil(t, credDB, "a non-sqlite cache gets its own credential database")

	require.NoError(t, store.Save(context.Background(), &oauth2.Token{AccessToken: "a", RefreshToken: "r"}))

	c := &Container{Logger: logger, Cache: cache.NewMemoryStore(), Credentials: store, credDB: credDB}
	c.Close()

	_, err = store.Load(context.Background())
	assert.Error(t, err, "the credential database handle is closed with the container")
}
