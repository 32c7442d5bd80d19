// Package app wires the client together. Stores are explicit
// dependencies owned by the container and injected where needed, never
// package-level singletons.
package app

import (
	"fmt"
	"log/slog"

	"github.com/felixgeelhaar/pairfit/internal/api"
	"github.com/felixgeelhaar/pairfit/internal/auth"
	"github.com/felixgeelhaar/pairfit/internal/cache"
	"github.com/felixgeelhaar/pairfit/internal/couple"
	"github.com/felixgeelhaar/pairfit/internal/credentials"
	"github.com/felixgeelhaar/pairfit/internal/crypto"
	"github.com/felixgeelhaar/pairfit/internal/eventbus"
	"github.com/felixgeelhaar/pairfit/internal/habit"
	"github.com/felixgeelhaar/pairfit/internal/workout"
	"github.com/felixgeelhaar/pairfit/pkg/config"
)

// Container holds all application dependencies.
type Container struct {
	Config *config.Config
	Logger *slog.Logger

	Cache       cache.Store
	Credentials credentials.Store
	APIClient   *api.Client
	Bus         *eventbus.Bus

	AuthStore    *auth.Store
	WorkoutStore *workout.Store
	HabitStore   *habit.Store
	CoupleStore  *couple.Store

	// Set only when credentials live in their own database (non-sqlite cache).
	credDB *cache.SQLiteStore
}

// NewContainer builds the dependency graph: durable cache, credential
// store, API client, event bus, and the four entity stores.
func NewContainer(cfg *config.Config, logger *slog.Logger) (*Container, error) {
	if logger == nil {
		logger = slog.Default()
	}

	cacheStore, err := cache.Open(cfg.CacheURL, cfg.DatabasePath())
	if err != nil {
		return nil, fmt.Errorf("failed to open cache store: %w", err)
	}

	credStore, credDB, err := buildCredentialStore(cfg, cacheStore, logger)
	if err != nil {
		cacheStore.Close()
		return nil, err
	}

	client := api.NewClient(cfg.APIBaseURL, credStore, logger,
		api.WithTimeout(cfg.HTTPTimeout),
	)
	bus := eventbus.New(logger)

	c := &Container{
		Config:      cfg,
		Logger:      logger,
		Cache:       cacheStore,
		Credentials: credStore,
		APIClient:   client,
		Bus:         bus,

		AuthStore:    auth.NewStore(client, credStore, cacheStore, bus, logger),
		WorkoutStore: workout.NewStore(client, cacheStore, bus, logger),
		HabitStore:   habit.NewStore(client, cacheStore, bus, logger),
		CoupleStore:  couple.NewStore(client, cacheStore, bus, logger),

		credDB: credDB,
	}

	return c, nil
}

// buildCredentialStore places credentials next to the cache when the
// default sqlite backend is in use, falling back to a dedicated database
// file when the cache lives elsewhere (e.g. Redis). The second return is
// that dedicated database, nil when the cache database is shared; the
// container owns it and closes it on Close.
func buildCredentialStore(cfg *config.Config, cacheStore cache.Store, logger *slog.Logger) (credentials.Store, *cache.SQLiteStore, error) {
	var encrypter crypto.Encrypter
	if cfg.EncryptionKey != "" {
		enc, err := crypto.NewAESGCMFromBase64Key(cfg.EncryptionKey)
		if err != nil {
			return nil, nil, fmt.Errorf("invalid encryption key: %w", err)
		}
		encrypter = enc
	} else {
		if cfg.IsProduction() {
			return nil, nil, fmt.Errorf("PAIRFIT_ENCRYPTION_KEY is required in production")
		}
		logger.Warn("no encryption key configured, storing credentials unencrypted")
		encrypter = crypto.NoopEncrypter{}
	}

	if sqliteCache, ok := cacheStore.(*cache.SQLiteStore); ok {
		store, err := credentials.NewSQLiteStore(sqliteCache.DB(), encrypter)
		return store, nil, err
	}

	db, err := cache.OpenSQLite(cfg.DatabasePath())
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open credential database: %w", err)
	}
	store, err := credentials.NewSQLiteStore(db.DB(), encrypter)
	if err != nil {
		db.Close()
		return nil, nil, err
	}
	return store, db, nil
}

// Close releases container resources.
func (c *Container) Close() {
	if c.Cache != nil {
		if err := c.Cache.Close(); err != nil {
			c.Logger.Warn("error closing cache store", "error", err)
		}
	}
	if c.credDB != nil {
		if err := c.credDB.Close(); err != nil {
			c.Logger.Warn("error closing credential database", "error", err)
		}
	}
}
