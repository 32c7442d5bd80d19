// Package cache implements the durable on-device key-value store that
// backs the write-through mirrors of every entity store. Values are
// string-serialized JSON blobs keyed by name; each entity store owns its
// keys exclusively.
package cache

import (
	"fmt"
	"net/url"
)

// Well-known cache keys. No two stores write the same key. Credentials
// are never stored here; they live in the credentials store.
const (
	KeyAuthUser         = "auth.user"
	KeyWorkoutTemplates = "workout.templates"
	KeyHabits           = "habit.habits"
	KeyHabitLogs        = "habit.logs"
	KeyCoupleInfo       = "couple.info"
	KeyCoupleSettings   = "couple.settings"
)

// Store is a durable key-value store of string blobs.
type Store interface {
	// Get returns the value for key. The second return is false when the
	// key is absent.
	Get(key string) (string, bool, error)

	// Set writes the value for key, replacing any prior value.
	Set(key, value string) error

	// Delete removes the key. Deleting an absent key is not an error.
	Delete(key string) error

	// Close releases the underlying storage.
	Close() error
}

// Open selects a cache backend from a URL. An empty URL opens the default
// on-device sqlite store at path. A redis:// URL opens a Redis-backed
// store, used by development and test shells that share state across
// processes.
func Open(cacheURL, sqlitePath string) (Store, error) {
	if cacheURL == "" {
		return OpenSQLite(sqlitePath)
	}

	u, err := url.Parse(cacheURL)
	if err != nil {
		return nil, fmt.Errorf("invalid cache URL: %w", err)
	}

	switch u.Scheme {
	case "redis", "rediss":
		return OpenRedis(cacheURL)
	case "sqlite", "file":
		return OpenSQLite(u.Path)
	default:
		return nil, fmt.Errorf("unsupported cache scheme %q", u.Scheme)
	}
}
