package cache

import (
	"encoding/json"
	"log/slog"
)

// Mirror is a typed write-through wrapper over a single cache key. It is
// the one place mirrored state is serialized and persisted, so a store
// cannot forget to refresh its durable copy on some mutation path.
//
// Persistence failures are logged, never propagated: a missed mirror
// write degrades cold-start hydration, not correctness, because the
// in-memory state already reflects the server response.
type Mirror[T any] struct {
	store  Store
	key    string
	logger *slog.Logger
}

// NewMirror creates a mirror for key backed by store.
func NewMirror[T any](store Store, key string, logger *slog.Logger) *Mirror[T] {
	if logger == nil {
		logger = slog.Default()
	}
	return &Mirror[T]{store: store, key: key, logger: logger}
}

// Save serializes value and writes it through to durable storage.
func (m *Mirror[T]) Save(value T) {
	data, err := json.Marshal(value)
	if err != nil {
		m.logger.Error("failed to serialize mirror value", "key", m.key, "error", err)
		return
	}
	if err := m.store.Set(m.key, string(data)); err != nil {
		m.logger.Error("failed to persist mirror value", "key", m.key, "error", err)
	}
}

// Load reads and deserializes the mirrored value. A missing key or a
// corrupt blob is reported as a cache miss.
func (m *Mirror[T]) Load() (T, bool) {
	var value T

	data, ok, err := m.store.Get(m.key)
	if err != nil {
		m.logger.Error("failed to read mirror value", "key", m.key, "error", err)
		return value, false
	}
	if !ok {
		return value, false
	}

	if err := json.Unmarshal([]byte(data), &value); err != nil {
		m.logger.Error("failed to decode mirror value", "key", m.key, "error", err)
		return value, false
	}
	return value, true
}

// Clear removes the mirrored value from durable storage.
func (m *Mirror[T]) Clear() {
	if err := m.store.Delete(m.key); err != nil {
		m.logger.Error("failed to clear mirror value", "key", m.key, "error", err)
	}
}
