package cache

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type profile struct {
	Name  string `json:"name"`
	Level int    `json:"level"`
}

func TestMirror_SaveLoadRoundTrip(t *testing.T) {
	store := NewMemoryStore()
	mirror := NewMirror[profile](store, "test.profile", nil)

	mirror.Save(profile{Name: "Ada", Level: 3})

	loaded, ok := mirror.Load()
	require.True(t, ok)
	assert.Equal(t, "Ada", loaded.Name)
	assert.Equal(t, 3, loaded.Level)
}

func TestMirror_LoadMissingKey(t *testing.T) {
	mirror := NewMirror[profile](NewMemoryStore(), "test.profile", nil)

	_, ok := mirror.Load()
	assert.False(t, ok)
}

func TestMirror_CorruptBlobIsAMiss(t *testing.T) {
	store := NewMemoryStore()
	require.NoError(t, store.Set("test.profile", "{broken"))

	mirror := NewMirror[profile](store, "test.profile", nil)
	_, ok := mirror.Load()
	assert.False(t, ok)
}

func TestMirror_Clear(t *testing.T) {
	store := NewMemoryStore()
	mirror := NewMirror[profile](store, "test.profile", nil)
	mirror.Save(profile{Name: "Ada"})

	mirror.Clear()

	_, ok := mirror.Load()
	assert.False(t, ok)
	assert.Equal(t, 0, store.Len())
}

type failingStore struct{}

func (failingStore) Get(string) (string, bool, error) { return "", false, errors.New("disk gone") }
func (failingStore) Set(string, string) error         { return errors.New("disk gone") }
func (failingStore) Delete(string) error              { return errors.New("disk gone") }
func (failingStore) Close() error                     { return nil }

func TestMirror_StorageFailuresNeverPropagate(t *testing.T) {
	mirror := NewMirror[profile](failingStore{}, "test.profile", nil)

	// None of these may panic or surface the error.
	mirror.Save(profile{Name: "Ada"})
	mirror.Clear()

	_, ok := mirror.Load()
	assert.False(t, ok)
}

func TestMirror_SliceAndMapValues(t *testing.T) {
	store := NewMemoryStore()

	sliceMirror := NewMirror[[]profile](store, "test.slice", nil)
	sliceMirror.Save([]profile{{Name: "Ada"}, {Name: "Grace"}})
	loaded, ok := sliceMirror.Load()
	require.True(t, ok)
	assert.Len(t, loaded, 2)

	mapMirror := NewMirror[map[string][]int](store, "test.map", nil)
	mapMirror.Save(map[string][]int{"a": {1, 2}})
	m, ok := mapMirror.Load()
	require.True(t, ok)
	assert.Equal(t, []int{1, 2}, m["a"])
}
