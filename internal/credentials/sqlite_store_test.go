package credentials

import (
	"context"
	"database/sql"
	"encoding/base64"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
	_ "modernc.org/sqlite"

	"github.com/felixgeelhaar/pairfit/internal/crypto"
)

func openTestDB(t *testing.T) *sql.DB {
	t.Helper()
	db, err := sql.Open("sqlite", filepath.Join(t.TempDir(), "creds.db"))
	require.NoError(t, err)
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { db.Close() })
	return db
}

func testEncrypter(t *testing.T) crypto.Encrypter {
	t.Helper()
	key := make([]byte, 32)
	for i := range key {
		key[i] = byte(i)
	}
	enc, err := crypto.NewAESGCMFromBase64Key(base64.StdEncoding.EncodeToString(key))
	require.NoError(t, err)
	return enc
}

func TestSQLiteStore_SaveLoadRoundTrip(t *testing.T) {
	store, err := NewSQLiteStore(openTestDB(t), testEncrypter(t))
	require.NoError(t, err)

	token := &oauth2.Token{
		AccessToken:  "access-1",
		RefreshToken: "refresh-1",
		TokenType:    "bearer",
	}
	require.NoError(t, store.Save(context.Background(), token))

	loaded, err := store.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "access-1", loaded.AccessToken)
	assert.Equal(t, "refresh-1", loaded.RefreshToken)
	assert.Equal(t, "bearer", loaded.TokenType)
}

func TestSQLiteStore_LoadEmpty(t *testing.T) {
	store, err := NewSQLiteStore(openTestDB(t), testEncrypter(t))
	require.NoError(t, err)

	loaded, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, loaded)
}

func TestSQLiteStore_SaveReplacesSingleRow(t *testing.T) {
	db := openTestDB(t)
	store, err := NewSQLiteStore(db, testEncrypter(t))
	require.NoError(t, err)

	require.NoError(t, store.Save(context.Background(), &oauth2.Token{AccessToken: "a1", RefreshToken: "r1", TokenType: "bearer"}))
	require.NoError(t, store.Save(context.Background(), &oauth2.Token{AccessToken: "a2", RefreshToken: "r2", TokenType: "bearer"}))

	loaded, err := store.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "a2", loaded.AccessToken)

	var count int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM credentials`).Scan(&count))
	assert.Equal(t, 1, count, "at most one identity per install")
}

func TestSQLiteStore_Clear(t *testing.T) {
	store, err := NewSQLiteStore(openTestDB(t), testEncrypter(t))
	require.NoError(t, err)

	require.NoError(t, store.Save(context.Background(), &oauth2.Token{AccessToken: "a", RefreshToken: "r", TokenType: "bearer"}))
	require.NoError(t, store.Clear(context.Background()))

	loaded, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, loaded)

	// Clearing an empty store is fine too.
	assert.NoError(t, store.Clear(context.Background()))
}

func TestSQLiteStore_TokensEncryptedAtRest(t *testing.T) {
	db := openTestDB(t)
	store, err := NewSQLiteStore(db, testEncrypter(t))
	require.NoError(t, err)

	require.NoError(t, store.Save(context.Background(), &oauth2.Token{AccessToken: "very-secret", RefreshToken: "r", TokenType: "bearer"}))

	var raw []byte
	require.NoError(t, db.QueryRow(`SELECT access_token FROM credentials WHERE id = 1`).Scan(&raw))
	assert.NotContains(t, string(raw), "very-secret")
}

func TestSQLiteStore_SaveNilToken(t *testing.T) {
	store, err := NewSQLiteStore(openTestDB(t), testEncrypter(t))
	require.NoError(t, err)

	assert.Error(t, store.Save(context.Background(), nil))
}

func TestNewSQLiteStore_Validation(t *testing.T) {
	_, err := NewSQLiteStore(nil, testEncrypter(t))
	assert.Error(t, err)

	_, err = NewSQLiteStore(openTestDB(t), nil)
	assert.Error(t, err)
}

func TestMemoryStore_RoundTrip(t *testing.T) {
	store := NewMemoryStore()

	loaded, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, loaded)

	token := &oauth2.Token{AccessToken: "a", RefreshToken: "r"}
	require.NoError(t, store.Save(context.Background(), token))

	loaded, err = store.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, loaded)
	assert.Equal(t, "a", loaded.AccessToken)

	// The store hands out copies, not the caller's pointer.
	token.AccessToken = "mutated"
	loaded, err = store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "a", loaded.AccessToken)

	require.NoError(t, store.Clear(context.Background()))
	loaded, err = store.Load(context.Background())
	require.NoError(t, err)
	assert.Nil(t, loaded)
}
