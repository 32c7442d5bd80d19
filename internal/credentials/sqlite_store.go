package credentials

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/oauth2"

	"github.com/felixgeelhaar/pairfit/internal/crypto"
)

// SQLiteStore keeps the credential pair in its own table of the on-device
// database, with both tokens encrypted before they touch disk. A single
// row is maintained; there is at most one signed-in identity per install.
type SQLiteStore struct {
	db        *sql.DB
	encrypter crypto.Encrypter
}

// NewSQLiteStore prepares the credentials table on db.
func NewSQLiteStore(db *sql.DB, encrypter crypto.Encrypter) (*SQLiteStore, error) {
	if db == nil {
		return nil, errors.New("database is required")
	}
	if encrypter == nil {
		return nil, errors.New("encrypter is required")
	}

	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS credentials (
		id            INTEGER PRIMARY KEY CHECK (id = 1),
		access_token  BLOB NOT NULL,
		refresh_token BLOB NOT NULL,
		token_type    TEXT NOT NULL
	)`); err != nil {
		return nil, fmt.Errorf("failed to create credentials table: %w", err)
	}

	return &SQLiteStore{db: db, encrypter: encrypter}, nil
}

func (s *SQLiteStore) Load(ctx context.Context) (*oauth2.Token, error) {
	var accessEnc, refreshEnc []byte
	var tokenType string

	err := s.db.QueryRowContext(ctx,
		`SELECT access_token, refresh_token, token_type FROM credentials WHERE id = 1`,
	).Scan(&accessEnc, &refreshEnc, &tokenType)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	access, err := s.encrypter.Decrypt(accessEnc)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt access token: %w", err)
	}
	refresh, err := s.encrypter.Decrypt(refreshEnc)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt refresh token: %w", err)
	}

	return &oauth2.Token{
		AccessToken:  string(access),
		RefreshToken: string(refresh),
		TokenType:    tokenType,
	}, nil
}

func (s *SQLiteStore) Save(ctx context.Context, token *oauth2.Token) error {
	if token == nil {
		return errors.New("token is required")
	}

	accessEnc, err := s.encrypter.Encrypt([]byte(token.AccessToken))
	if err != nil {
		return fmt.Errorf("failed to encrypt access token: %w", err)
	}
	refreshEnc, err := s.encrypter.Encrypt([]byte(token.RefreshToken))
	if err != nil {
		return fmt.Errorf("failed to encrypt refresh token: %w", err)
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO credentials (id, access_token, refresh_token, token_type)
		 VALUES (1, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
			access_token = excluded.access_token,
			refresh_token = excluded.refresh_token,
			token_type = excluded.token_type`,
		accessEnc, refreshEnc, token.TokenType,
	)
	return err
}

func (s *SQLiteStore) Clear(ctx context.Context) error {
	_, err := s.db.ExecContext(ctx, `DELETE FROM credentials WHERE id = 1`)
	return err
}
