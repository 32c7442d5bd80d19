// Package credentials persists the access/refresh credential pair. It is
// deliberately separate from the general cache: credentials are secrets,
// encrypted at rest, and are never written under a cache key.
package credentials

import (
	"context"

	"golang.org/x/oauth2"
)

// Store persists and retrieves the credential pair.
type Store interface {
	// Load returns the stored credential pair, or (nil, nil) when no
	// credentials are present.
	Load(ctx context.Context) (*oauth2.Token, error)

	// Save replaces the stored credential pair.
	Save(ctx context.Context, token *oauth2.Token) error

	// Clear removes the stored credential pair. Clearing an empty store
	// is not an error.
	Clear(ctx context.Context) error
}
