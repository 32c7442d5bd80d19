// Package auth owns the client's session state: the signed-in user, the
// credential pair lifecycle, and the anonymous/authenticating/
// authenticated transitions.
package auth

import (
	"context"
	"log/slog"
	"sync"

	"golang.org/x/oauth2"

	"github.com/felixgeelhaar/pairfit/internal/api"
	"github.com/felixgeelhaar/pairfit/internal/cache"
	"github.com/felixgeelhaar/pairfit/internal/credentials"
	"github.com/felixgeelhaar/pairfit/internal/eventbus"
)

// Store is the auth entity store. At most one live user per instance.
type Store struct {
	mu            sync.Mutex
	user          *api.User
	authenticated bool
	loading       bool
	lastErr       string

	client *api.Client
	creds  credentials.Store
	mirror *cache.Mirror[*api.User]
	bus    *eventbus.Bus
	logger *slog.Logger
}

// NewStore creates the auth store and hydrates the mirrored user so a
// cold start can render the last-known session before any network call.
func NewStore(client *api.Client, creds credentials.Store, cacheStore cache.Store, bus *eventbus.Bus, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Store{
		client: client,
		creds:  creds,
		mirror: cache.NewMirror[*api.User](cacheStore, cache.KeyAuthUser, logger),
		bus:    bus,
		logger: logger,
	}

	if user, ok := s.mirror.Load(); ok && user != nil {
		s.user = user
		s.authenticated = true
	}

	return s
}

// Login authenticates with email/password. On success the credential
// pair is persisted and the user mirrored; on failure the error message
// is captured into state and the error returned for local handling.
func (s *Store) Login(ctx context.Context, req api.LoginRequest) error {
	s.begin()
	defer s.end()

	resp, err := s.client.Login(ctx, req)
	if err != nil {
		s.setError(api.Detail(err, "Login failed"))
		return err
	}

	return s.establishSession(ctx, resp)
}

// Register creates an account and signs in.
func (s *Store) Register(ctx context.Context, req api.RegisterRequest) error {
	s.begin()
	defer s.end()

	resp, err := s.client.Register(ctx, req)
	if err != nil {
		s.setError(api.Detail(err, "Registration failed"))
		return err
	}

	return s.establishSession(ctx, resp)
}

// LoginWithApple exchanges an Apple identity token for a session.
func (s *Store) LoginWithApple(ctx context.Context, identityToken, authorizationCode string) error {
	s.begin()
	defer s.end()

	resp, err := s.client.SignInWithApple(ctx, api.AppleSignInRequest{
		IdentityToken:     identityToken,
		AuthorizationCode: authorizationCode,
	})
	if err != nil {
		s.setError(api.Detail(err, "Apple Sign In failed"))
		return err
	}

	return s.establishSession(ctx, resp)
}

func (s *Store) establishSession(ctx context.Context, resp *api.LoginResponse) error {
	token := &oauth2.Token{
		AccessToken:  resp.AccessToken,
		RefreshToken: resp.RefreshToken,
		TokenType:    resp.TokenType,
	}
	if err := s.creds.Save(ctx, token); err != nil {
		s.setError("Failed to store credentials")
		return err
	}

	user := resp.User
	s.mirror.Save(&user)

	s.mu.Lock()
	s.user = &user
	s.authenticated = true
	s.mu.Unlock()

	return nil
}

// Logout ends the session. The remote call is best-effort: local logout
// always succeeds, credentials and the mirrored user are always cleared,
// and every other store purges its mirror before Logout returns.
func (s *Store) Logout(ctx context.Context) {
	s.begin()
	defer s.end()

	if err := s.client.Logout(ctx); err != nil {
		s.logger.Warn("remote logout failed, continuing with local logout", "error", err)
	}

	if err := s.creds.Clear(ctx); err != nil {
		s.logger.Error("failed to clear credentials", "error", err)
	}
	s.mirror.Clear()

	s.mu.Lock()
	s.user = nil
	s.authenticated = false
	s.lastErr = ""
	s.mu.Unlock()

	// Synchronous dispatch: subscribers clear their cache keys before a
	// new identity can sign in.
	s.bus.Publish(ctx, eventbus.TopicLoggedOut, nil)
}

// CheckAuthStatus bootstraps session state at process start. Without a
// stored access credential the store settles on anonymous with no
// network call. With one, the backend decides: success refreshes the
// mirrored user, failure clears the now-invalid credentials and mirror.
func (s *Store) CheckAuthStatus(ctx context.Context) {
	stored, err := s.creds.Load(ctx)
	if err != nil {
		s.logger.Error("failed to load credentials", "error", err)
	}
	if stored == nil || stored.AccessToken == "" {
		s.mu.Lock()
		s.user = nil
		s.authenticated = false
		s.mu.Unlock()
		return
	}

	s.begin()
	defer s.end()

	user, err := s.client.Me(ctx)
	if err != nil {
		s.logger.Info("stored credentials rejected, clearing session", "error", err)
		if clearErr := s.creds.Clear(ctx); clearErr != nil {
			s.logger.Error("failed to clear credentials", "error", clearErr)
		}
		s.mirror.Clear()

		s.mu.Lock()
		s.user = nil
		s.authenticated = false
		s.mu.Unlock()
		return
	}

	s.mirror.Save(user)

	s.mu.Lock()
	s.user = user
	s.authenticated = true
	s.mu.Unlock()
}

// SetUser replaces the in-memory and mirrored user, e.g. after a profile
// update.
func (s *Store) SetUser(user api.User) {
	s.mirror.Save(&user)

	s.mu.Lock()
	s.user = &user
	s.mu.Unlock()
}

// ClearError clears only the error field.
func (s *Store) ClearError() {
	s.mu.Lock()
	s.lastErr = ""
	s.mu.Unlock()
}

// CurrentUser returns a copy of the signed-in user, or nil.
func (s *Store) CurrentUser() *api.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.user == nil {
		return nil
	}
	copied := *s.user
	return &copied
}

// IsAuthenticated reports whether a user is signed in.
func (s *Store) IsAuthenticated() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.authenticated
}

// Loading reports whether an action is in flight.
func (s *Store) Loading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

// Err returns the captured error message, empty when none.
func (s *Store) Err() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastErr
}

func (s *Store) begin() {
	s.mu.Lock()
	s.loading = true
	s.lastErr = ""
	s.mu.Unlock()
}

func (s *Store) end() {
	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
}

func (s *Store) setError(msg string) {
	s.mu.Lock()
	s.lastErr = msg
	s.mu.Unlock()
}
