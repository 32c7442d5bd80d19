// Package couple owns pairing state: the couple, its members, sharing
// settings, invite codes, and the partner's shared feed.
package couple

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"sync"

	"github.com/felixgeelhaar/pairfit/internal/api"
	"github.com/felixgeelhaar/pairfit/internal/cache"
	"github.com/felixgeelhaar/pairfit/internal/eventbus"
)

// ErrNoCouple is returned by actions that require an existing couple.
// Checked locally, before any network call.
var ErrNoCouple = errors.New("no couple found")

// Store is the couple entity store.
type Store struct {
	mu         sync.Mutex
	couple     *Couple
	members    []Member
	settings   *Settings
	invite     *Invite
	sharedFeed []FeedItem
	loading    bool
	lastErr    string

	client         *api.Client
	coupleMirror   *cache.Mirror[*Couple]
	settingsMirror *cache.Mirror[*Settings]
	logger         *slog.Logger
}

// NewStore creates the couple store, hydrates the mirrored couple and
// settings, and subscribes to logout for mirror purge. Members and feed
// are not mirrored; they are cheap to refetch and partner-owned.
func NewStore(client *api.Client, cacheStore cache.Store, bus *eventbus.Bus, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Store{
		client:         client,
		coupleMirror:   cache.NewMirror[*Couple](cacheStore, cache.KeyCoupleInfo, logger),
		settingsMirror: cache.NewMirror[*Settings](cacheStore, cache.KeyCoupleSettings, logger),
		logger:         logger,
	}

	if couple, ok := s.coupleMirror.Load(); ok {
		s.couple = couple
	}
	if settings, ok := s.settingsMirror.Load(); ok {
		s.settings = settings
	}

	bus.Subscribe(eventbus.TopicLoggedOut, func(ctx context.Context, _ eventbus.Event) error {
		s.ClearCoupleData()
		return nil
	})

	return s
}

// FetchCoupleInfo loads the current user's couple. No couple is the
// "no partner yet" terminal display state, not an error: local couple
// state is cleared. With a couple, members and settings are fetched in
// parallel and the couple and settings mirrored.
func (s *Store) FetchCoupleInfo(ctx context.Context) error {
	s.begin()
	defer s.end()

	var couples []Couple
	if err := s.client.Do(ctx, http.MethodGet, "/couples", nil, &couples); err != nil {
		s.setError(api.Detail(err, "Failed to fetch couple info"))
		return err
	}

	if len(couples) == 0 {
		s.coupleMirror.Clear()
		s.settingsMirror.Clear()

		s.mu.Lock()
		s.couple = nil
		s.members = nil
		s.settings = nil
		s.mu.Unlock()
		return nil
	}

	// A user belongs to at most one couple.
	found := couples[0]

	var (
		members     []Member
		settings    Settings
		membersErr  error
		settingsErr error
		wg          sync.WaitGroup
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		membersErr = s.client.Do(ctx, http.MethodGet, "/couples/"+found.ID+"/members", nil, &members)
	}()
	go func() {
		defer wg.Done()
		settingsErr = s.client.Do(ctx, http.MethodGet, "/couples/"+found.ID+"/settings", nil, &settings)
	}()
	wg.Wait()

	if membersErr != nil {
		s.setError(api.Detail(membersErr, "Failed to fetch couple info"))
		return membersErr
	}
	if settingsErr != nil {
		s.setError(api.Detail(settingsErr, "Failed to fetch couple info"))
		return settingsErr
	}

	s.coupleMirror.Save(&found)
	s.settingsMirror.Save(&settings)

	s.mu.Lock()
	s.couple = &found
	s.members = members
	s.settings = &settings
	s.mu.Unlock()
	return nil
}

// CreateCouple creates the couple, then re-runs FetchCoupleInfo instead
// of constructing member/settings state locally.
func (s *Store) CreateCouple(ctx context.Context, req CreateCoupleRequest) error {
	s.begin()

	var created Couple
	if err := s.client.Do(ctx, http.MethodPost, "/couples", req, &created); err != nil {
		s.setError(api.Detail(err, "Failed to create couple"))
		s.end()
		return err
	}

	s.end()
	return s.FetchCoupleInfo(ctx)
}

// GenerateInvite requires an existing couple; without one it fails
// locally with ErrNoCouple and no network call. The returned code is
// also kept in state for display.
func (s *Store) GenerateInvite(ctx context.Context) (*Invite, error) {
	s.mu.Lock()
	current := s.couple
	s.mu.Unlock()
	if current == nil {
		return nil, ErrNoCouple
	}

	s.begin()
	defer s.end()

	var invite Invite
	if err := s.client.Do(ctx, http.MethodPost, "/couples/"+current.ID+"/invite", nil, &invite); err != nil {
		s.setError(api.Detail(err, "Failed to generate invite"))
		return nil, err
	}

	s.mu.Lock()
	s.invite = &invite
	s.mu.Unlock()

	copied := invite
	return &copied, nil
}

// AcceptInvite joins the couple behind the code, then re-runs
// FetchCoupleInfo for the resulting state.
func (s *Store) AcceptInvite(ctx context.Context, code string) error {
	s.begin()

	path := "/couples/accept?code=" + url.QueryEscape(code)
	if err := s.client.Do(ctx, http.MethodPost, path, nil, nil); err != nil {
		s.setError(api.Detail(err, "Failed to accept invite"))
		s.end()
		return err
	}

	s.end()
	return s.FetchCoupleInfo(ctx)
}

// UpdateSettings partially updates sharing settings and replaces the
// local snapshot with the server result.
func (s *Store) UpdateSettings(ctx context.Context, req UpdateSettingsRequest) error {
	s.mu.Lock()
	current := s.couple
	s.mu.Unlock()
	if current == nil {
		return ErrNoCouple
	}

	s.begin()
	defer s.end()

	var updated Settings
	if err := s.client.Do(ctx, http.MethodPatch, "/couples/"+current.ID+"/settings", req, &updated); err != nil {
		s.setError(api.Detail(err, "Failed to update settings"))
		return err
	}

	s.settingsMirror.Save(&updated)

	s.mu.Lock()
	s.settings = &updated
	s.mu.Unlock()
	return nil
}

// FetchSharedFeed refreshes the partner activity stream. Without a
// couple or loaded settings the feed is meaningless, so the call no-ops
// locally. Failures are logged, not surfaced.
func (s *Store) FetchSharedFeed(ctx context.Context) {
	s.mu.Lock()
	current := s.couple
	configured := s.settings != nil
	s.mu.Unlock()
	if current == nil || !configured {
		return
	}

	var feed []FeedItem
	if err := s.client.Do(ctx, http.MethodGet, "/couples/"+current.ID+"/feed", nil, &feed); err != nil {
		s.logger.Warn("failed to fetch shared feed", "error", err)
		return
	}

	s.mu.Lock()
	s.sharedFeed = feed
	s.mu.Unlock()
}

// LeaveCouple leaves on the server, then clears all local couple state
// and cache keys unconditionally.
func (s *Store) LeaveCouple(ctx context.Context) error {
	s.mu.Lock()
	current := s.couple
	s.mu.Unlock()
	if current == nil {
		return nil
	}

	s.begin()
	defer s.end()

	if err := s.client.Do(ctx, http.MethodPost, "/couples/"+current.ID+"/leave", nil, nil); err != nil {
		s.setError(api.Detail(err, "Failed to leave couple"))
		return err
	}

	s.ClearCoupleData()
	return nil
}

// ClearCoupleData drops all local couple state and its cache keys.
func (s *Store) ClearCoupleData() {
	s.coupleMirror.Clear()
	s.settingsMirror.Clear()

	s.mu.Lock()
	s.couple = nil
	s.members = nil
	s.settings = nil
	s.invite = nil
	s.sharedFeed = nil
	s.mu.Unlock()
}

// ClearError clears only the error field.
func (s *Store) ClearError() {
	s.mu.Lock()
	s.lastErr = ""
	s.mu.Unlock()
}

// Couple returns a copy of the current couple, or nil.
func (s *Store) Couple() *Couple {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.couple == nil {
		return nil
	}
	copied := *s.couple
	return &copied
}

// Members returns the couple members.
func (s *Store) Members() []Member {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Member(nil), s.members...)
}

// Settings returns a copy of the sharing settings, or nil.
func (s *Store) Settings() *Settings {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.settings == nil {
		return nil
	}
	copied := *s.settings
	return &copied
}

// Invite returns the last generated invite, or nil.
func (s *Store) Invite() *Invite {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.invite == nil {
		return nil
	}
	copied := *s.invite
	return &copied
}

// SharedFeed returns the partner activity stream.
func (s *Store) SharedFeed() []FeedItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]FeedItem(nil), s.sharedFeed...)
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
