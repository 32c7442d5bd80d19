// Package workout owns templates, the single current session, and the
// weekly stats snapshot.
package workout

import (
	"context"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/felixgeelhaar/pairfit/internal/api"
	"github.com/felixgeelhaar/pairfit/internal/cache"
	"github.com/felixgeelhaar/pairfit/internal/eventbus"
)

// Store is the workout entity store.
type Store struct {
	mu              sync.Mutex
	templates       []Template
	myTemplates     []Template
	systemTemplates []Template
	currentSession  *Session
	weeklyStats     *WeeklyStats
	loading         bool
	lastErr         string

	client *api.Client
	mirror *cache.Mirror[[]Template]
	bus    *eventbus.Bus
	logger *slog.Logger
	now    func() time.Time
}

// NewStore creates the workout store, hydrates the mirrored templates,
// and subscribes to logout (mirror purge) and session-finished (stats
// refresh) events.
func NewStore(client *api.Client, cacheStore cache.Store, bus *eventbus.Bus, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Store{
		client: client,
		mirror: cache.NewMirror[[]Template](cacheStore, cache.KeyWorkoutTemplates, logger),
		bus:    bus,
		logger: logger,
		now:    time.Now,
	}

	if templates, ok := s.mirror.Load(); ok {
		s.setTemplates(templates)
	}

	bus.Subscribe(eventbus.TopicLoggedOut, func(ctx context.Context, _ eventbus.Event) error {
		s.reset()
		return nil
	})
	bus.Subscribe(eventbus.TopicSessionFinished, func(ctx context.Context, _ eventbus.Event) error {
		s.FetchWeeklyStats(ctx)
		return nil
	})

	return s
}

// FetchTemplates replaces the template collection and recomputes both
// partitions from the server response. Partitions are never patched
// incrementally, so they cannot drift from the full list.
func (s *Store) FetchTemplates(ctx context.Context, mine bool) error {
	s.begin()
	defer s.end()

	path := "/workout-templates"
	if mine {
		path += "?mine=true"
	}

	var templates []Template
	if err := s.client.Do(ctx, http.MethodGet, path, nil, &templates); err != nil {
		s.setError(api.Detail(err, "Failed to fetch templates"))
		return err
	}

	s.mirror.Save(templates)
	s.setTemplates(templates)
	return nil
}

// CreateTemplate waits for the server, then inserts the returned template
// at the front of the full list and its partition.
func (s *Store) CreateTemplate(ctx context.Context, req CreateTemplateRequest) (*Template, error) {
	s.begin()
	defer s.end()

	var created Template
	if err := s.client.Do(ctx, http.MethodPost, "/workout-templates", req, &created); err != nil {
		s.setError(api.Detail(err, "Failed to create template"))
		return nil, err
	}

	s.mu.Lock()
	s.templates = append([]Template{created}, s.templates...)
	if created.IsSystem {
		s.systemTemplates = append([]Template{created}, s.systemTemplates...)
	} else {
		s.myTemplates = append([]Template{created}, s.myTemplates...)
	}
	templates := s.templates
	s.mu.Unlock()

	s.mirror.Save(templates)
	return &created, nil
}

// UpdateTemplate waits for the server, then replaces the template by id
// in the full list and its partition.
func (s *Store) UpdateTemplate(ctx context.Context, id string, req UpdateTemplateRequest) (*Template, error) {
	s.begin()
	defer s.end()

	var updated Template
	if err := s.client.Do(ctx, http.MethodPatch, "/workout-templates/"+id, req, &updated); err != nil {
		s.setError(api.Detail(err, "Failed to update template"))
		return nil, err
	}

	s.mu.Lock()
	replaceByID(s.templates, updated)
	replaceByID(s.myTemplates, updated)
	replaceByID(s.systemTemplates, updated)
	templates := s.templates
	s.mu.Unlock()

	s.mirror.Save(templates)
	return &updated, nil
}

// StartSession creates a session on the server and stores it in the
// single current-session slot. A racing second start wins the slot;
// guarding against an active session is the caller's responsibility.
func (s *Store) StartSession(ctx context.Context, req StartSessionRequest) (*Session, error) {
	s.begin()
	defer s.end()

	var session Session
	if err := s.client.Do(ctx, http.MethodPost, "/workout-sessions", req, &session); err != nil {
		s.setError(api.Detail(err, "Failed to start session"))
		return nil, err
	}

	s.mu.Lock()
	s.currentSession = &session
	s.mu.Unlock()

	copied := session
	return &copied, nil
}

// UpdateCurrentSession merges in-progress edits into the current session
// slot. Pure local state: nothing is sent until FinishSession.
func (s *Store) UpdateCurrentSession(patch SessionPatch) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.currentSession == nil {
		return
	}
	if patch.Name != nil {
		s.currentSession.Name = *patch.Name
	}
	if patch.Exercises != nil {
		s.currentSession.Exercises = patch.Exercises
	}
	if patch.Notes != nil {
		s.currentSession.Notes = *patch.Notes
	}
}

// FinishSession sends the accumulated exercises, notes and end time to
// the server. No-ops without a current session. On success the slot is
// cleared and a stats refresh is triggered; on failure the session stays
// intact so the user can retry.
func (s *Store) FinishSession(ctx context.Context) error {
	s.mu.Lock()
	current := s.currentSession
	s.mu.Unlock()
	if current == nil {
		return nil
	}

	s.begin()
	defer s.end()

	req := finishSessionRequest{
		EndTime:   s.now(),
		Exercises: current.Exercises,
		Notes:     current.Notes,
	}
	if err := s.client.Do(ctx, http.MethodPatch, "/workout-sessions/"+current.ID, req, nil); err != nil {
		s.setError(api.Detail(err, "Failed to finish session"))
		return err
	}

	s.mu.Lock()
	s.currentSession = nil
	s.mu.Unlock()

	s.bus.Publish(ctx, eventbus.TopicSessionFinished, current.ID)
	return nil
}

// FetchWeeklyStats replaces the stats snapshot. Failures are logged, not
// surfaced: stale stats beat a blank dashboard.
func (s *Store) FetchWeeklyStats(ctx context.Context) {
	var resp statsResponse
	if err := s.client.Do(ctx, http.MethodGet, "/workout-stats/weekly", nil, &resp); err != nil {
		s.logger.Warn("failed to fetch weekly stats", "error", err)
		return
	}

	s.mu.Lock()
	s.weeklyStats = &resp.Weekly
	s.mu.Unlock()
}

// ClearCurrentSession drops the current session without finishing it.
func (s *Store) ClearCurrentSession() {
	s.mu.Lock()
	s.currentSession = nil
	s.mu.Unlock()
}

// ClearError clears only the error field.
func (s *Store) ClearError() {
	s.mu.Lock()
	s.lastErr = ""
	s.mu.Unlock()
}

// Templates returns the full template list.
func (s *Store) Templates() []Template {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Template(nil), s.templates...)
}

// MyTemplates returns the user-owned partition (is_system=false).
func (s *Store) MyTemplates() []Template {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Template(nil), s.myTemplates...)
}

// SystemTemplates returns the backend-provided partition (is_system=true).
func (s *Store) SystemTemplates() []Template {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Template(nil), s.systemTemplates...)
}

// CurrentSession returns a copy of the in-progress session, or nil.
func (s *Store) CurrentSession() *Session {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.currentSession == nil {
		return nil
	}
	copied := *s.currentSession
	return &copied
}

// WeeklyStats returns the last fetched stats snapshot, or nil.
func (s *Store) WeeklyStats() *WeeklyStats {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.weeklyStats == nil {
		return nil
	}
	copied := *s.weeklyStats
	return &copied
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

func (s *Store) setTemplates(templates []Template) {
	mine := make([]Template, 0, len(templates))
	system := make([]Template, 0)
	for _, t := range templates {
		if t.IsSystem {
			system = append(system, t)
		} else {
			mine = append(mine, t)
		}
	}

	s.mu.Lock()
	s.templates = templates
	s.myTemplates = mine
	s.systemTemplates = system
	s.mu.Unlock()
}

func (s *Store) reset() {
	s.mirror.Clear()

	s.mu.Lock()
	s.templates = nil
	s.myTemplates = nil
	s.systemTemplates = nil
	s.currentSession = nil
	s.weeklyStats = nil
	s.lastErr = ""
	s.mu.Unlock()
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

func replaceByID(templates []Template, updated Template) {
	for i := range templates {
		if templates[i].ID == updated.ID {
			templates[i] = updated
			return
		}
	}
}
