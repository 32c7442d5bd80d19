// Package habit owns the habit collection and the date-indexed log index.
// The index maps "YYYY-MM-DD" to that day's logs and maintains the
// invariant that a habit has at most one log per calendar day.
package habit

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/felixgeelhaar/pairfit/internal/api"
	"github.com/felixgeelhaar/pairfit/internal/cache"
	"github.com/felixgeelhaar/pairfit/internal/eventbus"
)

// Store is the habit entity store.
type Store struct {
	mu         sync.Mutex
	habits     []Habit
	logsByDate map[string][]Log
	loading    bool
	lastErr    string

	client       *api.Client
	habitsMirror *cache.Mirror[[]Habit]
	logsMirror   *cache.Mirror[map[string][]Log]
	logger       *slog.Logger
}

// NewStore creates the habit store, hydrates both mirrors, and
// subscribes to logout for mirror purge.
func NewStore(client *api.Client, cacheStore cache.Store, bus *eventbus.Bus, logger *slog.Logger) *Store {
	if logger == nil {
		logger = slog.Default()
	}

	s := &Store{
		logsByDate:   make(map[string][]Log),
		client:       client,
		habitsMirror: cache.NewMirror[[]Habit](cacheStore, cache.KeyHabits, logger),
		logsMirror:   cache.NewMirror[map[string][]Log](cacheStore, cache.KeyHabitLogs, logger),
		logger:       logger,
	}

	if habits, ok := s.habitsMirror.Load(); ok {
		s.habits = habits
	}
	if logs, ok := s.logsMirror.Load(); ok && logs != nil {
		s.logsByDate = logs
	}

	bus.Subscribe(eventbus.TopicLoggedOut, func(ctx context.Context, _ eventbus.Event) error {
		s.reset()
		return nil
	})

	return s
}

// FetchHabits replaces the habit collection from the server.
func (s *Store) FetchHabits(ctx context.Context) error {
	s.begin()
	defer s.end()

	var habits []Habit
	if err := s.client.Do(ctx, http.MethodGet, "/habits", nil, &habits); err != nil {
		s.setError(api.Detail(err, "Failed to fetch habits"))
		return err
	}

	s.habitsMirror.Save(habits)

	s.mu.Lock()
	s.habits = habits
	s.mu.Unlock()
	return nil
}

// CreateHabit waits for the server, then prepends the returned habit.
func (s *Store) CreateHabit(ctx context.Context, req CreateHabitRequest) (*Habit, error) {
	s.begin()
	defer s.end()

	var created Habit
	if err := s.client.Do(ctx, http.MethodPost, "/habits", req, &created); err != nil {
		s.setError(api.Detail(err, "Failed to create habit"))
		return nil, err
	}

	s.mu.Lock()
	s.habits = append([]Habit{created}, s.habits...)
	habits := s.habits
	s.mu.Unlock()

	s.habitsMirror.Save(habits)
	return &created, nil
}

// UpdateHabit waits for the server, then replaces the habit by id.
func (s *Store) UpdateHabit(ctx context.Context, id string, req UpdateHabitRequest) (*Habit, error) {
	s.begin()
	defer s.end()

	var updated Habit
	if err := s.client.Do(ctx, http.MethodPatch, "/habits/"+id, req, &updated); err != nil {
		s.setError(api.Detail(err, "Failed to update habit"))
		return nil, err
	}

	s.mu.Lock()
	for i := range s.habits {
		if s.habits[i].ID == id {
			s.habits[i] = updated
			break
		}
	}
	habits := s.habits
	s.mu.Unlock()

	s.habitsMirror.Save(habits)
	return &updated, nil
}

// DeleteHabit removes the habit on the server, then locally.
func (s *Store) DeleteHabit(ctx context.Context, id string) error {
	s.begin()
	defer s.end()

	if err := s.client.Do(ctx, http.MethodDelete, "/habits/"+id, nil, nil); err != nil {
		s.setError(api.Detail(err, "Failed to delete habit"))
		return err
	}

	s.mu.Lock()
	kept := s.habits[:0]
	for _, h := range s.habits {
		if h.ID != id {
			kept = append(kept, h)
		}
	}
	s.habits = kept
	habits := s.habits
	s.mu.Unlock()

	s.habitsMirror.Save(habits)
	return nil
}

// FetchLogs fetches logs in the optional [from, to] date range and merges
// them into the index with per-date overwrite: only the dates present in
// the response are replaced, everything else keeps its cached entries.
// Failures are logged, not surfaced; the last-known index is kept.
func (s *Store) FetchLogs(ctx context.Context, from, to string) {
	path := "/habits/logs"
	params := url.Values{}
	if from != "" {
		params.Set("from", from)
	}
	if to != "" {
		params.Set("to", to)
	}
	if encoded := params.Encode(); encoded != "" {
		path += "?" + encoded
	}

	var logs []Log
	if err := s.client.Do(ctx, http.MethodGet, path, nil, &logs); err != nil {
		s.logger.Warn("failed to fetch habit logs", "error", err)
		return
	}

	fetched := make(map[string][]Log)
	for _, log := range logs {
		fetched[log.Date] = append(fetched[log.Date], log)
	}

	s.mu.Lock()
	for date, dateLogs := range fetched {
		s.logsByDate[date] = dateLogs
	}
	snapshot := s.snapshotIndexLocked()
	s.mu.Unlock()

	s.logsMirror.Save(snapshot)
}

// LogHabit records an outcome for one habit and day. The server response
// replaces any existing log for the same (habit, date) pair: the
// one-log-per-day invariant is enforced at write time so repeated taps
// can never accumulate duplicates in the index.
func (s *Store) LogHabit(ctx context.Context, habitID string, req LogRequest) (*Log, error) {
	var created Log
	path := fmt.Sprintf("/habits/%s/logs", habitID)
	if err := s.client.Do(ctx, http.MethodPost, path, req, &created); err != nil {
		s.setError(api.Detail(err, "Failed to log habit"))
		return nil, err
	}

	s.mu.Lock()
	s.logsByDate[created.Date] = upsertLog(s.logsByDate[created.Date], created)
	snapshot := s.snapshotIndexLocked()
	s.mu.Unlock()

	s.logsMirror.Save(snapshot)
	return &created, nil
}

// snapshotIndexLocked copies the index so the mirror can serialize it
// outside the lock. Day slices are replaced wholesale on write, so the
// shallow copy is safe. Callers must hold s.mu.
func (s *Store) snapshotIndexLocked() map[string][]Log {
	snapshot := make(map[string][]Log, len(s.logsByDate))
	for date, logs := range s.logsByDate {
		snapshot[date] = logs
	}
	return snapshot
}

// LogsForDate returns the logs recorded for one calendar day.
func (s *Store) LogsForDate(date string) []Log {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Log(nil), s.logsByDate[date]...)
}

// HabitLogsForDateRange collects one habit's logs across each day of
// [from, to] inclusive, in date order, skipping days without a log.
// Ranges are expected to be short (weekly views).
func (s *Store) HabitLogsForDateRange(habitID, from, to string) []Log {
	start, err := time.Parse(DateLayout, from)
	if err != nil {
		return nil
	}
	end, err := time.Parse(DateLayout, to)
	if err != nil {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var logs []Log
	for day := start; !day.After(end); day = day.AddDate(0, 0, 1) {
		date := day.Format(DateLayout)
		for _, log := range s.logsByDate[date] {
			if log.HabitID == habitID {
				logs = append(logs, log)
				break
			}
		}
	}
	return logs
}

// Habits returns the habit collection.
func (s *Store) Habits() []Habit {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Habit(nil), s.habits...)
}

// ClearError clears only the error field.
func (s *Store) ClearError() {
	s.mu.Lock()
	s.lastErr = ""
	s.mu.Unlock()
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

// upsertLog replaces any existing entry for the log's habit within one
// day's logs and appends the new entry. This is the invariant-enforcing
// write for the one-log-per-(habit, date) rule.
func upsertLog(dayLogs []Log, entry Log) []Log {
	kept := make([]Log, 0, len(dayLogs)+1)
	for _, log := range dayLogs {
		if log.HabitID != entry.HabitID {
			kept = append(kept, log)
		}
	}
	return append(kept, entry)
}

func (s *Store) reset() {
	s.habitsMirror.Clear()
	s.logsMirror.Clear()

	s.mu.Lock()
	s.habits = nil
	s.logsByDate = make(map[string][]Log)
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
