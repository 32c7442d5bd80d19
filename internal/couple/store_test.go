package couple

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felixgeelhaar/pairfit/internal/api"
	"github.com/felixgeelhaar/pairfit/internal/cache"
	"github.com/felixgeelhaar/pairfit/internal/credentials"
	"github.com/felixgeelhaar/pairfit/internal/eventbus"
)

type fixture struct {
	store *Store
	cache *cache.MemoryStore
	bus   *eventbus.Bus
}

func newFixture(t *testing.T, handler http.Handler) *fixture {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cacheStore := cache.NewMemoryStore()
	bus := eventbus.New(nil)
	client := api.NewClient(server.URL, credentials.NewMemoryStore(), nil)

	return &fixture{
		store: NewStore(client, cacheStore, bus, nil),
		cache: cacheStore,
		bus:   bus,
	}
}

// pairedHandler serves a complete couple: one couple, two members,
// settings, and a feed.
func pairedHandler(t *testing.T) http.Handler {
	t.Helper()
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/couples":
			if r.Method == http.MethodPost {
				json.NewEncoder(w).Encode(Couple{ID: "c1"})
				return
			}
			json.NewEncoder(w).Encode([]Couple{{ID: "c1", Name: "Us"}})
		case "/couples/c1/members":
			json.NewEncoder(w).Encode([]Member{
				{ID: "m1", UserID: "u1", CoupleID: "c1", Role: RoleOwner, User: MemberUser{ID: "u1", FullName: "Ada"}},
				{ID: "m2", UserID: "u2", CoupleID: "c1", Role: RoleMember, User: MemberUser{ID: "u2", FullName: "Grace"}},
			})
		case "/couples/c1/settings":
			json.NewEncoder(w).Encode(Settings{ID: "s1", CoupleID: "c1", ShareProgressEnabled: true, ShareHabitsEnabled: true})
		case "/couples/c1/feed":
			json.NewEncoder(w).Encode([]FeedItem{
				{ID: "f1", Type: FeedItemWorkout, UserName: "Grace", Content: "Finished Push day"},
			})
		case "/couples/c1/invite":
			json.NewEncoder(w).Encode(Invite{CoupleID: "c1", InviteCode: "ABC123", ExpiresAt: time.Now().Add(24 * time.Hour)})
		case "/couples/accept":
			w.WriteHeader(http.StatusOK)
		case "/couples/c1/leave":
			w.WriteHeader(http.StatusOK)
		default:
			t.Errorf("unexpected path %s", r.URL.Path)
			w.WriteHeader(http.StatusNotFound)
		}
	})
}

func TestFetchCoupleInfo_LoadsMembersAndSettings(t *testing.T) {
	f := newFixture(t, pairedHandler(t))

	require.NoError(t, f.store.FetchCoupleInfo(context.Background()))

	pair := f.store.Couple()
	require.NotNil(t, pair)
	assert.Equal(t, "c1", pair.ID)

	members := f.store.Members()
	require.Len(t, members, 2)
	assert.Equal(t, RoleOwner, members[0].Role)

	settings := f.store.Settings()
	require.NotNil(t, settings)
	assert.True(t, settings.ShareProgressEnabled)

	_, ok, err := f.cache.Get(cache.KeyCoupleInfo)
	require.NoError(t, err)
	assert.True(t, ok)
	_, ok, err = f.cache.Get(cache.KeyCoupleSettings)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestFetchCoupleInfo_NoCoupleIsNotAnError(t *testing.T) {
	f := newFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode([]Couple{})
	}))

	require.NoError(t, f.store.FetchCoupleInfo(context.Background()))
	assert.Nil(t, f.store.Couple())
	assert.Empty(t, f.store.Err())
}

func TestFetchCoupleInfo_EmptyResponseClearsStaleState(t *testing.T) {
	var paired atomic.Bool
	paired.Store(true)
	inner := pairedHandler(t)
	f := newFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !paired.Load() && r.URL.Path == "/couples" {
			json.NewEncoder(w).Encode([]Couple{})
			return
		}
		inner.ServeHTTP(w, r)
	}))
	require.NoError(t, f.store.FetchCoupleInfo(context.Background()))
	require.NotNil(t, f.store.Couple())

	// Partner dissolved the couple; the next fetch returns empty.
	paired.Store(false)
	require.NoError(t, f.store.FetchCoupleInfo(context.Background()))

	assert.Nil(t, f.store.Couple())
	assert.Empty(t, f.store.Members())
	assert.Nil(t, f.store.Settings())

	_, ok, err := f.cache.Get(cache.KeyCoupleInfo)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestCreateCouple_RefetchesFullState(t *testing.T) {
	f := newFixture(t, pairedHandler(t))

	require.NoError(t, f.store.CreateCouple(context.Background(), CreateCoupleRequest{Name: "Us"}))

	require.NotNil(t, f.store.Couple())
	assert.Len(t, f.store.Members(), 2)
	assert.NotNil(t, f.store.Settings())
}

func TestGenerateInvite_RequiresCouple(t *testing.T) {
	var calls atomic.Int32
	f := newFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))

	_, err := f.store.GenerateInvite(context.Background())
	assert.ErrorIs(t, err, ErrNoCouple)
	assert.Equal(t, int32(0), calls.Load(), "guard fires before any network call")
}

func TestGenerateInvite_KeepsCodeInState(t *testing.T) {
	f := newFixture(t, pairedHandler(t))
	require.NoError(t, f.store.FetchCoupleInfo(context.Background()))

	invite, err := f.store.GenerateInvite(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ABC123", invite.InviteCode)

	stored := f.store.Invite()
	require.NotNil(t, stored)
	assert.Equal(t, "ABC123", stored.InviteCode)
}

func TestAcceptInvite_RefetchesFullState(t *testing.T) {
	f := newFixture(t, pairedHandler(t))

	require.NoError(t, f.store.AcceptInvite(context.Background(), "ABC123"))
	require.NotNil(t, f.store.Couple())
	assert.Len(t, f.store.Members(), 2)
}

func TestUpdateSettings_ReplacesSnapshot(t *testing.T) {
	inner := pairedHandler(t)
	f := newFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodPatch {
			assert.Equal(t, "/couples/c1/settings", r.URL.Path)
			json.NewEncoder(w).Encode(Settings{ID: "s1", CoupleID: "c1", ShareProgressEnabled: false, ShareHabitsEnabled: true})
			return
		}
		inner.ServeHTTP(w, r)
	}))
	require.NoError(t, f.store.FetchCoupleInfo(context.Background()))

	off := false
	require.NoError(t, f.store.UpdateSettings(context.Background(), UpdateSettingsRequest{ShareProgressEnabled: &off}))

	settings := f.store.Settings()
	require.NotNil(t, settings)
	assert.False(t, settings.ShareProgressEnabled)
	assert.True(t, settings.ShareHabitsEnabled)
}

func TestUpdateSettings_RequiresCouple(t *testing.T) {
	f := newFixture(t, http.NotFoundHandler())

	on := true
	err := f.store.UpdateSettings(context.Background(), UpdateSettingsRequest{ShareProgressEnabled: &on})
	assert.ErrorIs(t, err, ErrNoCouple)
}

func TestFetchSharedFeed_LoadsItems(t *testing.T) {
	f := newFixture(t, pairedHandler(t))
	require.NoError(t, f.store.FetchCoupleInfo(context.Background()))

	f.store.FetchSharedFeed(context.Background())

	feed := f.store.SharedFeed()
	require.Len(t, feed, 1)
	assert.Equal(t, "Grace", feed[0].UserName)
}

func TestFetchSharedFeed_NoopWithoutCouple(t *testing.T) {
	var calls atomic.Int32
	f := newFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))

	f.store.FetchSharedFeed(context.Background())
	assert.Equal(t, int32(0), calls.Load())
	assert.Empty(t, f.store.SharedFeed())
}

func TestLeaveCouple_ClearsAllState(t *testing.T) {
	f := newFixture(t, pairedHandler(t))
	require.NoError(t, f.store.FetchCoupleInfo(context.Background()))
	_, err := f.store.GenerateInvite(context.Background())
	require.NoError(t, err)

	require.NoError(t, f.store.LeaveCouple(context.Background()))

	assert.Nil(t, f.store.Couple())
	assert.Empty(t, f.store.Members())
	assert.Nil(t, f.store.Settings())
	assert.Nil(t, f.store.Invite())
	assert.Empty(t, f.store.SharedFeed())

	_, ok, err := f.cache.Get(cache.KeyCoupleInfo)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLeaveCouple_NoopWithoutCouple(t *testing.T) {
	var calls atomic.Int32
	f := newFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
	}))

	require.NoError(t, f.store.LeaveCouple(context.Background()))
	assert.Equal(t, int32(0), calls.Load())
}

func TestLogoutEvent_PurgesCoupleState(t *testing.T) {
	f := newFixture(t, pairedHandler(t))
	require.NoError(t, f.store.FetchCoupleInfo(context.Background()))

	f.bus.Publish(context.Background(), eventbus.TopicLoggedOut, nil)

	assert.Nil(t, f.store.Couple())
	assert.Nil(t, f.store.Settings())

	_, ok, err := f.cache.Get(cache.KeyCoupleSettings)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNewStore_HydratesMirroredCouple(t *testing.T) {
	cacheStore := cache.NewMemoryStore()
	data, err := json.Marshal(&Couple{ID: "c1", Name: "Us"})
	require.NoError(t, err)
	require.NoError(t, cacheStore.Set(cache.KeyCoupleInfo, string(data)))

	client := api.NewClient("http://127.0.0.1:0", credentials.NewMemoryStore(), nil)
	store := NewStore(client, cacheStore, eventbus.New(nil), nil)

	pair := store.Couple()
	require.NotNil(t, pair)
	assert.Equal(t, "Us", pair.Name)
}
