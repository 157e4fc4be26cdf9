package session

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/careerai/careerai-go/internal/client/api"
	"github.com/careerai/careerai-go/internal/client/demo"
)

func TestBootstrapEmptyStore(t *testing.T) {
	fake := &fakeAPI{}
	auth, _ := newTestAuthenticator(t, fake)

	state, err := auth.Bootstrap(context.Background())
	require.NoError(t, err)
	assert.False(t, state.Authenticated)
	assert.Zero(t, fake.profileCalls)
}

func TestBootstrapDemoWithCachedProfile(t *testing.T) {
	fake := &fakeAPI{}
	auth, store := newTestAuthenticator(t, fake)

	profile := demo.Identity("recruiter@demo.com")
	token := demo.NewToken()
	require.NoError(t, store.Save(context.Background(), Record{
		AccessToken: token, RefreshToken: token, Profile: &profile, DemoMode: true,
	}))

	state, err := auth.Bootstrap(context.Background())
	require.NoError(t, err)
	assert.True(t, state.Authenticated)
	assert.True(t, state.Session.DemoMode)
	assert.Equal(t, "recruiter@demo.com", state.Session.Profile.Email)
	assert.Zero(t, fake.profileCalls, "demo bootstrap must not hit the network")
}

// A demo token with missing or corrupted cached data falls back to the same
// default identity every time.
func TestBootstrapDemoMissingCacheIsDeterministic(t *testing.T) {
	fake := &fakeAPI{}
	auth, store := newTestAuthenticator(t, fake)

	token := demo.NewToken()
	require.NoError(t, store.Save(context.Background(), Record{
		AccessToken: token, RefreshToken: token, DemoMode: true,
	}))

	first, err := auth.Bootstrap(context.Background())
	require.NoError(t, err)
	second, err := auth.Bootstrap(context.Background())
	require.NoError(t, err)

	assert.True(t, first.Authenticated)
	assert.Equal(t, demo.DefaultIdentity(), first.Session.Profile)
	assert.Equal(t, first.Session.Profile, second.Session.Profile)
}

// With a cached snapshot the bootstrap serves it immediately and marks the
// state stale for background reconciliation.
func TestBootstrapRealTokenUsesCache(t *testing.T) {
	fake := &fakeAPI{}
	auth, store := newTestAuthenticator(t, fake)

	profile := sampleProfile()
	require.NoError(t, store.Save(context.Background(), Record{
		AccessToken: "real-access", RefreshToken: "real-refresh", Profile: &profile,
	}))

	state, err := auth.Bootstrap(context.Background())
	require.NoError(t, err)
	assert.True(t, state.Authenticated)
	assert.True(t, state.Stale)
	assert.Equal(t, profile, state.Session.Profile)
	assert.Zero(t, fake.profileCalls, "cached bootstrap defers the profile fetch")
}

func TestBootstrapRealTokenNoCacheFetches(t *testing.T) {
	fake := &fakeAPI{profileResult: sampleProfile()}
	auth, store := newTestAuthenticator(t, fake)

	require.NoError(t, store.Save(context.Background(), Record{
		AccessToken: "real-access", RefreshToken: "real-refresh",
	}))

	state, err := auth.Bootstrap(context.Background())
	require.NoError(t, err)
	assert.True(t, state.Authenticated)
	assert.False(t, state.Stale)
	assert.Equal(t, 1, fake.profileCalls)

	rec, err := store.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, rec.Profile, "fetched profile must be cached")
}

// Fail-closed: a failed mandatory profile fetch tears the whole session down.
func TestBootstrapProfileFetchFailureClearsSession(t *testing.T) {
	fake := &fakeAPI{profileErr: &api.Error{Kind: api.KindAuth, Message: "invalid or expired token"}}
	auth, store := newTestAuthenticator(t, fake)

	require.NoError(t, store.Save(context.Background(), Record{
		AccessToken: "real-access", RefreshToken: "real-refresh",
	}))

	state, err := auth.Bootstrap(context.Background())
	require.NoError(t, err)
	assert.False(t, state.Authenticated)

	rec, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Record{}, rec, "no token or profile may survive a failed bootstrap")
}

func TestReconcileRefreshesCache(t *testing.T) {
	updated := sampleProfile()
	updated.Location = "Berlin"
	fake := &fakeAPI{profileResult: updated}
	auth, store := newTestAuthenticator(t, fake)

	stale := sampleProfile()
	require.NoError(t, store.Save(context.Background(), Record{
		AccessToken: "real-access", RefreshToken: "real-refresh", Profile: &stale,
	}))

	state, err := auth.Reconcile(context.Background())
	require.NoError(t, err)
	assert.True(t, state.Authenticated)
	assert.Equal(t, "Berlin", state.Session.Profile.Location)

	rec, err := store.Load(context.Background())
	require.NoError(t, err)
	require.NotNil(t, rec.Profile)
	assert.Equal(t, "Berlin", rec.Profile.Location)
}

// Fail-closed applies to reconciliation too: any fetch failure, including
// network-class, ends in a fully unauthenticated state.
func TestReconcileFailureClearsSession(t *testing.T) {
	fake := &fakeAPI{profileErr: &api.Error{Kind: api.KindNetwork, Message: "unreachable"}}
	auth, store := newTestAuthenticator(t, fake)

	profile := sampleProfile()
	require.NoError(t, store.Save(context.Background(), Record{
		AccessToken: "real-access", RefreshToken: "real-refresh", Profile: &profile,
	}))

	state, err := auth.Reconcile(context.Background())
	require.NoError(t, err)
	assert.False(t, state.Authenticated)

	rec, err := store.Load(context.Background())
	require.NoError(t, err)
	assert.Equal(t, Record{}, rec)
}
