package session

import (
	"context"

	"github.com/careerai/careerai-go/internal/client/demo"
)

// State is the authentication state reconstructed on application start.
type State struct {
	Authenticated bool
	Session       Session
	// Stale is set when the profile was served from the cached snapshot and
	// has not been reconciled against the backend yet. Callers should follow
	// up with Reconcile.
	Stale bool
}

// Bootstrap reconstructs the session from durable storage.
//
// The sequencing is optimistic-then-verify: render from the cached snapshot
// immediately when one exists (Stale is set so the caller can Reconcile in
// the background). When a live profile fetch is required and does not
// succeed, the session is torn down rather than trusted.
func (a *Authenticator) Bootstrap(ctx context.Context) (State, error) {
	rec, err := a.store.Load(ctx)
	if err != nil {
		return State{}, err
	}

	if rec.AccessToken == "" {
		return State{}, nil
	}

	if rec.DemoMode || demo.IsDemoToken(rec.AccessToken) {
		return a.bootstrapDemo(ctx, rec)
	}

	if rec.Profile != nil {
		return State{
			Authenticated: true,
			Stale:         true,
			Session: Session{
				Profile:      *rec.Profile,
				Token:        rec.AccessToken,
				RefreshToken: rec.RefreshToken,
			},
		}, nil
	}

	// No cached snapshot: the live fetch is mandatory.
	profile, err := a.api.GetProfile(ctx, rec.AccessToken)
	if err != nil {
		a.logger.Warn("profile fetch failed during bootstrap, clearing session", "error", err)
		if clearErr := a.store.Clear(ctx); clearErr != nil {
			return State{}, clearErr
		}
		return State{}, nil
	}

	if err := a.store.SetProfile(ctx, profile); err != nil {
		return State{}, err
	}

	return State{
		Authenticated: true,
		Session: Session{
			Profile:      profile,
			Token:        rec.AccessToken,
			RefreshToken: rec.RefreshToken,
		},
	}, nil
}

// Reconcile refreshes a stale cached profile against the backend. On any
// fetch failure the session is torn down and the returned state is fully
// unauthenticated; the bootstrapper never guesses at a stale-but-valid state.
func (a *Authenticator) Reconcile(ctx context.Context) (State, error) {
	rec, err := a.store.Load(ctx)
	if err != nil {
		return State{}, err
	}

	if rec.AccessToken == "" {
		return State{}, nil
	}
	if rec.DemoMode || demo.IsDemoToken(rec.AccessToken) {
		return a.bootstrapDemo(ctx, rec)
	}

	profile, err := a.api.GetProfile(ctx, rec.AccessToken)
	if err != nil {
		a.logger.Warn("profile reconciliation failed, clearing session", "error", err)
		if clearErr := a.store.Clear(ctx); clearErr != nil {
			return State{}, clearErr
		}
		return State{}, nil
	}

	if err := a.store.SetProfile(ctx, profile); err != nil {
		return State{}, err
	}

	return State{
		Authenticated: true,
		Session: Session{
			Profile:      profile,
			Token:        rec.AccessToken,
			RefreshToken: rec.RefreshToken,
		},
	}, nil
}

// bootstrapDemo restores a demo session. Missing or corrupted cached data
// falls back to the deterministic default identity so repeated bootstraps
// agree.
func (a *Authenticator) bootstrapDemo(ctx context.Context, rec Record) (State, error) {
	profile := demo.DefaultIdentity()
	if rec.Profile != nil {
		profile = *rec.Profile
	} else if err := a.store.SetProfile(ctx, profile); err != nil {
		return State{}, err
	}

	return State{
		Authenticated: true,
		Session: Session{
			Profile:      profile,
			Token:        rec.AccessToken,
			RefreshToken: rec.RefreshToken,
			DemoMode:     true,
		},
	}, nil
}
