package gateway

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog/log"
)

// refreshFunc performs the refresh exchange and returns the new access
// token plus the rotated refresh token, if the backend issued one.
type refreshFunc func(ctx context.Context, refreshToken string) (access, refresh string, err error)

// errNoSession marks a recovery attempt that found no refresh token in the
// store. The dispatcher maps it back to the request's original failure.
var errNoSession = errors.New("no refresh token stored")

// refreshOutcome is delivered to each waiter when the in-flight refresh
// settles. Exactly one of token and err is set.
type refreshOutcome struct {
	token string
	err   error
}

// inflightRefresh collects the waiters of one refresh round in arrival
// order.
type inflightRefresh struct {
	waiters []chan refreshOutcome
}

// Coordinator collapses concurrent session-expiry failures into a single
// refresh call. The first failing request becomes the refresher; requests
// failing while that call is on the wire join as waiters and all receive
// the same outcome: the round's new token, or the round's failure.
//
// The coordinator is either idle or refreshing. Becoming the refresher and
// reading the stored refresh token happen under one mutex hold, so two
// requests can never both start a refresh and a late joiner can never read
// a half-rotated credential. Only the user scope refreshes; admin sessions
// re-authenticate instead.
type Coordinator struct {
	store      SessionStore
	refresh    refreshFunc
	terminator *Terminator

	mu       sync.Mutex
	inflight *inflightRefresh
}

func NewCoordinator(store SessionStore, refresh refreshFunc, terminator *Terminator) *Coordinator {
	return &Coordinator{store: store, refresh: refresh, terminator: terminator}
}

// Refreshing reports whether a refresh call is currently on the wire.
func (c *Coordinator) Refreshing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.inflight != nil
}

// Waiting reports how many requests are held for the current refresh
// round.
func (c *Coordinator) Waiting() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.inflight == nil {
		return 0
	}
	return len(c.inflight.waiters)
}

// Recover obtains a fresh user access token, joining the in-flight refresh
// round when one exists and starting one otherwise.
//
// It returns errNoSession when the store holds no refresh token; if an
// access token was present the session is terminated first. When the
// refresh call itself fails, every waiter and the caller receive that
// failure and the user session is terminated exactly once, by the caller
// that ran the refresh.
func (c *Coordinator) Recover(ctx context.Context) (string, error) {
	c.mu.Lock()
	if c.inflight != nil {
		ch := make(chan refreshOutcome, 1)
		c.inflight.waiters = append(c.inflight.waiters, ch)
		c.mu.Unlock()
		log.Debug().Msg("Joined in-flight token refresh")
		select {
		case out := <-ch:
			return out.token, out.err
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	cred, err := c.store.Credential(ScopeUser)
	if err != nil {
		c.mu.Unlock()
		return "", fmt.Errorf("failed to read user credential: %w", err)
	}
	if cred == nil || cred.RefreshToken == "" {
		hadAccess := cred != nil && cred.AccessToken != ""
		c.mu.Unlock()
		if hadAccess {
			log.Info().Msg("Session expired with no refresh token")
			c.terminator.Terminate(ScopeUser)
		}
		return "", errNoSession
	}
	round := &inflightRefresh{}
	c.inflight = round
	refreshToken := cred.RefreshToken
	c.mu.Unlock()

	access, rotated, err := c.refresh(ctx, refreshToken)
	if err == nil {
		next := &Credential{Scope: ScopeUser, AccessToken: access, RefreshToken: refreshToken}
		if rotated != "" {
			next.RefreshToken = rotated
		}
		if serr := c.store.SetCredential(next); serr != nil {
			err = fmt.Errorf("failed to persist refreshed credential: %w", serr)
		}
	}

	// Deliver the outcome and return to idle in one critical section, so
	// nothing can join a round that has already settled. The waiter
	// channels are buffered; delivery never blocks on a waiter that gave
	// up on its context.
	out := refreshOutcome{token: access, err: err}
	if err != nil {
		out.token = ""
	}
	c.mu.Lock()
	for _, ch := range round.waiters {
		ch <- out
	}
	held := len(round.waiters)
	c.inflight = nil
	c.mu.Unlock()

	if err != nil {
		log.Error().Err(err).Int("held_requests", held).Msg("Token refresh failed")
		c.terminator.Terminate(ScopeUser)
		return "", err
	}
	log.Info().Int("held_requests", held).Msg("Access token refreshed")
	return access, nil
}
