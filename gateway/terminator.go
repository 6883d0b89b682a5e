package gateway

import (
	"github.com/rs/zerolog/log"
)

// Navigator moves the surrounding application to an entry page after a
// session ends. Location reports where the application currently is, so
// repeated terminations of an already-ended session stay no-ops.
type Navigator interface {
	Location() string
	Navigate(path string)
}

type nopNavigator struct{}

func (nopNavigator) Location() string { return "" }

func (nopNavigator) Navigate(string) {}

// Terminator ends the session of one scope: it clears that scope's
// credential and sends the application to the scope's entry page. The other
// scope's credential is never touched, and terminating twice is safe.
type Terminator struct {
	store SessionStore
	nav   Navigator
}

func NewTerminator(store SessionStore, nav Navigator) *Terminator {
	if nav == nil {
		nav = nopNavigator{}
	}
	return &Terminator{store: store, nav: nav}
}

// Terminate drops the scope's credential and navigates to its entry page.
// A user termination discards both the access and refresh tokens; an admin
// termination discards the admin access token.
func (t *Terminator) Terminate(scope Scope) {
	if err := t.store.ClearCredential(scope); err != nil {
		log.Error().Err(err).Str("scope", string(scope)).Msg("Failed to clear session credential")
	}
	entry := UserEntryPath
	if scope == ScopeAdmin {
		entry = AdminEntryPath
	}
	if t.nav.Location() != entry {
		t.nav.Navigate(entry)
	}
	log.Info().Str("scope", string(scope)).Msg("Session terminated")
}
