package gateway

import (
	"fmt"
	"net/http"

	"github.com/rs/zerolog/log"
)

// authenticator attaches the bearer credential matching a request's
// audience. Auth endpoints get no credential. A scope with nothing stored
// also gets none; the request then fails downstream and recovery takes
// over from there.
type authenticator struct {
	store SessionStore
}

func (a *authenticator) apply(req *http.Request, audience Audience) error {
	var scope Scope
	switch audience {
	case AudienceAuth:
		return nil
	case AudienceAdmin:
		scope = ScopeAdmin
	default:
		scope = ScopeUser
	}
	cred, err := a.store.Credential(scope)
	if err != nil {
		return fmt.Errorf("failed to read %s credential: %w", scope, err)
	}
	if cred == nil || cred.AccessToken == "" {
		log.Debug().Str("scope", string(scope)).Msg("No access token stored, sending request unauthenticated")
		return nil
	}
	req.Header.Set("Authorization", fmt.Sprintf("Bearer %s", cred.AccessToken))
	return nil
}
