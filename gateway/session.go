package gateway

// Scope identifies an authentication audience with its own credential and
// its own recovery policy. User and admin sessions never share tokens.
type Scope string

const (
	ScopeUser  Scope = "user"
	ScopeAdmin Scope = "admin"
)

// Credential is the bearer material held for one scope. Admin credentials
// carry no refresh token; an expired admin session re-authenticates instead
// of refreshing.
type Credential struct {
	Scope        Scope
	AccessToken  string
	RefreshToken string
}

// SessionStore holds the credentials of the current session, one per scope.
// Credential returns nil without an error when the scope holds none.
// Implementations must be safe for concurrent use.
type SessionStore interface {
	Credential(scope Scope) (*Credential, error)
	SetCredential(cred *Credential) error
	ClearCredential(scope Scope) error
}
