package gateway

import "strings"

// Audience identifies which credential a request path requires.
type Audience int

const (
	// AudienceUser covers every ordinary marketplace path.
	AudienceUser Audience = iota
	// AudienceAdmin covers paths under the administrative namespace.
	AudienceAdmin
	// AudienceAuth covers login, registration and the refresh operation.
	// These paths get no credential attached and are exempt from refresh
	// recovery, so a failing refresh call can never trigger another one.
	AudienceAuth
)

// String returns a short name for logging.
func (a Audience) String() string {
	switch a {
	case AudienceAdmin:
		return "admin"
	case AudienceAuth:
		return "auth"
	default:
		return "user"
	}
}

// Authentication endpoint paths. The admin login lives under the admin
// namespace but must still classify as an auth endpoint, so Classify checks
// these before the namespace prefix.
const (
	PathLogin      = "/auth/login"
	PathRegister   = "/auth/register"
	PathRefresh    = "/auth/refresh"
	PathAdminLogin = "/admin/auth/login"
)

// Entry pages a terminated session is sent to.
const (
	UserEntryPath  = "/login"
	AdminEntryPath = "/admin/login"
)

const adminNamespace = "/admin"

// Classify maps a request path to the audience whose credential it needs.
// It is a pure function of the path; query strings and trailing slashes are
// ignored.
func Classify(path string) Audience {
	path = normalizePath(path)
	switch path {
	case PathLogin, PathRegister, PathRefresh, PathAdminLogin:
		return AudienceAuth
	}
	if path == adminNamespace || strings.HasPrefix(path, adminNamespace+"/") {
		return AudienceAdmin
	}
	return AudienceUser
}

func normalizePath(path string) string {
	if i := strings.IndexAny(path, "?#"); i >= 0 {
		path = path[:i]
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}
	return path
}
