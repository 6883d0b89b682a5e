package auth

import (
	"context"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/myservicehub/ServiceHub-sub004/gateway"
)

// ProfilePath is the endpoint reporting the account behind the current
// session. It needs the user credential, unlike the login and register
// paths.
const ProfilePath = "/auth/me"

// Service orchestrates login, registration and session inspection against
// the ServiceHub auth endpoints. Credentials are persisted through the
// same store the gateway reads, so a login is picked up by the next
// dispatched request.
type Service struct {
	API   APICaller
	Store gateway.SessionStore
}

// NewService is the constructor for our auth service.
func NewService(api APICaller, store gateway.SessionStore) *Service {
	return &Service{
		API:   api,
		Store: store,
	}
}

// UserInfo is the profile the backend reports for an account.
type UserInfo struct {
	ID       int    `json:"id"`
	Email    string `json:"email"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
	IsActive bool   `json:"is_active"`
}

type credentialsRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
}

// Login exchanges user credentials for a session and persists it.
func (s *Service) Login(ctx context.Context, email, password string) error {
	var tokens tokenResponse
	req := credentialsRequest{Email: email, Password: password}
	if err := s.API.PostJSON(ctx, gateway.PathLogin, req, &tokens); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	if tokens.AccessToken == "" || tokens.RefreshToken == "" {
		return fmt.Errorf("login response is missing tokens")
	}
	cred := &gateway.Credential{
		Scope:        gateway.ScopeUser,
		AccessToken:  tokens.AccessToken,
		RefreshToken: tokens.RefreshToken,
	}
	if err := s.Store.SetCredential(cred); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	log.Info().Str("email", email).Msg("Logged in")
	return nil
}

// AdminLogin exchanges admin credentials for an admin session. Admin
// sessions carry no refresh token; an expired one re-authenticates
// instead of refreshing.
func (s *Service) AdminLogin(ctx context.Context, email, password string) error {
	var tokens tokenResponse
	req := credentialsRequest{Email: email, Password: password}
	if err := s.API.PostJSON(ctx, gateway.PathAdminLogin, req, &tokens); err != nil {
		return fmt.Errorf("admin login failed: %w", err)
	}
	if tokens.AccessToken == "" {
		return fmt.Errorf("admin login response is missing the access token")
	}
	cred := &gateway.Credential{
		Scope:       gateway.ScopeAdmin,
		AccessToken: tokens.AccessToken,
	}
	if err := s.Store.SetCredential(cred); err != nil {
		return fmt.Errorf("failed to save admin session: %w", err)
	}
	log.Info().Str("email", email).Msg("Logged in as admin")
	return nil
}

// Logout drops the stored credential of one scope. Sessions are bearer
// tokens the backend keeps no state for, so logging out is local.
func (s *Service) Logout(scope gateway.Scope) error {
	if err := s.Store.ClearCredential(scope); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	log.Info().Str("scope", string(scope)).Msg("Logged out")
	return nil
}

// Profile fetches the account behind the current user session.
func (s *Service) Profile(ctx context.Context) (*UserInfo, error) {
	var user UserInfo
	if err := s.API.GetJSON(ctx, ProfilePath, nil, &user); err != nil {
		return nil, fmt.Errorf("failed to fetch profile: %w", err)
	}
	return &user, nil
}

// LoggedIn reports whether a scope currently holds an access token.
func (s *Service) LoggedIn(scope gateway.Scope) (bool, error) {
	cred, err := s.Store.Credential(scope)
	if err != nil {
		return false, fmt.Errorf("failed to read %s credential: %w", scope, err)
	}
	return cred != nil && cred.AccessToken != "", nil
}
