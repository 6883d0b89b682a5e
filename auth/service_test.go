package auth_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/url"
	"testing"

	"github.com/myservicehub/ServiceHub-sub004/auth"
	"github.com/myservicehub/ServiceHub-sub004/gateway"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockAPI struct {
	postPath    string
	postBody    any
	postReply   string
	getReply    string
	errToReturn error
}

func (m *mockAPI) PostJSON(_ context.Context, path string, in, out any) error {
	m.postPath = path
	m.postBody = in
	if m.errToReturn != nil {
		return m.errToReturn
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal([]byte(m.postReply), out)
}

func (m *mockAPI) GetJSON(_ context.Context, path string, _ url.Values, out any) error {
	if m.errToReturn != nil {
		return m.errToReturn
	}
	return json.Unmarshal([]byte(m.getReply), out)
}

type fakeStore struct {
	creds   map[gateway.Scope]*gateway.Credential
	setErr  error
	cleared []gateway.Scope
}

func newFakeStore() *fakeStore {
	return &fakeStore{creds: make(map[gateway.Scope]*gateway.Credential)}
}

func (s *fakeStore) Credential(scope gateway.Scope) (*gateway.Credential, error) {
	return s.creds[scope], nil
}

func (s *fakeStore) SetCredential(cred *gateway.Credential) error {
	if s.setErr != nil {
		return s.setErr
	}
	s.creds[cred.Scope] = cred
	return nil
}

func (s *fakeStore) ClearCredential(scope gateway.Scope) error {
	delete(s.creds, scope)
	s.cleared = append(s.cleared, scope)
	return nil
}

func TestLogin_PersistsSession(t *testing.T) {
	api := &mockAPI{postReply: `{"access_token":"a1","refresh_token":"r1","token_type":"bearer"}`}
	store := newFakeStore()
	service := auth.NewService(api, store)

	err := service.Login(context.Background(), "worker@example.com", "hunter2")

	require.NoError(t, err)
	assert.Equal(t, gateway.PathLogin, api.postPath)
	cred := store.creds[gateway.ScopeUser]
	require.NotNil(t, cred)
	assert.Equal(t, "a1", cred.AccessToken)
	assert.Equal(t, "r1", cred.RefreshToken)
}

func TestLogin_WhenBackendRejects(t *testing.T) {
	api := &mockAPI{errToReturn: errors.New("api error: 401 Unauthorized: Incorrect email or password")}
	store := newFakeStore()
	service := auth.NewService(api, store)

	err := service.Login(context.Background(), "worker@example.com", "wrong")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "Incorrect email or password")
	assert.Nil(t, store.creds[gateway.ScopeUser], "no session should be saved on a failed login")
}

func TestLogin_WhenResponseIsIncomplete(t *testing.T) {
	api := &mockAPI{postReply: `{"access_token":"a1"}`}
	service := auth.NewService(api, newFakeStore())

	err := service.Login(context.Background(), "worker@example.com", "hunter2")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing tokens")
}

func TestAdminLogin_PersistsAccessOnlyCredential(t *testing.T) {
	api := &mockAPI{postReply: `{"access_token":"adm1","token_type":"bearer"}`}
	store := newFakeStore()
	service := auth.NewService(api, store)

	err := service.AdminLogin(context.Background(), "root@example.com", "hunter2")

	require.NoError(t, err)
	assert.Equal(t, gateway.PathAdminLogin, api.postPath)
	cred := store.creds[gateway.ScopeAdmin]
	require.NotNil(t, cred)
	assert.Equal(t, "adm1", cred.AccessToken)
	assert.Empty(t, cred.RefreshToken, "admin sessions must not carry a refresh token")
}

func TestLogout_ClearsOnlyTheGivenScope(t *testing.T) {
	store := newFakeStore()
	store.creds[gateway.ScopeUser] = &gateway.Credential{Scope: gateway.ScopeUser, AccessToken: "a1", RefreshToken: "r1"}
	store.creds[gateway.ScopeAdmin] = &gateway.Credential{Scope: gateway.ScopeAdmin, AccessToken: "adm1"}
	service := auth.NewService(&mockAPI{}, store)

	require.NoError(t, service.Logout(gateway.ScopeUser))

	assert.Nil(t, store.creds[gateway.ScopeUser])
	assert.NotNil(t, store.creds[gateway.ScopeAdmin], "admin session must survive a user logout")
}

func TestProfile(t *testing.T) {
	api := &mockAPI{getReply: `{"id":3,"email":"worker@example.com","full_name":"Avery Worker","role":"user","is_active":true}`}
	service := auth.NewService(api, newFakeStore())

	user, err := service.Profile(context.Background())

	require.NoError(t, err)
	assert.Equal(t, "worker@example.com", user.Email)
	assert.True(t, user.IsActive)
}

func TestLoggedIn(t *testing.T) {
	store := newFakeStore()
	service := auth.NewService(&mockAPI{}, store)

	ok, err := service.LoggedIn(gateway.ScopeUser)
	require.NoError(t, err)
	assert.False(t, ok)

	store.creds[gateway.ScopeUser] = &gateway.Credential{Scope: gateway.ScopeUser, AccessToken: "a1"}
	ok, err = service.LoggedIn(gateway.ScopeUser)
	require.NoError(t, err)
	assert.True(t, ok)
}
