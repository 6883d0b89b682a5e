package cmd

import (
	"context"

	"github.com/myservicehub/ServiceHub-sub004/db"
	"github.com/myservicehub/ServiceHub-sub004/gateway"
)

// credentialStore adapts a CredentialRepository to the gateway.SessionStore interface.
type credentialStore struct{ repo db.CredentialRepository }

func (s *credentialStore) Credential(scope gateway.Scope) (*gateway.Credential, error) {
	rec, err := s.repo.Get(context.Background(), string(scope))
	if err != nil {
		return nil, err
	}
	if rec == nil {
		return nil, nil
	}
	return &gateway.Credential{
		Scope:        gateway.Scope(rec.Scope),
		AccessToken:  rec.AccessToken,
		RefreshToken: rec.RefreshToken,
	}, nil
}

func (s *credentialStore) SetCredential(cred *gateway.Credential) error {
	return s.repo.Upsert(context.Background(), &db.Credential{
		Scope:        string(cred.Scope),
		AccessToken:  cred.AccessToken,
		RefreshToken: cred.RefreshToken,
	})
}

func (s *credentialStore) ClearCredential(scope gateway.Scope) error {
	return s.repo.Delete(context.Background(), string(scope))
}
