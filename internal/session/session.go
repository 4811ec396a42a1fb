package session

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/domain"
	"github.com/jafarshop/storefront/internal/repository"
)

// Session identifies the active storefront session and owns its stored
// credential. It backs both the checkout orchestrator's credential lookup and
// the auth handlers.
type Session struct {
	ID     uuid.UUID
	creds  repository.CredentialRepository
	logger *zap.Logger
}

// New creates a session handle over the credential repository
func New(id uuid.UUID, creds repository.CredentialRepository, logger *zap.Logger) *Session {
	return &Session{
		ID:     id,
		creds:  creds,
		logger: logger,
	}
}

// Token returns the stored bearer token, or false when the session holds none
func (s *Session) Token(ctx context.Context) (string, bool) {
	cred, err := s.creds.Get(ctx, s.ID)
	if err != nil || cred.Token == "" {
		return "", false
	}
	return cred.Token, true
}

// Credential returns the full stored credential
func (s *Session) Credential(ctx context.Context) (*domain.Credential, error) {
	return s.creds.Get(ctx, s.ID)
}

// Store persists a credential for the session
func (s *Session) Store(ctx context.Context, cred *domain.Credential) error {
	if err := s.creds.Put(ctx, s.ID, cred); err != nil {
		s.logger.Error("Failed to store credential", zap.Error(err))
		return err
	}
	return nil
}

// Clear removes the stored credential (client-side logout)
func (s *Session) Clear(ctx context.Context) error {
	if err := s.creds.Delete(ctx, s.ID); err != nil {
		s.logger.Error("Failed to clear credential", zap.Error(err))
		return err
	}
	return nil
}
