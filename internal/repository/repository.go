package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/jafarshop/storefront/internal/domain"
)

// CartRepository persists cart contents for a session so the cart survives a
// process restart within the same session
type CartRepository interface {
	Load(ctx context.Context, sessionID uuid.UUID) ([]domain.CartItem, error)
	Save(ctx context.Context, sessionID uuid.UUID, items []domain.CartItem) error
	Clear(ctx context.Context, sessionID uuid.UUID) error
}

// CredentialRepository persists the session's authentication credential
type CredentialRepository interface {
	Get(ctx context.Context, sessionID uuid.UUID) (*domain.Credential, error)
	Put(ctx context.Context, sessionID uuid.UUID, cred *domain.Credential) error
	Delete(ctx context.Context, sessionID uuid.UUID) error
}

// Repositories aggregates all repository implementations
type Repositories struct {
	Cart       CartRepository
	Credential CredentialRepository
}
