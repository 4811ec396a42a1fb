package sqlite

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/domain"
	"github.com/jafarshop/storefront/pkg/errors"
)

type credentialRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewCredentialRepository creates a new credential repository
func NewCredentialRepository(db *sql.DB, logger *zap.Logger) *credentialRepository {
	return &credentialRepository{
		db:     db,
		logger: logger,
	}
}

func (r *credentialRepository) Get(ctx context.Context, sessionID uuid.UUID) (*domain.Credential, error) {
	query := `
		SELECT token, profile_json
		FROM credentials
		WHERE session_id = ?
	`

	var cred domain.Credential
	var profile sql.NullString

	err := r.db.QueryRowContext(ctx, query, sessionID.String()).Scan(&cred.Token, &profile)
	if err == sql.ErrNoRows {
		return nil, &errors.ErrNotFound{Resource: "credential", ID: sessionID.String()}
	}
	if err != nil {
		r.logger.Error("Failed to get credential", zap.Error(err))
		return nil, err
	}

	if profile.Valid {
		cred.Profile = []byte(profile.String)
	}

	return &cred, nil
}

func (r *credentialRepository) Put(ctx context.Context, sessionID uuid.UUID, cred *domain.Credential) error {
	query := `
		INSERT INTO credentials (session_id, token, profile_json)
		VALUES (?, ?, ?)
		ON CONFLICT (session_id) DO UPDATE SET token = excluded.token, profile_json = excluded.profile_json
	`

	_, err := r.db.ExecContext(ctx, query, sessionID.String(), cred.Token, string(cred.Profile))
	if err != nil {
		r.logger.Error("Failed to store credential", zap.Error(err))
		return err
	}

	return nil
}

func (r *credentialRepository) Delete(ctx context.Context, sessionID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM credentials WHERE session_id = ?`, sessionID.String())
	if err != nil {
		r.logger.Error("Failed to delete credential", zap.Error(err))
		return err
	}
	return nil
}
