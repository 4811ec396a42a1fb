package sqlite

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/config"
	"github.com/jafarshop/storefront/internal/domain"
	"github.com/jafarshop/storefront/pkg/errors"
)

func TestEnsureSession_StableAcrossCalls(t *testing.T) {
	db, err := NewConnection(config.StoreConfig{Path: ":memory:"})
	require.NoError(t, err)
	defer db.Close()

	first, err := EnsureSession(db)
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, first)

	second, err := EnsureSession(db)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestCartRepository_RoundTripPreservesOrder(t *testing.T) {
	db, err := NewConnection(config.StoreConfig{Path: ":memory:"})
	require.NoError(t, err)
	defer db.Close()

	repo := NewCartRepository(db, zap.NewNop())
	sessionID := uuid.New()
	ctx := context.Background()

	items := []domain.CartItem{
		{ID: "C", Name: "Third added first", UnitPrice: 10.5, Quantity: 3, ImageURL: "https://img.example/c.jpg"},
		{ID: "A", Name: "First added second", UnitPrice: 1000, Quantity: 1},
		{ID: "B", Name: "Second added third", UnitPrice: 250, Quantity: 7},
	}
	require.NoError(t, repo.Save(ctx, sessionID, items))

	loaded, err := repo.Load(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, items, loaded)
}

func TestCartRepository_SaveReplacesPreviousContents(t *testing.T) {
	db, err := NewConnection(config.StoreConfig{Path: ":memory:"})
	require.NoError(t, err)
	defer db.Close()

	repo := NewCartRepository(db, zap.NewNop())
	sessionID := uuid.New()
	ctx := context.Background()

	require.NoError(t, repo.Save(ctx, sessionID, []domain.CartItem{
		{ID: "A", Name: "Product A", UnitPrice: 100, Quantity: 1},
		{ID: "B", Name: "Product B", UnitPrice: 200, Quantity: 2},
	}))
	require.NoError(t, repo.Save(ctx, sessionID, []domain.CartItem{
		{ID: "B", Name: "Product B", UnitPrice: 200, Quantity: 5},
	}))

	loaded, err := repo.Load(ctx, sessionID)
	require.NoError(t, err)
	require.Len(t, loaded, 1)
	assert.Equal(t, "B", loaded[0].ID)
	assert.Equal(t, 5, loaded[0].Quantity)
}

func TestCartRepository_SessionsAreIsolated(t *testing.T) {
	db, err := NewConnection(config.StoreConfig{Path: ":memory:"})
	require.NoError(t, err)
	defer db.Close()

	repo := NewCartRepository(db, zap.NewNop())
	ctx := context.Background()
	mine, other := uuid.New(), uuid.New()

	require.NoError(t, repo.Save(ctx, mine, []domain.CartItem{
		{ID: "A", Name: "Product A", UnitPrice: 100, Quantity: 1},
	}))

	loaded, err := repo.Load(ctx, other)
	require.NoError(t, err)
	assert.Empty(t, loaded)

	require.NoError(t, repo.Clear(ctx, other))
	loaded, err = repo.Load(ctx, mine)
	require.NoError(t, err)
	assert.Len(t, loaded, 1)
}

func TestCredentialRepository_PutGetDelete(t *testing.T) {
	db, err := NewConnection(config.StoreConfig{Path: ":memory:"})
	require.NoError(t, err)
	defer db.Close()

	repo := NewCredentialRepository(db, zap.NewNop())
	sessionID := uuid.New()
	ctx := context.Background()

	_, err = repo.Get(ctx, sessionID)
	var notFound *errors.ErrNotFound
	require.ErrorAs(t, err, &notFound)

	cred := &domain.Credential{Token: "tok-1", Profile: []byte(`{"name": "Jane"}`)}
	require.NoError(t, repo.Put(ctx, sessionID, cred))

	got, err := repo.Get(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", got.Token)
	assert.JSONEq(t, `{"name": "Jane"}`, string(got.Profile))

	// Put overwrites in place
	require.NoError(t, repo.Put(ctx, sessionID, &domain.Credential{Token: "tok-2"}))
	got, err = repo.Get(ctx, sessionID)
	require.NoError(t, err)
	assert.Equal(t, "tok-2", got.Token)

	require.NoError(t, repo.Delete(ctx, sessionID))
	_, err = repo.Get(ctx, sessionID)
	require.ErrorAs(t, err, &notFound)
}
