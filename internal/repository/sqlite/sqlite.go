package sqlite

import (
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/config"
	"github.com/jafarshop/storefront/internal/repository"
)

// NewConnection opens the session store and creates the schema if missing
func NewConnection(cfg config.StoreConfig) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", cfg.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open session store: %w", err)
	}

	schema := `
		CREATE TABLE IF NOT EXISTS cart_items (
			session_id TEXT NOT NULL,
			position   INTEGER NOT NULL,
			product_id TEXT NOT NULL,
			name       TEXT NOT NULL,
			unit_price REAL NOT NULL,
			quantity   INTEGER NOT NULL,
			image_url  TEXT,
			PRIMARY KEY (session_id, product_id)
		);
		CREATE TABLE IF NOT EXISTS credentials (
			session_id   TEXT PRIMARY KEY,
			token        TEXT NOT NULL,
			profile_json TEXT
		);
		CREATE TABLE IF NOT EXISTS sessions (
			id TEXT PRIMARY KEY
		);
	`
	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create schema: %w", err)
	}

	return db, nil
}

// EnsureSession returns the persisted session identity, creating one on first
// run. Reusing the id across restarts is what lets the cart survive a reload
// within the same session.
func EnsureSession(db *sql.DB) (uuid.UUID, error) {
	var idStr string
	err := db.QueryRow(`SELECT id FROM sessions LIMIT 1`).Scan(&idStr)
	if err == nil {
		return uuid.Parse(idStr)
	}
	if err != sql.ErrNoRows {
		return uuid.Nil, fmt.Errorf("failed to read session: %w", err)
	}

	id := uuid.New()
	if _, err := db.Exec(`INSERT INTO sessions (id) VALUES (?)`, id.String()); err != nil {
		return uuid.Nil, fmt.Errorf("failed to create session: %w", err)
	}
	return id, nil
}

// NewRepositories creates all SQLite-backed repositories
func NewRepositories(db *sql.DB, logger *zap.Logger) *repository.Repositories {
	return &repository.Repositories{
		Cart:       NewCartRepository(db, logger),
		Credential: NewCredentialRepository(db, logger),
	}
}
