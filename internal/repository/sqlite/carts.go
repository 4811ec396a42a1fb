package sqlite

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/domain"
)

type cartRepository struct {
	db     *sql.DB
	logger *zap.Logger
}

// NewCartRepository creates a new cart repository
func NewCartRepository(db *sql.DB, logger *zap.Logger) *cartRepository {
	return &cartRepository{
		db:     db,
		logger: logger,
	}
}

func (r *cartRepository) Load(ctx context.Context, sessionID uuid.UUID) ([]domain.CartItem, error) {
	query := `
		SELECT product_id, name, unit_price, quantity, image_url
		FROM cart_items
		WHERE session_id = ?
		ORDER BY position
	`

	rows, err := r.db.QueryContext(ctx, query, sessionID.String())
	if err != nil {
		r.logger.Error("Failed to load cart items", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var items []domain.CartItem
	for rows.Next() {
		var item domain.CartItem
		var imageURL sql.NullString

		err := rows.Scan(
			&item.ID,
			&item.Name,
			&item.UnitPrice,
			&item.Quantity,
			&imageURL,
		)
		if err != nil {
			r.logger.Error("Failed to scan cart item", zap.Error(err))
			return nil, err
		}

		if imageURL.Valid {
			item.ImageURL = imageURL.String
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

// Save replaces the persisted cart with the given items in one transaction so
// a reader never observes a partially written cart.
func (r *cartRepository) Save(ctx context.Context, sessionID uuid.UUID, items []domain.CartItem) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		r.logger.Error("Failed to begin cart save", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM cart_items WHERE session_id = ?`, sessionID.String()); err != nil {
		r.logger.Error("Failed to clear cart items", zap.Error(err))
		return err
	}

	insert := `
		INSERT INTO cart_items (session_id, position, product_id, name, unit_price, quantity, image_url)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`
	for i, item := range items {
		_, err := tx.ExecContext(ctx, insert,
			sessionID.String(),
			i,
			item.ID,
			item.Name,
			item.UnitPrice,
			item.Quantity,
			item.ImageURL,
		)
		if err != nil {
			r.logger.Error("Failed to insert cart item", zap.Error(err), zap.String("product_id", item.ID))
			return err
		}
	}

	return tx.Commit()
}

func (r *cartRepository) Clear(ctx context.Context, sessionID uuid.UUID) error {
	_, err := r.db.ExecContext(ctx, `DELETE FROM cart_items WHERE session_id = ?`, sessionID.String())
	if err != nil {
		r.logger.Error("Failed to clear cart", zap.Error(err))
		return err
	}
	return nil
}
