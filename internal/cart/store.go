package cart

import (
	"context"
	"sync"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/config"
	"github.com/jafarshop/storefront/internal/domain"
	"github.com/jafarshop/storefront/internal/repository"
)

// Store is the single source of truth for the session's cart contents. All
// consumers share one instance; mutations are atomic with respect to readers
// and every mutation is written through to the session repository.
type Store struct {
	mu        sync.RWMutex
	items     []domain.CartItem
	pricing   config.PricingConfig
	repo      repository.CartRepository
	sessionID uuid.UUID
	logger    *zap.Logger

	subMu   sync.Mutex
	subs    map[int]func()
	nextSub int
}

// NewStore creates a cart store and restores any cart persisted for the
// session. A load failure starts the session with an empty cart.
func NewStore(ctx context.Context, pricing config.PricingConfig, sessionID uuid.UUID, repo repository.CartRepository, logger *zap.Logger) *Store {
	s := &Store{
		pricing:   pricing,
		repo:      repo,
		sessionID: sessionID,
		logger:    logger,
		subs:      make(map[int]func()),
	}

	if repo != nil {
		items, err := repo.Load(ctx, sessionID)
		if err != nil {
			logger.Warn("Failed to restore persisted cart, starting empty", zap.Error(err))
		} else {
			s.items = items
		}
	}

	return s
}

// AddItem adds quantity units of the product to the cart. If the product is
// already present its quantity is incremented; a new entry is appended
// otherwise. A quantity below 1 is coerced to 1 and a product without an id
// is ignored.
func (s *Store) AddItem(ctx context.Context, product domain.CartItem, quantity int) {
	if product.ID == "" {
		s.logger.Warn("Ignoring cart add with empty product id")
		return
	}
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	found := false
	for i := range s.items {
		if s.items[i].ID == product.ID {
			s.items[i].Quantity += quantity
			found = true
			break
		}
	}
	if !found {
		product.Quantity = quantity
		s.items = append(s.items, product)
	}
	s.persistLocked(ctx)
	s.mu.Unlock()

	s.notify()
}

// RemoveItem removes the item with the given id. No-op if absent.
func (s *Store) RemoveItem(ctx context.Context, id string) {
	s.mu.Lock()
	changed := s.removeLocked(id)
	if changed {
		s.persistLocked(ctx)
	}
	s.mu.Unlock()

	if changed {
		s.notify()
	}
}

// SetQuantity sets the item's quantity to exactly quantity. A quantity of
// zero or less removes the item. No-op if the id is absent.
func (s *Store) SetQuantity(ctx context.Context, id string, quantity int) {
	s.mu.Lock()
	changed := false
	if quantity <= 0 {
		changed = s.removeLocked(id)
	} else {
		for i := range s.items {
			if s.items[i].ID == id {
				s.items[i].Quantity = quantity
				changed = true
				break
			}
		}
	}
	if changed {
		s.persistLocked(ctx)
	}
	s.mu.Unlock()

	if changed {
		s.notify()
	}
}

// Clear empties the cart unconditionally
func (s *Store) Clear(ctx context.Context) {
	s.mu.Lock()
	s.items = nil
	if s.repo != nil {
		if err := s.repo.Clear(ctx, s.sessionID); err != nil {
			s.logger.Error("Failed to clear persisted cart", zap.Error(err))
		}
	}
	s.mu.Unlock()

	s.notify()
}

// Items returns a copy of the cart contents in insertion order. Mutating the
// returned slice does not affect the store.
func (s *Store) Items() []domain.CartItem {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.copyItemsLocked()
}

// ItemCount returns the sum of quantities across all items
func (s *Store) ItemCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()

	count := 0
	for _, item := range s.items {
		count += item.Quantity
	}
	return count
}

// IsEmpty reports whether the cart holds no items
func (s *Store) IsEmpty() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.items) == 0
}

// Subtotal returns the sum of unit price times quantity over all items
func (s *Store) Subtotal() float64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return subtotal(s.items)
}

// Totals computes all derived amounts from the current items and the pricing
// policy. Computed fresh on every call.
func (s *Store) Totals() domain.Totals {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return computeTotals(s.items, s.pricing)
}

// Subscribe registers a callback invoked after every cart mutation. The
// returned function cancels the subscription.
func (s *Store) Subscribe(fn func()) func() {
	s.subMu.Lock()
	id := s.nextSub
	s.nextSub++
	s.subs[id] = fn
	s.subMu.Unlock()

	return func() {
		s.subMu.Lock()
		delete(s.subs, id)
		s.subMu.Unlock()
	}
}

func (s *Store) removeLocked(id string) bool {
	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			return true
		}
	}
	return false
}

func (s *Store) copyItemsLocked() []domain.CartItem {
	items := make([]domain.CartItem, len(s.items))
	copy(items, s.items)
	return items
}

// persistLocked writes the current items through to the repository. A write
// failure is logged but never fails the mutation; the in-memory cart stays
// authoritative for the session.
func (s *Store) persistLocked(ctx context.Context) {
	if s.repo == nil {
		return
	}
	if err := s.repo.Save(ctx, s.sessionID, s.copyItemsLocked()); err != nil {
		s.logger.Error("Failed to persist cart", zap.Error(err))
	}
}

func (s *Store) notify() {
	s.subMu.Lock()
	fns := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.subMu.Unlock()

	for _, fn := range fns {
		fn()
	}
}
