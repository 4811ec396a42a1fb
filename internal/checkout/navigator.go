package checkout

import (
	"sync"

	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/domain"
)

// LogNavigator records navigation hand-offs for the HTTP surface. The actual
// redirect or view change happens on the consuming client; this side keeps
// the last destination queryable.
type LogNavigator struct {
	logger *zap.Logger

	mu           sync.Mutex
	lastRedirect string
	lastOrder    *domain.Order
	lastMessage  string
}

// NewLogNavigator creates a navigator that logs and records hand-offs
func NewLogNavigator(logger *zap.Logger) *LogNavigator {
	return &LogNavigator{logger: logger}
}

func (n *LogNavigator) RedirectExternal(url string) {
	n.mu.Lock()
	n.lastRedirect = url
	n.mu.Unlock()

	n.logger.Info("Navigation hand-off to external payment page", zap.String("url", url))
}

func (n *LogNavigator) ShowOrderSuccess(order domain.Order, message string) {
	n.mu.Lock()
	n.lastOrder = &order
	n.lastMessage = message
	n.mu.Unlock()

	n.logger.Info("Navigation to order-success view",
		zap.String("order_id", order.ID),
		zap.String("message", message),
	)
}

// LastRedirect returns the most recent external redirect URL, if any
func (n *LogNavigator) LastRedirect() string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.lastRedirect
}

// LastSuccess returns the most recent order-success navigation, if any
func (n *LogNavigator) LastSuccess() (*domain.Order, string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	return n.lastOrder, n.lastMessage
}
