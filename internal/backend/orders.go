package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/domain"
	"github.com/jafarshop/storefront/pkg/errors"
)

// OrderItem is one line of the create-order payload
type OrderItem struct {
	ProductID string  `json:"productId"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unitPrice"`
	Quantity  int     `json:"quantity"`
	ImageURL  string  `json:"imageUrl,omitempty"`
}

// CreateOrderRequest is the create-order payload
type CreateOrderRequest struct {
	Items           []OrderItem            `json:"items"`
	ShippingAddress domain.ShippingDetails `json:"shippingAddress"`
	Notes           string                 `json:"notes,omitempty"`
}

// OrderResult is the interpreted create-order response. PaymentLink is
// normalized: absent, empty, and the upstream's literal "null"/"undefined"
// placeholder strings all arrive here as "".
type OrderResult struct {
	Order       domain.Order
	Message     string
	PaymentLink string
}

type ordersClient struct {
	client *Client
	logger *zap.Logger
}

// NewOrdersClient creates a client for the remote order service
func NewOrdersClient(client *Client, logger *zap.Logger) *ordersClient {
	return &ordersClient{
		client: client,
		logger: logger,
	}
}

// CreateOrder submits an order and interprets the response. A wrongly-typed
// body is a malformed-response error; success=false is an order rejection
// carrying the server's message.
func (c *ordersClient) CreateOrder(ctx context.Context, token string, req CreateOrderRequest) (*OrderResult, error) {
	body, err := c.client.doJSON(ctx, http.MethodPost, "/api/orders", token, req)
	if err != nil {
		return nil, err
	}

	var resp struct {
		Success     *bool           `json:"success"`
		Message     string          `json:"message"`
		Order       json.RawMessage `json:"order"`
		PaymentLink string          `json:"paymentLink"`
	}
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Warn("Order response did not match expected shape", zap.Error(err))
		return nil, &errors.ErrMalformedResponse{Detail: err.Error()}
	}
	if resp.Success == nil {
		return nil, &errors.ErrMalformedResponse{Detail: "response missing success flag"}
	}

	if !*resp.Success {
		return nil, &errors.ErrOrderRejected{Message: resp.Message}
	}

	return &OrderResult{
		Order:       parseOrder(resp.Order),
		Message:     resp.Message,
		PaymentLink: normalizePaymentLink(resp.PaymentLink),
	}, nil
}

// normalizePaymentLink maps every "no link" representation the upstream is
// known to produce onto the one canonical empty value. The service sometimes
// serializes a missing link as the literal strings "null" or "undefined".
func normalizePaymentLink(link string) string {
	link = strings.TrimSpace(link)
	if link == "null" || link == "undefined" {
		return ""
	}
	return link
}

// parseOrder extracts the order identifier while keeping the full record
// opaque for the confirmation view
func parseOrder(raw json.RawMessage) domain.Order {
	order := domain.Order{Raw: raw}
	if len(raw) == 0 {
		return order
	}

	var fields struct {
		ID      string `json:"id"`
		MongoID string `json:"_id"`
	}
	if err := json.Unmarshal(raw, &fields); err != nil {
		return order
	}

	order.ID = fields.ID
	if order.ID == "" {
		order.ID = fields.MongoID
	}
	return order
}
