package domain

import "encoding/json"

// CartItem represents one distinct product held in the cart
type CartItem struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
	ImageURL  string  `json:"image_url,omitempty"`
}

// Totals holds the derived cart amounts. Always computed fresh from the
// current items, never stored.
type Totals struct {
	Subtotal float64 `json:"subtotal"`
	Shipping float64 `json:"shipping"`
	Tax      float64 `json:"tax"`
	Total    float64 `json:"total"`
}

// ShippingDetails is collected during the shipping step and forwarded to the
// order service as-is
type ShippingDetails struct {
	FullName   string `json:"full_name"`
	Phone      string `json:"phone,omitempty"`
	Street     string `json:"street"`
	City       string `json:"city"`
	State      string `json:"state,omitempty"`
	PostalCode string `json:"postal_code"`
	Country    string `json:"country"`
	Notes      string `json:"notes,omitempty"`
}

// PaymentDetails is collected during the payment step. The checkout flow only
// carries it; no payment logic lives in this service.
type PaymentDetails struct {
	Method string `json:"method"`
}

// Order is the record echoed back by the order service. The raw body is kept
// for the confirmation view; only the identifier is interpreted here.
type Order struct {
	ID  string          `json:"id"`
	Raw json.RawMessage `json:"raw,omitempty"`
}

// Credential is the stored authentication state for the active session
type Credential struct {
	Token   string          `json:"token"`
	Profile json.RawMessage `json:"profile,omitempty"`
}
