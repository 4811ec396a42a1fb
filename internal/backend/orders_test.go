package backend

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/config"
	"github.com/jafarshop/storefront/internal/domain"
	"github.com/jafarshop/storefront/pkg/errors"
)

func testOrdersClient(t *testing.T, handler http.HandlerFunc) *ordersClient {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)

	client := NewClient(config.BackendConfig{BaseURL: srv.URL}, zap.NewNop())
	return NewOrdersClient(client, zap.NewNop())
}

func testOrderRequest() CreateOrderRequest {
	return CreateOrderRequest{
		Items: []OrderItem{
			{ProductID: "A", Name: "Product A", UnitPrice: 1000, Quantity: 2, ImageURL: "https://img.example/a.jpg"},
		},
		ShippingAddress: domain.ShippingDetails{
			FullName:   "Jane Doe",
			Street:     "1 Main St",
			City:       "Lagos",
			PostalCode: "100001",
			Country:    "NG",
		},
		Notes: "leave at door",
	}
}

func TestCreateOrder_SendsBearerTokenAndPayload(t *testing.T) {
	var gotAuth string
	var gotBody map[string]interface{}

	c := testOrdersClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))

		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success": true, "order": {"_id": "ord-1"}}`))
	})

	result, err := c.CreateOrder(context.Background(), "tok-123", testOrderRequest())
	require.NoError(t, err)

	assert.Equal(t, "Bearer tok-123", gotAuth)
	assert.Equal(t, "ord-1", result.Order.ID)

	items, ok := gotBody["items"].([]interface{})
	require.True(t, ok)
	require.Len(t, items, 1)
	item := items[0].(map[string]interface{})
	assert.Equal(t, "A", item["productId"])
	assert.Equal(t, 2.0, item["quantity"])
	assert.Equal(t, "leave at door", gotBody["notes"])
	require.Contains(t, gotBody, "shippingAddress")
}

func TestCreateOrder_SentinelPaymentLinksTreatedAsAbsent(t *testing.T) {
	bodies := []string{
		`{"success": true}`,
		`{"success": true, "paymentLink": ""}`,
		`{"success": true, "paymentLink": "null"}`,
		`{"success": true, "paymentLink": "undefined"}`,
		`{"success": true, "paymentLink": " null "}`,
	}

	for _, body := range bodies {
		body := body
		t.Run(body, func(t *testing.T) {
			c := testOrdersClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.Header().Set("Content-Type", "application/json")
				w.Write([]byte(body))
			})

			result, err := c.CreateOrder(context.Background(), "tok", testOrderRequest())
			require.NoError(t, err)
			assert.Empty(t, result.PaymentLink)
		})
	}
}

func TestCreateOrder_RealPaymentLinkPreserved(t *testing.T) {
	c := testOrdersClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success": true, "paymentLink": "https://pay.example/abc"}`))
	})

	result, err := c.CreateOrder(context.Background(), "tok", testOrderRequest())
	require.NoError(t, err)
	assert.Equal(t, "https://pay.example/abc", result.PaymentLink)
}

func TestCreateOrder_BusinessRejectionCarriesServerMessage(t *testing.T) {
	c := testOrdersClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success": false, "message": "product out of stock"}`))
	})

	_, err := c.CreateOrder(context.Background(), "tok", testOrderRequest())
	var rejected *errors.ErrOrderRejected
	require.ErrorAs(t, err, &rejected)
	assert.Equal(t, "product out of stock", rejected.Message)
}

func TestCreateOrder_NonJSONBodyIsMalformed(t *testing.T) {
	c := testOrdersClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html")
		w.Write([]byte("<html>502 Bad Gateway</html>"))
	})

	_, err := c.CreateOrder(context.Background(), "tok", testOrderRequest())
	var malformed *errors.ErrMalformedResponse
	assert.ErrorAs(t, err, &malformed)
}

func TestCreateOrder_WrongTypeBodyIsMalformed(t *testing.T) {
	c := testOrdersClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"success": "yes"}`))
	})

	_, err := c.CreateOrder(context.Background(), "tok", testOrderRequest())
	var malformed *errors.ErrMalformedResponse
	assert.ErrorAs(t, err, &malformed)
}

func TestCreateOrder_MissingSuccessFlagIsMalformed(t *testing.T) {
	c := testOrdersClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"order": {"id": "ord-1"}}`))
	})

	_, err := c.CreateOrder(context.Background(), "tok", testOrderRequest())
	var malformed *errors.ErrMalformedResponse
	assert.ErrorAs(t, err, &malformed)
}

func TestCreateOrder_ServerErrorSurfacesMessage(t *testing.T) {
	c := testOrdersClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"message": "database unavailable"}`))
	})

	_, err := c.CreateOrder(context.Background(), "tok", testOrderRequest())
	var transport *errors.ErrTransport
	require.ErrorAs(t, err, &transport)
	assert.Equal(t, http.StatusInternalServerError, transport.Status)
	assert.Equal(t, "database unavailable", transport.Message)
}

func TestNormalizePaymentLink(t *testing.T) {
	cases := map[string]string{
		"":                        "",
		"null":                    "",
		"undefined":               "",
		"  undefined  ":           "",
		"https://pay.example/abc": "https://pay.example/abc",
		"nullish":                 "nullish",
	}
	for in, want := range cases {
		assert.Equal(t, want, normalizePaymentLink(in), "input %q", in)
	}
}

func TestParseOrder_ExtractsIdentifier(t *testing.T) {
	assert.Equal(t, "a1", parseOrder([]byte(`{"id": "a1"}`)).ID)
	assert.Equal(t, "b2", parseOrder([]byte(`{"_id": "b2"}`)).ID)
	assert.Equal(t, "a1", parseOrder([]byte(`{"id": "a1", "_id": "b2"}`)).ID)
	assert.Empty(t, parseOrder(nil).ID)
	assert.Empty(t, parseOrder([]byte(`{"total": 3650}`)).ID)
}
