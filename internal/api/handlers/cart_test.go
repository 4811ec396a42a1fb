package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/cart"
	"github.com/jafarshop/storefront/internal/config"
	"github.com/jafarshop/storefront/internal/domain"
)

var testPricing = config.PricingConfig{
	FreeShippingThreshold: 50000,
	FlatShippingFee:       1500,
	TaxRate:               0.075,
}

func cartTestRouter(t *testing.T) (*gin.Engine, *cart.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store := cart.NewStore(context.Background(), testPricing, uuid.New(), nil, zap.NewNop())
	logger := zap.NewNop()

	router := gin.New()
	router.GET("/cart", HandleGetCart(store))
	router.GET("/cart/totals", HandleGetTotals(store))
	router.POST("/cart/items", HandleAddItem(store, logger))
	router.PUT("/cart/items/:id", HandleUpdateItem(store, logger))
	router.DELETE("/cart/items/:id", HandleRemoveItem(store, logger))
	router.DELETE("/cart", HandleClearCart(store, logger))

	return router, store
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestCartHandlers_AddAndGet(t *testing.T) {
	router, _ := cartTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/cart/items", AddItemRequest{
		ID: "A", Name: "Product A", UnitPrice: 1000, Quantity: 2,
	})
	require.Equal(t, http.StatusOK, w.Code)

	w = doJSON(t, router, http.MethodGet, "/cart", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp CartResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Items, 1)
	assert.Equal(t, 2, resp.Items[0].Quantity)
	assert.Equal(t, 2, resp.ItemCount)
	assert.Equal(t, 2000.0, resp.Totals.Subtotal)
	assert.Equal(t, 3650.0, resp.Totals.Total)
}

func TestCartHandlers_AddValidation(t *testing.T) {
	router, store := cartTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/cart/items", map[string]interface{}{
		"name": "no id",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.True(t, store.IsEmpty())
}

func TestCartHandlers_UpdateQuantity(t *testing.T) {
	router, store := cartTestRouter(t)
	store.AddItem(context.Background(), domain.CartItem{ID: "A", Name: "Product A", UnitPrice: 100}, 5)

	w := doJSON(t, router, http.MethodPut, "/cart/items/A", UpdateItemRequest{Quantity: intPtr(2)})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 2, store.ItemCount())

	// Quantity zero removes the item
	w = doJSON(t, router, http.MethodPut, "/cart/items/A", UpdateItemRequest{Quantity: intPtr(0)})
	require.Equal(t, http.StatusOK, w.Code)
	assert.True(t, store.IsEmpty())
}

func TestCartHandlers_RemoveAndClear(t *testing.T) {
	router, store := cartTestRouter(t)
	ctx := context.Background()
	store.AddItem(ctx, domain.CartItem{ID: "A", Name: "Product A", UnitPrice: 100}, 1)
	store.AddItem(ctx, domain.CartItem{ID: "B", Name: "Product B", UnitPrice: 200}, 1)

	w := doJSON(t, router, http.MethodDelete, "/cart/items/A", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, store.Items(), 1)

	w = doJSON(t, router, http.MethodDelete, "/cart", nil)
	require.Equal(t, http.StatusNoContent, w.Code)
	assert.True(t, store.IsEmpty())
}

func TestCartHandlers_Totals(t *testing.T) {
	router, store := cartTestRouter(t)
	store.AddItem(context.Background(), domain.CartItem{ID: "A", Name: "Product A", UnitPrice: 1000}, 2)

	w := doJSON(t, router, http.MethodGet, "/cart/totals", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var totals domain.Totals
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &totals))
	assert.Equal(t, domain.Totals{Subtotal: 2000, Shipping: 1500, Tax: 150, Total: 3650}, totals)
}

func intPtr(v int) *int { return &v }
