package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/cart"
	"github.com/jafarshop/storefront/internal/domain"
)

// AddItemRequest is the add-to-cart payload
type AddItemRequest struct {
	ID        string  `json:"id" binding:"required"`
	Name      string  `json:"name" binding:"required"`
	UnitPrice float64 `json:"unit_price" binding:"min=0"`
	Quantity  int     `json:"quantity"`
	ImageURL  string  `json:"image_url"`
}

// UpdateItemRequest sets an item's quantity; zero removes the item
type UpdateItemRequest struct {
	Quantity *int `json:"quantity" binding:"required"`
}

// CartResponse is the cart contents plus derived totals
type CartResponse struct {
	Items     []domain.CartItem `json:"items"`
	ItemCount int               `json:"item_count"`
	Totals    domain.Totals     `json:"totals"`
}

func cartResponse(store *cart.Store) CartResponse {
	items := store.Items()
	if items == nil {
		items = []domain.CartItem{}
	}
	return CartResponse{
		Items:     items,
		ItemCount: store.ItemCount(),
		Totals:    store.Totals(),
	}
}

// HandleGetCart handles GET /v1/cart
func HandleGetCart(store *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, cartResponse(store))
	}
}

// HandleGetTotals handles GET /v1/cart/totals
func HandleGetTotals(store *cart.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, store.Totals())
	}
}

// HandleAddItem handles POST /v1/cart/items
func HandleAddItem(store *cart.Store, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req AddItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		store.AddItem(c.Request.Context(), domain.CartItem{
			ID:        req.ID,
			Name:      req.Name,
			UnitPrice: req.UnitPrice,
			ImageURL:  req.ImageURL,
		}, req.Quantity)

		logger.Info("Item added to cart",
			zap.String("product_id", req.ID),
			zap.Int("quantity", req.Quantity),
		)

		c.JSON(http.StatusOK, cartResponse(store))
	}
}

// HandleUpdateItem handles PUT /v1/cart/items/:id
func HandleUpdateItem(store *cart.Store, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UpdateItemRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		id := c.Param("id")
		store.SetQuantity(c.Request.Context(), id, *req.Quantity)

		logger.Info("Cart item quantity updated",
			zap.String("product_id", id),
			zap.Int("quantity", *req.Quantity),
		)

		c.JSON(http.StatusOK, cartResponse(store))
	}
}

// HandleRemoveItem handles DELETE /v1/cart/items/:id
func HandleRemoveItem(store *cart.Store, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id := c.Param("id")
		store.RemoveItem(c.Request.Context(), id)

		logger.Info("Item removed from cart", zap.String("product_id", id))

		c.JSON(http.StatusOK, cartResponse(store))
	}
}

// HandleClearCart handles DELETE /v1/cart
func HandleClearCart(store *cart.Store, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		store.Clear(c.Request.Context())

		logger.Info("Cart cleared")

		c.Status(http.StatusNoContent)
	}
}
