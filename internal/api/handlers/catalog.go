package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/backend"
	"github.com/jafarshop/storefront/internal/session"
)

// CatalogAPI is the remote product catalog collaborator
type CatalogAPI interface {
	List(ctx context.Context, token string, filters backend.ListFilters) (json.RawMessage, error)
	Get(ctx context.Context, token, productID string) (json.RawMessage, error)
	Featured(ctx context.Context, token string) (json.RawMessage, error)
}

// HandleListProducts handles GET /v1/products
func HandleListProducts(catalog CatalogAPI, sess *session.Session, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		filters := backend.ListFilters{
			Category: c.Query("category"),
			Search:   c.Query("search"),
		}
		if page, err := strconv.Atoi(c.Query("page")); err == nil {
			filters.Page = page
		}
		if limit, err := strconv.Atoi(c.Query("limit")); err == nil {
			filters.Limit = limit
		}
		filters.Featured = c.Query("featured") == "true"

		token, _ := sess.Token(c.Request.Context())
		body, err := catalog.List(c.Request.Context(), token, filters)
		if err != nil {
			logger.Info("Product listing failed", zap.Error(err))
			checkoutError(c, err)
			return
		}

		c.Data(http.StatusOK, "application/json", body)
	}
}

// HandleGetProduct handles GET /v1/products/:id
func HandleGetProduct(catalog CatalogAPI, sess *session.Session, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := sess.Token(c.Request.Context())
		body, err := catalog.Get(c.Request.Context(), token, c.Param("id"))
		if err != nil {
			logger.Info("Product fetch failed", zap.Error(err))
			checkoutError(c, err)
			return
		}

		c.Data(http.StatusOK, "application/json", body)
	}
}

// HandleFeaturedProducts handles GET /v1/products/featured
func HandleFeaturedProducts(catalog CatalogAPI, sess *session.Session, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		token, _ := sess.Token(c.Request.Context())
		body, err := catalog.Featured(c.Request.Context(), token)
		if err != nil {
			logger.Info("Featured products fetch failed", zap.Error(err))
			checkoutError(c, err)
			return
		}

		c.Data(http.StatusOK, "application/json", body)
	}
}
