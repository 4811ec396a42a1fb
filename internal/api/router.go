package api

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/api/handlers"
	"github.com/jafarshop/storefront/internal/cart"
	"github.com/jafarshop/storefront/internal/checkout"
	"github.com/jafarshop/storefront/internal/config"
	"github.com/jafarshop/storefront/internal/session"
)

// NewRouter creates and configures the Gin router
func NewRouter(
	cfg *config.Config,
	store *cart.Store,
	orch *checkout.Orchestrator,
	auth handlers.AuthAPI,
	catalog handlers.CatalogAPI,
	sess *session.Session,
	logger *zap.Logger,
) *gin.Engine {
	if cfg.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	// Middleware
	router.Use(gin.Recovery())
	router.Use(loggingMiddleware(logger))

	// Health check
	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	// API v1 routes
	v1 := router.Group("/v1")
	{
		// Cart
		v1.GET("/cart", handlers.HandleGetCart(store))
		v1.GET("/cart/totals", handlers.HandleGetTotals(store))
		v1.POST("/cart/items", handlers.HandleAddItem(store, logger))
		v1.PUT("/cart/items/:id", handlers.HandleUpdateItem(store, logger))
		v1.DELETE("/cart/items/:id", handlers.HandleRemoveItem(store, logger))
		v1.DELETE("/cart", handlers.HandleClearCart(store, logger))

		// Checkout
		v1.POST("/checkout", handlers.HandleBeginCheckout(orch, logger))
		v1.GET("/checkout", handlers.HandleCheckoutState(orch))
		v1.POST("/checkout/shipping", handlers.HandleSubmitShipping(orch, logger))
		v1.POST("/checkout/payment", handlers.HandleSubmitPayment(orch, logger))
		v1.POST("/checkout/back", handlers.HandleCheckoutBack(orch))
		v1.POST("/checkout/submit", handlers.HandleSubmitOrder(orch, logger))
		v1.DELETE("/checkout", handlers.HandleAbortCheckout(orch))

		// Auth
		v1.POST("/auth/login", handlers.HandleLogin(auth, sess, logger))
		v1.POST("/auth/signup", handlers.HandleSignup(auth, sess, logger))
		v1.POST("/auth/logout", handlers.HandleLogout(sess, logger))
		v1.GET("/auth/me", handlers.HandleMe(auth, sess, logger))
		v1.PUT("/auth/profile", handlers.HandleUpdateProfile(auth, sess, logger))

		// Catalog
		v1.GET("/products", handlers.HandleListProducts(catalog, sess, logger))
		v1.GET("/products/featured", handlers.HandleFeaturedProducts(catalog, sess, logger))
		v1.GET("/products/:id", handlers.HandleGetProduct(catalog, sess, logger))
	}

	return router
}

// loggingMiddleware logs HTTP requests
func loggingMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		method := c.Request.Method

		c.Next()

		status := c.Writer.Status()
		logger.Info("HTTP request",
			zap.String("method", method),
			zap.String("path", path),
			zap.Int("status", status),
		)
	}
}
