package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/checkout"
	"github.com/jafarshop/storefront/internal/domain"
	"github.com/jafarshop/storefront/pkg/errors"
)

// ShippingRequest is the shipping step payload
type ShippingRequest struct {
	FullName   string `json:"full_name" binding:"required"`
	Phone      string `json:"phone"`
	Street     string `json:"street" binding:"required"`
	City       string `json:"city" binding:"required"`
	State      string `json:"state"`
	PostalCode string `json:"postal_code" binding:"required"`
	Country    string `json:"country" binding:"required"`
	Notes      string `json:"notes"`
}

// PaymentRequest is the payment step payload
type PaymentRequest struct {
	Method string `json:"method" binding:"required"`
}

// CheckoutStateResponse is the session state view
type CheckoutStateResponse struct {
	Step           domain.CheckoutStep    `json:"step"`
	Submission     domain.SubmissionState `json:"submission"`
	LastError      string                 `json:"last_error,omitempty"`
	SuccessMessage string                 `json:"success_message,omitempty"`
	HasShipping    bool                   `json:"has_shipping"`
	HasPayment     bool                   `json:"has_payment"`
}

// SubmitResponse is the outcome of one order submission attempt
type SubmitResponse struct {
	Step        domain.CheckoutStep `json:"step"`
	Order       *domain.Order       `json:"order,omitempty"`
	Message     string              `json:"message,omitempty"`
	PaymentLink string              `json:"payment_link,omitempty"`
}

func stateResponse(orch *checkout.Orchestrator) CheckoutStateResponse {
	snap := orch.Snapshot()
	return CheckoutStateResponse{
		Step:           snap.Step,
		Submission:     snap.Submission,
		LastError:      snap.LastError,
		SuccessMessage: snap.SuccessMessage,
		HasShipping:    snap.Shipping != nil,
		HasPayment:     snap.Payment != nil,
	}
}

// checkoutError maps checkout error types to HTTP status codes
func checkoutError(c *gin.Context, err error) {
	switch err.(type) {
	case *errors.ErrEmptyCart:
		c.JSON(http.StatusConflict, gin.H{"error": "cart is empty"})
	case *errors.ErrSubmissionInFlight:
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case *errors.ErrInvalidStateTransition:
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case *errors.ErrUnauthorized:
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	case *errors.ErrOrderRejected:
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": err.Error()})
	case *errors.ErrMalformedResponse:
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	case *errors.ErrTransport:
		c.JSON(http.StatusBadGateway, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// HandleBeginCheckout handles POST /v1/checkout
func HandleBeginCheckout(orch *checkout.Orchestrator, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := orch.Begin(); err != nil {
			checkoutError(c, err)
			return
		}
		c.JSON(http.StatusOK, stateResponse(orch))
	}
}

// HandleCheckoutState handles GET /v1/checkout
func HandleCheckoutState(orch *checkout.Orchestrator) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.JSON(http.StatusOK, stateResponse(orch))
	}
}

// HandleSubmitShipping handles POST /v1/checkout/shipping
func HandleSubmitShipping(orch *checkout.Orchestrator, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ShippingRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		err := orch.SubmitShipping(domain.ShippingDetails{
			FullName:   req.FullName,
			Phone:      req.Phone,
			Street:     req.Street,
			City:       req.City,
			State:      req.State,
			PostalCode: req.PostalCode,
			Country:    req.Country,
			Notes:      req.Notes,
		})
		if err != nil {
			checkoutError(c, err)
			return
		}

		c.JSON(http.StatusOK, stateResponse(orch))
	}
}

// HandleSubmitPayment handles POST /v1/checkout/payment
func HandleSubmitPayment(orch *checkout.Orchestrator, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req PaymentRequest
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{
				"error":   "validation failed",
				"details": err.Error(),
			})
			return
		}

		if err := orch.SubmitPayment(domain.PaymentDetails{Method: req.Method}); err != nil {
			checkoutError(c, err)
			return
		}

		c.JSON(http.StatusOK, stateResponse(orch))
	}
}

// HandleCheckoutBack handles POST /v1/checkout/back
func HandleCheckoutBack(orch *checkout.Orchestrator) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := orch.Back(); err != nil {
			checkoutError(c, err)
			return
		}
		c.JSON(http.StatusOK, stateResponse(orch))
	}
}

// HandleAbortCheckout handles DELETE /v1/checkout
func HandleAbortCheckout(orch *checkout.Orchestrator) gin.HandlerFunc {
	return func(c *gin.Context) {
		orch.Abort()
		c.Status(http.StatusNoContent)
	}
}

// HandleSubmitOrder handles POST /v1/checkout/submit. The handler waits for
// the attempt's outcome; a result discarded by the stale-response guard maps
// to 409.
func HandleSubmitOrder(orch *checkout.Orchestrator, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		ch, err := orch.Submit(c.Request.Context())
		if err != nil {
			checkoutError(c, err)
			return
		}

		outcome := <-ch
		if outcome.Discarded {
			c.JSON(http.StatusConflict, gin.H{"error": "submission superseded or session aborted"})
			return
		}
		if outcome.Err != nil {
			checkoutError(c, outcome.Err)
			return
		}

		resp := SubmitResponse{
			Step:        outcome.Step,
			Message:     outcome.Message,
			PaymentLink: outcome.PaymentLink,
		}
		if outcome.Order.ID != "" || len(outcome.Order.Raw) > 0 {
			order := outcome.Order
			resp.Order = &order
		}

		c.JSON(http.StatusOK, resp)
	}
}
