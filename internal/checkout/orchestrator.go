package checkout

import (
	"context"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/jafarshop/storefront/internal/backend"
	"github.com/jafarshop/storefront/internal/cart"
	"github.com/jafarshop/storefront/internal/domain"
	"github.com/jafarshop/storefront/pkg/errors"
)

// OrdersAPI is the order-submission boundary
type OrdersAPI interface {
	CreateOrder(ctx context.Context, token string, req backend.CreateOrderRequest) (*backend.OrderResult, error)
}

// CredentialSource supplies the session's stored bearer token
type CredentialSource interface {
	Token(ctx context.Context) (string, bool)
}

// Navigator receives the hand-offs that leave the checkout flow: an external
// payment redirect or the internal order-success view
type Navigator interface {
	RedirectExternal(url string)
	ShowOrderSuccess(order domain.Order, message string)
}

// Outcome is the result of one submission attempt
type Outcome struct {
	Step        domain.CheckoutStep
	Order       domain.Order
	Message     string
	PaymentLink string
	Err         error
	// Discarded marks a result that arrived after the attempt went stale
	// (session aborted or a newer attempt started) and was dropped.
	Discarded bool
}

const defaultConfirmDelay = 2 * time.Second

// defaultSuccessMessage is shown when the order service confirms without a
// message of its own
const defaultSuccessMessage = "Order created successfully. Please complete payment to confirm your order."

// Orchestrator drives the checkout wizard: shipping, payment, review, then a
// single order submission whose response either redirects to an external
// payment page or confirms the order directly.
type Orchestrator struct {
	cart   *cart.Store
	orders OrdersAPI
	creds  CredentialSource
	nav    Navigator
	logger *zap.Logger

	confirmDelay time.Duration

	mu             sync.Mutex
	step           domain.CheckoutStep
	shipping       *domain.ShippingDetails
	payment        *domain.PaymentDetails
	submission     domain.SubmissionState
	lastError      string
	successMessage string
	attempt        uint64
	aborted        bool
}

// New creates a checkout orchestrator over the shared cart store. The session
// auto-aborts if the cart is emptied mid-checkout by another consumer.
func New(cartStore *cart.Store, orders OrdersAPI, creds CredentialSource, nav Navigator, logger *zap.Logger) *Orchestrator {
	o := &Orchestrator{
		cart:         cartStore,
		orders:       orders,
		creds:        creds,
		nav:          nav,
		logger:       logger,
		confirmDelay: defaultConfirmDelay,
		submission:   domain.SubmissionIdle,
	}

	cartStore.Subscribe(o.onCartChanged)

	return o
}

// Begin starts a new checkout session. The cart must be non-empty.
func (o *Orchestrator) Begin() error {
	if o.cart.IsEmpty() {
		return &errors.ErrEmptyCart{}
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.submission == domain.SubmissionSubmitting {
		return &errors.ErrSubmissionInFlight{}
	}

	o.step = domain.StepShipping
	o.shipping = nil
	o.payment = nil
	o.submission = domain.SubmissionIdle
	o.lastError = ""
	o.successMessage = ""
	o.aborted = false
	// Any attempt still in flight belongs to a previous session; make sure
	// its result can never be applied here.
	o.attempt++

	o.logger.Info("Checkout session started")
	return nil
}

// SubmitShipping completes the shipping step and advances to payment
func (o *Orchestrator) SubmitShipping(details domain.ShippingDetails) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.submission == domain.SubmissionSubmitting {
		return &errors.ErrSubmissionInFlight{}
	}
	if o.step != domain.StepShipping {
		return &errors.ErrInvalidStateTransition{From: string(o.step), To: string(domain.StepPayment)}
	}

	o.shipping = &details
	o.step = domain.StepPayment
	return nil
}

// SubmitPayment completes the payment step and advances to review
func (o *Orchestrator) SubmitPayment(details domain.PaymentDetails) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.submission == domain.SubmissionSubmitting {
		return &errors.ErrSubmissionInFlight{}
	}
	if o.step != domain.StepPayment {
		return &errors.ErrInvalidStateTransition{From: string(o.step), To: string(domain.StepReview)}
	}

	o.payment = &details
	o.step = domain.StepReview
	return nil
}

// Back regresses one step. Data already entered for the step being returned
// to is kept.
func (o *Orchestrator) Back() error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.submission == domain.SubmissionSubmitting {
		return &errors.ErrSubmissionInFlight{}
	}

	var prev domain.CheckoutStep
	switch o.step {
	case domain.StepReview:
		prev = domain.StepPayment
	case domain.StepPayment:
		prev = domain.StepShipping
	}
	if prev == "" || !o.step.CanTransitionTo(prev) {
		return &errors.ErrInvalidStateTransition{From: string(o.step), To: string(domain.StepShipping)}
	}

	o.step = prev
	return nil
}

// Abort abandons the checkout session. Allowed while a submission is in
// flight; the late result is then discarded.
func (o *Orchestrator) Abort() {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.step == "" || o.step.IsTerminal() {
		return
	}

	o.aborted = true
	o.step = domain.StepAborted
	// An in-flight submission is not cancelled, but invalidating its token
	// discards its result permanently, even if a new session starts before
	// the response arrives; the session must not stay pinned on Submitting.
	o.attempt++
	o.submission = domain.SubmissionIdle
	o.logger.Info("Checkout session aborted")
}

// Submit runs the order submission from the review step. Preconditions are
// checked synchronously; the network call runs asynchronously and this
// attempt's outcome is delivered exactly once on the returned channel. A
// result arriving after the session was aborted or superseded is discarded.
func (o *Orchestrator) Submit(ctx context.Context) (<-chan Outcome, error) {
	o.mu.Lock()

	if o.submission == domain.SubmissionSubmitting {
		o.mu.Unlock()
		return nil, &errors.ErrSubmissionInFlight{}
	}
	if o.step != domain.StepReview {
		from := o.step
		o.mu.Unlock()
		return nil, &errors.ErrInvalidStateTransition{From: string(from), To: string(domain.StepConfirmed)}
	}

	token, ok := o.creds.Token(ctx)
	if !ok || token == "" {
		// Precondition failure: no network call is made and the state
		// never passes through Submitting.
		o.submission = domain.SubmissionFailed
		o.lastError = "Please log in to continue. No authentication token found."
		o.mu.Unlock()
		return nil, &errors.ErrUnauthorized{Message: "no authentication token found"}
	}

	o.attempt++
	attempt := o.attempt
	o.submission = domain.SubmissionSubmitting
	o.lastError = ""

	// Cart snapshot is captured at submission time; later cart mutations do
	// not alter the in-flight payload.
	req := buildOrderRequest(o.cart.Items(), *o.shipping)
	o.mu.Unlock()

	ch := make(chan Outcome, 1)
	go func() {
		result, err := o.orders.CreateOrder(ctx, token, req)
		ch <- o.finish(attempt, result, err)
	}()

	return ch, nil
}

// Snapshot is a read-only view of the session state
type Snapshot struct {
	Step           domain.CheckoutStep
	Submission     domain.SubmissionState
	LastError      string
	SuccessMessage string
	Shipping       *domain.ShippingDetails
	Payment        *domain.PaymentDetails
}

// Snapshot returns the current session state
func (o *Orchestrator) Snapshot() Snapshot {
	o.mu.Lock()
	defer o.mu.Unlock()

	snap := Snapshot{
		Step:           o.step,
		Submission:     o.submission,
		LastError:      o.lastError,
		SuccessMessage: o.successMessage,
	}
	if o.shipping != nil {
		s := *o.shipping
		snap.Shipping = &s
	}
	if o.payment != nil {
		p := *o.payment
		snap.Payment = &p
	}
	return snap
}

// finish applies one submission result under the attempt-token guard
func (o *Orchestrator) finish(attempt uint64, result *backend.OrderResult, err error) Outcome {
	o.mu.Lock()

	if attempt != o.attempt || o.aborted || o.step.IsTerminal() {
		step := o.step
		o.mu.Unlock()
		o.logger.Info("Discarding stale submission result",
			zap.Uint64("attempt", attempt),
			zap.String("step", string(step)),
		)
		return Outcome{Step: step, Discarded: true}
	}

	if err != nil {
		o.submission = domain.SubmissionFailed
		o.lastError = userMessage(err)
		step := o.step
		o.mu.Unlock()

		o.logger.Error("Order submission failed", zap.Error(err))
		return Outcome{Step: step, Err: err}
	}

	if result.PaymentLink != "" {
		// Payment not yet confirmed, so the cart is kept.
		o.step = domain.StepRedirectingToPayment
		o.submission = domain.SubmissionSucceeded
		o.mu.Unlock()

		o.logger.Info("Redirecting to external payment page")
		o.nav.RedirectExternal(result.PaymentLink)
		return Outcome{
			Step:        domain.StepRedirectingToPayment,
			Order:       result.Order,
			Message:     result.Message,
			PaymentLink: result.PaymentLink,
		}
	}

	message := result.Message
	if message == "" {
		message = defaultSuccessMessage
	}

	o.step = domain.StepConfirmed
	o.submission = domain.SubmissionSucceeded
	o.successMessage = message
	order := result.Order
	o.mu.Unlock()

	o.logger.Info("Order confirmed without payment redirect", zap.String("order_id", order.ID))
	o.cart.Clear(context.Background())

	time.AfterFunc(o.confirmDelay, func() {
		o.mu.Lock()
		stillConfirmed := o.step == domain.StepConfirmed && !o.aborted
		o.mu.Unlock()
		if stillConfirmed {
			o.nav.ShowOrderSuccess(order, message)
		}
	})

	return Outcome{
		Step:    domain.StepConfirmed,
		Order:   order,
		Message: message,
	}
}

// onCartChanged abandons a live session when the cart is emptied by another
// consumer. A submission already in flight keeps its snapshot.
func (o *Orchestrator) onCartChanged() {
	if !o.cart.IsEmpty() {
		return
	}

	o.mu.Lock()
	defer o.mu.Unlock()

	if o.step == "" || o.step.IsTerminal() || o.submission == domain.SubmissionSubmitting {
		return
	}

	o.aborted = true
	o.step = domain.StepAborted
	o.logger.Info("Checkout session discarded, cart became empty")
}

func buildOrderRequest(items []domain.CartItem, shipping domain.ShippingDetails) backend.CreateOrderRequest {
	orderItems := make([]backend.OrderItem, len(items))
	for i, item := range items {
		orderItems[i] = backend.OrderItem{
			ProductID: item.ID,
			Name:      item.Name,
			UnitPrice: item.UnitPrice,
			Quantity:  item.Quantity,
			ImageURL:  item.ImageURL,
		}
	}

	return backend.CreateOrderRequest{
		Items:           orderItems,
		ShippingAddress: shipping,
		Notes:           shipping.Notes,
	}
}

// userMessage maps a submission failure to the human-readable lastError shown
// on the review step
func userMessage(err error) string {
	switch e := err.(type) {
	case *errors.ErrOrderRejected:
		return e.Error()
	case *errors.ErrMalformedResponse:
		return "The order service returned an unexpected response. Please try again later."
	case *errors.ErrTransport:
		if e.Message != "" {
			return e.Message
		}
		return "Failed to create order. Please check your connection and try again."
	case *errors.ErrUnauthorized:
		return "Please log in to continue. No authentication token found."
	default:
		return "Failed to create order. Please try again."
	}
}
