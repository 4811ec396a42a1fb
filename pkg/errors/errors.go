package errors

import "fmt"

// ErrNotFound indicates a requested resource does not exist
type ErrNotFound struct {
	Resource string
	ID       string
}

func (e *ErrNotFound) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

// ErrUnauthorized indicates a missing or invalid credential
type ErrUnauthorized struct {
	Message string
}

func (e *ErrUnauthorized) Error() string {
	return e.Message
}

// ErrInvalidStateTransition indicates a checkout step transition that is not allowed
type ErrInvalidStateTransition struct {
	From string
	To   string
}

func (e *ErrInvalidStateTransition) Error() string {
	return fmt.Sprintf("invalid state transition from %s to %s", e.From, e.To)
}

// ErrEmptyCart indicates an operation that requires a non-empty cart
type ErrEmptyCart struct{}

func (e *ErrEmptyCart) Error() string {
	return "cart is empty"
}

// ErrSubmissionInFlight indicates a second submission was attempted while one is pending
type ErrSubmissionInFlight struct{}

func (e *ErrSubmissionInFlight) Error() string {
	return "an order submission is already in progress"
}

// ErrTransport indicates a network failure or a non-2xx response
type ErrTransport struct {
	Status  int
	Message string
	Err     error
}

func (e *ErrTransport) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("request failed: %v", e.Err)
	}
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("server error: status %d", e.Status)
}

func (e *ErrTransport) Unwrap() error {
	return e.Err
}

// ErrMalformedResponse indicates the server returned a body with an unexpected shape.
// Kept distinct from ErrOrderRejected so a broken backend is distinguishable
// from a validly rejected order.
type ErrMalformedResponse struct {
	Detail string
}

func (e *ErrMalformedResponse) Error() string {
	return fmt.Sprintf("malformed server response: %s", e.Detail)
}

// ErrOrderRejected indicates the server answered success=false
type ErrOrderRejected struct {
	Message string
}

func (e *ErrOrderRejected) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "order was rejected"
}
