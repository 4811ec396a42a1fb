package domain

// CheckoutStep represents the current position in the checkout wizard
type CheckoutStep string

const (
	StepShipping             CheckoutStep = "SHIPPING"
	StepPayment              CheckoutStep = "PAYMENT"
	StepReview               CheckoutStep = "REVIEW"
	StepRedirectingToPayment CheckoutStep = "REDIRECTING_TO_PAYMENT"
	StepConfirmed            CheckoutStep = "CONFIRMED"
	StepAborted              CheckoutStep = "ABORTED"
)

// IsValid checks if the checkout step is valid
func (s CheckoutStep) IsValid() bool {
	switch s {
	case StepShipping,
		StepPayment,
		StepReview,
		StepRedirectingToPayment,
		StepConfirmed,
		StepAborted:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether the step ends the checkout session
func (s CheckoutStep) IsTerminal() bool {
	switch s {
	case StepRedirectingToPayment, StepConfirmed, StepAborted:
		return true
	default:
		return false
	}
}

// CanTransitionTo checks if a step transition is valid. Steps advance one at a
// time on completion and regress one at a time on back navigation; the wizard
// never skips a step. Abort is reachable from any non-terminal step.
func (s CheckoutStep) CanTransitionTo(next CheckoutStep) bool {
	if next == StepAborted {
		return !s.IsTerminal()
	}
	switch s {
	case StepShipping:
		return next == StepPayment
	case StepPayment:
		return next == StepReview || next == StepShipping
	case StepReview:
		return next == StepPayment ||
			next == StepRedirectingToPayment ||
			next == StepConfirmed
	case StepRedirectingToPayment, StepConfirmed, StepAborted:
		return false // Terminal states
	default:
		return false
	}
}

// SubmissionState represents the status of the current order submission attempt
type SubmissionState string

const (
	SubmissionIdle       SubmissionState = "IDLE"
	SubmissionSubmitting SubmissionState = "SUBMITTING"
	SubmissionSucceeded  SubmissionState = "SUCCEEDED"
	SubmissionFailed     SubmissionState = "FAILED"
)

// IsValid checks if the submission state is valid
func (s SubmissionState) IsValid() bool {
	switch s {
	case SubmissionIdle, SubmissionSubmitting, SubmissionSucceeded, SubmissionFailed:
		return true
	default:
		return false
	}
}
