package domain

import "testing"

func TestCheckoutStep_ForwardTransitions(t *testing.T) {
	if !StepShipping.CanTransitionTo(StepPayment) {
		t.Error("shipping should advance to payment")
	}
	if !StepPayment.CanTransitionTo(StepReview) {
		t.Error("payment should advance to review")
	}
	if !StepReview.CanTransitionTo(StepRedirectingToPayment) {
		t.Error("review should reach redirecting-to-payment")
	}
	if !StepReview.CanTransitionTo(StepConfirmed) {
		t.Error("review should reach confirmed")
	}
}

func TestCheckoutStep_NeverSkipsAStep(t *testing.T) {
	if StepShipping.CanTransitionTo(StepReview) {
		t.Error("shipping must not skip to review")
	}
	if StepShipping.CanTransitionTo(StepConfirmed) {
		t.Error("shipping must not skip to confirmed")
	}
	if StepPayment.CanTransitionTo(StepRedirectingToPayment) {
		t.Error("payment must not skip to redirecting-to-payment")
	}
}

func TestCheckoutStep_BackNavigation(t *testing.T) {
	if !StepReview.CanTransitionTo(StepPayment) {
		t.Error("review should regress to payment")
	}
	if !StepPayment.CanTransitionTo(StepShipping) {
		t.Error("payment should regress to shipping")
	}
	if StepReview.CanTransitionTo(StepShipping) {
		t.Error("review must not regress two steps at once")
	}
}

func TestCheckoutStep_TerminalStates(t *testing.T) {
	for _, s := range []CheckoutStep{StepRedirectingToPayment, StepConfirmed, StepAborted} {
		if !s.IsTerminal() {
			t.Errorf("%s should be terminal", s)
		}
		for _, next := range []CheckoutStep{StepShipping, StepPayment, StepReview, StepAborted} {
			if s.CanTransitionTo(next) {
				t.Errorf("terminal state %s must not transition to %s", s, next)
			}
		}
	}

	for _, s := range []CheckoutStep{StepShipping, StepPayment, StepReview} {
		if s.IsTerminal() {
			t.Errorf("%s should not be terminal", s)
		}
		if !s.CanTransitionTo(StepAborted) {
			t.Errorf("%s should be abortable", s)
		}
	}
}

func TestCheckoutStep_IsValid(t *testing.T) {
	valid := []CheckoutStep{
		StepShipping, StepPayment, StepReview,
		StepRedirectingToPayment, StepConfirmed, StepAborted,
	}
	for _, s := range valid {
		if !s.IsValid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if CheckoutStep("BROWSING").IsValid() {
		t.Error("unknown step should be invalid")
	}
}

func TestSubmissionState_IsValid(t *testing.T) {
	valid := []SubmissionState{
		SubmissionIdle, SubmissionSubmitting, SubmissionSucceeded, SubmissionFailed,
	}
	for _, s := range valid {
		if !s.IsValid() {
			t.Errorf("%s should be valid", s)
		}
	}
	if SubmissionState("QUEUED").IsValid() {
		t.Error("unknown submission state should be invalid")
	}
}
