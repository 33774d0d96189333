package application

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/felora-io/felora-cli/internal/domain"
	"github.com/felora-io/felora-cli/internal/ports"
)

type EnrollmentState string

const (
	EnrollmentIdle       EnrollmentState = "idle"
	EnrollmentCollecting EnrollmentState = "collecting"
	EnrollmentSubmitting EnrollmentState = "submitting"
	EnrollmentSucceeded  EnrollmentState = "succeeded"
	EnrollmentFailed     EnrollmentState = "failed"
)

var (
	ErrEnrollmentNotCollecting = errors.New("enrollment is not collecting input")
	ErrEnrollmentFinished      = errors.New("enrollment already succeeded, start a new one")
)

// EnrollmentWorkflow coordinates adding a payment method: collect billing
// contact and card input, request a setup handshake from the backend, confirm
// it with the tokenization provider, then register the resulting reference.
// The backend registration step is unreachable until the provider
// confirmation has succeeded.
//
// Idle -> Collecting -> Submitting -> Succeeded, or back to Failed; Retry
// moves Failed to Collecting with the form preserved. Succeeded is terminal
// for the instance.
type EnrollmentWorkflow struct {
	client    ports.BillingClient
	tokenizer ports.CardTokenizer
	notifier  ports.Notifier
	session   domain.Session

	state      EnrollmentState
	contact    domain.BillingContact
	card       domain.CardDetails
	failure    string
	onComplete func()
}

func NewEnrollmentWorkflow(client ports.BillingClient, tokenizer ports.CardTokenizer, notifier ports.Notifier, session domain.Session, onComplete func()) *EnrollmentWorkflow {
	return &EnrollmentWorkflow{
		client:     client,
		tokenizer:  tokenizer,
		notifier:   notifier,
		session:    session,
		state:      EnrollmentIdle,
		onComplete: onComplete,
	}
}

func (w *EnrollmentWorkflow) State() EnrollmentState {
	return w.state
}

// FailureReason is the last human-readable failure, preserved across Retry.
func (w *EnrollmentWorkflow) FailureReason() string {
	return w.failure
}

func (w *EnrollmentWorkflow) Contact() domain.BillingContact {
	return w.contact
}

func (w *EnrollmentWorkflow) Begin() {
	if w.state == EnrollmentIdle {
		w.state = EnrollmentCollecting
	}
}

func (w *EnrollmentWorkflow) SetContact(contact domain.BillingContact) error {
	if w.state != EnrollmentCollecting {
		return ErrEnrollmentNotCollecting
	}

	w.contact = contact
	return nil
}

func (w *EnrollmentWorkflow) SetCard(card domain.CardDetails) error {
	if w.state != EnrollmentCollecting {
		return ErrEnrollmentNotCollecting
	}

	w.card = card
	return nil
}

// Retry re-opens a failed enrollment for another submission attempt. The
// partially entered form state is left intact.
func (w *EnrollmentWorkflow) Retry() {
	if w.state == EnrollmentFailed {
		w.state = EnrollmentCollecting
	}
}

// Submit validates locally, then runs the three-step exchange. Validation
// failures block submission without any network call.
func (w *EnrollmentWorkflow) Submit(ctx context.Context) error {
	switch w.state {
	case EnrollmentCollecting:
	case EnrollmentSucceeded:
		return ErrEnrollmentFinished
	default:
		return ErrEnrollmentNotCollecting
	}

	if missing := append(w.contact.MissingFields(), w.card.MissingFields()...); len(missing) > 0 {
		return fmt.Errorf("missing required fields: %s", strings.Join(missing, ", "))
	}

	w.state = EnrollmentSubmitting

	intent, err := w.client.CreateSetupIntent(ctx, w.session.Org)
	if err != nil {
		return w.fail(err)
	}

	reference, err := w.tokenizer.Confirm(ctx, intent.ClientSecret, w.card, w.contact)
	if err != nil {
		return w.fail(err)
	}

	if _, err := w.client.AddPaymentMethod(ctx, w.session.Org, reference); err != nil {
		return w.fail(err)
	}

	w.state = EnrollmentSucceeded
	w.failure = ""
	w.notifier.Push(ports.NotifySuccess, "Payment method added successfully!")
	if w.onComplete != nil {
		w.onComplete()
	}

	return nil
}

// fail records a human-readable reason. A provider message is used verbatim;
// everything else gets the generic failure text.
func (w *EnrollmentWorkflow) fail(err error) error {
	var providerErr *ports.ProviderError
	if errors.As(err, &providerErr) {
		w.failure = providerErr.Message
	} else {
		w.failure = "Failed to add payment method"
	}

	w.state = EnrollmentFailed
	w.notifier.Push(ports.NotifyError, w.failure)

	return fmt.Errorf("add payment method: %w", err)
}
