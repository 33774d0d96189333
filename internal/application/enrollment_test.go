package application

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/felora-io/felora-cli/internal/domain"
	"github.com/felora-io/felora-cli/internal/ports"
)

func TestEnrollmentHappyPath(t *testing.T) {
	t.Parallel()

	var registeredRef string
	client := &fakeBillingClient{
		addMethodFn: func(ref string) (domain.PaymentMethod, error) {
			registeredRef = ref
			return domain.PaymentMethod{ID: "pm_new"}, nil
		},
	}
	tokenizer := &fakeTokenizer{
		confirmFn: func(clientSecret string, _ domain.CardDetails, _ domain.BillingContact) (string, error) {
			assert.Equal(t, "seti_test_secret_abc", clientSecret)
			return "pm_from_provider", nil
		},
	}
	notifier := &recordingNotifier{}
	refreshed := false

	workflow := NewEnrollmentWorkflow(client, tokenizer, notifier, testSession(), func() { refreshed = true })
	workflow.Begin()
	require.NoError(t, workflow.SetContact(validContact()))
	require.NoError(t, workflow.SetCard(validCard()))

	require.NoError(t, workflow.Submit(context.Background()))

	assert.Equal(t, EnrollmentSucceeded, workflow.State())
	assert.Equal(t, "pm_from_provider", registeredRef)
	assert.True(t, refreshed)
	assert.Equal(t, ports.NotifySuccess, notifier.last().level)
	assert.Equal(t, "Payment method added successfully!", notifier.last().message)
}

func TestEnrollmentValidationBlocksWithoutNetwork(t *testing.T) {
	t.Parallel()

	client := &fakeBillingClient{}
	tokenizer := &fakeTokenizer{}
	workflow := NewEnrollmentWorkflow(client, tokenizer, &recordingNotifier{}, testSession(), nil)
	workflow.Begin()
	require.NoError(t, workflow.SetContact(domain.BillingContact{Name: "Ada Lovelace"}))
	require.NoError(t, workflow.SetCard(validCard()))

	err := workflow.Submit(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing required fields")
	assert.Contains(t, err.Error(), "email")

	assert.Equal(t, EnrollmentCollecting, workflow.State())
	assert.Zero(t, client.callCount("CreateSetupIntent"))
	assert.Zero(t, tokenizer.calls)
	assert.Zero(t, client.callCount("AddPaymentMethod"))
}

func TestEnrollmentProviderDeclineUsesVerbatimMessage(t *testing.T) {
	t.Parallel()

	client := &fakeBillingClient{}
	tokenizer := &fakeTokenizer{
		confirmFn: func(string, domain.CardDetails, domain.BillingContact) (string, error) {
			return "", &ports.ProviderError{Code: "card_declined", Message: "card declined"}
		},
	}
	notifier := &recordingNotifier{}

	workflow := NewEnrollmentWorkflow(client, tokenizer, notifier, testSession(), nil)
	workflow.Begin()
	require.NoError(t, workflow.SetContact(validContact()))
	require.NoError(t, workflow.SetCard(validCard()))

	err := workflow.Submit(context.Background())
	require.Error(t, err)

	assert.Equal(t, EnrollmentFailed, workflow.State())
	assert.Equal(t, "card declined", workflow.FailureReason())
	assert.Equal(t, ports.NotifyError, notifier.last().level)
	assert.Equal(t, "card declined", notifier.last().message)

	// Registration never happens when the provider confirmation failed.
	assert.Zero(t, client.callCount("AddPaymentMethod"))
}

func TestEnrollmentBackendFailureUsesGenericMessage(t *testing.T) {
	t.Parallel()

	client := &fakeBillingClient{
		addMethodFn: func(string) (domain.PaymentMethod, error) {
			return domain.PaymentMethod{}, &ports.RemoteError{Op: "add payment method", Status: 500, Message: "internal"}
		},
	}

	workflow := NewEnrollmentWorkflow(client, &fakeTokenizer{}, &recordingNotifier{}, testSession(), nil)
	workflow.Begin()
	require.NoError(t, workflow.SetContact(validContact()))
	require.NoError(t, workflow.SetCard(validCard()))

	require.Error(t, workflow.Submit(context.Background()))
	assert.Equal(t, EnrollmentFailed, workflow.State())
	assert.Equal(t, "Failed to add payment method", workflow.FailureReason())
}

func TestEnrollmentRetryPreservesFormState(t *testing.T) {
	t.Parallel()

	declined := true
	client := &fakeBillingClient{}
	tokenizer := &fakeTokenizer{
		confirmFn: func(_ string, card domain.CardDetails, contact domain.BillingContact) (string, error) {
			if declined {
				return "", &ports.ProviderError{Code: "card_declined", Message: "card declined"}
			}
			assert.Equal(t, validContact(), contact)
			assert.Equal(t, validCard(), card)
			return "pm_retry", nil
		},
	}

	workflow := NewEnrollmentWorkflow(client, tokenizer, &recordingNotifier{}, testSession(), nil)
	workflow.Begin()
	require.NoError(t, workflow.SetContact(validContact()))
	require.NoError(t, workflow.SetCard(validCard()))

	require.Error(t, workflow.Submit(context.Background()))
	require.Equal(t, EnrollmentFailed, workflow.State())

	workflow.Retry()
	assert.Equal(t, EnrollmentCollecting, workflow.State())
	assert.Equal(t, validContact(), workflow.Contact())

	declined = false
	require.NoError(t, workflow.Submit(context.Background()))
	assert.Equal(t, EnrollmentSucceeded, workflow.State())
}

func TestEnrollmentInputRejectedOutsideCollecting(t *testing.T) {
	t.Parallel()

	workflow := NewEnrollmentWorkflow(&fakeBillingClient{}, &fakeTokenizer{}, &recordingNotifier{}, testSession(), nil)

	// Still idle: Begin has not run.
	err := workflow.SetContact(validContact())
	assert.ErrorIs(t, err, ErrEnrollmentNotCollecting)

	err = workflow.Submit(context.Background())
	assert.ErrorIs(t, err, ErrEnrollmentNotCollecting)
}

func TestEnrollmentSucceededIsTerminal(t *testing.T) {
	t.Parallel()

	workflow := NewEnrollmentWorkflow(&fakeBillingClient{}, &fakeTokenizer{}, &recordingNotifier{}, testSession(), nil)
	workflow.Begin()
	require.NoError(t, workflow.SetContact(validContact()))
	require.NoError(t, workflow.SetCard(validCard()))
	require.NoError(t, workflow.Submit(context.Background()))

	err := workflow.Submit(context.Background())
	assert.True(t, errors.Is(err, ErrEnrollmentFinished))

	err = workflow.SetCard(validCard())
	assert.ErrorIs(t, err, ErrEnrollmentNotCollecting)
}
