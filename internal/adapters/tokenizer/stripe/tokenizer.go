package stripe

import (
	"context"
	"errors"
	"fmt"
	"strings"

	stripe "github.com/stripe/stripe-go/v79"
	"github.com/stripe/stripe-go/v79/paymentmethod"
	"github.com/stripe/stripe-go/v79/setupintent"

	"github.com/felora-io/felora-cli/internal/domain"
	"github.com/felora-io/felora-cli/internal/ports"
)

// Tokenizer confirms a backend-issued setup handshake with Stripe. Raw card
// data goes to Stripe only; the Felora backend receives nothing but the
// resulting payment-method reference.
type Tokenizer struct{}

var _ ports.CardTokenizer = (*Tokenizer)(nil)

func New(apiKey string) *Tokenizer {
	stripe.Key = apiKey
	return &Tokenizer{}
}

func (t *Tokenizer) Confirm(ctx context.Context, clientSecret string, card domain.CardDetails, contact domain.BillingContact) (string, error) {
	intentID, err := intentIDFromSecret(clientSecret)
	if err != nil {
		return "", err
	}

	pmParams := &stripe.PaymentMethodParams{
		Type: stripe.String(string(stripe.PaymentMethodTypeCard)),
		Card: &stripe.PaymentMethodCardParams{
			Number:   stripe.String(card.Number),
			ExpMonth: stripe.Int64(card.ExpMonth),
			ExpYear:  stripe.Int64(card.ExpYear),
			CVC:      stripe.String(card.CVC),
		},
		BillingDetails: &stripe.PaymentMethodBillingDetailsParams{
			Name:  stripe.String(contact.Name),
			Email: stripe.String(contact.Email),
			Address: &stripe.AddressParams{
				Line1:      stripe.String(contact.Line1),
				Line2:      stripe.String(contact.Line2),
				City:       stripe.String(contact.City),
				State:      stripe.String(contact.State),
				PostalCode: stripe.String(contact.PostalCode),
				Country:    stripe.String(contact.Country),
			},
		},
	}
	pmParams.Context = ctx

	method, err := paymentmethod.New(pmParams)
	if err != nil {
		return "", providerError(err)
	}

	confirmParams := &stripe.SetupIntentConfirmParams{
		PaymentMethod: stripe.String(method.ID),
	}
	// SetupIntentConfirmParams has no ClientSecret field in stripe-go v79;
	// AddExtra sends the same top-level client_secret form field.
	confirmParams.AddExtra("client_secret", clientSecret)
	confirmParams.Context = ctx

	intent, err := setupintent.Confirm(intentID, confirmParams)
	if err != nil {
		return "", providerError(err)
	}

	if intent.PaymentMethod == nil {
		return "", &ports.ProviderError{Message: "setup confirmation returned no payment method"}
	}

	return intent.PaymentMethod.ID, nil
}

// intentIDFromSecret extracts "seti_…" from "seti_…_secret_…".
func intentIDFromSecret(clientSecret string) (string, error) {
	id, _, found := strings.Cut(clientSecret, "_secret_")
	if !found || !strings.HasPrefix(id, "seti_") {
		return "", fmt.Errorf("malformed setup intent client secret")
	}

	return id, nil
}

// providerError maps a Stripe failure onto the port's error type so the
// provider's own message reaches the user verbatim.
func providerError(err error) error {
	var stripeErr *stripe.Error
	if errors.As(err, &stripeErr) && stripeErr.Msg != "" {
		return &ports.ProviderError{Code: string(stripeErr.Code), Message: stripeErr.Msg}
	}

	return err
}
