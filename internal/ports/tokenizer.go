package ports

import (
	"context"

	"github.com/felora-io/felora-cli/internal/domain"
)

// CardTokenizer is the payment tokenization collaborator: given the setup
// handshake secret plus card and billing contact, it yields a reusable
// payment-method reference or fails with a provider message.
type CardTokenizer interface {
	Confirm(ctx context.Context, clientSecret string, card domain.CardDetails, contact domain.BillingContact) (string, error)
}

// ProviderError carries the tokenization provider's own message, which is
// surfaced to the user verbatim.
type ProviderError struct {
	Code    string
	Message string
}

func (e *ProviderError) Error() string {
	return e.Message
}
