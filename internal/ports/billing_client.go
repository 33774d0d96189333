package ports

import (
	"context"
	"fmt"
	"net/http"

	"github.com/felora-io/felora-cli/internal/domain"
)

// BillingClient is the typed boundary to the Felora backend: one operation
// per resource, a fresh request every call, no retries and no caching.
// Every failure is a *RemoteError the caller converts to user messaging.
type BillingClient interface {
	CreateAPIKey(ctx context.Context, params domain.CreateAPIKeyParams) (domain.APIKey, error)
	VerifyAPIKey(ctx context.Context, apiKey string) (domain.APIKeyVerification, error)
	ListAPIKeys(ctx context.Context, org domain.OrgID) ([]domain.APIKey, error)
	RevokeAPIKey(ctx context.Context, keyID string) error

	GetBillingInfo(ctx context.Context, org domain.OrgID) (domain.BillingInfo, error)
	UpdateBillingInfo(ctx context.Context, org domain.OrgID, info domain.BillingInfo) (domain.BillingInfo, error)

	ListPaymentMethods(ctx context.Context, org domain.OrgID) ([]domain.PaymentMethod, error)
	AddPaymentMethod(ctx context.Context, org domain.OrgID, paymentMethodID string) (domain.PaymentMethod, error)
	RemovePaymentMethod(ctx context.Context, org domain.OrgID, paymentMethodID string) error
	SetDefaultPaymentMethod(ctx context.Context, org domain.OrgID, paymentMethodID string) error

	GetSubscription(ctx context.Context, org domain.OrgID) (domain.Subscription, error)
	UpdateSubscription(ctx context.Context, org domain.OrgID, planID string) (domain.Subscription, error)
	CancelSubscription(ctx context.Context, org domain.OrgID, atPeriodEnd bool) (domain.Subscription, error)

	ListInvoices(ctx context.Context, org domain.OrgID) ([]domain.Invoice, error)
	GetUsage(ctx context.Context, org domain.OrgID) (domain.UsageMetrics, error)

	CreateSetupIntent(ctx context.Context, org domain.OrgID) (domain.SetupIntent, error)
}

// RemoteError covers the whole transport taxonomy: network failure
// (Status 0, wrapped Err), non-2xx status, or a malformed payload.
type RemoteError struct {
	Op      string
	Status  int
	Message string
	Err     error
}

func (e *RemoteError) Error() string {
	switch {
	case e.Status != 0 && e.Message != "":
		return fmt.Sprintf("%s: status %d: %s", e.Op, e.Status, e.Message)
	case e.Status != 0:
		return fmt.Sprintf("%s: status %d", e.Op, e.Status)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	default:
		return e.Op
	}
}

func (e *RemoteError) Unwrap() error {
	return e.Err
}

func (e *RemoteError) NotFound() bool {
	return e.Status == http.StatusNotFound
}
