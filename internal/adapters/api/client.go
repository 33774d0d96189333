package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/felora-io/felora-cli/internal/domain"
	"github.com/felora-io/felora-cli/internal/ports"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const maxResponseBytes = 1 << 20

// Client is the HTTP implementation of ports.BillingClient. Every call is a
// fresh request: no retries, no caching, no timeout beyond the injected
// transport's own.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
	logger  *zap.Logger
}

var _ ports.BillingClient = (*Client)(nil)

func NewClient(baseURL string, httpClient *http.Client, token string, logger *zap.Logger) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		token:   token,
		logger:  logger,
	}
}

// do issues one request and decodes the response into out (when non-nil).
// Mutating requests carry an Idempotency-Key so an ambiguous network failure
// can be replayed manually without double-applying.
func (c *Client) do(ctx context.Context, op, method, path string, body any, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return &ports.RemoteError{Op: op, Err: fmt.Errorf("encode request: %w", err)}
		}
		reader = bytes.NewReader(encoded)
	}

	request, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return &ports.RemoteError{Op: op, Err: fmt.Errorf("create request: %w", err)}
	}

	request.Header.Set("Content-Type", "application/json")
	request.Header.Set("User-Agent", "flr/portal")
	if c.token != "" {
		request.Header.Set("Authorization", "Bearer "+c.token)
	}
	if method != http.MethodGet {
		request.Header.Set("Idempotency-Key", uuid.NewString())
	}

	c.logger.Debug("billing request", zap.String("op", op), zap.String("method", method), zap.String("path", path))

	response, err := c.http.Do(request)
	if err != nil {
		return &ports.RemoteError{Op: op, Err: err}
	}
	defer response.Body.Close()

	payload, err := io.ReadAll(io.LimitReader(response.Body, maxResponseBytes))
	if err != nil {
		return &ports.RemoteError{Op: op, Err: fmt.Errorf("read response: %w", err)}
	}

	c.logger.Debug("billing response", zap.String("op", op), zap.Int("status", response.StatusCode))

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return &ports.RemoteError{
			Op:      op,
			Status:  response.StatusCode,
			Message: strings.TrimSpace(string(payload)),
		}
	}

	if out == nil {
		return nil
	}

	if err := json.Unmarshal(payload, out); err != nil {
		return &ports.RemoteError{Op: op, Err: fmt.Errorf("decode payload: %w", err)}
	}

	return nil
}

func (c *Client) CreateAPIKey(ctx context.Context, params domain.CreateAPIKeyParams) (domain.APIKey, error) {
	var key domain.APIKey
	if err := c.do(ctx, "create api key", http.MethodPost, "/v1/apikeys", params, &key); err != nil {
		return domain.APIKey{}, err
	}

	return key, nil
}

func (c *Client) VerifyAPIKey(ctx context.Context, apiKey string) (domain.APIKeyVerification, error) {
	body := map[string]string{"apiKey": apiKey}

	var result domain.APIKeyVerification
	if err := c.do(ctx, "verify api key", http.MethodPost, "/v1/apikeys/verify", body, &result); err != nil {
		return domain.APIKeyVerification{}, err
	}

	return result, nil
}

func (c *Client) ListAPIKeys(ctx context.Context, org domain.OrgID) ([]domain.APIKey, error) {
	var keys []domain.APIKey
	if err := c.do(ctx, "list api keys", http.MethodGet, fmt.Sprintf("/v1/orgs/%s/apikeys", org), nil, &keys); err != nil {
		return nil, err
	}

	return keys, nil
}

func (c *Client) RevokeAPIKey(ctx context.Context, keyID string) error {
	return c.do(ctx, "revoke api key", http.MethodDelete, "/v1/apikeys/"+keyID, nil, nil)
}

func (c *Client) GetBillingInfo(ctx context.Context, org domain.OrgID) (domain.BillingInfo, error) {
	var info domain.BillingInfo
	if err := c.do(ctx, "get billing info", http.MethodGet, fmt.Sprintf("/v1/orgs/%s/billing", org), nil, &info); err != nil {
		return domain.BillingInfo{}, err
	}

	return info, nil
}

func (c *Client) UpdateBillingInfo(ctx context.Context, org domain.OrgID, info domain.BillingInfo) (domain.BillingInfo, error) {
	var updated domain.BillingInfo
	if err := c.do(ctx, "update billing info", http.MethodPut, fmt.Sprintf("/v1/orgs/%s/billing", org), info, &updated); err != nil {
		return domain.BillingInfo{}, err
	}

	return updated, nil
}

func (c *Client) ListPaymentMethods(ctx context.Context, org domain.OrgID) ([]domain.PaymentMethod, error) {
	var methods []domain.PaymentMethod
	if err := c.do(ctx, "list payment methods", http.MethodGet, fmt.Sprintf("/v1/orgs/%s/payment-methods", org), nil, &methods); err != nil {
		return nil, err
	}

	return methods, nil
}

func (c *Client) AddPaymentMethod(ctx context.Context, org domain.OrgID, paymentMethodID string) (domain.PaymentMethod, error) {
	body := map[string]string{"payment_method_id": paymentMethodID}

	var method domain.PaymentMethod
	if err := c.do(ctx, "add payment method", http.MethodPost, fmt.Sprintf("/v1/orgs/%s/payment-methods", org), body, &method); err != nil {
		return domain.PaymentMethod{}, err
	}

	return method, nil
}

func (c *Client) RemovePaymentMethod(ctx context.Context, org domain.OrgID, paymentMethodID string) error {
	return c.do(ctx, "remove payment method", http.MethodDelete, fmt.Sprintf("/v1/orgs/%s/payment-methods/%s", org, paymentMethodID), nil, nil)
}

func (c *Client) SetDefaultPaymentMethod(ctx context.Context, org domain.OrgID, paymentMethodID string) error {
	return c.do(ctx, "set default payment method", http.MethodPut, fmt.Sprintf("/v1/orgs/%s/payment-methods/%s/default", org, paymentMethodID), nil, nil)
}

func (c *Client) GetSubscription(ctx context.Context, org domain.OrgID) (domain.Subscription, error) {
	var sub domain.Subscription
	if err := c.do(ctx, "get subscription", http.MethodGet, fmt.Sprintf("/v1/orgs/%s/subscription", org), nil, &sub); err != nil {
		return domain.Subscription{}, err
	}

	return sub, nil
}

func (c *Client) UpdateSubscription(ctx context.Context, org domain.OrgID, planID string) (domain.Subscription, error) {
	body := map[string]string{"plan_id": planID}

	var sub domain.Subscription
	if err := c.do(ctx, "update subscription", http.MethodPut, fmt.Sprintf("/v1/orgs/%s/subscription", org), body, &sub); err != nil {
		return domain.Subscription{}, err
	}

	return sub, nil
}

func (c *Client) CancelSubscription(ctx context.Context, org domain.OrgID, atPeriodEnd bool) (domain.Subscription, error) {
	body := map[string]bool{"cancel_at_period_end": atPeriodEnd}

	var sub domain.Subscription
	if err := c.do(ctx, "cancel subscription", http.MethodPost, fmt.Sprintf("/v1/orgs/%s/subscription/cancel", org), body, &sub); err != nil {
		return domain.Subscription{}, err
	}

	return sub, nil
}

func (c *Client) ListInvoices(ctx context.Context, org domain.OrgID) ([]domain.Invoice, error) {
	var invoices []domain.Invoice
	if err := c.do(ctx, "list invoices", http.MethodGet, fmt.Sprintf("/v1/orgs/%s/invoices", org), nil, &invoices); err != nil {
		return nil, err
	}

	return invoices, nil
}

func (c *Client) GetUsage(ctx context.Context, org domain.OrgID) (domain.UsageMetrics, error) {
	var usage domain.UsageMetrics
	if err := c.do(ctx, "get usage", http.MethodGet, fmt.Sprintf("/v1/orgs/%s/usage", org), nil, &usage); err != nil {
		return domain.UsageMetrics{}, err
	}

	return usage, nil
}

func (c *Client) CreateSetupIntent(ctx context.Context, org domain.OrgID) (domain.SetupIntent, error) {
	var intent domain.SetupIntent
	if err := c.do(ctx, "create setup intent", http.MethodPost, fmt.Sprintf("/v1/orgs/%s/setup-intent", org), nil, &intent); err != nil {
		return domain.SetupIntent{}, err
	}

	return intent, nil
}
